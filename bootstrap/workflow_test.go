package bootstrap_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/uigen-server/anonwork"
	"github.com/jrsteele09/uigen-server/auth"
	"github.com/jrsteele09/uigen-server/bootstrap"
	"github.com/jrsteele09/uigen-server/projects"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "user@example.com"
	testPassword = "password123"
	waitTimeout  = 2 * time.Second
)

var fixedNow = time.Date(2025, time.March, 14, 15, 45, 22, 0, time.UTC)

type testFixture struct {
	auth      *fakeAuth
	anon      *fakeAnonWork
	projects  *fakeProjects
	navigator *fakeNavigator
	metrics   *bootstrap.Metrics
	workflow  *bootstrap.Workflow
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		auth:      newFakeAuth(),
		anon:      &fakeAnonWork{},
		projects:  &fakeProjects{createdID: "project-123"},
		navigator: &fakeNavigator{},
		metrics:   bootstrap.NewMetrics(prometheus.NewRegistry()),
	}

	w, err := bootstrap.NewWorkflow(bootstrap.Deps{
		Auth:      f.auth,
		AnonWork:  f.anon,
		Projects:  f.projects,
		Navigator: f.navigator,
	},
		bootstrap.WithNowFunc(func() time.Time { return fixedNow }),
		bootstrap.WithRandFunc(func() float64 { return 0.12345 }),
		bootstrap.WithMetrics(f.metrics),
	)
	require.NoError(t, err)
	f.workflow = w
	return f
}

func waitDone(t *testing.T, inv *bootstrap.Invocation) {
	t.Helper()
	select {
	case <-inv.Done():
	case <-time.After(waitTimeout):
		t.Fatal("invocation did not settle")
	}
}

func TestNewWorkflow_RequiresCollaborators(t *testing.T) {
	_, err := bootstrap.NewWorkflow(bootstrap.Deps{})
	require.Error(t, err)
}

func TestSignIn_MigratesAnonWork(t *testing.T) {
	f := setupTestFixture(t)
	work := anonwork.Work{
		Messages:       []projects.ChatMessage{{ID: "m1", Role: "user", Content: "a button"}},
		FileSystemData: projects.FileSystemData{"/": {Type: "directory"}},
	}
	f.anon.work = &work

	result, err := f.workflow.SignIn(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, auth.Result{Success: true}, result)

	require.Equal(t, []projects.CreateRequest{{
		Name:     "Design from 3:45:22 PM",
		Messages: work.Messages,
		Data:     work.FileSystemData,
	}}, f.projects.createCalls())
	require.Equal(t, []string{"/project-123"}, f.navigator.Paths())
	require.Zero(t, f.projects.listCalls())

	_, clears := f.anon.counts()
	require.Equal(t, 1, clears)
}

func TestSignIn_MigratesAnonWorkWithoutMessages(t *testing.T) {
	f := setupTestFixture(t)
	f.anon.work = &anonwork.Work{Messages: []projects.ChatMessage{}, FileSystemData: projects.FileSystemData{}}

	inv := f.workflow.StartSignIn(context.Background(), testEmail, testPassword)
	_, err := inv.Wait()
	require.NoError(t, err)

	require.Len(t, f.projects.createCalls(), 1)
	require.Zero(t, f.projects.listCalls())
	require.IsType(t, bootstrap.MigrateAnon{}, inv.Decision())
	require.Equal(t, []bootstrap.State{
		bootstrap.StateIdle,
		bootstrap.StateAuthenticating,
		bootstrap.StateAuthenticated,
		bootstrap.StateResolvingWork,
		bootstrap.StateMigratingAnon,
		bootstrap.StateNavigated,
		bootstrap.StateDone,
	}, inv.Transitions())
}

func TestSignIn_UsesMostRecentProject(t *testing.T) {
	f := setupTestFixture(t)
	f.projects.list = []projects.Project{{ID: "recent"}, {ID: "older"}}

	inv := f.workflow.StartSignIn(context.Background(), testEmail, testPassword)
	_, err := inv.Wait()
	require.NoError(t, err)

	require.Equal(t, []string{"/recent"}, f.navigator.Paths())
	require.Empty(t, f.projects.createCalls())
	require.Equal(t, bootstrap.UseExisting{Project: projects.Project{ID: "recent"}}, inv.Decision())
	require.Equal(t, []bootstrap.State{
		bootstrap.StateIdle,
		bootstrap.StateAuthenticating,
		bootstrap.StateAuthenticated,
		bootstrap.StateResolvingWork,
		bootstrap.StateListingProjects,
		bootstrap.StateNavigatedExisting,
		bootstrap.StateDone,
	}, inv.Transitions())
}

func TestSignUp_CreatesNewProjectWhenNoneExist(t *testing.T) {
	f := setupTestFixture(t)
	f.projects.createdID = "new-id"

	inv := f.workflow.StartSignUp(context.Background(), testEmail, testPassword)
	result, err := inv.Wait()
	require.NoError(t, err)
	require.True(t, result.Success)

	require.Equal(t, []string{"signup:" + testEmail}, f.auth.Calls())
	require.Equal(t, []projects.CreateRequest{{
		Name:     "New Design #12345",
		Messages: []projects.ChatMessage{},
		Data:     projects.FileSystemData{},
	}}, f.projects.createCalls())
	require.Equal(t, []string{"/new-id"}, f.navigator.Paths())
	require.Equal(t, bootstrap.StateDone, inv.State())
	require.Contains(t, inv.Transitions(), bootstrap.StateNavigatedNew)
}

func TestSignIn_CredentialFailureSkipsBootstrap(t *testing.T) {
	f := setupTestFixture(t)
	want := auth.Result{Success: false, Error: auth.MsgInvalidCredentials}
	f.auth.signIn = func(context.Context, string, string) (auth.Result, error) {
		return want, nil
	}

	inv := f.workflow.StartSignIn(context.Background(), testEmail, "wrong")
	result, err := inv.Wait()
	require.NoError(t, err)
	require.Equal(t, want, result)
	require.False(t, inv.Loading())
	require.Equal(t, bootstrap.StateAuthFailed, inv.State())
	require.Nil(t, inv.Decision())

	gets, _ := f.anon.counts()
	require.Zero(t, gets)
	require.Zero(t, f.projects.listCalls())
	require.Empty(t, f.navigator.Paths())
	require.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Invocations.WithLabelValues("signin", "auth_failed", "none")))
}

func TestSignIn_CollaboratorErrorsPropagate(t *testing.T) {
	authErr := errors.New("Auth failed")
	anonErr := errors.New("Storage unavailable")
	listErr := errors.New("Database connection failed")
	createErr := errors.New("Create failed")
	clearErr := errors.New("Clear failed")

	tests := []struct {
		name    string
		setup   func(f *testFixture)
		wantErr error
		creates int
		paths   int
	}{
		{
			name: "auth action",
			setup: func(f *testFixture) {
				f.auth.signIn = func(context.Context, string, string) (auth.Result, error) {
					return auth.Result{}, authErr
				}
			},
			wantErr: authErr,
		},
		{
			name:    "reading anon work",
			setup:   func(f *testFixture) { f.anon.getErr = anonErr },
			wantErr: anonErr,
		},
		{
			name:    "listing projects",
			setup:   func(f *testFixture) { f.projects.listErr = listErr },
			wantErr: listErr,
		},
		{
			name: "creating migrated project",
			setup: func(f *testFixture) {
				f.anon.work = &anonwork.Work{}
				f.projects.createErr = createErr
			},
			wantErr: createErr,
			creates: 1,
		},
		{
			name: "clearing anon work",
			setup: func(f *testFixture) {
				f.anon.work = &anonwork.Work{}
				f.anon.clearErr = clearErr
			},
			wantErr: clearErr,
			creates: 1,
		},
		{
			name:    "creating new project",
			setup:   func(f *testFixture) { f.projects.createErr = createErr },
			wantErr: createErr,
			creates: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestFixture(t)
			tt.setup(f)

			inv := f.workflow.StartSignIn(context.Background(), testEmail, testPassword)
			_, err := inv.Wait()
			require.Same(t, tt.wantErr, err)
			require.False(t, inv.Loading())
			require.Equal(t, bootstrap.StateErrored, inv.State())
			require.Len(t, f.projects.createCalls(), tt.creates)
			require.Len(t, f.navigator.Paths(), tt.paths)
		})
	}
}

func TestSignIn_NavigationFailureKeepsCreatedProject(t *testing.T) {
	f := setupTestFixture(t)
	navErr := errors.New("Navigation failed")
	f.navigator.err = navErr
	f.anon.work = &anonwork.Work{Messages: []projects.ChatMessage{{ID: "m1", Content: "hi"}}}

	_, err := f.workflow.SignIn(context.Background(), testEmail, testPassword)
	require.Same(t, navErr, err)
	require.Len(t, f.projects.createCalls(), 1)

	_, clears := f.anon.counts()
	require.Equal(t, 1, clears)
	require.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Invocations.WithLabelValues("signin", "error", "migrate_anon")))
}

func TestInvocation_LoadingUntilSettled(t *testing.T) {
	for _, fail := range []bool{false, true} {
		f := setupTestFixture(t)
		release := make(chan struct{})
		f.auth.signIn = func(context.Context, string, string) (auth.Result, error) {
			<-release
			if fail {
				return auth.Result{}, errors.New("Auth failed")
			}
			return auth.Result{Success: true}, nil
		}
		f.projects.list = []projects.Project{{ID: "p1"}}

		inv := f.workflow.StartSignIn(context.Background(), testEmail, testPassword)
		require.True(t, inv.Loading())
		require.Eventually(t, func() bool {
			return inv.State() == bootstrap.StateAuthenticating
		}, waitTimeout, time.Millisecond)
		require.True(t, inv.Loading())

		close(release)
		waitDone(t, inv)
		require.False(t, inv.Loading())

		_, err := inv.Wait()
		require.Equal(t, fail, err != nil)
	}
}

func TestInvocation_ConcurrentInvocationsAreIndependent(t *testing.T) {
	f := setupTestFixture(t)
	f.projects.list = []projects.Project{{ID: "p1"}}
	gates := map[string]chan struct{}{
		"first@example.com":  make(chan struct{}),
		"second@example.com": make(chan struct{}),
	}
	f.auth.signIn = func(_ context.Context, email, _ string) (auth.Result, error) {
		<-gates[email]
		return auth.Result{Success: true}, nil
	}

	first := f.workflow.StartSignIn(context.Background(), "first@example.com", testPassword)
	second := f.workflow.StartSignIn(context.Background(), "second@example.com", testPassword)
	require.True(t, first.Loading())
	require.True(t, second.Loading())

	close(gates["first@example.com"])
	waitDone(t, first)
	require.False(t, first.Loading())
	require.True(t, second.Loading())

	close(gates["second@example.com"])
	waitDone(t, second)
	require.False(t, second.Loading())
	require.Equal(t, []string{"/p1", "/p1"}, f.navigator.Paths())
}

func TestInvocation_PanicBecomesError(t *testing.T) {
	f := setupTestFixture(t)
	f.auth.signIn = func(context.Context, string, string) (auth.Result, error) {
		panic("boom")
	}

	inv := f.workflow.StartSignIn(context.Background(), testEmail, testPassword)
	_, err := inv.Wait()
	require.ErrorContains(t, err, "boom")
	require.False(t, inv.Loading())
	require.Equal(t, bootstrap.StateErrored, inv.State())
}

func TestInvocation_AtMostOneCreate(t *testing.T) {
	scenarios := map[string]func(f *testFixture){
		"anon work":   func(f *testFixture) { f.anon.work = &anonwork.Work{} },
		"existing":    func(f *testFixture) { f.projects.list = []projects.Project{{ID: "p1"}} },
		"no projects": func(f *testFixture) {},
	}
	for name, setup := range scenarios {
		t.Run(name, func(t *testing.T) {
			f := setupTestFixture(t)
			setup(f)
			_, err := f.workflow.SignIn(context.Background(), testEmail, testPassword)
			require.NoError(t, err)
			require.LessOrEqual(t, len(f.projects.createCalls()), 1)
			require.Len(t, f.navigator.Paths(), 1)
		})
	}
}
