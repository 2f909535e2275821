package bootstrap

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/jrsteele09/uigen-server/auth"
	"github.com/jrsteele09/uigen-server/projects"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Workflow signs a user in or up and then routes them to exactly one project,
// migrating anonymous work when there is some.
type Workflow struct {
	deps     Deps
	nowFunc  func() time.Time
	randFunc func() float64
	metrics  *Metrics
}

type WorkflowOption func(*Workflow)

// WithNowFunc sets the clock used to name migrated projects.
func WithNowFunc(now func() time.Time) WorkflowOption {
	return func(w *Workflow) {
		w.nowFunc = now
	}
}

// WithRandFunc sets the uniform [0, 1) source used to name new projects.
func WithRandFunc(r func() float64) WorkflowOption {
	return func(w *Workflow) {
		w.randFunc = r
	}
}

func WithMetrics(m *Metrics) WorkflowOption {
	return func(w *Workflow) {
		w.metrics = m
	}
}

func NewWorkflow(deps Deps, options ...WorkflowOption) (*Workflow, error) {
	if deps.Auth == nil {
		return nil, errors.New("[NewWorkflow] authenticator is required")
	}
	if deps.AnonWork == nil {
		return nil, errors.New("[NewWorkflow] anon work source is required")
	}
	if deps.Projects == nil {
		return nil, errors.New("[NewWorkflow] project store is required")
	}
	if deps.Navigator == nil {
		return nil, errors.New("[NewWorkflow] navigator is required")
	}

	w := &Workflow{
		deps:     deps,
		nowFunc:  time.Now,
		randFunc: rand.Float64,
	}
	for _, opt := range options {
		opt(w)
	}
	return w, nil
}

// StartSignIn begins a sign-in invocation and returns immediately. The
// returned handle reports Loading until the workflow has settled.
func (w *Workflow) StartSignIn(ctx context.Context, email, password string) *Invocation {
	return w.start(ctx, ActionSignIn, email, password)
}

// StartSignUp begins a sign-up invocation; see StartSignIn.
func (w *Workflow) StartSignUp(ctx context.Context, email, password string) *Invocation {
	return w.start(ctx, ActionSignUp, email, password)
}

// SignIn runs a sign-in invocation to completion. The credential result is
// returned unchanged; collaborator errors are returned unmodified.
func (w *Workflow) SignIn(ctx context.Context, email, password string) (auth.Result, error) {
	return w.StartSignIn(ctx, email, password).Wait()
}

func (w *Workflow) SignUp(ctx context.Context, email, password string) (auth.Result, error) {
	return w.StartSignUp(ctx, email, password).Wait()
}

func (w *Workflow) start(ctx context.Context, action Action, email, password string) *Invocation {
	inv := newInvocation(action)
	go w.run(ctx, inv, email, password)
	return inv
}

func (w *Workflow) run(ctx context.Context, inv *Invocation, email, password string) {
	started := w.nowFunc()
	var (
		result auth.Result
		err    error
	)

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("[Workflow.run] panic during %s: %v", inv.action, r)
		}
		outcome := outcomeSuccess
		switch {
		case err != nil:
			inv.enter(StateErrored)
			outcome = outcomeError
			log.Err(err).Str("action", string(inv.action)).Msg("bootstrap failed")
		case !result.Success:
			outcome = outcomeAuthFailed
		}
		w.metrics.observe(inv.action, outcome, inv.Decision(), w.nowFunc().Sub(started))
		inv.settle(result, err)
	}()

	result, err = w.authenticate(ctx, inv, email, password)
	if err != nil || !result.Success {
		return
	}
	err = w.bootstrap(ctx, inv)
}

func (w *Workflow) authenticate(ctx context.Context, inv *Invocation, email, password string) (auth.Result, error) {
	inv.enter(StateAuthenticating)

	var (
		result auth.Result
		err    error
	)
	switch inv.action {
	case ActionSignUp:
		result, err = w.deps.Auth.SignUp(ctx, email, password)
	default:
		result, err = w.deps.Auth.SignIn(ctx, email, password)
	}
	if err != nil {
		return result, err
	}

	if !result.Success {
		inv.enter(StateAuthFailed)
		return result, nil
	}
	inv.enter(StateAuthenticated)
	return result, nil
}

func (w *Workflow) bootstrap(ctx context.Context, inv *Invocation) error {
	d, err := w.decide(ctx, inv)
	if err != nil {
		return err
	}
	inv.setDecision(d)
	log.Debug().Str("action", string(inv.action)).Str("decision", d.Kind()).Msg("bootstrap decision")

	if err := w.execute(ctx, inv, d); err != nil {
		return err
	}
	inv.enter(StateDone)
	return nil
}

// decide reads anonymous work and, only when there is none, the user's
// projects. Any present anonymous work wins, even with no messages.
func (w *Workflow) decide(ctx context.Context, inv *Invocation) (Decision, error) {
	inv.enter(StateResolvingWork)
	work, err := w.deps.AnonWork.GetAnonWorkData(ctx)
	if err != nil {
		return nil, err
	}
	if work != nil {
		return MigrateAnon{Work: *work}, nil
	}

	inv.enter(StateListingProjects)
	list, err := w.deps.Projects.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		return UseExisting{Project: list[0]}, nil
	}
	return CreateNew{}, nil
}

func (w *Workflow) execute(ctx context.Context, inv *Invocation, d Decision) error {
	switch d := d.(type) {
	case MigrateAnon:
		inv.enter(StateMigratingAnon)
		project, err := w.deps.Projects.CreateProject(ctx, projects.CreateRequest{
			Name:     MigratedProjectName(w.nowFunc()),
			Messages: d.Work.Messages,
			Data:     d.Work.FileSystemData,
		})
		if err != nil {
			return err
		}
		if err := w.deps.AnonWork.ClearAnonWork(ctx); err != nil {
			return err
		}
		if err := w.deps.Navigator.NavigateTo(projectPath(project.ID)); err != nil {
			return err
		}
		inv.enter(StateNavigated)

	case UseExisting:
		if err := w.deps.Navigator.NavigateTo(projectPath(d.Project.ID)); err != nil {
			return err
		}
		inv.enter(StateNavigatedExisting)

	case CreateNew:
		inv.enter(StateCreatingNew)
		project, err := w.deps.Projects.CreateProject(ctx, projects.CreateRequest{
			Name:     NewProjectName(w.randFunc()),
			Messages: []projects.ChatMessage{},
			Data:     projects.FileSystemData{},
		})
		if err != nil {
			return err
		}
		if err := w.deps.Navigator.NavigateTo(projectPath(project.ID)); err != nil {
			return err
		}
		inv.enter(StateNavigatedNew)

	default:
		return errors.Errorf("[Workflow.execute] unknown decision %T", d)
	}
	return nil
}
