package bootstrap_test

import (
	"context"
	"sync"

	"github.com/jrsteele09/uigen-server/anonwork"
	"github.com/jrsteele09/uigen-server/auth"
	"github.com/jrsteele09/uigen-server/projects"
)

type authFunc func(ctx context.Context, email, password string) (auth.Result, error)

type fakeAuth struct {
	signIn authFunc
	signUp authFunc

	mu    sync.Mutex
	calls []string
}

func succeed(context.Context, string, string) (auth.Result, error) {
	return auth.Result{Success: true}, nil
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{signIn: succeed, signUp: succeed}
}

func (a *fakeAuth) SignIn(ctx context.Context, email, password string) (auth.Result, error) {
	a.record("signin:" + email)
	return a.signIn(ctx, email, password)
}

func (a *fakeAuth) SignUp(ctx context.Context, email, password string) (auth.Result, error) {
	a.record("signup:" + email)
	return a.signUp(ctx, email, password)
}

func (a *fakeAuth) record(call string) {
	a.mu.Lock()
	a.calls = append(a.calls, call)
	a.mu.Unlock()
}

func (a *fakeAuth) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}

type fakeAnonWork struct {
	mu       sync.Mutex
	work     *anonwork.Work
	getErr   error
	clearErr error
	gets     int
	clears   int
}

func (s *fakeAnonWork) GetAnonWorkData(context.Context) (*anonwork.Work, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.work, nil
}

func (s *fakeAnonWork) ClearAnonWork(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.work = nil
	return nil
}

func (s *fakeAnonWork) counts() (gets, clears int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets, s.clears
}

type fakeProjects struct {
	mu        sync.Mutex
	list      []projects.Project
	listErr   error
	createErr error
	createdID string
	lists     int
	created   []projects.CreateRequest
}

func (p *fakeProjects) GetProjects(context.Context) ([]projects.Project, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lists++
	if p.listErr != nil {
		return nil, p.listErr
	}
	return p.list, nil
}

func (p *fakeProjects) CreateProject(_ context.Context, req projects.CreateRequest) (*projects.Project, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, req)
	if p.createErr != nil {
		return nil, p.createErr
	}
	return &projects.Project{ID: p.createdID, Name: req.Name, Messages: req.Messages, Data: req.Data}, nil
}

func (p *fakeProjects) listCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lists
}

func (p *fakeProjects) createCalls() []projects.CreateRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]projects.CreateRequest(nil), p.created...)
}

type fakeNavigator struct {
	mu    sync.Mutex
	err   error
	paths []string
}

func (n *fakeNavigator) NavigateTo(path string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
	return n.err
}

func (n *fakeNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}
