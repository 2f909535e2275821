package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/uigen-server/anonwork"
	"github.com/jrsteele09/uigen-server/auth"
	"github.com/jrsteele09/uigen-server/bootstrap"
	apperrors "github.com/jrsteele09/uigen-server/internal/errors"
	"github.com/jrsteele09/uigen-server/projects"
	"github.com/jrsteele09/uigen-server/sessions"
	"github.com/pkg/errors"
)

// requestAuth binds the auth service to the cookies of one request.
type requestAuth struct {
	service *auth.Service
	cookies sessions.CookieStore
}

func (a requestAuth) SignIn(ctx context.Context, email, password string) (auth.Result, error) {
	return a.service.SignIn(ctx, a.cookies, email, password)
}

func (a requestAuth) SignUp(ctx context.Context, email, password string) (auth.Result, error) {
	return a.service.SignUp(ctx, a.cookies, email, password)
}

// requestAnonWork resolves the anonymous draft referenced by the request's
// draft cookie.
type requestAnonWork struct {
	store      anonwork.Store
	cookies    sessions.CookieStore
	cookieName string
}

func (a requestAnonWork) draftID() (string, error) {
	cookie, err := a.cookies.Get(a.cookieName)
	if err != nil {
		return "", errors.Wrap(err, "[requestAnonWork] read draft cookie")
	}
	if cookie == nil {
		return "", nil
	}
	return cookie.Value, nil
}

func (a requestAnonWork) GetAnonWorkData(ctx context.Context) (*anonwork.Work, error) {
	id, err := a.draftID()
	if err != nil || id == "" {
		return nil, err
	}
	return a.store.Get(ctx, id)
}

func (a requestAnonWork) SaveAnonWork(ctx context.Context, work anonwork.Work, secure bool) error {
	id, err := a.draftID()
	if err != nil {
		return err
	}
	if id == "" {
		id = uuid.NewString()
		err := a.cookies.Set(a.cookieName, id, sessions.CookieOptions{
			HTTPOnly: true,
			SameSite: sessionSameSite,
			Path:     "/",
			Secure:   secure,
			Expires:  time.Now().Add(anonWorkCookieTTL),
		})
		if err != nil {
			return errors.Wrap(err, "[requestAnonWork.SaveAnonWork] set draft cookie")
		}
	}
	return a.store.Save(ctx, id, work)
}

func (a requestAnonWork) ClearAnonWork(ctx context.Context) error {
	id, err := a.draftID()
	if err != nil || id == "" {
		return err
	}
	if err := a.store.Clear(ctx, id); err != nil {
		return err
	}
	return a.cookies.Delete(a.cookieName)
}

// requestProjects scopes the project repo to the user of the current session.
type requestProjects struct {
	repo    projects.Repo
	auth    *auth.Service
	cookies sessions.CookieStore
}

func (p requestProjects) ownerID() (string, error) {
	payload, err := p.auth.Session(p.cookies)
	if err != nil {
		return "", err
	}
	if payload == nil {
		return "", apperrors.ErrNoSession
	}
	return payload.UserID, nil
}

func (p requestProjects) GetProjects(ctx context.Context) ([]projects.Project, error) {
	owner, err := p.ownerID()
	if err != nil {
		return nil, err
	}
	return p.repo.ListByOwner(ctx, owner)
}

func (p requestProjects) CreateProject(ctx context.Context, req projects.CreateRequest) (*projects.Project, error) {
	owner, err := p.ownerID()
	if err != nil {
		return nil, err
	}
	return p.repo.Create(ctx, owner, req)
}

// newWorkflow wires a bootstrap workflow to the collaborators of one request.
func (s *Server) newWorkflow(cookies sessions.CookieStore, nav bootstrap.Navigator) (*bootstrap.Workflow, error) {
	options := append([]bootstrap.WorkflowOption{bootstrap.WithMetrics(s.metrics)}, s.workflowOptions...)
	return bootstrap.NewWorkflow(bootstrap.Deps{
		Auth:      requestAuth{service: s.auth, cookies: cookies},
		AnonWork:  s.anonWork(cookies),
		Projects:  requestProjects{repo: s.repos.Projects, auth: s.auth, cookies: cookies},
		Navigator: nav,
	}, options...)
}

func (s *Server) anonWork(cookies sessions.CookieStore) requestAnonWork {
	return requestAnonWork{
		store:      s.repos.AnonWork,
		cookies:    cookies,
		cookieName: s.config.GetAnonWorkCookieName(),
	}
}
