package bootstrap

import (
	"context"

	"github.com/jrsteele09/uigen-server/anonwork"
	"github.com/jrsteele09/uigen-server/auth"
	"github.com/jrsteele09/uigen-server/projects"
)

// Authenticator performs the credential check and establishes the session.
// Credential problems are reported in the returned Result, not as errors.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (auth.Result, error)
	SignUp(ctx context.Context, email, password string) (auth.Result, error)
}

// AnonWorkSource gives access to work produced before the user signed in.
type AnonWorkSource interface {
	// GetAnonWorkData returns nil when there is no anonymous work
	GetAnonWorkData(ctx context.Context) (*anonwork.Work, error)
	ClearAnonWork(ctx context.Context) error
}

// ProjectStore lists and creates projects for the signed in user.
type ProjectStore interface {
	// GetProjects returns the user's projects, most recent first
	GetProjects(ctx context.Context) ([]projects.Project, error)
	CreateProject(ctx context.Context, req projects.CreateRequest) (*projects.Project, error)
}

type Navigator interface {
	NavigateTo(path string) error
}

// Deps are the external collaborators of a Workflow.
type Deps struct {
	Auth      Authenticator
	AnonWork  AnonWorkSource
	Projects  ProjectStore
	Navigator Navigator
}
