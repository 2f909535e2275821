package projects

import "context"

// Repo persists projects per owner.
type Repo interface {
	// Create stores a new project for the owner and returns it with its ID set
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Project, error)

	// ListByOwner returns the owner's projects, most recently updated first
	ListByOwner(ctx context.Context, ownerID string) ([]Project, error)

	// Get returns one of the owner's projects or errors.ErrProjectNotFound
	Get(ctx context.Context, ownerID, id string) (*Project, error)
}
