package users

import "context"

// UserRepo stores user accounts. Lookups return errors.ErrUserNotFound when
// no user matches; Create returns errors.ErrEmailTaken for a duplicate email.
type UserRepo interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
