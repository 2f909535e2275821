package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	apperrors "github.com/jrsteele09/uigen-server/internal/errors"
	"github.com/jrsteele09/uigen-server/users"
	"github.com/pkg/errors"
)

const uniqueViolation = "23505"

// UserRepo implements users.UserRepo using pgxpool.
type UserRepo struct {
	pool *pgxpool.Pool
}

var _ users.UserRepo = (*UserRepo)(nil)

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts the user, assigning its ID and timestamps.
func (r *UserRepo) Create(ctx context.Context, user *users.User) error {
	if user == nil {
		return apperrors.ErrInvalidArg
	}
	email := users.NormaliseEmail(user.Email)
	if email == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidArg, "email is required")
	}

	now := time.Now().UTC()
	id := uuid.New().String()
	query := `INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)`
	if _, err := r.pool.Exec(ctx, query, id, email, user.PasswordHash, now); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrEmailTaken
		}
		return errors.Wrap(err, "[UserRepo.Create] insert")
	}

	user.ID = id
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	query := `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, users.NormaliseEmail(email)))
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	if uuid.Validate(id) != nil {
		return nil, apperrors.ErrUserNotFound
	}
	query := `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepo) scanUser(row pgx.Row) (*users.User, error) {
	var u users.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[UserRepo] scan")
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
