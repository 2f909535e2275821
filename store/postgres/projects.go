package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	apperrors "github.com/jrsteele09/uigen-server/internal/errors"
	"github.com/jrsteele09/uigen-server/projects"
	"github.com/pkg/errors"
)

// ProjectRepo implements projects.Repo; messages and file data are JSONB.
type ProjectRepo struct {
	pool *pgxpool.Pool
}

var _ projects.Repo = (*ProjectRepo)(nil)

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

const projectColumns = `id, name, owner_id, messages, data, created_at, updated_at`

func (r *ProjectRepo) Create(ctx context.Context, ownerID string, req projects.CreateRequest) (*projects.Project, error) {
	if uuid.Validate(ownerID) != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArg, "owner id %q", ownerID)
	}
	req = req.Normalised()

	messages, err := json.Marshal(req.Messages)
	if err != nil {
		return nil, errors.Wrap(err, "[ProjectRepo.Create] marshal messages")
	}
	data, err := json.Marshal(req.Data)
	if err != nil {
		return nil, errors.Wrap(err, "[ProjectRepo.Create] marshal data")
	}

	now := time.Now().UTC()
	p := &projects.Project{
		ID:        uuid.New().String(),
		Name:      req.Name,
		OwnerID:   ownerID,
		Messages:  req.Messages,
		Data:      req.Data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	query := `INSERT INTO projects (` + projectColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $6)`
	if _, err := r.pool.Exec(ctx, query, p.ID, p.Name, ownerID, messages, data, now); err != nil {
		return nil, errors.Wrap(err, "[ProjectRepo.Create] insert")
	}
	return p, nil
}

// ListByOwner returns the owner's projects, most recently updated first.
func (r *ProjectRepo) ListByOwner(ctx context.Context, ownerID string) ([]projects.Project, error) {
	if uuid.Validate(ownerID) != nil {
		return []projects.Project{}, nil
	}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = $1 ORDER BY updated_at DESC, created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "[ProjectRepo.ListByOwner] query")
	}
	defer rows.Close()

	list := []projects.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[ProjectRepo.ListByOwner] rows")
	}
	return list, nil
}

func (r *ProjectRepo) Get(ctx context.Context, ownerID, id string) (*projects.Project, error) {
	if uuid.Validate(ownerID) != nil || uuid.Validate(id) != nil {
		return nil, apperrors.ErrProjectNotFound
	}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = $1 AND id = $2`
	p, err := scanProject(r.pool.QueryRow(ctx, query, ownerID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrProjectNotFound
	}
	return p, err
}

func scanProject(row pgx.Row) (*projects.Project, error) {
	var (
		p              projects.Project
		messages, data []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.OwnerID, &messages, &data, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "[ProjectRepo] scan")
	}
	if err := json.Unmarshal(messages, &p.Messages); err != nil {
		return nil, errors.Wrap(err, "[ProjectRepo] unmarshal messages")
	}
	if err := json.Unmarshal(data, &p.Data); err != nil {
		return nil, errors.Wrap(err, "[ProjectRepo] unmarshal data")
	}
	return &p, nil
}
