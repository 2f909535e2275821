package fakeprojectrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/uigen-server/internal/errors"
	"github.com/jrsteele09/uigen-server/projects"
)

var _ projects.Repo = (*FakeProjectRepo)(nil)

type FakeProjectRepo struct {
	projects map[string]*projects.Project
	seq      map[string]int // creation order, breaks timestamp ties
	next     int
	lock     sync.RWMutex
	nowFunc  func() time.Time
}

func NewFakeProjectRepo() *FakeProjectRepo {
	return &FakeProjectRepo{
		projects: make(map[string]*projects.Project),
		seq:      make(map[string]int),
		nowFunc:  time.Now,
	}
}

func (pr *FakeProjectRepo) Create(_ context.Context, ownerID string, req projects.CreateRequest) (*projects.Project, error) {
	if ownerID == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArg, "owner is required")
	}
	req = req.Normalised()

	pr.lock.Lock()
	defer pr.lock.Unlock()

	now := pr.nowFunc()
	p := &projects.Project{
		ID:        uuid.New().String(),
		Name:      req.Name,
		OwnerID:   ownerID,
		Messages:  req.Messages,
		Data:      req.Data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	pr.projects[p.ID] = p
	pr.seq[p.ID] = pr.next
	pr.next++

	out := *p
	return &out, nil
}

func (pr *FakeProjectRepo) ListByOwner(_ context.Context, ownerID string) ([]projects.Project, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	list := make([]projects.Project, 0)
	for _, p := range pr.projects {
		if p.OwnerID == ownerID {
			list = append(list, *p)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].UpdatedAt.Equal(list[j].UpdatedAt) {
			return list[i].UpdatedAt.After(list[j].UpdatedAt)
		}
		return pr.seq[list[i].ID] > pr.seq[list[j].ID]
	})
	return list, nil
}

func (pr *FakeProjectRepo) Get(_ context.Context, ownerID, id string) (*projects.Project, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	p, ok := pr.projects[id]
	if !ok || p.OwnerID != ownerID {
		return nil, apperrors.ErrProjectNotFound
	}
	out := *p
	return &out, nil
}
