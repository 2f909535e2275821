package fakeprojectrepo_test

import (
	"context"
	"testing"

	apperrors "github.com/jrsteele09/uigen-server/internal/errors"
	"github.com/jrsteele09/uigen-server/projects"
	fakeprojectrepo "github.com/jrsteele09/uigen-server/projects/repofake"
	"github.com/stretchr/testify/require"
)

func TestFakeProjectRepo_ListMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	repo := fakeprojectrepo.NewFakeProjectRepo()

	older, err := repo.Create(ctx, "user-1", projects.CreateRequest{Name: "Older Project"})
	require.NoError(t, err)
	recent, err := repo.Create(ctx, "user-1", projects.CreateRequest{Name: "Recent Project"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, "user-2", projects.CreateRequest{Name: "Someone Else"})
	require.NoError(t, err)

	list, err := repo.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, recent.ID, list[0].ID)
	require.Equal(t, older.ID, list[1].ID)

	empty, err := repo.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestFakeProjectRepo_CreateNormalisesCollections(t *testing.T) {
	repo := fakeprojectrepo.NewFakeProjectRepo()

	p, err := repo.Create(context.Background(), "user-1", projects.CreateRequest{Name: "New Design #1"})
	require.NoError(t, err)
	require.NotNil(t, p.Messages)
	require.NotNil(t, p.Data)
	require.Equal(t, "user-1", p.OwnerID)

	_, err = repo.Create(context.Background(), "", projects.CreateRequest{Name: "x"})
	require.ErrorIs(t, err, apperrors.ErrInvalidArg)
}

func TestFakeProjectRepo_GetScopedToOwner(t *testing.T) {
	ctx := context.Background()
	repo := fakeprojectrepo.NewFakeProjectRepo()

	p, err := repo.Create(ctx, "user-1", projects.CreateRequest{
		Name:     "Design",
		Messages: []projects.ChatMessage{{ID: "1", Content: "hi"}},
		Data:     projects.FileSystemData{"/": {Type: "directory"}},
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "user-1", p.ID)
	require.NoError(t, err)
	require.Equal(t, p.Messages, got.Messages)
	require.Equal(t, p.Data, got.Data)

	_, err = repo.Get(ctx, "user-2", p.ID)
	require.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}
