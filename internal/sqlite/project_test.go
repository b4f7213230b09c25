package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/precomm/internal/domain/project"
	"github.com/rpggio/precomm/internal/repository"
	"github.com/stretchr/testify/require"
)

func seedProject(t *testing.T, repo *ProjectRepository, id, title string) *project.Project {
	t.Helper()
	now := time.Now().UTC()
	proj := &project.Project{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), proj))
	return proj
}

func TestProjectRepository_Create(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := &project.Project{
		ID:          "p1",
		Title:       "North Compressor Station",
		Description: "Phase 2",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	err := repo.Create(ctx, proj)
	require.NoError(t, err)

	retrieved, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, proj.ID, retrieved.ID)
	require.Equal(t, proj.Title, retrieved.Title)
	require.Equal(t, proj.Description, retrieved.Description)

	err = repo.Create(ctx, proj)
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestProjectRepository_GetNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_ListOrdersByTitle(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	seedProject(t, repo, "p2", "Zulu")
	seedProject(t, repo, "p1", "Alpha")

	projects, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "Alpha", projects[0].Title)
	require.Equal(t, "Zulu", projects[1].Title)
}

func TestProjectRepository_UpdateAndDelete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := seedProject(t, repo, "p1", "Old")
	proj.Title = "New"
	require.NoError(t, repo.Update(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "New", got.Title)

	require.NoError(t, repo.Delete(ctx, "p1"))
	require.ErrorIs(t, repo.Delete(ctx, "p1"), repository.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, proj), repository.ErrNotFound)
}
