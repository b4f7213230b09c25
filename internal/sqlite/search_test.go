package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestSearchRepository_Search(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	seedProject(t, projects, "p1", "Plant")
	seedProject(t, projects, "p2", "Other")
	acts := NewActivityRepository(db)
	itrs := NewITRRepository(db)
	repo := NewSearchRepository(db)
	ctx := context.Background()

	seedActivity(t, acts, "a1", "p1", "Hydrotest loop A", "2024-01-01", "2024-01-10")
	seedActivity(t, acts, "a2", "p1", "Cable pulling", "2024-01-01", "2024-01-10")
	seedActivity(t, acts, "a3", "p2", "Hydrotest header", "2024-01-01", "2024-01-10")
	seedITR(t, itrs, "i1", "a2", "Hydrotest of cable tray supports", 1, 0, "2024-01-05")
	seedITR(t, itrs, "i2", "a1", "Hydrotest spool 4", 1, 0, "2024-01-05")

	t.Run("matches names and descriptions", func(t *testing.T) {
		results, err := repo.Search(ctx, "hydro", activity.SearchOptions{})
		require.NoError(t, err)
		ids := map[string]bool{}
		for _, r := range results {
			ids[r.ActivityID] = true
		}
		require.Equal(t, map[string]bool{"a1": true, "a2": true, "a3": true}, ids)
		require.Len(t, results, 3, "activities are deduplicated")
	})

	t.Run("project scope", func(t *testing.T) {
		results, err := repo.Search(ctx, "hydrotest", activity.SearchOptions{ProjectID: "p2"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Equal(t, "a3", results[0].ActivityID)
		require.Contains(t, results[0].Snippet, "[")
	})

	t.Run("limit", func(t *testing.T) {
		results, err := repo.Search(ctx, "hydrotest", activity.SearchOptions{Limit: 1})
		require.NoError(t, err)
		require.Len(t, results, 1)
	})

	t.Run("query syntax is quoted", func(t *testing.T) {
		results, err := repo.Search(ctx, `cable "OR`, activity.SearchOptions{})
		require.NoError(t, err)
		require.Empty(t, results)
	})

	t.Run("blank query", func(t *testing.T) {
		results, err := repo.Search(ctx, "   ", activity.SearchOptions{})
		require.NoError(t, err)
		require.Empty(t, results)
	})
}
