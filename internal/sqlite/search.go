package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/precomm/internal/domain/activity"
)

// SearchRepository implements activity.SearchRepository for SQLite
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search runs a prefix phrase match over activity names and ITR descriptions.
// Hits are folded per activity, keeping the best-ranked snippet.
func (r *SearchRepository) Search(ctx context.Context, query string, opts activity.SearchOptions) ([]activity.SearchResult, error) {
	match := ftsPhrase(query)
	if match == "" {
		return nil, nil
	}

	baseQuery := `
		SELECT
			a.id, a.project_id, a.name,
			snippet(search_fts, 3, '[', ']', '...', 8) as snippet,
			bm25(search_fts) as score
		FROM search_fts
		JOIN activities a ON a.id = search_fts.activity_id
		WHERE search_fts MATCH ?
	`
	args := []interface{}{match}

	if opts.ProjectID != "" {
		baseQuery += " AND a.project_id = ?"
		args = append(args, opts.ProjectID)
	}

	baseQuery += " ORDER BY score ASC, a.id ASC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search activities: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var results []activity.SearchResult
	for rows.Next() {
		var result activity.SearchResult
		var score float64
		err := rows.Scan(
			&result.ActivityID,
			&result.ProjectID,
			&result.Name,
			&result.Snippet,
			&score,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		if seen[result.ActivityID] {
			continue
		}
		seen[result.ActivityID] = true
		// bm25 is lower-is-better; flip it so callers can sort descending.
		result.Rank = -score
		results = append(results, result)
		if opts.Limit > 0 && len(results) >= opts.Limit {
			break
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return results, nil
}

// ftsPhrase quotes free text as a single FTS5 prefix phrase so user input
// never reaches the query syntax.
func ftsPhrase(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return ""
	}
	return `"` + strings.ReplaceAll(q, `"`, `""`) + `"*`
}
