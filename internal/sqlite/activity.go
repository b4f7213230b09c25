package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/precomm/internal/dates"
	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/repository"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `id, project_id, name, system, subsystem, start_date, end_date, created_at`

// Create inserts a new activity
func (r *ActivityRepository) Create(ctx context.Context, act *activity.Activity) error {
	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		act.ID,
		act.ProjectID,
		act.Name,
		act.System,
		act.Subsystem,
		dates.Format(act.StartDate),
		dates.Format(act.EndDate),
		act.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

// Get retrieves an activity by ID
func (r *ActivityRepository) Get(ctx context.Context, id string) (*activity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = ?`

	act, err := scanActivity(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return act, nil
}

// List returns activities matching the given filters
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities`

	args := []interface{}{}
	conditions := []string{}

	if opts.ProjectID != "" {
		conditions = append(conditions, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.System != "" {
		conditions = append(conditions, "system = ?")
		args = append(args, opts.System)
	}

	if len(conditions) > 0 {
		query += " WHERE " + joinConditions(conditions)
	}

	query += " ORDER BY start_date ASC, name ASC, id ASC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var acts []activity.Activity
	for rows.Next() {
		act, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		acts = append(acts, *act)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return acts, nil
}

// Update overwrites the mutable activity fields
func (r *ActivityRepository) Update(ctx context.Context, act *activity.Activity) error {
	query := `
		UPDATE activities
		SET name = ?, system = ?, subsystem = ?, start_date = ?, end_date = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		act.Name,
		act.System,
		act.Subsystem,
		dates.Format(act.StartDate),
		dates.Format(act.EndDate),
		act.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return requireAffected(result)
}

// Delete removes an activity; its ITRs cascade
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return requireAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanActivity reads one row. Unparseable stored dates load as the zero time
// so a single bad row never fails a listing.
func scanActivity(row rowScanner) (*activity.Activity, error) {
	var act activity.Activity
	var start, end string
	if err := row.Scan(
		&act.ID,
		&act.ProjectID,
		&act.Name,
		&act.System,
		&act.Subsystem,
		&start,
		&end,
		&act.CreatedAt,
	); err != nil {
		return nil, err
	}
	act.StartDate = dates.ParseOrZero(start)
	act.EndDate = dates.ParseOrZero(end)
	return &act, nil
}
