package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/precomm/internal/dates"
	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/repository"
)

// ITRRepository implements itr.Repository for SQLite
type ITRRepository struct {
	db *DB
}

// NewITRRepository creates a new ITRRepository
func NewITRRepository(db *DB) *ITRRepository {
	return &ITRRepository{db: db}
}

const itrColumns = `i.id, i.activity_id, i.description, i.quantity_total, i.quantity_done, i.due_date, i.mcc, i.notes, i.created_at`

// Create inserts a new ITR
func (r *ITRRepository) Create(ctx context.Context, rec *itr.ITR) error {
	query := `
		INSERT INTO itrs (
			id, activity_id, description, quantity_total, quantity_done,
			due_date, mcc, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.ActivityID,
		rec.Description,
		rec.QuantityTotal,
		rec.QuantityDone,
		dates.Format(rec.DueDate),
		rec.MCC,
		rec.Notes,
		rec.CreatedAt,
	)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return repository.ErrForeignKeyViolation
		case isUniqueViolation(err):
			return repository.ErrDuplicate
		case isCheckViolation(err):
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to create itr: %w", err)
	}

	return nil
}

// Get retrieves an ITR by ID
func (r *ITRRepository) Get(ctx context.Context, id string) (*itr.ITR, error) {
	query := `SELECT ` + itrColumns + ` FROM itrs i WHERE i.id = ?`

	rec, err := scanITR(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get itr: %w", err)
	}
	return rec, nil
}

// List returns ITRs for an activity, a project, or everything
func (r *ITRRepository) List(ctx context.Context, opts itr.ListOptions) ([]itr.ITR, error) {
	query := `SELECT ` + itrColumns + ` FROM itrs i`

	args := []interface{}{}
	conditions := []string{}

	if opts.ProjectID != "" {
		query += ` JOIN activities a ON a.id = i.activity_id`
		conditions = append(conditions, "a.project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.ActivityID != "" {
		conditions = append(conditions, "i.activity_id = ?")
		args = append(args, opts.ActivityID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + joinConditions(conditions)
	}

	query += " ORDER BY i.due_date ASC, i.id ASC"

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
		return nil, fmt.Errorf("failed to list itrs: %w", err)
	}
	defer rows.Close()

	var recs []itr.ITR
	for rows.Next() {
		rec, err := scanITR(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan itr: %w", err)
		}
		recs = append(recs, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating itr rows: %w", err)
	}

	return recs, nil
}

// Update overwrites the mutable ITR fields
func (r *ITRRepository) Update(ctx context.Context, rec *itr.ITR) error {
	query := `
		UPDATE itrs
		SET description = ?, quantity_total = ?, quantity_done = ?,
		    due_date = ?, mcc = ?, notes = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		rec.Description,
		rec.QuantityTotal,
		rec.QuantityDone,
		dates.Format(rec.DueDate),
		rec.MCC,
		rec.Notes,
		rec.ID,
	)
	if err != nil {
		if isCheckViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to update itr: %w", err)
	}
	return requireAffected(result)
}

// Delete removes an ITR
func (r *ITRRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM itrs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete itr: %w", err)
	}
	return requireAffected(result)
}

func scanITR(row rowScanner) (*itr.ITR, error) {
	var rec itr.ITR
	var due string
	if err := row.Scan(
		&rec.ID,
		&rec.ActivityID,
		&rec.Description,
		&rec.QuantityTotal,
		&rec.QuantityDone,
		&due,
		&rec.MCC,
		&rec.Notes,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	rec.DueDate = dates.ParseOrZero(due)
	return &rec, nil
}
