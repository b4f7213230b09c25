package itr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/precomm/internal/dates"
	"github.com/rpggio/precomm/internal/repository"
)

// Service handles ITR business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new ITR service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// CreateRequest describes an ITR creation request.
type CreateRequest struct {
	ID            string
	ActivityID    string
	Description   string
	QuantityTotal int
	QuantityDone  int
	DueDate       time.Time
	MCC           bool
	Notes         string
}

// UpdateRequest describes an ITR update. Nil fields are left unchanged.
type UpdateRequest struct {
	ID            string
	Description   *string
	QuantityTotal *int
	QuantityDone  *int
	DueDate       *time.Time
	MCC           *bool
	Notes         *string
}

// Create validates and stores a new ITR.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*ITR, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	rec := &ITR{
		ID:            id,
		ActivityID:    req.ActivityID,
		Description:   strings.TrimSpace(req.Description),
		QuantityTotal: req.QuantityTotal,
		QuantityDone:  req.QuantityDone,
		DueDate:       dates.Day(req.DueDate),
		MCC:           req.MCC,
		Notes:         req.Notes,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("creating itr: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("itr created", "itr_id", rec.ID, "activity_id", rec.ActivityID)
	}
	return rec, nil
}

// Get returns an ITR by ID.
func (s *Service) Get(ctx context.Context, id string) (*ITR, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrITRNotFound
		}
		return nil, fmt.Errorf("getting itr: %w", err)
	}
	return rec, nil
}

// List returns ITRs matching opts.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]ITR, error) {
	recs, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing itrs: %w", err)
	}
	return recs, nil
}

// Update applies req and re-validates the quantity pair.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*ITR, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidInput
	}
	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrInvalidInput
		}
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.QuantityTotal != nil {
		updated.QuantityTotal = *req.QuantityTotal
	}
	if req.QuantityDone != nil {
		updated.QuantityDone = *req.QuantityDone
	}
	if req.DueDate != nil {
		updated.DueDate = dates.Day(*req.DueDate)
	}
	if req.MCC != nil {
		updated.MCC = *req.MCC
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if err := ValidateQuantities(updated.QuantityTotal, updated.QuantityDone); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrITRNotFound
		}
		return nil, fmt.Errorf("updating itr: %w", err)
	}
	return &updated, nil
}

// RecordProgress sets the completed quantity of an ITR.
func (s *Service) RecordProgress(ctx context.Context, id string, done int) (*ITR, error) {
	return s.Update(ctx, UpdateRequest{ID: id, QuantityDone: &done})
}

// SetMCC sets or clears the completion certificate flag.
func (s *Service) SetMCC(ctx context.Context, id string, mcc bool) (*ITR, error) {
	return s.Update(ctx, UpdateRequest{ID: id, MCC: &mcc})
}

// Delete removes an ITR.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrITRNotFound
		}
		return fmt.Errorf("deleting itr: %w", err)
	}
	return nil
}
