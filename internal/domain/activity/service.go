package activity

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

// Service handles activity scheduling operations.
type Service struct {
	repo   Repository
	search SearchRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new activity service. search may be nil.
func NewService(repo Repository, search SearchRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, search: search, logger: logger, now: time.Now}
}

// CreateRequest describes a new activity.
type CreateRequest struct {
	ID        string
	ProjectID string
	Name      string
	System    string
	Subsystem string
	StartDate time.Time
	EndDate   time.Time
}

// UpdateRequest changes an activity. Nil fields are left unchanged; the
// resulting date pair is validated as a whole.
type UpdateRequest struct {
	ID        string
	Name      *string
	System    *string
	Subsystem *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Create validates and stores a new activity.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Activity, error) {
	if strings.TrimSpace(req.ProjectID) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	if !ValidDates(req.StartDate, req.EndDate) {
		return nil, ErrInvalidDates
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	act := &Activity{
		ID:        id,
		ProjectID: req.ProjectID,
		Name:      strings.TrimSpace(req.Name),
		System:    strings.TrimSpace(req.System),
		Subsystem: strings.TrimSpace(req.Subsystem),
		StartDate: dates.Day(req.StartDate),
		EndDate:   dates.Day(req.EndDate),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, act); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating activity: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("activity created", "activity_id", act.ID, "project_id", act.ProjectID)
	}
	return act, nil
}

// Get returns an activity by ID.
func (s *Service) Get(ctx context.Context, id string) (*Activity, error) {
	act, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("getting activity: %w", err)
	}
	return act, nil
}

// List returns activities matching opts.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Activity, error) {
	acts, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return acts, nil
}

// Update applies req to the stored activity.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Activity, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidInput
	}
	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidInput
		}
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.System != nil {
		updated.System = strings.TrimSpace(*req.System)
	}
	if req.Subsystem != nil {
		updated.Subsystem = strings.TrimSpace(*req.Subsystem)
	}
	if req.StartDate != nil {
		updated.StartDate = dates.Day(*req.StartDate)
	}
	if req.EndDate != nil {
		updated.EndDate = dates.Day(*req.EndDate)
	}
	if !updated.HasValidDates() {
		return nil, ErrInvalidDates
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("updating activity: %w", err)
	}
	return &updated, nil
}

// Reschedule moves an activity to a new date pair.
func (s *Service) Reschedule(ctx context.Context, id string, start, end time.Time) (*Activity, error) {
	return s.Update(ctx, UpdateRequest{ID: id, StartDate: &start, EndDate: &end})
}

// Delete removes an activity and its ITRs.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("deleting activity: %w", err)
	}
	return nil
}

// Search runs full-text search over activity names and ITR descriptions.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	if s.search == nil {
		return nil, fmt.Errorf("search repository not configured")
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidInput
	}
	return s.search.Search(ctx, query, opts)
}
