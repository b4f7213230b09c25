package itr

import "context"

// Repository provides persistence for ITRs.
type Repository interface {
	Create(ctx context.Context, rec *ITR) error
	Get(ctx context.Context, id string) (*ITR, error)
	List(ctx context.Context, opts ListOptions) ([]ITR, error)
	Update(ctx context.Context, rec *ITR) error
	Delete(ctx context.Context, id string) error
}

// ListOptions narrows an ITR listing. An empty ActivityID lists every ITR.
type ListOptions struct {
	ActivityID string
	ProjectID  string
	Limit      int
	Offset     int
}
