package activity

import "context"

// Repository provides persistence operations for activities.
type Repository interface {
	Create(ctx context.Context, act *Activity) error
	Get(ctx context.Context, id string) (*Activity, error)
	List(ctx context.Context, opts ListOptions) ([]Activity, error)
	Update(ctx context.Context, act *Activity) error
	Delete(ctx context.Context, id string) error
}

// ListOptions narrows an activity listing. An empty ProjectID lists every project.
type ListOptions struct {
	ProjectID string
	System    string
	Limit     int
	Offset    int
}

// SearchRepository performs full-text search over activity names and ITR descriptions.
type SearchRepository interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// SearchOptions narrows a search.
type SearchOptions struct {
	ProjectID string
	Limit     int
}
