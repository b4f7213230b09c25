package project

import "time"

// Project is the top of the commissioning hierarchy.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayTitle returns the title, falling back to the ID for untitled rows.
func (p Project) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.ID
}
