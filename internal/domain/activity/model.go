package activity

import (
	"time"

	"github.com/rpggio/precomm/internal/dates"
)

// Activity is a scheduled unit of pre-commissioning work inside a project,
// tagged with a free-text system and subsystem.
type Activity struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	System    string    `json:"system,omitempty"`
	Subsystem string    `json:"subsystem,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

// HasValidDates reports whether both dates are set and ordered.
func (a Activity) HasValidDates() bool {
	return ValidDates(a.StartDate, a.EndDate)
}

// DurationDays is end minus start in whole days, never less than 1. It is
// always derived from the dates and is 0 only when the dates are invalid.
func (a Activity) DurationDays() int {
	return Duration(a.StartDate, a.EndDate)
}

// ValidDates reports whether start and end are set and end is not before start.
func ValidDates(start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !dates.Day(end).Before(dates.Day(start))
}

// Duration returns the clamped duration in days for a date pair.
func Duration(start, end time.Time) int {
	if !ValidDates(start, end) {
		return 0
	}
	days := dates.DaysBetween(start, end)
	if days < 1 {
		return 1
	}
	return days
}

// SearchResult is an activity hit, either on its own name or on one of its
// ITR descriptions.
type SearchResult struct {
	ActivityID string  `json:"activity_id"`
	ProjectID  string  `json:"project_id"`
	Name       string  `json:"name"`
	Snippet    string  `json:"snippet,omitempty"`
	Rank       float64 `json:"rank"`
}
