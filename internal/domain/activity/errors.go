package activity

import "errors"

var (
	// ErrActivityNotFound indicates the activity doesn't exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrInvalidInput indicates a missing name or project.
	ErrInvalidInput = errors.New("invalid activity input")
	// ErrInvalidDates indicates a missing date or an end date before the start date.
	ErrInvalidDates = errors.New("activity end date must not precede start date")
	// ErrProjectNotFound indicates the referenced project doesn't exist.
	ErrProjectNotFound = errors.New("activity project not found")
)
