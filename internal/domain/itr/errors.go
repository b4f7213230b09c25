package itr

import "errors"

var (
	// ErrITRNotFound indicates the ITR doesn't exist.
	ErrITRNotFound = errors.New("itr not found")
	// ErrInvalidInput indicates a missing activity or description.
	ErrInvalidInput = errors.New("invalid itr input")
	// ErrInvalidQuantity indicates total < 1 or done outside 0..total.
	ErrInvalidQuantity = errors.New("itr quantity done must be within 0..total and total must be at least 1")
	// ErrActivityNotFound indicates the referenced activity doesn't exist.
	ErrActivityNotFound = errors.New("itr activity not found")
)
