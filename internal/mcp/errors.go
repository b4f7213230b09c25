package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/domain/project"
	"github.com/rpggio/precomm/internal/gantt"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// invalidArgument reports a malformed tool argument.
func invalidArgument(field, message string) *APIError {
	return &APIError{
		Code:         "INVALID_ARGUMENT",
		Message:      message,
		Details:      map[string]string{"field": field},
		RecoveryHint: "Fix the argument and retry",
	}
}

// MapError maps domain errors to MCP error codes. Errors it does not
// recognize map to INTERNAL.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var fieldErr *gantt.FieldError
	if errors.As(err, &fieldErr) {
		return invalidArgument(fieldErr.Field, fieldErr.Error())
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, activity.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid IDs"}
	case errors.Is(err, activity.ErrActivityNotFound), errors.Is(err, itr.ErrActivityNotFound):
		return &APIError{Code: "ACTIVITY_NOT_FOUND", Message: "activity not found", RecoveryHint: "Call list_activities for valid IDs"}
	case errors.Is(err, itr.ErrITRNotFound):
		return &APIError{Code: "ITR_NOT_FOUND", Message: "itr not found", RecoveryHint: "Call list_itrs for valid IDs"}
	case errors.Is(err, activity.ErrInvalidDates):
		return &APIError{Code: "INVALID_DATES", Message: err.Error(), RecoveryHint: "Use YYYY-MM-DD with end_date on or after start_date"}
	case errors.Is(err, itr.ErrInvalidQuantity):
		return &APIError{Code: "INVALID_QUANTITY", Message: err.Error(), RecoveryHint: "Keep quantity_done between 0 and quantity_total"}
	case errors.Is(err, project.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput), errors.Is(err, itr.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check required fields"}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}
