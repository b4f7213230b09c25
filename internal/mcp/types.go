package mcp

import (
	"github.com/rpggio/precomm/internal/gantt"
)

// Dates cross the tool boundary as YYYY-MM-DD strings.

type CreateProjectParams struct {
	ID          string `json:"id,omitempty" jsonschema:"project id, generated when omitted"`
	Title       string `json:"title" jsonschema:"project title"`
	Description string `json:"description,omitempty"`
}

type ListProjectsParams struct{}

type ProjectResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type CreateActivityParams struct {
	ID        string `json:"id,omitempty"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	System    string `json:"system,omitempty"`
	Subsystem string `json:"subsystem,omitempty"`
	StartDate string `json:"start_date" jsonschema:"YYYY-MM-DD"`
	EndDate   string `json:"end_date" jsonschema:"YYYY-MM-DD, not before start_date"`
}

type RescheduleActivityParams struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ListActivitiesParams struct {
	ProjectID string `json:"project_id,omitempty"`
	System    string `json:"system,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

type ActivityResponse struct {
	ID           string `json:"id"`
	ProjectID    string `json:"project_id"`
	Name         string `json:"name"`
	System       string `json:"system,omitempty"`
	Subsystem    string `json:"subsystem,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DurationDays int    `json:"duration_days"`
}

type SearchActivitiesParams struct {
	Query     string `json:"query"`
	ProjectID string `json:"project_id,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}


type CreateITRParams struct {
	ID            string `json:"id,omitempty"`
	ActivityID    string `json:"activity_id"`
	Description   string `json:"description"`
	QuantityTotal int    `json:"quantity_total" jsonschema:"at least 1"`
	QuantityDone  int    `json:"quantity_done,omitempty"`
	DueDate       string `json:"due_date,omitempty" jsonschema:"YYYY-MM-DD"`
	MCC           bool   `json:"mcc,omitempty" jsonschema:"mechanical completion certificate issued"`
	Notes         string `json:"notes,omitempty"`
}

type RecordITRProgressParams struct {
	ID           string `json:"id"`
	QuantityDone int    `json:"quantity_done"`
	MCC          *bool  `json:"mcc,omitempty"`
	Today        string `json:"today,omitempty"`
}

type ListITRsParams struct {
	ActivityID string `json:"activity_id,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
	Today      string `json:"today,omitempty" jsonschema:"status reference day, YYYY-MM-DD"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

// ITRResponse carries the stored fields plus the status derived for Today.
type ITRResponse struct {
	ID            string       `json:"id"`
	ActivityID    string       `json:"activity_id"`
	Description   string       `json:"description"`
	QuantityTotal int          `json:"quantity_total"`
	QuantityDone  int          `json:"quantity_done"`
	DueDate       string       `json:"due_date,omitempty"`
	MCC           bool         `json:"mcc"`
	Notes         string       `json:"notes,omitempty"`
	Status        gantt.Status `json:"status"`
	Progress      float64      `json:"progress"`
	OverdueDays   int          `json:"overdue_days,omitempty"`
}

// ViewportParams is a viewport on the wire. Empty Start/End mean "derive".
type ViewportParams struct {
	Start    string  `json:"start,omitempty"`
	End      string  `json:"end,omitempty"`
	ViewMode string  `json:"view_mode,omitempty" jsonschema:"day, week or month"`
	Zoom     float64 `json:"zoom,omitempty" jsonschema:"0.5 to 2.0 in 0.25 steps"`
}

type ViewportResponse struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	ViewMode string  `json:"view_mode"`
	Zoom     float64 `json:"zoom"`
}

type ComputeGanttModelParams struct {
	ProjectID   string          `json:"project_id,omitempty" jsonschema:"project id or all"`
	System      string          `json:"system,omitempty"`
	Subsystem   string          `json:"subsystem,omitempty"`
	Query       string          `json:"query,omitempty" jsonschema:"case-insensitive text over activity names and ITR descriptions"`
	Status      string          `json:"status,omitempty" jsonschema:"Not-started, In-progress, Completed or Overdue"`
	OverdueOnly bool            `json:"overdue_only,omitempty"`
	FlaggedOnly bool            `json:"flagged_only,omitempty" jsonschema:"only ITRs with an MCC"`
	Viewport    *ViewportParams `json:"viewport,omitempty"`
	Fit         bool            `json:"fit,omitempty" jsonschema:"fit the window to all activity dates"`
	RenderMode  string          `json:"render_mode,omitempty" jsonschema:"full, simplified or summary"`
	Today       string          `json:"today,omitempty"`
}

type AxisDatesParams struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	ViewMode string `json:"view_mode"`
}

type AxisDatesResponse struct {
	Dates  []string `json:"dates"`
	Labels []string `json:"labels"`
}

type PanViewportParams struct {
	Viewport  ViewportParams `json:"viewport"`
	Direction string         `json:"direction" jsonschema:"prev or next"`
}

type ZoomViewportParams struct {
	Viewport  ViewportParams `json:"viewport"`
	Direction string         `json:"direction" jsonschema:"in or out"`
}

type SetViewModeParams struct {
	Viewport ViewportParams `json:"viewport"`
	ViewMode string         `json:"view_mode"`
}

type ListTaxonomyParams struct {
	ProjectID string `json:"project_id,omitempty"`
}
