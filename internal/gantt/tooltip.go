package gantt

import (
	"fmt"
	"time"
)

// TooltipKind is the hover state.
type TooltipKind string

const (
	TooltipIdle     TooltipKind = "idle"
	TooltipActivity TooltipKind = "activity"
	TooltipITR      TooltipKind = "itr"
)

// Point is a cursor position in renderer coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TooltipState is what the renderer needs to draw a tooltip. The display
// fields are copied at hover time.
type TooltipState struct {
	Kind     TooltipKind `json:"kind"`
	EntityID string      `json:"entity_id,omitempty"`
	Pos      Point       `json:"pos"`
	Title    string      `json:"title,omitempty"`
	Subtitle string      `json:"subtitle,omitempty"`
	Status   Status      `json:"status,omitempty"`
	Color    Color       `json:"color,omitempty"`
	Progress float64     `json:"progress"`
	Start    time.Time   `json:"start,omitempty"`
	End      time.Time   `json:"end,omitempty"`
	Quantity string      `json:"quantity,omitempty"`
	Overdue  int         `json:"overdue_days,omitempty"`
	MCC      bool        `json:"mcc,omitempty"`
}

// Tooltip tracks the single hovered entity. It is not safe for concurrent use.
type Tooltip struct {
	state TooltipState
}

// NewTooltip returns an idle tooltip.
func NewTooltip() *Tooltip {
	return &Tooltip{state: TooltipState{Kind: TooltipIdle}}
}

// EnterActivity hovers an activity, replacing any previous hover.
func (t *Tooltip) EnterActivity(row *ActivityRow, pos Point) {
	if row == nil {
		t.Leave()
		return
	}
	t.state = TooltipState{
		Kind:     TooltipActivity,
		EntityID: row.ID,
		Pos:      pos,
		Title:    row.Name,
		Subtitle: row.System + " / " + row.Subsystem,
		Status:   row.Status,
		Color:    row.Color,
		Progress: row.Progress,
		Start:    row.Start,
		End:      row.End,
		Quantity: fmt.Sprintf("%d ITRs", row.ITRCount),
	}
}

// EnterITR hovers an ITR, replacing any previous hover.
func (t *Tooltip) EnterITR(row *ITRRow, pos Point) {
	if row == nil {
		t.Leave()
		return
	}
	t.state = TooltipState{
		Kind:     TooltipITR,
		EntityID: row.ID,
		Pos:      pos,
		Title:    row.Description,
		Subtitle: row.Notes,
		Status:   row.Status,
		Color:    row.Color,
		Progress: row.Progress,
		End:      row.DueDate,
		Quantity: fmt.Sprintf("%d/%d", row.QuantityDone, row.QuantityTotal),
		Overdue:  row.OverdueDays,
		MCC:      row.MCC,
	}
}

// Move updates the cursor position of an active hover. Idle ignores it.
func (t *Tooltip) Move(pos Point) {
	if t.state.Kind == TooltipIdle || t.state.Kind == "" {
		return
	}
	t.state.Pos = pos
}

// Leave returns to idle.
func (t *Tooltip) Leave() {
	t.state = TooltipState{Kind: TooltipIdle}
}

// State returns a copy of the current state.
func (t *Tooltip) State() TooltipState {
	if t.state.Kind == "" {
		return TooltipState{Kind: TooltipIdle}
	}
	return t.state
}

// Active reports whether something is hovered.
func (t *Tooltip) Active() bool {
	return t.State().Kind != TooltipIdle
}
