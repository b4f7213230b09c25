package gantt

import (
	"fmt"
	"time"

	"github.com/rpggio/precomm/internal/dates"
)

// FieldError reports an unusable query field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Query is a request in the loosely typed form it arrives in from flags,
// URLs and tool arguments. Blank fields take defaults.
type Query struct {
	Filter FilterSpec
	// Status overrides Filter.Status when set and is parsed leniently.
	Status     string
	Start      string
	End        string
	ViewMode   string
	Zoom       float64
	Fit        bool
	RenderMode string
}

// Request resolves q against snap. Without bounds the viewport is the
// default window around today, or the fitted window when Fit is set.
func (q Query) Request(snap Snapshot, today time.Time) (Request, error) {
	req := Request{Snapshot: snap, Filter: q.Filter, Today: dates.Day(today), Mode: RenderFull}

	if q.Status != "" {
		st, ok := ParseStatus(q.Status)
		if !ok {
			return Request{}, &FieldError{Field: "status", Reason: "must be Not-started, In-progress, Completed or Overdue"}
		}
		req.Filter.Status = st
	}
	if q.RenderMode != "" {
		mode, err := ParseRenderMode(q.RenderMode)
		if err != nil {
			return Request{}, &FieldError{Field: "render_mode", Reason: err.Error()}
		}
		req.Mode = mode
	}

	if q.Fit && q.Start == "" && q.End == "" {
		mode, err := parseQueryViewMode(q.ViewMode)
		if err != nil {
			return Request{}, err
		}
		vp := FitViewport(snap, mode, req.Today)
		vp.Zoom = q.Zoom
		req.Viewport = vp.Normalize()
		return req, nil
	}

	vp, err := ParseViewport(q.Start, q.End, q.ViewMode, q.Zoom, req.Today)
	if err != nil {
		return Request{}, err
	}
	req.Viewport = vp
	return req, nil
}

// ParseViewport builds a normalized viewport from date strings. Both bounds
// blank selects the default window around today; one blank bound is an
// error. A blank mode is day.
func ParseViewport(start, end, mode string, zoom float64, today time.Time) (Viewport, error) {
	m, err := parseQueryViewMode(mode)
	if err != nil {
		return Viewport{}, err
	}
	if start == "" && end == "" {
		vp := DefaultViewport(today, m)
		if zoom != 0 {
			vp.Zoom = zoom
		}
		return vp.Normalize(), nil
	}
	s, ok := dates.Parse(start)
	if !ok {
		return Viewport{}, &FieldError{Field: "start", Reason: "must be a date like 2024-03-15"}
	}
	e, ok := dates.Parse(end)
	if !ok {
		return Viewport{}, &FieldError{Field: "end", Reason: "must be a date like 2024-03-15"}
	}
	return Viewport{Start: s, End: e, Mode: m, Zoom: zoom}.Normalize(), nil
}

func parseQueryViewMode(s string) (ViewMode, error) {
	if s == "" {
		return ViewDay, nil
	}
	m, err := ParseViewMode(s)
	if err != nil {
		return "", &FieldError{Field: "view_mode", Reason: err.Error()}
	}
	return m, nil
}
