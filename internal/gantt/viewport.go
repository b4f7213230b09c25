package gantt

import (
	"fmt"
	"math"
	"time"

	"github.com/rpggio/precomm/internal/dates"
)

const (
	MinZoom     = 0.5
	MaxZoom     = 2.0
	ZoomStep    = 0.25
	DefaultZoom = 1.0
)

// Viewport is the visible window. Zoom scales bar thickness and spacing in
// the renderer and never changes the date domain.
type Viewport struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Mode  ViewMode  `json:"mode"`
	Zoom  float64   `json:"zoom"`
}

// PanDirection is prev or next.
type PanDirection string

const (
	PanPrev PanDirection = "prev"
	PanNext PanDirection = "next"
)

// ParsePanDirection accepts prev/next and the aliases left/right.
func ParsePanDirection(s string) (PanDirection, error) {
	switch s {
	case "prev", "left", "back":
		return PanPrev, nil
	case "next", "right", "forward":
		return PanNext, nil
	}
	return "", fmt.Errorf("unknown pan direction %q", s)
}

// ZoomDirection is in or out.
type ZoomDirection string

const (
	ZoomIn  ZoomDirection = "in"
	ZoomOut ZoomDirection = "out"
)

// ParseZoomDirection accepts in/out and +/-.
func ParseZoomDirection(s string) (ZoomDirection, error) {
	switch s {
	case "in", "+":
		return ZoomIn, nil
	case "out", "-":
		return ZoomOut, nil
	}
	return "", fmt.Errorf("unknown zoom direction %q", s)
}

// Normalize truncates bounds to days, snaps zoom to the step grid inside
// [MinZoom, MaxZoom] and defaults an unknown mode to day. A zero zoom
// becomes DefaultZoom.
func (v Viewport) Normalize() Viewport {
	v.Start = dates.Day(v.Start)
	v.End = dates.Day(v.End)
	v.Mode = v.Mode.orDefault()
	if v.Zoom == 0 || math.IsNaN(v.Zoom) {
		v.Zoom = DefaultZoom
	}
	v.Zoom = snapZoom(v.Zoom)
	return v
}

// Degenerate reports whether the window has no positive width.
func (v Viewport) Degenerate() bool {
	return v.Start.IsZero() || v.End.IsZero() || !v.End.After(v.Start)
}

// Contains reports whether t falls inside the window.
func (v Viewport) Contains(t time.Time) bool {
	if t.IsZero() || v.Degenerate() {
		return false
	}
	t = dates.Day(t)
	return !t.Before(dates.Day(v.Start)) && !t.After(dates.Day(v.End))
}

// Pan shifts both bounds by one mode step: 7 days, 28 days, or 3 months.
// Month steps keep the day-of-month, clamped where it overflows; an end
// bound on the last day of its month stays on the last day, so whole-month
// windows pan to whole-month windows.
func Pan(v Viewport, dir PanDirection) Viewport {
	sign := 1
	if dir == PanPrev {
		sign = -1
	}
	switch v.Mode.orDefault() {
	case ViewMonth:
		v.Start = dates.AddMonths(v.Start, 3*sign)
		v.End = shiftMonthEnd(v.End, 3*sign)
	case ViewWeek:
		v.Start = shiftDays(v.Start, 28*sign)
		v.End = shiftDays(v.End, 28*sign)
	default:
		v.Start = shiftDays(v.Start, 7*sign)
		v.End = shiftDays(v.End, 7*sign)
	}
	return v
}

func shiftMonthEnd(t time.Time, n int) time.Time {
	if t.IsZero() {
		return t
	}
	t = dates.Day(t)
	shifted := dates.AddMonths(t, n)
	if t.Day() == dates.DaysIn(t.Year(), t.Month()) {
		return time.Date(shifted.Year(), shifted.Month(), dates.DaysIn(shifted.Year(), shifted.Month()), 0, 0, 0, 0, time.UTC)
	}
	return shifted
}

func shiftDays(t time.Time, n int) time.Time {
	if t.IsZero() {
		return t
	}
	return dates.Day(t).AddDate(0, 0, n)
}

// SetViewMode changes the resolution and leaves the bounds alone.
func SetViewMode(v Viewport, mode ViewMode) Viewport {
	v.Mode = mode.orDefault()
	return v
}

// Zoom steps the zoom factor by ZoomStep within [MinZoom, MaxZoom].
func Zoom(v Viewport, dir ZoomDirection) Viewport {
	z := v.Zoom
	if z == 0 {
		z = DefaultZoom
	}
	if dir == ZoomOut {
		z -= ZoomStep
	} else {
		z += ZoomStep
	}
	v.Zoom = snapZoom(z)
	return v
}

func snapZoom(z float64) float64 {
	return clamp(math.Round(z/ZoomStep)*ZoomStep, MinZoom, MaxZoom)
}

// DefaultViewport is the window shown before the user navigates: a week of
// lead-in then four weeks in day mode, twelve weeks in week mode, or six
// calendar months starting this month in month mode.
func DefaultViewport(today time.Time, mode ViewMode) Viewport {
	today = dates.Day(today)
	mode = mode.orDefault()
	v := Viewport{Mode: mode, Zoom: DefaultZoom}
	switch mode {
	case ViewMonth:
		v.Start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		v.End = dates.AddMonths(v.Start, 6).AddDate(0, 0, -1)
	case ViewWeek:
		v.Start = today.AddDate(0, 0, -7)
		v.End = v.Start.AddDate(0, 0, 7*12)
	default:
		v.Start = today.AddDate(0, 0, -7)
		v.End = v.Start.AddDate(0, 0, 35)
	}
	return v
}

// FitViewport covers every valid activity and ITR due date in the snapshot,
// padded by one mode step. Without any valid date it returns the default
// window.
func FitViewport(snap Snapshot, mode ViewMode, today time.Time) Viewport {
	var lo, hi time.Time
	extend := func(t time.Time) {
		if t.IsZero() {
			return
		}
		t = dates.Day(t)
		if lo.IsZero() || t.Before(lo) {
			lo = t
		}
		if hi.IsZero() || t.After(hi) {
			hi = t
		}
	}
	for _, act := range snap.Activities {
		if act.HasValidDates() {
			extend(act.StartDate)
			extend(act.EndDate)
		}
	}
	for _, rec := range snap.ITRs {
		extend(rec.DueDate)
	}
	if lo.IsZero() {
		return DefaultViewport(today, mode)
	}

	mode = mode.orDefault()
	v := Viewport{Mode: mode, Zoom: DefaultZoom}
	switch mode {
	case ViewMonth:
		v.Start = time.Date(lo.Year(), lo.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(hi.Year(), hi.Month(), 1, 0, 0, 0, 0, time.UTC)
		v.End = dates.AddMonths(last, 1).AddDate(0, 0, -1)
	case ViewWeek:
		v.Start = lo.AddDate(0, 0, -7)
		v.End = hi.AddDate(0, 0, 7)
	default:
		v.Start = lo.AddDate(0, 0, -1)
		v.End = hi.AddDate(0, 0, 1)
	}
	return v
}
