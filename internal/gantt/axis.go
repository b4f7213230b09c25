package gantt

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/precomm/internal/dates"
)

// ViewMode is the time resolution of the axis and of pan steps.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// maxTicks is the most ticks a model axis carries before TickMode falls back
// to a coarser resolution.
const maxTicks = 5000

// ViewModes lists the supported modes in display order.
var ViewModes = []ViewMode{ViewDay, ViewWeek, ViewMonth}

// Valid reports whether m is one of the supported modes.
func (m ViewMode) Valid() bool {
	switch m {
	case ViewDay, ViewWeek, ViewMonth:
		return true
	}
	return false
}

// ParseViewMode accepts a mode name in any case.
func ParseViewMode(s string) (ViewMode, error) {
	m := ViewMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown view mode %q", s)
	}
	return m, nil
}

func (m ViewMode) orDefault() ViewMode {
	if m.Valid() {
		return m
	}
	return ViewDay
}

// AxisDates returns the ascending tick dates from start to end inclusive,
// stepping one day, one week, or one calendar month. Month steps are taken
// from start itself, so a day-of-month missing from a target month clamps to
// that month's last day without drifting later ticks. An inverted or
// incomplete range yields nil.
func AxisDates(start, end time.Time, mode ViewMode) []time.Time {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	start, end = dates.Day(start), dates.Day(end)
	if start.After(end) {
		return nil
	}

	var ticks []time.Time
	for i := 0; ; i++ {
		var t time.Time
		switch mode.orDefault() {
		case ViewWeek:
			t = start.AddDate(0, 0, 7*i)
		case ViewMonth:
			t = dates.AddMonths(start, i)
		default:
			t = start.AddDate(0, 0, i)
		}
		if t.After(end) {
			break
		}
		ticks = append(ticks, t)
	}
	return ticks
}

// Tick is one labelled axis mark.
type Tick struct {
	Date     time.Time `json:"date"`
	Position float64   `json:"position"`
	Label    string    `json:"label"`
}

// TickMode is the resolution the axis of vp is drawn at: the viewport's own
// mode, or the next coarser one while that would exceed maxTicks. Month is
// the coarsest and is never replaced.
func TickMode(vp Viewport) ViewMode {
	mode := vp.Mode.orDefault()
	if vp.Start.IsZero() || vp.End.IsZero() {
		return mode
	}
	days := dates.DaysBetween(dates.Day(vp.Start), dates.Day(vp.End))
	if mode == ViewDay && days+1 > maxTicks {
		mode = ViewWeek
	}
	if mode == ViewWeek && days/7+1 > maxTicks {
		mode = ViewMonth
	}
	return mode
}

// Ticks positions and labels the axis for a viewport at TickMode(vp).
func Ticks(vp Viewport) []Tick {
	mode := TickMode(vp)
	axis := AxisDates(vp.Start, vp.End, mode)
	ticks := make([]Tick, 0, len(axis))
	for _, d := range axis {
		ticks = append(ticks, Tick{
			Date:     d,
			Position: Position(d, vp.Start, vp.End),
			Label:    TickLabel(d, mode),
		})
	}
	return ticks
}

// TickLabel formats a tick date for the given mode.
func TickLabel(d time.Time, mode ViewMode) string {
	switch mode.orDefault() {
	case ViewMonth:
		return d.Format("Jan 2006")
	case ViewWeek:
		_, wk := d.ISOWeek()
		return fmt.Sprintf("W%02d %s", wk, d.Format("Jan 2"))
	default:
		return d.Format("Jan 2")
	}
}
