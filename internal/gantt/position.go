package gantt

import (
	"time"

	"github.com/rpggio/precomm/internal/dates"
)

// MinBarWidth keeps zero-length bars visible and hoverable.
const MinBarWidth = 0.5

// Position maps a date to [0, 100] across the window [start, end]. A window
// with no width maps every date to 0.
func Position(t, start, end time.Time) float64 {
	if t.IsZero() || start.IsZero() || end.IsZero() {
		return 0
	}
	t, start, end = dates.Day(t), dates.Day(start), dates.Day(end)
	span := end.Sub(start)
	if span <= 0 {
		return 0
	}
	return clamp(float64(t.Sub(start))/float64(span)*100, 0, 100)
}

// Span is the horizontal placement of a bar in percent of the window.
type Span struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
	// Visible is false when the bar lies entirely outside the window; it is
	// then pinned to the nearest edge.
	Visible bool `json:"visible"`
}

// Right is the bar's right edge.
func (s Span) Right() float64 { return s.Left + s.Width }

// BarSpan places the interval [from, to] in the window. A reversed interval
// collapses to its start, and every bar is at least MinBarWidth wide.
func BarSpan(from, to, winStart, winEnd time.Time) Span {
	from, to = dates.Day(from), dates.Day(to)
	if to.Before(from) {
		to = from
	}
	left := Position(from, winStart, winEnd)
	right := Position(to, winStart, winEnd)
	width := right - left
	if width < MinBarWidth {
		width = MinBarWidth
	}
	if left+width > 100 {
		left = 100 - width
	}

	ws, we := dates.Day(winStart), dates.Day(winEnd)
	visible := !ws.IsZero() && !we.IsZero() && !ws.After(we) &&
		!to.Before(ws) && !from.After(we)

	return Span{Left: left, Width: width, Visible: visible}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
