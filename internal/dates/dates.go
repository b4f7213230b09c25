// Package dates holds the calendar-day helpers shared by persistence, the
// gantt core and the transports. Every date in the system is a UTC midnight.
package dates

import (
	"strings"
	"time"
)

// Layout is the storage and wire format for calendar days.
const Layout = "2006-01-02"

var parseLayouts = []string{
	Layout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// Day truncates t to midnight UTC of its calendar day. The zero time stays zero.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse reads a calendar day in any of the accepted layouts. It returns
// ok=false for blank or unparseable input.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), true
		}
	}
	return time.Time{}, false
}

// ParseOrZero is Parse without the flag: invalid input becomes the zero time.
func ParseOrZero(s string) time.Time {
	t, _ := Parse(s)
	return t
}

// Format renders a day in Layout, or "" for the zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(Layout)
}

// DaysBetween returns the whole number of days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths shifts t by n calendar months keeping the day-of-month. A day
// that overflows the target month is clamped to its last day (Jan 31 + 1 =
// Feb 29 in 2024, Feb 29 + 1 = Mar 29).
func AddMonths(t time.Time, n int) time.Time {
	if t.IsZero() {
		return t
	}
	t = Day(t)
	y, m, d := t.Date()
	total := int(m) - 1 + n
	ty := y + total/12
	tm := total % 12
	if tm < 0 {
		tm += 12
		ty--
	}
	target := time.Month(tm + 1)
	last := DaysIn(ty, target)
	if d > last {
		d = last
	}
	return time.Date(ty, target, d, 0, 0, 0, 0, time.UTC)
}
