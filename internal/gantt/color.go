package gantt

import "fmt"

// Color is a theme-agnostic color token. The presentation layer maps tokens
// to concrete values per theme.
type Color string

const (
	ColorRed   Color = "red"
	ColorGreen Color = "green"
	ColorAmber Color = "amber"
	ColorGray  Color = "gray"
)

// ColorFor maps a status to its color token. Unknown statuses panic in
// builds tagged ganttdebug and render gray otherwise.
func ColorFor(s Status) Color {
	switch s {
	case StatusOverdue:
		return ColorRed
	case StatusCompleted:
		return ColorGreen
	case StatusInProgress:
		return ColorAmber
	case StatusNotStarted:
		return ColorGray
	}
	if debugColors {
		panic(fmt.Sprintf("gantt: no color for status %q", string(s)))
	}
	return ColorGray
}
