// Package render draws a gantt.Model for terminals and as SVG.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rpggio/precomm/internal/gantt"
)

var statusColors = map[gantt.Color]lipgloss.AdaptiveColor{
	gantt.ColorRed:   {Light: "#D32F2F", Dark: "#FF6B6B"},
	gantt.ColorGreen: {Light: "#2E7D32", Dark: "#50FA7B"},
	gantt.ColorAmber: {Light: "#F9A825", Dark: "#FFB86C"},
	gantt.ColorGray:  {Light: "#9E9E9E", Dark: "#6272A4"},
}

var (
	colorBackground = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
	colorText       = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E8E8E8"}
	colorSubtle     = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#A0A0B0"}
	colorGrid       = lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"}
	colorToday      = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#8BE9FD"}
	colorHeader     = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#343746"}
)

// Palette is a resolved set of hex colors for one theme.
type Palette struct {
	Dark       bool
	Background string
	Text       string
	Subtle     string
	Grid       string
	Today      string
	Header     string
	status     map[gantt.Color]string
}

// NewPalette resolves the theme. The status to color token mapping stays in
// gantt; only the token to hex step depends on darkMode.
func NewPalette(darkMode bool) Palette {
	p := Palette{
		Dark:       darkMode,
		Background: pick(colorBackground, darkMode),
		Text:       pick(colorText, darkMode),
		Subtle:     pick(colorSubtle, darkMode),
		Grid:       pick(colorGrid, darkMode),
		Today:      pick(colorToday, darkMode),
		Header:     pick(colorHeader, darkMode),
		status:     make(map[gantt.Color]string, len(statusColors)),
	}
	for token, c := range statusColors {
		p.status[token] = pick(c, darkMode)
	}
	return p
}

// Hex returns the theme value of a color token, gray for unknown tokens.
func (p Palette) Hex(c gantt.Color) string {
	if hex, ok := p.status[c]; ok {
		return hex
	}
	return p.status[gantt.ColorGray]
}

// Adaptive returns the light/dark pair of a token for lipgloss styles that
// should follow the terminal background.
func Adaptive(c gantt.Color) lipgloss.AdaptiveColor {
	if ac, ok := statusColors[c]; ok {
		return ac
	}
	return statusColors[gantt.ColorGray]
}

func pick(c lipgloss.AdaptiveColor, dark bool) string {
	if dark {
		return c.Dark
	}
	return c.Light
}
