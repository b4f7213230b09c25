package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rpggio/precomm/internal/gantt"
)

// TextOptions controls terminal rendering.
type TextOptions struct {
	// Width is the total line width in cells.
	Width int
	// LabelWidth is the label column width; the bar lane gets the rest.
	LabelWidth int
	// Color enables lipgloss styling. Plain output is used for files and tests.
	Color    bool
	DarkMode bool
}

const (
	defaultWidth      = 100
	defaultLabelWidth = 32
	minLaneWidth      = 10
)

func (o TextOptions) withDefaults() TextOptions {
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.LabelWidth <= 0 {
		o.LabelWidth = defaultLabelWidth
	}
	if o.Width-o.LabelWidth-1 < minLaneWidth {
		o.LabelWidth = max(o.Width-minLaneWidth-1, 8)
	}
	return o
}

func (o TextOptions) laneWidth() int {
	return max(o.Width-o.LabelWidth-1, minLaneWidth)
}

// Line is one rendered row. Activity and ITR rows point back at the model
// so a hover cursor can be resolved to an entity.
type Line struct {
	Text     string
	Group    *gantt.GroupNode
	Activity *gantt.ActivityRow
	ITR      *gantt.ITRRow
	// Lane is the column span of the bar within the lane, if any.
	LaneFrom, LaneTo int
}

// Hoverable reports whether the line maps to an activity or ITR.
func (l Line) Hoverable() bool {
	return l.Activity != nil || l.ITR != nil
}

// Lines lays out the model as terminal rows: an axis header, then group
// headers, activity rows and ITR rows in display order.
func Lines(m *gantt.Model, opts TextOptions) []Line {
	opts = opts.withDefaults()
	styles := newTextStyles(opts)
	lane := opts.laneWidth()

	var lines []Line
	lines = append(lines, Line{Text: styles.subtle.Render(label("", opts.LabelWidth)+" "+axisLine(m, lane))})

	if m.Empty() {
		lines = append(lines, Line{Text: styles.subtle.Render("no activities match the current filter")})
		return lines
	}

	spacer := m.Viewport.Zoom >= 1.5
	glyph := barGlyph(m.Viewport.Zoom)

	var visit func(n *gantt.GroupNode, depth int)
	visit = func(n *gantt.GroupNode, depth int) {
		head := fmt.Sprintf("%s%s (%d/%d done, %d overdue)",
			strings.Repeat("  ", depth), n.Label, n.Aggregate.Completed, n.Aggregate.Total, n.Aggregate.Overdue)
		lines = append(lines, Line{Text: styles.header.Render(runewidth.Truncate(head, opts.Width, "…")), Group: n})

		for _, row := range n.Activities {
			from, to, ok := laneCols(row.Bar, lane)
			text := label(strings.Repeat("  ", depth+1)+row.Name, opts.LabelWidth) + " " +
				styles.bar(row.Color).Render(barLane(from, to, ok, lane, glyph, m.TodayPosition))
			if row.InvalidDates {
				text = label(strings.Repeat("  ", depth+1)+row.Name, opts.LabelWidth) + " " + styles.subtle.Render("(invalid dates)")
			}
			lines = append(lines, Line{Text: text, Activity: row, LaneFrom: from, LaneTo: to})

			for _, r := range row.ITRs {
				from, to, ok := laneCols(r.Bar, lane)
				text := label(fmt.Sprintf("%s· %s %d/%d", strings.Repeat("  ", depth+2), r.Description, r.QuantityDone, r.QuantityTotal), opts.LabelWidth) + " " +
					styles.bar(r.Color).Render(barLane(from, to, ok, lane, '▪', m.TodayPosition))
				lines = append(lines, Line{Text: text, ITR: r, LaneFrom: from, LaneTo: to})
			}
			if spacer {
				lines = append(lines, Line{})
			}
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, g := range m.Groups {
		visit(g, 0)
	}
	return lines
}

// WriteText writes the rendered lines followed by a legend.
func WriteText(w io.Writer, m *gantt.Model, opts TextOptions) error {
	for _, l := range Lines(m, opts) {
		if _, err := fmt.Fprintln(w, l.Text); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, Legend(opts))
	return err
}

// Legend describes the status colors.
func Legend(opts TextOptions) string {
	styles := newTextStyles(opts.withDefaults())
	parts := make([]string, 0, len(gantt.Statuses))
	for _, st := range gantt.Statuses {
		parts = append(parts, styles.bar(gantt.ColorFor(st)).Render("█")+" "+string(st))
	}
	return strings.Join(parts, "  ")
}

type textStyles struct {
	color  bool
	dark   bool
	header lipgloss.Style
	subtle lipgloss.Style
}

func newTextStyles(opts TextOptions) textStyles {
	s := textStyles{color: opts.Color, dark: opts.DarkMode, header: lipgloss.NewStyle(), subtle: lipgloss.NewStyle()}
	if opts.Color {
		p := NewPalette(opts.DarkMode)
		s.header = s.header.Bold(true).Foreground(lipgloss.Color(p.Text))
		s.subtle = s.subtle.Foreground(lipgloss.Color(p.Subtle))
	}
	return s
}

func (s textStyles) bar(c gantt.Color) lipgloss.Style {
	if !s.color {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(NewPalette(s.dark).Hex(c)))
}

func barGlyph(zoom float64) rune {
	switch {
	case zoom <= 0.75:
		return '▬'
	default:
		return '█'
	}
}

// laneCols converts a span to lane columns [from, to). Every bar gets at
// least one cell.
func laneCols(bar *gantt.Span, lane int) (int, int, bool) {
	if bar == nil {
		return 0, 0, false
	}
	from := int(math.Floor(bar.Left / 100 * float64(lane)))
	to := int(math.Ceil(bar.Right() / 100 * float64(lane)))
	from = min(max(from, 0), lane-1)
	to = min(max(to, from+1), lane)
	return from, to, true
}

func barLane(from, to int, ok bool, lane int, glyph rune, today *float64) string {
	cells := []rune(strings.Repeat(" ", lane))
	if today != nil {
		col := min(int(*today/100*float64(lane)), lane-1)
		cells[col] = '│'
	}
	if ok {
		for i := from; i < to; i++ {
			cells[i] = glyph
		}
	}
	return string(cells)
}

func axisLine(m *gantt.Model, lane int) string {
	cells := []rune(strings.Repeat(" ", lane))
	next := 0
	for _, tick := range m.Ticks {
		col := min(int(tick.Position/100*float64(lane)), lane-1)
		if col < next {
			continue
		}
		for i, r := range tick.Label {
			if col+i >= lane {
				break
			}
			cells[col+i] = r
		}
		next = col + runewidth.StringWidth(tick.Label) + 1
	}
	return string(cells)
}

func label(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
