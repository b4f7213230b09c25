package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"
	"github.com/rpggio/precomm/internal/gantt"
)

// SVGOptions controls SVG output.
type SVGOptions struct {
	Width    int
	DarkMode bool
	Title    string
}

const (
	svgDefaultWidth = 1200
	svgLabelWidth   = 300
	svgMargin       = 16
	svgHeaderHeight = 56
	svgAxisHeight   = 28
	svgBaseRow      = 22
	svgLegendHeight = 40
)

type svgRow struct {
	group    *gantt.GroupNode
	activity *gantt.ActivityRow
	itr      *gantt.ITRRow
	depth    int
}

// WriteSVG draws the model: title, axis with tick grid, one row per group,
// activity and ITR, a today line and a legend. Row height and bar
// thickness scale with the viewport zoom.
func WriteSVG(w io.Writer, m *gantt.Model, opts SVGOptions) error {
	if opts.Width <= 0 {
		opts.Width = svgDefaultWidth
	}
	p := NewPalette(opts.DarkMode)
	rows := flattenRows(m)

	zoom := m.Viewport.Zoom
	if zoom <= 0 {
		zoom = gantt.DefaultZoom
	}
	rowH := int(math.Round(svgBaseRow * zoom))
	barH := max(int(math.Round(float64(rowH)*0.6)), 4)

	laneX := svgMargin + svgLabelWidth
	laneW := opts.Width - laneX - svgMargin
	top := svgHeaderHeight + svgAxisHeight
	height := top + max(len(rows), 1)*rowH + svgLegendHeight + svgMargin

	xOf := func(pos float64) int { return laneX + int(math.Round(pos/100*float64(laneW))) }

	canvas := svg.New(w)
	canvas.Start(opts.Width, height)
	canvas.Rect(0, 0, opts.Width, height, fmt.Sprintf("fill:%s", p.Background))

	title := opts.Title
	if title == "" {
		title = "Pre-commissioning schedule"
	}
	canvas.Roundrect(svgMargin, svgMargin/2, opts.Width-2*svgMargin, svgHeaderHeight-svgMargin, 8, 8, fmt.Sprintf("fill:%s", p.Header))
	canvas.Text(svgMargin*2, svgMargin+18, title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", p.Text))
	canvas.Text(svgMargin*2, svgMargin+34, fmt.Sprintf("%s to %s  |  %s view  |  %d/%d ITRs done, %d overdue",
		m.Viewport.Start.Format("2006-01-02"), m.Viewport.End.Format("2006-01-02"), m.Viewport.Mode,
		m.Totals.Completed, m.Totals.Total, m.Totals.Overdue),
		fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", p.Subtle))

	gridBottom := top + max(len(rows), 1)*rowH
	for _, tick := range m.Ticks {
		x := xOf(tick.Position)
		canvas.Line(x, svgHeaderHeight+svgAxisHeight-6, x, gridBottom, fmt.Sprintf("stroke:%s;stroke-width:1", p.Grid))
		canvas.Text(x+2, svgHeaderHeight+svgAxisHeight-10, tick.Label, fmt.Sprintf("fill:%s;font-size:10px;font-family:monospace", p.Subtle))
	}

	if len(rows) == 0 {
		canvas.Text(laneX, top+rowH-6, "No activities match the current filter", fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", p.Subtle))
	}

	for i, r := range rows {
		y := top + i*rowH
		textY := y + rowH - (rowH-barH)/2 - 3
		indent := svgMargin + r.depth*14
		maxChars := (svgLabelWidth - r.depth*14) / 7
		barY := y + (rowH-barH)/2

		switch {
		case r.group != nil:
			canvas.Rect(svgMargin, y, opts.Width-2*svgMargin, rowH, fmt.Sprintf("fill:%s;fill-opacity:0.6", p.Header))
			text := fmt.Sprintf("%s  %d/%d", r.group.Label, r.group.Aggregate.Completed, r.group.Aggregate.Total)
			canvas.Text(indent, textY, runewidth.Truncate(text, maxChars, "…"), fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;font-weight:bold", p.Text))
			if m.Mode == gantt.RenderSummary {
				drawAggregateBar(canvas, p, r.group.Aggregate, laneX, barY, laneW, barH)
			}

		case r.activity != nil:
			a := r.activity
			canvas.Text(indent, textY, runewidth.Truncate(a.Name, maxChars, "…"), fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", p.Text))
			if a.Bar == nil {
				canvas.Text(laneX+4, textY, "invalid dates", fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace;font-style:italic", p.Subtle))
				continue
			}
			x := xOf(a.Bar.Left)
			bw := max(xOf(a.Bar.Right())-x, 2)
			canvas.Roundrect(x, barY, bw, barH, 3, 3, fmt.Sprintf("fill:%s;fill-opacity:0.35", p.Hex(a.Color)))
			done := int(math.Round(float64(bw) * a.Progress / 100))
			if done > 0 {
				canvas.Roundrect(x, barY, done, barH, 3, 3, fmt.Sprintf("fill:%s", p.Hex(a.Color)))
			}

		case r.itr != nil:
			it := r.itr
			canvas.Text(indent, textY, runewidth.Truncate(fmt.Sprintf("%s %d/%d", it.Description, it.QuantityDone, it.QuantityTotal), maxChars, "…"),
				fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", p.Subtle))
			if it.Bar == nil {
				continue
			}
			x := xOf(it.Bar.Left)
			bw := max(xOf(it.Bar.Right())-x, 2)
			h := max(barH/2, 3)
			canvas.Rect(x, barY+(barH-h)/2, bw, h, fmt.Sprintf("fill:%s", p.Hex(it.Color)))
		}
	}

	if m.TodayPosition != nil {
		x := xOf(*m.TodayPosition)
		canvas.Line(x, top-6, x, gridBottom, fmt.Sprintf("stroke:%s;stroke-width:2;stroke-dasharray:4,3", p.Today))
		canvas.Text(x+3, top-8, "today", fmt.Sprintf("fill:%s;font-size:10px;font-family:monospace", p.Today))
	}

	drawLegendSVG(canvas, p, svgMargin, gridBottom+svgLegendHeight/2+6)
	canvas.End()
	return nil
}

func drawAggregateBar(canvas *svg.SVG, p Palette, agg gantt.Aggregate, x, y, w, h int) {
	if agg.Total == 0 {
		canvas.Rect(x, y, w, h, fmt.Sprintf("fill:%s", p.Hex(gantt.ColorGray)))
		return
	}
	completed := w * agg.Completed / agg.Total
	overdue := w * agg.Overdue / agg.Total
	canvas.Rect(x, y, w, h, fmt.Sprintf("fill:%s;fill-opacity:0.35", p.Hex(gantt.ColorGray)))
	canvas.Rect(x, y, completed, h, fmt.Sprintf("fill:%s", p.Hex(gantt.ColorGreen)))
	canvas.Rect(x+completed, y, overdue, h, fmt.Sprintf("fill:%s", p.Hex(gantt.ColorRed)))
}

func drawLegendSVG(canvas *svg.SVG, p Palette, x, y int) {
	for _, st := range gantt.Statuses {
		canvas.Roundrect(x, y-10, 14, 14, 3, 3, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", p.Hex(gantt.ColorFor(st)), p.Grid))
		canvas.Text(x+20, y, string(st), fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", p.Subtle))
		x += 40 + 8*len(st)
	}
}

func flattenRows(m *gantt.Model) []svgRow {
	var rows []svgRow
	var visit func(n *gantt.GroupNode, depth int)
	visit = func(n *gantt.GroupNode, depth int) {
		rows = append(rows, svgRow{group: n, depth: depth})
		for _, a := range n.Activities {
			rows = append(rows, svgRow{activity: a, depth: depth + 1})
			for _, it := range a.ITRs {
				rows = append(rows, svgRow{itr: it, depth: depth + 2})
			}
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, g := range m.Groups {
		visit(g, 0)
	}
	return rows
}
