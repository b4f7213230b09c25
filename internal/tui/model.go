// Package tui is the interactive terminal Gantt: pan, zoom and view-mode
// navigation, keyboard and mouse hover, and reload on data changes.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rpggio/precomm/internal/dates"
	"github.com/rpggio/precomm/internal/gantt"
	"github.com/rpggio/precomm/internal/render"
)

// headerLines is the number of rows above the first chart line.
const headerLines = 1

// Loader fetches a fresh snapshot.
type Loader func(ctx context.Context) (gantt.Snapshot, error)

// Options configures New.
type Options struct {
	Load Loader
	// Changes, when set, triggers a reload on every receive.
	Changes    <-chan struct{}
	Filter     gantt.FilterSpec
	ViewMode   gantt.ViewMode
	RenderMode gantt.RenderMode
	DarkMode   bool
	Engine     *gantt.Engine
	Logger     *slog.Logger
	Now        func() time.Time
}

type snapshotMsg struct {
	snap gantt.Snapshot
	err  error
}

type changedMsg struct{}

// Model is the bubbletea model.
type Model struct {
	opts    Options
	engine  *gantt.Engine
	logger  *slog.Logger
	keys    keyMap
	help    help.Model
	palette render.Palette

	snap     gantt.Snapshot
	loaded   bool
	err      error
	today    time.Time
	viewport gantt.Viewport
	mode     gantt.RenderMode

	chart   *gantt.Model
	lines   []render.Line
	tooltip *gantt.Tooltip
	// cursor indexes lines; -1 when nothing is selected by keyboard.
	cursor int

	width  int
	height int
}

// New creates the model. The first snapshot is requested by Init.
func New(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Engine == nil {
		opts.Engine = gantt.NewEngine(opts.Logger)
	}
	mode := opts.RenderMode
	if _, err := gantt.ParseRenderMode(string(mode)); err != nil {
		mode = gantt.RenderFull
	}
	today := dates.Day(opts.Now())
	h := help.New()
	return Model{
		opts:     opts,
		engine:   opts.Engine,
		logger:   opts.Logger,
		keys:     newKeyMap(),
		help:     h,
		palette:  render.NewPalette(opts.DarkMode),
		today:    today,
		viewport: gantt.DefaultViewport(today, opts.ViewMode),
		mode:     mode,
		tooltip:  gantt.NewTooltip(),
		cursor:   -1,
		width:    100,
		height:   30,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.waitForChange())
}

func (m Model) load() tea.Cmd {
	load := m.opts.Load
	return func() tea.Msg {
		if load == nil {
			return snapshotMsg{}
		}
		snap, err := load(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.opts.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		if msg.err != nil {
			m.logger.Warn("snapshot load failed", "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.snap = msg.snap
		m.loaded = true
		m.today = dates.Day(m.opts.Now())
		m.recompute()
		return m, nil

	case changedMsg:
		m.logger.Debug("data changed, reloading")
		return m, tea.Batch(m.load(), m.waitForChange())

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.panPrev):
		m.viewport = gantt.Pan(m.viewport, gantt.PanPrev)
	case key.Matches(msg, m.keys.panNext):
		m.viewport = gantt.Pan(m.viewport, gantt.PanNext)
	case key.Matches(msg, m.keys.dayView):
		m.viewport = gantt.SetViewMode(m.viewport, gantt.ViewDay)
	case key.Matches(msg, m.keys.weekView):
		m.viewport = gantt.SetViewMode(m.viewport, gantt.ViewWeek)
	case key.Matches(msg, m.keys.monthView):
		m.viewport = gantt.SetViewMode(m.viewport, gantt.ViewMonth)
	case key.Matches(msg, m.keys.zoomIn):
		m.viewport = gantt.Zoom(m.viewport, gantt.ZoomIn)
	case key.Matches(msg, m.keys.zoomOut):
		m.viewport = gantt.Zoom(m.viewport, gantt.ZoomOut)
	case key.Matches(msg, m.keys.today):
		vp := gantt.DefaultViewport(m.today, m.viewport.Mode)
		vp.Zoom = m.viewport.Zoom
		m.viewport = vp
	case key.Matches(msg, m.keys.fit):
		vp := gantt.FitViewport(m.snap, m.viewport.Mode, m.today)
		vp.Zoom = m.viewport.Zoom
		m.viewport = vp
	case key.Matches(msg, m.keys.cycleMode):
		m.mode = m.mode.Next()
	case key.Matches(msg, m.keys.hoverNext):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.hoverPrev):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	default:
		return m, nil
	}
	m.recompute()
	return m, nil
}

// handleMouse maps motion without a button to a hover on the line under
// the cursor. Other mouse events dismiss the tooltip.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionMotion || msg.Button != tea.MouseButtonNone {
		m.tooltip.Leave()
		return
	}
	idx := msg.Y - headerLines
	pos := gantt.Point{X: float64(msg.X), Y: float64(msg.Y)}
	if idx < 0 || idx >= len(m.lines) || !m.lines[idx].Hoverable() {
		m.tooltip.Leave()
		m.cursor = -1
		return
	}
	m.cursor = idx
	m.hover(m.lines[idx], pos)
}

// moveCursor steps to the next hoverable line in dir, wrapping around.
func (m *Model) moveCursor(dir int) {
	n := len(m.lines)
	if n == 0 {
		return
	}
	start := m.cursor
	if start < 0 && dir < 0 {
		start = n
	}
	for i := 1; i <= n; i++ {
		idx := ((start+dir*i)%n + n) % n
		if m.lines[idx].Hoverable() {
			m.cursor = idx
			l := m.lines[idx]
			m.hover(l, gantt.Point{X: float64(m.labelWidth() + 1 + l.LaneFrom), Y: float64(idx + headerLines)})
			return
		}
	}
}

func (m *Model) hover(l render.Line, pos gantt.Point) {
	id := ""
	if l.Activity != nil {
		id = l.Activity.ID
	} else if l.ITR != nil {
		id = l.ITR.ID
	}
	if st := m.tooltip.State(); st.Kind != gantt.TooltipIdle && st.EntityID == id {
		m.tooltip.Move(pos)
		return
	}
	if l.Activity != nil {
		m.tooltip.EnterActivity(l.Activity, pos)
	} else {
		m.tooltip.EnterITR(l.ITR, pos)
	}
}

func (m *Model) recompute() {
	if !m.loaded {
		return
	}
	m.chart = m.engine.Compute(gantt.Request{
		Snapshot: m.snap,
		Filter:   m.opts.Filter,
		Viewport: m.viewport,
		Today:    m.today,
		Mode:     m.mode,
	})
	m.viewport = m.chart.Viewport
	m.relayout()
}

// relayout re-renders lines and drops a hover whose entity is gone.
func (m *Model) relayout() {
	if m.chart == nil {
		return
	}
	m.lines = render.Lines(m.chart, m.textOptions())
	st := m.tooltip.State()
	if st.Kind == gantt.TooltipIdle {
		return
	}
	for i, l := range m.lines {
		if (l.Activity != nil && l.Activity.ID == st.EntityID) || (l.ITR != nil && l.ITR.ID == st.EntityID) {
			m.cursor = i
			if l.Activity != nil {
				m.tooltip.EnterActivity(l.Activity, st.Pos)
			} else {
				m.tooltip.EnterITR(l.ITR, st.Pos)
			}
			return
		}
	}
	m.tooltip.Leave()
	m.cursor = -1
}

func (m Model) textOptions() render.TextOptions {
	return render.TextOptions{
		Width:      m.width,
		LabelWidth: m.labelWidth(),
		Color:      true,
		DarkMode:   m.opts.DarkMode,
	}
}

func (m Model) labelWidth() int {
	return min(max(m.width/3, 16), 40)
}

func (m Model) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.palette.Today))
	fmt.Fprintf(&b, "%s  %s → %s  %s  zoom %.2f  %s\n",
		title.Render("precomm"),
		dates.Format(m.viewport.Start), dates.Format(m.viewport.End),
		m.viewport.Mode, m.viewport.Zoom, m.mode)

	switch {
	case m.err != nil:
		b.WriteString("error: " + m.err.Error() + "\n")
	case !m.loaded:
		b.WriteString("loading…\n")
	default:
		for i, l := range m.lines {
			if i == m.cursor {
				b.WriteString(lipgloss.NewStyle().Reverse(true).Render(l.Text))
			} else {
				b.WriteString(l.Text)
			}
			b.WriteByte('\n')
		}
	}

	if m.tooltip.Active() {
		b.WriteString(m.tooltipView())
		b.WriteByte('\n')
	}
	b.WriteString(render.Legend(m.textOptions()))
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) tooltipView() string {
	st := m.tooltip.State()
	lines := []string{lipgloss.NewStyle().Bold(true).Render(st.Title)}
	if strings.Trim(st.Subtitle, " /") != "" {
		lines = append(lines, st.Subtitle)
	}
	lines = append(lines, fmt.Sprintf("%s  %.0f%%  %s", st.Status, st.Progress, st.Quantity))
	switch {
	case !st.Start.IsZero():
		lines = append(lines, dates.Format(st.Start)+" → "+dates.Format(st.End))
	case !st.End.IsZero():
		lines = append(lines, "due "+dates.Format(st.End))
	}
	if st.Overdue > 0 {
		lines = append(lines, fmt.Sprintf("%d days overdue", st.Overdue))
	}
	if st.MCC {
		lines = append(lines, "MCC issued")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.palette.Hex(st.Color))).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Tooltip returns the current hover state.
func (m Model) Tooltip() gantt.TooltipState { return m.tooltip.State() }

// Viewport returns the current window.
func (m Model) Viewport() gantt.Viewport { return m.viewport }

// Run starts the program in the alternate screen with mouse motion events.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
