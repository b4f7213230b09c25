package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	panPrev    key.Binding
	panNext    key.Binding
	dayView    key.Binding
	weekView   key.Binding
	monthView  key.Binding
	zoomIn     key.Binding
	zoomOut    key.Binding
	hoverNext  key.Binding
	hoverPrev  key.Binding
	cycleMode  key.Binding
	today      key.Binding
	fit        key.Binding
	toggleHelp key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		panPrev: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "earlier"),
		),
		panNext: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "later"),
		),
		dayView: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "day view"),
		),
		weekView: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "week view"),
		),
		monthView: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "month view"),
		),
		zoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		zoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		hoverNext: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next row"),
		),
		hoverPrev: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev row"),
		),
		cycleMode: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "full/simplified/summary"),
		),
		today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		fit: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "fit all"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.panPrev, k.panNext, k.zoomIn, k.zoomOut, k.hoverNext, k.cycleMode, k.toggleHelp, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.panPrev, k.panNext, k.today, k.fit},
		{k.dayView, k.weekView, k.monthView},
		{k.zoomIn, k.zoomOut, k.cycleMode},
		{k.hoverNext, k.hoverPrev, k.toggleHelp, k.quit},
	}
}
