// Package gantt derives the Gantt timeline model: it filters a snapshot of
// projects, activities and ITRs, groups it into a project, system,
// subsystem tree, derives status and progress relative to a supplied today,
// and places every bar in the current viewport. Everything here is pure.
package gantt

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/precomm/internal/dates"
)

// RenderMode selects how much of the tree the model carries.
type RenderMode string

const (
	// RenderFull keeps activity and ITR rows.
	RenderFull RenderMode = "full"
	// RenderSimplified keeps activity rows only.
	RenderSimplified RenderMode = "simplified"
	// RenderSummary keeps group aggregates only.
	RenderSummary RenderMode = "summary"
)

// RenderModes lists the modes in cycling order.
var RenderModes = []RenderMode{RenderFull, RenderSimplified, RenderSummary}

// ParseRenderMode accepts a mode name in any case.
func ParseRenderMode(s string) (RenderMode, error) {
	m := RenderMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case RenderFull, RenderSimplified, RenderSummary:
		return m, nil
	}
	return "", fmt.Errorf("unknown render mode %q", s)
}

// Next cycles to the following mode.
func (m RenderMode) Next() RenderMode {
	for i, rm := range RenderModes {
		if rm == m {
			return RenderModes[(i+1)%len(RenderModes)]
		}
	}
	return RenderFull
}

// Request is the complete input of Compute.
type Request struct {
	Snapshot Snapshot
	Filter   FilterSpec
	Viewport Viewport
	Today    time.Time
	Mode     RenderMode
}

// InvalidRecord names a record kept out of bar geometry because of its dates.
type InvalidRecord struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

const (
	ReasonInvalidDates    = "invalid dates"
	ReasonUnknownActivity = "unknown activity"
)

// Model is the grouped, positioned, colorized timeline.
type Model struct {
	Viewport Viewport   `json:"viewport"`
	Mode     RenderMode `json:"mode"`
	Today    time.Time  `json:"today"`
	// TodayPosition is nil when today is outside the window.
	TodayPosition *float64 `json:"today_position,omitempty"`

	// TickMode is the axis resolution, coarser than Viewport.Mode when the
	// window is too wide for it.
	TickMode      ViewMode        `json:"tick_mode"`
	Ticks         []Tick          `json:"ticks"`
	Groups        []*GroupNode    `json:"groups"`
	Taxonomy      []TaxonomyEntry `json:"taxonomy"`
	Totals        Aggregate       `json:"totals"`
	Invalid       []InvalidRecord `json:"invalid,omitempty"`
}

// Empty reports whether no activity survived filtering.
func (m *Model) Empty() bool {
	return len(m.Groups) == 0
}

// Compute runs filter, grouping, derivation and placement. It never fails:
// bad dates are flagged on rows and listed in Invalid, and a degenerate
// window yields no ticks and zero positions.
func Compute(req Request) *Model {
	vp := req.Viewport.Normalize()
	today := dates.Day(req.Today)
	mode := req.Mode
	if _, err := ParseRenderMode(string(mode)); err != nil {
		mode = RenderFull
	}

	sel := Filter(req.Snapshot, req.Filter, today)
	groups := Group(sel, req.Snapshot.Projects, vp, today)

	m := &Model{
		Viewport: vp,
		Mode:     mode,
		Today:    today,
		TickMode: TickMode(vp),
		Ticks:    Ticks(vp),
		Groups:   groups,
		Taxonomy: BuildTaxonomy(req.Snapshot.Activities).Entries(),
		Invalid:  append(invalidRecords(groups), orphanRecords(req.Snapshot)...),
	}
	if m.Groups == nil {
		m.Groups = []*GroupNode{}
	}
	if vp.Contains(today) {
		pos := Position(today, vp.Start, vp.End)
		m.TodayPosition = &pos
	}

	var all []*ActivityRow
	Walk(groups, func(_ []*GroupNode, row *ActivityRow) { all = append(all, row) })
	m.Totals = aggregateRows(all)

	trim(groups, mode)
	return m
}

func invalidRecords(groups []*GroupNode) []InvalidRecord {
	var out []InvalidRecord
	Walk(groups, func(_ []*GroupNode, row *ActivityRow) {
		if row.InvalidDates {
			out = append(out, InvalidRecord{Kind: "activity", ID: row.ID, Name: row.Name, Reason: ReasonInvalidDates})
		}
		for _, r := range row.ITRs {
			if r.InvalidDate {
				out = append(out, InvalidRecord{Kind: "itr", ID: r.ID, Name: r.Description, Reason: ReasonInvalidDates})
			}
		}
	})
	return out
}

// orphanRecords lists ITRs whose activity is missing from the snapshot. They
// cannot be grouped, so they are reported regardless of the filter.
func orphanRecords(snap Snapshot) []InvalidRecord {
	known := make(map[string]struct{}, len(snap.Activities))
	for _, act := range snap.Activities {
		known[act.ID] = struct{}{}
	}
	var out []InvalidRecord
	for _, rec := range snap.ITRs {
		if _, ok := known[rec.ActivityID]; !ok {
			out = append(out, InvalidRecord{Kind: "itr", ID: rec.ID, Name: rec.Description, Reason: ReasonUnknownActivity})
		}
	}
	return out
}

// trim drops the rows a render mode does not draw. Aggregates are computed
// before trimming and stay intact.
func trim(nodes []*GroupNode, mode RenderMode) {
	for _, n := range nodes {
		switch mode {
		case RenderSummary:
			n.Activities = nil
		case RenderSimplified:
			for _, row := range n.Activities {
				row.ITRs = nil
			}
		}
		trim(n.Children, mode)
	}
}
