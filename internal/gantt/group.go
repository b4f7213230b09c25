package gantt

import (
	"sort"
	"time"

	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/domain/project"
	"gonum.org/v1/gonum/stat"
)

// Level names a grouping tier.
type Level string

const (
	LevelProject   Level = "project"
	LevelSystem    Level = "system"
	LevelSubsystem Level = "subsystem"
)

// Aggregate summarizes the ITRs under a node.
type Aggregate struct {
	Activities     int     `json:"activities"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Overdue        int     `json:"overdue"`
	AvgOverdueDays float64 `json:"avg_overdue_days"`
}

// GroupNode is one bucket of the project, system, subsystem tree. Only
// subsystem nodes carry activities.
type GroupNode struct {
	Level      Level          `json:"level"`
	Key        string         `json:"key"`
	Label      string         `json:"label"`
	Children   []*GroupNode   `json:"children,omitempty"`
	Activities []*ActivityRow `json:"activities,omitempty"`
	Aggregate  Aggregate      `json:"aggregate"`
}

// ActivityRow is a positioned, colorized activity.
type ActivityRow struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	Name         string    `json:"name"`
	System       string    `json:"system"`
	Subsystem    string    `json:"subsystem"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	DurationDays int       `json:"duration_days"`
	Status       Status    `json:"status"`
	Progress     float64   `json:"progress"`
	Color        Color     `json:"color"`
	// Bar is nil when the dates are invalid.
	Bar          *Span     `json:"bar,omitempty"`
	InvalidDates bool      `json:"invalid_dates,omitempty"`
	ITRCount     int       `json:"itr_count"`
	ITRs         []*ITRRow `json:"itrs,omitempty"`

	states []ITRState
}

// ITRRow is a positioned, colorized ITR.
type ITRRow struct {
	ID            string    `json:"id"`
	ActivityID    string    `json:"activity_id"`
	Description   string    `json:"description"`
	QuantityTotal int       `json:"quantity_total"`
	QuantityDone  int       `json:"quantity_done"`
	DueDate       time.Time `json:"due_date"`
	MCC           bool      `json:"mcc"`
	Notes         string    `json:"notes,omitempty"`
	Status        Status    `json:"status"`
	Progress      float64   `json:"progress"`
	Color         Color     `json:"color"`
	OverdueDays   int       `json:"overdue_days,omitempty"`
	Bar           *Span     `json:"bar,omitempty"`
	InvalidDate   bool      `json:"invalid_date,omitempty"`
}

// Group builds the project, system, subsystem tree from a filtered set.
// Every selection lands in exactly one subsystem bucket and empty buckets
// never appear.
func Group(sel []Selection, projects []project.Project, vp Viewport, today time.Time) []*GroupNode {
	byID := Snapshot{Projects: projects}.projectsByID()

	type subKey struct{ project, system, subsystem string }
	buckets := make(map[subKey][]*ActivityRow)
	for _, s := range sel {
		row := buildActivityRow(s, vp, today)
		k := subKey{groupKey(s.Activity.ProjectID), groupKey(s.Activity.System), groupKey(s.Activity.Subsystem)}
		buckets[k] = append(buckets[k], row)
	}

	projNodes := make(map[string]*GroupNode)
	sysNodes := make(map[[2]string]*GroupNode)
	var roots []*GroupNode
	for k, rows := range buckets {
		pn, ok := projNodes[k.project]
		if !ok {
			label := k.project
			if p, found := byID[k.project]; found {
				label = p.DisplayTitle()
			}
			pn = &GroupNode{Level: LevelProject, Key: k.project, Label: label}
			projNodes[k.project] = pn
			roots = append(roots, pn)
		}
		sk := [2]string{k.project, k.system}
		sn, ok := sysNodes[sk]
		if !ok {
			sn = &GroupNode{Level: LevelSystem, Key: k.system, Label: k.system}
			sysNodes[sk] = sn
			pn.Children = append(pn.Children, sn)
		}
		sortActivityRows(rows)
		sn.Children = append(sn.Children, &GroupNode{
			Level:      LevelSubsystem,
			Key:        k.subsystem,
			Label:      k.subsystem,
			Activities: rows,
		})
	}

	sort.Slice(roots, func(i, j int) bool {
		if roots[i].Label != roots[j].Label {
			return keyLess(roots[i].Label, roots[j].Label)
		}
		return roots[i].Key < roots[j].Key
	})
	for _, pn := range roots {
		sortNodes(pn.Children)
		for _, sn := range pn.Children {
			sortNodes(sn.Children)
		}
		aggregateNode(pn)
	}
	return roots
}

func sortNodes(nodes []*GroupNode) {
	sort.Slice(nodes, func(i, j int) bool { return keyLess(nodes[i].Key, nodes[j].Key) })
}

// buildActivityRow places the selected ITR rows and derives the activity's
// status, progress and ITR count from all of its ITRs. The row's states
// cover only the selected ITRs and feed the bucket aggregates.
func buildActivityRow(s Selection, vp Viewport, today time.Time) *ActivityRow {
	act, recs, owned := s.Activity, s.ITRs, s.Owned
	if owned == nil {
		owned = recs
	}
	row := &ActivityRow{
		ID:           act.ID,
		ProjectID:    act.ProjectID,
		Name:         act.Name,
		System:       groupKey(act.System),
		Subsystem:    groupKey(act.Subsystem),
		Start:        act.StartDate,
		End:          act.EndDate,
		DurationDays: act.DurationDays(),
		InvalidDates: !act.HasValidDates(),
		ITRCount:     len(owned),
	}
	if !row.InvalidDates {
		bar := BarSpan(act.StartDate, act.EndDate, vp.Start, vp.End)
		row.Bar = &bar
	}

	row.states = make([]ITRState, 0, len(recs))
	for _, rec := range recs {
		st := DeriveITR(rec, today)
		row.states = append(row.states, st)
		row.ITRs = append(row.ITRs, buildITRRow(rec, st, act, vp))
	}
	sortITRRows(row.ITRs)

	ownStates := row.states
	if len(owned) != len(recs) {
		ownStates = make([]ITRState, 0, len(owned))
		for _, rec := range owned {
			ownStates = append(ownStates, DeriveITR(rec, today))
		}
	}
	row.Status = ActivityStatus(ownStates)
	row.Progress = ActivityProgress(ownStates)
	row.Color = ColorFor(row.Status)
	return row
}

func buildITRRow(rec itr.ITR, st ITRState, act activity.Activity, vp Viewport) *ITRRow {
	row := &ITRRow{
		ID:            rec.ID,
		ActivityID:    rec.ActivityID,
		Description:   rec.Description,
		QuantityTotal: rec.QuantityTotal,
		QuantityDone:  rec.QuantityDone,
		DueDate:       rec.DueDate,
		MCC:           rec.MCC,
		Notes:         rec.Notes,
		Status:        st.Status,
		Progress:      st.Progress,
		Color:         ColorFor(st.Status),
		OverdueDays:   st.OverdueDays,
		InvalidDate:   rec.DueDate.IsZero(),
	}
	if !row.InvalidDate {
		from := act.StartDate
		if from.IsZero() {
			from = rec.DueDate
		}
		bar := BarSpan(from, rec.DueDate, vp.Start, vp.End)
		row.Bar = &bar
	}
	return row
}

// sortActivityRows orders by start date, undated last, then name and id.
func sortActivityRows(rows []*ActivityRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := compareDates(a.Start, b.Start); c != 0 {
			return c < 0
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

func sortITRRows(rows []*ITRRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if c := compareDates(rows[i].DueDate, rows[j].DueDate); c != 0 {
			return c < 0
		}
		return rows[i].ID < rows[j].ID
	})
}

// compareDates sorts zero times after every real date.
func compareDates(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	}
	return a.Compare(b)
}

// aggregateNode fills Aggregate for n and its descendants from the ITR
// states of every activity beneath n.
func aggregateNode(n *GroupNode) []*ActivityRow {
	rows := append([]*ActivityRow(nil), n.Activities...)
	for _, c := range n.Children {
		rows = append(rows, aggregateNode(c)...)
	}
	n.Aggregate = aggregateRows(rows)
	return rows
}

func aggregateRows(rows []*ActivityRow) Aggregate {
	agg := Aggregate{Activities: len(rows)}
	var overdueDays []float64
	for _, row := range rows {
		for _, st := range row.states {
			agg.Total++
			switch st.Status {
			case StatusCompleted:
				agg.Completed++
			case StatusOverdue:
				agg.Overdue++
				overdueDays = append(overdueDays, float64(st.OverdueDays))
			}
		}
	}
	if len(overdueDays) > 0 {
		agg.AvgOverdueDays = stat.Mean(overdueDays, nil)
	}
	return agg
}

// CountActivities returns the number of activities under the nodes.
func CountActivities(nodes []*GroupNode) int {
	n := 0
	for _, node := range nodes {
		n += len(node.Activities) + CountActivities(node.Children)
	}
	return n
}

// Walk visits activity rows in display order. path runs from the project
// node down to the row's subsystem node.
func Walk(nodes []*GroupNode, fn func(path []*GroupNode, row *ActivityRow)) {
	var visit func(path []*GroupNode, n *GroupNode)
	visit = func(path []*GroupNode, n *GroupNode) {
		path = append(path[:len(path):len(path)], n)
		for _, row := range n.Activities {
			fn(path, row)
		}
		for _, c := range n.Children {
			visit(path, c)
		}
	}
	for _, n := range nodes {
		visit(nil, n)
	}
}
