package gantt

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCompute(t *testing.T) {
	snap := plantSnapshot(t)
	today := day(t, "2024-03-15")

	m := Compute(Request{Snapshot: snap, Viewport: testViewport(t), Today: today, Mode: RenderFull})

	require.Equal(t, RenderFull, m.Mode)
	require.Equal(t, ViewDay, m.TickMode)
	require.Len(t, m.Ticks, 31)
	require.Len(t, m.Groups, 2)
	require.NotNil(t, m.TodayPosition)
	require.InDelta(t, 14.0/30.0*100, *m.TodayPosition, 1e-9)
	require.Equal(t, Aggregate{Activities: 3, Total: 4, Completed: 1, Overdue: 1, AvgOverdueDays: 1}, m.Totals)
	require.Len(t, m.Taxonomy, 2)
	require.Empty(t, m.Invalid)
	require.False(t, m.Empty())
}

func TestCompute_ProjectScenario(t *testing.T) {
	snap := plantSnapshot(t)
	m := Compute(Request{
		Snapshot: snap,
		Filter:   FilterSpec{ProjectID: "P1"},
		Viewport: testViewport(t),
		Today:    day(t, "2024-03-15"),
	})
	require.Len(t, m.Groups, 1)
	require.Equal(t, "P1", m.Groups[0].Key)
	require.Equal(t, 2, CountActivities(m.Groups))
	require.Len(t, m.Taxonomy, 2, "taxonomy covers the whole snapshot")
}

func TestCompute_RenderModes(t *testing.T) {
	snap := plantSnapshot(t)
	req := Request{Snapshot: snap, Viewport: testViewport(t), Today: day(t, "2024-03-15")}

	req.Mode = RenderSimplified
	m := Compute(req)
	Walk(m.Groups, func(_ []*GroupNode, row *ActivityRow) {
		require.Nil(t, row.ITRs)
	})
	require.Equal(t, 2, m.Groups[0].Children[0].Children[0].Activities[0].ITRCount)
	require.Equal(t, 4, m.Totals.Total)

	req.Mode = RenderSummary
	m = Compute(req)
	require.Zero(t, CountActivities(m.Groups))
	require.Equal(t, 2, m.Groups[0].Aggregate.Activities)
	require.Equal(t, 3, m.Totals.Activities)

	req.Mode = "bogus"
	require.Equal(t, RenderFull, Compute(req).Mode)
}

func TestCompute_TodayOutsideWindow(t *testing.T) {
	m := Compute(Request{Snapshot: plantSnapshot(t), Viewport: testViewport(t), Today: day(t, "2024-05-01")})
	require.Nil(t, m.TodayPosition)
}

func TestCompute_EmptyInput(t *testing.T) {
	m := Compute(Request{Viewport: testViewport(t), Today: day(t, "2024-03-15")})
	require.True(t, m.Empty())
	require.NotNil(t, m.Groups)
	require.Empty(t, m.Taxonomy)
	require.Equal(t, Aggregate{}, m.Totals)
}

func TestCompute_DegenerateViewport(t *testing.T) {
	d := day(t, "2024-03-10")
	m := Compute(Request{
		Snapshot: plantSnapshot(t),
		Viewport: Viewport{Start: d, End: day(t, "2024-03-01")},
		Today:    day(t, "2024-03-15"),
	})
	require.Empty(t, m.Ticks)
	require.Nil(t, m.TodayPosition)
	Walk(m.Groups, func(_ []*GroupNode, row *ActivityRow) {
		require.NotNil(t, row.Bar)
		require.Equal(t, 0.0, row.Bar.Left)
		require.False(t, row.Bar.Visible)
	})
}

func TestCompute_InvalidRecordsListed(t *testing.T) {
	snap := plantSnapshot(t)
	snap.Activities = append(snap.Activities, act(t, "a5", "P1", "Undated", "Electrical", "MCC-1", "", "2024-03-02"))
	snap.ITRs = append(snap.ITRs, rec(t, "i9", "a1", "No due", 1, 0, ""))

	m := Compute(Request{Snapshot: snap, Viewport: testViewport(t), Today: day(t, "2024-03-15")})
	require.ElementsMatch(t, []InvalidRecord{
		{Kind: "activity", ID: "a5", Name: "Undated", Reason: ReasonInvalidDates},
		{Kind: "itr", ID: "i9", Name: "No due", Reason: ReasonInvalidDates},
	}, m.Invalid)
	require.Equal(t, 5, m.Totals.Total)
}

func TestCompute_OrphanITRsListed(t *testing.T) {
	snap := plantSnapshot(t)
	snap.ITRs = append(snap.ITRs, rec(t, "i8", "ghost", "Orphan check", 1, 0, "2024-03-10"))

	m := Compute(Request{Snapshot: snap, Viewport: testViewport(t), Today: day(t, "2024-03-15")})
	require.Equal(t, []InvalidRecord{
		{Kind: "itr", ID: "i8", Name: "Orphan check", Reason: ReasonUnknownActivity},
	}, m.Invalid)
	require.Equal(t, 4, m.Totals.Total, "orphans are not counted")

	filtered := Compute(Request{Snapshot: snap, Filter: FilterSpec{ProjectID: "P2"}, Viewport: testViewport(t), Today: day(t, "2024-03-15")})
	require.Len(t, filtered.Invalid, 1, "orphans are reported under any filter")
}

func TestCompute_StatusFilterKeepsActivityStatus(t *testing.T) {
	snap := plantSnapshot(t)
	m := Compute(Request{
		Snapshot: snap,
		Filter:   FilterSpec{Status: StatusCompleted},
		Viewport: testViewport(t),
		Today:    day(t, "2024-03-15"),
	})

	var rows []*ActivityRow
	Walk(m.Groups, func(_ []*GroupNode, row *ActivityRow) { rows = append(rows, row) })
	require.Len(t, rows, 1)
	a1 := rows[0]
	require.Equal(t, "a1", a1.ID)

	// i2 is overdue and filtered out, but still drives the activity.
	require.Equal(t, StatusOverdue, a1.Status)
	require.Equal(t, ColorRed, a1.Color)
	require.InDelta(t, 75.0, a1.Progress, 1e-9)
	require.Equal(t, 2, a1.ITRCount)
	require.Len(t, a1.ITRs, 1)
	require.Equal(t, "i1", a1.ITRs[0].ID)

	require.Equal(t, Aggregate{Activities: 1, Total: 1, Completed: 1}, m.Totals)
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	snap := plantSnapshot(t)
	Compute(Request{Snapshot: snap, Filter: FilterSpec{Query: "feeder"}, Viewport: testViewport(t), Today: day(t, "2024-03-15"), Mode: RenderSummary})
	require.Equal(t, plantSnapshot(t), snap)
}

func TestParseRenderMode(t *testing.T) {
	m, err := ParseRenderMode("Summary")
	require.NoError(t, err)
	require.Equal(t, RenderSummary, m)
	_, err = ParseRenderMode("pie")
	require.Error(t, err)

	require.Equal(t, RenderSimplified, RenderFull.Next())
	require.Equal(t, RenderFull, RenderSummary.Next())
	require.Equal(t, RenderFull, RenderMode("").Next())
}

func TestCompute_Idempotent(t *testing.T) {
	statuses := append([]Status{""}, Statuses...)
	rapid.Check(t, func(t *rapid.T) {
		snap := plantSnapshot(t)
		for i, r := range snap.ITRs {
			snap.ITRs[i].QuantityDone = rapid.IntRange(0, r.QuantityTotal).Draw(t, "done")
		}
		req := Request{
			Snapshot: snap,
			Filter: FilterSpec{
				ProjectID: rapid.SampledFrom([]string{"", "all", "P1", "P2"}).Draw(t, "project"),
				Status:    rapid.SampledFrom(statuses).Draw(t, "status"),
			},
			Viewport: Viewport{Start: genDay(t, "start"), End: genDay(t, "end"), Mode: rapid.SampledFrom(ViewModes).Draw(t, "mode")},
			Today:    genDay(t, "today"),
			Mode:     rapid.SampledFrom(RenderModes).Draw(t, "render"),
		}
		a, b := Compute(req), Compute(req)
		require.Equal(t, a, b)
	})
}
