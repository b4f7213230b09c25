package gantt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func selectionIDs(sel []Selection) []string {
	ids := make([]string, 0, len(sel))
	for _, s := range sel {
		ids = append(ids, s.Activity.ID)
	}
	return ids
}

func itrIDs(s Selection) []string {
	ids := make([]string, 0, len(s.ITRs))
	for _, r := range s.ITRs {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestFilter_Project(t *testing.T) {
	snap := plantSnapshot(t)
	today := day(t, "2024-03-15")

	require.Equal(t, []string{"a1", "a2"}, selectionIDs(Filter(snap, FilterSpec{ProjectID: "P1"}, today)))
	require.Len(t, Filter(snap, FilterSpec{ProjectID: AllProjects}, today), 3)
	require.Len(t, Filter(snap, FilterSpec{}, today), 3)
	require.Empty(t, Filter(snap, FilterSpec{ProjectID: "P9"}, today))
}

func TestFilter_SystemAndSubsystem(t *testing.T) {
	snap := plantSnapshot(t)
	snap.Activities = append(snap.Activities, act(t, "a4", "P1", "Walkdown", "", "  ", "2024-03-01", "2024-03-02"))
	today := day(t, "2024-03-15")

	require.Equal(t, []string{"a2", "a3"}, selectionIDs(Filter(snap, FilterSpec{System: "Piping"}, today)))
	require.Equal(t, []string{"a3"}, selectionIDs(Filter(snap, FilterSpec{System: "Piping", Subsystem: "Loop B"}, today)))
	require.Equal(t, []string{"a4"}, selectionIDs(Filter(snap, FilterSpec{System: Unspecified}, today)))
	require.Equal(t, []string{"a4"}, selectionIDs(Filter(snap, FilterSpec{Subsystem: Unspecified}, today)))
	require.Empty(t, Filter(snap, FilterSpec{System: "piping"}, today), "system match is exact")
}

func TestFilter_Query(t *testing.T) {
	snap := plantSnapshot(t)
	today := day(t, "2024-03-15")

	t.Run("name match keeps every ITR", func(t *testing.T) {
		sel := Filter(snap, FilterSpec{Query: "CABLE"}, today)
		require.Equal(t, []string{"a1"}, selectionIDs(sel))
		require.Equal(t, []string{"i1", "i2"}, itrIDs(sel[0]))
	})

	t.Run("description match keeps matching ITRs", func(t *testing.T) {
		sel := Filter(snap, FilterSpec{Query: "feeder 2"}, today)
		require.Equal(t, []string{"a1"}, selectionIDs(sel))
		require.Equal(t, []string{"i2"}, itrIDs(sel[0]))
	})

	t.Run("matches either", func(t *testing.T) {
		sel := Filter(snap, FilterSpec{Query: "hydro"}, today)
		require.Equal(t, []string{"a3"}, selectionIDs(sel))
	})

	t.Run("no match", func(t *testing.T) {
		require.Empty(t, Filter(snap, FilterSpec{Query: "insulation"}, today))
	})
}

func TestFilter_ITRPredicates(t *testing.T) {
	snap := plantSnapshot(t)
	snap.ITRs[2].MCC = true
	today := day(t, "2024-03-15")

	sel := Filter(snap, FilterSpec{Status: StatusOverdue}, today)
	require.Equal(t, []string{"a1"}, selectionIDs(sel))
	require.Equal(t, []string{"i2"}, itrIDs(sel[0]))

	sel = Filter(snap, FilterSpec{OverdueOnly: true}, today)
	require.Equal(t, []string{"a1"}, selectionIDs(sel))

	sel = Filter(snap, FilterSpec{FlaggedOnly: true}, today)
	require.Equal(t, []string{"a2"}, selectionIDs(sel))

	sel = Filter(snap, FilterSpec{Status: StatusInProgress}, today)
	require.Equal(t, []string{"a3"}, selectionIDs(sel))

	require.Empty(t, Filter(snap, FilterSpec{FlaggedOnly: true, OverdueOnly: true}, today))
}

func TestFilter_NameMatchStillHonorsStatus(t *testing.T) {
	snap := plantSnapshot(t)
	today := day(t, "2024-03-15")

	sel := Filter(snap, FilterSpec{Query: "cable", Status: StatusCompleted}, today)
	require.Equal(t, []string{"a1"}, selectionIDs(sel))
	require.Equal(t, []string{"i1"}, itrIDs(sel[0]))

	require.Empty(t, Filter(snap, FilterSpec{Query: "hydro", Status: StatusOverdue}, today))
}

func TestFilter_ActivityWithoutITRs(t *testing.T) {
	snap := plantSnapshot(t)
	snap.Activities = append(snap.Activities, act(t, "a9", "P1", "Punch walk", "Civil", "Area 1", "2024-03-01", "2024-03-02"))
	today := day(t, "2024-03-15")

	require.Contains(t, selectionIDs(Filter(snap, FilterSpec{}, today)), "a9")
	require.Contains(t, selectionIDs(Filter(snap, FilterSpec{Query: "punch"}, today)), "a9")
	require.NotContains(t, selectionIDs(Filter(snap, FilterSpec{Status: StatusNotStarted}, today)), "a9")
}

func TestFilter_DoesNotMutateSnapshot(t *testing.T) {
	snap := plantSnapshot(t)
	before := plantSnapshot(t)

	Filter(snap, FilterSpec{Query: "feeder 2", OverdueOnly: true}, day(t, "2024-03-15"))
	require.Equal(t, before, snap)
}
