package gantt

import (
	"time"

	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/domain/project"
)

// tb is the subset of testing.TB that *rapid.T also satisfies.
type tb interface {
	Helper()
	Fatalf(format string, args ...any)
}

func day(t tb, s string) time.Time {
	t.Helper()
	if s == "" {
		return time.Time{}
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func act(t tb, id, projectID, name, system, subsystem, start, end string) activity.Activity {
	return activity.Activity{
		ID:        id,
		ProjectID: projectID,
		Name:      name,
		System:    system,
		Subsystem: subsystem,
		StartDate: day(t, start),
		EndDate:   day(t, end),
	}
}

func rec(t tb, id, activityID, desc string, total, done int, due string) itr.ITR {
	return itr.ITR{
		ID:            id,
		ActivityID:    activityID,
		Description:   desc,
		QuantityTotal: total,
		QuantityDone:  done,
		DueDate:       day(t, due),
	}
}

// plantSnapshot is a two-project fixture. today is 2024-03-15.
func plantSnapshot(t tb) Snapshot {
	return Snapshot{
		Projects: []project.Project{
			{ID: "P1", Title: "North Plant"},
			{ID: "P2", Title: "South Plant"},
		},
		Activities: []activity.Activity{
			act(t, "a1", "P1", "Cable pulling", "Electrical", "MCC-1", "2024-03-01", "2024-03-20"),
			act(t, "a2", "P1", "Flushing", "Piping", "Loop A", "2024-03-05", "2024-03-25"),
			act(t, "a3", "P2", "Hydrotest", "Piping", "Loop B", "2024-02-20", "2024-03-10"),
		},
		ITRs: []itr.ITR{
			rec(t, "i1", "a1", "Megger test feeder 1", 10, 10, "2024-03-10"),
			rec(t, "i2", "a1", "Megger test feeder 2", 10, 5, "2024-03-14"),
			rec(t, "i3", "a2", "Flush loop A1", 4, 0, "2024-03-20"),
			rec(t, "i4", "a3", "Hydrotest spool 7", 2, 1, "2024-03-18"),
		},
	}
}

func testViewport(t tb) Viewport {
	return Viewport{Start: day(t, "2024-03-01"), End: day(t, "2024-03-31"), Mode: ViewDay, Zoom: 1}
}
