package gantt

import (
	"strings"
	"time"

	"github.com/rpggio/precomm/internal/dates"
	"github.com/rpggio/precomm/internal/domain/itr"
	"gonum.org/v1/gonum/stat"
)

// Status is the derived state of an ITR or an activity. It is never stored.
type Status string

const (
	StatusNotStarted Status = "Not-started"
	StatusInProgress Status = "In-progress"
	StatusCompleted  Status = "Completed"
	StatusOverdue    Status = "Overdue"
)

// Statuses lists every status value.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusOverdue}

// Valid reports whether s is one of the four statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

// ParseStatus matches a status name ignoring case, spaces and separators,
// so "in progress", "IN_PROGRESS" and "In-progress" are equal.
func ParseStatus(s string) (Status, bool) {
	norm := func(v string) string {
		v = strings.ToLower(strings.TrimSpace(v))
		return strings.NewReplacer("-", "", "_", "", " ", "").Replace(v)
	}
	want := norm(s)
	for _, st := range Statuses {
		if norm(string(st)) == want {
			return st, true
		}
	}
	return "", false
}

// Progress is done/total as a percentage in [0, 100]. A non-positive total
// yields 0.
func Progress(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return clamp(float64(done)/float64(total)*100, 0, 100)
}

// ITRStatus derives an ITR status relative to today. A missing due date is
// never overdue.
func ITRStatus(done, total int, due, today time.Time) Status {
	switch {
	case total > 0 && done >= total:
		return StatusCompleted
	case isOverdue(due, today):
		return StatusOverdue
	case done > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

func isOverdue(due, today time.Time) bool {
	if due.IsZero() || today.IsZero() {
		return false
	}
	return dates.Day(due).Before(dates.Day(today))
}

// ITRState bundles the derived values for one ITR.
type ITRState struct {
	Status      Status
	Progress    float64
	OverdueDays int
}

// DeriveITR computes status, progress and days overdue for rec.
func DeriveITR(rec itr.ITR, today time.Time) ITRState {
	st := ITRState{
		Status:   ITRStatus(rec.QuantityDone, rec.QuantityTotal, rec.DueDate, today),
		Progress: Progress(rec.QuantityDone, rec.QuantityTotal),
	}
	if st.Status == StatusOverdue {
		st.OverdueDays = dates.DaysBetween(rec.DueDate, today)
	}
	return st
}

// ActivityStatus aggregates ITR states. Overdue wins, then all-complete,
// then any progress. No ITRs means not started.
func ActivityStatus(states []ITRState) Status {
	if len(states) == 0 {
		return StatusNotStarted
	}
	complete, started := true, false
	for _, st := range states {
		if st.Status == StatusOverdue {
			return StatusOverdue
		}
		if st.Progress < 100 {
			complete = false
		}
		if st.Progress > 0 {
			started = true
		}
	}
	switch {
	case complete:
		return StatusCompleted
	case started:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

// ActivityProgress is the mean ITR progress, 0 with no ITRs.
func ActivityProgress(states []ITRState) float64 {
	if len(states) == 0 {
		return 0
	}
	xs := make([]float64, len(states))
	for i, st := range states {
		xs[i] = st.Progress
	}
	return stat.Mean(xs, nil)
}
