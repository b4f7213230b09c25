package gantt

import (
	"strings"
	"time"

	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/domain/itr"
)

const (
	// AllProjects disables the project predicate, as does "".
	AllProjects = "all"
	// Unspecified is the bucket key for blank system, subsystem or project values.
	Unspecified = "unspecified"
)

// FilterSpec selects the working set. Every non-empty field is ANDed.
type FilterSpec struct {
	ProjectID   string `json:"project_id,omitempty"`
	System      string `json:"system,omitempty"`
	Subsystem   string `json:"subsystem,omitempty"`
	Query       string `json:"query,omitempty"`
	Status      Status `json:"status,omitempty"`
	OverdueOnly bool   `json:"overdue_only,omitempty"`
	FlaggedOnly bool   `json:"flagged_only,omitempty"`
}

func (f FilterSpec) hasITRPredicate() bool {
	return f.Status != "" || f.OverdueOnly || f.FlaggedOnly
}

// Selection is a surviving activity with the ITRs that survived with it.
// Owned holds every ITR of the activity; the activity's own status and
// progress derive from it, not from the filtered rows.
type Selection struct {
	Activity activity.Activity
	ITRs     []itr.ITR
	Owned    []itr.ITR
}

// Filter applies spec to the snapshot. Predicates run in order project,
// system, subsystem, text, status, overdue, flagged, and each one narrows
// what the previous left.
//
// Text matching is case-insensitive. An activity whose name matches keeps
// all of its ITRs; otherwise only ITRs whose description matches are kept.
// ITR-scoped predicates then narrow that list, and an activity left with no
// ITRs is dropped. With no text or ITR predicate an activity without ITRs
// survives.
func Filter(snap Snapshot, spec FilterSpec, today time.Time) []Selection {
	byActivity := snap.itrsByActivity()
	query := strings.ToLower(strings.TrimSpace(spec.Query))

	var out []Selection
	for _, act := range snap.Activities {
		if !matchProject(act, spec.ProjectID) {
			continue
		}
		if spec.System != "" && groupKey(act.System) != spec.System {
			continue
		}
		if spec.Subsystem != "" && groupKey(act.Subsystem) != spec.Subsystem {
			continue
		}

		owned := byActivity[act.ID]
		recs := owned
		if query != "" && !strings.Contains(strings.ToLower(act.Name), query) {
			recs = keepITRs(recs, func(rec itr.ITR) bool {
				return strings.Contains(strings.ToLower(rec.Description), query)
			})
			if len(recs) == 0 {
				continue
			}
		}

		if spec.hasITRPredicate() {
			recs = keepITRs(recs, func(rec itr.ITR) bool {
				st := ITRStatus(rec.QuantityDone, rec.QuantityTotal, rec.DueDate, today)
				if spec.Status != "" && st != spec.Status {
					return false
				}
				if spec.OverdueOnly && st != StatusOverdue {
					return false
				}
				if spec.FlaggedOnly && !rec.MCC {
					return false
				}
				return true
			})
			if len(recs) == 0 {
				continue
			}
		}

		out = append(out, Selection{Activity: act, ITRs: recs, Owned: owned})
	}
	return out
}

func matchProject(act activity.Activity, projectID string) bool {
	if projectID == "" || projectID == AllProjects {
		return true
	}
	return groupKey(act.ProjectID) == projectID
}

func keepITRs(recs []itr.ITR, keep func(itr.ITR) bool) []itr.ITR {
	var out []itr.ITR
	for _, rec := range recs {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// groupKey substitutes Unspecified for blank values.
func groupKey(v string) string {
	if strings.TrimSpace(v) == "" {
		return Unspecified
	}
	return v
}
