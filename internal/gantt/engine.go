package gantt

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/rpggio/precomm/internal/dates"
)

// Engine memoizes the most recent Compute result so repeated redraws with
// unchanged inputs do not rebuild the tree. Returned models are shared and
// must be treated as read-only. Safe for concurrent use.
type Engine struct {
	logger *slog.Logger

	mu      sync.Mutex
	lastKey uint64
	last    *Model
	hits    int
	misses  int
}

// NewEngine creates an engine. logger may be nil.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{logger: logger}
}

// Compute returns the model for req, reusing the previous result when the
// inputs hash the same.
func (e *Engine) Compute(req Request) *Model {
	key, err := hashstructure.Hash(newMemoKey(req), hashstructure.FormatV2, nil)
	if err != nil {
		e.logger.Warn("gantt memo key failed", "error", err)
		return Compute(req)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.last != nil && key == e.lastKey {
		e.hits++
		e.logger.Debug("gantt model cache hit", "key", key)
		return e.last
	}

	e.misses++
	e.logger.Debug("gantt model cache miss", "key", key)
	e.last = Compute(req)
	e.lastKey = key
	return e.last
}

// Invalidate drops the memoized model.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.last = nil
}

// Stats returns cache hit and miss counts.
func (e *Engine) Stats() (hits, misses int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hits, e.misses
}

// memoKey is a location-free projection of Request. Times are reduced to
// day-precision Unix seconds so equal days hash equal.
type memoKey struct {
	Projects   []memoProject
	Activities []memoActivity
	ITRs       []memoITR
	Filter     FilterSpec
	Start      int64
	End        int64
	ViewMode   string
	Zoom       float64
	Today      int64
	Render     string
}

type memoProject struct {
	ID    string
	Title string
}

type memoActivity struct {
	ID        string
	ProjectID string
	Name      string
	System    string
	Subsystem string
	Start     int64
	End       int64
}

type memoITR struct {
	ID          string
	ActivityID  string
	Description string
	Total       int
	Done        int
	Due         int64
	MCC         bool
	Notes       string
}

func newMemoKey(req Request) memoKey {
	vp := req.Viewport.Normalize()
	k := memoKey{
		Filter:   req.Filter,
		Start:    dayUnix(vp.Start),
		End:      dayUnix(vp.End),
		ViewMode: string(vp.Mode),
		Zoom:     vp.Zoom,
		Today:    dayUnix(req.Today),
		Render:   string(req.Mode),
	}
	for _, p := range req.Snapshot.Projects {
		k.Projects = append(k.Projects, memoProject{ID: p.ID, Title: p.Title})
	}
	for _, a := range req.Snapshot.Activities {
		k.Activities = append(k.Activities, memoActivity{
			ID:        a.ID,
			ProjectID: a.ProjectID,
			Name:      a.Name,
			System:    a.System,
			Subsystem: a.Subsystem,
			Start:     dayUnix(a.StartDate),
			End:       dayUnix(a.EndDate),
		})
	}
	for _, r := range req.Snapshot.ITRs {
		k.ITRs = append(k.ITRs, memoITR{
			ID:          r.ID,
			ActivityID:  r.ActivityID,
			Description: r.Description,
			Total:       r.QuantityTotal,
			Done:        r.QuantityDone,
			Due:         dayUnix(r.DueDate),
			MCC:         r.MCC,
			Notes:       r.Notes,
		})
	}
	return k
}

func dayUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return dates.Day(t).Unix()
}
