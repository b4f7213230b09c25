package gantt

import (
	"context"
	"fmt"

	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/domain/project"
	"golang.org/x/sync/errgroup"
)

// Snapshot is a complete, resolved copy of the records the model is built
// from. The core never mutates it.
type Snapshot struct {
	Projects   []project.Project   `json:"projects"`
	Activities []activity.Activity `json:"activities"`
	ITRs       []itr.ITR           `json:"itrs"`
}

// Source is the data-access collaborator. An empty projectID or activityID
// lists everything.
type Source interface {
	ListProjects(ctx context.Context) ([]project.Project, error)
	ListActivities(ctx context.Context, projectID string) ([]activity.Activity, error)
	ListITRs(ctx context.Context, activityID string) ([]itr.ITR, error)
}

// LoadSnapshot fetches projects, activities and ITRs concurrently.
func LoadSnapshot(ctx context.Context, src Source) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		projects, err := src.ListProjects(ctx)
		if err != nil {
			return fmt.Errorf("list projects: %w", err)
		}
		snap.Projects = projects
		return nil
	})
	g.Go(func() error {
		acts, err := src.ListActivities(ctx, "")
		if err != nil {
			return fmt.Errorf("list activities: %w", err)
		}
		snap.Activities = acts
		return nil
	})
	g.Go(func() error {
		recs, err := src.ListITRs(ctx, "")
		if err != nil {
			return fmt.Errorf("list itrs: %w", err)
		}
		snap.ITRs = recs
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// itrsByActivity indexes ITRs by parent, preserving snapshot order.
func (s Snapshot) itrsByActivity() map[string][]itr.ITR {
	idx := make(map[string][]itr.ITR, len(s.Activities))
	for _, rec := range s.ITRs {
		idx[rec.ActivityID] = append(idx[rec.ActivityID], rec)
	}
	return idx
}

func (s Snapshot) projectsByID() map[string]project.Project {
	idx := make(map[string]project.Project, len(s.Projects))
	for _, p := range s.Projects {
		idx[p.ID] = p
	}
	return idx
}
