package gantt

import (
	"context"

	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/domain/project"
)

// ServiceSource adapts the domain services to Source.
type ServiceSource struct {
	Projects   *project.Service
	Activities *activity.Service
	ITRs       *itr.Service
}

// NewServiceSource creates a ServiceSource.
func NewServiceSource(projects *project.Service, activities *activity.Service, itrs *itr.Service) *ServiceSource {
	return &ServiceSource{Projects: projects, Activities: activities, ITRs: itrs}
}

func (s *ServiceSource) ListProjects(ctx context.Context) ([]project.Project, error) {
	return s.Projects.List(ctx)
}

func (s *ServiceSource) ListActivities(ctx context.Context, projectID string) ([]activity.Activity, error) {
	return s.Activities.List(ctx, activity.ListOptions{ProjectID: projectID})
}

func (s *ServiceSource) ListITRs(ctx context.Context, activityID string) ([]itr.ITR, error) {
	return s.ITRs.List(ctx, itr.ListOptions{ActivityID: activityID})
}
