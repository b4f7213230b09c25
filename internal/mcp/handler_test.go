package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/domain/project"
	"github.com/rpggio/precomm/internal/gantt"
	"github.com/stretchr/testify/require"
)

type projectStub struct {
	createFn func(context.Context, project.CreateRequest) (*project.Project, error)
	listFn   func(context.Context) ([]project.Project, error)
}

func (p projectStub) Create(ctx context.Context, req project.CreateRequest) (*project.Project, error) {
	return p.createFn(ctx, req)
}
func (p projectStub) List(ctx context.Context) ([]project.Project, error) {
	return p.listFn(ctx)
}

type activityStub struct {
	createFn     func(context.Context, activity.CreateRequest) (*activity.Activity, error)
	rescheduleFn func(context.Context, string, time.Time, time.Time) (*activity.Activity, error)
	listFn       func(context.Context, activity.ListOptions) ([]activity.Activity, error)
	searchFn     func(context.Context, string, activity.SearchOptions) ([]activity.SearchResult, error)
}

func (a activityStub) Create(ctx context.Context, req activity.CreateRequest) (*activity.Activity, error) {
	return a.createFn(ctx, req)
}
func (a activityStub) Reschedule(ctx context.Context, id string, start, end time.Time) (*activity.Activity, error) {
	return a.rescheduleFn(ctx, id, start, end)
}
func (a activityStub) List(ctx context.Context, opts activity.ListOptions) ([]activity.Activity, error) {
	return a.listFn(ctx, opts)
}
func (a activityStub) Search(ctx context.Context, query string, opts activity.SearchOptions) ([]activity.SearchResult, error) {
	return a.searchFn(ctx, query, opts)
}

type itrStub struct {
	createFn func(context.Context, itr.CreateRequest) (*itr.ITR, error)
	updateFn func(context.Context, itr.UpdateRequest) (*itr.ITR, error)
	listFn   func(context.Context, itr.ListOptions) ([]itr.ITR, error)
}

func (s itrStub) Create(ctx context.Context, req itr.CreateRequest) (*itr.ITR, error) {
	return s.createFn(ctx, req)
}
func (s itrStub) Update(ctx context.Context, req itr.UpdateRequest) (*itr.ITR, error) {
	return s.updateFn(ctx, req)
}
func (s itrStub) List(ctx context.Context, opts itr.ListOptions) ([]itr.ITR, error) {
	return s.listFn(ctx, opts)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedNow() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) }

// plantServices serves one project with two activities and three ITRs.
func plantServices() Services {
	acts := []activity.Activity{
		{ID: "a1", ProjectID: "p1", Name: "Flush cooling loop", System: "Cooling", Subsystem: "Pumps", StartDate: day(2024, 3, 1), EndDate: day(2024, 3, 10)},
		{ID: "a2", ProjectID: "p1", Name: "Hydrotest", System: "Piping", StartDate: day(2024, 3, 5), EndDate: day(2024, 3, 20)},
	}
	recs := []itr.ITR{
		{ID: "i1", ActivityID: "a1", Description: "Pump alignment", QuantityTotal: 4, QuantityDone: 4, DueDate: day(2024, 3, 8), MCC: true},
		{ID: "i2", ActivityID: "a1", Description: "Flow check", QuantityTotal: 2, QuantityDone: 1, DueDate: day(2024, 3, 10)},
		{ID: "i3", ActivityID: "a2", Description: "Pressure hold", QuantityTotal: 1, DueDate: day(2024, 3, 25)},
	}
	return Services{
		Projects: projectStub{
			listFn: func(context.Context) ([]project.Project, error) {
				return []project.Project{{ID: "p1", Title: "North Plant"}}, nil
			},
		},
		Activities: activityStub{
			listFn: func(_ context.Context, opts activity.ListOptions) ([]activity.Activity, error) {
				var out []activity.Activity
				for _, a := range acts {
					if opts.ProjectID == "" || a.ProjectID == opts.ProjectID {
						out = append(out, a)
					}
				}
				return out, nil
			},
		},
		ITRs: itrStub{
			listFn: func(_ context.Context, opts itr.ListOptions) ([]itr.ITR, error) {
				var out []itr.ITR
				for _, r := range recs {
					if opts.ActivityID == "" || r.ActivityID == opts.ActivityID {
						out = append(out, r)
					}
				}
				return out, nil
			},
		},
	}
}

func TestHandler_ProjectCommands(t *testing.T) {
	ctx := context.Background()

	var got project.CreateRequest
	handler := NewHandler(Config{Services: Services{
		Projects: projectStub{
			createFn: func(_ context.Context, req project.CreateRequest) (*project.Project, error) {
				got = req
				return &project.Project{ID: "p1", Title: req.Title}, nil
			},
			listFn: func(context.Context) ([]project.Project, error) {
				return []project.Project{{ID: "p1", Title: "North Plant"}}, nil
			},
		},
	}})

	created, err := handler.CreateProject(ctx, CreateProjectParams{Title: "North Plant", Description: "d"})
	require.NoError(t, err)
	require.Equal(t, "p1", created.ID)
	require.Equal(t, "d", got.Description)

	list, err := handler.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "North Plant", list[0].Title)
}

func TestHandler_CreateActivityParsesDates(t *testing.T) {
	ctx := context.Background()

	var got activity.CreateRequest
	handler := NewHandler(Config{Services: Services{
		Activities: activityStub{
			createFn: func(_ context.Context, req activity.CreateRequest) (*activity.Activity, error) {
				got = req
				return &activity.Activity{ID: "a1", ProjectID: req.ProjectID, Name: req.Name, StartDate: req.StartDate, EndDate: req.EndDate}, nil
			},
		},
	}})

	resp, err := handler.CreateActivity(ctx, CreateActivityParams{
		ProjectID: "p1", Name: "Flush", StartDate: "2024-03-01", EndDate: "2024-03-11",
	})
	require.NoError(t, err)
	require.Equal(t, day(2024, 3, 1), got.StartDate)
	require.Equal(t, day(2024, 3, 11), got.EndDate)
	require.Equal(t, "2024-03-01", resp.StartDate)
	require.Equal(t, 10, resp.DurationDays)

	_, err = handler.CreateActivity(ctx, CreateActivityParams{ProjectID: "p1", Name: "Flush", StartDate: "March 1st"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_ARGUMENT", apiErr.Code)
}

func TestHandler_RecordProgressDerivesStatus(t *testing.T) {
	ctx := context.Background()

	var got itr.UpdateRequest
	handler := NewHandler(Config{
		Now: fixedNow,
		Services: Services{ITRs: itrStub{
			updateFn: func(_ context.Context, req itr.UpdateRequest) (*itr.ITR, error) {
				got = req
				return &itr.ITR{ID: req.ID, QuantityTotal: 3, QuantityDone: *req.QuantityDone, DueDate: day(2024, 3, 10)}, nil
			},
		}},
	})

	mcc := true
	resp, err := handler.RecordITRProgress(ctx, RecordITRProgressParams{ID: "i1", QuantityDone: 1, MCC: &mcc})
	require.NoError(t, err)
	require.Equal(t, 1, *got.QuantityDone)
	require.True(t, *got.MCC)
	require.Equal(t, gantt.StatusOverdue, resp.Status)
	require.Equal(t, 5, resp.OverdueDays)

	resp, err = handler.RecordITRProgress(ctx, RecordITRProgressParams{ID: "i1", QuantityDone: 1, Today: "2024-03-01"})
	require.NoError(t, err)
	require.Nil(t, got.MCC)
	require.Equal(t, gantt.StatusInProgress, resp.Status)
}

func TestHandler_TodayFromContext(t *testing.T) {
	handler := NewHandler(Config{Now: fixedNow})

	today, err := handler.today(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, day(2024, 3, 15), today)

	ctx := context.WithValue(context.Background(), todayKey, day(2024, 1, 2))
	today, err = handler.today(ctx, "")
	require.NoError(t, err)
	require.Equal(t, day(2024, 1, 2), today)

	today, err = handler.today(ctx, "2024-05-06")
	require.NoError(t, err)
	require.Equal(t, day(2024, 5, 6), today)

	_, err = handler.today(ctx, "yesterday")
	require.Error(t, err)
}

func TestHandler_ListITRs(t *testing.T) {
	handler := NewHandler(Config{Services: plantServices(), Now: fixedNow})

	recs, err := handler.ListITRs(context.Background(), ListITRsParams{ActivityID: "a1"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, gantt.StatusCompleted, recs[0].Status)
	require.Equal(t, 100.0, recs[0].Progress)
	require.Equal(t, gantt.StatusOverdue, recs[1].Status)
	require.Equal(t, "2024-03-10", recs[1].DueDate)
}

func TestHandler_ComputeGanttModel(t *testing.T) {
	ctx := context.Background()
	handler := NewHandler(Config{Services: plantServices(), Now: fixedNow})

	m, err := handler.ComputeGanttModel(ctx, ComputeGanttModelParams{
		Viewport: &ViewportParams{Start: "2024-03-01", End: "2024-03-31", ViewMode: "week"},
	})
	require.NoError(t, err)
	require.Equal(t, gantt.ViewWeek, m.Viewport.Mode)
	require.Len(t, m.Groups, 1)
	require.Equal(t, "North Plant", m.Groups[0].Label)
	require.Equal(t, 2, m.Totals.Activities)
	require.NotNil(t, m.TodayPosition)
	require.Len(t, m.Ticks, 5)

	m, err = handler.ComputeGanttModel(ctx, ComputeGanttModelParams{Status: "overdue", Fit: true})
	require.NoError(t, err)
	require.Equal(t, 1, m.Totals.Activities)
	require.Equal(t, day(2024, 2, 29), m.Viewport.Start)

	m, err = handler.ComputeGanttModel(ctx, ComputeGanttModelParams{RenderMode: "summary"})
	require.NoError(t, err)
	require.Equal(t, gantt.RenderSummary, m.Mode)

	_, err = handler.ComputeGanttModel(ctx, ComputeGanttModelParams{Status: "late"})
	require.Error(t, err)
	_, err = handler.ComputeGanttModel(ctx, ComputeGanttModelParams{RenderMode: "fancy"})
	require.Error(t, err)
	_, err = handler.ComputeGanttModel(ctx, ComputeGanttModelParams{Viewport: &ViewportParams{Start: "2024-03-01"}})
	require.Error(t, err)
}

func TestHandler_ComputeGanttModelSourceFailure(t *testing.T) {
	services := plantServices()
	services.ITRs = itrStub{listFn: func(context.Context, itr.ListOptions) ([]itr.ITR, error) {
		return nil, errors.New("disk gone")
	}}
	handler := NewHandler(Config{Services: services, Now: fixedNow})

	_, err := handler.ComputeGanttModel(context.Background(), ComputeGanttModelParams{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INTERNAL", apiErr.Code)
}

func TestHandler_ViewportTools(t *testing.T) {
	ctx := context.Background()
	handler := NewHandler(Config{Now: fixedNow})
	vp := ViewportParams{Start: "2024-01-31", End: "2024-02-29", ViewMode: "month"}

	panned, err := handler.PanViewport(ctx, PanViewportParams{Viewport: vp, Direction: "next"})
	require.NoError(t, err)
	require.Equal(t, "2024-04-30", panned.Start)

	zoomed, err := handler.ZoomViewport(ctx, ZoomViewportParams{Viewport: vp, Direction: "in"})
	require.NoError(t, err)
	require.Equal(t, 1.25, zoomed.Zoom)
	require.Equal(t, vp.Start, zoomed.Start)

	switched, err := handler.SetViewMode(ctx, SetViewModeParams{Viewport: vp, ViewMode: "day"})
	require.NoError(t, err)
	require.Equal(t, "day", switched.ViewMode)
	require.Equal(t, vp.End, switched.End)

	_, err = handler.PanViewport(ctx, PanViewportParams{Viewport: vp, Direction: "up"})
	require.Error(t, err)
	_, err = handler.SetViewMode(ctx, SetViewModeParams{Viewport: vp, ViewMode: "year"})
	require.Error(t, err)
}

func TestHandler_AxisDates(t *testing.T) {
	handler := NewHandler(Config{})

	resp, err := handler.AxisDates(AxisDatesParams{Start: "2024-01-31", End: "2024-04-30", ViewMode: "month"})
	require.NoError(t, err)
	require.Equal(t, []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}, resp.Dates)
	require.Equal(t, "Feb 2024", resp.Labels[1])

	resp, err = handler.AxisDates(AxisDatesParams{Start: "2024-03-10", End: "2024-03-01", ViewMode: "day"})
	require.NoError(t, err)
	require.Empty(t, resp.Dates)
}

func TestHandler_ListTaxonomy(t *testing.T) {
	handler := NewHandler(Config{Services: plantServices()})

	entries, err := handler.ListTaxonomy(context.Background(), ListTaxonomyParams{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Cooling", entries[0].System)
	require.Equal(t, []string{"Pumps"}, entries[0].Subsystems)
	require.Equal(t, []string{gantt.Unspecified}, entries[1].Subsystems)
}

func TestHandler_ErrorMapping(t *testing.T) {
	ctx := context.Background()
	handler := NewHandler(Config{Services: Services{
		Activities: activityStub{
			rescheduleFn: func(context.Context, string, time.Time, time.Time) (*activity.Activity, error) {
				return nil, activity.ErrInvalidDates
			},
		},
		ITRs: itrStub{
			createFn: func(context.Context, itr.CreateRequest) (*itr.ITR, error) {
				return nil, itr.ErrActivityNotFound
			},
			updateFn: func(context.Context, itr.UpdateRequest) (*itr.ITR, error) {
				return nil, itr.ErrInvalidQuantity
			},
		},
	}})

	var apiErr *APIError

	_, err := handler.RescheduleActivity(ctx, RescheduleActivityParams{ID: "a1", StartDate: "2024-03-10", EndDate: "2024-03-01"})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_DATES", apiErr.Code)

	_, err = handler.CreateITR(ctx, CreateITRParams{ActivityID: "missing", Description: "d", QuantityTotal: 1})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "ACTIVITY_NOT_FOUND", apiErr.Code)

	_, err = handler.RecordITRProgress(ctx, RecordITRProgressParams{ID: "i1", QuantityDone: 9})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_QUANTITY", apiErr.Code)
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Equal(t, "PROJECT_NOT_FOUND", MapError(project.ErrProjectNotFound).Code)
	require.Equal(t, "PROJECT_NOT_FOUND", MapError(activity.ErrProjectNotFound).Code)
	require.Equal(t, "ITR_NOT_FOUND", MapError(itr.ErrITRNotFound).Code)
	require.Equal(t, "INVALID_INPUT", MapError(activity.ErrInvalidInput).Code)

	wrapped := MapError(errors.Join(errors.New("context"), itr.ErrInvalidQuantity))
	require.Equal(t, "INVALID_QUANTITY", wrapped.Code)

	arg := invalidArgument("today", "bad")
	require.Same(t, arg, MapError(arg))
}
