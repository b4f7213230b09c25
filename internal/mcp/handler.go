package mcp

import (
	"context"
	"time"

	"github.com/rpggio/precomm/internal/dates"
	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/domain/project"
	"github.com/rpggio/precomm/internal/gantt"
)

// Handler implements the MCP tools on top of the domain services.
type Handler struct {
	projects   ProjectService
	activities ActivityService
	itrs       ITRService
	engine     *gantt.Engine
	now        func() time.Time
}

// NewHandler creates a new MCP handler.
func NewHandler(cfg Config) *Handler {
	h := &Handler{
		projects:   cfg.Services.Projects,
		activities: cfg.Services.Activities,
		itrs:       cfg.Services.ITRs,
		engine:     cfg.Engine,
		now:        cfg.Now,
	}
	if h.engine == nil {
		h.engine = gantt.NewEngine(cfg.Logger)
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

func (h *Handler) CreateProject(ctx context.Context, p CreateProjectParams) (ProjectResponse, error) {
	proj, err := h.projects.Create(ctx, project.CreateRequest{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
	})
	if err != nil {
		return ProjectResponse{}, mapError(err)
	}
	return projectResponse(*proj), nil
}

func (h *Handler) ListProjects(ctx context.Context) ([]ProjectResponse, error) {
	projects, err := h.projects.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	resp := make([]ProjectResponse, 0, len(projects))
	for _, proj := range projects {
		resp = append(resp, projectResponse(proj))
	}
	return resp, nil
}

func (h *Handler) CreateActivity(ctx context.Context, p CreateActivityParams) (ActivityResponse, error) {
	start, err := parseDate("start_date", p.StartDate)
	if err != nil {
		return ActivityResponse{}, err
	}
	end, err := parseDate("end_date", p.EndDate)
	if err != nil {
		return ActivityResponse{}, err
	}
	act, err := h.activities.Create(ctx, activity.CreateRequest{
		ID:        p.ID,
		ProjectID: p.ProjectID,
		Name:      p.Name,
		System:    p.System,
		Subsystem: p.Subsystem,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return ActivityResponse{}, mapError(err)
	}
	return activityResponse(*act), nil
}

func (h *Handler) RescheduleActivity(ctx context.Context, p RescheduleActivityParams) (ActivityResponse, error) {
	start, err := parseDate("start_date", p.StartDate)
	if err != nil {
		return ActivityResponse{}, err
	}
	end, err := parseDate("end_date", p.EndDate)
	if err != nil {
		return ActivityResponse{}, err
	}
	act, err := h.activities.Reschedule(ctx, p.ID, start, end)
	if err != nil {
		return ActivityResponse{}, mapError(err)
	}
	return activityResponse(*act), nil
}

func (h *Handler) ListActivities(ctx context.Context, p ListActivitiesParams) ([]ActivityResponse, error) {
	acts, err := h.activities.List(ctx, activity.ListOptions{
		ProjectID: p.ProjectID,
		System:    p.System,
		Limit:     p.Limit,
		Offset:    p.Offset,
	})
	if err != nil {
		return nil, mapError(err)
	}
	resp := make([]ActivityResponse, 0, len(acts))
	for _, act := range acts {
		resp = append(resp, activityResponse(act))
	}
	return resp, nil
}

func (h *Handler) SearchActivities(ctx context.Context, p SearchActivitiesParams) ([]activity.SearchResult, error) {
	results, err := h.activities.Search(ctx, p.Query, activity.SearchOptions{
		ProjectID: p.ProjectID,
		Limit:     p.Limit,
	})
	if err != nil {
		return nil, mapError(err)
	}
	if results == nil {
		results = []activity.SearchResult{}
	}
	return results, nil
}

func (h *Handler) CreateITR(ctx context.Context, p CreateITRParams) (ITRResponse, error) {
	due, err := parseDate("due_date", p.DueDate)
	if err != nil {
		return ITRResponse{}, err
	}
	rec, err := h.itrs.Create(ctx, itr.CreateRequest{
		ID:            p.ID,
		ActivityID:    p.ActivityID,
		Description:   p.Description,
		QuantityTotal: p.QuantityTotal,
		QuantityDone:  p.QuantityDone,
		DueDate:       due,
		MCC:           p.MCC,
		Notes:         p.Notes,
	})
	if err != nil {
		return ITRResponse{}, mapError(err)
	}
	today, err := h.today(ctx, "")
	if err != nil {
		return ITRResponse{}, err
	}
	return itrResponse(*rec, today), nil
}

// RecordITRProgress sets quantity_done and, when given, the MCC flag in one update.
func (h *Handler) RecordITRProgress(ctx context.Context, p RecordITRProgressParams) (ITRResponse, error) {
	today, err := h.today(ctx, p.Today)
	if err != nil {
		return ITRResponse{}, err
	}
	done := p.QuantityDone
	rec, err := h.itrs.Update(ctx, itr.UpdateRequest{ID: p.ID, QuantityDone: &done, MCC: p.MCC})
	if err != nil {
		return ITRResponse{}, mapError(err)
	}
	return itrResponse(*rec, today), nil
}

func (h *Handler) ListITRs(ctx context.Context, p ListITRsParams) ([]ITRResponse, error) {
	today, err := h.today(ctx, p.Today)
	if err != nil {
		return nil, err
	}
	recs, err := h.itrs.List(ctx, itr.ListOptions{
		ActivityID: p.ActivityID,
		ProjectID:  p.ProjectID,
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return nil, mapError(err)
	}
	resp := make([]ITRResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, itrResponse(rec, today))
	}
	return resp, nil
}

// ComputeGanttModel loads a fresh snapshot and runs it through the engine.
func (h *Handler) ComputeGanttModel(ctx context.Context, p ComputeGanttModelParams) (*gantt.Model, error) {
	today, err := h.today(ctx, p.Today)
	if err != nil {
		return nil, err
	}
	snap, err := gantt.LoadSnapshot(ctx, h.source())
	if err != nil {
		return nil, mapError(err)
	}

	q := gantt.Query{
		Filter: gantt.FilterSpec{
			ProjectID:   p.ProjectID,
			System:      p.System,
			Subsystem:   p.Subsystem,
			Query:       p.Query,
			OverdueOnly: p.OverdueOnly,
			FlaggedOnly: p.FlaggedOnly,
		},
		Status:     p.Status,
		Fit:        p.Fit,
		RenderMode: p.RenderMode,
	}
	if p.Viewport != nil {
		q.Start, q.End = p.Viewport.Start, p.Viewport.End
		q.ViewMode, q.Zoom = p.Viewport.ViewMode, p.Viewport.Zoom
	}
	req, err := q.Request(snap, today)
	if err != nil {
		return nil, mapError(err)
	}
	return h.engine.Compute(req), nil
}

func (h *Handler) AxisDates(p AxisDatesParams) (AxisDatesResponse, error) {
	start, err := parseDate("start", p.Start)
	if err != nil {
		return AxisDatesResponse{}, err
	}
	end, err := parseDate("end", p.End)
	if err != nil {
		return AxisDatesResponse{}, err
	}
	mode, err := parseViewMode(p.ViewMode)
	if err != nil {
		return AxisDatesResponse{}, err
	}
	ticks := gantt.AxisDates(start, end, mode)
	resp := AxisDatesResponse{Dates: make([]string, 0, len(ticks)), Labels: make([]string, 0, len(ticks))}
	for _, d := range ticks {
		resp.Dates = append(resp.Dates, dates.Format(d))
		resp.Labels = append(resp.Labels, gantt.TickLabel(d, mode))
	}
	return resp, nil
}

func (h *Handler) PanViewport(ctx context.Context, p PanViewportParams) (ViewportResponse, error) {
	dir, err := gantt.ParsePanDirection(p.Direction)
	if err != nil {
		return ViewportResponse{}, invalidArgument("direction", err.Error())
	}
	vp, err := h.viewportAt(ctx, p.Viewport)
	if err != nil {
		return ViewportResponse{}, err
	}
	return viewportResponse(gantt.Pan(vp, dir)), nil
}

func (h *Handler) ZoomViewport(ctx context.Context, p ZoomViewportParams) (ViewportResponse, error) {
	dir, err := gantt.ParseZoomDirection(p.Direction)
	if err != nil {
		return ViewportResponse{}, invalidArgument("direction", err.Error())
	}
	vp, err := h.viewportAt(ctx, p.Viewport)
	if err != nil {
		return ViewportResponse{}, err
	}
	return viewportResponse(gantt.Zoom(vp, dir)), nil
}

func (h *Handler) SetViewMode(ctx context.Context, p SetViewModeParams) (ViewportResponse, error) {
	mode, err := gantt.ParseViewMode(p.ViewMode)
	if err != nil {
		return ViewportResponse{}, invalidArgument("view_mode", err.Error())
	}
	vp, err := h.viewportAt(ctx, p.Viewport)
	if err != nil {
		return ViewportResponse{}, err
	}
	return viewportResponse(gantt.SetViewMode(vp, mode)), nil
}

func (h *Handler) ListTaxonomy(ctx context.Context, p ListTaxonomyParams) ([]gantt.TaxonomyEntry, error) {
	acts, err := h.activities.List(ctx, activity.ListOptions{ProjectID: p.ProjectID})
	if err != nil {
		return nil, mapError(err)
	}
	entries := gantt.BuildTaxonomy(acts).Entries()
	if entries == nil {
		entries = []gantt.TaxonomyEntry{}
	}
	return entries, nil
}

// today resolves the status reference day: the explicit argument, then
// _meta.today, then the clock.
func (h *Handler) today(ctx context.Context, explicit string) (time.Time, error) {
	if explicit != "" {
		return parseDate("today", explicit)
	}
	if t := getToday(ctx); !t.IsZero() {
		return t, nil
	}
	return dates.Day(h.now()), nil
}

func (h *Handler) viewportAt(ctx context.Context, p ViewportParams) (gantt.Viewport, error) {
	today, err := h.today(ctx, "")
	if err != nil {
		return gantt.Viewport{}, err
	}
	return viewportFrom(p, today)
}

func (h *Handler) source() gantt.Source {
	return serviceSource{h}
}

type serviceSource struct{ h *Handler }

func (s serviceSource) ListProjects(ctx context.Context) ([]project.Project, error) {
	return s.h.projects.List(ctx)
}

func (s serviceSource) ListActivities(ctx context.Context, projectID string) ([]activity.Activity, error) {
	return s.h.activities.List(ctx, activity.ListOptions{ProjectID: projectID})
}

func (s serviceSource) ListITRs(ctx context.Context, activityID string) ([]itr.ITR, error) {
	return s.h.itrs.List(ctx, itr.ListOptions{ActivityID: activityID})
}

func viewportFrom(p ViewportParams, today time.Time) (gantt.Viewport, error) {
	vp, err := gantt.ParseViewport(p.Start, p.End, p.ViewMode, p.Zoom, today)
	if err != nil {
		return gantt.Viewport{}, mapError(err)
	}
	return vp, nil
}

func parseViewMode(s string) (gantt.ViewMode, error) {
	if s == "" {
		return gantt.ViewDay, nil
	}
	mode, err := gantt.ParseViewMode(s)
	if err != nil {
		return "", invalidArgument("view_mode", err.Error())
	}
	return mode, nil
}

// parseDate reads an optional YYYY-MM-DD argument. Blank is the zero time.
func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, ok := dates.Parse(s)
	if !ok {
		return time.Time{}, invalidArgument(field, field+" must be a date like 2024-03-15")
	}
	return t, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	return MapError(err)
}

func projectResponse(p project.Project) ProjectResponse {
	return ProjectResponse{ID: p.ID, Title: p.Title, Description: p.Description}
}

func activityResponse(a activity.Activity) ActivityResponse {
	return ActivityResponse{
		ID:           a.ID,
		ProjectID:    a.ProjectID,
		Name:         a.Name,
		System:       a.System,
		Subsystem:    a.Subsystem,
		StartDate:    dates.Format(a.StartDate),
		EndDate:      dates.Format(a.EndDate),
		DurationDays: a.DurationDays(),
	}
}

func itrResponse(rec itr.ITR, today time.Time) ITRResponse {
	st := gantt.DeriveITR(rec, today)
	return ITRResponse{
		ID:            rec.ID,
		ActivityID:    rec.ActivityID,
		Description:   rec.Description,
		QuantityTotal: rec.QuantityTotal,
		QuantityDone:  rec.QuantityDone,
		DueDate:       dates.Format(rec.DueDate),
		MCC:           rec.MCC,
		Notes:         rec.Notes,
		Status:        st.Status,
		Progress:      st.Progress,
		OverdueDays:   st.OverdueDays,
	}
}

func viewportResponse(v gantt.Viewport) ViewportResponse {
	return ViewportResponse{
		Start:    dates.Format(v.Start),
		End:      dates.Format(v.End),
		ViewMode: string(v.Mode),
		Zoom:     v.Zoom,
	}
}
