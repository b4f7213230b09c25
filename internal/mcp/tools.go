package mcp

import (
	"context"

	"github.com/goccy/go-json"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools adds every tool to the server. Results are JSON text content;
// failures are tool errors carrying an APIError body.
func registerTools(server *sdkmcp.Server, h *Handler) {
	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a commissioning project",
	}, handle(h.CreateProject))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects ordered by title",
	}, handle(func(ctx context.Context, _ ListProjectsParams) ([]ProjectResponse, error) {
		return h.ListProjects(ctx)
	}))

	// Activities
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_activity",
		Description: "Create a scheduled activity in a project, tagged with a system and subsystem",
	}, handle(h.CreateActivity))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reschedule_activity",
		Description: "Move an activity to a new start and end date",
	}, handle(h.RescheduleActivity))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_activities",
		Description: "List activities, optionally for one project or system",
	}, handle(h.ListActivities))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_activities",
		Description: "Full-text prefix search over activity names and ITR descriptions",
	}, handle(h.SearchActivities))

	// ITRs
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_itr",
		Description: "Create an inspection/test record under an activity",
	}, handle(h.CreateITR))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "record_itr_progress",
		Description: "Set the completed quantity of an ITR and optionally its MCC flag",
	}, handle(h.RecordITRProgress))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_itrs",
		Description: "List ITRs with status derived as of today",
	}, handle(h.ListITRs))

	// Timeline
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "compute_gantt_model",
		Description: "Filter, group and position the timeline; returns the grouped Gantt model",
	}, handle(h.ComputeGanttModel))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "axis_dates",
		Description: "Tick dates and labels for a window at day, week or month resolution",
	}, handle(func(_ context.Context, p AxisDatesParams) (AxisDatesResponse, error) {
		return h.AxisDates(p)
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "pan_viewport",
		Description: "Shift a viewport one step earlier or later for its view mode",
	}, handle(h.PanViewport))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "zoom_viewport",
		Description: "Step the viewport zoom in or out within 0.5 to 2.0",
	}, handle(h.ZoomViewport))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_view_mode",
		Description: "Change the viewport resolution keeping its date window",
	}, handle(h.SetViewMode))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_taxonomy",
		Description: "List the systems and subsystems used by activities",
	}, handle(h.ListTaxonomy))
}

func handle[In, Out any](fn func(context.Context, In) (Out, error)) sdkmcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		out, err := fn(ctx, in)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(out)
	}
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorResult(err error) (*sdkmcp.CallToolResult, any, error) {
	data, mErr := json.Marshal(MapError(err))
	if mErr != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
