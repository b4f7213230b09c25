package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `precomm tracks pre-commissioning work as Projects → Activities → ITRs and
derives a Gantt timeline from them.

Core concepts:
- Project: top-level container.
- Activity: a dated unit of work (start_date..end_date) tagged with a free-text system and subsystem.
- ITR: inspection/test record under an activity with quantity_total, quantity_done, a due date and an MCC flag.
- Status is never stored. It is derived per call relative to "today": Completed, Overdue, In-progress or Not-started.

Typical workflow:
1) list_projects, then list_activities / list_itrs or search_activities to orient.
2) compute_gantt_model with filters (project_id, system, subsystem, query, status, overdue_only, flagged_only)
   and a viewport (start, end, view_mode, zoom) or fit=true.
3) Navigate with pan_viewport, zoom_viewport and set_view_mode, feeding the returned viewport back in.

Dates are YYYY-MM-DD. Pass "today" as an argument or _meta.today to pin the status reference day.

Docs:
- precomm://docs/model (Gantt model shape and derivation rules)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "precomm://docs/model",
		Name:        "docs_model",
		Title:       "Gantt model reference",
		Description: "Shape of compute_gantt_model output and how status, progress and bars are derived.",
		Content: `# Gantt model

## Shape

- ` + "`viewport`" + `: normalized window {start, end, mode, zoom}.
- ` + "`ticks`" + `: axis ticks {date, position, label}. Month ticks keep the window start's day-of-month and clamp only when that day does not exist.
- ` + "`groups`" + `: project → system → subsystem nodes. Each node carries an aggregate {activities, total, completed, overdue, avg_overdue_days}. Leaves hold activity rows.
- ` + "`today_position`" + `: percentage of the window, omitted when today is outside it.
- ` + "`taxonomy`" + `: every system with its subsystems. Blank values appear as "unspecified", sorted last.
- ` + "`invalid`" + `: records kept out of bar geometry because of missing or inverted dates.

## Derivation

ITR status, in order:
1. Completed when quantity_total > 0 and quantity_done >= quantity_total.
2. Overdue when the due date is before today.
3. In-progress when quantity_done > 0.
4. Not-started otherwise.

Activity status: Overdue if any ITR is overdue, Completed if all ITRs are at 100%, In-progress if any ITR has progress, else Not-started. Activity progress is the mean ITR progress.

Colors: Completed green, Overdue red, In-progress amber, Not-started gray.

## Geometry

Positions are percentages of the window, clamped to 0..100. Bars have a minimum width of 0.5 and are shifted left to stay inside the window.

## Filters

All filters combine with AND. A query matching an activity name keeps all its ITRs; otherwise only ITRs whose description matches survive. Status, overdue_only and flagged_only narrow the ITR list and drop activities left without ITRs.

## Render modes

- ` + "`full`" + `: activity and ITR rows.
- ` + "`simplified`" + `: activity rows only.
- ` + "`summary`" + `: group aggregates only.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
