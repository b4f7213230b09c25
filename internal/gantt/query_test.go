package gantt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryRequest(t *testing.T) {
	snap, today := plantSnapshot(t), day(t, "2024-03-15")

	req, err := Query{
		Filter:     FilterSpec{ProjectID: "P1"},
		Status:     "in progress",
		Start:      "2024-03-01",
		End:        "2024-03-31",
		ViewMode:   "Week",
		Zoom:       1.6,
		RenderMode: "summary",
	}.Request(snap, today)
	require.NoError(t, err)
	require.Equal(t, StatusInProgress, req.Filter.Status)
	require.Equal(t, "P1", req.Filter.ProjectID)
	require.Equal(t, ViewWeek, req.Viewport.Mode)
	require.Equal(t, 1.5, req.Viewport.Zoom)
	require.Equal(t, RenderSummary, req.Mode)
	require.Equal(t, day(t, "2024-03-31"), req.Viewport.End)
}

func TestQueryRequest_Defaults(t *testing.T) {
	snap, today := plantSnapshot(t), day(t, "2024-03-15")

	req, err := Query{}.Request(snap, today)
	require.NoError(t, err)
	require.Equal(t, RenderFull, req.Mode)
	require.Equal(t, DefaultViewport(today, ViewDay), req.Viewport)

	fit, err := Query{Fit: true, ViewMode: "month"}.Request(snap, today)
	require.NoError(t, err)
	require.Equal(t, FitViewport(snap, ViewMonth, today), fit.Viewport)
}

func TestQueryRequest_FieldErrors(t *testing.T) {
	snap, today := plantSnapshot(t), day(t, "2024-03-15")

	cases := map[string]Query{
		"status":      {Status: "late"},
		"render_mode": {RenderMode: "fancy"},
		"view_mode":   {ViewMode: "year"},
		"start":       {Start: "soon", End: "2024-03-01"},
		"end":         {Start: "2024-03-01"},
	}
	for field, q := range cases {
		_, err := q.Request(snap, today)
		var fe *FieldError
		require.True(t, errors.As(err, &fe), field)
		require.Equal(t, field, fe.Field)
	}
}
