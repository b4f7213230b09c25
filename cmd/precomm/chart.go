package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rpggio/precomm/internal/config"
	"github.com/rpggio/precomm/internal/dates"
	"github.com/rpggio/precomm/internal/gantt"
	"github.com/rpggio/precomm/internal/render"
	"github.com/spf13/cobra"
)

// chartFlags are shared by the commands that compute a Gantt model.
type chartFlags struct {
	project   string
	system    string
	subsystem string
	query     string
	status    string
	overdue   bool
	flagged   bool
	start     string
	end       string
	viewMode  string
	zoom      float64
	fit       bool
	render    string
	today     string
	out       string
	width     int
	dark      bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.project, "project", "", "limit to one project id")
	fs.StringVar(&f.system, "system", "", "limit to one system")
	fs.StringVar(&f.subsystem, "subsystem", "", "limit to one subsystem")
	fs.StringVarP(&f.query, "query", "q", "", "case-insensitive text match on activity name or ITR description")
	fs.StringVar(&f.status, "status", "", "keep activities with an ITR in this status")
	fs.BoolVar(&f.overdue, "overdue", false, "keep activities with an overdue ITR")
	fs.BoolVar(&f.flagged, "flagged", false, "keep activities with an MCC-flagged ITR")
	fs.StringVar(&f.start, "start", "", "window start (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "window end (YYYY-MM-DD)")
	fs.StringVar(&f.viewMode, "mode", "", "day, week or month (default from config)")
	fs.Float64Var(&f.zoom, "zoom", gantt.DefaultZoom, "zoom factor, 0.5 to 2.0")
	fs.BoolVar(&f.fit, "fit", false, "fit the window to the data")
	fs.StringVar(&f.render, "render", "", "full, simplified or summary (default from config)")
	fs.StringVar(&f.today, "today", "", "evaluate as of this date instead of the clock")
	fs.StringVarP(&f.out, "out", "o", "", "output file (default stdout)")
}

func (f *chartFlags) registerAppearance(cmd *cobra.Command, defaultWidth int) {
	cmd.Flags().IntVar(&f.width, "width", defaultWidth, "output width")
	cmd.Flags().BoolVar(&f.dark, "dark", false, "dark theme")
}

// resolveToday returns the --today override or the current UTC day.
func (f *chartFlags) resolveToday(now time.Time) (time.Time, error) {
	if f.today == "" {
		return dates.Day(now), nil
	}
	t, ok := dates.Parse(f.today)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid --today %q: want YYYY-MM-DD", f.today)
	}
	return t, nil
}

// toQuery merges the flags over the gantt section of cfg. A configured
// window_days replaces the mode's default window when no bounds are given.
func (f *chartFlags) toQuery(cfg config.GanttConfig, today time.Time) gantt.Query {
	q := gantt.Query{
		Filter: gantt.FilterSpec{
			ProjectID:   f.project,
			System:      f.system,
			Subsystem:   f.subsystem,
			Query:       f.query,
			OverdueOnly: f.overdue,
			FlaggedOnly: f.flagged,
		},
		Status:     f.status,
		Start:      f.start,
		End:        f.end,
		ViewMode:   f.viewMode,
		Zoom:       f.zoom,
		Fit:        f.fit,
		RenderMode: f.render,
	}
	if q.ViewMode == "" {
		q.ViewMode = cfg.ViewMode
	}
	if q.RenderMode == "" {
		q.RenderMode = cfg.RenderMode
	}
	if cfg.WindowDays > 0 && !q.Fit && q.Start == "" && q.End == "" {
		start := today.AddDate(0, 0, -7)
		q.Start = dates.Format(start)
		q.End = dates.Format(start.AddDate(0, 0, cfg.WindowDays))
	}
	return q
}

// compute opens the app, loads a snapshot and runs the pipeline.
func (f *chartFlags) compute(ctx context.Context, flags *globalFlags) (*gantt.Model, *app, error) {
	a, err := openApp(flags, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	today, err := f.resolveToday(time.Now())
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	snap, err := gantt.LoadSnapshot(ctx, a.source)
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	req, err := f.toQuery(a.cfg.Gantt, today).Request(snap, today)
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	return gantt.NewEngine(a.logger).Compute(req), a, nil
}

// output opens --out, or wraps stdout.
func (f *chartFlags) output() (io.WriteCloser, error) {
	if f.out == "" || f.out == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(f.out)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func modelCmd(flags *globalFlags) *cobra.Command {
	var f chartFlags
	var compact bool

	cmd := &cobra.Command{
		Use:   "model",
		Short: "Print the computed Gantt model as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, a, err := f.compute(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			w, err := f.output()
			if err != nil {
				return err
			}
			defer w.Close()

			enc := json.NewEncoder(w)
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(m)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&compact, "compact", false, "single-line JSON")
	return cmd
}

func svgCmd(flags *globalFlags) *cobra.Command {
	var f chartFlags
	var title string

	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Render the Gantt chart as SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, a, err := f.compute(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			w, err := f.output()
			if err != nil {
				return err
			}
			defer w.Close()

			return render.WriteSVG(w, m, render.SVGOptions{
				Width:    f.width,
				DarkMode: f.dark || a.cfg.Gantt.DarkMode,
				Title:    title,
			})
		},
	}
	f.register(cmd)
	f.registerAppearance(cmd, 1200)
	cmd.Flags().StringVar(&title, "title", "Pre-commissioning schedule", "chart title")
	return cmd
}

func textCmd(flags *globalFlags) *cobra.Command {
	var f chartFlags
	var color bool

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Render the Gantt chart as terminal text",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, a, err := f.compute(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			w, err := f.output()
			if err != nil {
				return err
			}
			defer w.Close()

			opts := render.TextOptions{Width: f.width, Color: color, DarkMode: f.dark || a.cfg.Gantt.DarkMode}
			if err := render.WriteText(w, m, opts); err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, render.Legend(opts))
			return err
		},
	}
	f.register(cmd)
	f.registerAppearance(cmd, 120)
	cmd.Flags().BoolVar(&color, "color", false, "ANSI colors")
	return cmd
}
