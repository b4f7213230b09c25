package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rpggio/precomm/internal/gantt"
	"github.com/rpggio/precomm/internal/tui"
	"github.com/rpggio/precomm/internal/watcher"
	"github.com/spf13/cobra"
)

func tuiCmd(flags *globalFlags) *cobra.Command {
	var (
		f        chartFlags
		dark     bool
		noWatch  bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the Gantt chart interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The alternate screen owns the terminal; only a log file receives logs.
			a, err := openApp(flags, io.Discard)
			if err != nil {
				return err
			}
			defer a.Close()

			opts := tui.Options{
				Load: func(ctx context.Context) (gantt.Snapshot, error) {
					return gantt.LoadSnapshot(ctx, a.source)
				},
				Filter: gantt.FilterSpec{
					ProjectID:   f.project,
					System:      f.system,
					Subsystem:   f.subsystem,
					Query:       f.query,
					OverdueOnly: f.overdue,
					FlaggedOnly: f.flagged,
				},
				DarkMode: dark || a.cfg.Gantt.DarkMode,
				Engine:   gantt.NewEngine(a.logger),
				Logger:   a.logger,
			}
			if f.status != "" {
				st, ok := gantt.ParseStatus(f.status)
				if !ok {
					return fmt.Errorf("invalid --status %q", f.status)
				}
				opts.Filter.Status = st
			}

			viewMode := f.viewMode
			if viewMode == "" {
				viewMode = a.cfg.Gantt.ViewMode
			}
			opts.ViewMode = gantt.ViewMode(strings.ToLower(viewMode))

			renderMode := f.render
			if renderMode == "" {
				renderMode = a.cfg.Gantt.RenderMode
			}
			rm, err := gantt.ParseRenderMode(renderMode)
			if err != nil {
				return err
			}
			opts.RenderMode = rm

			if !noWatch && a.cfg.DB.Path != ":memory:" {
				w, err := watcher.New(a.cfg.DB.Path, watcher.WithDebounce(debounce), watcher.WithLogger(a.logger))
				if err != nil {
					return err
				}
				if err := w.Start(); err != nil {
					a.logger.Warn("database watch unavailable", "error", err)
				} else {
					defer w.Stop()
					opts.Changes = w.Changed()
				}
			}

			return tui.Run(opts)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.project, "project", "", "limit to one project id")
	fs.StringVar(&f.system, "system", "", "limit to one system")
	fs.StringVar(&f.subsystem, "subsystem", "", "limit to one subsystem")
	fs.StringVarP(&f.query, "query", "q", "", "case-insensitive text match")
	fs.StringVar(&f.status, "status", "", "keep activities with an ITR in this status")
	fs.BoolVar(&f.overdue, "overdue", false, "keep activities with an overdue ITR")
	fs.BoolVar(&f.flagged, "flagged", false, "keep activities with an MCC-flagged ITR")
	fs.StringVar(&f.viewMode, "mode", "", "initial view mode: day, week or month")
	fs.StringVar(&f.render, "render", "", "initial render mode: full, simplified or summary")
	fs.BoolVar(&dark, "dark", false, "dark theme")
	fs.BoolVar(&noWatch, "no-watch", false, "do not reload when the database changes")
	fs.DurationVar(&debounce, "debounce", 250*time.Millisecond, "quiet period before reloading")
	return cmd
}
