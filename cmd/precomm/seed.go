package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/domain/project"
	"github.com/spf13/cobra"
)

// seedNamespace makes demo ids stable so a second seed is detected.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("precomm/seed"))

func seedID(parts ...string) string {
	name := ""
	for _, p := range parts {
		name += "/" + p
	}
	return uuid.NewSHA1(seedNamespace, []byte(name)).String()
}

type seedITR struct {
	description string
	total, done int
	dueOffset   int
	mcc         bool
}

type seedActivity struct {
	name, system, subsystem string
	startOffset, days       int
	itrs                    []seedITR
}

// demoPlant is a small plant scheduled around today: finished, running,
// late and future work across three systems.
func demoPlant() []seedActivity {
	return []seedActivity{
		{"Cable pulling", "Electrical", "MCC-1", -30, 21, []seedITR{
			{"Megger test feeder 1", 12, 12, -12, true},
			{"Megger test feeder 2", 12, 9, -3, false},
		}},
		{"Loop checks", "Electrical", "MCC-2", -5, 20, []seedITR{
			{"Loop check panel A", 40, 18, 6, false},
			{"Loop check panel B", 40, 0, 12, false},
		}},
		{"Flushing", "Piping", "Loop A", -20, 18, []seedITR{
			{"Flush loop A1", 4, 4, -8, true},
			{"Flush loop A2", 4, 2, -2, false},
		}},
		{"Hydrotest", "Piping", "Loop B", 3, 14, []seedITR{
			{"Hydrotest spool 7", 2, 0, 10, false},
			{"Hydrotest spool 8", 2, 0, 14, false},
		}},
		{"Pump alignment", "Rotating", "P-101", -10, 12, []seedITR{
			{"Laser alignment P-101A", 1, 1, -4, true},
			{"Laser alignment P-101B", 1, 0, 1, false},
		}},
		{"Solo runs", "Rotating", "P-101", 8, 10, []seedITR{
			{"Motor solo run", 2, 0, 16, false},
		}},
	}
}

type seedResult struct {
	projectID  string
	activities int
	itrs       int
	skipped    bool
}

func seed(ctx context.Context, a *app, title string, today time.Time) (seedResult, error) {
	res := seedResult{projectID: seedID(title)}

	if _, err := a.projects.Get(ctx, res.projectID); err == nil {
		res.skipped = true
		return res, nil
	} else if !errors.Is(err, project.ErrProjectNotFound) {
		return res, err
	}

	if _, err := a.projects.Create(ctx, project.CreateRequest{
		ID:          res.projectID,
		Title:       title,
		Description: "Demo pre-commissioning scope",
	}); err != nil {
		return res, fmt.Errorf("create project: %w", err)
	}

	for _, sa := range demoPlant() {
		start := today.AddDate(0, 0, sa.startOffset)
		act, err := a.activities.Create(ctx, activity.CreateRequest{
			ID:        seedID(title, sa.name),
			ProjectID: res.projectID,
			Name:      sa.name,
			System:    sa.system,
			Subsystem: sa.subsystem,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, sa.days),
		})
		if err != nil {
			return res, fmt.Errorf("create activity %q: %w", sa.name, err)
		}
		res.activities++

		for _, si := range sa.itrs {
			if _, err := a.itrs.Create(ctx, itr.CreateRequest{
				ID:            seedID(title, sa.name, si.description),
				ActivityID:    act.ID,
				Description:   si.description,
				QuantityTotal: si.total,
				QuantityDone:  si.done,
				DueDate:       today.AddDate(0, 0, si.dueOffset),
				MCC:           si.mcc,
			}); err != nil {
				return res, fmt.Errorf("create itr %q: %w", si.description, err)
			}
			res.itrs++
		}
	}
	a.logger.Info("seeded demo project", "project_id", res.projectID, "activities", res.activities, "itrs", res.itrs)
	return res, nil
}

func seedCmd(flags *globalFlags) *cobra.Command {
	var (
		title string
		f     chartFlags
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a demo project scheduled around today",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			today, err := f.resolveToday(time.Now())
			if err != nil {
				return err
			}
			res, err := seed(cmd.Context(), a, title, today)
			if err != nil {
				return err
			}
			printSeedResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "Demo Plant", "project title")
	cmd.Flags().StringVar(&f.today, "today", "", "schedule around this date instead of the clock")
	return cmd
}

func printSeedResult(w io.Writer, res seedResult) {
	if res.skipped {
		fmt.Fprintf(w, "Project %s already seeded\n", res.projectID)
		return
	}
	fmt.Fprintf(w, "Seeded project %s: %d activities, %d ITRs\n", res.projectID, res.activities, res.itrs)
}
