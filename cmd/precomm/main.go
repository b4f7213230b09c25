package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/precomm/internal/config"
	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/domain/project"
	"github.com/rpggio/precomm/internal/gantt"
	"github.com/rpggio/precomm/internal/sqlite"
	"github.com/spf13/cobra"
)

// globalFlags override the loaded configuration when set.
type globalFlags struct {
	dbPath   string
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:           "precomm",
		Short:         "Pre-commissioning Gantt dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "database path (default from config)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(serveCmd(&flags))
	rootCmd.AddCommand(modelCmd(&flags))
	rootCmd.AddCommand(svgCmd(&flags))
	rootCmd.AddCommand(textCmd(&flags))
	rootCmd.AddCommand(tuiCmd(&flags))
	rootCmd.AddCommand(seedCmd(&flags))
	return rootCmd
}

// app is the wired service graph shared by every command.
type app struct {
	cfg        config.Config
	logger     *slog.Logger
	db         *sqlite.DB
	projects   *project.Service
	activities *activity.Service
	itrs       *itr.Service
	source     *gantt.ServiceSource
	closers    []io.Closer
}

// openApp loads configuration, builds the logger and opens the migrated
// database. logWriter is the console sink; PRECOMM_LOG_PATH replaces it.
func openApp(flags *globalFlags, logWriter io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if flags.dbPath != "" {
		cfg.DB.Path = flags.dbPath
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	a := &app{cfg: cfg}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, file)
			logWriter = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		a.Close()
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.db = db
	a.closers = append([]io.Closer{db}, a.closers...)
	if err := db.RunMigrations(); err != nil {
		a.Close()
		return nil, err
	}

	a.projects = project.NewService(sqlite.NewProjectRepository(db), a.logger)
	a.activities = activity.NewService(sqlite.NewActivityRepository(db), sqlite.NewSearchRepository(db), a.logger)
	a.itrs = itr.NewService(sqlite.NewITRRepository(db), a.logger)
	a.source = gantt.NewServiceSource(a.projects, a.activities, a.itrs)

	a.logger.Debug("database ready", "path", cfg.DB.Path)
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" || filepath.Dir(path) == "." {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
