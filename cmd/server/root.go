package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ganot/roadmap/internal/config"
	"github.com/ganot/roadmap/internal/domain/activity"
	"github.com/ganot/roadmap/internal/domain/catalog"
	"github.com/ganot/roadmap/internal/domain/savedchart"
	"github.com/ganot/roadmap/internal/sqlite"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "roadmap",
		Short:         "Mineral-resource project roadmap builder",
		Long:          "Builds Gantt-style roadmaps of project stages and works and serves them to agents over MCP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newBuildCmd(),
		newAPIKeyCmd(),
	)

	return root
}

// runtime holds everything a command needs once configuration is loaded.
type runtime struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sqlite.DB
	apiKeys  *sqlite.APIKeyRepository
	catalog  *catalog.Service
	charts   *savedchart.Service
	activity *activity.Service

	closers []func() error
}

// newRuntime loads configuration, opens and migrates the database, and wires
// the services. Log output goes to logOutput(cfg) unless a log file is set.
func newRuntime(logOutput func(config.Config) io.Writer) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	rt := &runtime{cfg: cfg}

	logWriter := logOutput(cfg)
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			rt.closers = append(rt.closers, file.Close)
			logWriter = fileWriter
		}
	}
	rt.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		rt.Close()
		return nil, fmt.Errorf("prepare database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.db = db
	rt.closers = append(rt.closers, db.Close)

	if err := db.RunMigrations(); err != nil {
		rt.Close()
		return nil, err
	}

	catalogRepo := sqlite.NewCatalogRepository(db)
	chartRepo := sqlite.NewChartRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	rt.apiKeys = sqlite.NewAPIKeyRepository(db)
	rt.catalog = catalog.NewService(catalogRepo, rt.logger)
	rt.activity = activity.NewService(activityRepo, rt.logger)
	rt.charts = savedchart.NewService(chartRepo, rt.catalog, activityRepo, rt.logger)

	return rt, nil
}

// Close releases the database and log file in reverse order of opening.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		_ = rt.closers[i]()
	}
	rt.closers = nil
}

// stderrLog keeps stdout free for command output.
func stderrLog(config.Config) io.Writer {
	return os.Stderr
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
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
