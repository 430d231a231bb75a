package app

import (
	"fmt"
	"log/slog"

	"github.com/flemzord/recall/internal/config"
	ctxengine "github.com/flemzord/recall/internal/context"
	"github.com/flemzord/recall/internal/cron"
	"github.com/flemzord/recall/internal/gateway"
	"github.com/flemzord/recall/internal/history"
	"github.com/flemzord/recall/modules/history/sqlite"
)

// App bundles the wired components of a running recall instance.
type App struct {
	Assembler *ctxengine.Assembler
	Gateway   *gateway.Gateway
	Scheduler *cron.Scheduler

	closers []func() error
}

// Build wires config → store → engine → gateway → cron. It opens the store
// but starts nothing; callers own Start/Stop.
func Build(cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{}

	var store history.Store
	if cfg.History.Path != "" {
		dbStore, err := sqlite.Open(cfg.History.Path, cfg.History.Retention)
		if err != nil {
			return nil, fmt.Errorf("app: open history store: %w", err)
		}
		store = dbStore
		app.closers = append(app.closers, dbStore.Close)

		if cfg.History.PruneSchedule != "" {
			app.Scheduler = cron.NewScheduler(logger)
			job := &cron.RetentionPruneJob{
				Store:        dbStore,
				MaxAge:       cfg.History.Retention,
				Logger:       logger,
				ScheduleExpr: cfg.History.PruneSchedule,
			}
			if err := app.Scheduler.RegisterJob(job); err != nil {
				_ = app.Close()
				return nil, err
			}
		}
	} else {
		logger.Warn("no history path configured, using in-memory store")
		store = history.NewInMemoryStore()
	}

	app.Assembler = ctxengine.NewAssembler(store, EngineConfig(cfg.Engine), logger)
	app.Gateway = gateway.New(cfg.Server, app.Assembler, logger)

	return app, nil
}

// EngineConfig translates the YAML engine section into an engine Config.
func EngineConfig(e config.EngineConfig) ctxengine.Config {
	return ctxengine.Config{
		MaxContextChars: e.MaxContextChars,
		LivenessWindow:  e.LivenessWindow,
		TruncationFloor: e.TruncationFloor,
		HeadFraction:    e.HeadFraction,
		TailFraction:    e.TailFraction,
		Location:        e.EngineLocation(),
	}
}

// Close releases resources opened by Build.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
