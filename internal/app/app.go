// Package app assembles the catalog pipeline from configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"course-catalog/internal/catalog"
	"course-catalog/internal/config"
	"course-catalog/internal/embed"
	"course-catalog/internal/normalize"
	"course-catalog/internal/progress"
	"course-catalog/internal/providers"
	"course-catalog/internal/providers/sheet"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// App holds the long-lived pieces shared by the server and the CLI.
type App struct {
	Store   *catalog.Store
	Loader  *catalog.Loader
	Tracker *progress.Tracker
	Embed   embed.Strategy

	logger *zap.Logger
}

// New validates cfg and wires source, normalizer, store and tracker.
// Nothing is fetched until Load is called.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	kind, err := embed.ParseKind(cfg.EmbedStrategy)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	mode, err := sheet.ParseMode(cfg.SheetMode)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	ids := normalize.RandomIDs
	if cfg.DeterministicIDs {
		ids = normalize.DeterministicIDs
	}
	strategy := embed.Strategy{Kind: kind}
	store := catalog.NewStore()

	return &App{
		Store: store,
		Loader: &catalog.Loader{
			Source:     source(cfg, mode),
			Normalizer: normalize.New(strategy, ids),
			Store:      store,
			Logger:     logger,
		},
		Tracker: progress.Open(cfg.CompletionPath(), logger),
		Embed:   strategy,
		logger:  logger,
	}, nil
}

// source is nil when no sheet URL is configured.
func source(cfg config.Config, mode sheet.Mode) providers.RecordSource {
	if len(cfg.SheetURLs) == 0 {
		return nil
	}
	return sheet.Provider{
		C:    sheet.New(cfg.HTTPTimeout),
		URLs: cfg.SheetURLs,
		Mode: mode,
	}
}

// Load runs one catalog load.
func (a *App) Load(ctx context.Context) catalog.LoadStatus {
	return a.Loader.Load(ctx)
}

// ScheduleReloads runs Load on a standard cron spec (or "@every 15m") until
// the returned stop func is called. At most one load runs at a time. stop
// cancels a running load and waits for it to return.
func (a *App) ScheduleReloads(spec string, timeout time.Duration) (stop func(), err error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("app: invalid reload schedule: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	// a tick that lands while a load is running is dropped, never queued
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{a.logger.Sugar()})))
	c.Schedule(schedule, cron.FuncJob(func() {
		loadCtx, loadCancel := context.WithTimeout(ctx, timeout)
		defer loadCancel()
		status := a.Load(loadCtx)
		a.logger.Info("catalog reloaded",
			zap.String("state", string(status.State)),
			zap.Int("courses", status.Count),
		)
	}))
	c.Start()

	return func() {
		cancel()
		<-c.Stop().Done()
	}, nil
}

// cronLogger sends cron's own messages to zap.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
