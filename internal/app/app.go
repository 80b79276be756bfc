package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"KenyaNews/internal/config"
	"KenyaNews/internal/infrastructure/browser"
	"KenyaNews/internal/infrastructure/export"
	"KenyaNews/internal/infrastructure/parser"
	"KenyaNews/internal/infrastructure/scheduler"
	"KenyaNews/internal/infrastructure/storage"
	"KenyaNews/internal/logging"
	"KenyaNews/internal/ports"
	"KenyaNews/internal/scanner"
	"KenyaNews/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *scanner.Registry
	batch    *usecase.Batch
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := scanner.NewRegistry()
	parser.Register(registry)
	if unknown := registry.Apply(sourceOverrides(cfg.Sources)); len(unknown) > 0 {
		baseLogger.Warn("ignoring overrides for unknown sources", "sources", unknown)
	}

	store, err := storage.NewSQLStore(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.Migrate(), registry.Names())
	if err != nil {
		return nil, fmt.Errorf("configure storage: %w", err)
	}

	articleDelay, categoryDelay := cfg.Throttle.Delays()
	runner := usecase.NewRunner(usecase.RunnerDeps{
		Browser:  newBrowser(cfg, baseLogger.With("component", "browser")),
		Store:    store,
		Exporter: export.NewCSVExporter(cfg.Export.Dir),
		Throttle: usecase.Throttle{
			ArticleDelay:  articleDelay,
			CategoryDelay: categoryDelay,
		},
	})

	files := logging.Files{Dir: cfg.Logging.Dir, Level: cfg.Logging.Level, Console: os.Stdout}
	batch := usecase.NewBatch(registry, runner, files.Source, baseLogger.With("component", "batch"))

	return &Application{cfg: cfg, logger: baseLogger, registry: registry, batch: batch}, nil
}

// Sources lists the registered source names.
func (a *Application) Sources() []string {
	return a.registry.Names()
}

// Run performs a single batch over the requested sources (all when empty).
func (a *Application) Run(ctx context.Context, sources []string) usecase.BatchReport {
	return a.batch.Run(ctx, sources)
}

// Serve runs batches on the configured cron schedule until ctx is done.
func (a *Application) Serve(ctx context.Context, sources []string) error {
	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	if err := driver.Validate(); err != nil {
		return err
	}

	sched := usecase.NewScheduler(driver, a.batch, sources)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	if next, err := driver.Next(time.Now()); err == nil {
		a.logger.Info("scheduler started", "cron", a.cfg.Scheduler.CronExpression, "next", next)
	}
	<-ctx.Done()
	a.logger.Info("scheduler stopping")
	return sched.Stop(context.Background())
}

func newBrowser(cfg config.Config, logger *slog.Logger) ports.Browser {
	opts := browser.Options{
		ExecPath:  cfg.Browser.ChromePath,
		UserAgent: cfg.Browser.UserAgent,
		Headless:  cfg.Browser.IsHeadless(),
		Timeout:   cfg.Browser.Timeout(),
		SkipWait:  cfg.Throttle.SkipRenderWait,
	}
	if cfg.Browser.Engine == "http" {
		return browser.NewHTTP(nil, opts, logger)
	}
	return browser.NewChrome(opts, logger)
}

func sourceOverrides(in map[string]config.SourceConfig) map[string]scanner.Override {
	out := make(map[string]scanner.Override, len(in))
	for name, sc := range in {
		out[name] = scanner.Override{Categories: sc.Categories, Budget: sc.Budget, Export: sc.Export}
	}
	return out
}
