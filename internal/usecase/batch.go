package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"KenyaNews/internal/scanner"
)

// SourceRunner runs a single source; *Runner satisfies it.
type SourceRunner interface {
	Run(ctx context.Context, src scanner.Source, logger *slog.Logger) (RunReport, error)
}

// SourceLoggers opens the per-source logger used for one run.
type SourceLoggers func(source string) (*slog.Logger, io.Closer, error)

// Batch runs a selection of sources one after another.
type Batch struct {
	registry *scanner.Registry
	runner   SourceRunner
	loggers  SourceLoggers
	logger   *slog.Logger
}

// NewBatch wires the batch runner; nil loggers fall back to the batch logger.
func NewBatch(registry *scanner.Registry, runner SourceRunner, loggers SourceLoggers, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{registry: registry, runner: runner, loggers: loggers, logger: logger}
}

// BatchReport holds the per-source outcome; Overall is the AND of all results.
type BatchReport struct {
	Order   []string
	Results map[string]bool
	Reports map[string]RunReport
	Overall bool
}

// Select resolves requested identifiers against the registry. An empty request
// selects every source; unknown identifiers are logged and dropped.
func (b *Batch) Select(requested []string) []scanner.Source {
	if len(requested) == 0 {
		requested = b.registry.Names()
	}

	seen := map[string]struct{}{}
	var sources []scanner.Source
	for _, name := range requested {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		src, err := b.registry.Resolve(name)
		if err != nil {
			b.logger.Warn("unknown source", "source", name)
			continue
		}
		sources = append(sources, src)
	}
	return sources
}

// Run executes the selected sources sequentially.
func (b *Batch) Run(ctx context.Context, requested []string) BatchReport {
	report := BatchReport{Results: map[string]bool{}, Reports: map[string]RunReport{}}
	b.logger.Info("starting Kenya news scraping process")

	sources := b.Select(requested)
	if len(sources) == 0 {
		b.logger.Error("no valid scrapers to run")
		return report
	}

	for _, src := range sources {
		if ctx.Err() != nil {
			b.logger.Warn("batch interrupted", "source", src.Name, "error", ctx.Err())
			report.Order = append(report.Order, src.Name)
			report.Results[src.Name] = false
			continue
		}
		b.logger.Info("running scraper", "source", src.Name)
		run, ok := b.runOne(ctx, src)
		report.Order = append(report.Order, src.Name)
		report.Results[src.Name] = ok
		report.Reports[src.Name] = run

		status := "failed"
		if ok {
			status = "successful"
		}
		b.logger.Info("scraper completed", "source", src.Name, "status", status)
	}

	report.Overall = true
	for _, name := range report.Order {
		report.Overall = report.Overall && report.Results[name]
	}

	b.logger.Info("scraping process completed")
	for _, name := range report.Order {
		result := "Failed"
		if report.Results[name] {
			result = "Success"
		}
		b.logger.Info("summary", "source", name, "result", result)
	}
	overall := "Partial failure"
	if report.Overall {
		overall = "Success"
	}
	b.logger.Info("overall status", "status", overall)

	return report
}

func (b *Batch) runOne(ctx context.Context, src scanner.Source) (report RunReport, ok bool) {
	logger := b.logger.With("source", src.Name)
	if b.loggers != nil {
		sourceLogger, closer, err := b.loggers(src.Name)
		if err != nil {
			b.logger.Warn("per-source log unavailable", "source", src.Name, "error", err)
		} else {
			logger = sourceLogger
			defer closer.Close()
		}
	}

	defer func() {
		if p := recover(); p != nil {
			b.logger.Error("error running scraper", "source", src.Name, "panic", p)
			ok = false
		}
	}()

	report, err := b.runner.Run(ctx, src, logger)
	if err != nil {
		logger.Debug("run finished with error", "error", err)
	}
	return report, err == nil && report.Success()
}
