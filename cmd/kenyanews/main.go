package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	_ "time/tzdata"

	"KenyaNews/internal/app"
	"KenyaNews/internal/config"
	"KenyaNews/internal/logging"
	"KenyaNews/internal/usecase"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code: 0 only when every requested source succeeded.
func run() int {
	configPath := flag.String("config", os.Getenv("KENYANEWS_CONFIG"), "path to YAML config")
	sourcesFlag := flag.String("sources", "", "comma-separated sources to scrape (default: all)")
	daemon := flag.Bool("daemon", false, "run batches on the configured cron schedule")
	flag.Parse()

	cfg := config.LoadFile(*configPath)
	files := logging.Files{Dir: cfg.Logging.Dir, Level: cfg.Logging.Level, Console: os.Stdout}
	logger, closer, err := files.Batch()
	if err != nil {
		logger = logging.New(cfg.Logging.Level)
		logger.Warn("batch log file unavailable", "error", err)
	} else {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		return 1
	}

	sources := requestedSources(*sourcesFlag, flag.Args())

	if *daemon {
		if err := application.Serve(ctx, sources); err != nil {
			logger.Error("scheduler stopped", "error", err)
			return 1
		}
		return 0
	}

	return exitCode(application.Run(ctx, sources))
}

func exitCode(report usecase.BatchReport) int {
	if report.Overall {
		return 0
	}
	return 1
}

func requestedSources(flagValue string, args []string) []string {
	var out []string
	for _, part := range strings.Split(flagValue, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return append(out, args...)
}
