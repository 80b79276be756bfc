package main

import (
	"context"
	"flag"
	"os"
	"time"

	"KenyaNews/internal/config"
	"KenyaNews/internal/infrastructure/parser"
	"KenyaNews/internal/infrastructure/storage"
	"KenyaNews/internal/logging"
	"KenyaNews/internal/scanner"
)

func main() {
	configPath := flag.String("config", os.Getenv("KENYANEWS_CONFIG"), "path to YAML config")
	flag.Parse()

	cfg := config.LoadFile(*configPath)
	logger := logging.New(cfg.Logging.Level).With("component", "dbsetup")

	registry := scanner.NewRegistry()
	parser.Register(registry)

	store, err := storage.NewSQLStore(cfg.Database.Driver, cfg.Database.DSN, false, nil)
	if err != nil {
		logger.Error("invalid database configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := store.OpenRepository(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx, registry.Names()...); err != nil {
		logger.Error("schema setup failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database setup completed", "sources", registry.Names())
}
