package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"KenyaNews/internal/ports"
)

// SQLStore opens a fresh connection pool for every source run.
type SQLStore struct {
	dialect     Dialect
	dsn         string
	autoMigrate bool
	sources     []string
}

var _ ports.Store = (*SQLStore)(nil)

// NewSQLStore builds a store; with autoMigrate the schema for sources is created on open.
func NewSQLStore(driver, dsn string, autoMigrate bool, sources []string) (*SQLStore, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &SQLStore{dialect: dialect, dsn: dsn, autoMigrate: autoMigrate, sources: sources}, nil
}

// Open connects, pings and returns a repository bound to the new pool.
func (s *SQLStore) Open(ctx context.Context) (ports.ArticleRepository, error) {
	return s.OpenRepository(ctx)
}

// OpenRepository is Open returning the concrete repository.
func (s *SQLStore) OpenRepository(ctx context.Context) (*Repository, error) {
	db, err := sql.Open(s.dialect.DriverName, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.dialect.Name, err)
	}
	if s.dialect.Name == SQLite.Name {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", s.dialect.Name, err)
	}

	repo := NewRepository(db, s.dialect)
	if s.autoMigrate {
		if err := repo.EnsureSchema(ctx, s.sources...); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return repo, nil
}
