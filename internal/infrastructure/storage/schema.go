package storage

import (
	"context"
	"fmt"

	"github.com/lib/pq"
)

const metadataTable = "scraper_metadata"

func articleTableDDL(d Dialect, table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    %s,
    url TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    publication_date TIMESTAMP NULL,
    author TEXT,
    content TEXT NOT NULL,
    category TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    sentiment_score %s NULL
)`, pq.QuoteIdentifier(table), d.IDColumn, d.FloatType)
}

func metadataTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS scraper_metadata (
    source TEXT PRIMARY KEY,
    last_scrape_time TIMESTAMP NULL,
    articles_added INTEGER NOT NULL DEFAULT 0,
    articles_updated INTEGER NOT NULL DEFAULT 0,
    last_status TEXT
)`
}

func indexDDL(table, column string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
		pq.QuoteIdentifier("idx_"+table+"_"+column), pq.QuoteIdentifier(table), column)
}

// EnsureSchema creates the metadata table and one article table per source.
func (r *Repository) EnsureSchema(ctx context.Context, sources ...string) error {
	statements := []string{metadataTableDDL()}
	for _, source := range sources {
		table, err := ArticlesTable(source)
		if err != nil {
			return err
		}
		statements = append(statements,
			articleTableDDL(r.dialect, table),
			indexDDL(table, "url"),
			indexDDL(table, "publication_date"),
			indexDDL(table, "category"),
		)
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
