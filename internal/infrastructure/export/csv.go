// Package export writes run records to CSV files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"KenyaNews/internal/domain"
	"KenyaNews/internal/ports"
)

const timestampLayout = "2006-01-02 15:04:05"

var header = []string{"id", "url", "title", "publication_date", "author", "content", "category", "created_at", "last_updated"}

// CSVExporter writes <dir>/<source>_articles.csv, replacing earlier exports.
type CSVExporter struct {
	dir string
	now func() time.Time
}

var _ ports.Exporter = (*CSVExporter)(nil)

// NewCSVExporter writes into dir; empty means the working directory.
func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{dir: dir, now: time.Now}
}

// WithClock replaces the clock used for created_at and last_updated.
func (e *CSVExporter) WithClock(now func() time.Time) *CSVExporter {
	e.now = now
	return e
}

// NewRecord wraps an article with a fresh id and export timestamps.
func NewRecord(article domain.Article, now time.Time) domain.ExportRecord {
	created := now
	if article.PublicationDate != nil {
		created = *article.PublicationDate
	}
	return domain.ExportRecord{
		ID:          uuid.NewString(),
		Article:     article,
		CreatedAt:   created,
		LastUpdated: now,
	}
}

// Export writes one record per article and returns the file path.
func (e *CSVExporter) Export(ctx context.Context, source string, articles []domain.Article) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	now := e.now()
	records := make([]domain.ExportRecord, 0, len(articles))
	for _, article := range articles {
		records = append(records, NewRecord(article, now))
	}
	return e.write(source, records)
}

func (e *CSVExporter) write(source string, records []domain.ExportRecord) (string, error) {
	if e.dir != "" {
		if err := os.MkdirAll(e.dir, 0o755); err != nil {
			return "", fmt.Errorf("create export dir: %w", err)
		}
	}

	path := filepath.Join(e.dir, source+"_articles.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(row(rec)); err != nil {
			_ = f.Close()
			return "", fmt.Errorf("write record %s: %w", rec.Article.URL, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func row(rec domain.ExportRecord) []string {
	a := rec.Article
	published := ""
	if a.PublicationDate != nil {
		published = a.PublicationDate.Format(timestampLayout)
	}
	return []string{
		rec.ID,
		a.URL,
		a.Title,
		published,
		a.Author,
		a.Content,
		a.Category,
		rec.CreatedAt.Format(timestampLayout),
		rec.LastUpdated.Format(timestampLayout),
	}
}
