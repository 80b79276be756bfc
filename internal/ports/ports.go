package ports

import (
	"context"
	"time"

	"KenyaNews/internal/domain"
)

// Browser starts rendering sessions backed by a real browser or a plain HTTP client.
type Browser interface {
	Open(ctx context.Context) (RenderSession, error)
}

// RenderSession returns the fully rendered HTML of a page.
type RenderSession interface {
	Render(ctx context.Context, url string, wait time.Duration) (string, error)
	Close() error
}

// Store opens a repository handle for a single source run.
type Store interface {
	Open(ctx context.Context) (ArticleRepository, error)
}

// ArticleRepository persists articles into per-source tables and tracks run metadata.
type ArticleRepository interface {
	Exists(ctx context.Context, source, url string) (bool, error)
	Upsert(ctx context.Context, source string, article domain.Article) (domain.UpsertOutcome, error)
	RecordRunMetadata(ctx context.Context, source string, added, updated int, status domain.RunStatus) error
	Close() error
}

// Exporter writes the articles stored by a run to an external file.
type Exporter interface {
	Export(ctx context.Context, source string, articles []domain.Article) (string, error)
}

// Scheduler controls when batches execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
