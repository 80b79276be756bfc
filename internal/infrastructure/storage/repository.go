package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"KenyaNews/internal/domain"
	"KenyaNews/internal/ports"
)

var (
	// ErrInvalidSource is returned for source names that cannot form a table name.
	ErrInvalidSource = errors.New("invalid source name")
	// ErrEmptyURL is returned when an article has no URL.
	ErrEmptyURL = errors.New("article url is empty")
)

// Repository persists articles into per-source tables and maintains scraper_metadata.
type Repository struct {
	db      *sql.DB
	dialect Dialect
	builder sq.StatementBuilderType
	now     func() time.Time
}

var _ ports.ArticleRepository = (*Repository)(nil)

// NewRepository wires a sql.DB for the given dialect.
func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	return &Repository{
		db:      db,
		dialect: dialect,
		builder: sq.StatementBuilder.PlaceholderFormat(dialect.Placeholder),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the timestamp source used for last_updated and last_scrape_time.
func (r *Repository) WithClock(now func() time.Time) *Repository {
	r.now = now
	return r
}

// Exists reports whether the source table already holds url.
func (r *Repository) Exists(ctx context.Context, source, url string) (bool, error) {
	return r.exists(ctx, r.db, source, url)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *Repository) exists(ctx context.Context, q queryRower, source, url string) (bool, error) {
	if url == "" {
		return false, ErrEmptyURL
	}
	table, err := quotedArticlesTable(source)
	if err != nil {
		return false, err
	}

	query, args, err := r.builder.Select("1").From(table).Where(sq.Eq{"url": url}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	switch err := q.QueryRowContext(ctx, query, args...).Scan(&one); {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("check article exists: %w", err)
	}
	return true, nil
}

// Upsert inserts the article or updates the row with the same URL inside one transaction.
func (r *Repository) Upsert(ctx context.Context, source string, article domain.Article) (domain.UpsertOutcome, error) {
	if article.URL == "" {
		return domain.Failed, ErrEmptyURL
	}
	table, err := quotedArticlesTable(source)
	if err != nil {
		return domain.Failed, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Failed, fmt.Errorf("begin upsert: %w", err)
	}

	outcome, err := r.upsertTx(ctx, tx, source, table, article)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return domain.Failed, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Failed, fmt.Errorf("commit upsert: %w", err)
	}
	return outcome, nil
}

func (r *Repository) upsertTx(ctx context.Context, tx *sql.Tx, source, table string, article domain.Article) (domain.UpsertOutcome, error) {
	found, err := r.exists(ctx, tx, source, article.URL)
	if err != nil {
		return domain.Failed, err
	}

	now := r.now()
	var (
		builder interface {
			ToSql() (string, []any, error)
		}
		outcome domain.UpsertOutcome
	)
	if found {
		builder = r.builder.Update(table).
			SetMap(map[string]any{
				"title":            article.Title,
				"publication_date": nullTime(article.PublicationDate),
				"author":           article.Author,
				"content":          article.Content,
				"category":         article.Category,
				"last_updated":     now,
			}).
			Where(sq.Eq{"url": article.URL})
		outcome = domain.Updated
	} else {
		builder = r.builder.Insert(table).
			Columns("url", "title", "publication_date", "author", "content", "category", "created_at", "last_updated").
			Values(article.URL, article.Title, nullTime(article.PublicationDate), article.Author,
				article.Content, article.Category, now, now)
		outcome = domain.Inserted
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return domain.Failed, fmt.Errorf("build %s: %w", outcome, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if found {
			return domain.Failed, fmt.Errorf("update article: %w", err)
		}
		return domain.Failed, fmt.Errorf("insert article: %w", err)
	}
	return outcome, nil
}

// RecordRunMetadata adds the deltas to the source's counters and overwrites status and time.
func (r *Repository) RecordRunMetadata(ctx context.Context, source string, added, updated int, status domain.RunStatus) error {
	if source == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSource)
	}

	query, args, err := r.builder.Insert(metadataTable).
		Columns("source", "last_scrape_time", "articles_added", "articles_updated", "last_status").
		Values(source, r.now(), added, updated, string(status)).
		Suffix(`ON CONFLICT (source) DO UPDATE SET
    last_scrape_time = EXCLUDED.last_scrape_time,
    articles_added = scraper_metadata.articles_added + EXCLUDED.articles_added,
    articles_updated = scraper_metadata.articles_updated + EXCLUDED.articles_updated,
    last_status = EXCLUDED.last_status`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build metadata upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record run metadata: %w", err)
	}
	return nil
}

// RunMetadata loads the metadata row of a source.
func (r *Repository) RunMetadata(ctx context.Context, source string) (domain.RunMetadata, error) {
	query, args, err := r.builder.
		Select("source", "last_scrape_time", "articles_added", "articles_updated", "last_status").
		From(metadataTable).
		Where(sq.Eq{"source": source}).
		ToSql()
	if err != nil {
		return domain.RunMetadata{}, fmt.Errorf("build metadata query: %w", err)
	}

	var (
		meta     domain.RunMetadata
		lastTime sql.NullTime
		status   sql.NullString
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&meta.Source, &lastTime, &meta.ArticlesAdded, &meta.ArticlesUpdated, &status)
	if err != nil {
		return domain.RunMetadata{}, fmt.Errorf("load run metadata: %w", err)
	}
	meta.LastScrapeTime = lastTime.Time
	meta.LastStatus = domain.RunStatus(status.String)
	return meta, nil
}

// Article loads a stored article by URL.
func (r *Repository) Article(ctx context.Context, source, url string) (domain.Article, error) {
	table, err := quotedArticlesTable(source)
	if err != nil {
		return domain.Article{}, err
	}

	query, args, err := r.builder.
		Select("url", "title", "publication_date", "author", "content", "category").
		From(table).
		Where(sq.Eq{"url": url}).
		ToSql()
	if err != nil {
		return domain.Article{}, fmt.Errorf("build article query: %w", err)
	}

	var (
		article  domain.Article
		pub      sql.NullTime
		author   sql.NullString
		category sql.NullString
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&article.URL, &article.Title, &pub, &author, &article.Content, &category)
	if err != nil {
		return domain.Article{}, fmt.Errorf("load article: %w", err)
	}
	if pub.Valid {
		t := pub.Time
		article.PublicationDate = &t
	}
	article.Author = author.String
	article.Category = category.String
	return article, nil
}

// CountArticles returns the number of stored rows for a source, optionally for one URL.
func (r *Repository) CountArticles(ctx context.Context, source string, url ...string) (int, error) {
	table, err := quotedArticlesTable(source)
	if err != nil {
		return 0, err
	}

	builder := r.builder.Select("COUNT(*)").From(table)
	if len(url) > 0 {
		builder = builder.Where(sq.Eq{"url": url})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// Close releases the underlying connection pool.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
