package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"KenyaNews/internal/dates"
	"KenyaNews/internal/domain"
	"KenyaNews/internal/extract"
	"KenyaNews/internal/ports"
	"KenyaNews/internal/scanner"
)

// Throttle holds the fixed politeness delays between requests.
type Throttle struct {
	ArticleDelay  time.Duration
	CategoryDelay time.Duration
}

// DefaultThrottle matches the delays the news sites tolerate.
var DefaultThrottle = Throttle{ArticleDelay: 2 * time.Second, CategoryDelay: 5 * time.Second}

// RunnerDeps wires the driven adapters used by a source run.
type RunnerDeps struct {
	Browser  ports.Browser
	Store    ports.Store
	Exporter ports.Exporter
	Dates    *dates.Interpreter
	Throttle Throttle
	// Sleep waits between requests; nil uses a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Runner executes one full run for a single source.
type Runner struct {
	browser  ports.Browser
	store    ports.Store
	exporter ports.Exporter
	dates    *dates.Interpreter
	throttle Throttle
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewRunner constructs the run controller.
func NewRunner(deps RunnerDeps) *Runner {
	r := &Runner{
		browser:  deps.Browser,
		store:    deps.Store,
		exporter: deps.Exporter,
		dates:    deps.Dates,
		throttle: deps.Throttle,
		sleep:    deps.Sleep,
	}
	if r.dates == nil {
		r.dates = dates.New()
	}
	if r.sleep == nil {
		r.sleep = sleepContext
	}
	return r
}

// CategoryReport is the outcome of one category within a run.
type CategoryReport struct {
	Category  string
	Quota     int
	Found     int
	Skipped   int
	Attempted int
	Added     int
	Updated   int
	Failed    int
	Stored    []domain.Article
}

// Count is the number of articles inserted or updated.
func (c CategoryReport) Count() int {
	return c.Added + c.Updated
}

// RunReport summarizes one source run.
type RunReport struct {
	Source     string
	Status     domain.RunStatus
	Categories []CategoryReport
	Added      int
	Updated    int
	ExportPath string
}

// Total is the number of articles inserted or updated during the run.
func (r RunReport) Total() int {
	return r.Added + r.Updated
}

// Success reports whether the run stored at least one article without error.
func (r RunReport) Success() bool {
	return r.Status == domain.StatusSuccess
}

func (r RunReport) withCategory(c CategoryReport) RunReport {
	r.Categories = append(r.Categories, c)
	r.Added += c.Added
	r.Updated += c.Updated
	return r
}

// Quota spreads the remaining budget evenly over the categories still to run.
func Quota(remaining, categoriesLeft int) int {
	if categoriesLeft <= 0 {
		return max(1, remaining)
	}
	return max(1, remaining/categoriesLeft)
}

// Run acquires a browser session and a repository, scrapes every category and
// records the terminal status. The returned error is non-nil when the run did
// not reach success.
func (r *Runner) Run(ctx context.Context, src scanner.Source, logger *slog.Logger) (RunReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	report := RunReport{Source: src.Name, Status: domain.StatusFailed}

	session, err := r.browser.Open(ctx)
	if err != nil {
		logger.Error("failed to start browser", "error", err)
		return report, fmt.Errorf("open browser: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("error closing browser", "error", err)
		}
		logger.Info("browser closed")
	}()

	repo, err := r.store.Open(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return report, fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("error closing database connection", "error", err)
		}
		logger.Info("database connection closed")
	}()

	logger.Info("starting scraping process", "categories", len(src.Categories), "budget", src.Budget)

	report, scrapeErr := r.scrape(ctx, src, session, repo, logger, report)

	// Final bookkeeping must survive a canceled run.
	finalCtx := context.WithoutCancel(ctx)

	switch {
	case scrapeErr != nil:
		report.Status = domain.StatusError
		logger.Error("error in scrape process", "error", scrapeErr)
	case report.Total() > 0:
		report.Status = domain.StatusSuccess
	default:
		report.Status = domain.StatusFailed
	}

	if src.Export && r.exporter != nil && scrapeErr == nil {
		report.ExportPath = r.export(finalCtx, src.Name, report, logger)
	}

	if err := repo.RecordRunMetadata(finalCtx, src.Name, 0, 0, report.Status); err != nil {
		logger.Error("error updating metadata", "error", err)
	}

	logger.Info("total articles scraped", "total", report.Total(), "added", report.Added,
		"updated", report.Updated, "budget", src.Budget, "status", report.Status)

	switch report.Status {
	case domain.StatusSuccess:
		return report, nil
	case domain.StatusError:
		return report, scrapeErr
	default:
		return report, ErrNoArticles
	}
}

// ErrNoArticles marks a run that completed without storing anything.
var ErrNoArticles = errors.New("no articles stored")

func (r *Runner) scrape(ctx context.Context, src scanner.Source, session ports.RenderSession,
	repo ports.ArticleRepository, logger *slog.Logger, report RunReport) (out RunReport, err error) {
	out = report
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during scrape: %v", p)
		}
	}()

	extractor := extract.New(src.Policy, r.dates)
	remaining := src.Budget

	for i, category := range src.Categories {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		quota := 0
		if src.Budget > 0 {
			if remaining <= 0 {
				logger.Info("reached maximum article limit", "budget", src.Budget)
				break
			}
			quota = Quota(remaining, len(src.Categories)-i)
			logger.Info("aiming to scrape articles", "category", category, "quota", quota)
		}

		cat := CategoryReport{Category: category, Quota: quota}
		err := r.runCategory(ctx, src, extractor, session, repo, &cat, logger)
		out = out.withCategory(cat)
		if err != nil {
			// Rows stored before the interruption still count towards the totals.
			if cat.Count() > 0 {
				r.recordCategory(context.WithoutCancel(ctx), repo, src.Name, cat, domain.StatusError, logger)
			}
			return out, err
		}
		remaining -= cat.Count()

		logger.Info("category finished", "category", category, "stored", cat.Count(),
			"total", out.Total(), "skipped", cat.Skipped, "failed", cat.Failed)

		r.recordCategory(ctx, repo, src.Name, cat, domain.StatusSuccess, logger)

		if i < len(src.Categories)-1 {
			if err := r.sleep(ctx, r.throttle.CategoryDelay); err != nil {
				return out, err
			}
		}
	}

	return out, nil
}

func (r *Runner) recordCategory(ctx context.Context, repo ports.ArticleRepository, source string,
	cat CategoryReport, status domain.RunStatus, logger *slog.Logger) {
	if err := repo.RecordRunMetadata(ctx, source, cat.Added, cat.Updated, status); err != nil {
		logger.Error("error updating metadata", "category", cat.Category, "error", err)
	}
}

// runCategory turns a panic into an error while keeping whatever rep collected so far.
func (r *Runner) runCategory(ctx context.Context, src scanner.Source, extractor *extract.Extractor,
	session ports.RenderSession, repo ports.ArticleRepository, rep *CategoryReport,
	logger *slog.Logger) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during scrape: %v", p)
		}
	}()
	return r.scrapeCategory(ctx, src, extractor, session, repo, rep, logger)
}

// scrapeCategory fills rep as it goes and returns a non-nil error only when
// the run must stop.
func (r *Runner) scrapeCategory(ctx context.Context, src scanner.Source, extractor *extract.Extractor,
	session ports.RenderSession, repo ports.ArticleRepository, rep *CategoryReport,
	logger *slog.Logger) error {
	category, quota := rep.Category, rep.Quota
	listingURL := src.CategoryURL(category)
	logger.Info("scraping category", "category", category, "url", listingURL)

	html, err := session.Render(ctx, listingURL, src.ListingWait)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Error("error loading listing", "category", category, "error", err)
		return nil
	}

	links, err := extractor.FindArticleLinks(html, category)
	if err != nil {
		logger.Error("error reading listing", "category", category, "error", err)
		return nil
	}
	rep.Found = len(links)
	logger.Info("found articles", "category", category, "count", len(links))

	if quota == 0 && src.CategoryLimit > 0 && len(links) > src.CategoryLimit {
		links = links[:src.CategoryLimit]
	}

	for _, link := range links {
		if quota > 0 && rep.Attempted >= quota {
			logger.Info("reached article limit for category", "category", category)
			break
		}

		exists, err := repo.Exists(ctx, src.Name, link)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("error checking if article exists", "url", link, "error", err)
		case exists:
			logger.Debug("article already exists", "url", link)
			rep.Skipped++
			continue
		}

		if rep.Attempted > 0 {
			if err := r.sleep(ctx, r.throttle.ArticleDelay); err != nil {
				return err
			}
		}
		rep.Attempted++

		article, err := r.fetchArticle(ctx, session, extractor, link, src.ArticleWait)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			rep.Failed++
			logger.Warn("error scraping article", "url", link, "error", err)
			continue
		}

		outcome, err := repo.Upsert(ctx, src.Name, article)
		switch outcome {
		case domain.Inserted:
			rep.Added++
			rep.Stored = append(rep.Stored, article)
			logger.Info("saved article", "title", article.Title)
		case domain.Updated:
			rep.Updated++
			rep.Stored = append(rep.Stored, article)
			logger.Info("updated article", "title", article.Title)
		default:
			rep.Failed++
			logger.Error("error saving article", "url", link, "error", err)
		}
	}

	return nil
}

func (r *Runner) fetchArticle(ctx context.Context, session ports.RenderSession, extractor *extract.Extractor,
	url string, wait time.Duration) (domain.Article, error) {
	html, err := session.Render(ctx, url, wait)
	if err != nil {
		return domain.Article{}, err
	}
	return extractor.Extract(html, url)
}

func (r *Runner) export(ctx context.Context, source string, report RunReport, logger *slog.Logger) string {
	var articles []domain.Article
	for _, c := range report.Categories {
		articles = append(articles, c.Stored...)
	}
	if len(articles) == 0 {
		logger.Info("no articles to export")
		return ""
	}

	path, err := r.exporter.Export(ctx, source, articles)
	if err != nil {
		logger.Error("error exporting to CSV", "error", err)
		return ""
	}
	logger.Info("exported articles to CSV", "path", path, "count", len(articles))
	return path
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
