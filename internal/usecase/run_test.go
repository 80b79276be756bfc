package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"KenyaNews/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRunner(b *fakeBrowser, repo *fakeRepo, exp *fakeExporter) *Runner {
	deps := RunnerDeps{
		Browser: b,
		Store:   &fakeStore{repo: repo},
		Sleep:   noSleep,
	}
	if exp != nil {
		deps.Exporter = exp
	}
	return NewRunner(deps)
}

func TestQuota(t *testing.T) {
	t.Parallel()

	cases := []struct {
		remaining, left, want int
	}{
		{30, 5, 6},
		{24, 4, 6},
		{7, 5, 1},
		{1, 5, 1},
		{0, 3, 1},
		{10, 1, 10},
	}
	for _, tc := range cases {
		if got := Quota(tc.remaining, tc.left); got != tc.want {
			t.Fatalf("Quota(%d, %d) = %d, want %d", tc.remaining, tc.left, got, tc.want)
		}
	}
}

func TestRunDistributesBudgetAcrossCategories(t *testing.T) {
	t.Parallel()

	categories := []string{"news", "business", "sports", "opinion", "lifestyle"}
	browser := &fakeBrowser{pages: site(categories, 10)}
	repo := newFakeRepo()

	report, err := newTestRunner(browser, repo, nil).Run(context.Background(), testSource(categories, 30), discardLogger())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Status != domain.StatusSuccess || report.Total() != 30 {
		t.Fatalf("unexpected report: status=%s total=%d", report.Status, report.Total())
	}

	sum := 0
	for _, c := range report.Categories {
		if c.Quota < 1 {
			t.Fatalf("quota below one for %s", c.Category)
		}
		if c.Count() > c.Quota {
			t.Fatalf("category %s stored %d over quota %d", c.Category, c.Count(), c.Quota)
		}
		sum += c.Quota
	}
	if sum > 30 {
		t.Fatalf("quotas sum to %d", sum)
	}

	if len(repo.calls) != len(categories)+1 {
		t.Fatalf("expected one metadata call per category plus final, got %d", len(repo.calls))
	}
	for _, call := range repo.calls[:len(categories)] {
		if call.status != domain.StatusSuccess || call.added != 6 {
			t.Fatalf("unexpected category metadata: %+v", call)
		}
	}
	final := repo.calls[len(repo.calls)-1]
	if final.added != 0 || final.updated != 0 || final.status != domain.StatusSuccess {
		t.Fatalf("unexpected final metadata: %+v", final)
	}
	if browser.closed != 1 || repo.closed != 1 {
		t.Fatalf("resources not released: browser=%d repo=%d", browser.closed, repo.closed)
	}
}

func TestRunStopsWhenBudgetExhausted(t *testing.T) {
	t.Parallel()

	categories := []string{"a", "b", "c", "d", "e"}
	browser := &fakeBrowser{pages: site(categories, 3)}
	repo := newFakeRepo()

	report, err := newTestRunner(browser, repo, nil).Run(context.Background(), testSource(categories, 2), discardLogger())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Total() != 2 || len(report.Categories) != 2 {
		t.Fatalf("expected two categories with one article each, got %+v", report.Categories)
	}
	// Two category updates plus the final status; skipped categories get none.
	if len(repo.calls) != 3 {
		t.Fatalf("unexpected metadata calls: %+v", repo.calls)
	}
	for _, url := range browser.rendered {
		if url == testBase+"/c" {
			t.Fatal("category after budget exhaustion was fetched")
		}
	}
}

func TestRunSkipsStoredURLsWithoutCountingQuota(t *testing.T) {
	t.Parallel()

	categories := []string{"news"}
	browser := &fakeBrowser{pages: site(categories, 3)}
	repo := newFakeRepo()
	repo.rows[testBase+"/news/article-0"] = domain.Article{}
	repo.rows[testBase+"/news/article-1"] = domain.Article{}

	report, err := newTestRunner(browser, repo, nil).Run(context.Background(), testSource(categories, 1), discardLogger())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	cat := report.Categories[0]
	if cat.Skipped != 2 || cat.Added != 1 {
		t.Fatalf("unexpected category report: %+v", cat)
	}
	if _, ok := repo.rows[testBase+"/news/article-2"]; !ok {
		t.Fatal("new article was not stored")
	}
}

func TestRunExistsErrorTreatedAsNew(t *testing.T) {
	t.Parallel()

	categories := []string{"news"}
	repo := newFakeRepo()
	repo.existsErr = errors.New("connection reset")

	report, err := newTestRunner(&fakeBrowser{pages: site(categories, 2)}, repo, nil).
		Run(context.Background(), testSource(categories, 30), discardLogger())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Total() != 2 {
		t.Fatalf("expected both articles attempted and stored, got %d", report.Total())
	}
}

func TestRunUncappedSourceUsesCategoryLimit(t *testing.T) {
	t.Parallel()

	categories := []string{"news", "sports"}
	src := testSource(categories, 0)
	src.CategoryLimit = 2

	report, err := newTestRunner(&fakeBrowser{pages: site(categories, 5)}, newFakeRepo(), nil).
		Run(context.Background(), src, discardLogger())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	for _, c := range report.Categories {
		if c.Found != 5 || c.Attempted != 2 || c.Added != 2 {
			t.Fatalf("unexpected category report: %+v", c)
		}
	}
}

func TestRunContainsArticleFailures(t *testing.T) {
	t.Parallel()

	categories := []string{"news"}
	pages := site(categories, 3)
	delete(pages, testBase+"/news/article-0")                    // render failure
	pages[testBase+"/news/article-1"] = `<p>no heading here</p>` // missing title
	repo := newFakeRepo()

	report, err := newTestRunner(&fakeBrowser{pages: pages}, repo, nil).
		Run(context.Background(), testSource(categories, 30), discardLogger())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	cat := report.Categories[0]
	if cat.Failed != 2 || cat.Added != 1 {
		t.Fatalf("unexpected category report: %+v", cat)
	}
}

func TestRunFailedWhenNothingStored(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	report, err := newTestRunner(&fakeBrowser{pages: map[string]string{}}, repo, nil).
		Run(context.Background(), testSource([]string{"news", "sports"}, 30), discardLogger())
	if !errors.Is(err, ErrNoArticles) {
		t.Fatalf("expected ErrNoArticles, got %v", err)
	}
	if report.Status != domain.StatusFailed {
		t.Fatalf("unexpected status %s", report.Status)
	}
	final := repo.calls[len(repo.calls)-1]
	if final.status != domain.StatusFailed {
		t.Fatalf("final metadata status = %s", final.status)
	}
}

func TestRunResourceAcquisitionFailure(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	runner := NewRunner(RunnerDeps{
		Browser: &fakeBrowser{openErr: errors.New("chrome not found")},
		Store:   &fakeStore{repo: repo},
		Sleep:   noSleep,
	})
	report, err := runner.Run(context.Background(), testSource([]string{"news"}, 30), discardLogger())
	if err == nil || report.Success() {
		t.Fatal("expected failure when browser cannot start")
	}
	if len(repo.calls) != 0 {
		t.Fatalf("no metadata expected, got %+v", repo.calls)
	}

	browser := &fakeBrowser{pages: map[string]string{}}
	runner = NewRunner(RunnerDeps{
		Browser: browser,
		Store:   &fakeStore{openErr: errors.New("db down")},
		Sleep:   noSleep,
	})
	if _, err := runner.Run(context.Background(), testSource([]string{"news"}, 30), discardLogger()); err == nil {
		t.Fatal("expected failure when store cannot open")
	}
	if browser.closed != 1 {
		t.Fatalf("browser session not released after store failure: %d", browser.closed)
	}
	if len(browser.rendered) != 0 {
		t.Fatal("scraping started without a store")
	}
}

func TestRunPanicRecordsErrorStatus(t *testing.T) {
	t.Parallel()

	categories := []string{"news"}
	browser := &fakeBrowser{pages: site(categories, 1), panicOn: testBase + "/news/article-0"}
	repo := newFakeRepo()

	report, err := newTestRunner(browser, repo, nil).Run(context.Background(), testSource(categories, 30), discardLogger())
	if err == nil || report.Status != domain.StatusError {
		t.Fatalf("expected error status, got %s (%v)", report.Status, err)
	}
	final := repo.calls[len(repo.calls)-1]
	if final.status != domain.StatusError {
		t.Fatalf("final metadata status = %s", final.status)
	}
	if browser.closed != 1 || repo.closed != 1 {
		t.Fatalf("resources not released: browser=%d repo=%d", browser.closed, repo.closed)
	}
}

func TestRunCanceledContextRecordsError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := newFakeRepo()

	report, err := newTestRunner(&fakeBrowser{pages: site([]string{"news"}, 1)}, repo, nil).
		Run(ctx, testSource([]string{"news"}, 30), discardLogger())
	if !errors.Is(err, context.Canceled) || report.Status != domain.StatusError {
		t.Fatalf("expected canceled error status, got %s (%v)", report.Status, err)
	}
	if len(repo.calls) != 1 || repo.calls[0].status != domain.StatusError {
		t.Fatalf("final metadata should still be recorded: %+v", repo.calls)
	}
}

func TestRunExportsStoredArticles(t *testing.T) {
	t.Parallel()

	categories := []string{"news", "sports"}
	src := testSource(categories, 30)
	src.Export = true
	exp := &fakeExporter{}

	report, err := newTestRunner(&fakeBrowser{pages: site(categories, 2)}, newFakeRepo(), exp).
		Run(context.Background(), src, discardLogger())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(exp.articles) != 4 || report.ExportPath != "test_articles.csv" {
		t.Fatalf("unexpected export: %d articles, path %q", len(exp.articles), report.ExportPath)
	}
}

func TestRunExportFailureDoesNotFailRun(t *testing.T) {
	t.Parallel()

	src := testSource([]string{"news"}, 30)
	src.Export = true
	exp := &fakeExporter{err: errors.New("disk full")}

	report, err := newTestRunner(&fakeBrowser{pages: site([]string{"news"}, 1)}, newFakeRepo(), exp).
		Run(context.Background(), src, discardLogger())
	if err != nil || !report.Success() {
		t.Fatalf("export failure must not fail the run: %v", err)
	}
}

func TestRunPersistenceFailureIsContained(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.failURLs[testBase+"/news/article-0"] = true

	report, err := newTestRunner(&fakeBrowser{pages: site([]string{"news"}, 2)}, repo, nil).
		Run(context.Background(), testSource([]string{"news"}, 30), discardLogger())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	cat := report.Categories[0]
	if cat.Failed != 1 || cat.Added != 1 {
		t.Fatalf("unexpected category report: %+v", cat)
	}
}

func metadataTotals(calls []metadataCall) (added, updated int) {
	for _, c := range calls {
		added += c.added
		updated += c.updated
	}
	return added, updated
}

func TestRunCancelMidCategoryKeepsMetadataTotals(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sleeps := 0
	repo := newFakeRepo()
	runner := NewRunner(RunnerDeps{
		Browser: &fakeBrowser{pages: site([]string{"news"}, 5)},
		Store:   &fakeStore{repo: repo},
		Sleep: func(ctx context.Context, d time.Duration) error {
			sleeps++
			if sleeps == 3 {
				cancel()
			}
			return ctx.Err()
		},
	})

	report, err := runner.Run(ctx, testSource([]string{"news"}, 30), discardLogger())
	if !errors.Is(err, context.Canceled) || report.Status != domain.StatusError {
		t.Fatalf("expected canceled error status, got %s (%v)", report.Status, err)
	}
	if len(repo.rows) != 3 || report.Added != 3 {
		t.Fatalf("expected 3 stored rows, got rows=%d added=%d", len(repo.rows), report.Added)
	}
	if added, _ := metadataTotals(repo.calls); added != len(repo.rows) {
		t.Fatalf("metadata added = %d, stored rows = %d (%+v)", added, len(repo.rows), repo.calls)
	}
	if final := repo.calls[len(repo.calls)-1]; final.status != domain.StatusError {
		t.Fatalf("final metadata status = %s", final.status)
	}
}

func TestRunPanicMidCategoryKeepsPartialReport(t *testing.T) {
	t.Parallel()

	categories := []string{"news"}
	browser := &fakeBrowser{pages: site(categories, 5), panicOn: testBase + "/news/article-3"}
	repo := newFakeRepo()

	report, err := newTestRunner(browser, repo, nil).Run(context.Background(), testSource(categories, 30), discardLogger())
	if err == nil || report.Status != domain.StatusError {
		t.Fatalf("expected error status, got %s (%v)", report.Status, err)
	}
	if len(repo.rows) != 3 || report.Added != 3 || len(report.Categories) != 1 {
		t.Fatalf("partial category lost: rows=%d added=%d categories=%d",
			len(repo.rows), report.Added, len(report.Categories))
	}
	if added, _ := metadataTotals(repo.calls); added != 3 {
		t.Fatalf("metadata added = %d, want 3 (%+v)", added, repo.calls)
	}
}
