package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"KenyaNews/internal/domain"
	"KenyaNews/internal/extract"
	"KenyaNews/internal/ports"
	"KenyaNews/internal/scanner"
)

const testBase = "https://news.test"

type fakeBrowser struct {
	pages   map[string]string
	openErr error
	panicOn string

	mu       sync.Mutex
	rendered []string
	closed   int
}

func (b *fakeBrowser) Open(ctx context.Context) (ports.RenderSession, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	return &fakeSession{b: b}, nil
}

type fakeSession struct {
	b *fakeBrowser
}

func (s *fakeSession) Render(ctx context.Context, url string, wait time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.b.mu.Lock()
	s.b.rendered = append(s.b.rendered, url)
	s.b.mu.Unlock()

	if url == s.b.panicOn {
		panic("renderer crashed")
	}
	html, ok := s.b.pages[url]
	if !ok {
		return "", fmt.Errorf("navigation to %s failed", url)
	}
	return html, nil
}

func (s *fakeSession) Close() error {
	s.b.mu.Lock()
	s.b.closed++
	s.b.mu.Unlock()
	return nil
}

type metadataCall struct {
	added, updated int
	status         domain.RunStatus
}

type fakeRepo struct {
	mu        sync.Mutex
	rows      map[string]domain.Article
	existsErr error
	failURLs  map[string]bool
	calls     []metadataCall
	closed    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[string]domain.Article{}, failURLs: map[string]bool{}}
}

func (r *fakeRepo) Exists(ctx context.Context, source, url string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.rows[url]
	return ok, nil
}

func (r *fakeRepo) Upsert(ctx context.Context, source string, article domain.Article) (domain.UpsertOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failURLs[article.URL] {
		return domain.Failed, errors.New("constraint violation")
	}
	_, ok := r.rows[article.URL]
	r.rows[article.URL] = article
	if ok {
		return domain.Updated, nil
	}
	return domain.Inserted, nil
}

func (r *fakeRepo) RecordRunMetadata(ctx context.Context, source string, added, updated int, status domain.RunStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, metadataCall{added: added, updated: updated, status: status})
	return nil
}

func (r *fakeRepo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

type fakeStore struct {
	repo    *fakeRepo
	openErr error
}

func (s *fakeStore) Open(ctx context.Context) (ports.ArticleRepository, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return s.repo, nil
}

type fakeExporter struct {
	articles []domain.Article
	err      error
}

func (e *fakeExporter) Export(ctx context.Context, source string, articles []domain.Article) (string, error) {
	e.articles = append(e.articles, articles...)
	if e.err != nil {
		return "", e.err
	}
	return source + "_articles.csv", nil
}

func noSleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

func testSource(categories []string, budget int) scanner.Source {
	return scanner.Source{
		Name:       "test",
		Categories: categories,
		Budget:     budget,
		Policy: extract.Policy{
			BaseURL:       testBase,
			DefaultAuthor: "Test Desk",
			Title:         extract.Cascade{"h1"},
			Date:          extract.Cascade{"time"},
			Author:        extract.Cascade{".author"},
			Category:      extract.Cascade{".category"},
			Content:       []extract.ContentStrategy{{Name: "body", Paragraphs: extract.Cascade{".body p"}}},
			Links:         []extract.LinkRule{{Selectors: extract.Cascade{".card a"}}},
		},
	}
}

// site builds listing pages with n article links per category and the article pages themselves.
func site(categories []string, n int) map[string]string {
	pages := map[string]string{}
	for _, category := range categories {
		listing := "<html><body>"
		for i := 0; i < n; i++ {
			path := fmt.Sprintf("/%s/article-%d", category, i)
			listing += fmt.Sprintf(`<div class="card"><a href="%s">%d</a></div>`, path, i)
			pages[testBase+path] = fmt.Sprintf(`<h1>%s %d</h1><div class="body"><p>Paragraph %d.</p></div>`, category, i, i)
		}
		pages[testBase+"/"+category] = listing + "</body></html>"
	}
	return pages
}
