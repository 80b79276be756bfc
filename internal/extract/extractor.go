package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"KenyaNews/internal/cleaner"
	"KenyaNews/internal/dates"
	"KenyaNews/internal/domain"
)

const paragraphSeparator = "\n\n"

// Extractor applies a Policy to rendered pages.
type Extractor struct {
	policy Policy
	dates  *dates.Interpreter
}

// New builds an extractor; a nil interpreter uses the wall clock.
func New(policy Policy, interp *dates.Interpreter) *Extractor {
	if interp == nil {
		interp = dates.New()
	}
	return &Extractor{policy: policy, dates: interp}
}

// Policy exposes the rules the extractor was built with.
func (e *Extractor) Policy() Policy {
	return e.policy
}

// FindArticleLinks collects absolute article URLs from a listing page in
// first-seen order without duplicates.
func (e *Extractor) FindArticleLinks(html, category string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse listing %s: %w", category, err)
	}

	seen := map[string]struct{}{}
	links := make([]string, 0)
	for _, rule := range e.policy.Links {
		for _, href := range rule.hrefs(doc.Selection) {
			link, ok := e.absolute(href)
			if !ok {
				continue
			}
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
			links = append(links, link)
		}
	}
	return links, nil
}

func (e *Extractor) absolute(href string) (string, bool) {
	href = strings.TrimSpace(href)
	lower := strings.ToLower(href)
	switch {
	case href == "", strings.HasPrefix(href, "#"),
		strings.HasPrefix(lower, "javascript:"), strings.HasPrefix(lower, "mailto:"):
		return "", false
	case strings.HasPrefix(href, "http"):
		return href, true
	}

	base := strings.TrimSuffix(e.policy.BaseURL, "/")
	if strings.HasPrefix(href, "/") {
		return base + href, true
	}
	return base + "/" + href, true
}

// Extract builds an article from a rendered article page. Only a missing title
// (or missing content under RequireContent) is an error.
func (e *Extractor) Extract(html, url string) (domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.Article{}, fmt.Errorf("parse article %s: %w", url, err)
	}
	root := doc.Selection
	p := e.policy

	var meta structured
	if p.StructuredData {
		meta = readStructured(root)
	}

	article := domain.Article{URL: url}

	article.Title = meta.Headline
	if article.Title == "" {
		article.Title = p.Title.Text(root)
	}
	if article.Title == "" {
		return domain.Article{}, fmt.Errorf("%s: %w", url, ErrNoTitle)
	}

	if meta.DatePublished != "" {
		article.PublicationDate = e.date(meta.DatePublished)
	}
	if article.PublicationDate == nil {
		article.PublicationDate = e.date(p.Date.DateText(root))
	}

	article.Author = meta.Author
	if article.Author == "" {
		article.Author = p.Author.TextOr(root, p.DefaultAuthor)
	}

	article.Content = meta.ArticleBody
	if article.Content == "" {
		article.Content = e.content(root)
	}
	if article.Content == "" {
		if p.RequireContent {
			return domain.Article{}, fmt.Errorf("%s: %w", url, ErrNoContent)
		}
		article.Content = article.Title
	}

	article.Category = meta.ArticleSection
	if article.Category == "" {
		article.Category = p.Category.TextOr(root, DefaultCategory)
	}

	return article, nil
}

func (e *Extractor) content(root *goquery.Selection) string {
	for _, strategy := range e.policy.Content {
		if paragraphs := strategy.Collect(root); len(paragraphs) > 0 {
			return strings.Join(paragraphs, paragraphSeparator)
		}
	}
	return ""
}

func (e *Extractor) date(raw string) *time.Time {
	raw = cleaner.Clean(raw)
	if raw == "" {
		return nil
	}
	t, ok := e.dates.Interpret(raw)
	if !ok {
		return nil
	}
	return &t
}
