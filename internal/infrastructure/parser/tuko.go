package parser

import (
	"time"

	"KenyaNews/internal/extract"
	"KenyaNews/internal/scanner"
)

// Tuko is the tuko.co.ke source; its runs are also exported to CSV.
func Tuko() scanner.Source {
	return scanner.Source{
		Name:        "tuko",
		Categories:  []string{"news", "entertainment", "politics", "lifestyle", "sports"},
		Budget:      defaultBudget,
		ListingWait: 6 * time.Second,
		ArticleWait: 6 * time.Second,
		Export:      true,
		Policy: extract.Policy{
			BaseURL:       "https://www.tuko.co.ke",
			DefaultAuthor: "Tuko",
			Title:         extract.Cascade{"h1.article-title", ".c-article__headline", "h1"},
			Date:          extract.Cascade{".article-date", ".c-article__date", "time"},
			Author:        extract.Cascade{".article-author", ".c-article__author", ".author-name"},
			Category:      extract.Cascade{".article-category", ".c-article__category", ".category"},
			Content: []extract.ContentStrategy{
				{Name: "article-body", Paragraphs: extract.Cascade{".article-body p", ".c-article__content p"}},
				{Name: "story", Paragraphs: extract.Cascade{".story-content p", ".entry-content p"}},
				{Name: "article", Containers: extract.Cascade{"article"}},
				{Name: "main", Containers: extract.Cascade{"main", ".main-content", ".content-wrapper"}},
				substantialParagraphs(),
			},
			Links: []extract.LinkRule{
				{Selectors: extract.Cascade{".article-card a", ".c-article-card a"}},
				{Selectors: extract.Cascade{".featured-article a", ".c-featured a"}},
				{Selectors: extract.Cascade{".headline a", ".c-headline a"}},
				{Selectors: extract.Cascade{".story-card a", ".c-story-card a"}},
			},
		},
	}
}
