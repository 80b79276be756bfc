package parser

import (
	"time"

	"KenyaNews/internal/extract"
	"KenyaNews/internal/scanner"
)

// DailyNation is the nation.africa source.
func DailyNation() scanner.Source {
	return scanner.Source{
		Name:        "daily_nations",
		Categories:  []string{"news", "business", "sports", "opinion", "lifestyle"},
		Budget:      defaultBudget,
		ListingWait: 6 * time.Second,
		ArticleWait: 7 * time.Second,
		Policy: extract.Policy{
			BaseURL:       "https://nation.africa",
			DefaultAuthor: "Daily Nation",
			Title:         extract.Cascade{"h1.article-title", "h1.article-heading", "h1"},
			Date:          extract.Cascade{".article-date", ".article-metadata time", "time"},
			Author:        extract.Cascade{".article-author", ".author-name", ".article-byline"},
			Category:      extract.Cascade{".article-category", ".article-section", ".breadcrumbs a"},
			Content: []extract.ContentStrategy{
				{Name: "article-body", Paragraphs: extract.Cascade{".article-body p", ".article-content p"}},
				{Name: "story", Paragraphs: extract.Cascade{".story-content p", ".article-text p"}},
				{Name: "article", Containers: extract.Cascade{"article"}},
				{Name: "main", Containers: extract.Cascade{"main", ".main-content", ".content-body"}},
				substantialParagraphs(),
			},
			Links: []extract.LinkRule{
				{Selectors: extract.Cascade{"article a", ".article-card a", ".card-link"}},
				{Selectors: extract.Cascade{".headline-teasers_item a", ".headline a"}},
				{Selectors: extract.Cascade{".featured-article a", ".feature a"}},
				{Selectors: extract.Cascade{".teaser a", ".story-teaser a", ".news-item a"}},
			},
		},
	}
}
