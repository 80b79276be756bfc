package parser

import (
	"time"

	"KenyaNews/internal/extract"
	"KenyaNews/internal/scanner"
)

// Standard is the standardmedia.co.ke source; its runs are also exported to CSV.
func Standard() scanner.Source {
	return scanner.Source{
		Name:        "standardmedia",
		Categories:  []string{"news", "business", "sports", "opinion", "entertainment"},
		Budget:      defaultBudget,
		ListingWait: 5 * time.Second,
		ArticleWait: 5 * time.Second,
		Export:      true,
		Policy: extract.Policy{
			BaseURL:       "https://www.standardmedia.co.ke",
			DefaultAuthor: "Standard Media",
			Title:         extract.Cascade{"h1.article-title", ".title-article", "h1"},
			Date:          extract.Cascade{".article-date", ".article-meta time", "time"},
			Author:        extract.Cascade{".article-author", ".article-meta .author", ".byline"},
			Category:      extract.Cascade{".article-category", ".breadcrumbs a", ".category"},
			Content: []extract.ContentStrategy{
				{Name: "article-content", Paragraphs: extract.Cascade{".article-content p", ".article-body p"}},
				{Name: "story", Paragraphs: extract.Cascade{".story-content p", ".entry-content p"}},
				{Name: "article", Containers: extract.Cascade{"article"}},
				{Name: "main", Containers: extract.Cascade{"main", ".main-content"}},
				substantialParagraphs(),
			},
			Links: []extract.LinkRule{
				{Selectors: extract.Cascade{".article-card a", ".article-box a"}},
				{Selectors: extract.Cascade{".featured-article a", ".featured a"}},
				{Selectors: extract.Cascade{".headline a", ".top-story a"}},
				{Selectors: extract.Cascade{".news-card a", ".story-teaser a"}},
			},
		},
	}
}
