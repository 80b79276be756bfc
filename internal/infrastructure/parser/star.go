package parser

import (
	"time"

	"KenyaNews/internal/extract"
	"KenyaNews/internal/scanner"
)

// Star reads JSON-LD first and rejects pages without body text.
func Star() scanner.Source {
	return scanner.Source{
		Name:        "star",
		Categories:  []string{"news", "business", "sports", "opinion", "entertainment"},
		Budget:      defaultBudget,
		ListingWait: 5 * time.Second,
		ArticleWait: 5 * time.Second,
		Policy: extract.Policy{
			BaseURL:        "https://www.the-star.co.ke",
			DefaultAuthor:  "The Star",
			StructuredData: true,
			RequireContent: true,
			Title:          extract.Cascade{"h1.article-title", "h1.news-head", "h1"},
			Date:           extract.Cascade{".article-metadata time", ".publish-date", "time"},
			Author:         extract.Cascade{".article-author", ".author-name"},
			Category:       extract.Cascade{".article-category", ".news-category"},
			Content: []extract.ContentStrategy{
				{Name: "article-body", Paragraphs: extract.Cascade{".article-body p", ".news-content p"}},
				{Name: "article", Paragraphs: extract.Cascade{"article p"}},
				{Name: "main", Containers: extract.Cascade{"main", ".main-content"}},
				substantialParagraphs(),
			},
			Links: []extract.LinkRule{
				{Selectors: extract.Cascade{"article.group", "div.flex.group"}, Union: true, Within: true},
				{Selectors: extract.Cascade{".headline a", ".headline-article a"}, Union: true},
				{Selectors: extract.Cascade{".feature a", ".featured-article a"}, Union: true},
				{Selectors: extract.Cascade{".card a", ".article-card a", ".newscard a"}, Union: true},
			},
		},
	}
}
