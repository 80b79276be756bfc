package parser

import (
	"time"

	"KenyaNews/internal/extract"
	"KenyaNews/internal/scanner"
)

// Citizen is uncapped and considers the first 15 links of each category.
func Citizen() scanner.Source {
	return scanner.Source{
		Name:          "citizen",
		Categories:    []string{"news", "business", "sports", "lifestyle", "entertainment"},
		CategoryLimit: 15,
		ListingWait:   8 * time.Second,
		ArticleWait:   6 * time.Second,
		Policy: extract.Policy{
			BaseURL:       "https://www.citizen.digital",
			DefaultAuthor: "Citizen Digital",
			Title:         extract.Cascade{"h1.title-on-desktop a", "h1.title-on-mobile a", "h1.article-title", "h1"},
			Date:          extract.Cascade{"span.timepublished", ".article-date"},
			Author:        extract.Cascade{".article-author"},
			Category:      extract.Cascade{".next-topstory-tags span:first-child", ".article-category"},
			Content: []extract.ContentStrategy{
				{Name: "body", Paragraphs: extract.Cascade{".article-body p", ".topstory-excerpt p"}},
				{Name: "excerpt", Paragraphs: extract.Cascade{"div.topstory-excerpt p"}},
			},
			Links: []extract.LinkRule{
				{Selectors: extract.Cascade{".main-pinned-story a"}, Single: true},
				{Selectors: extract.Cascade{".other-pinned-stories h3 a"}},
				{Selectors: extract.Cascade{".topstory.featuredstory h1 a"}},
				{Selectors: extract.Cascade{".article-card a", ".story-card a"}},
			},
		},
	}
}
