// Package parser declares the news sources this service crawls.
package parser

import (
	"KenyaNews/internal/extract"
	"KenyaNews/internal/scanner"
)

const defaultBudget = 30

// Register adds every known source to the registry in crawl order.
func Register(r *scanner.Registry) {
	for _, source := range All() {
		r.Register(source)
	}
}

// All returns the source declarations in crawl order.
func All() []scanner.Source {
	return []scanner.Source{
		Citizen(),
		DailyNation(),
		Standard(),
		Star(),
		Tuko(),
	}
}

// substantialParagraphs is the last content resort shared by most sources.
func substantialParagraphs() extract.ContentStrategy {
	return extract.ContentStrategy{
		Name:       "substantial",
		Paragraphs: extract.Cascade{"p"},
		MinLength:  100,
	}
}
