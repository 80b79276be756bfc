// Package extract pulls article fields and listing links out of rendered HTML
// using ordered selector cascades.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"KenyaNews/internal/cleaner"
)

// Cascade is an ordered list of CSS selectors; earlier selectors win.
type Cascade []string

// First returns the first node matched by the earliest selector that matches anything.
func (c Cascade) First(root *goquery.Selection) *goquery.Selection {
	return c.All(root).First()
}

// All returns every node of the earliest selector with at least one match.
func (c Cascade) All(root *goquery.Selection) *goquery.Selection {
	for _, selector := range c {
		if found := root.Find(selector); found.Length() > 0 {
			return found
		}
	}
	return none(root)
}

// Union concatenates the matches of every selector in order.
func (c Cascade) Union(root *goquery.Selection) *goquery.Selection {
	var nodes *goquery.Selection
	for _, selector := range c {
		found := root.Find(selector)
		if nodes == nil {
			nodes = found
			continue
		}
		nodes = nodes.AddSelection(found)
	}
	if nodes == nil {
		return none(root)
	}
	return nodes
}

// Text returns the normalized text of the first node matched by the cascade
// whose text is not empty.
func (c Cascade) Text(root *goquery.Selection) string {
	for _, selector := range c {
		var text string
		root.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text = cleaner.Clean(s.Text())
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return ""
}

// TextOr is Text with a fallback for when nothing matches.
func (c Cascade) TextOr(root *goquery.Selection, fallback string) string {
	if text := c.Text(root); text != "" {
		return text
	}
	return fallback
}

// DateText prefers the machine-readable datetime attribute of the first match.
func (c Cascade) DateText(root *goquery.Selection) string {
	node := c.First(root)
	if node.Length() == 0 {
		return ""
	}
	if value, ok := node.Attr("datetime"); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return cleaner.Clean(node.Text())
}

func none(root *goquery.Selection) *goquery.Selection {
	return root.Slice(0, 0)
}
