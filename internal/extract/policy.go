package extract

import (
	"errors"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"KenyaNews/internal/cleaner"
)

// DefaultCategory is used when a page does not name its section.
const DefaultCategory = "News"

var (
	// ErrNoTitle means no title selector matched the page.
	ErrNoTitle = errors.New("title not found")
	// ErrNoContent means the content cascade yielded nothing and the policy forbids the title fallback.
	ErrNoContent = errors.New("content not found")
)

// Policy is the complete set of extraction rules for one news source.
type Policy struct {
	BaseURL       string
	DefaultAuthor string

	Title    Cascade
	Date     Cascade
	Author   Cascade
	Category Cascade
	Content  []ContentStrategy
	Links    []LinkRule

	// StructuredData reads the first JSON-LD block before the selectors.
	StructuredData bool
	// RequireContent fails extraction instead of substituting the title.
	RequireContent bool
}

// ContentStrategy is one step of the body cascade. Paragraphs selects paragraph
// nodes directly; Containers selects a wrapper whose <p> descendants are used.
type ContentStrategy struct {
	Name       string
	Paragraphs Cascade
	Containers Cascade
	// MinLength drops paragraphs whose normalized text is not longer than this.
	MinLength int
}

// Collect returns the normalized, non-empty paragraphs this strategy finds.
func (cs ContentStrategy) Collect(root *goquery.Selection) []string {
	var nodes *goquery.Selection
	switch {
	case len(cs.Paragraphs) > 0:
		nodes = cs.Paragraphs.All(root)
	case len(cs.Containers) > 0:
		nodes = cs.Containers.First(root).Find("p")
	default:
		return nil
	}

	var out []string
	nodes.Each(func(_ int, s *goquery.Selection) {
		text := cleaner.Clean(s.Text())
		if text == "" || utf8.RuneCountInString(text) <= cs.MinLength {
			return
		}
		out = append(out, text)
	})
	return out
}

// LinkRule is one listing-page heuristic.
type LinkRule struct {
	Selectors Cascade
	// Union takes the matches of every selector instead of the first that matches.
	Union bool
	// Within treats matches as containers and takes the first anchor inside each.
	Within bool
	// Single keeps only the first match.
	Single bool
}

func (r LinkRule) hrefs(root *goquery.Selection) []string {
	var nodes *goquery.Selection
	if r.Union {
		nodes = r.Selectors.Union(root)
	} else {
		nodes = r.Selectors.All(root)
	}
	if r.Single {
		nodes = nodes.First()
	}

	var out []string
	nodes.Each(func(_ int, s *goquery.Selection) {
		if r.Within && !s.Is("a") {
			s = s.Find("a").First()
		}
		if href, ok := s.Attr("href"); ok {
			out = append(out, href)
		}
	})
	return out
}
