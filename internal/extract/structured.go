package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"KenyaNews/internal/cleaner"
)

type structured struct {
	Headline       string
	DatePublished  string
	Author         string
	ArticleBody    string
	ArticleSection string
}

// readStructured decodes the first application/ld+json block. Arrays and
// @graph wrappers resolve to their first article-like object.
func readStructured(root *goquery.Selection) structured {
	script := root.Find(`script[type="application/ld+json"]`).First()
	if script.Length() == 0 {
		return structured{}
	}

	var raw any
	if err := json.Unmarshal([]byte(strings.TrimSpace(script.Text())), &raw); err != nil {
		return structured{}
	}

	obj := pickObject(raw)
	if obj == nil {
		return structured{}
	}

	return structured{
		Headline:       cleaner.Clean(stringField(obj["headline"])),
		DatePublished:  strings.TrimSpace(stringField(obj["datePublished"])),
		Author:         cleaner.Clean(authorName(obj["author"])),
		ArticleBody:    cleaner.Clean(stringField(obj["articleBody"])),
		ArticleSection: cleaner.Clean(stringField(obj["articleSection"])),
	}
}

func pickObject(raw any) map[string]any {
	switch v := raw.(type) {
	case []any:
		if len(v) == 0 {
			return nil
		}
		return pickObject(v[0])
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				if obj, ok := item.(map[string]any); ok {
					if _, has := obj["headline"]; has {
						return obj
					}
				}
			}
			return pickObject(graph)
		}
		return v
	}
	return nil
}

func authorName(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		return stringField(v["name"])
	case []any:
		if len(v) > 0 {
			return authorName(v[0])
		}
	}
	return ""
}

func stringField(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			return stringField(v[0])
		}
	}
	return ""
}
