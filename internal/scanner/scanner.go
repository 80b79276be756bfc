package scanner

import (
	"fmt"
	"time"

	"KenyaNews/internal/extract"
)

// Source describes one news website: where to crawl, how much, and how to extract.
type Source struct {
	Name       string
	Categories []string
	// Budget caps articles per run; zero means uncapped.
	Budget int
	// CategoryLimit bounds the links considered per category for uncapped sources.
	CategoryLimit int
	ListingWait   time.Duration
	ArticleWait   time.Duration
	// Export writes the run's records to CSV.
	Export bool
	Policy extract.Policy
}

// CategoryURL returns the listing page of a category.
func (s Source) CategoryURL(category string) string {
	return s.Policy.BaseURL + "/" + category
}

// Override carries configurable adjustments to a registered source.
type Override struct {
	Categories []string
	Budget     *int
	Export     *bool
}

// Registry keeps sources in registration order.
type Registry struct {
	order   []string
	sources map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces a source.
func (r *Registry) Register(source Source) {
	if r.sources == nil {
		r.sources = map[string]Source{}
	}
	if _, ok := r.sources[source.Name]; !ok {
		r.order = append(r.order, source.Name)
	}
	r.sources[source.Name] = source
}

// Resolve returns a source by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if source, ok := r.sources[name]; ok {
		return source, nil
	}
	return Source{}, fmt.Errorf("source %s is not registered", name)
}

// Names lists registered source names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Apply merges configured overrides into registered sources; unknown names are returned.
func (r *Registry) Apply(overrides map[string]Override) []string {
	var unknown []string
	for name, o := range overrides {
		source, ok := r.sources[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if len(o.Categories) > 0 {
			source.Categories = append([]string(nil), o.Categories...)
		}
		if o.Budget != nil && *o.Budget >= 0 {
			source.Budget = *o.Budget
		}
		if o.Export != nil {
			source.Export = *o.Export
		}
		r.sources[name] = source
	}
	return unknown
}
