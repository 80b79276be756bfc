// Package browser renders pages for the extractors.
package browser

import (
	"time"
)

const (
	DefaultUserAgent      = "Mozilla/5.0 (X11; Linux x86_64; rv:134.0) Gecko/20100101 Firefox/134.0"
	DefaultAcceptLanguage = "en-US,en;q=0.5"
	defaultTimeout        = 60 * time.Second
)

// Options configure both rendering engines.
type Options struct {
	ExecPath       string
	UserAgent      string
	AcceptLanguage string
	Headless       bool
	// Timeout bounds a single navigation, not counting the render wait.
	Timeout time.Duration
	// SkipWait ignores the per-page render wait.
	SkipWait bool
}

func (o Options) withDefaults() Options {
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.AcceptLanguage == "" {
		o.AcceptLanguage = DefaultAcceptLanguage
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return o
}

func (o Options) wait(d time.Duration) time.Duration {
	if o.SkipWait || d < 0 {
		return 0
	}
	return d
}
