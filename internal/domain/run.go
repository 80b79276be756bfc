package domain

import "time"

// RunStatus is the terminal (or intermediate) state recorded for a source run.
type RunStatus string

const (
	StatusSuccess RunStatus = "success"
	StatusFailed  RunStatus = "failed"
	StatusError   RunStatus = "error"
)

// RunMetadata is the cumulative per-source bookkeeping row.
type RunMetadata struct {
	Source          string
	LastScrapeTime  time.Time
	ArticlesAdded   int
	ArticlesUpdated int
	LastStatus      RunStatus
}
