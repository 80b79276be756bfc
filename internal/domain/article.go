package domain

import "time"

// Article is a single news article as extracted from a source page.
type Article struct {
	URL             string
	Title           string
	PublicationDate *time.Time
	Author          string
	Content         string
	Category        string
}

// ExportRecord enriches an article with identifiers and timestamps for CSV export.
type ExportRecord struct {
	ID          string
	Article     Article
	CreatedAt   time.Time
	LastUpdated time.Time
}

// UpsertOutcome reports what an upsert did to the stored row.
type UpsertOutcome int

const (
	Failed UpsertOutcome = iota
	Inserted
	Updated
)

func (o UpsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	default:
		return "failed"
	}
}
