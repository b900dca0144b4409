package domain

import "time"

// Item is a core entity describing a single headline flowing through the
// digest pipeline. ID is derived from the normalized link at ingestion and
// defines deduplication identity; Title and Category are rewritten by later
// stages.
type Item struct {
	ID          string
	Title       string
	Link        string
	Source      string
	Category    string
	PublishedAt time.Time

	// Exclusion markers are transient: set by duplicate detection and
	// consumed before the collection leaves categorization.
	Excluded      bool
	ExcludeReason string
}
