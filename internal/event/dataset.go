package event

import "time"

// Dataset is the canonical scrape document: the capture timestamp plus the
// ordered event sequence. ScrapedAt is empty for datasets loaded from the
// legacy bare-list format and is then omitted on re-serialization.
type Dataset struct {
	ScrapedAt string   `json:"scrapedAt,omitempty"`
	Events    []*Event `json:"events"`
}

// DedupeByID removes events that share an id, keeping the first occurrence.
// Order is otherwise preserved.
func DedupeByID(events []*Event) []*Event {
	seen := make(map[string]bool, len(events))
	unique := make([]*Event, 0, len(events))
	for _, evt := range events {
		if !seen[evt.ID] {
			seen[evt.ID] = true
			unique = append(unique, evt)
		}
	}
	return unique
}

// Assemble wraps events into a Dataset stamped with capturedAt as UTC
// RFC3339. Events sharing an id collapse to the first occurrence.
func Assemble(events []*Event, capturedAt time.Time) *Dataset {
	return &Dataset{
		ScrapedAt: capturedAt.UTC().Format(time.RFC3339),
		Events:    DedupeByID(events),
	}
}

// CountWithAbstract reports how many events carry a non-empty abstract,
// the quality signal surfaced in the run report.
func CountWithAbstract(events []*Event) int {
	n := 0
	for _, evt := range events {
		if evt.Abstract != nil && *evt.Abstract != "" {
			n++
		}
	}
	return n
}
