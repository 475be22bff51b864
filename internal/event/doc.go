// Package event defines the core data model for scraped FOSDEM schedule data.
//
// An Event is one schedule entry recovered from the listing page: identity,
// title, detail-page link, speakers, room, day, times, and track, plus the
// optional long-form fields filled in by detail-page enrichment. A Dataset
// wraps an ordered event sequence with its capture timestamp and is the
// canonical document written to and read from disk.
package event
