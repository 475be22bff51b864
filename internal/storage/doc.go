// Package storage provides JSON-based persistence for the events dataset.
//
// The storage package manages the single dataset file produced by a scrape
// and consumed by the embed tool. Datasets are stored as indented JSON with
// a scrapedAt timestamp alongside the event list. Files written by older
// tool versions contained a bare event array; Load accepts both shapes.
package storage
