// Package cli implements the command-line interface for fosdem-events.
//
// The cli package provides the Cobra-based CLI that fetches the FOSDEM
// schedule listing, enriches events from their detail pages, and writes the
// dataset file. It coordinates the scraper, storage, and event packages and
// reports the run outcome as text or JSON.
package cli
