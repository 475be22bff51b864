package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/fosdem-tools/fosdem-events/internal/event"
	"github.com/fosdem-tools/fosdem-events/internal/logger"
)

const (
	// DefaultBaseURL is the schedule origin scraped by default.
	DefaultBaseURL = "https://fosdem.org"

	// UserAgent identifies this tool to the schedule server.
	UserAgent = "fosdem-events/1.0 (github.com/fosdem-tools/fosdem-events)"

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultDelay is the politeness pause preceding every fetch.
	DefaultDelay = 100 * time.Millisecond

	listingPath     = "/2026/schedule/events/"
	eventPathPrefix = "/2026/schedule/event/"

	// enrichProgressEvery controls periodic progress logging in the
	// enrichment loop.
	enrichProgressEvery = 10

	// fetchRetries bounds retries of transient fetch failures.
	fetchRetries = 2
)

// Options configures a Scraper. A zero BaseURL or Timeout falls back to the
// package default. A zero Delay disables politeness throttling, which is
// only appropriate in tests.
type Options struct {
	BaseURL string
	Delay   time.Duration
	Timeout time.Duration
}

// Scraper fetches and parses the FOSDEM schedule. All fetches run
// sequentially on the calling goroutine.
type Scraper struct {
	client *http.Client
	origin string
	delay  time.Duration
}

// New creates a Scraper with the given options.
func New(opts Options) *Scraper {
	origin := strings.TrimRight(opts.BaseURL, "/")
	if origin == "" {
		origin = DefaultBaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		origin: origin,
		delay:  opts.Delay,
	}
}

// ListingURL returns the schedule listing URL for this scraper's origin.
func (s *Scraper) ListingURL() string {
	return s.origin + listingPath
}

// EventURL returns the canonical detail-page URL for an event id.
func (s *Scraper) EventURL(id string) string {
	return s.origin + eventPathPrefix + strings.TrimRight(id, "/") + "/"
}

// FetchEvents fetches the schedule listing page and parses every event row.
// A listing fetch failure is fatal; per-candidate parse failures are not.
func (s *Scraper) FetchEvents() ([]*event.Event, error) {
	start := time.Now()
	html, err := s.get(s.ListingURL())
	if err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}
	logger.RecordTiming("fetch.listing", time.Since(start))
	logger.Debug("fetched listing", logger.Fields{"bytes": len(html)})

	if !strings.Contains(html, "/schedule/event/") {
		logger.Warn("no event links in listing page, structure may have changed", logger.Fields{
			"url": s.ListingURL(),
		})
	}

	return s.ParseListing(html), nil
}

// EnrichAll fetches each event's detail page in listing order, filling the
// optional long-form fields. Cancellation is polled between events: on a
// canceled ctx the loop stops, already-enriched events keep their fields,
// and the number of events processed is returned alongside ctx's error.
// Per-event failures are logged and skipped, never returned.
func (s *Scraper) EnrichAll(ctx context.Context, events []*event.Event) (int, error) {
	for i, evt := range events {
		if err := ctx.Err(); err != nil {
			logger.Info("enrichment interrupted, keeping partial results", logger.Fields{
				"enriched":  i,
				"remaining": len(events) - i,
			})
			return i, err
		}

		if (i+1)%enrichProgressEvery == 0 {
			logger.Info("enrichment progress", logger.Fields{
				"done":  i + 1,
				"total": len(events),
			})
		}

		s.enrich(evt)
	}
	return len(events), nil
}

// enrich fetches one detail page and applies whatever fields it carries.
// Failures leave the event's detail fields nil.
func (s *Scraper) enrich(evt *event.Event) {
	start := time.Now()
	html, err := s.get(evt.Link)
	if err != nil {
		logger.IncrCounter("detail.fetch_failed")
		logger.Warn("could not fetch event details", logger.Fields{
			"event_id": evt.ID,
			"error":    err.Error(),
		})
		return
	}
	logger.RecordTiming("fetch.detail", time.Since(start))

	ParseDetails(html, s.origin).ApplyTo(evt)
}

// get fetches url after the politeness delay, retrying transient failures
// (transport errors and 5xx responses) with exponential backoff. Other
// non-OK statuses are permanent.
func (s *Scraper) get(url string) (string, error) {
	// The delay is a plain blocking sleep: throttling must happen even
	// when the caller is about to observe a cancellation.
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	var body string
	operation := func() error {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("server error: %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		body = string(data)
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), fetchRetries)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return body, nil
}
