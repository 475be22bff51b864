package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fosdem-tools/fosdem-events/internal/event"
	"github.com/fosdem-tools/fosdem-events/internal/logger"
)

const (
	// maxDropLogs caps per-candidate drop diagnostics so a structural page
	// change cannot flood the log.
	maxDropLogs = 5

	// parseProgressEvery controls periodic progress logging while
	// candidates are processed.
	parseProgressEvery = 100
)

// headerIndex is the ordered sequence of group headers found in a listing
// document, searched by offset for track assignment.
type headerIndex []GroupHeader

// trackFor returns the name of the nearest header strictly before offset,
// or nil when no header precedes it.
func (h headerIndex) trackFor(offset int) *string {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Position < offset {
			name := h[i].Name
			return &name
		}
	}
	return nil
}

// ParseListing extracts every event from the raw listing document.
//
// The document is scanned once for group headers and once for event anchors
// (the candidate set, deduplicated first-wins). Each candidate is then
// rebuilt from its enclosing table row, so a neighboring row cannot
// contribute fields. Candidates without a usable title or row are dropped;
// a drop never aborts the remaining candidates, and only the first few drops
// are logged individually.
func (s *Scraper) ParseListing(html string) []*event.Event {
	index := headerIndex(ExtractGroupHeaders(html))
	ids := dedupeStrings(ExtractEventIDs(html))

	logger.Info("parsing listing", logger.Fields{
		"headers":    len(index),
		"candidates": len(ids),
	})

	events := make([]*event.Event, 0, len(ids))
	dropped := 0
	for i, id := range ids {
		if (i+1)%parseProgressEvery == 0 {
			logger.Debug("parse progress", logger.Fields{
				"done":  i + 1,
				"total": len(ids),
			})
		}

		evt, err := s.buildEvent(html, id, index)
		if err != nil {
			dropped++
			if dropped <= maxDropLogs {
				logger.Warn("dropping listing candidate", logger.Fields{
					"event_id": id,
					"reason":   err.Error(),
				})
			}
			continue
		}
		events = append(events, evt)
	}
	if dropped > maxDropLogs {
		logger.Warn("more candidates dropped", logger.Fields{
			"dropped": dropped,
			"logged":  maxDropLogs,
		})
	}

	unique := event.DedupeByID(events)
	logger.AddCounter("listing.events_parsed", int64(len(unique)))
	logger.Info("parsed listing", logger.Fields{
		"events":  len(unique),
		"dropped": dropped,
	})
	return unique
}

// buildEvent reconstructs one event from its listing row. The returned error
// names the reason a candidate cannot produce a full record.
func (s *Scraper) buildEvent(html, id string, index headerIndex) (*event.Event, error) {
	titlePattern, err := titlePatternFor(id)
	if err != nil {
		return nil, fmt.Errorf("compiling title pattern: %w", err)
	}

	m := titlePattern.FindStringSubmatchIndex(html)
	if m == nil {
		return nil, fmt.Errorf("no title anchor")
	}
	title := strings.TrimSpace(html[m[2]:m[3]])
	if title == "" {
		return nil, fmt.Errorf("empty title")
	}
	offset := m[0]

	row, ok := extractRow(html, offset)
	if !ok {
		return nil, fmt.Errorf("no enclosing row")
	}

	var room, day *event.Ref
	if rooms := ExtractRooms(row); len(rooms) > 0 {
		room = &rooms[0]
	}
	if days := ExtractDays(row); len(days) > 0 {
		day = &days[0]
	}

	startTime, endTime := "", ""
	if times := ExtractTimes(row); len(times) > 0 {
		startTime = times[0]
		if len(times) > 1 {
			endTime = times[1]
		}
	}

	return &event.Event{
		ID:        id,
		Title:     title,
		Link:      s.EventURL(id),
		Speakers:  ExtractSpeakers(row),
		Room:      room,
		Day:       day,
		StartTime: startTime,
		EndTime:   endTime,
		Track:     index.trackFor(offset),
	}, nil
}

// titlePatternFor matches an anchor targeting the event id and captures the
// text run immediately following the opening tag, stopping at the first
// nested element. The optional trailing slash covers both href spellings.
func titlePatternFor(id string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)<a[^>]*href=["']/2026/schedule/event/` + regexp.QuoteMeta(id) + `/?["'][^>]*>([^<]+)`)
}

// extractRow slices the nearest enclosing table row: the last "<tr" opening
// before offset and the next "</tr>" at or after it, inclusive.
func extractRow(html string, offset int) (string, bool) {
	start := strings.LastIndex(html[:offset], "<tr")
	if start == -1 {
		return "", false
	}
	end := strings.Index(html[offset:], "</tr>")
	if end == -1 {
		return "", false
	}
	return html[start : offset+end+len("</tr>")], true
}

// dedupeStrings keeps the first occurrence of each value, preserving order.
func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return unique
}
