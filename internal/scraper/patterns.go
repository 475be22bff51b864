package scraper

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/fosdem-tools/fosdem-events/internal/event"
)

// Listing-page patterns. Element and attribute syntax matches
// case-insensitively; captured text keeps its original case. Event ids are
// bare path segments, so that pattern stays case-sensitive.
var (
	eventAnchorPattern   = regexp.MustCompile(`/2026/schedule/event/([^/"'>\s]+)`)
	speakerAnchorPattern = regexp.MustCompile(`(?i)<a[^>]*href=["']/2026/schedule/speaker/([^"']+)["'][^>]*>([^<]+)</a>`)
	roomAnchorPattern    = regexp.MustCompile(`(?i)<a[^>]*href=["']/2026/schedule/room/([^"']+)["'][^>]*>([^<]+)</a>`)
	dayAnchorPattern     = regexp.MustCompile(`(?i)<a[^>]*href=["']/2026/schedule/day/([^"']+)["'][^>]*>([^<]+)</a>`)
	timeTokenPattern     = regexp.MustCompile(`\d{1,2}:\d{2}`)
	groupHeaderPattern   = regexp.MustCompile(`(?i)<h4>([^<]+) \((\d+)\)</h4>`)
)

// GroupHeader is a thematic grouping found in the listing page. Its scope
// runs from Position (byte offset in the document) to the next header's
// position, or the end of the document. Count is the member count the page
// declares; it is carried, not validated.
type GroupHeader struct {
	Name     string
	Count    int
	Position int
}

// ExtractGroupHeaders returns every heading of the form "<h4>Name (N)</h4>"
// with its byte offset, in document order.
func ExtractGroupHeaders(s string) []GroupHeader {
	matches := groupHeaderPattern.FindAllStringSubmatchIndex(s, -1)
	headers := make([]GroupHeader, 0, len(matches))
	for _, m := range matches {
		// \d+ only fails Atoi on overflow; the header still counts for
		// track assignment.
		count, _ := strconv.Atoi(s[m[4]:m[5]])
		headers = append(headers, GroupHeader{
			Name:     strings.TrimSpace(s[m[2]:m[3]]),
			Count:    count,
			Position: m[0],
		})
	}
	return headers
}

// ExtractEventIDs returns every event-anchor target id in document order.
// Duplicates are preserved; the listing parser deduplicates.
func ExtractEventIDs(s string) []string {
	matches := eventAnchorPattern.FindAllStringSubmatch(s, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}

// ExtractSpeakers returns all speaker refs in document order.
func ExtractSpeakers(s string) []event.Ref {
	return extractRefs(speakerAnchorPattern, s)
}

// ExtractRooms returns all room refs in document order.
func ExtractRooms(s string) []event.Ref {
	return extractRefs(roomAnchorPattern, s)
}

// ExtractDays returns all day refs in document order.
func ExtractDays(s string) []event.Ref {
	return extractRefs(dayAnchorPattern, s)
}

func extractRefs(pattern *regexp.Regexp, s string) []event.Ref {
	matches := pattern.FindAllStringSubmatch(s, -1)
	refs := make([]event.Ref, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, event.Ref{
			ID:   decodeID(m[1]),
			Name: strings.TrimSpace(m[2]),
		})
	}
	return refs
}

// decodeID percent-decodes a URL path segment, keeping the raw segment when
// decoding fails.
func decodeID(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ExtractTimes returns every bare H:MM or HH:MM token in document order.
func ExtractTimes(s string) []string {
	return timeTokenPattern.FindAllString(s, -1)
}
