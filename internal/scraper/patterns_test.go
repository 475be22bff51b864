package scraper

import (
	"reflect"
	"strings"
	"testing"

	"github.com/fosdem-tools/fosdem-events/internal/event"
)

func TestExtractGroupHeaders(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []GroupHeader
	}{
		{
			name: "single header",
			html: `<h4>Security (2)</h4>`,
			want: []GroupHeader{{Name: "Security", Count: 2, Position: 0}},
		},
		{
			name: "multiple headers keep document order",
			html: `..<h4>AI Plumbers (23)</h4>....<h4>Kernel (7)</h4>`,
			want: []GroupHeader{
				{Name: "AI Plumbers", Count: 23, Position: 2},
				{Name: "Kernel", Count: 7, Position: 31},
			},
		},
		{
			name: "uppercase element syntax",
			html: `<H4>Rust (5)</H4>`,
			want: []GroupHeader{{Name: "Rust", Count: 5, Position: 0}},
		},
		{
			name: "heading without count is not a group header",
			html: `<h4>About</h4>`,
			want: []GroupHeader{},
		},
		{
			name: "nested markup breaks the shape",
			html: `<h4><em>Web</em> (9)</h4>`,
			want: []GroupHeader{},
		},
		{
			name: "no headers",
			html: `<p>nothing here</p>`,
			want: []GroupHeader{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractGroupHeaders(tt.html)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractGroupHeaders() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractGroupHeaders_PositionIsDocumentOffset(t *testing.T) {
	html := `<p>intro</p><h4>Databases (12)</h4>`

	headers := ExtractGroupHeaders(html)
	if len(headers) != 1 {
		t.Fatalf("got %d headers, want 1", len(headers))
	}
	if headers[0].Position != strings.Index(html, "<h4>") {
		t.Errorf("Position = %d, want %d", headers[0].Position, strings.Index(html, "<h4>"))
	}
}

func TestExtractEventIDs(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "anchor href",
			html: `<a href="/2026/schedule/event/welcome/">Welcome</a>`,
			want: []string{"welcome"},
		},
		{
			name: "duplicates preserved in document order",
			html: `<a href="/2026/schedule/event/a/">A</a><a href="/2026/schedule/event/b/">B</a><a href="/2026/schedule/event/a/">A</a>`,
			want: []string{"a", "b", "a"},
		},
		{
			name: "id stops at slash quote or whitespace",
			html: `/2026/schedule/event/talk-one/extra /2026/schedule/event/talk-two"`,
			want: []string{"talk-one", "talk-two"},
		},
		{
			name: "absolute url also matches",
			html: `see https://fosdem.org/2026/schedule/event/closing/`,
			want: []string{"closing"},
		},
		{
			name: "none",
			html: `<a href="/2026/schedule/speaker/jdoe">J. Doe</a>`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEventIDs(tt.html)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractEventIDs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractSpeakers(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []event.Ref
	}{
		{
			name: "single speaker",
			html: `<a href="/2026/schedule/speaker/jane_doe">Jane Doe</a>`,
			want: []event.Ref{{ID: "jane_doe", Name: "Jane Doe"}},
		},
		{
			name: "document order preserved",
			html: `<a href="/2026/schedule/speaker/b">Second</a> after <a href="/2026/schedule/speaker/a">First</a>`,
			want: []event.Ref{{ID: "b", Name: "Second"}, {ID: "a", Name: "First"}},
		},
		{
			name: "percent-encoded id is decoded",
			html: `<a href="/2026/schedule/speaker/jane%20doe">Jane Doe</a>`,
			want: []event.Ref{{ID: "jane doe", Name: "Jane Doe"}},
		},
		{
			name: "name whitespace is trimmed",
			html: `<a href="/2026/schedule/speaker/x"> Spacey Name </a>`,
			want: []event.Ref{{ID: "x", Name: "Spacey Name"}},
		},
		{
			name: "case-insensitive element syntax, case-preserving text",
			html: `<A HREF='/2026/schedule/speaker/mc'>Mixed Case</A>`,
			want: []event.Ref{{ID: "mc", Name: "Mixed Case"}},
		},
		{
			name: "extra attributes tolerated",
			html: `<a class="speaker" href="/2026/schedule/speaker/y" title="profile">Y</a>`,
			want: []event.Ref{{ID: "y", Name: "Y"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSpeakers(tt.html)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractSpeakers() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractRoomsAndDays(t *testing.T) {
	html := `<td><a href="/2026/schedule/room/janson">Janson</a></td>` +
		`<td><a href="/2026/schedule/day/saturday">Saturday</a></td>`

	rooms := ExtractRooms(html)
	if len(rooms) != 1 || rooms[0].ID != "janson" || rooms[0].Name != "Janson" {
		t.Errorf("ExtractRooms() = %+v", rooms)
	}

	days := ExtractDays(html)
	if len(days) != 1 || days[0].ID != "saturday" || days[0].Name != "Saturday" {
		t.Errorf("ExtractDays() = %+v", days)
	}

	// Room anchors must not leak into day extraction and vice versa.
	if got := ExtractDays(`<a href="/2026/schedule/room/k1105">K.1.105</a>`); len(got) != 0 {
		t.Errorf("ExtractDays() matched a room anchor: %+v", got)
	}
}

func TestExtractTimes(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "start and end",
			html: `<td>10:30</td><td>11:00</td>`,
			want: []string{"10:30", "11:00"},
		},
		{
			name: "single digit hour",
			html: `9:05`,
			want: []string{"9:05"},
		},
		{
			name: "document order",
			html: `ends 17:50 starts 17:00`,
			want: []string{"17:50", "17:00"},
		},
		{
			name: "no tokens",
			html: `<td>Saturday</td>`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTimes(tt.html)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTimes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractors_MalformedInputDoesNotPanic(t *testing.T) {
	inputs := []string{
		"",
		"<a href=",
		`<h4>Broken (`,
		"<<<>>>",
		strings.Repeat("<tr>", 100),
	}

	for _, input := range inputs {
		ExtractGroupHeaders(input)
		ExtractEventIDs(input)
		ExtractSpeakers(input)
		ExtractRooms(input)
		ExtractDays(input)
		ExtractTimes(input)
	}
}
