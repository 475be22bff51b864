package event

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestDedupeByID(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		wantIDs []string
	}{
		{
			name:    "no duplicates",
			ids:     []string{"a", "b", "c"},
			wantIDs: []string{"a", "b", "c"},
		},
		{
			name:    "first occurrence wins",
			ids:     []string{"a", "b", "a", "c", "b"},
			wantIDs: []string{"a", "b", "c"},
		},
		{
			name:    "all duplicates",
			ids:     []string{"x", "x", "x"},
			wantIDs: []string{"x"},
		},
		{
			name:    "empty input",
			ids:     []string{},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make([]*Event, 0, len(tt.ids))
			for i, id := range tt.ids {
				events = append(events, &Event{ID: id, Title: tt.ids[i]})
			}

			got := DedupeByID(events)

			gotIDs := make([]string, 0, len(got))
			for _, evt := range got {
				gotIDs = append(gotIDs, evt.ID)
			}
			if !reflect.DeepEqual(gotIDs, tt.wantIDs) {
				t.Errorf("DedupeByID() ids = %v, want %v", gotIDs, tt.wantIDs)
			}
		})
	}
}

func TestDedupeByID_KeepsFirstRecord(t *testing.T) {
	first := &Event{ID: "dup", Title: "first"}
	second := &Event{ID: "dup", Title: "second"}

	got := DedupeByID([]*Event{first, second})

	if len(got) != 1 {
		t.Fatalf("DedupeByID() returned %d events, want 1", len(got))
	}
	if got[0].Title != "first" {
		t.Errorf("DedupeByID() kept %q, want the first occurrence", got[0].Title)
	}
}

func TestAssemble(t *testing.T) {
	capturedAt := time.Date(2026, 1, 31, 18, 4, 5, 0, time.FixedZone("CET", 3600))

	events := []*Event{
		{ID: "a", Title: "A", Speakers: []Ref{}},
		{ID: "b", Title: "B", Speakers: []Ref{}},
		{ID: "a", Title: "A again", Speakers: []Ref{}},
	}

	ds := Assemble(events, capturedAt)

	if ds.ScrapedAt != "2026-01-31T17:04:05Z" {
		t.Errorf("ScrapedAt = %q, want UTC RFC3339 2026-01-31T17:04:05Z", ds.ScrapedAt)
	}
	if len(ds.Events) != 2 {
		t.Errorf("Assemble() kept %d events, want 2 after dedup", len(ds.Events))
	}
	if ds.Events[0].Title != "A" {
		t.Errorf("dedup kept %q, want first occurrence", ds.Events[0].Title)
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	capturedAt := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)
	events := []*Event{{ID: "a"}, {ID: "b"}}

	first := Assemble(events, capturedAt)
	second := Assemble(events, capturedAt)

	if !reflect.DeepEqual(first, second) {
		t.Error("Assemble() is not deterministic for identical input")
	}
}

func TestAssemble_EmptyEvents(t *testing.T) {
	ds := Assemble(nil, time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC))

	if ds.Events == nil {
		t.Error("Assemble() Events is nil, want empty non-nil slice")
	}

	data, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"scrapedAt":"2026-01-31T10:00:00Z","events":[]}` {
		t.Errorf("empty dataset serialized as %s", data)
	}
}

func TestDataset_RoundTrip(t *testing.T) {
	original := Assemble([]*Event{
		{
			ID:        "talk-1",
			Title:     "First Talk",
			Link:      "https://fosdem.org/2026/schedule/event/talk-1/",
			Speakers:  []Ref{{ID: "jdoe", Name: "Jane Doe"}},
			StartTime: "10:00",
			Track:     strPtr("Security"),
		},
		{
			ID:       "talk-2",
			Title:    "Second Talk",
			Speakers: []Ref{},
		},
	}, time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC))

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Dataset
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !reflect.DeepEqual(&decoded, original) {
		t.Errorf("round trip changed dataset:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestDataset_LegacyOmitsScrapedAt(t *testing.T) {
	// Datasets recovered from the legacy bare-list format have no capture
	// timestamp and must not serialize an empty one.
	ds := &Dataset{Events: []*Event{{ID: "a", Speakers: []Ref{}}}}

	data, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, present := raw["scrapedAt"]; present {
		t.Errorf("empty scrapedAt was serialized: %s", data)
	}
}

func TestCountWithAbstract(t *testing.T) {
	empty := ""
	abstract := "Some abstract text."

	tests := []struct {
		name   string
		events []*Event
		want   int
	}{
		{
			name:   "no events",
			events: nil,
			want:   0,
		},
		{
			name: "mixed",
			events: []*Event{
				{ID: "a", Abstract: &abstract},
				{ID: "b"},
				{ID: "c", Abstract: &empty},
				{ID: "d", Abstract: &abstract},
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWithAbstract(tt.events); got != tt.want {
				t.Errorf("CountWithAbstract() = %d, want %d", got, tt.want)
			}
		})
	}
}
