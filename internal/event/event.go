package event

// Ref identifies a linked schedule entity: a speaker, room, or day.
// Identity is the id; Name is display text. Distinct refs may share a name.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event represents a single schedule entry. The listing parser fills the
// identity, scheduling, and grouping fields; the detail enricher fills the
// optional long-form fields, which stay nil (serialized as null) when
// enrichment is skipped, interrupted, or finds nothing.
//
// ID is the dedup key. Speakers is kept non-nil so it serializes as a list
// even when empty.
type Event struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	Speakers    []Ref   `json:"speakers"`
	Room        *Ref    `json:"room"`
	Day         *Ref    `json:"day"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Track       *string `json:"track"`
	Abstract    *string `json:"abstract"`
	Description *string `json:"description"`
	VideoLink   *string `json:"videoLink"`
	ChatLink    *string `json:"chatLink"`
	Navicon     *string `json:"navicon"`
}
