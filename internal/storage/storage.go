package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fosdem-tools/fosdem-events/internal/event"
)

// Storage handles persistence of the events dataset file
type Storage struct {
	path string
}

// New creates a new Storage instance for the dataset file at path
func New(path string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	// Create parent directory if it doesn't exist
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	return &Storage{
		path: path,
	}, nil
}

// Path returns the resolved dataset file location
func (s *Storage) Path() string {
	return s.path
}

// Save writes the dataset to disk as indented JSON. HTML escaping is
// disabled so URLs and markup fragments in descriptions stay readable.
func (s *Storage) Save(ds *event.Dataset) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}

	return nil
}

// Load reads the dataset from disk. Both document shapes are accepted: the
// current {scrapedAt, events} object and the legacy bare event array, which
// loads with an empty ScrapedAt. A missing file is an error; embedding
// requires a prior scrape.
func (s *Storage) Load() (*event.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var events []*event.Event
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, fmt.Errorf("parsing legacy dataset: %w", err)
		}
		return &event.Dataset{Events: events}, nil
	}

	var ds event.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	// Ensure the events slice is initialized
	if ds.Events == nil {
		ds.Events = []*event.Event{}
	}

	return &ds, nil
}
