package bundle

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/fosdem-tools/fosdem-events/internal/event"
)

//go:embed assets/init.js
var rawInitScript string

// indexTemplate is the single-file page shell.
//
//go:embed assets/index.html.tmpl
var indexTemplate string

// initScript is the replacement init() method wired to the data island. The
// asset's trailing newline is trimmed so re-embedding an already-embedded
// script stays byte-stable.
var initScript = strings.TrimSuffix(rawInitScript, "\n")

var indexTmpl = template.Must(template.New("index").Parse(indexTemplate))

// Output holds the artifacts produced by an embed run.
type Output struct {
	AppJS        string
	IndexHTML    string
	InitReplaced bool
}

// EncodeEmbedded renders the dataset as single-line JSON for the data
// island. HTML escaping is disabled to keep event text readable, so any
// closing script sequence in the data is neutralized to stop it from
// terminating the island early.
func EncodeEmbedded(ds *event.Dataset) (string, error) {
	doc := event.Dataset{
		ScrapedAt: ds.ScrapedAt,
		Events:    ds.Events,
	}
	if doc.Events == nil {
		doc.Events = []*event.Event{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&doc); err != nil {
		return "", fmt.Errorf("encoding embedded dataset: %w", err)
	}

	s := strings.TrimSuffix(buf.String(), "\n")
	return strings.ReplaceAll(s, "</script>", `<\/script>`), nil
}

// ReplaceInit swaps the viewer's init() method, header through closing
// brace, for replacement. The method is located textually: "init() {"
// first, then "init()" with the brace further along for sources that put
// the brace on its own line. It returns the rewritten script and whether
// the swap happened; scripts without a recognizable init() method come
// back unchanged.
func ReplaceInit(appJS, replacement string) (string, bool) {
	start := strings.Index(appJS, "init() {")
	if start == -1 {
		start = strings.Index(appJS, "init()")
	}
	if start == -1 {
		return appJS, false
	}

	open := strings.Index(appJS[start:], "{")
	if open == -1 {
		return appJS, false
	}

	depth := 0
	for i := start + open; i < len(appJS); i++ {
		switch appJS[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return appJS[:start] + replacement + appJS[i+1:], true
			}
		}
	}

	// Unbalanced braces past the method header
	return appJS, false
}

type pageData struct {
	CSS        string
	EventsJSON string
	AppJS      string
}

// RenderStandalone fills the page shell with the stylesheet, the encoded
// dataset and the viewer script.
func RenderStandalone(css, eventsJSON, appJS string) (string, error) {
	var buf bytes.Buffer
	err := indexTmpl.Execute(&buf, pageData{
		CSS:        css,
		EventsJSON: eventsJSON,
		AppJS:      appJS,
	})
	if err != nil {
		return "", fmt.Errorf("rendering standalone page: %w", err)
	}
	return buf.String(), nil
}

// Build produces the embedded viewer script and the standalone page for a
// dataset. A script without a recognizable init() method passes through
// unchanged with InitReplaced false; the page still carries the data island.
func Build(ds *event.Dataset, appJS, css string) (*Output, error) {
	eventsJSON, err := EncodeEmbedded(ds)
	if err != nil {
		return nil, err
	}

	embedded, replaced := ReplaceInit(appJS, initScript)

	html, err := RenderStandalone(css, eventsJSON, embedded)
	if err != nil {
		return nil, err
	}

	return &Output{
		AppJS:        embedded,
		IndexHTML:    html,
		InitReplaced: replaced,
	}, nil
}
