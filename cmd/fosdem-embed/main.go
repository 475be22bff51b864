package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fosdem-tools/fosdem-events/internal/bundle"
	"github.com/fosdem-tools/fosdem-events/internal/storage"
)

var (
	eventsFile = flag.String("events-file", "events.json", "Path to the scraped events JSON file")
	appJSFile  = flag.String("app-js", "app.js", "Path to the viewer script to rewrite")
	cssFile    = flag.String("css", "styles.css", "Path to the viewer stylesheet")
	outFile    = flag.String("out", "index.html", "Path for the standalone page")
)

func main() {
	flag.Parse()

	fmt.Println("Creating standalone version...")

	store, err := storage.New(*eventsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening events file: %v\n", err)
		os.Exit(1)
	}

	ds, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading events: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run fosdem-events first to produce the dataset.")
		os.Exit(1)
	}

	fmt.Printf("Loaded %d events\n", len(ds.Events))
	if ds.ScrapedAt != "" {
		fmt.Printf("Data scraped at: %s\n", ds.ScrapedAt)
	}

	appJS, err := os.ReadFile(*appJSFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading viewer script: %v\n", err)
		os.Exit(1)
	}

	css, err := os.ReadFile(*cssFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stylesheet: %v\n", err)
		os.Exit(1)
	}

	out, err := bundle.Build(ds, string(appJS), string(css))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building standalone version: %v\n", err)
		os.Exit(1)
	}
	if !out.InitReplaced {
		fmt.Fprintln(os.Stderr, "Warning: could not find init() method in viewer script, leaving it unchanged")
	}

	// The rewritten script replaces the input in place so it matches what
	// the standalone page embeds.
	if err := os.WriteFile(*appJSFile, []byte(out.AppJS), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing viewer script: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created %s (%d bytes)\n", *appJSFile, len(out.AppJS))

	if err := os.WriteFile(*outFile, []byte(out.IndexHTML), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing standalone page: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created %s (%d bytes)\n", *outFile, len(out.IndexHTML))

	fmt.Println("\nSingle-file version ready! Open index.html in your browser.")
}
