package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fosdem-tools/fosdem-events/internal/event"
	"github.com/fosdem-tools/fosdem-events/internal/logger"
	"github.com/fosdem-tools/fosdem-events/internal/scraper"
	"github.com/fosdem-tools/fosdem-events/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagOutput      string
	flagDelay       time.Duration
	flagTimeout     time.Duration
	flagSkipDetails bool
	flagFormat      string
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fosdem-events",
		Short: "Scrape the FOSDEM 2026 schedule into a JSON dataset",
		Long: `Fetches the FOSDEM 2026 schedule listing, parses every event row, and
enriches each event from its detail page (abstract, description, video and
chat links). The result is written as a JSON dataset for the event browser.

Interrupting an enrichment run with Ctrl+C keeps the data collected so far.`,
		RunE:          runScrape,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Define flags
	cmd.Flags().StringVar(&flagOutput, "output", "events.json", "Output path for the dataset")
	cmd.Flags().DurationVar(&flagDelay, "delay", scraper.DefaultDelay, "Pause before each page fetch")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", scraper.DefaultTimeout, "HTTP request timeout")
	cmd.Flags().BoolVar(&flagSkipDetails, "skip-details", false, "Skip detail pages and keep listing fields only")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Report format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	// Validate format
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	// Initialize storage
	store, err := storage.New(flagOutput)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	// Initialize scraper
	sc := scraper.New(scraper.Options{
		Delay:   flagDelay,
		Timeout: flagTimeout,
	})

	start := time.Now()

	// Fetch and parse the listing. A listing failure is fatal: nothing is
	// written and the process exits non-zero.
	events, err := sc.FetchEvents()
	if err != nil {
		return fmt.Errorf("fetching events: %w", err)
	}

	// Enrich from detail pages unless skipped. Ctrl+C during this phase
	// stops the loop; events enriched so far keep their fields.
	interrupted := false
	if !flagSkipDetails {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if _, err := sc.EnrichAll(ctx, events); err != nil {
			interrupted = true
		}
	}

	ds := event.Assemble(events, time.Now())
	if err := store.Save(ds); err != nil {
		return fmt.Errorf("saving dataset: %w", err)
	}

	if flagVerbose {
		logger.Debug("run metrics", logger.Fields{
			"metrics": logger.GetMetricsSnapshot(),
		})
	}

	report := &Report{
		ScrapedAt:    ds.ScrapedAt,
		EventCount:   len(ds.Events),
		WithAbstract: event.CountWithAbstract(ds.Events),
		OutputPath:   store.Path(),
		Duration:     time.Since(start).Round(time.Millisecond).String(),
		Interrupted:  interrupted,
	}

	if err := WriteReport(os.Stdout, report, format); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
