// Package pipeline provides the high-level orchestration for the driver
// scouting process.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/davidm/driver-scout/internal/classify"
	"github.com/davidm/driver-scout/internal/db"
	"github.com/davidm/driver-scout/internal/inventory"
	"github.com/davidm/driver-scout/internal/observability"
	"github.com/davidm/driver-scout/internal/oracle"
	"github.com/davidm/driver-scout/internal/report"
	"github.com/davidm/driver-scout/internal/resolve"
	"github.com/davidm/driver-scout/internal/synthesize"
	"github.com/davidm/driver-scout/internal/transport"
	"github.com/davidm/driver-scout/internal/types"
)

// ReportFilename is the summary report written into the output directory.
const ReportFilename = "driver_report.md"

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressFunc is called when pipeline progress occurs
type ProgressFunc func(event ProgressEvent)

// Options holds configuration for running the pipeline. Runner is required;
// Oracle and Search are built from the credentials when nil, and injected
// directly in tests.
type Options struct {
	Runner transport.Runner
	Oracle oracle.Client
	Search resolve.SnippetSource

	APIKey       string
	SearchAPIKey string
	SearchCX     string
	DatabaseURL  string
	Serial       string

	OutDir        string
	DumpInventory string
	Concurrency   int
	Timeout       time.Duration
	Verbose       bool
	OnProgress    ProgressFunc
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// Run orchestrates the full scouting pipeline: collect → classify →
// per-component resolve/guidance/synthesize → report.
func Run(ctx context.Context, opts Options) error {
	printer := observability.NewPrinter(os.Stdout)

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			runID, err = database.CreateRun(ctx, opts.Serial)
			if err != nil {
				fmt.Printf("Warning: Failed to create database run: %v\n", err)
			} else if opts.Verbose {
				fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
			}
		}
	}

	oracleClient, err := buildOracle(ctx, &opts)
	if err != nil {
		return fmt.Errorf("creating oracle client failed: %w", err)
	}
	if oracleClient != opts.Oracle {
		defer func() { _ = oracleClient.Close() }()
	}

	// Step 1: Collect raw inventory
	fmt.Printf("Step 1/5: Collecting device inventory...\n")
	collector := inventory.NewCollector(opts.Runner, opts.Concurrency)
	inv := collector.Collect(ctx)
	if opts.Verbose {
		printer.PrintRawInventory(inv)
	}
	emitProgress(&opts, db.StepRawInventory, db.CategoryInventory,
		fmt.Sprintf("Collected %d of %d introspection sources", len(inv.Sections), len(inventory.Sources)), nil)

	if opts.DumpInventory != "" {
		if err := dumpInventory(inv, opts.DumpInventory); err != nil {
			fmt.Printf("Warning: Failed to dump raw inventory: %v\n", err)
		}
	}
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepRawInventory, db.CategoryInventory, inv)
	}

	// Step 2: Classify components
	fmt.Printf("Step 2/5: Classifying hardware components...\n")
	classifier := classify.New(oracleClient)
	catalog, err := classifier.Classify(ctx, inv)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
	if catalog.Empty() {
		fmt.Printf("Warning: No components identified; nothing to resolve. Exiting.\n")
		if database != nil && runID != uuid.Nil {
			_ = database.CompleteRun(ctx, runID, "empty")
		}
		return nil
	}
	if opts.Verbose {
		printer.PrintCatalog(catalog)
	}
	emitProgress(&opts, db.StepCatalog, db.CategoryClassification,
		fmt.Sprintf("Identified %d components", len(catalog.Components)), catalog)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepCatalog, db.CategoryClassification, catalog)
	}

	// Step 3: Resolve drivers and synthesize artifacts, fanned out per
	// component. Each chain is independent: resolution failures become
	// error-text findings, synthesis failures only drop their own
	// component from the report.
	fmt.Printf("Step 3/5: Resolving drivers for %d components...\n", len(catalog.Components))
	resolver := resolve.New(oracleClient, buildSearch(ctx, &opts))
	synthesizer := synthesize.NewSynthesizer(opts.OutDir)

	results := make([]*types.Artifact, len(catalog.Components))

	var g errgroup.Group
	g.SetLimit(workerLimit(opts.Concurrency))

	for i, comp := range catalog.Components {
		i, comp := i, comp
		g.Go(func() error {
			// A cancelled run keeps what already finished; components
			// that have not started are skipped.
			if ctx.Err() != nil {
				return nil
			}

			res := resolver.Resolve(ctx, comp)
			if opts.Verbose {
				printer.PrintResolution(res)
			}

			art, err := synthesizer.Synthesize(res)
			if err != nil {
				fmt.Printf("Warning: %v\n", err)
				return nil
			}
			results[i] = art

			emitProgress(&opts, db.StepArtifact, db.CategorySynthesis,
				fmt.Sprintf("Synthesized artifact %s for %s", art.ID, comp.Type), nil)
			if database != nil && runID != uuid.Nil {
				_ = database.SaveArtifact(ctx, runID, db.ComponentStep(db.StepResolution, art.ID), db.CategoryResolution, res)
				_ = database.SaveArtifact(ctx, runID, db.ComponentStep(db.StepArtifact, art.ID), db.CategorySynthesis, art)
			}
			return nil
		})
	}
	_ = g.Wait() // workers recover their own failures

	// Fan in preserving catalog order.
	artifacts := make([]types.Artifact, 0, len(results))
	for _, art := range results {
		if art != nil {
			artifacts = append(artifacts, *art)
		}
	}

	// Step 4: Build and write the report
	fmt.Printf("Step 4/5: Building summary report...\n")
	summary := report.Build(artifacts)
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory failed: %w", err)
	}
	reportPath := filepath.Join(opts.OutDir, ReportFilename)
	if err := os.WriteFile(reportPath, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("writing report failed: %w", err)
	}
	emitProgress(&opts, db.StepReport, db.CategoryReport,
		fmt.Sprintf("Report with %d rows written to %s", len(artifacts), reportPath), nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveTextArtifact(ctx, runID, db.StepReport, db.CategoryReport, summary)
		_ = database.CompleteRun(ctx, runID, "completed")
	}

	// Step 5: Summarize
	fmt.Printf("Step 5/5: Done. %d of %d components synthesized; report at %s\n",
		len(artifacts), len(catalog.Components), reportPath)
	if opts.Verbose {
		printer.PrintArtifacts(artifacts)
	}
	return nil
}

func buildOracle(ctx context.Context, opts *Options) (oracle.Client, error) {
	if opts.Oracle != nil {
		return opts.Oracle, nil
	}
	cfg := oracle.DefaultConfig()
	if opts.Timeout > 0 {
		cfg = cfg.WithTimeout(opts.Timeout)
	}
	return oracle.NewClient(ctx, cfg, opts.APIKey)
}

// buildSearch wires the optional search enrichment. Missing credentials or
// a failed client setup degrade to oracle-only resolution.
func buildSearch(ctx context.Context, opts *Options) resolve.SnippetSource {
	if opts.Search != nil {
		return opts.Search
	}
	if opts.SearchAPIKey == "" || opts.SearchCX == "" {
		return nil
	}
	searcher, err := resolve.NewSearcher(ctx, opts.SearchAPIKey, opts.SearchCX)
	if err != nil {
		fmt.Printf("Warning: Failed to initialize driver search: %v\n", err)
		return nil
	}
	return searcher
}

func workerLimit(concurrency int) int {
	if concurrency <= 0 {
		return inventory.DefaultConcurrency
	}
	return concurrency
}

func dumpInventory(inv *types.RawInventory, path string) error {
	var sb []byte
	for _, section := range inv.Sections {
		sb = append(sb, "## "+section.Label+"\n"+section.Text+"\n\n"...)
	}
	return os.WriteFile(path, sb, 0o644)
}
