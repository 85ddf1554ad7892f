package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/davidm/driver-scout/internal/config"
	"github.com/davidm/driver-scout/internal/pipeline"
	"github.com/davidm/driver-scout/internal/transport"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full scouting pipeline end-to-end",
	Long: `Orchestrates the entire scouting process: inventory collection -> component classification -> per-component driver resolution and guidance -> stub synthesis -> summary report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath    string
	runSerial        string
	runOutDir        string
	runDumpInventory string
	runConcurrency   int
	runTimeout       int
	runAPIKey        string
	runSearchKey     string
	runSearchCX      string
	runDatabaseURL   string
	runVerbose       bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runSerial, "serial", "s", "", "Target device serial (optional when exactly one device is attached)")
	runCommand.Flags().StringVarP(&runOutDir, "out", "o", "", "Output directory for driver stubs and the report")
	runCommand.Flags().StringVar(&runDumpInventory, "dump-inventory", "", "Write the raw inventory to this file before classification")
	runCommand.Flags().IntVar(&runConcurrency, "concurrency", 0, "Bound for concurrent device commands and component resolution")
	runCommand.Flags().IntVar(&runTimeout, "timeout", 0, "Per-oracle-call timeout in seconds")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().StringVar(&runSearchKey, "search-key", "", "Google Custom Search API key (optional, defaults to GOOGLE_SEARCH_API_KEY env var)")
	runCommand.Flags().StringVar(&runSearchCX, "search-cx", "", "Google Custom Search engine id (optional, defaults to GOOGLE_SEARCH_CX env var)")

	// Database URL for run persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("serial") {
		cfg.Serial = runSerial
	}
	if cmd.Flags().Changed("out") {
		cfg.OutDir = runOutDir
	}
	if cmd.Flags().Changed("dump-inventory") {
		cfg.DumpInventory = runDumpInventory
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = runConcurrency
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = runTimeout
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("search-key") {
		cfg.SearchAPIKey = runSearchKey
	}
	if cmd.Flags().Changed("search-cx") {
		cfg.SearchCX = runSearchCX
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		OutDir:         "drivers",
		Concurrency:    4,
		TimeoutSeconds: 90,
	})

	// Step 4: Validate merged config
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 5: Credential handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.SearchAPIKey == "" {
		cfg.SearchAPIKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	}
	if cfg.SearchCX == "" {
		cfg.SearchCX = os.Getenv("GOOGLE_SEARCH_CX")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	// Step 6: Confirm the transport is available before touching anything
	adb, err := transport.NewADB(transport.WithSerial(cfg.Serial))
	if err != nil {
		return err
	}
	if err := adb.Ensure(ctx); err != nil {
		return err
	}

	return pipeline.Run(ctx, pipeline.Options{
		Runner:        adb,
		APIKey:        cfg.APIKey,
		SearchAPIKey:  cfg.SearchAPIKey,
		SearchCX:      cfg.SearchCX,
		DatabaseURL:   cfg.DatabaseURL,
		Serial:        cfg.Serial,
		OutDir:        cfg.OutDir,
		DumpInventory: cfg.DumpInventory,
		Concurrency:   cfg.Concurrency,
		Timeout:       time.Duration(cfg.TimeoutSeconds) * time.Second,
		Verbose:       cfg.Verbose,
	})
}
