// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags. Credentials resolve flag → config → environment.
type Config struct {
	// Device
	Serial string `json:"serial,omitempty"` // Target device serial (optional when one device is attached)

	// Output
	OutDir        string `json:"out_dir,omitempty"`        // Directory for generated stubs and the report
	DumpInventory string `json:"dump_inventory,omitempty"` // Optional path for a raw-inventory dump file

	// Behavior
	Verbose        bool `json:"verbose,omitempty"`         // Print detailed debug information
	Concurrency    int  `json:"concurrency,omitempty" validate:"gte=0,lte=64"`      // Bound for concurrent device commands / component resolution
	TimeoutSeconds int  `json:"timeout_seconds,omitempty" validate:"gte=0,lte=600"` // Per-oracle-call timeout

	// Credentials
	APIKey       string `json:"api_key,omitempty"`        // Gemini API key
	SearchAPIKey string `json:"search_api_key,omitempty"` // Google Custom Search API key (optional)
	SearchCX     string `json:"search_cx,omitempty"`      // Google Custom Search engine id (optional)
	DatabaseURL  string `json:"database_url,omitempty"`   // PostgreSQL connection URL (optional)
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration's value ranges. Required-field checks
// happen in the CLI after flag merging.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("config error: field %q fails constraint %q", first.Field(), first.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a copy of c where zero-valued fields are filled
// from defaults.
func (c Config) MergeWithDefaults(defaults Config) Config {
	if c.OutDir == "" {
		c.OutDir = defaults.OutDir
	}
	if c.Concurrency == 0 {
		c.Concurrency = defaults.Concurrency
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = defaults.TimeoutSeconds
	}
	return c
}
