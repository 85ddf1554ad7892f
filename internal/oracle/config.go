// Package oracle provides the reasoning-service capability used by the
// classification and resolution stages, plus its model configuration.
package oracle

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: driver-match resolution
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: development guidance
	TierAdvanced ModelTier = "advanced"
)

// Provider represents a reasoning-service provider
type Provider string

// Provider constants define supported providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the oracle client.
// Timeout bounds each individual call; a call exceeding it resolves to a
// ServiceError exactly like a network failure.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	Timeout  time.Duration
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Timeout: 90 * time.Second,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithTimeout returns a copy of the config with a different per-call timeout.
func (c *Config) WithTimeout(d time.Duration) *Config {
	out := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)),
		Timeout:  d,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	return out
}
