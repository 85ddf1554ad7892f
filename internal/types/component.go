// Package types provides type definitions for structured data shared across
// the driver-scout pipeline stages.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Component represents a single hardware unit identified by the classifier.
// Details is an open mapping of descriptive fields (model, vendor, chipset,
// architecture, ...) whose schema is decided by the classification oracle,
// not by this program.
type Component struct {
	Type    string            `json:"type"`
	Details map[string]string `json:"details"`
}

// ComponentCatalog is the ordered set of components found on a device.
// Order follows the oracle's emission order and is preserved through the
// pipeline so the final report is deterministic for a given response.
type ComponentCatalog struct {
	Components []Component `json:"components"`
}

// Empty reports whether the catalog holds no components.
func (c *ComponentCatalog) Empty() bool {
	return c == nil || len(c.Components) == 0
}

// Resolution is the outcome of the driver-resolution chain for one
// component. Finding is always non-empty after resolution: on service
// failure it carries an explicit error description instead of prose.
// Guidance is empty unless the finding triggered the guidance stage.
type Resolution struct {
	Component Component `json:"component"`
	Finding   string    `json:"finding"`
	Guidance  string    `json:"guidance,omitempty"`
}
