// Package report aggregates synthesized artifacts into the human-readable
// summary table.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/davidm/driver-scout/internal/types"
)

// Disclaimer closes every report.
const Disclaimer = "Generated stubs are research starting points, not working drivers. Review all findings before use."

// Build renders the summary table: one row per artifact in arrival order.
// Empty input yields a header with zero rows, not an error.
func Build(artifacts []types.Artifact) string {
	var sb strings.Builder

	sb.WriteString("# Driver Scout Report\n\n")
	sb.WriteString("| Component | Details | Artifact |\n")
	sb.WriteString("| --- | --- | --- |\n")

	for _, art := range artifacts {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n",
			escapeCell(art.ComponentType),
			escapeCell(flattenDetails(art.Details)),
			escapeCell(art.ID),
		)
	}

	sb.WriteString("\n")
	sb.WriteString(Disclaimer)
	sb.WriteString("\n")
	return sb.String()
}

// flattenDetails renders attributes as "key: value" pairs joined by commas,
// in key order for determinism.
func flattenDetails(details map[string]string) string {
	if len(details) == 0 {
		return "-"
	}

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s: %s", k, details[k]))
	}
	return strings.Join(pairs, ", ")
}

// escapeCell keeps free-form text from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
