// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/davidm/driver-scout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRawInventory outputs a summary of the collected inventory sources.
func (p *Printer) PrintRawInventory(inv *types.RawInventory) {
	if inv == nil {
		return
	}

	var sb strings.Builder
	if inv.Empty() {
		sb.WriteString("No introspection sources succeeded.")
	} else {
		sb.WriteString(fmt.Sprintf("Collected %d sources:\n\n", len(inv.Sections)))
		for _, section := range inv.Sections {
			sb.WriteString(fmt.Sprintf("  • %-20s %6d bytes\n", section.Label, len(section.Text)))
		}
	}

	p.printBox("RAW INVENTORY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCatalog outputs the classified component catalog.
func (p *Printer) PrintCatalog(catalog *types.ComponentCatalog) {
	if catalog == nil || catalog.Empty() {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Identified %d components:\n\n", len(catalog.Components)))

	count := min(len(catalog.Components), maxItemsToShow)
	for i := 0; i < count; i++ {
		comp := catalog.Components[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, comp.Type))
		if model, ok := comp.Details["model"]; ok {
			sb.WriteString(fmt.Sprintf("    Model: %s\n", model))
		}
		if vendor, ok := comp.Details["vendor"]; ok {
			sb.WriteString(fmt.Sprintf("    Vendor: %s\n", vendor))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(catalog.Components) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more components", len(catalog.Components)-maxItemsToShow))
	}

	p.printBox("COMPONENT CATALOG", sb.String())
}

// PrintResolution outputs one component's driver finding and whether the
// guidance stage ran.
func (p *Printer) PrintResolution(res types.Resolution) {
	var sb strings.Builder

	finding := res.Finding
	if len(finding) > 120 {
		finding = finding[:117] + "..."
	}
	sb.WriteString(finding)
	sb.WriteString("\n")

	if res.Guidance != "" {
		sb.WriteString("\nGuidance generated: yes")
	} else {
		sb.WriteString("\nGuidance generated: no")
	}

	p.printBox("RESOLUTION: "+res.Component.Type, sb.String())
}

// PrintArtifacts outputs the synthesized artifact files.
func (p *Printer) PrintArtifacts(artifacts []types.Artifact) {
	if len(artifacts) == 0 {
		p.printBox("ARTIFACTS", "No artifacts synthesized.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Synthesized %d artifacts:\n\n", len(artifacts)))
	for _, art := range artifacts {
		sb.WriteString(fmt.Sprintf("  • %s → %s\n", art.ComponentType, art.Path))
	}

	p.printBox("ARTIFACTS", strings.TrimSuffix(sb.String(), "\n"))
}
