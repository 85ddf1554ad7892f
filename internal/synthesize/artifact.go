// Package synthesize turns resolutions into placeholder driver artifacts on
// disk and the records that feed the report.
package synthesize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/davidm/driver-scout/internal/types"
)

// Error represents a per-component synthesis failure. Other components'
// synthesis is unaffected by it.
type Error struct {
	ComponentType string
	Message       string
	Cause         error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("synthesis failed for %q: %s: %v", e.ComponentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("synthesis failed for %q: %s", e.ComponentType, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ArtifactID derives the stable artifact identifier for a component type:
// lowercased, internal whitespace collapsed to single underscores, prefixed
// with "driver_". Deterministic and idempotent.
func ArtifactID(componentType string) string {
	normalized := strings.ToLower(strings.TrimSpace(componentType))
	normalized = whitespaceRun.ReplaceAllString(normalized, "_")
	return "driver_" + normalized
}

// Synthesizer writes artifact stub files into an output directory. Safe for
// concurrent use; the id registry enforces per-run uniqueness.
type Synthesizer struct {
	outDir string

	mu   sync.Mutex
	seen map[string]string // artifact id -> component type that claimed it
}

// NewSynthesizer creates a Synthesizer writing under outDir. The directory
// is created on demand.
func NewSynthesizer(outDir string) *Synthesizer {
	return &Synthesizer{
		outDir: outDir,
		seen:   make(map[string]string),
	}
}

// Synthesize renders and writes the stub file for one resolution. It fails
// only on an id collision or a write failure, and the failure is scoped to
// this component.
func (s *Synthesizer) Synthesize(res types.Resolution) (*types.Artifact, error) {
	id := ArtifactID(res.Component.Type)

	s.mu.Lock()
	if claimed, ok := s.seen[id]; ok && claimed != res.Component.Type {
		s.mu.Unlock()
		return nil, &Error{
			ComponentType: res.Component.Type,
			Message:       fmt.Sprintf("artifact id %q already claimed by component %q", id, claimed),
		}
	}
	s.seen[id] = res.Component.Type
	s.mu.Unlock()

	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return nil, &Error{ComponentType: res.Component.Type, Message: "creating output directory", Cause: err}
	}

	path := filepath.Join(s.outDir, id+".c")
	if err := os.WriteFile(path, []byte(Render(res, id)), 0o644); err != nil {
		return nil, &Error{ComponentType: res.Component.Type, Message: "writing artifact file", Cause: err}
	}

	return &types.Artifact{
		ComponentType: res.Component.Type,
		Details:       res.Component.Details,
		Finding:       res.Finding,
		Guidance:      res.Guidance,
		ID:            id,
		Path:          path,
	}, nil
}

// Render composes the stub file content: a block-comment header carrying
// the component name, its details as pretty-printed JSON, the verbatim
// finding and guidance, then the placeholder marker.
func Render(res types.Resolution, id string) string {
	var sb strings.Builder

	sb.WriteString("/*\n")
	fmt.Fprintf(&sb, " * Driver placeholder for: %s\n", res.Component.Type)
	fmt.Fprintf(&sb, " * Artifact: %s\n", id)
	sb.WriteString(" *\n")

	sb.WriteString(" * Component details:\n")
	writeCommented(&sb, detailsJSON(res.Component.Details))
	sb.WriteString(" *\n")

	sb.WriteString(" * Driver search findings:\n")
	writeCommented(&sb, res.Finding)

	if res.Guidance != "" {
		sb.WriteString(" *\n")
		sb.WriteString(" * Development guidance:\n")
		writeCommented(&sb, res.Guidance)
	}

	sb.WriteString(" */\n\n")
	sb.WriteString("/* TODO: implement driver logic */\n")
	return sb.String()
}

// writeCommented emits text line by line inside the block comment. The
// comment terminator cannot appear mid-body.
func writeCommented(sb *strings.Builder, text string) {
	text = strings.ReplaceAll(text, "*/", "* /")
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString(" * ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

func detailsJSON(details map[string]string) string {
	if len(details) == 0 {
		return "{}"
	}
	data, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
