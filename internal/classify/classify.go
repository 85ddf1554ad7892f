// Package classify turns a raw device inventory into a structured component
// catalog using the reasoning oracle.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davidm/driver-scout/internal/oracle"
	"github.com/davidm/driver-scout/internal/prompts"
	"github.com/davidm/driver-scout/internal/types"
)

// Classifier submits the serialized inventory to the oracle and parses the
// response into a ComponentCatalog.
type Classifier struct {
	oracle oracle.Client
}

// New creates a Classifier over the given oracle client.
func New(client oracle.Client) *Classifier {
	return &Classifier{oracle: client}
}

// Classify maps the raw inventory to a component catalog. On oracle failure
// or a malformed response it returns an empty catalog together with a
// *classify.Error; the caller decides whether that terminates the run.
// The oracle call is never retried here.
func (c *Classifier) Classify(ctx context.Context, inv *types.RawInventory) (*types.ComponentCatalog, error) {
	prompt := buildClassifyPrompt(inv)

	response, err := c.oracle.QueryJSON(ctx, prompt, oracle.TierLite)
	if err != nil {
		return &types.ComponentCatalog{}, &Error{Message: "oracle call failed", Cause: err}
	}

	if err := validateCatalogJSON(response); err != nil {
		return &types.ComponentCatalog{}, &Error{Message: "malformed response", Cause: err}
	}

	catalog, err := decodeCatalog(response)
	if err != nil {
		return &types.ComponentCatalog{}, &Error{Message: "malformed response", Cause: err}
	}

	return catalog, nil
}

// buildClassifyPrompt serializes the inventory sections into one text blob
// and wraps it in the classification prompt template.
func buildClassifyPrompt(inv *types.RawInventory) string {
	var sb strings.Builder
	for _, section := range inv.Sections {
		sb.WriteString("## ")
		sb.WriteString(section.Label)
		sb.WriteString("\n")
		sb.WriteString(section.Text)
		sb.WriteString("\n\n")
	}

	template := prompts.MustGet("classify.json", "classify-inventory")
	return prompts.Format(template, map[string]string{
		"Inventory": sb.String(),
	})
}

// decodeCatalog parses the response object preserving the oracle's key
// emission order, which json.Unmarshal into a map would destroy. Duplicate
// component types follow mapping semantics: the last occurrence wins and
// keeps its own position. Keys that are empty after trimming are dropped,
// since a component type must be non-empty.
func decodeCatalog(jsonText string) (*types.ComponentCatalog, error) {
	dec := json.NewDecoder(strings.NewReader(jsonText))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("response is not a JSON object")
	}

	catalog := &types.ComponentCatalog{}
	position := make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading component type: %w", err)
		}
		componentType := keyTok.(string)

		var fields map[string]json.RawMessage
		if err := dec.Decode(&fields); err != nil {
			return nil, fmt.Errorf("reading details for %q: %w", componentType, err)
		}

		if strings.TrimSpace(componentType) == "" {
			continue
		}

		details := make(map[string]string, len(fields))
		for name, raw := range fields {
			details[name] = stringifyAttribute(raw)
		}

		if prev, dup := position[componentType]; dup {
			catalog.Components = append(catalog.Components[:prev], catalog.Components[prev+1:]...)
			for t, i := range position {
				if i > prev {
					position[t] = i - 1
				}
			}
		}
		position[componentType] = len(catalog.Components)
		catalog.Components = append(catalog.Components, types.Component{
			Type:    componentType,
			Details: details,
		})
	}

	return catalog, nil
}

// stringifyAttribute renders an attribute value as a string. Strings are
// used as-is; anything else (numbers, booleans, nested structures the
// oracle should not emit but sometimes does) keeps its compact JSON form.
func stringifyAttribute(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err == nil {
		return buf.String()
	}
	return strings.TrimSpace(string(raw))
}
