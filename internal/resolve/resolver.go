// Package resolve runs the per-component driver-resolution chain: query the
// oracle for existing driver matches and, when nothing is found, escalate to
// development guidance.
package resolve

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/davidm/driver-scout/internal/oracle"
	"github.com/davidm/driver-scout/internal/prompts"
	"github.com/davidm/driver-scout/internal/types"
)

// notFoundPhrase is the escalation trigger. A finding escalates to guidance
// iff its lowercased text contains this substring or is empty after
// trimming. The phrase match is deliberately narrow: negative findings
// worded differently count as "found". This mirrors the documented
// detection rule and is not to be broadened silently.
const notFoundPhrase = "no specific drivers found"

// SnippetSource supplies web search snippets for a set of search terms.
// *Searcher implements it; tests substitute fakes.
type SnippetSource interface {
	DriverSnippets(ctx context.Context, terms string) ([]string, error)
}

// Resolver resolves driver findings for components.
type Resolver struct {
	oracle oracle.Client
	search SnippetSource
}

// New creates a Resolver. search may be nil; resolution then runs
// oracle-only.
func New(client oracle.Client, search SnippetSource) *Resolver {
	return &Resolver{oracle: client, search: search}
}

// Resolve produces the driver finding for one component, escalating to
// guidance when the finding triggers the not-found rule. It never returns
// an error: service failures are folded into the finding/guidance text so
// one component's failure cannot abort the others.
func (r *Resolver) Resolve(ctx context.Context, comp types.Component) types.Resolution {
	finding, err := r.oracle.Query(ctx, r.buildResolvePrompt(ctx, comp), oracle.TierStandard)
	if err != nil {
		finding = "Driver search failed: " + err.Error()
	}

	res := types.Resolution{Component: comp, Finding: finding}
	if NeedsGuidance(finding) {
		res.Guidance = r.generateGuidance(ctx, comp, finding)
	}
	return res
}

// NeedsGuidance reports whether a finding escalates to the guidance stage:
// the text contains the literal not-found phrase (case-insensitive) or is
// empty/whitespace-only.
func NeedsGuidance(finding string) bool {
	if strings.TrimSpace(finding) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(finding), notFoundPhrase)
}

func (r *Resolver) buildResolvePrompt(ctx context.Context, comp types.Component) string {
	searchResults := ""
	if r.search != nil {
		if snippets, err := r.search.DriverSnippets(ctx, SearchTerms(comp)); err == nil && len(snippets) > 0 {
			searchResults = "\nWeb search results:\n" + strings.Join(snippets, "\n") + "\n"
		}
	}

	template := prompts.MustGet("resolve.json", "resolve-driver")
	return prompts.Format(template, map[string]string{
		"ComponentType": comp.Type,
		"SearchTerms":   SearchTerms(comp),
		"Details":       detailsJSON(comp),
		"SearchResults": searchResults,
	})
}

func (r *Resolver) generateGuidance(ctx context.Context, comp types.Component, finding string) string {
	template := prompts.MustGet("resolve.json", "generate-guidance")
	prompt := prompts.Format(template, map[string]string{
		"ComponentType": comp.Type,
		"Details":       detailsJSON(comp),
		"Finding":       finding,
	})

	guidance, err := r.oracle.Query(ctx, prompt, oracle.TierAdvanced)
	if err != nil {
		return "Guidance generation failed: " + err.Error()
	}
	return guidance
}

// SearchTerms joins the component type with all attribute values, in
// attribute-name order so the query is deterministic.
func SearchTerms(comp types.Component) string {
	terms := []string{comp.Type}

	names := make([]string, 0, len(comp.Details))
	for name := range comp.Details {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if v := strings.TrimSpace(comp.Details[name]); v != "" {
			terms = append(terms, v)
		}
	}
	return strings.Join(terms, " ")
}

func detailsJSON(comp types.Component) string {
	data, err := json.MarshalIndent(comp.Details, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
