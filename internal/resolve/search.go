package resolve

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Searcher gathers web search snippets used to ground the resolution
// prompt. It is optional: when no search credentials are configured the
// resolver runs oracle-only.
type Searcher struct {
	svc *customsearch.Service
	cx  string
}

// NewSearcher creates a Searcher backed by Google Custom Search.
func NewSearcher(ctx context.Context, apiKey, cx string) (*Searcher, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Searcher{svc: svc, cx: cx}, nil
}

// DriverSnippets returns formatted title+snippet lines for the top results
// of a driver search on the given terms.
func (s *Searcher) DriverSnippets(ctx context.Context, terms string) ([]string, error) {
	query := terms + " linux driver"
	resp, err := s.svc.Cse.List().Context(ctx).Cx(s.cx).Q(query).Num(5).Do()
	if err != nil {
		return nil, fmt.Errorf("driver search failed: %w", err)
	}

	var snippets []string
	for _, item := range resp.Items {
		snippet := strings.TrimSpace(item.Snippet)
		if snippet == "" {
			continue
		}
		snippets = append(snippets, fmt.Sprintf("- %s (%s): %s", item.Title, item.Link, snippet))
	}
	return snippets, nil
}
