package search

import (
	"context"
	"fmt"

	g "github.com/serpapi/google-search-results-golang"
)

// SerpAPI searches Google through SerpApi and keeps organic results.
type SerpAPI struct {
	apiKey string
}

func NewSerpAPI(apiKey string) *SerpAPI {
	return &SerpAPI{apiKey: apiKey}
}

func (s *SerpAPI) Name() string { return "serpapi" }

// Query blocks until SerpApi answers; the client library takes no context.
func (s *SerpAPI) Query(ctx context.Context, query string, limit int) ([]Hit, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("SerpApi API key is not set")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parameter := map[string]string{
		"engine": "google",
		"q":      query,
		"hl":     "en",
		"num":    fmt.Sprint(limit),
	}
	search := g.NewGoogleSearch(parameter, s.apiKey)
	results, err := search.GetJSON()
	if err != nil {
		return nil, fmt.Errorf("serpapi search failed: %w", err)
	}
	return organicHits(results, limit), nil
}

// organicHits reads the organic_results node, skipping entries without title or link.
func organicHits(results map[string]interface{}, limit int) []Hit {
	organic, ok := results["organic_results"].([]interface{})
	if !ok {
		return nil
	}

	var hits []Hit
	for _, item := range organic {
		res, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		title, _ := res["title"].(string)
		link, _ := res["link"].(string)
		snippet, _ := res["snippet"].(string)
		if title == "" || link == "" {
			continue
		}
		hits = append(hits, Hit{Title: title, URL: link, Snippet: snippet})
		if len(hits) == limit {
			break
		}
	}
	return hits
}
