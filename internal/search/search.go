// Package search gathers web-search context for a question.
//
// Engines talk to a concrete search backend and return hits or an error. Client wraps an
// Engine into a Provider whose Search never fails: transport errors and empty result sets
// come back as a Result with a distinct Status and a context string that is always usable.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Status reports how a search ended.
type Status string

const (
	StatusSkipped Status = "skipped"
	StatusFound   Status = "found"
	StatusEmpty   Status = "empty"
	StatusFailed  Status = "failed"
)

// Context strings used when a search produced nothing usable.
const (
	NoResults    = "No search results found."
	FailedSearch = "An error occurred during the web search."
)

const (
	DefaultMaxResults = 5
	maxResultsCap     = 10
)

// Result is the outcome of one search. Err is set only for StatusFailed.
type Result struct {
	Status Status
	Text   string
	Err    error
}

// Context returns the text to inject into the prompt.
func (r Result) Context() string {
	switch r.Status {
	case StatusFound:
		return r.Text
	case StatusEmpty:
		return NoResults
	case StatusFailed:
		return FailedSearch
	default:
		return ""
	}
}

// Provider produces background text for a query.
type Provider interface {
	Search(ctx context.Context, query string) Result
}

// Hit is a single search result from any engine.
type Hit struct {
	Title   string
	URL     string
	Snippet string
}

// Engine is a concrete search backend.
type Engine interface {
	Name() string
	Query(ctx context.Context, query string, limit int) ([]Hit, error)
}

// Client adapts an Engine to Provider.
type Client struct {
	engine Engine
	limit  int
	log    *slog.Logger
}

// New wraps engine. limit is clamped to 1..10, defaulting to 5.
func New(engine Engine, limit int, log *slog.Logger) *Client {
	if limit <= 0 || limit > maxResultsCap {
		limit = DefaultMaxResults
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		engine: engine,
		limit:  limit,
		log:    log.With("search_provider", engine.Name()),
	}
}

// Name reports the underlying engine.
func (c *Client) Name() string { return c.engine.Name() }

func (c *Client) Search(ctx context.Context, query string) Result {
	c.log.Info("performing web search", "query", query)
	hits, err := c.engine.Query(ctx, query, c.limit)
	if err != nil {
		c.log.Error("web search failed", "err", err)
		return Result{Status: StatusFailed, Err: err}
	}
	text := Format(hits)
	if text == "" {
		c.log.Warn("no search results found")
		return Result{Status: StatusEmpty}
	}
	c.log.Debug("search results found", "count", len(hits))
	return Result{Status: StatusFound, Text: text}
}

// Format serializes hits as "[snippet: S, title: T, link: L], [...]", skipping blank hits.
func Format(hits []Hit) string {
	parts := make([]string, 0, len(hits))
	for _, h := range hits {
		if h.Title == "" && h.Snippet == "" && h.URL == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[snippet: %s, title: %s, link: %s]", h.Snippet, h.Title, h.URL))
	}
	return strings.Join(parts, ", ")
}
