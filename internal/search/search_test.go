package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResultContext(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{"skipped", Result{Status: StatusSkipped}, ""},
		{"zero value", Result{}, ""},
		{"found", Result{Status: StatusFound, Text: "[snippet: a, title: b, link: c]"}, "[snippet: a, title: b, link: c]"},
		{"empty", Result{Status: StatusEmpty}, NoResults},
		{"failed", Result{Status: StatusFailed, Err: errors.New("down")}, FailedSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Context())
		})
	}
}

func TestClientSearch(t *testing.T) {
	tests := []struct {
		name       string
		hits       []Hit
		err        error
		wantStatus Status
		wantText   string
	}{
		{
			name: "hits are formatted",
			hits: []Hit{
				{Title: "Paris", URL: "https://en.wikipedia.org/wiki/Paris", Snippet: "Capital of France"},
				{Title: "France", URL: "https://en.wikipedia.org/wiki/France", Snippet: "Country in Europe"},
			},
			wantStatus: StatusFound,
			wantText: "[snippet: Capital of France, title: Paris, link: https://en.wikipedia.org/wiki/Paris], " +
				"[snippet: Country in Europe, title: France, link: https://en.wikipedia.org/wiki/France]",
		},
		{
			name:       "no hits is empty",
			hits:       []Hit{},
			wantStatus: StatusEmpty,
		},
		{
			name:       "blank hits are empty",
			hits:       []Hit{{}},
			wantStatus: StatusEmpty,
		},
		{
			name:       "engine error is failed",
			err:        errors.New("connection refused"),
			wantStatus: StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := new(MockEngine)
			engine.On("Query", mock.Anything, "capital of France", DefaultMaxResults).Return(tt.hits, tt.err).Once()

			client := New(engine, 0, discardLogger())
			res := client.Search(context.Background(), "capital of France")

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantText, res.Text)
			if tt.err != nil {
				assert.ErrorIs(t, res.Err, tt.err)
			} else {
				assert.NoError(t, res.Err)
			}
			engine.AssertExpectations(t)
		})
	}
}

func TestNewClampsLimit(t *testing.T) {
	engine := new(MockEngine)
	assert.Equal(t, DefaultMaxResults, New(engine, -1, nil).limit)
	assert.Equal(t, DefaultMaxResults, New(engine, 50, nil).limit)
	assert.Equal(t, 3, New(engine, 3, nil).limit)
	assert.Equal(t, "mock", New(engine, 3, nil).Name())
}
