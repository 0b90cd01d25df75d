package app

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ask-router/internal/config"
	"ask-router/internal/llm"
	"ask-router/internal/search"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildLLM(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.Config
		wantType   any
		wantConfig bool
	}{
		{
			name:       "openai without key fails",
			cfg:        config.Config{LLMProvider: "openai"},
			wantConfig: true,
		},
		{
			name:     "openai with key",
			cfg:      config.Config{LLMProvider: "openai", OpenAIKey: "sk-test", LLMModel: "gpt-4.1"},
			wantType: &llm.OpenAIClient{},
		},
		{
			name:     "local",
			cfg:      config.Config{LLMProvider: "local", LocalLLMURL: "http://localhost:8000"},
			wantType: &llm.LocalClient{},
		},
		{
			name:       "unknown provider",
			cfg:        config.Config{LLMProvider: "claude"},
			wantConfig: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := BuildLLM(tt.cfg, discardLogger(), http.DefaultClient)
			if tt.wantConfig {
				require.Error(t, err)
				assert.True(t, errors.Is(err, llm.ErrConfiguration), "expected ErrConfiguration, got %v", err)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, client)
		})
	}
}

func TestBuildLLMReadsNoEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	_, err := BuildLLM(config.Config{LLMProvider: "openai"}, discardLogger(), http.DefaultClient)
	assert.ErrorIs(t, err, llm.ErrConfiguration)
}

func TestBuildSearch(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantNil  bool
		wantErr  bool
	}{
		{name: "duckduckgo", cfg: config.Config{SearchProvider: "duckduckgo"}, wantName: "duckduckgo"},
		{name: "tavily", cfg: config.Config{SearchProvider: "tavily", TavilyKey: "k"}, wantName: "tavily"},
		{name: "tavily without key", cfg: config.Config{SearchProvider: "tavily"}, wantErr: true},
		{name: "serpapi", cfg: config.Config{SearchProvider: "serpapi", SerpAPIKey: "k"}, wantName: "serpapi"},
		{name: "serpapi without key", cfg: config.Config{SearchProvider: "serpapi"}, wantErr: true},
		{name: "none", cfg: config.Config{SearchProvider: "none"}, wantNil: true},
		{name: "unknown", cfg: config.Config{SearchProvider: "bing"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := BuildSearch(tt.cfg, discardLogger(), http.DefaultClient)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, provider)
				return
			}
			client, ok := provider.(*search.Client)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, client.Name())
		})
	}
}

func TestBuildWith(t *testing.T) {
	cfg := config.Config{LLMProvider: "local", SearchProvider: "none"}
	deps, err := BuildWith(cfg, discardLogger())
	require.NoError(t, err)
	assert.NotNil(t, deps.Assistant)
	assert.Nil(t, deps.Search)

	_, err = BuildWith(config.Config{LLMProvider: "openai", SearchProvider: "none"}, discardLogger())
	assert.ErrorIs(t, err, llm.ErrConfiguration)
}
