package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the assistant and its providers.
type Config struct {
	// Server
	Port           int           `env:"PORT" envDefault:"8080"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"` // applies to outbound search and local LLM calls

	// LLM
	LLMProvider   string `env:"LLM_PROVIDER" envDefault:"openai"` // "openai" (hosted API) or "local" (self-hosted /generate endpoint)
	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	LLMModel      string `env:"LLM_MODEL" envDefault:"gpt-4.1"`
	LocalLLMURL   string `env:"LOCAL_LLM_URL" envDefault:"http://localhost:8000"`

	// Search
	SearchProvider   string `env:"SEARCH_PROVIDER" envDefault:"duckduckgo"` // "duckduckgo", "tavily", "serpapi" or "none"
	SearchMaxResults int    `env:"SEARCH_MAX_RESULTS" envDefault:"5"`
	TavilyKey        string `env:"TAVILY_API_KEY"`
	SerpAPIKey       string `env:"SERPAPI_API_KEY"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
