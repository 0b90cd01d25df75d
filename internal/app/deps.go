package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"ask-router/internal/assistant"
	"ask-router/internal/config"
	"ask-router/internal/llm"
	"ask-router/internal/logger"
	"ask-router/internal/search"
)

// Deps bundles common runtime dependencies for services.
type Deps struct {
	Config    config.Config
	Log       *slog.Logger
	LLM       llm.Client
	Search    search.Provider
	Assistant *assistant.Assistant
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return config.Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return config.Load(), nil
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return Deps{}, err
	}
	return BuildWith(cfg, logger.New(cfg.LogLevel))
}

// BuildWith wires providers and the assistant from an already loaded config.
func BuildWith(cfg config.Config, log *slog.Logger) (Deps, error) {
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	llmClient, err := BuildLLM(cfg, log, httpClient)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	searcher, err := BuildSearch(cfg, log, httpClient)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize search: %w", err)
	}
	return Deps{
		Config:    cfg,
		Log:       log,
		LLM:       llmClient,
		Search:    searcher,
		Assistant: assistant.New(llmClient, searcher, log),
	}, nil
}

// BuildLLM selects the answer provider named by cfg.LLMProvider.
func BuildLLM(cfg config.Config, log *slog.Logger, httpClient *http.Client) (llm.Client, error) {
	switch cfg.LLMProvider {
	case llm.ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is required when LLM_PROVIDER=openai", llm.ErrConfiguration)
		}
		var opts []option.RequestOption
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
		}
		client, err := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.LLMModel), log, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI LLM client", "model", cfg.LLMModel)
		return client, nil
	case llm.ProviderLocal:
		client := llm.NewLocalClient(cfg.LocalLLMURL, httpClient, log)
		log.Info("using local LLM client", "base_url", client.BaseURL())
		return client, nil
	default:
		return nil, fmt.Errorf("%w: invalid LLM_PROVIDER: %s (valid options: openai, local)", llm.ErrConfiguration, cfg.LLMProvider)
	}
}

// BuildSearch selects the search engine named by cfg.SearchProvider. "none" yields a nil Provider.
func BuildSearch(cfg config.Config, log *slog.Logger, httpClient *http.Client) (search.Provider, error) {
	var engine search.Engine
	switch cfg.SearchProvider {
	case "duckduckgo":
		engine = search.NewDuckDuckGo("", httpClient)
	case "tavily":
		if cfg.TavilyKey == "" {
			return nil, fmt.Errorf("TAVILY_API_KEY is required when SEARCH_PROVIDER=tavily")
		}
		engine = search.NewTavily(cfg.TavilyKey, "", httpClient)
	case "serpapi":
		if cfg.SerpAPIKey == "" {
			return nil, fmt.Errorf("SERPAPI_API_KEY is required when SEARCH_PROVIDER=serpapi")
		}
		engine = search.NewSerpAPI(cfg.SerpAPIKey)
	case "none", "":
		log.Info("web search disabled")
		return nil, nil
	default:
		return nil, fmt.Errorf("invalid SEARCH_PROVIDER: %s (valid options: duckduckgo, tavily, serpapi, none)", cfg.SearchProvider)
	}
	log.Info("using web search", "provider", engine.Name(), "max_results", cfg.SearchMaxResults)
	return search.New(engine, cfg.SearchMaxResults, log), nil
}
