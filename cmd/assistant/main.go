package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"ask-router/internal/app"
	"ask-router/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		provider       string
		model          string
		baseURL        string
		searchProvider string
		logLevel       string
	)

	cmd := &cobra.Command{
		Use:   "assistant",
		Short: "Ask a hosted or local LLM, optionally with web search context",
		Long: `Interactive assistant that routes questions to OpenAI or a self-hosted model.

Without --provider a configuration menu is shown first. In chat mode type
'menu' to switch providers and 'exit' to quit.

Examples:
  assistant
  assistant --provider local --base-url http://localhost:8000
  assistant --provider openai --search-provider none`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if provider != "" {
				cfg.LLMProvider = provider
			}
			if cmd.Flags().Changed("model") {
				cfg.LLMModel = model
			}
			if cmd.Flags().Changed("base-url") {
				cfg.LocalLLMURL = baseURL
			}
			if cmd.Flags().Changed("search-provider") {
				cfg.SearchProvider = searchProvider
			}

			log := logger.NewTo(cmd.ErrOrStderr(), logLevel)
			httpClient := &http.Client{Timeout: cfg.RequestTimeout}
			searcher, err := app.BuildSearch(cfg, log, httpClient)
			if err != nil {
				return fmt.Errorf("failed to initialize search: %w", err)
			}

			s := newSession(cfg, log, searcher, httpClient, cmd.InOrStdin(), cmd.OutOrStdout())
			return s.run(cmd.Context(), provider != "")
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "LLM provider to use without showing the menu (openai, local)")
	cmd.Flags().StringVarP(&model, "model", "m", "gpt-4.1", "OpenAI model identifier")
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8000", "Local LLM base URL")
	cmd.Flags().StringVar(&searchProvider, "search-provider", "duckduckgo", "Web search provider (duckduckgo, tavily, serpapi, none)")
	cmd.Flags().StringVar(&logLevel, "log-level", "error", "Log level (debug, info, warn, error)")
	return cmd
}
