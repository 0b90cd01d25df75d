package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"ask-router/internal/app"
	"ask-router/internal/assistant"
	"ask-router/internal/config"
	"ask-router/internal/llm"
	"ask-router/internal/search"
)

// session drives the interactive menu and chat loop over in/out.
type session struct {
	cfg        config.Config
	log        *slog.Logger
	search     search.Provider
	httpClient *http.Client
	in         *bufio.Scanner
	out        io.Writer
	assistant  *assistant.Assistant
}

func newSession(cfg config.Config, log *slog.Logger, searcher search.Provider, httpClient *http.Client, in io.Reader, out io.Writer) *session {
	return &session{
		cfg:        cfg,
		log:        log,
		search:     searcher,
		httpClient: httpClient,
		in:         bufio.NewScanner(in),
		out:        out,
	}
}

// run alternates between configuration and chat until the user exits or input ends.
func (s *session) run(ctx context.Context, preselected bool) error {
	fmt.Fprintln(s.out, "=== AI Assistant CLI ===")

	if preselected {
		if err := s.useProvider(s.cfg); err != nil {
			fmt.Fprintf(s.out, "Could not configure %s: %s\n", s.cfg.LLMProvider, err)
			preselected = false
		}
	}
	if !preselected {
		fmt.Fprint(s.out, "Configure your LLM provider first\n\n")
		if !s.configure() {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
	}

	for {
		if s.chat(ctx) {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
		fmt.Fprintln(s.out, "\nReturning to main menu...")
		if !s.configure() {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
	}
}

// configure shows the provider menu until a provider is bound or the user backs out.
// It reports whether an assistant is available afterwards.
func (s *session) configure() bool {
	for {
		fmt.Fprintln(s.out, "\n=== LLM Configuration ===")
		fmt.Fprintln(s.out, "1. OpenAI")
		fmt.Fprintln(s.out, "2. Local LLM")
		fmt.Fprintln(s.out, "3. Back to main menu")

		choice, ok := s.prompt("Select LLM provider: ")
		if !ok {
			return false
		}

		cfg := s.cfg
		switch choice {
		case "1":
			cfg.LLMProvider = llm.ProviderOpenAI
			if cfg.OpenAIKey == "" {
				key, ok := s.prompt("Enter OpenAI API key: ")
				if !ok {
					return false
				}
				cfg.OpenAIKey = key
			}
		case "2":
			cfg.LLMProvider = llm.ProviderLocal
			def := cfg.LocalLLMURL
			if def == "" {
				def = llm.DefaultLocalURL
			}
			url, ok := s.prompt(fmt.Sprintf("Enter Local LLM base URL [%s]: ", def))
			if !ok {
				return false
			}
			if url == "" {
				url = def
			}
			cfg.LocalLLMURL = url
		case "3":
			return s.assistant != nil
		default:
			fmt.Fprintln(s.out, "Invalid selection. Please try again.")
			continue
		}

		if err := s.useProvider(cfg); err != nil {
			fmt.Fprintf(s.out, "Configuration failed: %s\n", err)
			continue
		}
		// Keep what the user entered so a later menu visit does not ask again.
		s.cfg = cfg
		switch cfg.LLMProvider {
		case llm.ProviderOpenAI:
			fmt.Fprintln(s.out, "OpenAI configured successfully!")
		case llm.ProviderLocal:
			fmt.Fprintf(s.out, "Local LLM configured at %s!\n", cfg.LocalLLMURL)
		}
		return true
	}
}

// useProvider binds a fresh Assistant to the provider described by cfg.
func (s *session) useProvider(cfg config.Config) error {
	client, err := app.BuildLLM(cfg, s.log, s.httpClient)
	if err != nil {
		return err
	}
	s.assistant = assistant.New(client, s.search, s.log)
	return nil
}

// chat runs the question loop. It returns true to quit and false to go back to the menu.
func (s *session) chat(ctx context.Context) bool {
	fmt.Fprintln(s.out, "\n=== Chat Mode ===")
	fmt.Fprintln(s.out, "Type 'menu' to return to configuration")
	fmt.Fprint(s.out, "Type 'exit' to quit\n\n")

	for {
		question, ok := s.prompt("Ask me anything: ")
		if !ok {
			return true
		}
		switch strings.ToLower(question) {
		case "exit":
			return true
		case "menu":
			return false
		case "":
			continue
		}

		answer, ok := s.prompt("Perform web search? (y/n): ")
		if !ok {
			return true
		}
		useSearch := strings.ToLower(answer) == "y"

		reply := s.assistant.Ask(ctx, question, useSearch)
		fmt.Fprintf(s.out, "\nAssistant:\n%s\n\n", reply.Answer)
	}
}

// prompt prints label and reads one trimmed line. ok is false at end of input.
func (s *session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
