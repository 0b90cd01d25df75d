package assistant

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"ask-router/internal/llm"
	"ask-router/internal/search"
)

// ErrEmptyQuestion is returned for blank questions; no provider is called.
var ErrEmptyQuestion = errors.New("question must not be empty")

// Reply is the outcome of one Ask. Answer is always set: the generated text on success,
// a readable failure description otherwise. Err carries the typed failure for callers that branch on it.
type Reply struct {
	Answer string
	Search search.Result
	Err    error
}

// Assistant sequences an optional search and a mandatory answer step.
// It is bound to one llm.Client; switching backends means building a new Assistant.
type Assistant struct {
	llm    llm.Client
	search search.Provider
	log    *slog.Logger
}

// New builds an Assistant. searcher may be nil, in which case search requests are skipped.
func New(client llm.Client, searcher search.Provider, log *slog.Logger) *Assistant {
	if log == nil {
		log = slog.Default()
	}
	return &Assistant{llm: client, search: searcher, log: log}
}

// Ask answers question, searching first when useSearch is set. The search result's
// context string reaches the answer step unexamined, sentinels included.
func (a *Assistant) Ask(ctx context.Context, question string, useSearch bool) Reply {
	log := a.log.With("ask_id", uuid.NewString())

	if strings.TrimSpace(question) == "" {
		log.Warn("rejected empty question")
		return Reply{Answer: ErrEmptyQuestion.Error(), Search: search.Result{Status: search.StatusSkipped}, Err: ErrEmptyQuestion}
	}

	res := search.Result{Status: search.StatusSkipped}
	if useSearch {
		if a.search == nil {
			log.Warn("search requested but no search provider configured")
		} else {
			res = a.search.Search(ctx, question)
			log.Info("search finished", "status", res.Status)
		}
	}

	log.Info("generating response", "question", question)
	answer, err := a.llm.Answer(ctx, question, res.Context())
	if err != nil {
		log.Error("answer failed", "err", err)
		return Reply{Answer: llm.Message(err), Search: res, Err: err}
	}

	log.Info("response received")
	return Reply{Answer: answer, Search: res}
}
