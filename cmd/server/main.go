package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"ask-router/internal/app"
	"ask-router/internal/assistant"
	"ask-router/internal/httputil"
	"ask-router/internal/llm"
	"ask-router/internal/search"
)

type askRequest struct {
	Question  string `json:"question" validate:"required,max=2000"`
	UseSearch bool   `json:"use_search"`
}

type askResponse struct {
	Answer string        `json:"answer"`
	Search search.Status `json:"search"`
	Error  string        `json:"error,omitempty"` // failure kind; Answer holds the readable text
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	r := httputil.NewRouter(deps.Log, deps.Config.RequestTimeout*2)
	r.Post("/api/ask", askHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deps.Log.Info("ask service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("server error", "err", err)
		os.Exit(1)
	}
}

func askHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		reply := deps.Assistant.Ask(r.Context(), req.Question, req.UseSearch)
		if errors.Is(reply.Err, assistant.ErrEmptyQuestion) {
			httputil.Fail(deps.Log, w, reply.Answer, reply.Err, http.StatusBadRequest)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, askResponse{
			Answer: reply.Answer,
			Search: reply.Search.Status,
			Error:  errorKind(reply.Err),
		})
	}
}

func errorKind(err error) string {
	if err == nil {
		return ""
	}
	var pe *llm.ProviderError
	if errors.As(err, &pe) {
		return string(pe.Kind)
	}
	return "unknown"
}
