package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ask-router/internal/llm"
	"ask-router/internal/search"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// echoClient answers deterministically with its inputs.
type echoClient struct{}

func (echoClient) Answer(_ context.Context, question, contextText string) (string, error) {
	return fmt.Sprintf("ANSWER:%s|%s", question, contextText), nil
}

func TestAskWithoutSearchEchoesEmptyContext(t *testing.T) {
	a := New(echoClient{}, nil, discardLogger())

	reply := a.Ask(context.Background(), "What is the capital of France?", false)

	assert.Equal(t, "ANSWER:What is the capital of France?|", reply.Answer)
	assert.NoError(t, reply.Err)
	assert.Equal(t, search.StatusSkipped, reply.Search.Status)
}

func TestAskWithoutSearchNeverCallsSearch(t *testing.T) {
	client := new(llm.MockClient)
	searcher := new(search.MockProvider)
	client.On("Answer", mock.Anything, "q", "").Return("a", nil).Once()

	reply := New(client, searcher, discardLogger()).Ask(context.Background(), "q", false)

	assert.Equal(t, "a", reply.Answer)
	client.AssertExpectations(t)
	searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestAskWithSearchPassesContextVerbatim(t *testing.T) {
	tests := []struct {
		name        string
		result      search.Result
		wantContext string
	}{
		{"found", search.Result{Status: search.StatusFound, Text: "[snippet: s, title: t, link: l]"}, "[snippet: s, title: t, link: l]"},
		{"no results sentinel", search.Result{Status: search.StatusEmpty}, search.NoResults},
		{"failed sentinel", search.Result{Status: search.StatusFailed, Err: errors.New("down")}, search.FailedSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var order []string
			client := new(llm.MockClient)
			searcher := new(search.MockProvider)
			searcher.On("Search", mock.Anything, "Who wrote Go?").
				Run(func(mock.Arguments) { order = append(order, "search") }).
				Return(tt.result).Once()
			client.On("Answer", mock.Anything, "Who wrote Go?", tt.wantContext).
				Run(func(mock.Arguments) { order = append(order, "answer") }).
				Return("Griesemer, Pike, Thompson", nil).Once()

			reply := New(client, searcher, discardLogger()).Ask(context.Background(), "Who wrote Go?", true)

			require.NoError(t, reply.Err)
			assert.Equal(t, "Griesemer, Pike, Thompson", reply.Answer)
			assert.Equal(t, tt.result.Status, reply.Search.Status)
			assert.Equal(t, []string{"search", "answer"}, order)
			client.AssertExpectations(t)
			searcher.AssertExpectations(t)
		})
	}
}

func TestAskSearchWithoutProviderIsSkipped(t *testing.T) {
	reply := New(echoClient{}, nil, discardLogger()).Ask(context.Background(), "q", true)

	assert.Equal(t, "ANSWER:q|", reply.Answer)
	assert.Equal(t, search.StatusSkipped, reply.Search.Status)
}

func TestAskAnswerFailureIsFlattened(t *testing.T) {
	providerErr := &llm.ProviderError{Provider: llm.ProviderLocal, Kind: llm.KindRejected, StatusCode: 500, Body: "boom"}
	client := new(llm.MockClient)
	client.On("Answer", mock.Anything, "q", "").Return("", providerErr).Once()

	reply := New(client, nil, discardLogger()).Ask(context.Background(), "q", false)

	assert.Equal(t, "Error: 500 - boom", reply.Answer)
	var pe *llm.ProviderError
	require.True(t, errors.As(reply.Err, &pe))
	assert.Equal(t, llm.KindRejected, pe.Kind)
	client.AssertExpectations(t)
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	client := new(llm.MockClient)
	searcher := new(search.MockProvider)

	reply := New(client, searcher, discardLogger()).Ask(context.Background(), "   ", true)

	assert.ErrorIs(t, reply.Err, ErrEmptyQuestion)
	assert.Equal(t, ErrEmptyQuestion.Error(), reply.Answer)
	client.AssertNotCalled(t, "Answer", mock.Anything, mock.Anything, mock.Anything)
	searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestAskIsIdempotent(t *testing.T) {
	searcher := new(search.MockProvider)
	searcher.On("Search", mock.Anything, "q").Return(search.Result{Status: search.StatusFound, Text: "ctx"}).Twice()
	a := New(echoClient{}, searcher, discardLogger())

	first := a.Ask(context.Background(), "q", true)
	second := a.Ask(context.Background(), "q", true)

	assert.Equal(t, first, second)
	assert.Equal(t, "ANSWER:q|ctx", first.Answer)
	searcher.AssertExpectations(t)
}
