package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient calls the OpenAI Chat Completions API.
type OpenAIClient struct {
	model  openai.ChatModel
	client *openai.Client
	log    *slog.Logger
}

const (
	defaultChatTimeout = 60 * time.Second
	defaultChatModel   = openai.ChatModel("gpt-4.1")
)

// NewOpenAIClient builds a client against api.openai.com unless opts override the base URL.
// The key is never read from the environment here; callers source it.
func NewOpenAIClient(apiKey string, model openai.ChatModel, log *slog.Logger, opts ...option.RequestOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai api key required", ErrConfiguration)
	}
	if model == "" {
		model = defaultChatModel
	}
	if log == nil {
		log = slog.Default()
	}
	// Single attempt; the SDK retries twice by default.
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	cli := openai.NewClient(reqOpts...)
	return &OpenAIClient{
		model:  model,
		client: &cli,
		log:    log.With("provider", ProviderOpenAI, "model", string(model)),
	}, nil
}

func (c *OpenAIClient) Answer(ctx context.Context, question, contextText string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultChatTimeout)
	defer cancel()

	c.log.Info("querying openai", "question", question)
	resp, err := c.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: buildMessages(BuildPrompt(question, contextText)),
	})
	if err != nil {
		c.log.Error("openai query failed", "err", err)
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.log.Warn("openai returned no choices")
		return "", &ProviderError{Provider: ProviderOpenAI, Kind: KindEmpty, Err: errors.New("no choices returned")}
	}
	answer := resp.Choices[0].Message.Content
	c.log.Debug("openai response received", "answer", answer)
	return answer, nil
}

func buildMessages(prompt string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(prompt),
				},
			},
		},
	}
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{
			Provider:   ProviderOpenAI,
			Kind:       KindRejected,
			StatusCode: apiErr.StatusCode,
			Err:        err,
		}
	}
	return &ProviderError{Provider: ProviderOpenAI, Kind: KindTransport, Err: err}
}
