package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultLocalURL is where the self-hosted inference service listens unless configured otherwise.
const DefaultLocalURL = "http://localhost:8000"

// LocalClient calls a self-hosted inference service over HTTP.
// Contract: POST {baseURL}/generate {"question": prompt} -> {"answer": text}.
type LocalClient struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

type generateRequest struct {
	Question string `json:"question"`
}

type generateResponse struct {
	Answer string `json:"answer"`
}

// NewLocalClient creates a client for the service at baseURL. A nil httpClient gets a 60s timeout.
func NewLocalClient(baseURL string, httpClient *http.Client, log *slog.Logger) *LocalClient {
	if baseURL == "" {
		baseURL = DefaultLocalURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if log == nil {
		log = slog.Default()
	}
	baseURL = strings.TrimRight(baseURL, "/")
	return &LocalClient{
		baseURL: baseURL,
		client:  httpClient,
		log:     log.With("provider", ProviderLocal, "base_url", baseURL),
	}
}

// BaseURL reports the normalized service address.
func (c *LocalClient) BaseURL() string { return c.baseURL }

func (c *LocalClient) Answer(ctx context.Context, question, contextText string) (string, error) {
	prompt := BuildPrompt(question, contextText)
	payload, err := json.Marshal(generateRequest{Question: prompt})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	c.log.Info("querying local llm", "question", question)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Provider: ProviderLocal, Kind: KindTransport, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("request to local llm failed", "err", err)
		return "", &ProviderError{Provider: ProviderLocal, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: ProviderLocal, Kind: KindTransport, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var out generateResponse
		if err := json.Unmarshal(body, &out); err != nil {
			c.log.Warn("local llm returned undecodable body", "err", err)
			return "", &ProviderError{Provider: ProviderLocal, Kind: KindEmpty, StatusCode: resp.StatusCode, Body: string(body), Err: err}
		}
		if out.Answer == "" {
			c.log.Warn("local llm response has no answer field")
			return "", &ProviderError{Provider: ProviderLocal, Kind: KindEmpty, StatusCode: resp.StatusCode, Body: string(body)}
		}
		return out.Answer, nil
	case http.StatusUnprocessableEntity:
		c.log.Warn("local llm rejected payload format")
		c.log.Debug("local llm validation failure", "payload", string(payload), "response", string(body))
		return "", &ProviderError{Provider: ProviderLocal, Kind: KindInvalidRequest, StatusCode: resp.StatusCode, Body: string(body)}
	default:
		c.log.Error("local llm error", "status", resp.StatusCode, "body", string(body))
		return "", &ProviderError{Provider: ProviderLocal, Kind: KindRejected, StatusCode: resp.StatusCode, Body: string(body)}
	}
}
