package llm

import (
	"context"
	"fmt"
)

// Client is a minimal LLM interface to allow pluggable providers.
// Answer returns the generated text or a *ProviderError describing why none was produced.
type Client interface {
	Answer(ctx context.Context, question, contextText string) (string, error)
}

const promptTemplate = "Question: %s\n%s\nAnswer concisely with references if available."

// BuildPrompt renders the prompt shared by every provider.
func BuildPrompt(question, contextText string) string {
	return fmt.Sprintf(promptTemplate, question, contextText)
}
