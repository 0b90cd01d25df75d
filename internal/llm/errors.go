package llm

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks a provider that cannot be built, e.g. a missing credential.
var ErrConfiguration = errors.New("llm configuration error")

// Provider names carried by ProviderError.
const (
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"
)

// Kind classifies a failed Answer call.
type Kind string

const (
	KindTransport      Kind = "transport"       // network, timeout, DNS
	KindRejected       Kind = "rejected"        // non-2xx from the backend
	KindInvalidRequest Kind = "invalid_request" // 422 from the local service
	KindEmpty          Kind = "empty"           // reachable but nothing usable came back
)

// ProviderError is the typed failure returned by Client implementations.
type ProviderError struct {
	Provider   string
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Message flattens an Answer error into the text shown to a person.
// Only boundary layers should call it; programmatic callers inspect the error instead.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return "Request failed: " + err.Error()
	}
	if pe.Kind == KindEmpty {
		return "No answer found."
	}
	if pe.Provider == ProviderOpenAI {
		return "An error occurred while querying OpenAI."
	}
	switch pe.Kind {
	case KindInvalidRequest:
		return "Error: Invalid request format"
	case KindRejected:
		return fmt.Sprintf("Error: %d - %s", pe.StatusCode, pe.Body)
	default:
		if pe.Err != nil {
			return "Request failed: " + pe.Err.Error()
		}
		return "Request failed: " + string(pe.Kind)
	}
}
