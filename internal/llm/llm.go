package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Message is one chat turn sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client abstracts an OpenAI-compatible chat-completion provider that
// returns a JSON object.
type Client interface {
	CompleteJSON(ctx context.Context, messages []Message, maxTokens int) (json.RawMessage, error)
}

// ErrNotConfigured is returned by Placeholder; callers treat it as "use the
// deterministic fallback".
var ErrNotConfigured = errors.New("llm not configured")

// Placeholder stands in when no LLM API key is configured.
type Placeholder struct{}

// CompleteJSON returns ErrNotConfigured.
func (Placeholder) CompleteJSON(ctx context.Context, messages []Message, maxTokens int) (json.RawMessage, error) {
	_ = ctx
	_ = messages
	_ = maxTokens
	return nil, ErrNotConfigured
}
