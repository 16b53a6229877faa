package provider

import (
	"context"
)

// ChatClient sends a conversation to an LLM backend and returns the text of
// its reply. Implementations must not retain messages after Chat returns.
type ChatClient interface {
	Chat(ctx context.Context, systemPrompt string, messages []Message) (string, error)
}

// Named is implemented by clients that can report which backend they use.
type Named interface {
	Name() string
}

// NameOf returns the backend name of c, or "unknown".
func NameOf(c ChatClient) string {
	if n, ok := c.(Named); ok {
		return n.Name()
	}
	return "unknown"
}

// ChatFunc adapts a function to ChatClient.
type ChatFunc func(ctx context.Context, systemPrompt string, messages []Message) (string, error)

// Chat implements ChatClient.
func (f ChatFunc) Chat(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	return f(ctx, systemPrompt, messages)
}
