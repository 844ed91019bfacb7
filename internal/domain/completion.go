package domain

import "context"

// Message roles understood by every completion provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn sent to the completion service.
type Message struct {
	Role    string
	Content string
}

// CompletionRequest is a provider-neutral chat completion call.
// Model is chosen by the provider adapter, not by the caller.
type CompletionRequest struct {
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// CompletionResult is the first choice's plain text plus token usage.
type CompletionResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Completer is the text-completion contract. Implementations wrap
// provider failures with ErrCompletionProviderError.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error)
}
