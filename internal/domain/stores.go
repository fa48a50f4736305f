package domain

import "context"

// ProfileStore is the external key-document store holding per-user
// personalization state. Merge must be non-destructive: set-valued
// fields combine by union, scalars replace, updated_at is refreshed by
// the store's own clock. Atomicity of the merge is delegated to the
// backing store's document-merge primitive.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*UserProfile, error)
	Merge(ctx context.Context, userID string, patch ProfilePatch) error
}

// ConversationStore persists the per-user journal log of exchanges.
type ConversationStore interface {
	Append(ctx context.Context, userID string, turn ConversationTurn) error
	ListByUser(ctx context.Context, userID string) ([]ConversationRecord, error)
}

// LLMClient is the completion service. A single call, no retries;
// transport failures and empty completions surface as errors.
type LLMClient interface {
	Complete(ctx context.Context, messages []PromptMessage, opts CompletionOptions) (string, error)
}
