package domain

import "time"

type Mode string

const (
	ModeInterview Mode = "interview"
	ModeSummary   Mode = "summary"
)

// ValidMode reports whether s names a known prompt mode. Unknown values
// are a request error, never a fallback.
func ValidMode(s string) bool {
	switch Mode(s) {
	case ModeInterview, ModeSummary:
		return true
	}
	return false
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one user-message/assistant-response pair, supplied
// by the caller oldest first and never mutated by the server.
type ConversationTurn struct {
	UserMessage string `json:"user_message"`
	AIResponse  string `json:"ai_response"`
}

// PromptMessage is one entry of the ordered sequence sent to the
// completion service. Constructed fresh per request; never persisted.
type PromptMessage struct {
	Role    Role
	Content string
}

// CompletionOptions carries the mode-dependent parameters for one
// completion call. JSONSchema, when non-nil, switches the service into
// structured-output mode constrained to that schema.
type CompletionOptions struct {
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
	MaxTokens        int
	JSONSchema       map[string]any
	SchemaName       string
}

type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

func ValidTone(s string) bool {
	switch Tone(s) {
	case TonePositive, ToneNegative, ToneNeutral:
		return true
	}
	return false
}

// ExtractionResult is the parsed structured output of the insight
// extraction call. Transient; folded into the profile and discarded.
type ExtractionResult struct {
	Emotions []string `json:"emotions" jsonschema_description:"Up to 3 emotion keywords expressed by the user"`
	Values   []string `json:"values" jsonschema_description:"Up to 2 personal-value keywords behind those emotions"`
	Tone     string   `json:"tone" jsonschema:"enum=positive,enum=negative,enum=neutral" jsonschema_description:"Overall tone of the exchange"`
}

// ConversationRecord is one persisted exchange in a user's journal log.
type ConversationRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	CreatedAt   time.Time `json:"created_at"`
}
