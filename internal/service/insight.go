package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lifo-app/lifo-server/internal/domain"
	"github.com/lifo-app/lifo-server/internal/llm"
)

var insightSchema = llm.GenerateSchema[domain.ExtractionResult]()

// extractInsights runs the secondary, constrained completion call that
// mines emotion/value keywords and a tone label from the exchange, and
// folds the result into the profile by union merge. Enrichment only:
// every failure is logged and swallowed, never surfaced to the caller.
func (s *ChatService) extractInsights(ctx context.Context, history []domain.ConversationTurn, currentMessage, finalAnswer, userID string) {
	if s.profiles == nil {
		return
	}

	messages := []domain.PromptMessage{
		{Role: domain.RoleSystem, Content: insightSystemPrompt},
		{Role: domain.RoleUser, Content: buildExchangeTranscript(history, currentMessage, finalAnswer)},
	}

	opts := domain.CompletionOptions{
		Temperature: extractTemperature,
		TopP:        chatTopP,
		MaxTokens:   extractMaxTokens,
		JSONSchema:  insightSchema,
		SchemaName:  "insight_extraction",
	}

	raw, err := s.llm.Complete(ctx, messages, opts)
	if err != nil {
		s.logger.Warn("insight extraction call failed", zap.String("user_id", userID), zap.Error(err))
		return
	}

	result, err := decodeExtraction(raw)
	if err != nil {
		s.logger.Warn("insight extraction parse failed", zap.String("user_id", userID), zap.Error(err))
		return
	}

	patch := domain.ProfilePatch{
		Emotions: result.Emotions,
		Values:   result.Values,
		Tones:    []string{result.Tone},
	}
	if err := s.profiles.Merge(ctx, userID, patch); err != nil {
		s.logger.Warn("insight profile merge failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// buildExchangeTranscript renders the recent history plus the current
// exchange as a plain transcript for the extraction call.
func buildExchangeTranscript(history []domain.ConversationTurn, currentMessage, finalAnswer string) string {
	var sb strings.Builder
	for _, turn := range history {
		sb.WriteString("사용자: ")
		sb.WriteString(turn.UserMessage)
		sb.WriteString("\nAI: ")
		sb.WriteString(turn.AIResponse)
		sb.WriteString("\n")
	}
	sb.WriteString("사용자: ")
	sb.WriteString(currentMessage)
	sb.WriteString("\nAI: ")
	sb.WriteString(finalAnswer)
	return sb.String()
}

// decodeExtraction parses the structured output of the extraction call.
// Array fields are coerced defensively: non-array or missing fields
// become empty, and an unknown tone falls back to neutral. A parse
// failure short-circuits to "no update" rather than partially applying
// a malformed object.
func decodeExtraction(raw string) (domain.ExtractionResult, error) {
	// Strip markdown fences if present
	cleaned := strings.TrimPrefix(raw, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("parse extraction result: %w (raw: %s)", err, cleaned)
	}

	result := domain.ExtractionResult{
		Emotions: toStringSlice(obj["emotions"]),
		Values:   toStringSlice(obj["values"]),
		Tone:     string(domain.ToneNeutral),
	}
	if tone, ok := obj["tone"].(string); ok && domain.ValidTone(tone) {
		result.Tone = tone
	}
	return result, nil
}

func toStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
