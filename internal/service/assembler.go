package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lifo-app/lifo-server/internal/domain"
)

var (
	ErrUserIDMissing       = errors.New("userId is required")
	ErrCurrentMessageEmpty = errors.New("currentMessage is required")
	ErrHistoryEmpty        = errors.New("previousConversations is required for summary")
	ErrInvalidPromptType   = errors.New("invalid promptType")
)

// AssembleMessages builds the ordered message sequence for one
// completion call. Pure function: identical inputs yield identical
// output. The sequence always starts with exactly one system message,
// followed by the history interleaved as (user, assistant) pairs in
// original order, followed by the mode-specific trailing user message.
func AssembleMessages(mode domain.Mode, history []domain.ConversationTurn, currentMessage string, profile *domain.UserProfile) ([]domain.PromptMessage, error) {
	switch mode {
	case domain.ModeInterview:
		if strings.TrimSpace(currentMessage) == "" {
			return nil, ErrCurrentMessageEmpty
		}

		messages := make([]domain.PromptMessage, 0, 2*len(history)+2)
		messages = append(messages, domain.PromptMessage{
			Role:    domain.RoleSystem,
			Content: interviewSystem(profile),
		})
		messages = appendHistory(messages, history)
		messages = append(messages, domain.PromptMessage{
			Role:    domain.RoleUser,
			Content: currentMessage,
		})
		return messages, nil

	case domain.ModeSummary:
		if len(history) == 0 {
			return nil, ErrHistoryEmpty
		}

		messages := make([]domain.PromptMessage, 0, 2*len(history)+2)
		messages = append(messages, domain.PromptMessage{
			Role:    domain.RoleSystem,
			Content: summarySystemPrompt,
		})
		messages = appendHistory(messages, history)
		messages = append(messages, domain.PromptMessage{
			Role:    domain.RoleUser,
			Content: summaryInstruction,
		})
		return messages, nil

	default:
		return nil, ErrInvalidPromptType
	}
}

// interviewSystem prefixes the behavioral charter with personalization
// clauses when the profile carries them. last_summary is surfaced
// verbatim, not re-derived.
func interviewSystem(profile *domain.UserProfile) string {
	if profile == nil {
		return interviewSystemPrompt
	}

	var sb strings.Builder
	if len(profile.FrequentEmotions) > 0 {
		sb.WriteString(fmt.Sprintf(emotionsClause, strings.Join(profile.FrequentEmotions, ", ")))
		sb.WriteString("\n")
	}
	if profile.LastSummary != "" {
		sb.WriteString(fmt.Sprintf(summaryClause, profile.LastSummary))
		sb.WriteString("\n")
	}
	if sb.Len() == 0 {
		return interviewSystemPrompt
	}
	sb.WriteString("\n")
	sb.WriteString(interviewSystemPrompt)
	return sb.String()
}

func appendHistory(messages []domain.PromptMessage, history []domain.ConversationTurn) []domain.PromptMessage {
	for _, turn := range history {
		messages = append(messages,
			domain.PromptMessage{Role: domain.RoleUser, Content: turn.UserMessage},
			domain.PromptMessage{Role: domain.RoleAssistant, Content: turn.AIResponse},
		)
	}
	return messages
}
