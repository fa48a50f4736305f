package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lifo-app/lifo-server/internal/domain"
	"github.com/lifo-app/lifo-server/internal/store"
)

// ChatService orchestrates one conversation turn: profile load, prompt
// assembly, primary completion, response policy, then the best-effort
// enrichment side effects (conversation log, insight extraction).
// It holds no per-request state; all state lives in the external store.
type ChatService struct {
	llm           domain.LLMClient
	profiles      domain.ProfileStore      // nil disables personalization
	conversations domain.ConversationStore // nil disables the journal log
	threshold     int
	logger        *zap.Logger
}

func NewChatService(llmClient domain.LLMClient, profiles domain.ProfileStore, conversations domain.ConversationStore, threshold int, logger *zap.Logger) *ChatService {
	return &ChatService{
		llm:           llmClient,
		profiles:      profiles,
		conversations: conversations,
		threshold:     threshold,
		logger:        logger,
	}
}

type ChatInput struct {
	UserID         string
	CurrentMessage string
	History        []domain.ConversationTurn
	Mode           domain.Mode
}

// Respond runs the full pipeline for one request and returns the final
// answer. Validation and primary-completion errors abort the request;
// profile and extraction failures degrade silently.
func (s *ChatService) Respond(ctx context.Context, in ChatInput) (string, error) {
	if in.UserID == "" {
		return "", ErrUserIDMissing
	}
	if !domain.ValidMode(string(in.Mode)) {
		return "", ErrInvalidPromptType
	}

	var profile *domain.UserProfile
	if in.Mode == domain.ModeInterview {
		profile = s.loadProfile(ctx, in.UserID)
	}

	messages, err := AssembleMessages(in.Mode, in.History, in.CurrentMessage, profile)
	if err != nil {
		return "", err
	}

	raw, err := s.llm.Complete(ctx, messages, completionOptions(in.Mode))
	if err != nil {
		return "", fmt.Errorf("primary completion: %w", err)
	}

	answer := ApplySummaryOffer(in.Mode, raw, len(in.History), s.threshold)

	switch in.Mode {
	case domain.ModeSummary:
		s.persistSummary(ctx, in.UserID, raw)
	case domain.ModeInterview:
		s.recordExchange(ctx, in.UserID, domain.ConversationTurn{
			UserMessage: in.CurrentMessage,
			AIResponse:  answer,
		})
		s.extractInsights(ctx, in.History, in.CurrentMessage, answer, in.UserID)
	}

	return answer, nil
}

// loadProfile is best-effort: any store failure degrades to "no
// profile" so the answer still goes out without personalization.
func (s *ChatService) loadProfile(ctx context.Context, userID string) *domain.UserProfile {
	if s.profiles == nil {
		return nil
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("profile load failed, continuing without personalization",
				zap.String("user_id", userID), zap.Error(err))
		}
		return nil
	}
	return profile
}

// persistSummary overwrites the profile's latest self-narrative with
// the verbatim summary answer. A write failure does not alter the
// answer returned to the caller.
func (s *ChatService) persistSummary(ctx context.Context, userID, summary string) {
	if s.profiles == nil {
		return
	}

	patch := domain.ProfilePatch{LastSummary: &summary}
	if err := s.profiles.Merge(ctx, userID, patch); err != nil {
		s.logger.Warn("summary profile write failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// recordExchange appends the finished exchange to the user's journal
// log, best-effort.
func (s *ChatService) recordExchange(ctx context.Context, userID string, turn domain.ConversationTurn) {
	if s.conversations == nil {
		return
	}

	if err := s.conversations.Append(ctx, userID, turn); err != nil {
		s.logger.Warn("conversation log append failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// ListConversations returns the user's journal log, oldest first.
func (s *ChatService) ListConversations(ctx context.Context, userID string) ([]domain.ConversationRecord, error) {
	if userID == "" {
		return nil, ErrUserIDMissing
	}
	if s.conversations == nil {
		return []domain.ConversationRecord{}, nil
	}
	return s.conversations.ListByUser(ctx, userID)
}
