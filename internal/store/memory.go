package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lifo-app/lifo-server/internal/domain"
)

// MemoryStore is an in-memory implementation of the profile and
// conversation stores, used for local development and tests. It mirrors
// the Firestore adapter's merge semantics: set fields union, scalars
// replace, updated_at refreshed by the store clock.
type MemoryStore struct {
	mu            sync.RWMutex
	profiles      map[string]*domain.UserProfile
	conversations map[string][]domain.ConversationRecord
	seq           int
	now           func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:      make(map[string]*domain.UserProfile),
		conversations: make(map[string][]domain.ConversationRecord),
		now:           time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	cp.FrequentEmotions = append([]string(nil), p.FrequentEmotions...)
	cp.FrequentValues = append([]string(nil), p.FrequentValues...)
	cp.ToneHistory = append([]string(nil), p.ToneHistory...)
	return &cp, nil
}

func (s *MemoryStore) Merge(ctx context.Context, userID string, patch domain.ProfilePatch) error {
	if patch.Empty() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		p = &domain.UserProfile{}
		s.profiles[userID] = p
	}

	p.FrequentEmotions = unionAppend(p.FrequentEmotions, patch.Emotions)
	p.FrequentValues = unionAppend(p.FrequentValues, patch.Values)
	p.ToneHistory = unionAppend(p.ToneHistory, patch.Tones)
	if patch.LastSummary != nil {
		p.LastSummary = *patch.LastSummary
	}
	p.UpdatedAt = s.now()
	return nil
}

func (s *MemoryStore) Append(ctx context.Context, userID string, turn domain.ConversationTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.conversations[userID] = append(s.conversations[userID], domain.ConversationRecord{
		ID:          fmt.Sprintf("conv-%d", s.seq),
		UserID:      userID,
		UserMessage: turn.UserMessage,
		AIResponse:  turn.AIResponse,
		CreatedAt:   s.now(),
	})
	return nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]domain.ConversationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.ConversationRecord(nil), s.conversations[userID]...), nil
}

// unionAppend adds members of add that are not already in existing,
// preserving first-seen order.
func unionAppend(existing, add []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		seen[v] = struct{}{}
	}
	for _, v := range add {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		existing = append(existing, v)
	}
	return existing
}
