package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lifo-app/lifo-server/internal/domain"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Store persists user profiles and conversation logs in Firestore,
// namespaced under artifacts/{appID}/users/{userID}. The union-merge
// semantics of profile writes are delegated to Firestore's document
// merge and ArrayUnion primitives, so concurrent merges for one user
// never clobber each other's set members.
type Store struct {
	client *firestore.Client
	appID  string
}

// NewStore creates a Firestore store for the given project and app
// namespace. Both identifiers are required; callers that lack them
// should run without a store rather than fail.
func NewStore(ctx context.Context, projectID, appID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}
	if appID == "" {
		return nil, fmt.Errorf("appID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client, appID: appID}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) userDoc(userID string) *firestore.DocumentRef {
	return s.client.Collection("artifacts").Doc(s.appID).Collection("users").Doc(userID)
}

func (s *Store) profileDoc(userID string) *firestore.DocumentRef {
	return s.userDoc(userID).Collection("profile").Doc("current")
}

func (s *Store) conversationsCol(userID string) *firestore.CollectionRef {
	return s.userDoc(userID).Collection("conversations")
}

type profileDoc struct {
	FrequentEmotions []string  `firestore:"frequent_emotions"`
	FrequentValues   []string  `firestore:"frequent_values"`
	LastSummary      string    `firestore:"last_summary"`
	ToneHistory      []string  `firestore:"tone_history"`
	UpdatedAt        time.Time `firestore:"updated_at"`
}

type conversationDoc struct {
	UserID      string    `firestore:"user_id"`
	UserMessage string    `firestore:"user_message"`
	AIResponse  string    `firestore:"ai_response"`
	CreatedAt   time.Time `firestore:"created_at,serverTimestamp"`
}

// Get loads the profile document for userID. Returns ErrNotFound when
// the user has no profile yet.
func (s *Store) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	snap, err := s.profileDoc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("firestore get profile: %w", err)
	}

	var doc profileDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore decode profile: %w", err)
	}

	return &domain.UserProfile{
		FrequentEmotions: doc.FrequentEmotions,
		FrequentValues:   doc.FrequentValues,
		LastSummary:      doc.LastSummary,
		ToneHistory:      doc.ToneHistory,
		UpdatedAt:        doc.UpdatedAt,
	}, nil
}

// Merge applies patch to the profile document, creating it if absent.
// Set-valued fields combine by ArrayUnion, last_summary is replaced,
// updated_at is refreshed by the server clock. Fields missing from the
// patch are left untouched.
func (s *Store) Merge(ctx context.Context, userID string, patch domain.ProfilePatch) error {
	if patch.Empty() {
		return nil
	}

	data := map[string]any{
		"updated_at": firestore.ServerTimestamp,
	}
	if len(patch.Emotions) > 0 {
		data["frequent_emotions"] = firestore.ArrayUnion(toAnySlice(patch.Emotions)...)
	}
	if len(patch.Values) > 0 {
		data["frequent_values"] = firestore.ArrayUnion(toAnySlice(patch.Values)...)
	}
	if len(patch.Tones) > 0 {
		data["tone_history"] = firestore.ArrayUnion(toAnySlice(patch.Tones)...)
	}
	if patch.LastSummary != nil {
		data["last_summary"] = *patch.LastSummary
	}

	if _, err := s.profileDoc(userID).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore merge profile: %w", err)
	}
	return nil
}

// Append adds one exchange to the user's conversation log.
func (s *Store) Append(ctx context.Context, userID string, turn domain.ConversationTurn) error {
	doc := conversationDoc{
		UserID:      userID,
		UserMessage: turn.UserMessage,
		AIResponse:  turn.AIResponse,
	}

	if _, _, err := s.conversationsCol(userID).Add(ctx, doc); err != nil {
		return fmt.Errorf("firestore append conversation: %w", err)
	}
	return nil
}

// ListByUser returns the user's conversation log ordered oldest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]domain.ConversationRecord, error) {
	q := s.conversationsCol(userID).OrderBy("created_at", firestore.Asc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []domain.ConversationRecord
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore list conversations: %w", err)
		}

		var doc conversationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("firestore decode conversation: %w", err)
		}

		out = append(out, domain.ConversationRecord{
			ID:          snap.Ref.ID,
			UserID:      doc.UserID,
			UserMessage: doc.UserMessage,
			AIResponse:  doc.AIResponse,
			CreatedAt:   doc.CreatedAt,
		})
	}
	return out, nil
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
