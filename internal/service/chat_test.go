package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/lifo-app/lifo-server/internal/domain"
	"github.com/lifo-app/lifo-server/internal/llm"
	"github.com/lifo-app/lifo-server/internal/store"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// failingStore implements the profile and conversation stores with
// configurable failures.
type failingStore struct {
	getErr    error
	mergeErr  error
	appendErr error

	mergeCalls []domain.ProfilePatch
}

func (f *failingStore) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return nil, store.ErrNotFound
}

func (f *failingStore) Merge(ctx context.Context, userID string, patch domain.ProfilePatch) error {
	f.mergeCalls = append(f.mergeCalls, patch)
	return f.mergeErr
}

func (f *failingStore) Append(ctx context.Context, userID string, turn domain.ConversationTurn) error {
	return f.appendErr
}

func (f *failingStore) ListByUser(ctx context.Context, userID string) ([]domain.ConversationRecord, error) {
	return nil, nil
}

func setupChatTest() (*ChatService, *llm.MockClient, *store.MemoryStore) {
	mockLLM := llm.NewMockClient()
	mem := store.NewMemoryStore()
	svc := NewChatService(mockLLM, mem, mem, 3, testLogger())
	return svc, mockLLM, mem
}

func TestRespond_SummaryScenario(t *testing.T) {
	svc, mockLLM, mem := setupChatTest()
	mockLLM.CompleteResponse = "오늘의 자기서사입니다."

	answer, err := svc.Respond(context.Background(), ChatInput{
		UserID: "u1",
		Mode:   domain.ModeSummary,
		History: []domain.ConversationTurn{
			{UserMessage: "피곤해요", AIResponse: "힘든 하루였군요"},
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Answer is the completion output verbatim, no suffix.
	if answer != "오늘의 자기서사입니다." {
		t.Fatalf("unexpected answer: %q", answer)
	}

	// Exactly one completion call.
	if len(mockLLM.CompleteCalls) != 1 {
		t.Fatalf("expected 1 completion call, got %d", len(mockLLM.CompleteCalls))
	}
	messages := mockLLM.CompleteCalls[0].Messages
	if len(messages) != 4 {
		// system + one history pair + final instruction
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if mockLLM.CompleteCalls[0].Opts.MaxTokens != summaryMaxTokens {
		t.Fatalf("expected summary token ceiling, got %d", mockLLM.CompleteCalls[0].Opts.MaxTokens)
	}

	// The verbatim answer became the profile's latest narrative.
	profile, err := mem.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected profile, got %v", err)
	}
	if profile.LastSummary != "오늘의 자기서사입니다." {
		t.Fatalf("unexpected last_summary: %q", profile.LastSummary)
	}
}

func TestRespond_SummaryEmptyHistoryNeverCallsCompletion(t *testing.T) {
	svc, mockLLM, _ := setupChatTest()

	_, err := svc.Respond(context.Background(), ChatInput{
		UserID: "u1",
		Mode:   domain.ModeSummary,
	})
	if !errors.Is(err, ErrHistoryEmpty) {
		t.Fatalf("expected ErrHistoryEmpty, got %v", err)
	}
	if len(mockLLM.CompleteCalls) != 0 {
		t.Fatalf("completion service must not be called, got %d calls", len(mockLLM.CompleteCalls))
	}
}

func TestRespond_Validation(t *testing.T) {
	svc, _, _ := setupChatTest()
	ctx := context.Background()

	if _, err := svc.Respond(ctx, ChatInput{Mode: domain.ModeInterview, CurrentMessage: "hi"}); !errors.Is(err, ErrUserIDMissing) {
		t.Fatalf("expected ErrUserIDMissing, got %v", err)
	}
	if _, err := svc.Respond(ctx, ChatInput{UserID: "u1", Mode: domain.Mode("poetry"), CurrentMessage: "hi"}); !errors.Is(err, ErrInvalidPromptType) {
		t.Fatalf("expected ErrInvalidPromptType, got %v", err)
	}
	if _, err := svc.Respond(ctx, ChatInput{UserID: "u1", Mode: domain.ModeInterview}); !errors.Is(err, ErrCurrentMessageEmpty) {
		t.Fatalf("expected ErrCurrentMessageEmpty, got %v", err)
	}
}

func TestRespond_InterviewSuffixAtThreshold(t *testing.T) {
	svc, mockLLM, _ := setupChatTest()
	mockLLM.Responses = []string{
		"그랬군요.",
		`{"emotions":[],"values":[],"tone":"neutral"}`,
	}

	history := []domain.ConversationTurn{
		{UserMessage: "u1", AIResponse: "a1"},
		{UserMessage: "u2", AIResponse: "a2"},
		{UserMessage: "u3", AIResponse: "a3"},
	}

	answer, err := svc.Respond(context.Background(), ChatInput{
		UserID:         "u1",
		Mode:           domain.ModeInterview,
		CurrentMessage: "요즘 잠이 안 와요",
		History:        history,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if answer != "그랬군요."+summaryOfferSuffix {
		t.Fatalf("expected suffixed answer, got %q", answer)
	}
}

func TestRespond_InterviewRunsExtractionAndMerges(t *testing.T) {
	svc, mockLLM, mem := setupChatTest()
	mockLLM.Responses = []string{
		"힘드셨겠네요.",
		`{"emotions":["피곤함"],"values":["휴식"],"tone":"negative"}`,
	}

	_, err := svc.Respond(context.Background(), ChatInput{
		UserID:         "u1",
		Mode:           domain.ModeInterview,
		CurrentMessage: "피곤해요",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(mockLLM.CompleteCalls) != 2 {
		t.Fatalf("expected primary + extraction calls, got %d", len(mockLLM.CompleteCalls))
	}
	extraction := mockLLM.CompleteCalls[1]
	if extraction.Opts.JSONSchema == nil {
		t.Fatal("extraction call must request structured output")
	}
	if extraction.Opts.Temperature != extractTemperature {
		t.Fatalf("expected extraction temperature %v, got %v", extractTemperature, extraction.Opts.Temperature)
	}

	profile, err := mem.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected profile, got %v", err)
	}
	if len(profile.FrequentEmotions) != 1 || profile.FrequentEmotions[0] != "피곤함" {
		t.Fatalf("unexpected emotions: %v", profile.FrequentEmotions)
	}
	if len(profile.ToneHistory) != 1 || profile.ToneHistory[0] != "negative" {
		t.Fatalf("unexpected tone history: %v", profile.ToneHistory)
	}

	// The exchange was appended to the journal log.
	records, err := mem.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected records, got %v", err)
	}
	if len(records) != 1 || records[0].UserMessage != "피곤해요" {
		t.Fatalf("unexpected journal log: %+v", records)
	}
}

func TestRespond_MalformedExtractionLeavesProfileUnchanged(t *testing.T) {
	svc, mockLLM, mem := setupChatTest()
	mockLLM.Responses = []string{
		"그랬군요.",
		"this is not json",
	}

	answer, err := svc.Respond(context.Background(), ChatInput{
		UserID:         "u1",
		Mode:           domain.ModeInterview,
		CurrentMessage: "피곤해요",
		History: []domain.ConversationTurn{
			{UserMessage: "u1", AIResponse: "a1"},
			{UserMessage: "u2", AIResponse: "a2"},
			{UserMessage: "u3", AIResponse: "a3"},
		},
	})
	if err != nil {
		t.Fatalf("primary answer must survive extraction failure, got %v", err)
	}
	if !strings.HasPrefix(answer, "그랬군요.") || !strings.HasSuffix(answer, summaryOfferSuffix) {
		t.Fatalf("expected suffixed primary answer, got %q", answer)
	}

	if _, err := mem.Get(context.Background(), "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("profile must be unchanged, got %v", err)
	}
}

func TestRespond_ProfileLoadFailureDegrades(t *testing.T) {
	mockLLM := llm.NewMockClient()
	mockLLM.Responses = []string{
		"괜찮아요.",
		`{"emotions":[],"values":[],"tone":"neutral"}`,
	}
	failing := &failingStore{getErr: errors.New("store down")}
	svc := NewChatService(mockLLM, failing, failing, 3, testLogger())

	answer, err := svc.Respond(context.Background(), ChatInput{
		UserID:         "u1",
		Mode:           domain.ModeInterview,
		CurrentMessage: "안녕하세요",
	})
	if err != nil {
		t.Fatalf("load failure must not abort the request, got %v", err)
	}
	if answer != "괜찮아요." {
		t.Fatalf("unexpected answer: %q", answer)
	}

	// The system message carries no personalization clauses.
	system := mockLLM.CompleteCalls[0].Messages[0]
	if system.Content != interviewSystemPrompt {
		t.Fatalf("expected bare charter without personalization")
	}
}

func TestRespond_MergeFailureDoesNotAlterAnswer(t *testing.T) {
	mockLLM := llm.NewMockClient()
	mockLLM.CompleteResponse = "요약 문장."
	failing := &failingStore{mergeErr: errors.New("merge down")}
	svc := NewChatService(mockLLM, failing, failing, 3, testLogger())

	answer, err := svc.Respond(context.Background(), ChatInput{
		UserID: "u1",
		Mode:   domain.ModeSummary,
		History: []domain.ConversationTurn{
			{UserMessage: "u", AIResponse: "a"},
		},
	})
	if err != nil {
		t.Fatalf("merge failure must not abort the request, got %v", err)
	}
	if answer != "요약 문장." {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if len(failing.mergeCalls) != 1 || failing.mergeCalls[0].LastSummary == nil {
		t.Fatalf("expected one last_summary merge attempt, got %+v", failing.mergeCalls)
	}
}

func TestRespond_PrimaryCompletionFailureIsFatal(t *testing.T) {
	svc, mockLLM, _ := setupChatTest()
	mockLLM.CompleteError = errors.New("upstream down")

	_, err := svc.Respond(context.Background(), ChatInput{
		UserID:         "u1",
		Mode:           domain.ModeInterview,
		CurrentMessage: "hi",
	})
	if err == nil {
		t.Fatal("expected error from primary completion failure")
	}
}

func TestRespond_NoStoreStillAnswers(t *testing.T) {
	mockLLM := llm.NewMockClient()
	mockLLM.CompleteResponse = "잘 듣고 있어요."
	svc := NewChatService(mockLLM, nil, nil, 3, testLogger())

	answer, err := svc.Respond(context.Background(), ChatInput{
		UserID:         "u1",
		Mode:           domain.ModeInterview,
		CurrentMessage: "hi",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if answer != "잘 듣고 있어요." {
		t.Fatalf("unexpected answer: %q", answer)
	}
	// Only the primary call: no store means no insight extraction.
	if len(mockLLM.CompleteCalls) != 1 {
		t.Fatalf("expected 1 completion call, got %d", len(mockLLM.CompleteCalls))
	}
}
