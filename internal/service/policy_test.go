package service

import (
	"testing"

	"github.com/lifo-app/lifo-server/internal/domain"
)

func TestApplySummaryOffer_BelowThreshold(t *testing.T) {
	for turnCount := 0; turnCount < 3; turnCount++ {
		got := ApplySummaryOffer(domain.ModeInterview, "answer", turnCount, 3)
		if got != "answer" {
			t.Fatalf("turnCount=%d: expected unchanged answer, got %q", turnCount, got)
		}
	}
}

func TestApplySummaryOffer_AtAndAboveThreshold(t *testing.T) {
	want := "answer" + summaryOfferSuffix
	for _, turnCount := range []int{3, 4, 10} {
		got := ApplySummaryOffer(domain.ModeInterview, "answer", turnCount, 3)
		if got != want {
			t.Fatalf("turnCount=%d: expected suffixed answer, got %q", turnCount, got)
		}
	}
}

func TestApplySummaryOffer_SummaryModeNeverSuffixed(t *testing.T) {
	got := ApplySummaryOffer(domain.ModeSummary, "answer", 10, 3)
	if got != "answer" {
		t.Fatalf("expected unchanged answer in summary mode, got %q", got)
	}
}

func TestCompletionOptions_ModeDependent(t *testing.T) {
	interview := completionOptions(domain.ModeInterview)
	summary := completionOptions(domain.ModeSummary)

	if interview.MaxTokens != interviewMaxTokens {
		t.Fatalf("expected interview max tokens %d, got %d", interviewMaxTokens, interview.MaxTokens)
	}
	if summary.MaxTokens != summaryMaxTokens {
		t.Fatalf("expected summary max tokens %d, got %d", summaryMaxTokens, summary.MaxTokens)
	}
	if interview.Temperature != summary.Temperature {
		t.Fatalf("modes must share temperature")
	}
	if interview.JSONSchema != nil || summary.JSONSchema != nil {
		t.Fatalf("primary completion must not request structured output")
	}
}
