package service

import "github.com/lifo-app/lifo-server/internal/domain"

// Completion parameters are fixed constants tuned for varied but
// coherent prose; they are not user-configurable.
const (
	chatTemperature      = 0.8
	chatTopP             = 1.0
	chatFrequencyPenalty = 0.0
	chatPresencePenalty  = 0.0

	interviewMaxTokens = 800
	summaryMaxTokens   = 100

	extractTemperature = 0.2
	extractMaxTokens   = 200
)

func completionOptions(mode domain.Mode) domain.CompletionOptions {
	opts := domain.CompletionOptions{
		Temperature:      chatTemperature,
		TopP:             chatTopP,
		FrequencyPenalty: chatFrequencyPenalty,
		PresencePenalty:  chatPresencePenalty,
		MaxTokens:        interviewMaxTokens,
	}
	if mode == domain.ModeSummary {
		opts.MaxTokens = summaryMaxTokens
	}
	return opts
}

// ApplySummaryOffer appends the summary-offer suffix to an interview
// answer once turnCount reaches the threshold. Summary answers are
// returned unchanged. The decision is made here, deterministically,
// so it stays reproducible independent of model variance.
func ApplySummaryOffer(mode domain.Mode, rawAnswer string, turnCount, threshold int) string {
	if mode == domain.ModeInterview && turnCount >= threshold {
		return rawAnswer + summaryOfferSuffix
	}
	return rawAnswer
}
