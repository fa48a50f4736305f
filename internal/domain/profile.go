package domain

import "time"

// UserProfile is the per-user personalization state derived from past
// turns. Set-valued fields only ever grow by union merge; LastSummary is
// overwritten on each summary-mode completion.
type UserProfile struct {
	FrequentEmotions []string  `json:"frequent_emotions"`
	FrequentValues   []string  `json:"frequent_values"`
	LastSummary      string    `json:"last_summary,omitempty"`
	ToneHistory      []string  `json:"tone_history"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProfilePatch is a partial profile write. Slice fields are combined
// into the stored document by set union; LastSummary, when non-nil,
// replaces the stored value. Fields left zero are not touched.
type ProfilePatch struct {
	Emotions    []string
	Values      []string
	Tones       []string
	LastSummary *string
}

// Empty reports whether the patch would write nothing.
func (p ProfilePatch) Empty() bool {
	return len(p.Emotions) == 0 && len(p.Values) == 0 && len(p.Tones) == 0 && p.LastSummary == nil
}
