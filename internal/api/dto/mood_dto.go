package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/mood-journal/internal/domain"
)

// MaxMoodNoteLength bounds the free-text note on a mood.
const MaxMoodNoteLength = 500

// MoodRequest payload for creating or editing a mood.
type MoodRequest struct {
	Mood domain.MoodValue `json:"mood"`
	Note string           `json:"note"`
}

// MoodResponse is the public view of a mood.
type MoodResponse struct {
	ID        string           `json:"id"`
	Mood      domain.MoodValue `json:"mood"`
	Note      string           `json:"note"`
	Timestamp time.Time        `json:"timestamp"`
}

// AnalysisResponse carries the trend summary.
type AnalysisResponse struct {
	TrendSummary string `json:"trend_summary"`
}

func (r *MoodRequest) Validate() error {
	r.Mood = domain.MoodValue(strings.ToLower(strings.TrimSpace(string(r.Mood))))
	errs := fieldErrors{}
	if r.Mood == "" {
		errs.add("mood", "Please select a mood.")
	} else if !r.Mood.Valid() {
		errs.add("mood", "Unknown mood.")
	}
	if tooLong(r.Note, MaxMoodNoteLength) {
		errs.add("note", "Note must be 500 characters or less.")
	}
	return errs.err()
}

// ToDomain builds a mood record from the request.
func (r MoodRequest) ToDomain() *domain.MoodRecord {
	return &domain.MoodRecord{Mood: r.Mood, Note: r.Note}
}

// ToMoodResponse maps a mood record.
func ToMoodResponse(m *domain.MoodRecord) MoodResponse {
	return MoodResponse{ID: m.ID, Mood: m.Mood, Note: m.Note, Timestamp: m.Timestamp}
}

// ToMoodResponses maps a collection, preserving order.
func ToMoodResponses(moods []*domain.MoodRecord) []MoodResponse {
	items := make([]MoodResponse, 0, len(moods))
	for _, m := range moods {
		items = append(items, ToMoodResponse(m))
	}
	return items
}
