package dto

import (
	"math"
	"time"

	"github.com/spec-kit/mood-journal/internal/domain"
)

const (
	// MaxEntryNotesLength bounds the free-text notes on a health entry.
	MaxEntryNotesLength = 1000
	dateOnly            = "2006-01-02"
)

// EarliestEntryDate is the oldest date an entry may carry.
var EarliestEntryDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// EntryRequest payload for creating or editing a health entry. Date accepts
// "2006-01-02" or RFC 3339.
type EntryRequest struct {
	Date       string  `json:"date"`
	Sleep      float64 `json:"sleep"`
	Stress     int     `json:"stress"`
	Symptoms   int     `json:"symptoms"`
	Mood       int     `json:"mood"`
	Engagement int     `json:"engagement"`
	DrugNames  string  `json:"drugNames"`
	Notes      string  `json:"notes"`
}

// Validate checks the payload against now and returns the parsed date.
func (r EntryRequest) Validate(now time.Time) (time.Time, error) {
	errs := fieldErrors{}

	date, ok := parseEntryDate(r.Date)
	switch {
	case r.Date == "":
		errs.add("date", "A date is required.")
	case !ok:
		errs.add("date", "Date must be YYYY-MM-DD or RFC 3339.")
	case date.After(now):
		errs.add("date", "Date cannot be in the future.")
	case date.Before(EarliestEntryDate):
		errs.add("date", "Date cannot be before 1900-01-01.")
	}

	if r.Sleep < 0 || r.Sleep > 24 {
		errs.add("sleep", "Sleep must be between 0 and 24 hours.")
	} else if math.Mod(r.Sleep*2, 1) != 0 {
		errs.add("sleep", "Sleep must be in steps of 0.5 hours.")
	}
	for field, v := range map[string]int{
		"stress":     r.Stress,
		"symptoms":   r.Symptoms,
		"mood":       r.Mood,
		"engagement": r.Engagement,
	} {
		if v < 1 || v > 10 {
			errs.add(field, "Must be between 1 and 10.")
		}
	}
	if tooLong(r.Notes, MaxEntryNotesLength) {
		errs.add("notes", "Note must be 1000 characters or less.")
	}

	if err := errs.err(); err != nil {
		return time.Time{}, err
	}
	return date, nil
}

// ToDomain builds a health entry using an already validated date.
func (r EntryRequest) ToDomain(date time.Time) *domain.HealthEntry {
	return &domain.HealthEntry{
		Date:       date,
		Sleep:      r.Sleep,
		Stress:     r.Stress,
		Symptoms:   r.Symptoms,
		Mood:       r.Mood,
		Engagement: r.Engagement,
		DrugNames:  r.DrugNames,
		Notes:      r.Notes,
	}
}

func parseEntryDate(s string) (time.Time, bool) {
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
