package service

import (
	"github.com/spec-kit/mood-journal/internal/domain"
)

const (
	// NotLoggedYet is shown as the last mood of an empty journal.
	NotLoggedYet = "Not logged yet"
	recentMoods  = 5
)

// MoodStats summarizes a mood collection.
type MoodStats struct {
	Total    int                  `json:"total"`
	LastMood string               `json:"last_mood"`
	Recent   []*domain.MoodRecord `json:"recent"`
}

// EntryAverages holds the mean of each health metric.
type EntryAverages struct {
	Sleep      float64 `json:"sleep"`
	Stress     float64 `json:"stress"`
	Symptoms   float64 `json:"symptoms"`
	Mood       float64 `json:"mood"`
	Engagement float64 `json:"engagement"`
}

// EntryStats summarizes a health entry collection.
type EntryStats struct {
	Total    int                 `json:"total"`
	Latest   *domain.HealthEntry `json:"latest,omitempty"`
	Averages EntryAverages       `json:"averages"`
}

// Dashboard is the overview shown after login.
type Dashboard struct {
	Greeting string     `json:"greeting"`
	Moods    MoodStats  `json:"moods"`
	Entries  EntryStats `json:"entries"`
}

// DashboardService derives dashboard statistics from session state.
type DashboardService struct {
	moods   *RecordStore[*domain.MoodRecord]
	entries *RecordStore[*domain.HealthEntry]
}

// NewDashboardService constructs the service.
func NewDashboardService(moods *RecordStore[*domain.MoodRecord], entries *RecordStore[*domain.HealthEntry]) *DashboardService {
	return &DashboardService{moods: moods, entries: entries}
}

// Build computes the dashboard for the signed-in user.
func (d *DashboardService) Build(sess *Session) (Dashboard, error) {
	user, ok := sess.User()
	if !ok {
		return Dashboard{}, ErrNoActiveSession
	}
	return Dashboard{
		Greeting: "Welcome back, " + user.DisplayName() + "!",
		Moods:    SummarizeMoods(d.moods.List(sess)),
		Entries:  SummarizeEntries(d.entries.List(sess)),
	}, nil
}

// SummarizeMoods expects moods newest first.
func SummarizeMoods(moods []*domain.MoodRecord) MoodStats {
	stats := MoodStats{Total: len(moods), LastMood: NotLoggedYet, Recent: moods}
	if len(moods) > 0 {
		stats.LastMood = string(moods[0].Mood)
	}
	if len(moods) > recentMoods {
		stats.Recent = moods[:recentMoods]
	}
	if stats.Recent == nil {
		stats.Recent = []*domain.MoodRecord{}
	}
	return stats
}

// SummarizeEntries expects entries sorted newest first.
func SummarizeEntries(entries []*domain.HealthEntry) EntryStats {
	stats := EntryStats{Total: len(entries)}
	if len(entries) == 0 {
		return stats
	}
	stats.Latest = entries[0]

	var sum EntryAverages
	for _, e := range entries {
		sum.Sleep += e.Sleep
		sum.Stress += float64(e.Stress)
		sum.Symptoms += float64(e.Symptoms)
		sum.Mood += float64(e.Mood)
		sum.Engagement += float64(e.Engagement)
	}
	n := float64(len(entries))
	stats.Averages = EntryAverages{
		Sleep:      sum.Sleep / n,
		Stress:     sum.Stress / n,
		Symptoms:   sum.Symptoms / n,
		Mood:       sum.Mood / n,
		Engagement: sum.Engagement / n,
	}
	return stats
}
