package domain

import "time"

// MoodValue enumerates the moods a user can log.
type MoodValue string

const (
	MoodHappy    MoodValue = "happy"
	MoodSad      MoodValue = "sad"
	MoodAngry    MoodValue = "angry"
	MoodStressed MoodValue = "stressed"
	MoodExcited  MoodValue = "excited"
)

// MoodValues lists the valid moods in display order.
var MoodValues = []MoodValue{MoodHappy, MoodSad, MoodAngry, MoodStressed, MoodExcited}

// Valid reports whether m is one of MoodValues.
func (m MoodValue) Valid() bool {
	for _, v := range MoodValues {
		if m == v {
			return true
		}
	}
	return false
}

// MoodRecord is a single mood log.
type MoodRecord struct {
	ID        string    `json:"id"`
	Mood      MoodValue `json:"mood"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *MoodRecord) RecordID() string { return m.ID }

// Assign sets both the id and the timestamp; moods are always stamped at creation.
func (m *MoodRecord) Assign(id string, createdAt time.Time) {
	m.ID = id
	m.Timestamp = createdAt
}
