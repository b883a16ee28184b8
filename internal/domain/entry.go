package domain

import "time"

// HealthEntry is a daily set of health metrics.
type HealthEntry struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Sleep      float64   `json:"sleep"`
	Stress     int       `json:"stress"`
	Symptoms   int       `json:"symptoms"`
	Mood       int       `json:"mood"`
	Engagement int       `json:"engagement"`
	DrugNames  string    `json:"drugNames"`
	Notes      string    `json:"notes,omitempty"`
}

func (e *HealthEntry) RecordID() string { return e.ID }

// Assign sets only the id; Date is user supplied.
func (e *HealthEntry) Assign(id string, _ time.Time) {
	e.ID = id
}
