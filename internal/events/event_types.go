package events

import (
	"time"

	"github.com/spec-kit/mood-journal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSignedUp       EventType = "signed_up"
	EventSignedIn       EventType = "signed_in"
	EventSignedOut      EventType = "signed_out"
	EventProfileUpdated EventType = "profile_updated"
	EventRecordAdded    EventType = "record_added"
	EventRecordUpdated  EventType = "record_updated"
	EventRecordDeleted  EventType = "record_deleted"
)

// Event is emitted whenever session or collection state changes, so that
// presentation code can re-render or navigate.
type Event struct {
	Type      EventType   `json:"type"`
	Email     string      `json:"email"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// RecordPayload describes a record mutation.
type RecordPayload struct {
	Kind     domain.RecordKind `json:"kind"`
	RecordID string            `json:"record_id"`
	Count    int               `json:"count"`
}

// ProfilePayload describes a profile change.
type ProfilePayload struct {
	Name string `json:"name"`
}
