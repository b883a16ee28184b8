package domain

import "time"

// Record is a journal item owned by a single user.
type Record interface {
	RecordID() string
	// Assign stamps a freshly created record with its id and creation instant.
	Assign(id string, createdAt time.Time)
}

// RecordKind names a record variant; it doubles as the records blob suffix.
type RecordKind string

const (
	RecordKindMood  RecordKind = "moods"
	RecordKindEntry RecordKind = "entries"
)

// TimestampLayout renders instants the way browser clients did
// (ISO-8601, millisecond precision).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
