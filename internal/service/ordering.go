package service

import (
	"slices"
	"time"

	"github.com/spec-kit/mood-journal/internal/domain"
)

// OrderingPolicy decides where records go after each mutation.
type OrderingPolicy[R domain.Record] interface {
	// Insert places a new record into the collection.
	Insert(collection []R, rec R) []R
	// Settle restores ordering after an in-place replacement.
	Settle(collection []R) []R
}

// NewestFirst prepends new records and never reorders. The collection ends
// up in reverse insertion order regardless of any timestamps on the records.
type NewestFirst[R domain.Record] struct{}

func (NewestFirst[R]) Insert(collection []R, rec R) []R {
	return append([]R{rec}, collection...)
}

func (NewestFirst[R]) Settle(collection []R) []R {
	return collection
}

// SortedDescending keeps the whole collection sorted newest-first by Key
// after every insert and update. Ties keep their existing relative order.
type SortedDescending[R domain.Record] struct {
	Key func(R) time.Time
}

func (p SortedDescending[R]) Insert(collection []R, rec R) []R {
	return p.Settle(append(collection, rec))
}

func (p SortedDescending[R]) Settle(collection []R) []R {
	slices.SortStableFunc(collection, func(a, b R) int {
		return p.Key(b).Compare(p.Key(a))
	})
	return collection
}

// ByEntryDate orders health entries by their user-supplied date.
func ByEntryDate() SortedDescending[*domain.HealthEntry] {
	return SortedDescending[*domain.HealthEntry]{
		Key: func(e *domain.HealthEntry) time.Time { return e.Date },
	}
}
