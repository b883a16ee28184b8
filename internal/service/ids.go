package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/mood-journal/internal/domain"
)

// IDGenerator produces record ids at creation time.
type IDGenerator interface {
	NewID(now time.Time) string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func(now time.Time) string

func (f IDGeneratorFunc) NewID(now time.Time) string { return f(now) }

// UUIDs generates random version 4 UUIDs.
var UUIDs = IDGeneratorFunc(func(time.Time) string {
	return uuid.NewString()
})

// TimestampIDs derives ids from the creation instant at millisecond
// precision, the format browser clients wrote. Two records created in the
// same millisecond get the same id.
var TimestampIDs = IDGeneratorFunc(func(now time.Time) string {
	return now.UTC().Format(domain.TimestampLayout)
})

// NewIDGenerator returns the generator for a configured strategy.
func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strategy {
	case "", "uuid":
		return UUIDs, nil
	case "timestamp":
		return TimestampIDs, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
