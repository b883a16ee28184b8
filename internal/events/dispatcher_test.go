package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []string

	d.Subscribe(EventSignedOut, func(_ context.Context, e Event) error {
		seen = append(seen, "first:"+e.Email)
		return errors.New("boom")
	})
	d.Subscribe(EventSignedOut, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+e.Email)
		return nil
	})
	d.Subscribe(EventSignedIn, func(context.Context, Event) error {
		seen = append(seen, "wrong")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventSignedOut, Email: "a@x.com"})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"first:a@x.com", "second:a@x.com"}, seen)
}

func TestDispatcherNoListeners(t *testing.T) {
	assert.NoError(t, NewInMemoryDispatcher().Publish(context.Background(), Event{Type: EventRecordAdded}))
}
