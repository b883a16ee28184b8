package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/events"
	"github.com/spec-kit/mood-journal/internal/persistence"
	"github.com/spec-kit/mood-journal/internal/repository"
)

type harness struct {
	store      *persistence.Memory
	keys       repository.Keys
	dispatcher events.Dispatcher
	sessions   *SessionStore
	moods      *RecordStore[*domain.MoodRecord]
	entries    *RecordStore[*domain.HealthEntry]
	published  []events.Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := zaptest.NewLogger(t)
	h := &harness{
		store:      persistence.NewMemory(),
		keys:       repository.NewKeys("moodjournal"),
		dispatcher: events.NewInMemoryDispatcher(),
	}
	for _, et := range []events.EventType{
		events.EventSignedUp, events.EventSignedIn, events.EventSignedOut, events.EventProfileUpdated,
		events.EventRecordAdded, events.EventRecordUpdated, events.EventRecordDeleted,
	} {
		h.dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			h.published = append(h.published, e)
			return nil
		})
	}

	h.moods = NewMoodStore(
		repository.NewRecordRepository[*domain.MoodRecord](h.store, h.keys, domain.RecordKindMood),
		UUIDs, h.dispatcher, logger)
	h.entries = NewEntryStore(
		repository.NewRecordRepository[*domain.HealthEntry](h.store, h.keys, domain.RecordKindEntry),
		UUIDs, h.dispatcher, logger)
	h.sessions = NewSessionStore(SessionDependencies{
		Users:       repository.NewUserDirectory(h.store, h.keys),
		Collections: []CollectionLoader{h.moods, h.entries},
		Dispatcher:  h.dispatcher,
		Logger:      logger,
	})
	return h
}

// open starts a session that persists its pointer like a local client.
func (h *harness) open() *Session {
	return h.sessions.Open(context.Background(), repository.NewSubstratePointer(h.store, h.keys))
}

func (h *harness) signedIn(t *testing.T, email string) *Session {
	t.Helper()
	sess := h.open()
	ok, err := h.sessions.Signup(context.Background(), sess, email, "secret1", "")
	if err != nil || !ok {
		t.Fatalf("signup %s: ok=%v err=%v", email, ok, err)
	}
	return sess
}

func (h *harness) eventTypes() []events.EventType {
	types := make([]events.EventType, 0, len(h.published))
	for _, e := range h.published {
		types = append(types, e.Type)
	}
	return types
}

func day(d int) time.Time {
	return time.Date(2024, time.May, d, 0, 0, 0, 0, time.UTC)
}
