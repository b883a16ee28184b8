package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/events"
	"github.com/spec-kit/mood-journal/internal/repository"
	apperrors "github.com/spec-kit/mood-journal/pkg/util/errorutil"
)

// RecordStore runs create/read/update/delete over one record variant for
// the signed-in user of a session. Every mutation reads the whole blob,
// applies the change, writes the whole blob back and then mirrors the
// user's collection into the session.
type RecordStore[R domain.Record] struct {
	mu         sync.Mutex
	records    repository.RecordRepository[R]
	order      OrderingPolicy[R]
	ids        IDGenerator
	now        func() time.Time
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// RecordStoreDependencies bundles collaborators for a record store.
type RecordStoreDependencies[R domain.Record] struct {
	Records    repository.RecordRepository[R]
	Order      OrderingPolicy[R]
	IDs        IDGenerator
	Clock      func() time.Time
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewRecordStore builds the store; IDs defaults to UUIDs and Clock to the
// wall clock truncated to milliseconds.
func NewRecordStore[R domain.Record](deps RecordStoreDependencies[R]) *RecordStore[R] {
	ids := deps.IDs
	if ids == nil {
		ids = UUIDs
	}
	clock := deps.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordStore[R]{
		records:    deps.Records,
		order:      deps.Order,
		ids:        ids,
		now:        clock,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// NewMoodStore wires the mood variant: newest added first.
func NewMoodStore(records repository.RecordRepository[*domain.MoodRecord], ids IDGenerator, dispatcher events.Dispatcher, logger *zap.Logger) *RecordStore[*domain.MoodRecord] {
	return NewRecordStore(RecordStoreDependencies[*domain.MoodRecord]{
		Records:    records,
		Order:      NewestFirst[*domain.MoodRecord]{},
		IDs:        ids,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
}

// NewEntryStore wires the health entry variant: sorted by date, newest first.
func NewEntryStore(records repository.RecordRepository[*domain.HealthEntry], ids IDGenerator, dispatcher events.Dispatcher, logger *zap.Logger) *RecordStore[*domain.HealthEntry] {
	return NewRecordStore(RecordStoreDependencies[*domain.HealthEntry]{
		Records:    records,
		Order:      ByEntryDate(),
		IDs:        ids,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
}

// Kind returns the record variant this store manages.
func (s *RecordStore[R]) Kind() domain.RecordKind {
	return s.records.Kind()
}

// List returns the session's collection in stored order.
func (s *RecordStore[R]) List(sess *Session) []R {
	return slices.Clone(collectionOf[R](sess, s.Kind()))
}

// Get looks a record up in the session's collection.
func (s *RecordStore[R]) Get(sess *Session, id string) (R, bool) {
	for _, rec := range collectionOf[R](sess, s.Kind()) {
		if rec.RecordID() == id {
			return rec, true
		}
	}
	var zero R
	return zero, false
}

// Add stamps rec with a fresh id and stores it for the signed-in user.
func (s *RecordStore[R]) Add(ctx context.Context, sess *Session, rec R) (R, error) {
	var zero R
	if !sess.Authenticated() {
		return zero, ErrNoActiveSession
	}
	email := sess.Email()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec.Assign(s.ids.NewID(now), now)

	all, err := s.records.LoadAll(ctx)
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", s.Kind(), err)
	}
	updated := s.order.Insert(slices.Clone(all[email]), rec)
	if err := s.persist(ctx, sess, all, email, updated); err != nil {
		return zero, err
	}

	s.publish(ctx, events.EventRecordAdded, email, rec.RecordID(), len(updated))
	return rec, nil
}

// Update replaces the stored record that has rec's id.
func (s *RecordStore[R]) Update(ctx context.Context, sess *Session, rec R) error {
	if !sess.Authenticated() {
		return ErrNoActiveSession
	}
	email := sess.Email()

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.records.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.Kind(), err)
	}
	collection := slices.Clone(all[email])
	idx := indexOf(collection, rec.RecordID())
	if idx < 0 {
		return apperrors.NewNotFound(string(s.Kind()), map[string]any{"id": rec.RecordID()})
	}
	collection[idx] = rec
	updated := s.order.Settle(collection)
	if err := s.persist(ctx, sess, all, email, updated); err != nil {
		return err
	}

	s.publish(ctx, events.EventRecordUpdated, email, rec.RecordID(), len(updated))
	return nil
}

// Delete removes the record with id from the signed-in user's collection.
func (s *RecordStore[R]) Delete(ctx context.Context, sess *Session, id string) error {
	if !sess.Authenticated() {
		return ErrNoActiveSession
	}
	email := sess.Email()

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.records.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.Kind(), err)
	}
	collection := slices.Clone(all[email])
	idx := indexOf(collection, id)
	if idx < 0 {
		return apperrors.NewNotFound(string(s.Kind()), map[string]any{"id": id})
	}
	updated := slices.Delete(collection, idx, idx+1)
	if err := s.persist(ctx, sess, all, email, updated); err != nil {
		return err
	}

	s.publish(ctx, events.EventRecordDeleted, email, id, len(updated))
	return nil
}

func (s *RecordStore[R]) hydrate(ctx context.Context, sess *Session, email string) error {
	records, err := s.records.ForUser(ctx, email)
	if err != nil {
		setCollection[R](sess, s.Kind(), nil)
		return err
	}
	setCollection(sess, s.Kind(), records)
	return nil
}

func (s *RecordStore[R]) persist(ctx context.Context, sess *Session, all map[string][]R, email string, updated []R) error {
	all[email] = updated
	if err := s.records.SaveAll(ctx, all); err != nil {
		return fmt.Errorf("save %s: %w", s.Kind(), err)
	}
	setCollection(sess, s.Kind(), updated)
	return nil
}

func (s *RecordStore[R]) publish(ctx context.Context, eventType events.EventType, email, id string, count int) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		Email:     email,
		Timestamp: s.now(),
		Payload:   events.RecordPayload{Kind: s.Kind(), RecordID: id, Count: count},
	})
	if err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}

func indexOf[R domain.Record](collection []R, id string) int {
	return slices.IndexFunc(collection, func(rec R) bool { return rec.RecordID() == id })
}
