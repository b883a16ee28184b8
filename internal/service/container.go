package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/mood-journal/internal/auth"
	"github.com/spec-kit/mood-journal/internal/config"
	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/events"
	"github.com/spec-kit/mood-journal/internal/persistence"
	"github.com/spec-kit/mood-journal/internal/repository"
	"github.com/spec-kit/mood-journal/internal/summarizer"
)

// Container holds the services shared by the HTTP server and the CLI.
type Container struct {
	Store      persistence.Substrate
	Keys       repository.Keys
	Dispatcher events.Dispatcher
	Sessions   *SessionStore
	Moods      *RecordStore[*domain.MoodRecord]
	Entries    *RecordStore[*domain.HealthEntry]
	Dashboard  *DashboardService
	Trends     *TrendService
	Activity   *ActivityService
}

// NewContainer wires every service over store. A nil summarizer leaves
// analysis unavailable.
func NewContainer(cfg config.Config, store persistence.Substrate, trend summarizer.Summarizer, logger *zap.Logger) (*Container, error) {
	ids, err := NewIDGenerator(cfg.Storage.IDStrategy)
	if err != nil {
		return nil, err
	}
	passwords, err := auth.NewPasswordScheme(cfg.Auth.PasswordScheme, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	keys := repository.NewKeys(cfg.Storage.KeyPrefix)
	dispatcher := events.NewInMemoryDispatcher()

	moods := NewMoodStore(
		repository.NewRecordRepository[*domain.MoodRecord](store, keys, domain.RecordKindMood),
		ids, dispatcher, logger.Named("moods"))
	entries := NewEntryStore(
		repository.NewRecordRepository[*domain.HealthEntry](store, keys, domain.RecordKindEntry),
		ids, dispatcher, logger.Named("entries"))

	sessions := NewSessionStore(SessionDependencies{
		Users:       repository.NewUserDirectory(store, keys),
		Collections: []CollectionLoader{moods, entries},
		Passwords:   passwords,
		Dispatcher:  dispatcher,
		Logger:      logger.Named("sessions"),
	})

	minMoods := cfg.Summarizer.MinMoods
	if minMoods < 1 {
		return nil, fmt.Errorf("summarizer min moods must be positive, got %d", minMoods)
	}

	return &Container{
		Store:      store,
		Keys:       keys,
		Dispatcher: dispatcher,
		Sessions:   sessions,
		Moods:      moods,
		Entries:    entries,
		Dashboard:  NewDashboardService(moods, entries),
		Trends: NewTrendService(TrendDependencies{
			Moods:      moods,
			Summarizer: trend,
			MinMoods:   minMoods,
			Timeout:    cfg.Summarizer.Timeout(),
			Logger:     logger.Named("trends"),
		}),
		Activity: NewActivityService(dispatcher, logger.Named("activity")),
	}, nil
}

// LocalPointer returns the persisted current-user pointer used by
// single-user clients.
func (c *Container) LocalPointer() repository.SessionPointer {
	return repository.NewSubstratePointer(c.Store, c.Keys)
}
