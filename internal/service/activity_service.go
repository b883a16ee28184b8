package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/mood-journal/internal/events"
)

// ActivityService records session and journal activity in the log.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	return &ActivityService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSignedUp, a.handleSession)
	a.dispatcher.Subscribe(events.EventSignedIn, a.handleSession)
	a.dispatcher.Subscribe(events.EventSignedOut, a.handleSession)
	a.dispatcher.Subscribe(events.EventProfileUpdated, a.handleProfileUpdated)
	a.dispatcher.Subscribe(events.EventRecordAdded, a.handleRecord)
	a.dispatcher.Subscribe(events.EventRecordUpdated, a.handleRecord)
	a.dispatcher.Subscribe(events.EventRecordDeleted, a.handleRecord)
}

func (a *ActivityService) handleSession(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), zap.String("email", event.Email))
	return nil
}

func (a *ActivityService) handleProfileUpdated(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), zap.String("email", event.Email), zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityService) handleRecord(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RecordPayload)
	if !ok {
		a.logger.Debug(string(event.Type), zap.String("email", event.Email))
		return nil
	}
	a.logger.Debug(string(event.Type),
		zap.String("email", event.Email),
		zap.String("kind", string(payload.Kind)),
		zap.String("record_id", payload.RecordID),
		zap.Int("count", payload.Count))
	return nil
}
