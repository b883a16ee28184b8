package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/mood-journal/internal/auth"
	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/events"
	"github.com/spec-kit/mood-journal/internal/repository"
)

// CollectionLoader hydrates one record collection into a session.
// RecordStore implements it.
type CollectionLoader interface {
	Kind() domain.RecordKind
	hydrate(ctx context.Context, sess *Session, email string) error
}

// SessionStore runs signup, login, logout and profile updates against the
// user directory, and hydrates sessions from persisted state.
type SessionStore struct {
	mu          sync.Mutex
	users       repository.UserDirectory
	collections []CollectionLoader
	passwords   auth.PasswordScheme
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	now         func() time.Time
}

// SessionDependencies bundles collaborators for the session store.
type SessionDependencies struct {
	Users       repository.UserDirectory
	Collections []CollectionLoader
	Passwords   auth.PasswordScheme
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewSessionStore builds the store. Passwords defaults to plain comparison.
func NewSessionStore(deps SessionDependencies) *SessionStore {
	passwords := deps.Passwords
	if passwords == nil {
		passwords = auth.PlainPasswords{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		users:       deps.Users,
		collections: deps.Collections,
		passwords:   passwords,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
		now:         time.Now,
	}
}

// Open creates a session bound to pointer and hydrates it. Persistence
// failures are logged and leave the session anonymous.
func (s *SessionStore) Open(ctx context.Context, pointer repository.SessionPointer) *Session {
	sess := newSession(pointer)
	s.reload(ctx, sess)
	return sess
}

// Login signs email in when the password matches. It reports false for an
// unknown email and for a wrong password alike.
func (s *SessionStore) Login(ctx context.Context, sess *Session, email, password string) (bool, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrCorruptBlob) {
			s.logger.Error("user directory unreadable; rejecting login", zap.Error(err))
			return false, nil
		}
		return false, fmt.Errorf("load user directory: %w", err)
	}

	cred, ok := users[email]
	if !ok || !s.passwords.Matches(cred.Password, password) {
		return false, nil
	}

	if err := sess.pointer.Set(ctx, email); err != nil {
		return false, fmt.Errorf("set current user: %w", err)
	}
	s.reload(ctx, sess)
	s.publish(ctx, events.EventSignedIn, email, nil)
	return true, nil
}

// Signup registers a new credential and signs it in. It reports false when
// the email is already registered. An empty name falls back to the local
// part of the email.
func (s *SessionStore) Signup(ctx context.Context, sess *Session, email, password, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.Load(ctx)
	if err != nil {
		// never overwrite a directory we could not read
		return false, fmt.Errorf("load user directory: %w", err)
	}
	if _, exists := users[email]; exists {
		return false, nil
	}

	stored, err := s.passwords.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		name = domain.EmailLocalPart(email)
	}
	users[email] = domain.Credential{Password: stored, Name: name}
	if err := s.users.Save(ctx, users); err != nil {
		return false, fmt.Errorf("save user directory: %w", err)
	}

	if err := sess.pointer.Set(ctx, email); err != nil {
		return false, fmt.Errorf("set current user: %w", err)
	}
	s.reload(ctx, sess)
	s.publish(ctx, events.EventSignedUp, email, nil)
	return true, nil
}

// Logout clears the pointer and the session state. The signed_out event is
// the cue for presentation code to show the login surface.
func (s *SessionStore) Logout(ctx context.Context, sess *Session) error {
	email := sess.Email()
	err := sess.pointer.Clear(ctx)
	sess.reset()
	s.publish(ctx, events.EventSignedOut, email, nil)
	if err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}

// UpdateUser renames the signed-in user. Without a session it does nothing.
func (s *SessionStore) UpdateUser(ctx context.Context, sess *Session, name string) error {
	if !sess.Authenticated() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.Load(ctx)
	if err != nil {
		return fmt.Errorf("load user directory: %w", err)
	}
	email := sess.Email()
	cred, ok := users[email]
	if !ok {
		return nil
	}
	cred.Name = name
	users[email] = cred
	if err := s.users.Save(ctx, users); err != nil {
		return fmt.Errorf("save user directory: %w", err)
	}

	sess.user.Name = name
	s.publish(ctx, events.EventProfileUpdated, email, events.ProfilePayload{Name: name})
	return nil
}

// reload mirrors persisted state into sess. A pointer to an email missing
// from the directory leaves the session anonymous.
func (s *SessionStore) reload(ctx context.Context, sess *Session) {
	sess.loading = true
	defer func() { sess.loading = false }()
	sess.reset()

	email, err := sess.pointer.Current(ctx)
	if err != nil {
		s.logger.Error("failed to read current user", zap.Error(err))
		return
	}
	if email == "" {
		return
	}

	users, err := s.users.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load user directory", zap.Error(err))
		return
	}
	cred, ok := users[email]
	if !ok {
		s.logger.Warn("current user not in directory", zap.String("email", email))
		return
	}
	sess.user = &domain.User{Email: email, Name: cred.Name}

	for _, c := range s.collections {
		if err := c.hydrate(ctx, sess, email); err != nil {
			s.logger.Error("failed to load records",
				zap.String("kind", string(c.Kind())),
				zap.Error(err))
		}
	}
}

func (s *SessionStore) publish(ctx context.Context, eventType events.EventType, email string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		Email:     email,
		Timestamp: s.now(),
		Payload:   payload,
	})
	if err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}
