package service

import (
	"net/http"
	"slices"

	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/repository"
	apperrors "github.com/spec-kit/mood-journal/pkg/util/errorutil"
)

// ErrNoActiveSession is returned by operations that need a signed-in user.
var ErrNoActiveSession = apperrors.NewDomainError("NO_SESSION", "no active session", http.StatusUnauthorized, nil)

// Session is the observable state of one journal client: who is signed in
// and that user's record collections. It is not safe for concurrent use;
// each client (CLI process, HTTP request) owns its own Session.
type Session struct {
	pointer     repository.SessionPointer
	loading     bool
	user        *domain.User
	collections map[domain.RecordKind]any
}

func newSession(pointer repository.SessionPointer) *Session {
	return &Session{
		pointer:     pointer,
		loading:     true,
		collections: make(map[domain.RecordKind]any),
	}
}

// Loading reports whether the session is still hydrating.
func (s *Session) Loading() bool {
	return s.loading
}

// User returns a copy of the signed-in user.
func (s *Session) User() (domain.User, bool) {
	if s == nil || s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Email returns the signed-in email, or "".
func (s *Session) Email() string {
	if s == nil || s.user == nil {
		return ""
	}
	return s.user.Email
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	return s != nil && s.user != nil
}

func (s *Session) reset() {
	s.user = nil
	s.collections = make(map[domain.RecordKind]any)
}

func collectionOf[R domain.Record](s *Session, kind domain.RecordKind) []R {
	if s == nil {
		return nil
	}
	records, _ := s.collections[kind].([]R)
	return records
}

func setCollection[R domain.Record](s *Session, kind domain.RecordKind, records []R) {
	s.collections[kind] = slices.Clip(records)
}
