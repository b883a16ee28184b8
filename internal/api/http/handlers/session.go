package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mood-journal/internal/auth"
	"github.com/spec-kit/mood-journal/internal/repository"
	"github.com/spec-kit/mood-journal/internal/service"
	apperrors "github.com/spec-kit/mood-journal/pkg/util/errorutil"
)

// openSession hydrates a request-scoped session for the token bearer. The
// pointer is ephemeral so concurrent requests never share a current user.
func openSession(c *fiber.Ctx, sessions *service.SessionStore) (*service.Session, error) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	sess := sessions.Open(c.UserContext(), repository.NewEphemeralPointer(claims.Email))
	if !sess.Authenticated() {
		return nil, apperrors.NewUnauthorized("account no longer available")
	}
	return sess, nil
}
