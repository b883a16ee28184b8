package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mood-journal/internal/api/dto"
	"github.com/spec-kit/mood-journal/internal/auth"
	"github.com/spec-kit/mood-journal/internal/repository"
	"github.com/spec-kit/mood-journal/internal/service"
	apperrors "github.com/spec-kit/mood-journal/pkg/util/errorutil"
)

// AuthHandler exposes signup, login and logout.
type AuthHandler struct {
	sessions *service.SessionStore
	tokens   *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions *service.SessionStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{sessions: sessions, tokens: tokens}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	sess := h.sessions.Open(c.UserContext(), repository.NewEphemeralPointer(""))
	ok, err := h.sessions.Signup(c.UserContext(), sess, req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewConflict("an account with this email already exists", nil)
	}
	return h.respond(c, http.StatusCreated, sess)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	sess := h.sessions.Open(c.UserContext(), repository.NewEphemeralPointer(""))
	ok, err := h.sessions.Login(c.UserContext(), sess, req.Email, req.Password)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewUnauthorized("invalid email or password")
	}
	return h.respond(c, http.StatusOK, sess)
}

// Logout handles POST /auth/logout. Tokens are stateless, so clients drop
// theirs; the server only records the transition.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	if err := h.sessions.Logout(c.UserContext(), sess); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *AuthHandler) respond(c *fiber.Ctx, status int, sess *service.Session) error {
	user, _ := sess.User()
	token, exp, err := h.tokens.GenerateToken(user.Email)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.Status(status).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.ToUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
