package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mood-journal/internal/api/dto"
	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/service"
	apperrors "github.com/spec-kit/mood-journal/pkg/util/errorutil"
)

// ProfileHandler exposes the signed-in user's profile.
type ProfileHandler struct {
	sessions *service.SessionStore
	moods    *service.RecordStore[*domain.MoodRecord]
	entries  *service.RecordStore[*domain.HealthEntry]
}

// NewProfileHandler constructs handler.
func NewProfileHandler(sessions *service.SessionStore, moods *service.RecordStore[*domain.MoodRecord], entries *service.RecordStore[*domain.HealthEntry]) *ProfileHandler {
	return &ProfileHandler{sessions: sessions, moods: moods, entries: entries}
}

// GetProfile GET /profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.profile(sess)})
}

// UpdateProfile PATCH /profile.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := h.sessions.UpdateUser(c.UserContext(), sess, req.Name); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.profile(sess)})
}

func (h *ProfileHandler) profile(sess *service.Session) dto.ProfileResponse {
	user, _ := sess.User()
	return dto.ProfileResponse{
		User:         dto.ToUserResponse(user),
		TotalEntries: len(h.entries.List(sess)),
		TotalMoods:   len(h.moods.List(sess)),
	}
}
