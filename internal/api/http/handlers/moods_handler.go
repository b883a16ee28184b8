package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mood-journal/internal/api/dto"
	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/service"
	apperrors "github.com/spec-kit/mood-journal/pkg/util/errorutil"
)

// MoodsHandler manages mood endpoints and trend analysis.
type MoodsHandler struct {
	sessions *service.SessionStore
	moods    *service.RecordStore[*domain.MoodRecord]
	trends   *service.TrendService
}

// NewMoodsHandler constructs handler.
func NewMoodsHandler(sessions *service.SessionStore, moods *service.RecordStore[*domain.MoodRecord], trends *service.TrendService) *MoodsHandler {
	return &MoodsHandler{sessions: sessions, moods: moods, trends: trends}
}

// ListMoods GET /moods. Newest logged first.
func (h *MoodsHandler) ListMoods(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToMoodResponses(h.moods.List(sess))})
}

// CreateMood POST /moods.
func (h *MoodsHandler) CreateMood(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	var req dto.MoodRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	mood, err := h.moods.Add(c.UserContext(), sess, req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ToMoodResponse(mood)})
}

// GetMood GET /moods/:id.
func (h *MoodsHandler) GetMood(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	mood, ok := h.moods.Get(sess, c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("mood", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": dto.ToMoodResponse(mood)})
}

// UpdateMood PUT /moods/:id. The id and timestamp are kept.
func (h *MoodsHandler) UpdateMood(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	existing, ok := h.moods.Get(sess, c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("mood", map[string]any{"id": c.Params("id")})
	}
	var req dto.MoodRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	updated := *existing
	updated.Mood = req.Mood
	updated.Note = req.Note
	if err := h.moods.Update(c.UserContext(), sess, &updated); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToMoodResponse(&updated)})
}

// DeleteMood DELETE /moods/:id.
func (h *MoodsHandler) DeleteMood(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	if err := h.moods.Delete(c.UserContext(), sess, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Analyze POST /moods/analysis.
func (h *MoodsHandler) Analyze(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	summary, err := h.trends.Analyze(c.UserContext(), sess)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AnalysisResponse{TrendSummary: summary}})
}
