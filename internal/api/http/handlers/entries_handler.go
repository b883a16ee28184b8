package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mood-journal/internal/api/dto"
	"github.com/spec-kit/mood-journal/internal/domain"
	"github.com/spec-kit/mood-journal/internal/service"
	apperrors "github.com/spec-kit/mood-journal/pkg/util/errorutil"
)

// EntriesHandler manages health entry endpoints.
type EntriesHandler struct {
	sessions *service.SessionStore
	entries  *service.RecordStore[*domain.HealthEntry]
	now      func() time.Time
}

// NewEntriesHandler constructs handler.
func NewEntriesHandler(sessions *service.SessionStore, entries *service.RecordStore[*domain.HealthEntry]) *EntriesHandler {
	return &EntriesHandler{sessions: sessions, entries: entries, now: time.Now}
}

// ListEntries GET /entries. Sorted by date, newest first.
func (h *EntriesHandler) ListEntries(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	entries := h.entries.List(sess)
	if entries == nil {
		entries = []*domain.HealthEntry{}
	}
	return c.JSON(fiber.Map{"data": entries})
}

// CreateEntry POST /entries.
func (h *EntriesHandler) CreateEntry(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	req, date, err := h.parse(c)
	if err != nil {
		return err
	}

	entry, err := h.entries.Add(c.UserContext(), sess, req.ToDomain(date))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": entry})
}

// GetEntry GET /entries/:id.
func (h *EntriesHandler) GetEntry(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	entry, ok := h.entries.Get(sess, c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("entry", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": entry})
}

// UpdateEntry PUT /entries/:id replaces every field but the id.
func (h *EntriesHandler) UpdateEntry(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	req, date, err := h.parse(c)
	if err != nil {
		return err
	}

	entry := req.ToDomain(date)
	entry.ID = c.Params("id")
	if err := h.entries.Update(c.UserContext(), sess, entry); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": entry})
}

// DeleteEntry DELETE /entries/:id.
func (h *EntriesHandler) DeleteEntry(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	if err := h.entries.Delete(c.UserContext(), sess, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *EntriesHandler) parse(c *fiber.Ctx) (dto.EntryRequest, time.Time, error) {
	var req dto.EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return req, time.Time{}, apperrors.NewValidationError("invalid payload", nil)
	}
	date, err := req.Validate(h.now())
	return req, date, err
}
