package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mood-journal/internal/service"
)

// DashboardHandler serves the post-login overview.
type DashboardHandler struct {
	sessions  *service.SessionStore
	dashboard *service.DashboardService
	trends    *service.TrendService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(sessions *service.SessionStore, dashboard *service.DashboardService, trends *service.TrendService) *DashboardHandler {
	return &DashboardHandler{sessions: sessions, dashboard: dashboard, trends: trends}
}

// GetDashboard GET /dashboard.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	sess, err := openSession(c, h.sessions)
	if err != nil {
		return err
	}
	dash, err := h.dashboard.Build(sess)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dash,
		"meta": fiber.Map{
			"analysis_available": dash.Moods.Total >= h.trends.MinMoods(),
			"analysis_min_moods": h.trends.MinMoods(),
		},
	})
}
