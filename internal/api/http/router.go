package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mood-journal/internal/api/http/handlers"
	"github.com/spec-kit/mood-journal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Moods          *handlers.MoodsHandler
	Entries        *handlers.EntriesHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Authentication is attached per route;
// a prefix-less group would also guard the public endpoints.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	authn := cfg.AuthMiddleware.Handle

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", authn, cfg.Auth.Logout)

	app.Get("/profile", authn, cfg.Profile.GetProfile)
	app.Patch("/profile", authn, cfg.Profile.UpdateProfile)
	app.Get("/dashboard", authn, cfg.Dashboard.GetDashboard)

	moods := app.Group("/moods")
	moods.Get("/", authn, cfg.Moods.ListMoods)
	moods.Post("/", authn, cfg.Moods.CreateMood)
	moods.Post("/analysis", authn, cfg.Moods.Analyze)
	moods.Get("/:id", authn, cfg.Moods.GetMood)
	moods.Put("/:id", authn, cfg.Moods.UpdateMood)
	moods.Delete("/:id", authn, cfg.Moods.DeleteMood)

	entries := app.Group("/entries")
	entries.Get("/", authn, cfg.Entries.ListEntries)
	entries.Post("/", authn, cfg.Entries.CreateEntry)
	entries.Get("/:id", authn, cfg.Entries.GetEntry)
	entries.Put("/:id", authn, cfg.Entries.UpdateEntry)
	entries.Delete("/:id", authn, cfg.Entries.DeleteEntry)
}
