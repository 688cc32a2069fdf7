package http

import (
	"github.com/Maxito7/heey_portfolio/internal/application"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Portfolio *PortfolioHandler
	Asset     *AssetHandler
	Session   *SessionHandler
	Contact   *ContactHandler
}

// RegisterRoutes mounts the API under /api. limiter may be nil.
// Requests against an existing session are never throttled, so pointer
// traffic cannot lock out Escape or close.
func RegisterRoutes(app *fiber.App, h Handlers, limiter *application.RateLimiter) {
	api := app.Group("/api")
	limited := func(handler fiber.Handler) []fiber.Handler {
		if limiter == nil {
			return []fiber.Handler{handler}
		}
		return []fiber.Handler{RateLimit(limiter), handler}
	}

	portfolios := api.Group("/portfolios")
	portfolios.Get("/", limited(h.Portfolio.GetVisible)...)
	portfolios.Get("/latest", limited(h.Portfolio.GetLatest)...)
	portfolios.Get("/:id", limited(h.Portfolio.GetByID)...)
	portfolios.Post("/", limited(h.Portfolio.Create)...)
	portfolios.Put("/:id", limited(h.Portfolio.Update)...)
	portfolios.Delete("/:id", limited(h.Portfolio.Delete)...)

	api.Post("/upload/:kind", limited(h.Asset.Upload)...)
	api.Delete("/assets/:kind", limited(h.Asset.Delete)...)

	sessions := api.Group("/sessions")
	sessions.Post("/", limited(h.Session.Create)...)
	sessions.Get("/:id", h.Session.Get)
	sessions.Post("/:id/events", h.Session.PostEvent)
	sessions.Delete("/:id", h.Session.Delete)

	api.Post("/contact", limited(h.Contact.Create)...)
}
