package http

import (
	"errors"

	"github.com/Maxito7/heey_portfolio/internal/ui/gallery"
	"github.com/Maxito7/heey_portfolio/internal/ui/masonry"
	"github.com/Maxito7/heey_portfolio/internal/ui/session"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler exposes gallery page sessions: the browser creates one on page
// load, forwards its DOM events and renders the returned view.
type SessionHandler struct {
	store  *session.Store
	logger *zap.Logger
}

func NewSessionHandler(store *session.Store, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{store: store, logger: logger}
}

func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var vp masonry.Viewport
	if err := c.BodyParser(&vp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if vp.Width <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "viewport width is required"})
	}

	view, err := h.store.Create(vp)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	view, err := h.store.View(c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(view)
}

func (h *SessionHandler) PostEvent(c *fiber.Ctx) error {
	var ev gallery.Event
	if err := c.BodyParser(&ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	view, err := h.store.Dispatch(c.Params("id"), ev)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(view)
}

func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if !h.store.Delete(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SessionHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, gallery.ErrUnmounted):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	case errors.Is(err, gallery.ErrUnknownEvent), errors.Is(err, gallery.ErrInvalidEvent):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, session.ErrTooManySessions):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	h.logger.Error("session request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
