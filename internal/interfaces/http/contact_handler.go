package http

import (
	"errors"

	"github.com/Maxito7/heey_portfolio/internal/application"
	"github.com/Maxito7/heey_portfolio/internal/domain"
	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	service *application.ContactService
}

func NewContactHandler(service *application.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req domain.ContactMessage
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.Send(req); err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidContact):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, application.ErrMailNotConfigured):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Message sent"})
}
