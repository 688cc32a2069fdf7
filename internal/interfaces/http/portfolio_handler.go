package http

import (
	"errors"
	"strconv"

	"github.com/Maxito7/heey_portfolio/internal/application"
	"github.com/Maxito7/heey_portfolio/internal/domain"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PortfolioHandler struct {
	content     *application.ContentClient
	service     *application.PortfolioService
	placeholder string
	logger      *zap.Logger
}

func NewPortfolioHandler(content *application.ContentClient, service *application.PortfolioService, placeholder string, logger *zap.Logger) *PortfolioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortfolioHandler{content: content, service: service, placeholder: placeholder, logger: logger}
}

// PortfolioResponse is an entry with its asset URLs resolved.
type PortfolioResponse struct {
	domain.Portfolio
	ThumbnailURL string `json:"thumbnail_url"`
	OriginalURL  string `json:"original_url"`
	VideoURL     string `json:"video_url,omitempty"`
}

func (h *PortfolioHandler) GetVisible(c *fiber.Ctx) error {
	items := h.content.ListVisibleItems(c.UserContext())
	return c.JSON(h.withURLs(c, items))
}

func (h *PortfolioHandler) GetLatest(c *fiber.Ctx) error {
	items := h.content.LatestItems(c.UserContext())
	return c.JSON(h.withURLs(c, items))
}

func (h *PortfolioHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}
	item := h.content.ItemByID(c.UserContext(), id)
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Portfolio not found"})
	}
	return c.JSON(h.withURLs(c, []domain.Portfolio{*item})[0])
}

func (h *PortfolioHandler) Create(c *fiber.Ctx) error {
	var req application.PortfolioInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	p, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *PortfolioHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var req application.PortfolioInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	p, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(p)
}

func (h *PortfolioHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PortfolioHandler) withURLs(c *fiber.Ctx, items []domain.Portfolio) []PortfolioResponse {
	urls := application.BuildURLCache(c.UserContext(), h.content, items, h.placeholder)
	out := make([]PortfolioResponse, len(items))
	for i, item := range items {
		out[i] = PortfolioResponse{Portfolio: item}
		out[i].ThumbnailURL, _ = urls.Get(item.ID, domain.VariantThumbnail)
		out[i].OriginalURL, _ = urls.Get(item.ID, domain.VariantOriginal)
		out[i].VideoURL, _ = urls.Get(item.ID, domain.VariantVideo)
	}
	return out
}

func (h *PortfolioHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, application.ErrInvalidPortfolio):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Portfolio not found"})
	}
	h.logger.Error("portfolio request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
