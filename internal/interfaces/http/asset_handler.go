package http

import (
	"path/filepath"
	"strings"

	"github.com/Maxito7/heey_portfolio/internal/application"
	"github.com/Maxito7/heey_portfolio/internal/domain"
	services "github.com/Maxito7/heey_portfolio/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssetHandler struct {
	content *application.ContentClient
	logger  *zap.Logger
}

func NewAssetHandler(content *application.ContentClient, logger *zap.Logger) *AssetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetHandler{content: content, logger: logger}
}

// Upload stores the multipart "file" under the kind's folder. An optional "name"
// form value picks the stored file name; otherwise a random one keeps the extension.
// variant=thumbnail stores it under the thumbnail name derived from that name.
func (h *AssetHandler) Upload(c *fiber.Ctx) error {
	kind, err := domain.ParseAssetKind(c.Params("kind"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid asset kind"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing file"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open file"})
	}
	defer file.Close()

	name := uploadName(c.FormValue("name"), fileHeader.Filename)
	if c.FormValue("variant") == string(domain.VariantThumbnail) {
		name = services.ThumbnailPath(name)
	}
	path := h.content.UploadAsset(c.UserContext(), file, name, fileHeader.Header.Get("Content-Type"), kind)
	if path == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload file"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"path": path,
		"url":  h.content.ResolveAssetURL(c.UserContext(), path, kind),
	})
}

func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	kind, err := domain.ParseAssetKind(c.Params("kind"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid asset kind"})
	}
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path is required"})
	}

	if !h.content.DeleteAsset(c.UserContext(), path, kind) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete file"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func uploadName(requested, original string) string {
	if name := filepath.Base(strings.TrimSpace(requested)); name != "." && name != "/" && name != "" {
		return name
	}
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}
