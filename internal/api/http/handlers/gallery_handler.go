package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/api/dto"
	"github.com/spec-kit/club-service/internal/repository"
	"github.com/spec-kit/club-service/internal/service"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// GalleryHandler manages the photo gallery endpoints.
type GalleryHandler struct {
	content *service.ContentService
}

// NewGalleryHandler constructs handler.
func NewGalleryHandler(contentService *service.ContentService) *GalleryHandler {
	return &GalleryHandler{content: contentService}
}

// List GET /api/gallery.
func (h *GalleryHandler) List(c *fiber.Ctx) error {
	items, err := h.content.ListGallery(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewGalleryListResponse(items))
}

// Get GET /api/gallery/:id.
func (h *GalleryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.content.GetGalleryItem(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewGalleryItemResponse(item))
}

// Create POST /api/gallery.
func (h *GalleryHandler) Create(c *fiber.Ctx) error {
	var req dto.GalleryCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return apperrors.NewValidationError("imageUrl es obligatorio", nil)
	}

	item, err := h.content.CreateGalleryItem(c.UserContext(), service.GalleryCreateInput{
		ImageURL:     req.ImageURL,
		Caption:      req.Caption,
		Link:         req.Link,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewGalleryItemResponse(item))
}

// Update PUT /api/gallery/:id.
func (h *GalleryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.GalleryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}

	item, err := h.content.UpdateGalleryItem(c.UserContext(), id, repository.GalleryUpdate{
		ImageURL:     req.ImageURL,
		Caption:      req.Caption,
		Link:         req.Link,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewGalleryItemResponse(item))
}

// Delete DELETE /api/gallery/:id.
func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.content.DeleteGalleryItem(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
