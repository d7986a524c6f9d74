package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/api/dto"
	"github.com/spec-kit/club-service/internal/repository"
	"github.com/spec-kit/club-service/internal/service"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// PostsHandler manages the blog post endpoints.
type PostsHandler struct {
	content *service.ContentService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(contentService *service.ContentService) *PostsHandler {
	return &PostsHandler{content: contentService}
}

// List GET /api/posts.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	posts, err := h.content.ListPosts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostListResponse(posts))
}

// Get GET /api/posts/:id.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	post, err := h.content.GetPost(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostResponse(post))
}

// Create POST /api/posts.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	var req dto.PostCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("title y content son obligatorios", nil)
	}

	post, err := h.content.CreatePost(c.UserContext(), service.PostCreateInput{
		Title:   req.Title,
		Content: req.Content,
		Slug:    req.Slug,
		Image:   req.Image,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewPostResponse(post))
}

// Update PUT /api/posts/:id.
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.PostUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}

	post, err := h.content.UpdatePost(c.UserContext(), id, repository.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
		Slug:    req.Slug,
		Image:   req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostResponse(post))
}

// Delete DELETE /api/posts/:id.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.content.DeletePost(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// parseID reads the :id route parameter shared by the content handlers.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("id inválido", nil)
	}
	return id, nil
}
