package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/api/dto"
	"github.com/spec-kit/club-service/internal/repository"
	"github.com/spec-kit/club-service/internal/service"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// EventsHandler manages the calendar event endpoints.
type EventsHandler struct {
	content *service.ContentService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(contentService *service.ContentService) *EventsHandler {
	return &EventsHandler{content: contentService}
}

// List GET /api/events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	events, err := h.content.ListEvents(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEventListResponse(events))
}

// Get GET /api/events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	event, err := h.content.GetEvent(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEventResponse(event))
}

// Create POST /api/events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	var req dto.EventCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperrors.NewValidationError("title es obligatorio", nil)
	}
	date, err := parseEventDate(req.Date, true)
	if err != nil {
		return err
	}

	event, err := h.content.CreateEvent(c.UserContext(), service.EventCreateInput{
		Title:          req.Title,
		Date:           date,
		Time:           req.Time,
		Description:    req.Description,
		Location:       req.Location,
		Type:           req.Type,
		Cost:           req.Cost,
		Classification: req.Classification,
		GpxURL:         req.GpxURL,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewEventResponse(event))
}

// Update PUT /api/events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.EventUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}

	update := repository.EventUpdate{
		Title:          req.Title,
		Time:           req.Time,
		Description:    req.Description,
		Location:       req.Location,
		Type:           req.Type,
		Cost:           req.Cost,
		Classification: req.Classification,
		GpxURL:         req.GpxURL,
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date, false)
		if err != nil {
			return err
		}
		update.Date = &date
	}

	event, err := h.content.UpdateEvent(c.UserContext(), id, update)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEventResponse(event))
}

// Delete DELETE /api/events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.content.DeleteEvent(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// parseEventDate accepts RFC 3339 timestamps or a bare calendar day.
func parseEventDate(raw string, required bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return time.Time{}, apperrors.NewValidationError("La fecha es obligatoria", nil)
		}
		return time.Time{}, nil
	}
	if date, err := time.Parse(time.RFC3339, raw); err == nil {
		return date, nil
	}
	if date, err := time.Parse("2006-01-02", raw); err == nil {
		return date, nil
	}
	return time.Time{}, apperrors.NewValidationError("Formato de fecha inválido", nil)
}
