package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/api/dto"
	"github.com/spec-kit/club-service/internal/service"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// AdminHandler exposes the membership review endpoints.
type AdminHandler struct {
	membership *service.MembershipService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(membershipService *service.MembershipService) *AdminHandler {
	return &AdminHandler{membership: membershipService}
}

// ListPending GET /api/admin/requests.
func (h *AdminHandler) ListPending(c *fiber.Ctx) error {
	pending, err := h.membership.ListPendingRequests(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.PendingRequestResponse, 0, len(pending))
	for _, req := range pending {
		items = append(items, dto.NewPendingRequestResponse(req))
	}
	return c.JSON(items)
}

// Decide POST /api/admin/requests.
func (h *AdminHandler) Decide(c *fiber.Ctx) error {
	var req dto.DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if req.RequestID == 0 {
		return apperrors.NewValidationError("requestId es obligatorio", nil)
	}

	decision := service.Decision(req.Action)
	if decision != service.DecisionApprove && decision != service.DecisionReject {
		return apperrors.NewValidationError("acción inválida", map[string]any{"action": req.Action})
	}

	if err := h.membership.DecideApplication(c.UserContext(), req.RequestID, decision); err != nil {
		return err
	}

	message := "Solicitud aprobada con éxito"
	if decision == service.DecisionReject {
		message = "Solicitud rechazada con éxito"
	}
	return c.JSON(dto.MessageResponse{Message: message})
}
