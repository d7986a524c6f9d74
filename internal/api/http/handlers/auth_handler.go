package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/api/dto"
	"github.com/spec-kit/club-service/internal/repository"
	"github.com/spec-kit/club-service/internal/service"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// AuthHandler exposes login and self-service profile endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email y password son obligatorios", nil)
	}

	user, token, exp, err := h.auth.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		UserResponse: dto.NewUserResponse(user),
		Token:        token,
		ExpiresAt:    exp,
	})
}

// UpdateProfile handles POST /api/profile/update.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if req.UserID == 0 {
		return apperrors.NewValidationError("userId es obligatorio", nil)
	}

	update := repository.UserProfileUpdate{
		FullName:        req.FullName,
		IDCard:          req.IDCard,
		Phone:           req.Phone,
		BloodType:       req.BloodType,
		Allergies:       req.Allergies,
		Diseases:        req.Diseases,
		PastInjuries:    req.PastInjuries,
		CurrentInjuries: req.CurrentInjuries,
		Height:          req.Height,
		Weight:          req.Weight,
		FatPercentage:   req.FatPercentage,
		FootwearType:    req.FootwearType,
		Record5K:        req.Record5K,
		Record10K:       req.Record10K,
		Record21K:       req.Record21K,
		Record42K:       req.Record42K,
		RecordWkg:       req.RecordWkg,
		StrydUser:       req.StrydUser,
		FinalSurgeUser:  req.FinalSurgeUser,
	}
	if err := h.auth.UpdateProfile(c.UserContext(), req.UserID, update); err != nil {
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "Perfil actualizado con éxito"})
}
