package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/coopdesk/helpdesk-service/internal/api/dto"
	"github.com/coopdesk/helpdesk-service/internal/auth"
	"github.com/coopdesk/helpdesk-service/internal/domain"
	"github.com/coopdesk/helpdesk-service/internal/engine"
	apperrors "github.com/coopdesk/helpdesk-service/pkg/util"
)

// UsersHandler exposes registration and login endpoints.
type UsersHandler struct {
	engine *engine.Engine
	tokens *auth.TokenManager
}

// NewUsersHandler constructs handler.
func NewUsersHandler(eng *engine.Engine, tokens *auth.TokenManager) *UsersHandler {
	return &UsersHandler{engine: eng, tokens: tokens}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Role == "" || req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("role, name, email, password required", nil)
	}

	user, err := h.engine.RegisterUser(c.UserContext(), req.Role, req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.GenerateToken(user)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": userSummary(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, err := h.engine.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.GenerateToken(user)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userSummary(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

func userSummary(user *domain.User) dto.UserSummary {
	return dto.UserSummary{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		LastAccessAt: user.LastAccessAt,
	}
}
