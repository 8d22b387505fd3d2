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

// SupervisorsHandler exposes supervisor subscription and inbox endpoints.
type SupervisorsHandler struct {
	engine *engine.Engine
}

// NewSupervisorsHandler constructs handler.
func NewSupervisorsHandler(eng *engine.Engine) *SupervisorsHandler {
	return &SupervisorsHandler{engine: eng}
}

// Subscribe POST /supervisors/subscriptions.
func (h *SupervisorsHandler) Subscribe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.EmployeeEmail == "" {
		return apperrors.NewValidationError("employee_email required", nil)
	}

	employee, err := h.engine.LoadUser(c.UserContext(), req.EmployeeEmail)
	if err != nil {
		return err
	}
	if err := h.engine.AssignSupervisor(principal, employee); err != nil {
		return err
	}
	return c.Status(http.StatusNoContent).Send(nil)
}

// Notifications GET /supervisors/notifications. ?unread=true filters to the
// unread subsequence.
func (h *SupervisorsHandler) Notifications(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if principal.Role != domain.RoleSupervisor {
		return apperrors.NewInvalidActor("supervisor role required")
	}

	inbox := principal.Inbox
	if c.Query("unread") == "true" {
		inbox = principal.UnreadNotifications()
	}

	items := make([]dto.NotificationResponse, 0, len(inbox))
	for _, n := range inbox {
		items = append(items, dto.NotificationResponse{
			Body:      n.Body,
			FromEmail: n.Author.Email,
			CreatedAt: n.CreatedAt,
			Read:      n.Read,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
