package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopdesk/helpdesk-service/internal/api/dto"
	"github.com/coopdesk/helpdesk-service/internal/engine"
)

// ServicesHandler exposes the service catalog.
type ServicesHandler struct {
	engine *engine.Engine
}

// NewServicesHandler constructs handler.
func NewServicesHandler(eng *engine.Engine) *ServicesHandler {
	return &ServicesHandler{engine: eng}
}

// ListServices GET /services.
func (h *ServicesHandler) ListServices(c *fiber.Ctx) error {
	services := h.engine.ListServices()
	items := make([]dto.ServiceResponse, 0, len(services))
	for _, s := range services {
		items = append(items, dto.ServiceResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Active:      s.Active,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
