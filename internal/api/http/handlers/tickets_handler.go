package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/coopdesk/helpdesk-service/internal/api/dto"
	"github.com/coopdesk/helpdesk-service/internal/auth"
	"github.com/coopdesk/helpdesk-service/internal/domain"
	"github.com/coopdesk/helpdesk-service/internal/engine"
	apperrors "github.com/coopdesk/helpdesk-service/pkg/util"
)

// TicketsHandler exposes the ticket lifecycle endpoints.
type TicketsHandler struct {
	engine *engine.Engine
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(eng *engine.Engine) *TicketsHandler {
	return &TicketsHandler{engine: eng}
}

// CreateIncident POST /tickets/incidents.
func (h *TicketsHandler) CreateIncident(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Description) == "" || req.Urgency == "" {
		return apperrors.NewValidationError("description and urgency required", nil)
	}

	urgency, err := domain.ParseUrgency(req.Urgency)
	if err != nil {
		return apperrors.NewValidationError("urgency must be critical, important or minor", nil)
	}

	var service *domain.Service
	if req.Service != "" {
		service, err = h.engine.FindService(req.Service)
		if err != nil {
			return err
		}
	}

	ticket, err := h.engine.CreateIncident(c.UserContext(), principal, req.Description, urgency, service)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// CreateServiceRequest POST /tickets/service-requests.
func (h *TicketsHandler) CreateServiceRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateServiceRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Description) == "" || req.Kind == "" || req.Service == "" {
		return apperrors.NewValidationError("description, kind, service required", nil)
	}

	service, err := h.engine.FindService(req.Service)
	if err != nil {
		return err
	}

	ticket, err := h.engine.CreateServiceRequest(c.UserContext(), principal, req.Description, domain.RequestKind(req.Kind), service)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets := h.engine.ListTickets(principal)
	items := make([]dto.TicketSummary, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, ticketSummary(t))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.ticketFromParams(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// AssignTechnician POST /tickets/:id/assign.
func (h *TicketsHandler) AssignTechnician(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.ticketFromParams(c)
	if err != nil {
		return err
	}
	var req dto.AssignTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	technician, err := h.engine.LoadUser(c.UserContext(), req.TechnicianEmail)
	if err != nil {
		return err
	}
	if err := h.engine.AssignTechnician(c.UserContext(), ticket, technician, principal); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// Derive POST /tickets/:id/derive.
func (h *TicketsHandler) Derive(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.ticketFromParams(c)
	if err != nil {
		return err
	}
	var req dto.AssignTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	dest, err := h.engine.LoadUser(c.UserContext(), req.TechnicianEmail)
	if err != nil {
		return err
	}
	if err := h.engine.Derive(c.UserContext(), ticket, principal, dest); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// Resolve POST /tickets/:id/resolve.
func (h *TicketsHandler) Resolve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.ticketFromParams(c)
	if err != nil {
		return err
	}
	var req dto.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Solution) == "" {
		return apperrors.NewValidationError("solution required", nil)
	}
	if err := h.engine.Resolve(c.UserContext(), ticket, principal, req.Solution); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// Reopen POST /tickets/:id/reopen.
func (h *TicketsHandler) Reopen(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.ticketFromParams(c)
	if err != nil {
		return err
	}
	var req dto.ReopenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return apperrors.NewValidationError("reason required", nil)
	}
	if err := h.engine.Reopen(c.UserContext(), ticket, principal, req.Reason); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.ticketFromParams(c)
	if err != nil {
		return err
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.engine.AddComment(c.UserContext(), ticket, principal, req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

func (h *TicketsHandler) ticketFromParams(c *fiber.Ctx) (*domain.Ticket, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid ticket id", nil)
	}
	return h.engine.GetTicket(id)
}

func ticketSummary(t *domain.Ticket) dto.TicketSummary {
	summary := dto.TicketSummary{
		ID:             t.ID,
		Kind:           string(t.Kind),
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       t.Priority(),
		RequesterEmail: t.Requester.Email,
		CreatedAt:      t.CreatedAt,
		ResolvedAt:     t.ResolvedAt,
	}
	if t.Assignee != nil {
		summary.AssigneeEmail = t.Assignee.Email
	}
	if t.Service != nil {
		summary.Service = t.Service.Name
	}
	return summary
}

func ticketDetail(t *domain.Ticket) dto.TicketDetail {
	detail := dto.TicketDetail{TicketSummary: ticketSummary(t)}
	detail.Comments = make([]dto.CommentResponse, 0, len(t.Comments))
	for _, comment := range t.Comments {
		detail.Comments = append(detail.Comments, commentResponse(comment))
	}
	detail.Events = make([]dto.EventResponse, 0, len(t.Events))
	for _, event := range t.Events {
		detail.Events = append(detail.Events, dto.EventResponse{
			Kind:        string(event.Kind),
			Body:        event.Body,
			AuthorEmail: event.Author.Email,
			CreatedAt:   event.CreatedAt,
		})
	}
	return detail
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		Body:        comment.Body,
		AuthorEmail: comment.Author.Email,
		CreatedAt:   comment.CreatedAt,
	}
}
