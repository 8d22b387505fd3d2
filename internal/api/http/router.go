package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopdesk/helpdesk-service/internal/api/http/handlers"
	"github.com/coopdesk/helpdesk-service/internal/auth"
	"github.com/coopdesk/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Services       *handlers.ServicesHandler
	Supervisors    *handlers.SupervisorsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	tickets := protected.Group("/tickets")
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Post("/incidents", cfg.Tickets.CreateIncident)
	tickets.Post("/service-requests", cfg.Tickets.CreateServiceRequest)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/assign", cfg.Tickets.AssignTechnician)
	tickets.Post("/:id/derive", cfg.Tickets.Derive)
	tickets.Post("/:id/resolve", cfg.Tickets.Resolve)
	tickets.Post("/:id/reopen", cfg.Tickets.Reopen)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)

	protected.Get("/services", cfg.Services.ListServices)

	supervisors := protected.Group("/supervisors", auth.RequireRole(domain.RoleSupervisor))
	supervisors.Post("/subscriptions", cfg.Supervisors.Subscribe)
	supervisors.Get("/notifications", cfg.Supervisors.Notifications)
}
