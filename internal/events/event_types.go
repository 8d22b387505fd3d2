package events

import (
	"time"

	"github.com/coopdesk/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketAssigned  EventType = "ticket_assigned"
	EventTicketDerived   EventType = "ticket_derived"
	EventTicketResolved  EventType = "ticket_resolved"
	EventTicketReopened  EventType = "ticket_reopened"
	EventTicketCommented EventType = "ticket_commented"
	EventUserRegistered  EventType = "user_registered"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Event represents a domain event emitted by the lifecycle engine.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Kind        domain.TicketKind `json:"kind"`
	Priority    int               `json:"priority"`
	Service     string            `json:"service,omitempty"`
	Description string            `json:"description"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TechnicianEmail string `json:"technician_email"`
}

// TicketDerivedPayload payload.
type TicketDerivedPayload struct {
	SourceTechnicianEmail string `json:"source_technician_email"`
	DestTechnicianEmail   string `json:"dest_technician_email"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	Solution string `json:"solution"`
}

// TicketReopenedPayload payload.
type TicketReopenedPayload struct {
	Reason string `json:"reason"`
}

// TicketCommentedPayload payload.
type TicketCommentedPayload struct {
	BodyPreview string `json:"body_preview"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Role domain.Role `json:"role"`
}
