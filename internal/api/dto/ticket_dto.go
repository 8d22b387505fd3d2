package dto

import "time"

// CreateIncidentRequest payload for incident creation. Urgency is one of
// critical/important/minor; the service is referenced by name and optional.
type CreateIncidentRequest struct {
	Description string `json:"description"`
	Urgency     string `json:"urgency"`
	Service     string `json:"service,omitempty"`
}

// CreateServiceRequestRequest payload for activation/deactivation requests.
type CreateServiceRequestRequest struct {
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Service     string `json:"service"`
}

// AssignTechnicianRequest payload for assignment and derivation.
type AssignTechnicianRequest struct {
	TechnicianEmail string `json:"technician_email"`
}

// ResolveRequest payload.
type ResolveRequest struct {
	Solution string `json:"solution"`
}

// ReopenRequest payload.
type ReopenRequest struct {
	Reason string `json:"reason"`
}

// CommentRequest payload.
type CommentRequest struct {
	Text string `json:"text"`
}

// TicketSummary is the list projection of a ticket.
type TicketSummary struct {
	ID             int64      `json:"id"`
	Kind           string     `json:"kind"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       int        `json:"priority"`
	RequesterEmail string     `json:"requester_email"`
	AssigneeEmail  string     `json:"assignee_email,omitempty"`
	Service        string     `json:"service,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// TicketDetail extends the summary with history.
type TicketDetail struct {
	TicketSummary
	Comments []CommentResponse `json:"comments"`
	Events   []EventResponse   `json:"events"`
}

// CommentResponse is a ticket comment projection.
type CommentResponse struct {
	Body        string    `json:"body"`
	AuthorEmail string    `json:"author_email"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventResponse is a lifecycle event projection.
type EventResponse struct {
	Kind        string    `json:"kind"`
	Body        string    `json:"body"`
	AuthorEmail string    `json:"author_email"`
	CreatedAt   time.Time `json:"created_at"`
}

// ServiceResponse is a catalog entry.
type ServiceResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}
