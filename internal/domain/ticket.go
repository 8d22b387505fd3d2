package domain

import "time"

// TicketStatus enumerates lifecycle states.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
	TicketStatusReopened   TicketStatus = "reopened"
)

// TicketKind differentiates the two ticket variants.
type TicketKind string

const (
	TicketKindIncident       TicketKind = "incident"
	TicketKindServiceRequest TicketKind = "service_request"
)

// RequestKind tags a service request as activation or deactivation.
type RequestKind string

const (
	RequestKindActivation   RequestKind = "activation"
	RequestKindDeactivation RequestKind = "deactivation"
)

// ServiceRequestPriority is the fixed priority of every service request.
const ServiceRequestPriority = 5

// Ticket is the aggregate for incidents and service requests. Incidents carry
// a swappable Urgency strategy and an optional affected Service; service
// requests carry a RequestKind and a required Service. Status and Assignee are
// only mutated through the transition methods; role authorization is the
// engine's responsibility, not the entity's.
type Ticket struct {
	ID          int64
	Kind        TicketKind
	Description string
	Requester   *User
	Status      TicketStatus
	Assignee    *User
	CreatedAt   time.Time
	ResolvedAt  *time.Time
	Comments    []*Comment
	Events      []*Event

	Urgency     Urgency
	Service     *Service
	RequestKind RequestKind
}

// NewIncident builds an open incident. The ID is assigned by the engine's
// shared ticket sequence.
func NewIncident(description string, requester *User, urgency Urgency, service *Service) *Ticket {
	return &Ticket{
		Kind:        TicketKindIncident,
		Description: description,
		Requester:   requester,
		Status:      TicketStatusOpen,
		CreatedAt:   time.Now(),
		Urgency:     urgency,
		Service:     service,
	}
}

// NewServiceRequest builds an open activation/deactivation request.
func NewServiceRequest(description string, requester *User, kind RequestKind, service *Service) *Ticket {
	return &Ticket{
		Kind:        TicketKindServiceRequest,
		Description: description,
		Requester:   requester,
		Status:      TicketStatusOpen,
		CreatedAt:   time.Now(),
		RequestKind: kind,
		Service:     service,
	}
}

// Priority delegates to the urgency strategy for incidents; service requests
// have a fixed priority.
func (t *Ticket) Priority() int {
	if t.Kind == TicketKindServiceRequest {
		return ServiceRequestPriority
	}
	return t.Urgency.Priority()
}

// ChangeUrgency swaps the incident's priority strategy at runtime, taking
// effect on the next Priority call.
func (t *Ticket) ChangeUrgency(urgency Urgency) {
	if t.Kind != TicketKindIncident {
		return
	}
	t.Urgency = urgency
}

// AddComment appends an immutable comment and returns it.
func (t *Ticket) AddComment(text string, author *User) *Comment {
	comment := NewComment(text, author)
	t.Comments = append(t.Comments, comment)
	return comment
}

// AppendEvent adds a lifecycle event to the history.
func (t *Ticket) AppendEvent(event *Event) {
	t.Events = append(t.Events, event)
}

// AssignTechnician sets the assignee and moves the ticket to in_progress,
// from any state.
func (t *Ticket) AssignTechnician(technician *User) {
	t.Assignee = technician
	t.Status = TicketStatusInProgress
}

// Derive hands the ticket to another technician without a status change.
func (t *Ticket) Derive(technician *User) {
	t.Assignee = technician
}

// Resolve marks the ticket resolved and stamps the resolution time.
func (t *Ticket) Resolve() {
	t.Status = TicketStatusResolved
	now := time.Now()
	t.ResolvedAt = &now
}

// Reopen moves a resolved ticket back to reopened and clears the resolution
// timestamp. Any other state is left untouched; the return value reports
// whether the transition happened.
func (t *Ticket) Reopen() bool {
	if t.Status != TicketStatusResolved {
		return false
	}
	t.Status = TicketStatusReopened
	t.ResolvedAt = nil
	return true
}
