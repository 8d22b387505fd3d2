package domain

import (
	"fmt"
	"time"
)

// EventKind tags a lifecycle event.
type EventKind string

const (
	EventKindCreation     EventKind = "creation"
	EventKindAssignment   EventKind = "assignment"
	EventKindDerivation   EventKind = "derivation"
	EventKindResolution   EventKind = "resolution"
	EventKindReopening    EventKind = "reopening"
	EventKindStatusChange EventKind = "status_change"
)

// Event is a structured audit record describing a lifecycle transition.
// Events are built exclusively through the constructors below so that the
// message format stays consistent with the kind tag.
type Event struct {
	AuditRecord
	Kind EventKind
}

func newEvent(body string, author *User, kind EventKind) *Event {
	return &Event{
		AuditRecord: AuditRecord{Body: body, Author: author, CreatedAt: time.Now()},
		Kind:        kind,
	}
}

// NewCreationEvent records a ticket being opened, authored by the requester.
func NewCreationEvent(ticket *Ticket, actor *User) *Event {
	return newEvent(fmt.Sprintf("Ticket #%d created", ticket.ID), actor, EventKindCreation)
}

// NewAssignmentEvent records an operator assigning a technician.
func NewAssignmentEvent(ticket *Ticket, technician, operator *User) *Event {
	return newEvent(fmt.Sprintf("Ticket #%d assigned to %s", ticket.ID, technician.Name),
		operator, EventKindAssignment)
}

// NewDerivationEvent records a handoff between technicians, authored by the
// originating technician.
func NewDerivationEvent(ticket *Ticket, source, dest *User) *Event {
	return newEvent(fmt.Sprintf("Ticket #%d derived from %s to %s", ticket.ID, source.Name, dest.Name),
		source, EventKindDerivation)
}

// NewResolutionEvent records a technician resolving the ticket.
func NewResolutionEvent(ticket *Ticket, technician *User, solution string) *Event {
	return newEvent(fmt.Sprintf("Ticket #%d resolved: %s", ticket.ID, solution),
		technician, EventKindResolution)
}

// NewReopeningEvent records a ticket being reopened.
func NewReopeningEvent(ticket *Ticket, actor *User, reason string) *Event {
	return newEvent(fmt.Sprintf("Ticket #%d reopened: %s", ticket.ID, reason),
		actor, EventKindReopening)
}

// NewStatusChangeEvent records a generic status transition. No current flow
// emits it; it is kept as the hook for transitions outside the named set.
func NewStatusChangeEvent(ticket *Ticket, actor *User, oldStatus, newStatus TicketStatus) *Event {
	return newEvent(fmt.Sprintf("Ticket #%d changed from %s to %s", ticket.ID, oldStatus, newStatus),
		actor, EventKindStatusChange)
}
