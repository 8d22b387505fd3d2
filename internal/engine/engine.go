package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/coopdesk/helpdesk-service/internal/auth"
	"github.com/coopdesk/helpdesk-service/internal/domain"
	"github.com/coopdesk/helpdesk-service/internal/events"
	"github.com/coopdesk/helpdesk-service/internal/repository"
	apperrors "github.com/coopdesk/helpdesk-service/pkg/util"
)

// Engine is the facade coordinating every mutation of the help desk: it
// validates actor roles, drives entity transitions, builds audit events and
// fans out supervisor notifications. It owns the authoritative in-memory
// collections of users, tickets and services; the external stores are
// collaborators for persistence and read-through lookups.
//
// A single mutex serializes all public operations: the design assumes
// exclusive access per call, and the lock adapts it to the concurrent HTTP
// frontend.
type Engine struct {
	mu         sync.Mutex
	logger     *zap.Logger
	identity   repository.IdentityRepository
	incidents  repository.IncidentRepository
	dispatcher events.Dispatcher
	orgDomain  string
	bcryptCost int

	users        []*domain.User
	usersByEmail map[string]*domain.User
	tickets      []*domain.Ticket
	services     []*domain.Service

	userSeq    Sequence
	ticketSeq  Sequence
	serviceSeq Sequence
}

// Config holds engine tunables.
type Config struct {
	OrgDomain  string
	BcryptCost int
}

// Dependencies bundles the engine's external collaborators. Identity,
// Incidents and Dispatcher may be nil; persistence and event publication are
// then skipped.
type Dependencies struct {
	Identity   repository.IdentityRepository
	Incidents  repository.IncidentRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// New constructs the engine and seeds the cooperative's service catalog.
func New(cfg Config, deps Dependencies) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:       logger,
		identity:     deps.Identity,
		incidents:    deps.Incidents,
		dispatcher:   deps.Dispatcher,
		orgDomain:    cfg.OrgDomain,
		bcryptCost:   cfg.BcryptCost,
		usersByEmail: make(map[string]*domain.User),
	}
	e.seedServices()
	return e
}

func (e *Engine) seedServices() {
	e.addService("Mobile Telephony", "Cooperative mobile phone service")
	e.addService("Broadband Internet", "High speed internet access")
	e.addService("Cable Television", "Cable TV service")
}

func (e *Engine) addService(name, description string) {
	service := domain.NewService(name, description)
	service.ID = e.serviceSeq.Next()
	e.services = append(e.services, service)
}

// RegisterUser creates a user under the role's constraints, persists it to
// the identity store and admits it to the in-memory collection.
func (e *Engine) RegisterUser(ctx context.Context, roleTag, name, email, password string) (*domain.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	role, err := domain.ParseRole(roleTag)
	if err != nil {
		return nil, err
	}

	exists, err := e.emailExists(ctx, email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if exists {
		return nil, apperrors.NewDuplicateEmail(email)
	}

	hash, err := auth.HashPassword(password, e.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user, err := domain.NewUser(role, name, email, hash, e.orgDomain)
	if err != nil {
		return nil, err
	}
	user.ID = e.userSeq.Next()

	if e.identity != nil {
		if err := e.identity.Save(ctx, role, user, password); err != nil {
			e.logger.Warn("identity store save failed", zap.String("email", email), zap.Error(err))
		}
	}

	e.users = append(e.users, user)
	e.usersByEmail[email] = user

	e.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		Actor:   events.Actor{Email: user.Email, Role: user.Role},
		Payload: events.UserRegisteredPayload{Role: user.Role},
	})
	return user, nil
}

// Authenticate verifies credentials and stamps the last access. Unknown email
// and wrong password produce the same negative result.
func (e *Engine) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user := e.findUserByEmail(ctx, email)
	if user == nil {
		return nil, apperrors.NewInvalidCredentials()
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}
	user.TouchLastAccess()
	return user, nil
}

// LoadUser resolves a user by email through the read-through cache. Used by
// the HTTP auth middleware.
func (e *Engine) LoadUser(ctx context.Context, email string) (*domain.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user := e.findUserByEmail(ctx, email)
	if user == nil {
		return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
	}
	return user, nil
}

// CreateIncident opens an incident for the requester with the given urgency
// strategy and optionally the affected service.
func (e *Engine) CreateIncident(ctx context.Context, requester *domain.User, description string, urgency domain.Urgency, service *domain.Service) (*domain.Ticket, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !requester.CanCreateTicket() {
		return nil, apperrors.NewForbidden("only requesters can create tickets")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if urgency == nil {
		return nil, apperrors.NewValidationError("urgency required", nil)
	}

	incident := domain.NewIncident(description, requester, urgency, service)
	incident.ID = e.ticketSeq.Next()
	e.tickets = append(e.tickets, incident)

	if e.incidents != nil {
		if err := e.incidents.Save(ctx, incident); err != nil {
			e.logger.Warn("incident store save failed", zap.Int64("ticket_id", incident.ID), zap.Error(err))
		}
	}

	incident.AppendEvent(domain.NewCreationEvent(incident, requester))

	e.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: incident.ID,
		Actor:    events.Actor{Email: requester.Email, Role: requester.Role},
		Payload: events.TicketCreatedPayload{
			Kind:        incident.Kind,
			Priority:    incident.Priority(),
			Service:     serviceName(service),
			Description: incident.Description,
		},
	})
	return incident, nil
}

// CreateServiceRequest opens an activation/deactivation request. The service
// is required and the priority is fixed.
func (e *Engine) CreateServiceRequest(ctx context.Context, requester *domain.User, description string, kind domain.RequestKind, service *domain.Service) (*domain.Ticket, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !requester.CanCreateTicket() {
		return nil, apperrors.NewForbidden("only requesters can create tickets")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if kind != domain.RequestKindActivation && kind != domain.RequestKindDeactivation {
		return nil, apperrors.NewValidationError("request kind must be activation or deactivation", nil)
	}
	if service == nil {
		return nil, apperrors.NewValidationError("service required", nil)
	}

	request := domain.NewServiceRequest(description, requester, kind, service)
	request.ID = e.ticketSeq.Next()
	e.tickets = append(e.tickets, request)

	request.AppendEvent(domain.NewCreationEvent(request, requester))

	e.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: request.ID,
		Actor:    events.Actor{Email: requester.Email, Role: requester.Role},
		Payload: events.TicketCreatedPayload{
			Kind:        request.Kind,
			Priority:    request.Priority(),
			Service:     serviceName(service),
			Description: request.Description,
		},
	})
	return request, nil
}

// AssignTechnician moves the ticket to in_progress under the technician, from
// any state, and notifies the operator's supervisors.
func (e *Engine) AssignTechnician(ctx context.Context, ticket *domain.Ticket, technician, operator *domain.User) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !operator.CanAssignTechnician() {
		return apperrors.NewForbidden("only operators can assign technicians")
	}
	if technician.Role != domain.RoleTechnician {
		return apperrors.NewForbidden("assignee must be a technician")
	}

	ticket.AssignTechnician(technician)
	ticket.AppendEvent(domain.NewAssignmentEvent(ticket, technician, operator))

	e.notifySupervisors(operator,
		fmt.Sprintf("Operator %s assigned ticket #%d to %s", operator.Name, ticket.ID, technician.Name))

	e.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    events.Actor{Email: operator.Email, Role: operator.Role},
		Payload:  events.TicketAssignedPayload{TechnicianEmail: technician.Email},
	})
	return nil
}

// Derive hands the ticket from its current assignee to another technician
// without changing the status, and notifies the source's supervisors.
func (e *Engine) Derive(ctx context.Context, ticket *domain.Ticket, source, dest *domain.User) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if source.Role != domain.RoleTechnician {
		return apperrors.NewForbidden("only technicians can derive tickets")
	}
	if dest.Role != domain.RoleTechnician {
		return apperrors.NewForbidden("tickets can only be derived to technicians")
	}
	if ticket.Assignee != source {
		return apperrors.NewNotAssignee("only the assigned technician can derive the ticket")
	}

	ticket.Derive(dest)
	ticket.AppendEvent(domain.NewDerivationEvent(ticket, source, dest))

	e.notifySupervisors(source,
		fmt.Sprintf("Technician %s derived ticket #%d to %s", source.Name, ticket.ID, dest.Name))

	e.publish(ctx, events.Event{
		Type:     events.EventTicketDerived,
		TicketID: ticket.ID,
		Actor:    events.Actor{Email: source.Email, Role: source.Role},
		Payload: events.TicketDerivedPayload{
			SourceTechnicianEmail: source.Email,
			DestTechnicianEmail:   dest.Email,
		},
	})
	return nil
}

// Resolve marks the ticket resolved by its assigned technician, appends the
// solution comment after the event, and notifies the technician's
// supervisors.
func (e *Engine) Resolve(ctx context.Context, ticket *domain.Ticket, technician *domain.User, solution string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if technician.Role != domain.RoleTechnician {
		return apperrors.NewForbidden("only technicians can resolve tickets")
	}
	if ticket.Assignee != technician {
		return apperrors.NewNotAssignee("only the assigned technician can resolve the ticket")
	}

	ticket.Resolve()
	ticket.AppendEvent(domain.NewResolutionEvent(ticket, technician, solution))
	ticket.AddComment("Solution: "+solution, technician)

	e.notifySupervisors(technician,
		fmt.Sprintf("Technician %s resolved ticket #%d", technician.Name, ticket.ID))

	e.publish(ctx, events.Event{
		Type:     events.EventTicketResolved,
		TicketID: ticket.ID,
		Actor:    events.Actor{Email: technician.Email, Role: technician.Role},
		Payload:  events.TicketResolvedPayload{Solution: solution},
	})
	return nil
}

// Reopen returns a resolved ticket to circulation. Operators and technicians
// may reopen; a ticket that is not resolved keeps its status while the event
// and reason comment are still recorded. No supervisors are notified.
func (e *Engine) Reopen(ctx context.Context, ticket *domain.Ticket, actor *domain.User, reason string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if actor.Role != domain.RoleOperator && actor.Role != domain.RoleTechnician {
		return apperrors.NewForbidden("only operators or technicians can reopen tickets")
	}

	ticket.Reopen()
	ticket.AppendEvent(domain.NewReopeningEvent(ticket, actor, reason))
	ticket.AddComment("Reopened: "+reason, actor)

	e.publish(ctx, events.Event{
		Type:     events.EventTicketReopened,
		TicketID: ticket.ID,
		Actor:    events.Actor{Email: actor.Email, Role: actor.Role},
		Payload:  events.TicketReopenedPayload{Reason: reason},
	})
	return nil
}

// AddComment appends a comment to the ticket. Open to every authenticated
// role; the status is untouched.
func (e *Engine) AddComment(ctx context.Context, ticket *domain.Ticket, author *domain.User, text string) (*domain.Comment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("comment text required", nil)
	}
	comment := ticket.AddComment(text, author)

	e.publish(ctx, events.Event{
		Type:     events.EventTicketCommented,
		TicketID: ticket.ID,
		Actor:    events.Actor{Email: author.Email, Role: author.Role},
		Payload:  events.TicketCommentedPayload{BodyPreview: bodyPreview(text, 120)},
	})
	return comment, nil
}

// ListTickets returns the role-scoped view: requesters see their own tickets,
// technicians their assignments, operators and supervisors everything.
func (e *Engine) ListTickets(user *domain.User) []*domain.Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch user.Role {
	case domain.RoleRequester:
		visible := make([]*domain.Ticket, 0)
		for _, t := range e.tickets {
			if t.Requester == user {
				visible = append(visible, t)
			}
		}
		return visible
	case domain.RoleOperator, domain.RoleSupervisor:
		return append([]*domain.Ticket(nil), e.tickets...)
	case domain.RoleTechnician:
		visible := make([]*domain.Ticket, 0)
		for _, t := range e.tickets {
			if t.Assignee == user {
				visible = append(visible, t)
			}
		}
		return visible
	default:
		return []*domain.Ticket{}
	}
}

// GetTicket fetches a ticket by ID.
func (e *Engine) GetTicket(id int64) (*domain.Ticket, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, t := range e.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
}

// ListServices returns the active services in insertion order.
func (e *Engine) ListServices() []*domain.Service {
	e.mu.Lock()
	defer e.mu.Unlock()

	active := make([]*domain.Service, 0, len(e.services))
	for _, s := range e.services {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}

// FindService resolves a service by its exact name.
func (e *Engine) FindService(name string) (*domain.Service, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, s := range e.services {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, apperrors.NewNotFound("service", map[string]any{"name": name})
}

// AssignSupervisor subscribes an employee under a supervisor, idempotently.
func (e *Engine) AssignSupervisor(supervisor, employee *domain.User) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if supervisor.Role != domain.RoleSupervisor {
		return apperrors.NewInvalidActor("first argument must be a supervisor")
	}
	return supervisor.Subscribe(employee)
}

// notifySupervisors delivers one notification per supervisor currently
// subscribed to the employee, in user-registration order. Zero matches is a
// silent no-op. Callers hold the engine lock.
func (e *Engine) notifySupervisors(employee *domain.User, message string) {
	for _, u := range e.users {
		if u.Role != domain.RoleSupervisor {
			continue
		}
		if u.Supervises(employee) {
			u.Receive(domain.NewNotification(message, employee))
		}
	}
}

// emailExists consults the cache first, then the identity store.
func (e *Engine) emailExists(ctx context.Context, email string) (bool, error) {
	if _, ok := e.usersByEmail[email]; ok {
		return true, nil
	}
	if e.identity == nil {
		return false, nil
	}
	_, err := e.identity.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// findUserByEmail is the read-through lookup: in-memory cache first, falling
// back to the identity store and reconstructing the domain user from the
// record. Reconstructions are cached; there is no eviction at this scale.
// Callers hold the engine lock.
func (e *Engine) findUserByEmail(ctx context.Context, email string) *domain.User {
	if user, ok := e.usersByEmail[email]; ok {
		return user
	}
	if e.identity == nil {
		return nil
	}
	record, err := e.identity.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			e.logger.Warn("identity store lookup failed", zap.String("email", email), zap.Error(err))
		}
		return nil
	}

	role, err := domain.ParseRole(record.Role)
	if err != nil {
		e.logger.Warn("identity store returned unknown role", zap.String("role", record.Role))
		return nil
	}
	hash, err := auth.HashPassword(record.Password, e.bcryptCost)
	if err != nil {
		return nil
	}
	user, err := domain.NewUser(role, record.Name, record.Email, hash, e.orgDomain)
	if err != nil {
		e.logger.Warn("identity store record violates role constraints", zap.String("email", email), zap.Error(err))
		return nil
	}
	user.ID = record.ID
	e.userSeq.Advance(record.ID)

	e.users = append(e.users, user)
	e.usersByEmail[email] = user
	return user
}

func (e *Engine) publish(ctx context.Context, event events.Event) {
	if e.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = e.dispatcher.Publish(ctx, event)
}

func serviceName(service *domain.Service) string {
	if service == nil {
		return ""
	}
	return service.Name
}

func bodyPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
