package domain

import (
	"strings"
	"time"

	apperrors "github.com/coopdesk/helpdesk-service/pkg/util"
)

// Role enumerates the user roles in the help desk.
type Role string

const (
	RoleRequester  Role = "requester"
	RoleOperator   Role = "operator"
	RoleTechnician Role = "technician"
	RoleSupervisor Role = "supervisor"
)

// ParseRole validates a role tag from the wire.
func ParseRole(tag string) (Role, error) {
	switch Role(tag) {
	case RoleRequester, RoleOperator, RoleTechnician, RoleSupervisor:
		return Role(tag), nil
	default:
		return "", apperrors.NewInvalidRole(tag)
	}
}

// User is any account in the system. Supervised and Inbox are only populated
// for supervisors.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	LastAccessAt *time.Time

	Supervised []*User
	Inbox      []*Notification
}

// NewUser constructs a user, enforcing the role's email-domain constraint.
// Requesters accept any email; employee roles must belong to orgDomain.
// The password hash is produced by the caller; no plaintext is retained.
func NewUser(role Role, name, email, passwordHash, orgDomain string) (*User, error) {
	if role != RoleRequester && !strings.HasSuffix(email, "@"+orgDomain) {
		return nil, apperrors.NewConstraintViolation(
			string(role)+" email must belong to @"+orgDomain,
			map[string]any{"email": email, "role": string(role)})
	}
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}, nil
}

// CanCreateTicket reports whether the role may author tickets.
func (u *User) CanCreateTicket() bool {
	return u.Role == RoleRequester
}

// CanAssignTechnician reports whether the role may assign technicians.
func (u *User) CanAssignTechnician() bool {
	return u.Role == RoleOperator
}

// IsEmployee reports whether the user can be supervised.
func (u *User) IsEmployee() bool {
	return u.Role == RoleOperator || u.Role == RoleTechnician
}

// TouchLastAccess stamps a successful authentication.
func (u *User) TouchLastAccess() {
	now := time.Now()
	u.LastAccessAt = &now
}

// Subscribe adds an employee to the supervisor's supervised set. The add is
// idempotent; only operators and technicians can be supervised.
func (u *User) Subscribe(employee *User) error {
	if !employee.IsEmployee() {
		return apperrors.NewForbidden("only operators and technicians can be supervised")
	}
	for _, existing := range u.Supervised {
		if existing == employee {
			return nil
		}
	}
	u.Supervised = append(u.Supervised, employee)
	return nil
}

// Supervises reports whether the employee is in the supervised set.
func (u *User) Supervises(employee *User) bool {
	for _, existing := range u.Supervised {
		if existing == employee {
			return true
		}
	}
	return false
}

// Receive appends a notification to the supervisor's inbox.
func (u *User) Receive(n *Notification) {
	u.Inbox = append(u.Inbox, n)
}

// UnreadNotifications returns the unread subsequence of the inbox in
// delivery order.
func (u *User) UnreadNotifications() []*Notification {
	unread := make([]*Notification, 0, len(u.Inbox))
	for _, n := range u.Inbox {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	return unread
}
