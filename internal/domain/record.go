package domain

import "time"

// AuditRecord is the shared shape of every timestamped note in the system.
// Records are immutable once constructed.
type AuditRecord struct {
	Body      string
	Author    *User
	CreatedAt time.Time
}

// Comment is a free-text note appended to a ticket.
type Comment struct {
	AuditRecord
}

// NewComment builds an immutable comment authored by the given user.
func NewComment(body string, author *User) *Comment {
	return &Comment{AuditRecord: AuditRecord{Body: body, Author: author, CreatedAt: time.Now()}}
}

// Notification is a message delivered to a supervisor's inbox. The author is
// the supervised employee whose action triggered it.
type Notification struct {
	AuditRecord
	Read bool
}

// NewNotification builds an unread notification.
func NewNotification(body string, author *User) *Notification {
	return &Notification{AuditRecord: AuditRecord{Body: body, Author: author, CreatedAt: time.Now()}}
}

// MarkRead flags the notification as seen.
func (n *Notification) MarkRead() {
	n.Read = true
}
