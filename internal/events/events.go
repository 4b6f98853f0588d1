// File: backend/services/account-security-service/internal/events/events.go
package events

import (
	"context"
	"time"
)

// EventType identifies a security event published by this service.
type EventType string

const (
	EventPasswordChanged      EventType = "account.password_changed"
	EventEmailChangeRequested EventType = "account.email_change_requested"
	EventEmailChanged         EventType = "account.email_changed"
	EventMFAEnabled           EventType = "account.mfa_enabled"
	EventMFADisabled          EventType = "account.mfa_disabled"
	EventBackupCodeUsed       EventType = "account.backup_code_used"
	EventAccountDeleted       EventType = "account.deleted"
	EventSessionRevoked       EventType = "session.revoked"
)

// CloudEvent is the CloudEvents v1.0 envelope used on the wire.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         *string     `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType *string     `json:"datacontenttype,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

const (
	cloudEventSpecVersion     = "1.0"
	cloudEventDataContentType = "application/json"
)

// Publisher hands security events to the platform event bus. Publishing is
// best-effort: callers log failures but never fail the user operation on a
// broker error.
type Publisher interface {
	Publish(ctx context.Context, eventType EventType, subject string, data interface{}) error
	Close() error
}

// NoOpPublisher discards all events. Used when Kafka is disabled.
type NoOpPublisher struct{}

// Publish implements Publisher.
func (NoOpPublisher) Publish(context.Context, EventType, string, interface{}) error { return nil }

// Close implements Publisher.
func (NoOpPublisher) Close() error { return nil }

var _ Publisher = (*NoOpPublisher)(nil)
