package models

import (
	"time"

	"github.com/google/uuid"
)

// ExportSnapshot is the ephemeral, read-only composite handed to the user on a
// data-export request. It is assembled in memory and never persisted.
//
// Redaction is structural: none of the DTO types below declare password
// hashes, TOTP secrets or backup codes, so those fields cannot leak through
// serialization regardless of what the underlying reads returned.
type ExportSnapshot struct {
	GeneratedAt          time.Time             `json:"generated_at"`
	User                 UserResponse          `json:"user"`
	Sessions             []SessionResponse     `json:"sessions"`
	LoginHistory         []LoginEventExport    `json:"login_history"`
	PrivacySettings      *PrivacySettings      `json:"privacy_settings,omitempty"`
	NotificationSettings *NotificationSettings `json:"notification_settings,omitempty"`
	Subscriptions        []SubscriptionExport  `json:"subscriptions"`
}

// LoginEvent is a login-history row. Written by the surrounding platform;
// this service only exports and cascade-deletes it.
type LoginEvent struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	IPAddress *string   `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent *string   `json:"user_agent,omitempty" db:"user_agent"`
	Success   bool      `json:"success" db:"success"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LoginEventExport is the export shape of a login-history row.
type LoginEventExport struct {
	IPAddress *string   `json:"ip_address,omitempty"`
	UserAgent *string   `json:"user_agent,omitempty"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

// ToExport converts a LoginEvent to its export shape.
func (e *LoginEvent) ToExport() LoginEventExport {
	return LoginEventExport{
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
		Success:   e.Success,
		CreatedAt: e.CreatedAt,
	}
}

// Subscription is a billing subscription owned by a user.
type Subscription struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	UserID   uuid.UUID  `json:"user_id" db:"user_id"`
	Plan     string     `json:"plan" db:"plan"`
	Status   string     `json:"status" db:"status"`
	RenewsAt *time.Time `json:"renews_at,omitempty" db:"renews_at"`
}

// Invoice is a billing invoice attached to a subscription.
type Invoice struct {
	ID             uuid.UUID `json:"id" db:"id"`
	SubscriptionID uuid.UUID `json:"subscription_id" db:"subscription_id"`
	AmountCents    int64     `json:"amount_cents" db:"amount_cents"`
	Currency       string    `json:"currency" db:"currency"`
	IssuedAt       time.Time `json:"issued_at" db:"issued_at"`
}

// SubscriptionExport is the export shape of a subscription with its invoices.
type SubscriptionExport struct {
	ID       uuid.UUID       `json:"id"`
	Plan     string          `json:"plan"`
	Status   string          `json:"status"`
	RenewsAt *time.Time      `json:"renews_at,omitempty"`
	Invoices []InvoiceExport `json:"invoices"`
}

// InvoiceExport is the export shape of an invoice.
type InvoiceExport struct {
	ID          uuid.UUID `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	IssuedAt    time.Time `json:"issued_at"`
}
