package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mssola/user_agent"
)

// Session represents an active session in the database.
type Session struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	UserAgent  *string   `json:"user_agent,omitempty" db:"user_agent"`
	IPAddress  *string   `json:"ip_address,omitempty" db:"ip_address"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at" db:"last_seen_at"`
}

// SessionResponse structures the session data returned by API endpoints.
// Device is a human-readable label derived from the stored User-Agent.
type SessionResponse struct {
	ID         uuid.UUID `json:"id"`
	Device     string    `json:"device"`
	IPAddress  *string   `json:"ip_address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// ToResponse converts a Session model to an API SessionResponse.
func (s *Session) ToResponse() SessionResponse {
	return SessionResponse{
		ID:         s.ID,
		Device:     s.DeviceLabel(),
		IPAddress:  s.IPAddress,
		CreatedAt:  s.CreatedAt,
		LastSeenAt: s.LastSeenAt,
	}
}

// DeviceLabel derives a "Browser on OS" label from the session's User-Agent.
func (s *Session) DeviceLabel() string {
	if s.UserAgent == nil || *s.UserAgent == "" {
		return "Unknown device"
	}
	ua := user_agent.New(*s.UserAgent)
	browser, _ := ua.Browser()
	os := ua.OSInfo().Name
	switch {
	case browser != "" && os != "":
		return browser + " on " + os
	case browser != "":
		return browser
	case os != "":
		return os
	default:
		return "Unknown device"
	}
}
