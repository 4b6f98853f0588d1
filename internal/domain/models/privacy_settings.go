package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfileVisibility enumerates who may see a user's profile.
type ProfileVisibility string

const (
	VisibilityPublic  ProfileVisibility = "public"
	VisibilityFriends ProfileVisibility = "friends"
	VisibilityPrivate ProfileVisibility = "private"
)

// Valid reports whether v is a known visibility value.
func (v ProfileVisibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate:
		return true
	}
	return false
}

// PrivacySettings holds per-user privacy flags. Mutated only by the owner.
type PrivacySettings struct {
	UserID            uuid.UUID         `json:"user_id" db:"user_id"`
	ProfileVisibility ProfileVisibility `json:"profile_visibility" db:"profile_visibility"`
	DataSharing       bool              `json:"data_sharing" db:"data_sharing"`
	AnalyticsEnabled  bool              `json:"analytics_enabled" db:"analytics_enabled"`
	CookiesAccepted   bool              `json:"cookies_accepted" db:"cookies_accepted"`
	CookiesAcceptedAt *time.Time        `json:"cookies_accepted_at,omitempty" db:"cookies_accepted_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// DefaultPrivacySettings returns the settings applied to a user who has never
// saved any.
func DefaultPrivacySettings(userID uuid.UUID) *PrivacySettings {
	return &PrivacySettings{
		UserID:            userID,
		ProfileVisibility: VisibilityPublic,
		DataSharing:       false,
		AnalyticsEnabled:  true,
		CookiesAccepted:   false,
	}
}

// UpdatePrivacySettingsRequest carries a partial settings update. Nil fields
// are left unchanged.
type UpdatePrivacySettingsRequest struct {
	ProfileVisibility *ProfileVisibility `json:"profile_visibility,omitempty"`
	DataSharing       *bool              `json:"data_sharing,omitempty"`
	AnalyticsEnabled  *bool              `json:"analytics_enabled,omitempty"`
	CookiesAccepted   *bool              `json:"cookies_accepted,omitempty"`
}

// NotificationSettings holds per-user delivery-channel flags. The delivery
// stack itself lives outside this service.
type NotificationSettings struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	EmailEnabled bool      `json:"email_enabled" db:"email_enabled"`
	SMSEnabled   bool      `json:"sms_enabled" db:"sms_enabled"`
	PushEnabled  bool      `json:"push_enabled" db:"push_enabled"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
