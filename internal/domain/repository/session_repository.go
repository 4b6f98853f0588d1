// File: backend/services/account-security-service/internal/domain/repository/session_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
)

// SessionRepository defines data access for sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	// FindByUserID returns the user's sessions newest-first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
