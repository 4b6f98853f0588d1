// File: backend/services/account-security-service/internal/service/session_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/repository"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/events"
)

// SessionService lists and revokes a user's sessions. Every operation is
// scoped to the authenticated caller; revoking a session owned by another
// user is rejected before anything is deleted.
type SessionService struct {
	sessionRepo repository.SessionRepository
	publisher   events.Publisher
	logger      *zap.Logger
}

func NewSessionService(sessionRepo repository.SessionRepository, publisher events.Publisher, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		publisher:   publisher,
		logger:      logger.Named("session_service"),
	}
}

// List returns the caller's sessions newest-first, with device labels derived
// from the stored User-Agent. A user with no sessions gets an empty list.
func (s *SessionService) List(ctx context.Context, userID uuid.UUID) ([]models.SessionResponse, error) {
	sessions, err := s.sessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	out := make([]models.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sess.ToResponse())
	}
	return out, nil
}

// Revoke deletes the session with the given id. The ownership check runs
// before the delete: a missing session yields not-found, a session belonging
// to a different user yields forbidden, and nothing is deleted in either case.
func (s *SessionService) Revoke(ctx context.Context, requesterID, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.UserID != requesterID {
		s.logger.Warn("session revocation denied",
			zap.String("requester_id", requesterID.String()),
			zap.String("session_id", sessionID.String()),
		)
		return domainErrors.ErrForbidden
	}

	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}

	s.logger.Info("session revoked",
		zap.String("user_id", requesterID.String()),
		zap.String("session_id", sessionID.String()),
	)
	if err := s.publisher.Publish(ctx, events.EventSessionRevoked, requesterID.String(), map[string]string{
		"user_id":    requesterID.String(),
		"session_id": sessionID.String(),
	}); err != nil {
		s.logger.Error("publishing event failed", zap.Error(err))
	}
	return nil
}

// RevokeAll deletes every session the user has and returns the count.
// Used by the erasure cascade and exposed for bulk sign-out.
func (s *SessionService) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	removed, err := s.sessionRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("revoking all sessions: %w", err)
	}
	if removed > 0 {
		s.logger.Info("all sessions revoked",
			zap.String("user_id", userID.String()),
			zap.Int64("count", removed),
		)
	}
	return removed, nil
}
