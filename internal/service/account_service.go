// File: backend/services/account-security-service/internal/service/account_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	domainInterfaces "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/interfaces"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/repository"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/events"
)

// AccountService implements credential rotation, data export and account
// erasure. Password and email changes require proof of the current password;
// email changes additionally require proof of control of the new address via
// a verification token.
type AccountService struct {
	userRepo         repository.UserRepository
	sessionRepo      repository.SessionRepository
	tokenService     *VerificationTokenService
	secretRepo       repository.MFASecretRepository
	backupCodeRepo   repository.MFABackupCodeRepository
	privacyRepo      repository.PrivacySettingsRepository
	notificationRepo repository.NotificationSettingsRepository
	loginHistoryRepo repository.LoginHistoryRepository
	billingRepo      repository.BillingRepository
	passwordService  domainInterfaces.PasswordService
	notifier         domainInterfaces.NotificationService
	txManager        TransactionManager
	publisher        events.Publisher
	logger           *zap.Logger
	emailChangeTTL   time.Duration
}

// AccountServiceConfig carries the dependencies of NewAccountService.
type AccountServiceConfig struct {
	UserRepo         repository.UserRepository
	SessionRepo      repository.SessionRepository
	TokenService     *VerificationTokenService
	SecretRepo       repository.MFASecretRepository
	BackupCodeRepo   repository.MFABackupCodeRepository
	PrivacyRepo      repository.PrivacySettingsRepository
	NotificationRepo repository.NotificationSettingsRepository
	LoginHistoryRepo repository.LoginHistoryRepository
	BillingRepo      repository.BillingRepository
	PasswordService  domainInterfaces.PasswordService
	Notifier         domainInterfaces.NotificationService
	TxManager        TransactionManager
	Publisher        events.Publisher
	Logger           *zap.Logger
	EmailChangeTTL   time.Duration
}

func NewAccountService(cfg AccountServiceConfig) *AccountService {
	ttl := cfg.EmailChangeTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AccountService{
		userRepo:         cfg.UserRepo,
		sessionRepo:      cfg.SessionRepo,
		tokenService:     cfg.TokenService,
		secretRepo:       cfg.SecretRepo,
		backupCodeRepo:   cfg.BackupCodeRepo,
		privacyRepo:      cfg.PrivacyRepo,
		notificationRepo: cfg.NotificationRepo,
		loginHistoryRepo: cfg.LoginHistoryRepo,
		billingRepo:      cfg.BillingRepo,
		passwordService:  cfg.PasswordService,
		notifier:         cfg.Notifier,
		txManager:        cfg.TxManager,
		publisher:        cfg.Publisher,
		logger:           cfg.Logger.Named("account_service"),
		emailChangeTTL:   ttl,
	}
}

// ChangePassword replaces the user's password after verifying the current
// one. The row is locked for the duration of the check-and-set so concurrent
// changes serialize; a wrong current password leaves the account untouched.
func (s *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if !user.HasPassword() {
			return domainErrors.ErrPasswordNotSet
		}

		match, err := s.passwordService.CheckPasswordHash(currentPassword, *user.PasswordHash)
		if err != nil {
			return fmt.Errorf("checking current password: %w", err)
		}
		if !match {
			return domainErrors.ErrInvalidCredentials
		}

		newHash, err := s.passwordService.HashPassword(newPassword)
		if err != nil {
			return fmt.Errorf("hashing new password: %w", err)
		}
		return s.userRepo.UpdatePasswordHash(ctx, userID, newHash)
	})
	if err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	s.publish(ctx, events.EventPasswordChanged, userID, nil)
	return nil
}

// RequestEmailChange starts an email rotation: the caller reauthenticates
// with their password, the new address is checked for uniqueness, and a
// verification token keyed by the new address is issued and handed to the
// delivery channel. Re-requesting replaces the previous token. The email on
// the account does not change here.
func (s *AccountService) RequestEmailChange(ctx context.Context, userID uuid.UUID, newEmail, password string) error {
	newEmail = strings.ToLower(strings.TrimSpace(newEmail))

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasPassword() {
		return domainErrors.ErrPasswordNotSet
	}

	match, err := s.passwordService.CheckPasswordHash(password, *user.PasswordHash)
	if err != nil {
		return fmt.Errorf("checking password: %w", err)
	}
	if !match {
		return domainErrors.ErrInvalidCredentials
	}

	if _, err := s.userRepo.FindByEmail(ctx, newEmail); err == nil {
		return domainErrors.ErrEmailExists
	} else if !domainErrors.IsNotFound(err) {
		return fmt.Errorf("checking email uniqueness: %w", err)
	}

	token, err := s.tokenService.Issue(ctx, newEmail, s.emailChangeTTL)
	if err != nil {
		return err
	}

	if err := s.notifier.SendEmailChangeVerification(ctx, newEmail, token); err != nil {
		return fmt.Errorf("delivering email change verification: %w", err)
	}

	s.logger.Info("email change requested", zap.String("user_id", userID.String()))
	s.publish(ctx, events.EventEmailChangeRequested, userID, map[string]string{"new_email": newEmail})
	return nil
}

// ConfirmEmailChange finishes an email rotation. The token issued for the new
// address is consumed and the account's email is updated in one transaction;
// a reused, mismatched or expired token leaves the account unchanged. All
// token failures surface as the same invalid-token error.
func (s *AccountService) ConfirmEmailChange(ctx context.Context, userID uuid.UUID, newEmail, token string) error {
	newEmail = strings.ToLower(strings.TrimSpace(newEmail))

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		result, err := s.tokenService.Consume(ctx, newEmail, token)
		if err != nil {
			return err
		}
		if result != models.TokenValid {
			s.logger.Warn("email change token rejected",
				zap.String("user_id", userID.String()),
				zap.Stringer("reason", result),
			)
			return domainErrors.ErrInvalidToken
		}

		if _, err := s.userRepo.FindByIDForUpdate(ctx, userID); err != nil {
			return err
		}
		return s.userRepo.UpdateEmail(ctx, userID, newEmail)
	})
	if err != nil {
		return err
	}

	s.logger.Info("email changed", zap.String("user_id", userID.String()))
	s.publish(ctx, events.EventEmailChanged, userID, map[string]string{"new_email": newEmail})
	return nil
}

// ExportData assembles a point-in-time snapshot of everything the service
// holds about the user. The snapshot is built from export DTOs that do not
// declare secret fields, so hashes, TOTP secrets and backup codes cannot
// appear in the output. Nothing is persisted.
func (s *AccountService) ExportData(ctx context.Context, userID uuid.UUID) (*models.ExportSnapshot, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading sessions for export: %w", err)
	}
	sessionDTOs := make([]models.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		sessionDTOs = append(sessionDTOs, sess.ToResponse())
	}

	history, err := s.loginHistoryRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading login history for export: %w", err)
	}
	historyDTOs := make([]models.LoginEventExport, 0, len(history))
	for _, event := range history {
		historyDTOs = append(historyDTOs, event.ToExport())
	}

	privacy, err := s.privacyRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !domainErrors.IsNotFound(err) {
			return nil, fmt.Errorf("reading privacy settings for export: %w", err)
		}
		privacy = models.DefaultPrivacySettings(userID)
	}

	notifications, err := s.notificationRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !domainErrors.IsNotFound(err) {
			return nil, fmt.Errorf("reading notification settings for export: %w", err)
		}
		notifications = nil
	}

	subscriptions, err := s.billingRepo.FindSubscriptionsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading subscriptions for export: %w", err)
	}
	subscriptionDTOs := make([]models.SubscriptionExport, 0, len(subscriptions))
	for _, sub := range subscriptions {
		invoices, err := s.billingRepo.FindInvoicesBySubscriptionID(ctx, sub.ID)
		if err != nil {
			return nil, fmt.Errorf("reading invoices for export: %w", err)
		}
		invoiceDTOs := make([]models.InvoiceExport, 0, len(invoices))
		for _, inv := range invoices {
			invoiceDTOs = append(invoiceDTOs, models.InvoiceExport{
				ID:          inv.ID,
				AmountCents: inv.AmountCents,
				Currency:    inv.Currency,
				IssuedAt:    inv.IssuedAt,
			})
		}
		subscriptionDTOs = append(subscriptionDTOs, models.SubscriptionExport{
			ID:       sub.ID,
			Plan:     sub.Plan,
			Status:   sub.Status,
			RenewsAt: sub.RenewsAt,
			Invoices: invoiceDTOs,
		})
	}

	s.logger.Info("data export generated", zap.String("user_id", userID.String()))
	return &models.ExportSnapshot{
		GeneratedAt:          time.Now().UTC(),
		User:                 user.ToResponse(),
		Sessions:             sessionDTOs,
		LoginHistory:         historyDTOs,
		PrivacySettings:      privacy,
		NotificationSettings: notifications,
		Subscriptions:        subscriptionDTOs,
	}, nil
}

// DeleteAccount erases the user and every dependent record in a single
// transaction: backup codes, TOTP secrets, pending verification tokens,
// sessions, privacy and notification settings, billing records, login
// history, then the user row. Either everything is gone or nothing is.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if _, err := s.backupCodeRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("deleting backup codes: %w", err)
		}
		if _, err := s.secretRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("deleting totp secrets: %w", err)
		}
		if _, err := s.tokenService.tokenRepo.DeleteByIdentifier(ctx, user.Email); err != nil {
			return fmt.Errorf("deleting verification tokens: %w", err)
		}
		if _, err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("deleting sessions: %w", err)
		}
		if _, err := s.privacyRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("deleting privacy settings: %w", err)
		}
		if _, err := s.notificationRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("deleting notification settings: %w", err)
		}
		if _, err := s.billingRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("deleting billing records: %w", err)
		}
		if _, err := s.loginHistoryRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("deleting login history: %w", err)
		}
		return s.userRepo.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("account deleted", zap.String("user_id", userID.String()))
	s.publish(ctx, events.EventAccountDeleted, userID, nil)
	return nil
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, userID uuid.UUID, extra map[string]string) {
	payload := map[string]string{"user_id": userID.String()}
	for k, v := range extra {
		payload[k] = v
	}
	if err := s.publisher.Publish(ctx, eventType, userID.String(), payload); err != nil {
		s.logger.Error("publishing event failed",
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
	}
}
