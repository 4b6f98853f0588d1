// File: backend/services/account-security-service/internal/service/mfa_service.go
package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	domainInterfaces "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/interfaces"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/repository"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/events"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/infrastructure/security"
)

// MFAService implements TOTP enrollment, activation, backup codes and
// deactivation. TOTP secrets are encrypted at rest; backup codes are stored
// as SHA-256 hashes and are single-use.
type MFAService struct {
	userRepo        repository.UserRepository
	secretRepo      repository.MFASecretRepository
	backupCodeRepo  repository.MFABackupCodeRepository
	totpService     domainInterfaces.TOTPService
	encryption      domainInterfaces.EncryptionService
	passwordService domainInterfaces.PasswordService
	txManager       TransactionManager
	publisher       events.Publisher
	logger          *zap.Logger
	backupCodeCount int
}

// MFAServiceConfig carries the dependencies of NewMFAService.
type MFAServiceConfig struct {
	UserRepo        repository.UserRepository
	SecretRepo      repository.MFASecretRepository
	BackupCodeRepo  repository.MFABackupCodeRepository
	TOTPService     domainInterfaces.TOTPService
	Encryption      domainInterfaces.EncryptionService
	PasswordService domainInterfaces.PasswordService
	TxManager       TransactionManager
	Publisher       events.Publisher
	Logger          *zap.Logger
	BackupCodeCount int
}

func NewMFAService(cfg MFAServiceConfig) *MFAService {
	count := cfg.BackupCodeCount
	if count <= 0 {
		count = 10
	}
	return &MFAService{
		userRepo:        cfg.UserRepo,
		secretRepo:      cfg.SecretRepo,
		backupCodeRepo:  cfg.BackupCodeRepo,
		totpService:     cfg.TOTPService,
		encryption:      cfg.Encryption,
		passwordService: cfg.PasswordService,
		txManager:       cfg.TxManager,
		publisher:       cfg.Publisher,
		logger:          cfg.Logger.Named("mfa_service"),
		backupCodeCount: count,
	}
}

// BeginEnrollment generates a fresh TOTP secret for the user and stores it as
// a pending (unverified) enrollment, replacing any previous pending secret.
// MFA stays disabled until the enrollment is confirmed with a valid code.
func (s *MFAService) BeginEnrollment(ctx context.Context, userID uuid.UUID) (*models.EnrollmentResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.MFAEnabled {
		return nil, domainErrors.Err2FAAlreadyEnabled
	}

	secretB32, otpAuthURL, err := s.totpService.GenerateSecret(user.Email)
	if err != nil {
		return nil, fmt.Errorf("generating totp secret: %w", err)
	}

	encrypted, err := s.encryption.Encrypt([]byte(secretB32))
	if err != nil {
		return nil, fmt.Errorf("encrypting totp secret: %w", err)
	}

	pending := &models.MFASecret{
		ID:              uuid.New(),
		UserID:          userID,
		SecretEncrypted: encrypted,
		Verified:        false,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.secretRepo.Upsert(ctx, pending); err != nil {
		return nil, fmt.Errorf("storing pending totp secret: %w", err)
	}

	s.logger.Info("mfa enrollment initiated", zap.String("user_id", userID.String()))
	return &models.EnrollmentResponse{
		Secret:    secretB32,
		QRCodeURL: otpAuthURL,
	}, nil
}

// ConfirmEnrollment activates MFA for the user. The submitted secret must
// match the server-tracked pending enrollment; a code computed against any
// other secret is rejected. On success the secret is marked verified, MFA is
// enabled on the user and a fresh set of backup codes is generated, all in
// one transaction. The plaintext codes are returned exactly once.
func (s *MFAService) ConfirmEnrollment(ctx context.Context, userID uuid.UUID, secretB32, code string) (*models.ActivationResponse, error) {
	var plainCodes []string

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user.MFAEnabled {
			return domainErrors.Err2FAAlreadyEnabled
		}

		pending, err := s.secretRepo.FindByUserID(ctx, userID)
		if err != nil {
			if domainErrors.IsNotFound(err) {
				return domainErrors.ErrEnrollmentExpired
			}
			return err
		}
		if pending.Verified {
			return domainErrors.Err2FAAlreadyEnabled
		}

		stored, err := s.encryption.Decrypt(pending.SecretEncrypted)
		if err != nil {
			return fmt.Errorf("decrypting pending totp secret: %w", err)
		}
		if subtle.ConstantTimeCompare(stored, []byte(secretB32)) != 1 {
			// The client is confirming against a secret this server no
			// longer tracks, typically a superseded enrollment.
			s.logger.Warn("mfa confirmation against stale secret", zap.String("user_id", userID.String()))
			return domainErrors.ErrEnrollmentExpired
		}

		valid, err := s.totpService.ValidateCode(string(stored), code)
		if err != nil {
			return fmt.Errorf("validating totp code: %w", err)
		}
		if !valid {
			return domainErrors.ErrInvalid2FACode
		}

		if err := s.secretRepo.MarkVerified(ctx, pending.ID); err != nil {
			return fmt.Errorf("marking totp secret verified: %w", err)
		}
		if err := s.userRepo.SetMFAEnabled(ctx, userID, true); err != nil {
			return fmt.Errorf("enabling mfa on user: %w", err)
		}

		plainCodes, err = s.replaceBackupCodes(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("mfa enabled", zap.String("user_id", userID.String()))
	s.publish(ctx, events.EventMFAEnabled, userID)

	return &models.ActivationResponse{BackupCodes: plainCodes}, nil
}

// ConsumeBackupCode redeems one backup code. Each code works exactly once;
// concurrent redemptions of the same code let exactly one caller through.
func (s *MFAService) ConsumeBackupCode(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.MFAEnabled {
		return domainErrors.Err2FANotEnabled
	}

	consumed, err := s.backupCodeRepo.Consume(ctx, userID, security.HashToken(code), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("consuming backup code: %w", err)
	}
	if !consumed {
		s.logger.Warn("backup code rejected", zap.String("user_id", userID.String()))
		return domainErrors.ErrInvalid2FACode
	}

	remaining, err := s.backupCodeRepo.CountUnused(ctx, userID)
	if err != nil {
		s.logger.Error("counting remaining backup codes", zap.Error(err))
	} else {
		s.logger.Info("backup code used",
			zap.String("user_id", userID.String()),
			zap.Int("remaining", remaining),
		)
	}

	s.publish(ctx, events.EventBackupCodeUsed, userID)
	return nil
}

// DisableMFA turns MFA off after reauthenticating the caller with their
// current password. The TOTP secret and all backup codes are removed in the
// same transaction that flips the user flag.
func (s *MFAService) DisableMFA(ctx context.Context, userID uuid.UUID, password string) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if !user.MFAEnabled {
			return domainErrors.Err2FANotEnabled
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

		if _, err := s.secretRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("deleting totp secret: %w", err)
		}
		if _, err := s.backupCodeRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("deleting backup codes: %w", err)
		}
		return s.userRepo.SetMFAEnabled(ctx, userID, false)
	})
	if err != nil {
		return err
	}

	s.logger.Info("mfa disabled", zap.String("user_id", userID.String()))
	s.publish(ctx, events.EventMFADisabled, userID)
	return nil
}

// replaceBackupCodes deletes the user's existing codes and inserts a fresh
// set, returning the plaintexts. Runs inside the caller's transaction.
func (s *MFAService) replaceBackupCodes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if _, err := s.backupCodeRepo.DeleteByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("deleting previous backup codes: %w", err)
	}

	plain := make([]string, 0, s.backupCodeCount)
	seen := make(map[string]struct{}, s.backupCodeCount)
	rows := make([]*models.MFABackupCode, 0, s.backupCodeCount)
	now := time.Now().UTC()

	for len(plain) < s.backupCodeCount {
		code, err := security.GenerateBackupCode()
		if err != nil {
			return nil, fmt.Errorf("generating backup code: %w", err)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		plain = append(plain, code)
		rows = append(rows, &models.MFABackupCode{
			ID:        uuid.New(),
			UserID:    userID,
			CodeHash:  security.HashToken(code),
			CreatedAt: now,
		})
	}

	if err := s.backupCodeRepo.CreateBatch(ctx, rows); err != nil {
		return nil, fmt.Errorf("storing backup codes: %w", err)
	}
	return plain, nil
}

func (s *MFAService) publish(ctx context.Context, eventType events.EventType, userID uuid.UUID) {
	payload := map[string]string{"user_id": userID.String()}
	if err := s.publisher.Publish(ctx, eventType, userID.String(), payload); err != nil {
		s.logger.Error("publishing event failed",
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
	}
}
