// File: backend/services/account-security-service/internal/infrastructure/notification/notifier.go
package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/events"
)

// eventTypeEmailChangeVerification is consumed by the platform notification
// service, which owns templates and SMTP.
const eventTypeEmailChangeVerification events.EventType = "notification.email_change_verification"

// KafkaNotifier hands outbound mail to the platform notification service via
// the event bus. Delivery failures here fail the requesting operation, since
// a token nobody receives is useless.
type KafkaNotifier struct {
	publisher events.Publisher
	logger    *zap.Logger
}

func NewKafkaNotifier(publisher events.Publisher, logger *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		publisher: publisher,
		logger:    logger.Named("kafka_notifier"),
	}
}

// SendEmailChangeVerification publishes the verification token for delivery
// to the new address. The token is never logged.
func (n *KafkaNotifier) SendEmailChangeVerification(ctx context.Context, newEmail, token string) error {
	payload := map[string]string{
		"email": newEmail,
		"token": token,
	}
	if err := n.publisher.Publish(ctx, eventTypeEmailChangeVerification, newEmail, payload); err != nil {
		return fmt.Errorf("handing verification to notification pipeline: %w", err)
	}
	n.logger.Info("email change verification dispatched", zap.String("email", newEmail))
	return nil
}

// LogNotifier writes the token to the log instead of delivering it. Only for
// local development, where no notification pipeline is running.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("log_notifier")}
}

func (n *LogNotifier) SendEmailChangeVerification(_ context.Context, newEmail, token string) error {
	n.logger.Info("email change verification (development delivery)",
		zap.String("email", newEmail),
		zap.String("token", token),
	)
	return nil
}
