package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"auth-service/internal/logger"
)

// Publisher writes one message to the reset email topic.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// KafkaSender hands reset emails to the mailer worker through a topic.
type KafkaSender struct {
	publisher Publisher
}

func NewKafkaSender(publisher Publisher) *KafkaSender {
	return &KafkaSender{publisher: publisher}
}

func (s *KafkaSender) SendResetEmail(ctx context.Context, msg ResetEmail) error {
	payload, err := EncodeEvent(msg)
	if err != nil {
		return fmt.Errorf("failed to encode reset email event: %w", err)
	}

	// keyed by recipient so one user's emails stay ordered on a partition
	if err := s.publisher.Publish(ctx, []byte(msg.To), payload); err != nil {
		return fmt.Errorf("failed to publish reset email event: %w", err)
	}

	logger.Info("Reset email queued",
		zap.String("transport", "kafka"),
		zap.String("event", "reset_email_queued"),
	)
	return nil
}
