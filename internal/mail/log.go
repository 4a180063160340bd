package mail

import (
	"context"

	"go.uber.org/zap"

	"auth-service/internal/logger"
)

// LogSender writes reset emails to the debug log instead of delivering them.
// It is meant for local development only.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendResetEmail(_ context.Context, msg ResetEmail) error {
	logger.Debug("Password reset email",
		zap.String("to", msg.To),
		zap.String("reset_link", msg.Link),
		zap.String("code", msg.Code),
		zap.Duration("expires_in", msg.ExpiresIn),
		zap.String("event", "reset_email_logged"),
	)
	return nil
}
