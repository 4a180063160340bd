package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"auth-service/internal/config"
	"auth-service/internal/infrastructure/queue"
	"auth-service/internal/logger"
	"auth-service/internal/mail"
	"auth-service/internal/metrics"
)

// The mailer drains reset email events published by the API when
// MAIL_TRANSPORT=kafka and delivers them over SMTP.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if len(cfg.Kafka.Brokers) == 0 || cfg.SMTP.Host == "" || cfg.SMTP.From == "" {
		logger.Fatal("Mailer requires KAFKA_BROKERS, SMTP_HOST and SMTP_FROM")
	}

	smtpSender := mail.NewSMTPSender(cfg.SMTP)

	consumer := queue.NewConsumer(cfg.Kafka, queue.HandlerFunc(func(ctx context.Context, _, value []byte) error {
		msg, err := mail.DecodeEvent(value)
		if err != nil {
			return err
		}

		sendCtx, cancel := context.WithTimeout(ctx, cfg.Mail.SendTimeout())
		defer cancel()

		err = smtpSender.SendResetEmail(sendCtx, msg)
		metrics.RecordMailDispatch(config.MailTransportSMTP, err)
		return err
	}))
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Error("Failed to close consumer", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Mailer started",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group_id", cfg.Kafka.GroupID),
	)

	if err := consumer.Listen(ctx); err != nil {
		logger.Error("Mailer stopped with error", zap.Error(err))
		return
	}
	logger.Info("Mailer stopped")
}
