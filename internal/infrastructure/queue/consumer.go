package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"

	"auth-service/internal/config"
	"auth-service/internal/logger"
)

// Handler processes one message. A returned error is logged and the message
// is still committed; reset emails are not worth retrying past their expiry.
type Handler interface {
	HandleMessage(ctx context.Context, key, value []byte) error
}

type HandlerFunc func(ctx context.Context, key, value []byte) error

func (f HandlerFunc) HandleMessage(ctx context.Context, key, value []byte) error {
	return f(ctx, key, value)
}

// messageReader is the part of *kafka.Reader the consumer needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const defaultFetchBackoff = time.Second

type Consumer struct {
	reader  messageReader
	handler Handler
	// pause after a failed fetch so an unreachable broker is not polled in a tight loop
	fetchBackoff time.Duration
}

func NewConsumer(cfg config.KafkaConfig, handler Handler) *Consumer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if cfg.Username != "" {
		dialer.SASLMechanism = plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}
		dialer.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	return &Consumer{reader: reader, handler: handler, fetchBackoff: defaultFetchBackoff}
}

// Listen consumes until ctx is cancelled.
func (c *Consumer) Listen(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return nil
			}
			logger.Error("Failed to read message",
				zap.Duration("retry_in", c.fetchBackoff),
				zap.Error(err),
			)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.fetchBackoff):
			}
			continue
		}

		if err := c.handler.HandleMessage(ctx, msg.Key, msg.Value); err != nil {
			logger.Error("Failed to handle message",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			logger.Error("Failed to commit message",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
