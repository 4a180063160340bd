package mail

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"auth-service/internal/logger"
	"auth-service/internal/metrics"
)

// AsyncSender dispatches through next on a background goroutine so callers
// never wait on the transport. Failures are logged and counted, not returned.
type AsyncSender struct {
	next      Sender
	transport string
	timeout   time.Duration
	wg        sync.WaitGroup
}

func NewAsyncSender(next Sender, transport string, timeout time.Duration) *AsyncSender {
	if timeout <= 0 {
		timeout = defaultSMTPDeadline
	}
	return &AsyncSender{
		next:      next,
		transport: transport,
		timeout:   timeout,
	}
}

// SendResetEmail always returns nil. The request context is not used for the
// dispatch because it ends with the HTTP response.
func (s *AsyncSender) SendResetEmail(_ context.Context, msg ResetEmail) error {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		err := s.next.SendResetEmail(ctx, msg)
		metrics.RecordMailDispatch(s.transport, err)
		if err != nil {
			logger.Error("Failed to dispatch reset email",
				zap.String("transport", s.transport),
				zap.String("event", "reset_email_failed"),
				zap.Error(err),
			)
		}
	}()
	return nil
}

// Wait blocks until in-flight dispatches finish or ctx is done.
func (s *AsyncSender) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
