package rabbit

import (
	"context"
	"errors"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/rabbit"
)

// isRecoverableError reports whether a failed delivery should be requeued or a
// failed publish attempted again.
func isRecoverableError(err error) bool {
	if err == nil || oneOf(err, rabbit.ErrClosed, context.Canceled) {
		return false
	}
	if oneOf(err, types.ErrDatabaseFailed, context.DeadlineExceeded, rabbit.ErrUnavailable, amqp091.ErrClosed) {
		return true
	}

	var amqpErr *amqp091.Error
	if errors.As(err, &amqpErr) {
		return amqpErr.Recover
	}
	return false
}

func oneOf(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// retry calls fn up to n times while retryable accepts its error, sleeping between
// attempts. It gives up early when ctx is done.
func retry(ctx context.Context, n int, sleep time.Duration, retryable func(error) bool, fn func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt >= n || !retryable(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(sleep):
		}
	}
}
