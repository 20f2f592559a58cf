package rabbit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/rabbit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, KeyMarked, RoutingKey(types.EventNewAttendance))
	assert.Equal(t, KeyReset, RoutingKey(types.EventReset))
	assert.Equal(t, KeyEnded, RoutingKey(types.EventLectureEnded))
}

func TestIsRecoverableError(t *testing.T) {
	assert.True(t, isRecoverableError(fmt.Errorf("insert: %w", types.ErrDatabaseFailed)))
	assert.True(t, isRecoverableError(fmt.Errorf("%w: dial: refused", rabbit.ErrUnavailable)))
	assert.True(t, isRecoverableError(fmt.Errorf("failed to publish with context: %w", amqp091.ErrClosed)))
	assert.True(t, isRecoverableError(&amqp091.Error{Code: amqp091.ResourceError, Recover: true}))
	assert.True(t, isRecoverableError(context.DeadlineExceeded))

	assert.False(t, isRecoverableError(nil))
	assert.False(t, isRecoverableError(types.ErrInvalidTicket))
	assert.False(t, isRecoverableError(rabbit.ErrClosed))
	assert.False(t, isRecoverableError(context.Canceled))
	assert.False(t, isRecoverableError(&amqp091.Error{Code: amqp091.AccessRefused, Recover: false}))
}

func always(error) bool { return true }

func TestRetry(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, time.Millisecond, always, func() error {
		calls++
		if calls < 2 {
			return errors.New("boom")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	calls = 0
	err = retry(context.Background(), 3, time.Millisecond, always, func() error {
		calls++
		return errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, time.Hour, isRecoverableError, func() error {
		calls++
		return types.ErrInvalidTicket
	})
	assert.ErrorIs(t, err, types.ErrInvalidTicket)
	assert.Equal(t, 1, calls)
}

func TestRetry_NoWaitAfterLastAttempt(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	calls := 0
	err := retry(ctx, 1, time.Hour, always, func() error {
		calls++
		return errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, calls)
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry(ctx, 5, time.Hour, always, func() error {
		calls++
		return errors.New("boom")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
