package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
	"github.com/Temutjin2k/geo-attendance/pkg/metrics"
	"github.com/Temutjin2k/geo-attendance/pkg/rabbit"
)

const (
	AttendanceExchange = "attendance_topic"
	QueueDashboard     = "attendance_dashboard"

	KeyMarked = "attendance.marked"
	KeyReset  = "attendance.reset"
	KeyEnded  = "attendance.ended"

	bindingKey  = "attendance.*"
	serviceName = "attendance"

	publishRetries = 3
	outboxSize     = 256
	flushTimeout   = 5 * time.Second
	reconnectDelay = 2 * time.Second
)

// Topology is the exchange and dashboard queue the broker relies on.
func Topology() rabbit.Topology {
	return rabbit.Topology{
		Exchange:   AttendanceExchange,
		Queue:      QueueDashboard,
		RoutingKey: bindingKey,
	}
}

// RoutingKey maps an attendance event to its routing key.
func RoutingKey(event types.AttendanceEvent) string {
	switch event {
	case types.EventNewAttendance:
		return KeyMarked
	case types.EventReset:
		return KeyReset
	default:
		return KeyEnded
	}
}

var ErrOutboxFull = errors.New("attendance outbox is full")

type outbound struct {
	ctx context.Context
	key string
	msg amqp091.Publishing
}

type AttendanceBroker struct {
	client   *rabbit.RabbitMQ
	exchange string

	outbox  chan outbound
	publish func(ctx context.Context, key string, msg amqp091.Publishing) error
	backoff time.Duration

	l logger.Logger
}

func NewAttendanceBroker(client *rabbit.RabbitMQ, log logger.Logger) *AttendanceBroker {
	b := &AttendanceBroker{
		client:   client,
		exchange: AttendanceExchange,
		outbox:   make(chan outbound, outboxSize),
		backoff:  time.Second,
		l:        log,
	}
	b.publish = b.send
	return b
}

// AttendanceChanged queues the event for 'attendance_topic'. Delivery happens in
// RunPublisher, so a broker outage never holds up the caller.
func (b *AttendanceBroker) AttendanceChanged(ctx context.Context, msg models.AttendanceChanged) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_attendance")

	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal message: %w", err))
	}

	key := RoutingKey(msg.Event)
	correlationID := wrap.FromContext(ctx).RequestID
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	out := outbound{
		ctx: context.WithoutCancel(ctx),
		key: key,
		msg: amqp091.Publishing{
			ContentType:   "application/json",
			CorrelationId: correlationID,
			Body:          body,
			Timestamp:     msg.Timestamp,
		},
	}

	select {
	case b.outbox <- out:
		return nil
	default:
		metrics.RecordRabbitMQPublish(serviceName, key, ErrOutboxFull)
		return wrap.Error(ctx, ErrOutboxFull)
	}
}

// RunPublisher delivers queued events until ctx is cancelled, then makes one last
// pass over whatever is still queued.
func (b *AttendanceBroker) RunPublisher(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.flush()
			return
		case out := <-b.outbox:
			b.deliver(ctx, out)
		}
	}
}

func (b *AttendanceBroker) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	for {
		select {
		case out := <-b.outbox:
			b.deliver(ctx, out)
		default:
			return
		}
	}
}

func (b *AttendanceBroker) deliver(ctx context.Context, out outbound) {
	err := retry(ctx, publishRetries, b.backoff, isRecoverableError, func() error {
		return b.publish(ctx, out.key, out.msg)
	})
	metrics.RecordRabbitMQPublish(serviceName, out.key, err)
	if err != nil {
		b.l.Error(wrap.ErrorCtx(out.ctx, err), "failed to publish attendance event", err, "routing_key", out.key)
		return
	}

	b.l.Debug(out.ctx, "attendance event published", "routing_key", out.key)
}

func (b *AttendanceBroker) send(ctx context.Context, key string, msg amqp091.Publishing) error {
	ch, err := b.client.Channel(ctx)
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(
		ctx,
		b.exchange, // exchange
		key,        // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	); err != nil {
		return fmt.Errorf("failed to publish with context: %w", err)
	}
	return nil
}

type AttendanceHandler func(ctx context.Context, msg models.AttendanceChanged) error

// ConsumeDashboard reads 'attendance_dashboard' until ctx is cancelled and passes every
// event to handler. The subscription is re-established after connection loss.
func (b *AttendanceBroker) ConsumeDashboard(ctx context.Context, handler AttendanceHandler) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_consume_attendance")

	for {
		if ctx.Err() != nil {
			b.l.Debug(ctx, "attendance consumer stopped by context")
			return nil
		}

		ch, err := b.client.Channel(ctx)
		if err != nil {
			b.l.Error(ctx, "ensure connection failed", err)
			if !sleepCtx(ctx, reconnectDelay) {
				return nil
			}
			continue
		}

		msgs, err := ch.ConsumeWithContext(ctx, QueueDashboard, "", false, false, false, false, nil)
		if err != nil {
			b.l.Error(ctx, "consume failed", err)
			if !sleepCtx(ctx, reconnectDelay) {
				return nil
			}
			continue
		}

		b.l.Info(ctx, "start consuming attendance events", "queue", QueueDashboard)

		if !b.drain(ctx, msgs, handler) {
			b.l.Info(ctx, "attendance consumer shutting down")
			return nil
		}

		b.l.Warn(ctx, "message channel closed, reconnecting...")
		if !sleepCtx(ctx, reconnectDelay) {
			return nil
		}
	}
}

// drain handles deliveries until the channel closes (true) or ctx is done (false).
func (b *AttendanceBroker) drain(ctx context.Context, msgs <-chan amqp091.Delivery, handler AttendanceHandler) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case d, ok := <-msgs:
			if !ok {
				return true
			}
			b.handle(ctx, d, handler)
		}
	}
}

func (b *AttendanceBroker) handle(ctx context.Context, d amqp091.Delivery, handler AttendanceHandler) {
	var msg models.AttendanceChanged
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		b.l.Error(ctx, "failed to unmarshal attendance event", err)
		metrics.RecordRabbitMQConsume(serviceName, QueueDashboard, err)
		_ = d.Nack(false, false)
		return
	}

	ctx = wrap.WithLogCtx(ctx, wrap.LogCtx{RequestID: d.CorrelationId, LectureID: msg.LectureID.String()})

	err := handler(ctx, msg)
	metrics.RecordRabbitMQConsume(serviceName, QueueDashboard, err)
	if err != nil {
		b.l.Error(wrap.ErrorCtx(ctx, err), "failed to handle attendance event", err)
		_ = d.Nack(false, isRecoverableError(err))
		return
	}
	_ = d.Ack(false)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
