package broker

import (
	"context"
	"log/slog"
	"time"

	"swimbooking/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const prefetch = 20

// Handler processes one message body. Returning a permanent error drops the
// message; any other error requeues it once.
type Handler func(ctx context.Context, body []byte) error

type Consumer struct {
	conn      *Connection
	handle    Handler
	permanent func(error) bool
}

func NewConsumer(conn *Connection, handle Handler, permanent func(error) bool) *Consumer {
	return &Consumer{conn: conn, handle: handle, permanent: permanent}
}

// Run consumes until ctx is done or the connection is closed for good. A
// dropped broker connection is re-dialed with a doubling backoff.
func (c *Consumer) Run(ctx context.Context) error {
	delay := minReconnectDelay
	for {
		consumed, err := c.consume(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errs.Is(err, ErrConnectionClosed) {
			return err
		}
		if consumed {
			delay = minReconnectDelay
		}

		slog.Warn("notification consumer disconnected, reconnecting",
			"queue", c.conn.queue,
			"retry_in", delay.String(),
			"error", err.Error())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = nextDelay(delay)
	}
}

// consume runs one delivery session. consumed reports whether the
// subscription was established, which resets the reconnect backoff.
func (c *Consumer) consume(ctx context.Context) (consumed bool, err error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return false, err
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(prefetch, 0, false); err != nil {
		slog.Warn("failed to set consumer prefetch", "error", err.Error())
	}

	deliveries, err := ch.ConsumeWithContext(ctx, c.conn.queue, "", false, false, false, false, nil)
	if err != nil {
		return false, errs.Wrapf(err, "failed to consume %s", c.conn.queue)
	}

	for {
		select {
		case <-ctx.Done():
			return true, ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return true, errs.New("delivery channel closed")
			}
			c.process(ctx, d)
		}
	}
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery) {
	err := c.handle(ctx, d.Body)
	if err == nil {
		_ = d.Ack(false)
		return
	}

	requeue := !d.Redelivered && (c.permanent == nil || !c.permanent(err))
	slog.Error("failed to handle message",
		"message_id", d.MessageId,
		"type", d.Type,
		"requeue", requeue,
		"error", err.Error())
	_ = d.Nack(false, requeue)
}
