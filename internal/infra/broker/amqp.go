package broker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"swimbooking/internal/pkg/config"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/notify"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrConnectionClosed = errs.New("broker connection closed")

const (
	minReconnectDelay = time.Second
	maxReconnectDelay = 30 * time.Second
)

// nextDelay doubles the reconnect wait up to maxReconnectDelay.
func nextDelay(d time.Duration) time.Duration {
	if d <= 0 {
		return minReconnectDelay
	}
	return min(2*d, maxReconnectDelay)
}

// Connection owns the AMQP connection and the durable queue every booking
// event goes to. A dropped connection is re-dialed the next time a channel
// is requested.
type Connection struct {
	url   string
	queue string

	mu     sync.Mutex
	conn   *amqp.Connection
	closed bool
}

func Dial(cfg config.AMQPConfig) (*Connection, error) {
	c := &Connection{url: cfg.URL, queue: cfg.Queue}
	if err := c.dial(); err != nil {
		return nil, err
	}
	return c, nil
}

// dial replaces the connection and declares the queue on the new one.
// Callers hold mu, except Dial which owns c outright.
func (c *Connection) dial() error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return errs.Wrap(err, "failed to dial broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return errs.Wrap(err, "failed to open channel")
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return errs.Wrapf(err, "failed to declare queue %s", c.queue)
	}

	c.conn = conn
	return nil
}

// Channel opens a channel on a live connection, re-dialing first when the
// broker has gone away.
func (c *Connection) Channel() (*amqp.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrConnectionClosed
	}
	if c.conn == nil || c.conn.IsClosed() {
		slog.Warn("broker connection lost, re-dialing", "queue", c.queue)
		if err := c.dial(); err != nil {
			return nil, err
		}
		slog.Info("broker connection restored", "queue", c.queue)
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return nil, errs.Wrap(err, "failed to open channel")
	}
	return ch, nil
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}
	return c.conn.Close()
}

// Publisher sends persistent messages to the default exchange on a channel in
// confirm mode. Publish returns only once the broker has acked the message.
// Errors caused by a missing connection are marked
// notify.ErrBrokerUnavailable. A channel is not safe for concurrent use, so
// publishes are serialized.
type Publisher struct {
	mu    sync.Mutex
	conn  *Connection
	ch    *amqp.Channel
	queue string
}

func NewPublisher(conn *Connection) *Publisher {
	return &Publisher{conn: conn, queue: conn.queue}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, errs.Wrap(err, "failed to open publish channel")
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, errs.Wrap(err, "failed to enable publisher confirms")
	}
	p.ch = ch
	return ch, nil
}

func (p *Publisher) Publish(ctx context.Context, topic string, messageID uuid.UUID, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return errs.Mark(err, notify.ErrBrokerUnavailable)
	}

	confirm, err := ch.PublishWithDeferredConfirmWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID.String(),
		Type:         topic,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.reset()
		err = errs.Wrapf(err, "failed to publish %s", topic)
		if errs.Is(err, amqp.ErrClosed) {
			return errs.Mark(err, notify.ErrBrokerUnavailable)
		}
		return err
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		// the channel state is unknown; start over on the next publish
		p.reset()
		return errs.Wrapf(err, "no confirm for %s", topic)
	}
	if !acked {
		if ch.IsClosed() {
			p.reset()
			return errs.Mark(errs.Newf("channel closed before %s was confirmed", topic), notify.ErrBrokerUnavailable)
		}
		return errs.Newf("broker rejected %s", topic)
	}
	return nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	p.ch = nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil || p.ch.IsClosed() {
		return nil
	}
	return p.ch.Close()
}
