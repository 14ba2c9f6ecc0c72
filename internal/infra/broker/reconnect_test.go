//go:build e2e

package broker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"swimbooking/internal/pkg/config"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/notify"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRabbitMQ(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5672/tcp"),
				wait.ForLog("Server startup complete"),
			).WithDeadline(2 * time.Minute),
			Labels: map[string]string{"purpose": "e2e-tests"},
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start rabbitmq container")
	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		_ = c.Terminate(stopCtx)
	})

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, nat.Port("5672/tcp"))
	require.NoError(t, err)
	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

// dropConnection closes the live AMQP connection underneath every channel,
// the way a broker restart would.
func dropConnection(t *testing.T, c *Connection) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NoError(t, c.conn.Close())
}

func receive(t *testing.T, got <-chan string, want string) {
	t.Helper()
	select {
	case body := <-got:
		require.Equal(t, want, body)
	case <-time.After(15 * time.Second):
		t.Fatalf("message %s was not delivered", want)
	}
}

func TestBrokerSurvivesConnectionLoss(t *testing.T) {
	url := startRabbitMQ(t)
	conn, err := Dial(config.AMQPConfig{URL: url, Queue: "booking.events." + uuid.NewString()})
	require.NoError(t, err)

	pub := NewPublisher(conn)
	got := make(chan string, 10)
	consumer := NewConsumer(conn, func(_ context.Context, body []byte) error {
		got <- string(body)
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Run(ctx) }()

	require.NoError(t, pub.Publish(ctx, "booking.created", uuid.New(), []byte(`{"n":1}`)))
	receive(t, got, `{"n":1}`)

	dropConnection(t, conn)

	require.NoError(t, pub.Publish(ctx, "booking.created", uuid.New(), []byte(`{"n":2}`)),
		"publisher re-dials and gets a confirm on the new connection")
	receive(t, got, `{"n":2}`)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop")
	}

	require.NoError(t, conn.Close())
	err = pub.Publish(context.Background(), "booking.created", uuid.New(), []byte(`{}`))
	require.True(t, errs.Is(err, notify.ErrBrokerUnavailable), "got %v", err)
}
