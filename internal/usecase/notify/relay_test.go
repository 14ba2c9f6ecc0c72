//go:build unit

package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"swimbooking/internal/pkg/clock"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/notify"
	"swimbooking/tests/common/memuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	topic string
	id    uuid.UUID
	body  []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	fail map[uuid.UUID]bool
	down bool
	sent []published
}

func (p *fakePublisher) Publish(_ context.Context, topic string, id uuid.UUID, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.down {
		return errs.Mark(errors.New("dial tcp: connection refused"), notify.ErrBrokerUnavailable)
	}
	if p.fail[id] {
		return errors.New("message rejected")
	}
	p.sent = append(p.sent, published{topic, id, body})
	return nil
}

func jobByID(store *memuow.Store, id uuid.UUID) memuow.Job {
	for _, j := range store.Jobs() {
		if j.ID == id {
			return j
		}
	}
	return memuow.Job{}
}

func TestRelay_RunOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("publishes due jobs and marks them sent", func(t *testing.T) {
		store := memuow.New()
		due := store.AddJob("booking.created", []byte(`{"kind":"booking.created"}`), now.Add(-time.Minute))
		later := store.AddJob("booking.cancelled", []byte(`{}`), now.Add(time.Hour))
		pub := &fakePublisher{}

		n, err := notify.NewRelay(store, pub, clock.NewMockClock(now), 10).RunOnce(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, n)
		require.Len(t, pub.sent, 1)
		assert.Equal(t, due, pub.sent[0].id)
		assert.Equal(t, "booking.created", pub.sent[0].topic)
		assert.Equal(t, "sent", jobByID(store, due).Status)
		assert.Equal(t, "queued", jobByID(store, later).Status)
	})

	t.Run("respects the batch size", func(t *testing.T) {
		store := memuow.New()
		for i := range 5 {
			store.AddJob("booking.created", []byte(`{}`), now.Add(-time.Duration(i+1)*time.Minute))
		}
		pub := &fakePublisher{}
		relay := notify.NewRelay(store, pub, clock.NewMockClock(now), 2)

		n, err := relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		for range 2 {
			_, err = relay.RunOnce(ctx)
			require.NoError(t, err)
		}
		assert.Len(t, pub.sent, 5)
	})

	t.Run("a failed publish is rescheduled with backoff", func(t *testing.T) {
		store := memuow.New()
		bad := store.AddJob("booking.created", []byte(`{}`), now)
		good := store.AddJob("booking.cancelled", []byte(`{}`), now)
		pub := &fakePublisher{fail: map[uuid.UUID]bool{bad: true}}
		clk := clock.NewMockClock(now)
		relay := notify.NewRelay(store, pub, clk, 10)

		n, err := relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "sent", jobByID(store, good).Status)

		j := jobByID(store, bad)
		assert.Equal(t, "queued", j.Status)
		assert.Equal(t, int32(1), j.Attempts)
		assert.Equal(t, "message rejected", j.LastError)
		assert.Equal(t, now.Add(30*time.Second), j.RunAt)

		n, err = relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, n, "not due until the retry time")

		clk.Add(31 * time.Second)
		_, err = relay.RunOnce(ctx)
		require.NoError(t, err)
		j = jobByID(store, bad)
		assert.Equal(t, int32(2), j.Attempts)
		assert.Equal(t, clk.Now().Add(60*time.Second), j.RunAt)
	})

	t.Run("a broker outage keeps jobs queued without spending attempts", func(t *testing.T) {
		store := memuow.New()
		first := store.AddJob("booking.created", []byte(`{}`), now.Add(-2*time.Minute))
		second := store.AddJob("booking.cancelled", []byte(`{}`), now.Add(-time.Minute))
		pub := &fakePublisher{down: true}
		clk := clock.NewMockClock(now)
		relay := notify.NewRelay(store, pub, clk, 10)

		for range 10 {
			n, err := relay.RunOnce(ctx)
			require.True(t, errs.Is(err, notify.ErrBrokerUnavailable), "got %v", err)
			assert.Zero(t, n)
			clk.Add(2 * time.Hour)
		}
		for _, id := range []uuid.UUID{first, second} {
			j := jobByID(store, id)
			assert.Equal(t, "queued", j.Status)
			assert.Zero(t, j.Attempts)
		}

		pub.mu.Lock()
		pub.down = false
		pub.mu.Unlock()

		n, err := relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, "sent", jobByID(store, first).Status)
		assert.Equal(t, "sent", jobByID(store, second).Status)
	})

	t.Run("gives up after the last attempt", func(t *testing.T) {
		store := memuow.New()
		bad := store.AddJob("booking.created", []byte(`{}`), now)
		pub := &fakePublisher{fail: map[uuid.UUID]bool{bad: true}}
		clk := clock.NewMockClock(now)
		relay := notify.NewRelay(store, pub, clk, 10)

		for range 5 {
			_, err := relay.RunOnce(ctx)
			require.NoError(t, err)
			clk.Add(2 * time.Hour)
		}

		j := jobByID(store, bad)
		assert.Equal(t, "failed", j.Status)
		assert.Equal(t, int32(5), j.Attempts)

		n, err := relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestRelay_RunStopsOnCancel(t *testing.T) {
	store := memuow.New()
	store.AddJob("booking.created", []byte(`{}`), time.Now().Add(-time.Minute))
	pub := &fakePublisher{}
	relay := notify.NewRelay(store, pub, clock.NewRealClock(), 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx, 10*time.Millisecond) }()

	require.Eventually(t, func() bool {
		pub.mu.Lock()
		defer pub.mu.Unlock()
		return len(pub.sent) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
