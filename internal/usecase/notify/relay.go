package notify

import (
	"context"
	"log/slog"
	"time"

	"swimbooking/internal/pkg/clock"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	maxAttempts    = 5
	baseRetryDelay = 30 * time.Second
	maxRetryDelay  = time.Hour
)

// ErrBrokerUnavailable marks publish failures caused by a missing broker
// connection rather than by the job itself.
var ErrBrokerUnavailable = errs.New("broker unavailable")

// Publisher hands an outbox job to the message broker. It returns nil only
// once the broker has accepted the message.
type Publisher interface {
	Publish(ctx context.Context, topic string, messageID uuid.UUID, body []byte) error
}

// Relay moves due outbox jobs onto the broker. Delivery is at least once:
// a job published just before a failed commit is published again.
type Relay struct {
	uow       shared.UnitOfWork
	publisher Publisher
	clock     clock.Clock
	batch     int32
}

func NewRelay(uow shared.UnitOfWork, publisher Publisher, clk clock.Clock, batch int32) *Relay {
	if batch <= 0 {
		batch = 50
	}
	return &Relay{uow: uow, publisher: publisher, clock: clk, batch: batch}
}

// Run drains the outbox every interval until ctx is done.
func (r *Relay) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := r.RunOnce(ctx); err != nil {
			slog.Error("notification relay pass failed", "error", err.Error())
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce relays one batch and reports how many jobs were published. A
// broker outage ends the pass early and leaves the remaining jobs queued
// with their attempts untouched.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	published := 0
	var outage error
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		published, outage = 0, nil
		now := r.clock.Now()

		jobs, err := tx.Notifications().ClaimDue(ctx, tx.DB(), now, r.batch)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			if pubErr := r.publisher.Publish(ctx, job.Topic, job.ID, job.Payload); pubErr != nil {
				if errs.Is(pubErr, ErrBrokerUnavailable) {
					outage = pubErr
					return nil
				}
				attempts := job.Attempts + 1
				final := attempts >= maxAttempts
				slog.Warn("failed to publish notification",
					"job_id", job.ID,
					"topic", job.Topic,
					"attempts", attempts,
					"final", final,
					"error", pubErr.Error())
				if err := tx.Notifications().MarkFailed(ctx, tx.DB(), job.ID, pubErr.Error(), now.Add(retryDelay(attempts)), final); err != nil {
					return err
				}
				continue
			}
			if err := tx.Notifications().MarkSent(ctx, tx.DB(), job.ID); err != nil {
				return err
			}
			published++
		}
		return nil
	})
	if err != nil {
		return published, err
	}
	return published, outage
}

func retryDelay(attempts int32) time.Duration {
	d := baseRetryDelay
	for i := int32(1); i < attempts; i++ {
		d *= 2
		if d >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return d
}
