package queries

import (
	"context"
	"time"

	"swimbooking/internal/domain/user"
	"swimbooking/internal/infra"
	"swimbooking/internal/pkg/clock"

	"github.com/google/uuid"
)

type SessionReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SessionView, error)
	ListCountDrift(ctx context.Context) ([]*SessionCountDrift, error)
}

type FloatingSessionReadStore interface {
	FindAvailableByParent(ctx context.Context, parentID uuid.UUID, on time.Time) ([]*FloatingSessionView, error)
}

type SessionQueries interface {
	GetSession(ctx context.Context, id uuid.UUID) (*SessionView, error)
	ListFloatingSessions(ctx context.Context, actor user.Actor, parentID uuid.UUID) ([]*FloatingSessionView, error)
	// VerifySessionCounts returns every session whose stored count drifted
	// from its bookings. An empty result means the counters are consistent.
	VerifySessionCounts(ctx context.Context) ([]*SessionCountDrift, error)
}

type sessionQueriesImpl struct {
	sessions SessionReadStore
	floating FloatingSessionReadStore
	clock    clock.Clock
}

func NewSessionQueries(sessions SessionReadStore, floating FloatingSessionReadStore, clk clock.Clock) SessionQueries {
	return &sessionQueriesImpl{sessions: sessions, floating: floating, clock: clk}
}

func (q *sessionQueriesImpl) GetSession(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	sv, err := q.sessions.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sv, nil
}

func (q *sessionQueriesImpl) ListFloatingSessions(ctx context.Context, actor user.Actor, parentID uuid.UUID) ([]*FloatingSessionView, error) {
	if !actor.CanActFor(parentID) {
		return nil, ErrAccessDenied
	}
	return q.floating.FindAvailableByParent(ctx, parentID, q.clock.Now())
}

func (q *sessionQueriesImpl) VerifySessionCounts(ctx context.Context) ([]*SessionCountDrift, error) {
	return q.sessions.ListCountDrift(ctx)
}
