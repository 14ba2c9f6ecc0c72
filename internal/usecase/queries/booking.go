package queries

//go:generate mockgen -destination=../../../tests/mock/queries/mock_queries.go -package=queriesmock swimbooking/internal/usecase/queries BookingQueries,SessionQueries,UserQueries

import (
	"context"
	"time"

	"swimbooking/internal/domain/user"
	"swimbooking/internal/infra"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*BookingView, error)
	FindBySwimmerFirstPage(ctx context.Context, swimmerID uuid.UUID, limit int32) ([]*BookingView, error)
	FindBySwimmerKeyset(ctx context.Context, swimmerID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingView, error)
}

type SwimmerReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SwimmerView, error)
}

type BookingQueries interface {
	GetBooking(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error)
	// ListByIDs is used to render command results; callers have already been
	// authorized by the command that produced the ids.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*BookingView, error)
	ListSwimmerBookings(ctx context.Context, actor user.Actor, swimmerID uuid.UUID, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	swimmers SwimmerReadStore
}

func NewBookingQueries(bookings BookingReadStore, swimmers SwimmerReadStore) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, swimmers: swimmers}
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error) {
	bv, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	// Hide existence from non-owners.
	if !actor.CanActFor(bv.ParentID) {
		return nil, ErrBookingNotFound
	}
	return bv, nil
}

func (q *bookingQueriesImpl) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*BookingView, error) {
	if len(ids) == 0 {
		return []*BookingView{}, nil
	}
	return q.bookings.FindByIDs(ctx, ids)
}

func (q *bookingQueriesImpl) ListSwimmerBookings(ctx context.Context, actor user.Actor, swimmerID uuid.UUID, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	sw, err := q.swimmers.FindByID(ctx, swimmerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrSwimmerNotFound
		}
		return nil, nil, err
	}
	if !actor.CanActFor(sw.ParentID) {
		return nil, nil, ErrAccessDenied
	}

	limit = ValidateLimit(limit)
	var rows []*BookingView
	if cursor == nil || cursor.After == "" {
		rows, err = q.bookings.FindBySwimmerFirstPage(ctx, swimmerID, int32(limit+1)) // #nosec G115 -- limit is capped by ValidateLimit
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.bookings.FindBySwimmerKeyset(ctx, swimmerID, lastCreatedAt, lastID, int32(limit+1)) // #nosec G115 -- limit is capped by ValidateLimit
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
