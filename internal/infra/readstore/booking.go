package readstore

import (
	"context"
	"strings"
	"time"

	"swimbooking/internal/infra"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"
	"swimbooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingViewQueries interface {
	GetBookingView(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetBookingViewRow, error)
	ListBookingViewsByIDs(ctx context.Context, db sqlc.DBTX, ids []uuid.UUID) ([]sqlc.ListBookingViewsByIDsRow, error)
	ListBookingsBySwimmerFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsBySwimmerFirstPageParams) ([]sqlc.ListBookingsBySwimmerFirstPageRow, error)
	ListBookingsBySwimmerKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsBySwimmerKeysetParams) ([]sqlc.ListBookingsBySwimmerKeysetRow, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingView(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking view by id", err)
	}
	return toBookingView(row), nil
}

func (r *BookingReadStore) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingViewsByIDs(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking views by ids", err)
	}
	views := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		views[i] = toBookingView(sqlc.GetBookingViewRow(row))
	}
	return views, nil
}

func (r *BookingReadStore) FindBySwimmerFirstPage(ctx context.Context, swimmerID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsBySwimmerFirstPage(ctx, r.db, sqlc.ListBookingsBySwimmerFirstPageParams{
		SwimmerID: swimmerID,
		RowLimit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings first page by swimmer", err)
	}
	views := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		views[i] = toBookingView(sqlc.GetBookingViewRow(row))
	}
	return views, nil
}

func (r *BookingReadStore) FindBySwimmerKeyset(ctx context.Context, swimmerID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsBySwimmerKeyset(ctx, r.db, sqlc.ListBookingsBySwimmerKeysetParams{
		SwimmerID: swimmerID,
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		RowLimit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings keyset by swimmer", err)
	}
	views := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		views[i] = toBookingView(sqlc.GetBookingViewRow(row))
	}
	return views, nil
}

// All booking view queries select the same columns, so their rows convert
// to GetBookingViewRow directly.
func toBookingView(row sqlc.GetBookingViewRow) *queries.BookingView {
	return &queries.BookingView{
		ID:               row.ID,
		SessionID:        row.SessionID,
		SwimmerID:        row.SwimmerID,
		ParentID:         row.ParentID,
		Status:           row.Status,
		BookingType:      row.BookingType,
		BatchID:          pgconv.UUIDPtrFromPgtype(row.BatchID),
		CancelReason:     row.CancelReason,
		CancelSource:     pgconv.StringPtrFromPgtype(row.CancelSource),
		CanceledAt:       pgconv.TimePtrFromPgtype(row.CanceledAt),
		SessionStartTime: pgconv.TimeFromPgtype(row.SessionStartTime),
		SessionEndTime:   pgconv.TimeFromPgtype(row.SessionEndTime),
		SessionLocation:  row.SessionLocation,
		SwimmerName:      strings.TrimSpace(row.SwimmerFirstName + " " + row.SwimmerLastName),
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
