package repository

import (
	"context"

	"swimbooking/internal/domain/booking"
	"swimbooking/internal/infra"
	"swimbooking/internal/infra/repository/converter"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) error
	LockBookingForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	LockBookingsForUpdate(ctx context.Context, db sqlc.DBTX, ids []uuid.UUID) ([]sqlc.Bookings, error)
	ListConfirmedBookingsForSessionForUpdate(ctx context.Context, db sqlc.DBTX, sessionID uuid.UUID) ([]sqlc.Bookings, error)
	ListBlockBookingsForUpdate(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBlockBookingsForUpdateParams) ([]sqlc.ListBlockBookingsForUpdateRow, error)
	HasConfirmedBookingOnSession(ctx context.Context, db sqlc.DBTX, arg sqlc.HasConfirmedBookingOnSessionParams) (bool, error)
	UpdateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingParams) error
	UpdateBookingsStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingsStatusParams) (int64, error)
	ListBookingIDsByRequestID(ctx context.Context, db sqlc.DBTX, requestID pgtype.UUID) ([]uuid.UUID, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
}

func NewBookingRepository(queries BookingWriteQueries) *BookingRepository {
	return &BookingRepository{queries: queries}
}

func (r *BookingRepository) Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error {
	if err := r.queries.CreateBooking(ctx, tx, converter.BookingToCreateParams(b)); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) LockForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.LockBookingForUpdate(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return converter.BookingFromInfra(row), nil
}

func (r *BookingRepository) LockManyForUpdate(ctx context.Context, tx sqlc.DBTX, ids []uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.queries.LockBookingsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock bookings", err)
	}
	return mapBookings(rows), nil
}

func (r *BookingRepository) ListConfirmedForSessionForUpdate(ctx context.Context, tx sqlc.DBTX, sessionID uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.queries.ListConfirmedBookingsForSessionForUpdate(ctx, tx, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list session bookings", err)
	}
	return mapBookings(rows), nil
}

func (r *BookingRepository) ListBlockForUpdate(ctx context.Context, tx sqlc.DBTX, swimmerID, batchID uuid.UUID) ([]shared.BlockBooking, error) {
	rows, err := r.queries.ListBlockBookingsForUpdate(ctx, tx, sqlc.ListBlockBookingsForUpdateParams{
		SwimmerID: swimmerID,
		BatchID:   pgconv.UUIDToPgtype(batchID),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list block bookings", err)
	}

	result := make([]shared.BlockBooking, len(rows))
	for i, row := range rows {
		result[i] = shared.BlockBooking{
			Booking: converter.BookingFromInfra(sqlc.Bookings{
				ID:              row.ID,
				SessionID:       row.SessionID,
				SwimmerID:       row.SwimmerID,
				ParentID:        row.ParentID,
				Status:          row.Status,
				BookingType:     row.BookingType,
				BatchID:         row.BatchID,
				PurchaseOrderID: row.PurchaseOrderID,
				RequestID:       row.RequestID,
				CancelReason:    row.CancelReason,
				CancelSource:    row.CancelSource,
				CanceledAt:      row.CanceledAt,
				CanceledBy:      row.CanceledBy,
				CreatedAt:       row.CreatedAt,
				UpdatedAt:       row.UpdatedAt,
			}),
			SessionStart: pgconv.TimeFromPgtype(row.SessionStartTime),
		}
	}
	return result, nil
}

func (r *BookingRepository) HasConfirmedOnSession(ctx context.Context, tx sqlc.DBTX, swimmerID, sessionID uuid.UUID) (bool, error) {
	exists, err := r.queries.HasConfirmedBookingOnSession(ctx, tx, sqlc.HasConfirmedBookingOnSessionParams{
		SwimmerID: swimmerID,
		SessionID: sessionID,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check existing booking", err)
	}
	return exists, nil
}

func (r *BookingRepository) Save(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error {
	if err := r.queries.UpdateBooking(ctx, tx, converter.BookingToUpdateParams(b)); err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	return nil
}

func (r *BookingRepository) UpdateStatusBatch(ctx context.Context, tx sqlc.DBTX, ids []uuid.UUID, upd shared.StatusUpdate) (int64, error) {
	n, err := r.queries.UpdateBookingsStatus(ctx, tx, sqlc.UpdateBookingsStatusParams{
		Status:       upd.Status.String(),
		CancelReason: upd.CancelReason,
		CancelSource: converter.CancelSourceToPgtype(upd.CancelSource),
		CanceledAt:   pgconv.TimePtrToPgtype(upd.CanceledAt),
		CanceledBy:   pgconv.UUIDPtrToPgtype(upd.CanceledBy),
		UpdatedAt:    pgconv.TimeToPgtype(upd.UpdatedAt),
		Ids:          ids,
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update booking statuses", err)
	}
	return n, nil
}

func (r *BookingRepository) IDsByRequest(ctx context.Context, tx sqlc.DBTX, requestID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := r.queries.ListBookingIDsByRequestID(ctx, tx, pgconv.UUIDToPgtype(requestID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by request", err)
	}
	return ids, nil
}

func mapBookings(rows []sqlc.Bookings) []*booking.Booking {
	result := make([]*booking.Booking, len(rows))
	for i, row := range rows {
		result[i] = converter.BookingFromInfra(row)
	}
	return result
}
