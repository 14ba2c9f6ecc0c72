package converter

import (
	"swimbooking/internal/domain/booking"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func BookingFromInfra(row sqlc.Bookings) *booking.Booking {
	var source *booking.CancelSource
	if row.CancelSource.Valid {
		s := booking.CancelSource(row.CancelSource.String)
		source = &s
	}

	return booking.ReconstructBooking(
		row.ID,
		row.SessionID,
		row.SwimmerID,
		row.ParentID,
		booking.Status(row.Status),
		booking.Type(row.BookingType),
		pgconv.UUIDPtrFromPgtype(row.BatchID),
		pgconv.UUIDPtrFromPgtype(row.PurchaseOrderID),
		pgconv.UUIDPtrFromPgtype(row.RequestID),
		row.CancelReason,
		source,
		pgconv.TimePtrFromPgtype(row.CanceledAt),
		pgconv.UUIDPtrFromPgtype(row.CanceledBy),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func BookingToCreateParams(b *booking.Booking) sqlc.CreateBookingParams {
	return sqlc.CreateBookingParams{
		ID:              b.ID(),
		SessionID:       b.SessionID(),
		SwimmerID:       b.SwimmerID(),
		ParentID:        b.ParentID(),
		Status:          b.Status().String(),
		BookingType:     b.Type().String(),
		BatchID:         pgconv.UUIDPtrToPgtype(b.BatchID()),
		PurchaseOrderID: pgconv.UUIDPtrToPgtype(b.PurchaseOrderID()),
		RequestID:       pgconv.UUIDPtrToPgtype(b.RequestID()),
		CreatedAt:       pgconv.TimeToPgtype(b.CreatedAt()),
	}
}

func BookingToUpdateParams(b *booking.Booking) sqlc.UpdateBookingParams {
	return sqlc.UpdateBookingParams{
		ID:           b.ID(),
		SessionID:    b.SessionID(),
		Status:       b.Status().String(),
		CancelReason: b.CancelReason(),
		CancelSource: CancelSourceToPgtype(b.CancelSource()),
		CanceledAt:   pgconv.TimePtrToPgtype(b.CanceledAt()),
		CanceledBy:   pgconv.UUIDPtrToPgtype(b.CanceledBy()),
		UpdatedAt:    pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func CancelSourceToPgtype(s *booking.CancelSource) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgconv.StringToPgtype(s.String())
}
