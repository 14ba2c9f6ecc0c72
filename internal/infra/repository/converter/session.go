package converter

import (
	"swimbooking/internal/domain/session"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"
)

func SessionFromInfra(row sqlc.Sessions) (*session.Session, error) {
	var reason *session.CloseReason
	if row.CloseReason.Valid {
		r := session.CloseReason(row.CloseReason.String)
		reason = &r
	}

	return session.ReconstructSession(
		row.ID,
		pgconv.TimeFromPgtype(row.StartTime),
		pgconv.TimeFromPgtype(row.EndTime),
		row.Location,
		pgconv.UUIDPtrFromPgtype(row.InstructorID),
		int(row.MaxCapacity),
		int(row.BookingCount),
		session.Status(row.Status),
		row.IsRecurring,
		pgconv.UUIDPtrFromPgtype(row.BatchID),
		reason,
		row.CloseNotes,
		pgconv.TimePtrFromPgtype(row.ClosedAt),
		pgconv.UUIDPtrFromPgtype(row.ClosedBy),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func SessionOccupancyToInfra(s *session.Session) sqlc.UpdateSessionOccupancyParams {
	return sqlc.UpdateSessionOccupancyParams{
		ID:           s.ID(),
		BookingCount: int32(s.BookingCount()), // #nosec G115 -- bounded by max_capacity
		IsFull:       s.IsFull(),
		Status:       s.Status().String(),
		UpdatedAt:    pgconv.TimeToPgtype(s.UpdatedAt()),
	}
}

func SessionClosureToInfra(s *session.Session) sqlc.CloseSessionParams {
	params := sqlc.CloseSessionParams{
		ID:         s.ID(),
		CloseNotes: s.CloseNotes(),
		ClosedAt:   pgconv.TimePtrToPgtype(s.ClosedAt()),
		ClosedBy:   pgconv.UUIDPtrToPgtype(s.ClosedBy()),
	}
	if r := s.CloseReason(); r != nil {
		params.CloseReason = pgconv.StringToPgtype(r.String())
	}
	return params
}
