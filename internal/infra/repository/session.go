package repository

import (
	"context"
	"time"

	"swimbooking/internal/domain/session"
	"swimbooking/internal/infra"
	"swimbooking/internal/infra/repository/converter"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SessionWriteQueries interface {
	LockSessionsForUpdate(ctx context.Context, db sqlc.DBTX, ids []uuid.UUID) ([]sqlc.Sessions, error)
	CountActiveBookingsBySession(ctx context.Context, db sqlc.DBTX, sessionIds []uuid.UUID) ([]sqlc.CountActiveBookingsBySessionRow, error)
	UpdateSessionOccupancy(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateSessionOccupancyParams) error
	CloseSession(ctx context.Context, db sqlc.DBTX, arg sqlc.CloseSessionParams) error
	UpdateSessionsInstructor(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateSessionsInstructorParams) (int64, error)
}

type SessionRepository struct {
	queries SessionWriteQueries
}

func NewSessionRepository(queries SessionWriteQueries) *SessionRepository {
	return &SessionRepository{queries: queries}
}

func (r *SessionRepository) LockForUpdate(ctx context.Context, tx sqlc.DBTX, ids []uuid.UUID) ([]*session.Session, error) {
	rows, err := r.queries.LockSessionsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock sessions", err)
	}

	result := make([]*session.Session, 0, len(rows))
	for _, row := range rows {
		s, err := converter.SessionFromInfra(row)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid session row", err, infra.KindDBFailure)
		}
		result = append(result, s)
	}
	return result, nil
}

// CountActive returns the live non-cancelled booking count per session.
// Sessions with no bookings are present with a zero count.
func (r *SessionRepository) CountActive(ctx context.Context, tx sqlc.DBTX, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	rows, err := r.queries.CountActiveBookingsBySession(ctx, tx, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count active bookings", err)
	}

	counts := make(map[uuid.UUID]int, len(ids))
	for _, id := range ids {
		counts[id] = 0
	}
	for _, row := range rows {
		counts[row.SessionID] = int(row.Active)
	}
	return counts, nil
}

func (r *SessionRepository) SaveOccupancy(ctx context.Context, tx sqlc.DBTX, s *session.Session) error {
	if err := r.queries.UpdateSessionOccupancy(ctx, tx, converter.SessionOccupancyToInfra(s)); err != nil {
		return infra.WrapRepoErr("failed to update session occupancy", err)
	}
	return nil
}

func (r *SessionRepository) SaveClosure(ctx context.Context, tx sqlc.DBTX, s *session.Session) error {
	if err := r.queries.CloseSession(ctx, tx, converter.SessionClosureToInfra(s)); err != nil {
		return infra.WrapRepoErr("failed to close session", err)
	}
	return nil
}

func (r *SessionRepository) UpdateInstructor(ctx context.Context, tx sqlc.DBTX, ids []uuid.UUID, instructorID uuid.UUID, at time.Time) (int64, error) {
	n, err := r.queries.UpdateSessionsInstructor(ctx, tx, sqlc.UpdateSessionsInstructorParams{
		InstructorID: pgconv.UUIDToPgtype(instructorID),
		UpdatedAt:    pgconv.TimeToPgtype(at),
		Ids:          ids,
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update session instructor", err)
	}
	return n, nil
}
