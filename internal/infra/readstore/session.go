package readstore

import (
	"context"
	"time"

	"swimbooking/internal/infra"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"
	"swimbooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SessionReadQueries interface {
	GetSessionByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Sessions, error)
	ListSessionCountDrift(ctx context.Context, db sqlc.DBTX) ([]sqlc.ListSessionCountDriftRow, error)
}

type SessionReadStore struct {
	queries SessionReadQueries
	db      sqlc.DBTX
}

func NewSessionReadStore(queries SessionReadQueries, db sqlc.DBTX) *SessionReadStore {
	return &SessionReadStore{queries: queries, db: db}
}

func (r *SessionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SessionView, error) {
	row, err := r.queries.GetSessionByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get session by id", err)
	}
	return &queries.SessionView{
		ID:           row.ID,
		StartTime:    pgconv.TimeFromPgtype(row.StartTime),
		EndTime:      pgconv.TimeFromPgtype(row.EndTime),
		Location:     row.Location,
		InstructorID: pgconv.UUIDPtrFromPgtype(row.InstructorID),
		MaxCapacity:  row.MaxCapacity,
		BookingCount: row.BookingCount,
		IsFull:       row.IsFull,
		Status:       row.Status,
		IsRecurring:  row.IsRecurring,
		BatchID:      pgconv.UUIDPtrFromPgtype(row.BatchID),
		CloseReason:  pgconv.StringPtrFromPgtype(row.CloseReason),
		CloseNotes:   row.CloseNotes,
		ClosedAt:     pgconv.TimePtrFromPgtype(row.ClosedAt),
	}, nil
}

func (r *SessionReadStore) ListCountDrift(ctx context.Context) ([]*queries.SessionCountDrift, error) {
	rows, err := r.queries.ListSessionCountDrift(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list session count drift", err)
	}
	result := make([]*queries.SessionCountDrift, len(rows))
	for i, row := range rows {
		result[i] = &queries.SessionCountDrift{
			SessionID:    row.ID,
			BookingCount: row.BookingCount,
			ActiveCount:  row.ActiveCount,
			MaxCapacity:  row.MaxCapacity,
			IsFull:       row.IsFull,
		}
	}
	return result, nil
}

type FloatingSessionReadQueries interface {
	ListAvailableFloatingSessionsByParent(ctx context.Context, db sqlc.DBTX, arg sqlc.ListAvailableFloatingSessionsByParentParams) ([]sqlc.FloatingSessions, error)
}

type FloatingSessionReadStore struct {
	queries FloatingSessionReadQueries
	db      sqlc.DBTX
}

func NewFloatingSessionReadStore(queries FloatingSessionReadQueries, db sqlc.DBTX) *FloatingSessionReadStore {
	return &FloatingSessionReadStore{queries: queries, db: db}
}

func (r *FloatingSessionReadStore) FindAvailableByParent(ctx context.Context, parentID uuid.UUID, on time.Time) ([]*queries.FloatingSessionView, error) {
	rows, err := r.queries.ListAvailableFloatingSessionsByParent(ctx, r.db, sqlc.ListAvailableFloatingSessionsByParentParams{
		ParentID: pgconv.UUIDToPgtype(parentID),
		OnDate:   pgconv.DateToPgtype(on),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list floating sessions", err)
	}
	result := make([]*queries.FloatingSessionView, len(rows))
	for i, row := range rows {
		result[i] = &queries.FloatingSessionView{
			ID:                row.ID,
			OriginalSessionID: row.OriginalSessionID,
			OriginalBookingID: row.OriginalBookingID,
			SwimmerID:         pgconv.UUIDPtrFromPgtype(row.SwimmerID),
			ParentID:          pgconv.UUIDPtrFromPgtype(row.ParentID),
			AvailableUntil:    pgconv.DateFromPgtype(row.AvailableUntil),
			MonthYear:         row.MonthYear,
			Status:            row.Status,
			CreatedAt:         pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}
	return result, nil
}
