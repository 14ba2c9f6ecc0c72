package repository

import (
	"context"
	"time"

	"swimbooking/internal/domain/cancellation"
	"swimbooking/internal/domain/floating"
	"swimbooking/internal/infra"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type FloatingSessionWriteQueries interface {
	CreateFloatingSession(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateFloatingSessionParams) error
}

type FloatingSessionRepository struct {
	queries FloatingSessionWriteQueries
}

func NewFloatingSessionRepository(queries FloatingSessionWriteQueries) *FloatingSessionRepository {
	return &FloatingSessionRepository{queries: queries}
}

func (r *FloatingSessionRepository) Create(ctx context.Context, tx sqlc.DBTX, f *floating.FloatingSession) error {
	err := r.queries.CreateFloatingSession(ctx, tx, sqlc.CreateFloatingSessionParams{
		ID:                f.ID(),
		OriginalSessionID: f.OriginalSessionID(),
		OriginalBookingID: f.OriginalBookingID(),
		SwimmerID:         pgconv.UUIDPtrToPgtype(f.SwimmerID()),
		ParentID:          pgconv.UUIDPtrToPgtype(f.ParentID()),
		AvailableUntil:    pgconv.DateToPgtype(f.AvailableUntil()),
		MonthYear:         f.MonthYear(),
		Status:            f.Status().String(),
		CreatedAt:         pgconv.TimeToPgtype(f.CreatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to create floating session", err)
	}
	return nil
}

type CancellationWriteQueries interface {
	CreateCancellation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCancellationParams) error
}

type CancellationRepository struct {
	queries CancellationWriteQueries
}

func NewCancellationRepository(queries CancellationWriteQueries) *CancellationRepository {
	return &CancellationRepository{queries: queries}
}

func (r *CancellationRepository) Create(ctx context.Context, tx sqlc.DBTX, rec *cancellation.Record) error {
	err := r.queries.CreateCancellation(ctx, tx, sqlc.CreateCancellationParams{
		ID:              rec.ID(),
		BookingID:       rec.BookingID(),
		SessionID:       rec.SessionID(),
		SwimmerID:       rec.SwimmerID(),
		ParentID:        rec.ParentID(),
		CancelledBy:     rec.CancelledBy(),
		Source:          rec.Source().String(),
		Reason:          rec.Reason(),
		HoursBefore:     rec.HoursBefore(),
		FloatingCreated: rec.FloatingCreated(),
		BlockID:         pgconv.UUIDPtrToPgtype(rec.BlockID()),
		CreatedAt:       pgconv.TimeToPgtype(rec.CreatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to create cancellation record", err)
	}
	return nil
}

type AssessmentWriteQueries interface {
	CancelAssessmentsForBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelAssessmentsForBookingParams) (int64, error)
}

type AssessmentRepository struct {
	queries AssessmentWriteQueries
}

func NewAssessmentRepository(queries AssessmentWriteQueries) *AssessmentRepository {
	return &AssessmentRepository{queries: queries}
}

func (r *AssessmentRepository) CancelForBooking(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID, at time.Time) (int64, error) {
	n, err := r.queries.CancelAssessmentsForBooking(ctx, tx, sqlc.CancelAssessmentsForBookingParams{
		BookingID: bookingID,
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel assessments", err)
	}
	return n, nil
}
