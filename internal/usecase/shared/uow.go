package shared

import (
	"context"
	"time"

	"swimbooking/internal/domain/booking"
	"swimbooking/internal/domain/cancellation"
	"swimbooking/internal/domain/floating"
	"swimbooking/internal/domain/purchaseorder"
	"swimbooking/internal/domain/session"
	"swimbooking/internal/domain/swimmer"
	sqlc "swimbooking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
}

type Tx interface {
	Sessions() SessionRepository
	Bookings() BookingRepository
	Swimmers() SwimmerRepository
	PurchaseOrders() PurchaseOrderRepository
	FloatingSessions() FloatingSessionRepository
	Cancellations() CancellationRepository
	Assessments() AssessmentRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	DB() sqlc.DBTX
	// Savepoint runs fn in a nested transaction. An error from fn rolls back
	// only the writes fn made through db.
	Savepoint(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
}

// SessionRepository locks rows in id order so concurrent writers touching
// overlapping sessions cannot deadlock each other.
type SessionRepository interface {
	LockForUpdate(ctx context.Context, tx sqlc.DBTX, ids []uuid.UUID) ([]*session.Session, error)
	CountActive(ctx context.Context, tx sqlc.DBTX, ids []uuid.UUID) (map[uuid.UUID]int, error)
	SaveOccupancy(ctx context.Context, tx sqlc.DBTX, s *session.Session) error
	SaveClosure(ctx context.Context, tx sqlc.DBTX, s *session.Session) error
	UpdateInstructor(ctx context.Context, tx sqlc.DBTX, ids []uuid.UUID, instructorID uuid.UUID, at time.Time) (int64, error)
}

type BlockBooking struct {
	Booking      *booking.Booking
	SessionStart time.Time
}

// StatusUpdate is applied to many confirmed bookings in one statement.
type StatusUpdate struct {
	Status       booking.Status
	CancelReason string
	CancelSource *booking.CancelSource
	CanceledAt   *time.Time
	CanceledBy   *uuid.UUID
	UpdatedAt    time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error
	LockForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*booking.Booking, error)
	LockManyForUpdate(ctx context.Context, tx sqlc.DBTX, ids []uuid.UUID) ([]*booking.Booking, error)
	ListConfirmedForSessionForUpdate(ctx context.Context, tx sqlc.DBTX, sessionID uuid.UUID) ([]*booking.Booking, error)
	ListBlockForUpdate(ctx context.Context, tx sqlc.DBTX, swimmerID, batchID uuid.UUID) ([]BlockBooking, error)
	HasConfirmedOnSession(ctx context.Context, tx sqlc.DBTX, swimmerID, sessionID uuid.UUID) (bool, error)
	Save(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error
	UpdateStatusBatch(ctx context.Context, tx sqlc.DBTX, ids []uuid.UUID, upd StatusUpdate) (int64, error)
	IDsByRequest(ctx context.Context, tx sqlc.DBTX, requestID uuid.UUID) ([]uuid.UUID, error)
}

type SwimmerRepository interface {
	GetForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*swimmer.Swimmer, error)
	SaveFlags(ctx context.Context, tx sqlc.DBTX, s *swimmer.Swimmer) error
}

type PurchaseOrderRepository interface {
	LockUsableForSwimmer(ctx context.Context, tx sqlc.DBTX, swimmerID uuid.UUID, on time.Time) (*purchaseorder.PurchaseOrder, error)
	LockForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*purchaseorder.PurchaseOrder, error)
	// SaveUsage fails with a CONFLICT repository error if the update would
	// exceed the authorized session count.
	SaveUsage(ctx context.Context, tx sqlc.DBTX, po *purchaseorder.PurchaseOrder) error
}

type FloatingSessionRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, f *floating.FloatingSession) error
}

type CancellationRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, r *cancellation.Record) error
}

type AssessmentRepository interface {
	CancelForBooking(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID, at time.Time) (int64, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	GetForUpdate(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID) (*IdempotencyRecord, error)
	ClaimExpired(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Complete(ctx context.Context, tx sqlc.DBTX, key, userID, resultRequestID uuid.UUID) error
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
}

// NotificationRepository is the outbox. Lifecycle commands append to it and
// the notifier relay drains it.
type NotificationRepository interface {
	CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	ClaimDue(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int32) ([]NotificationJob, error)
	MarkSent(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID) error
	MarkFailed(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID, lastError string, retryAt time.Time, final bool) error
}
