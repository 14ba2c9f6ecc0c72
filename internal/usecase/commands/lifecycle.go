package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"time"

	"swimbooking/internal/domain/booking"
	"swimbooking/internal/domain/cancellation"
	"swimbooking/internal/domain/floating"
	"swimbooking/internal/domain/session"
	"swimbooking/internal/infra"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/clock"
	"swimbooking/internal/pkg/config"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Policy holds the business rules staff tune through configuration.
type Policy struct {
	Notice              cancellation.NoticePolicy
	ContactPhone        string
	ContactType         string
	FloatingValidMonths int
}

func NewPolicy(cfg config.Config) Policy {
	return Policy{
		Notice:              cancellation.NewNoticePolicy(cfg.Policy.CancelCutoff),
		ContactPhone:        cfg.Policy.StaffContactPhone,
		ContactType:         cfg.Policy.StaffContactType,
		FloatingValidMonths: cfg.Policy.FloatingValidMonth,
	}
}

// lifecycle holds the steps every booking mutation shares. All of them run
// inside a caller-owned transaction.
type lifecycle struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	policy Policy
}

// lockSessions locks the given sessions in id order and syncs their counts
// with the bookings table. Lock order is what keeps two writers touching the
// same sessions from deadlocking.
func (l *lifecycle) lockSessions(ctx context.Context, tx shared.Tx, ids []uuid.UUID, now time.Time) (map[uuid.UUID]*session.Session, error) {
	sorted := uniqueSorted(ids)

	locked, err := tx.Sessions().LockForUpdate(ctx, tx.DB(), sorted)
	if err != nil {
		return nil, err
	}
	if len(locked) != len(sorted) {
		return nil, ErrSessionNotFound
	}

	byID := make(map[uuid.UUID]*session.Session, len(locked))
	for _, s := range locked {
		byID[s.ID()] = s
	}
	if err := l.syncCounts(ctx, tx, byID, now); err != nil {
		return nil, err
	}
	return byID, nil
}

// syncCounts replaces each session's stored count with the live count.
func (l *lifecycle) syncCounts(ctx context.Context, tx shared.Tx, sessions map[uuid.UUID]*session.Session, now time.Time) error {
	ids := make([]uuid.UUID, 0, len(sessions))
	for id := range sessions {
		ids = append(ids, id)
	}
	counts, err := tx.Sessions().CountActive(ctx, tx.DB(), ids)
	if err != nil {
		return err
	}
	for id, s := range sessions {
		s.Recount(counts[id], now)
	}
	return nil
}

func (l *lifecycle) saveOccupancy(ctx context.Context, tx shared.Tx, sessions map[uuid.UUID]*session.Session) error {
	for _, id := range sortedKeys(sessions) {
		if err := tx.Sessions().SaveOccupancy(ctx, tx.DB(), sessions[id]); err != nil {
			return err
		}
	}
	return nil
}

type cancelRequest struct {
	booking *booking.Booking
	session *session.Session
	source  booking.CancelSource
	reason  string
	by      uuid.UUID
	float   bool
	blockID *uuid.UUID
	// isolateFloat keeps a failed floating insert from aborting the caller's
	// transaction. Closure and block cancellation use it.
	isolateFloat bool
}

type cancelOutcome struct {
	floated     bool
	floatFailed bool
}

// cancelBooking cancels one booking and writes everything that goes with it:
// the booking row, an optional floating session, the audit row and the PO
// release. Session counts are left to the caller.
func (l *lifecycle) cancelBooking(ctx context.Context, tx shared.Tx, req cancelRequest, now time.Time) (cancelOutcome, error) {
	var out cancelOutcome
	b := req.booking

	if err := b.Cancel(req.reason, req.source, req.by, now); err != nil {
		return out, err
	}
	if err := tx.Bookings().Save(ctx, tx.DB(), b); err != nil {
		return out, err
	}

	if req.float {
		fs := floating.New(floating.Params{
			OriginalSessionID: req.session.ID(),
			OriginalBookingID: b.ID(),
			SwimmerID:         b.SwimmerID(),
			ParentID:          b.ParentID(),
			SessionStart:      req.session.StartTime(),
			ValidMonths:       l.policy.FloatingValidMonths,
		}, now)

		var err error
		if req.isolateFloat {
			err = tx.Savepoint(ctx, func(ctx context.Context, db sqlc.DBTX) error {
				return tx.FloatingSessions().Create(ctx, db, fs)
			})
		} else {
			err = tx.FloatingSessions().Create(ctx, tx.DB(), fs)
		}

		switch {
		case err == nil:
			out.floated = true
		case req.isolateFloat:
			out.floatFailed = true
			slog.Warn("failed to create floating session",
				"booking_id", b.ID(),
				"session_id", req.session.ID(),
				"error", err.Error())
		default:
			return out, err
		}
	}

	rec := cancellation.NewRecord(cancellation.RecordParams{
		Booking:         b,
		SessionStart:    req.session.StartTime(),
		CancelledBy:     req.by,
		Source:          req.source,
		Reason:          b.CancelReason(),
		FloatingCreated: out.floated,
		BlockID:         req.blockID,
	}, now)
	if err := tx.Cancellations().Create(ctx, tx.DB(), rec); err != nil {
		return out, err
	}

	if poID := b.PurchaseOrderID(); poID != nil {
		if err := l.releasePurchaseOrder(ctx, tx, *poID, 1, now); err != nil {
			return out, err
		}
	}
	return out, nil
}

// releasePurchaseOrder gives n sessions back to the order.
func (l *lifecycle) releasePurchaseOrder(ctx context.Context, tx shared.Tx, poID uuid.UUID, n int, now time.Time) error {
	po, err := tx.PurchaseOrders().LockForUpdate(ctx, tx.DB(), poID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("booking references a missing purchase order", "purchase_order_id", poID)
			return nil
		}
		return err
	}
	po.Release(n, now)
	return tx.PurchaseOrders().SaveUsage(ctx, tx.DB(), po)
}

func (l *lifecycle) enqueue(ctx context.Context, tx shared.Tx, ev shared.BookingEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return errs.Wrap(err, "failed to encode notification payload")
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), shared.JobKindEmail, ev.Kind, payload, ev.OccurredAt)
}

func uniqueSorted(ids []uuid.UUID) []uuid.UUID {
	out := slices.Clone(ids)
	slices.SortFunc(out, compareUUID)
	return slices.Compact(out)
}

func sortedKeys[V any](m map[uuid.UUID]V) []uuid.UUID {
	keys := make([]uuid.UUID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUUID)
	return keys
}

// compareUUID orders ids bytewise, which matches Postgres uuid ordering.
func compareUUID(a, b uuid.UUID) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func hasDuplicates(ids []uuid.UUID) bool {
	return len(uniqueSorted(ids)) != len(ids)
}
