package commands

//go:generate mockgen -destination=../../../tests/mock/commands/mock_commands.go -package=commandsmock swimbooking/internal/usecase/commands AuthCommands,BookingCommands,SessionCommands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"time"

	"swimbooking/internal/domain/booking"
	"swimbooking/internal/domain/purchaseorder"
	"swimbooking/internal/domain/session"
	"swimbooking/internal/domain/user"
	"swimbooking/internal/infra"
	"swimbooking/internal/pkg/clock"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	createBookingsEndpoint = "POST /api/bookings"
	idempotencyTTL         = 24 * time.Hour
)

type CreateBookingsInput struct {
	SwimmerID      uuid.UUID
	SessionIDs     []uuid.UUID
	BookingType    string
	IdempotencyKey *uuid.UUID
}

type CreateBookingsResult struct {
	RequestID  uuid.UUID
	BookingIDs []uuid.UUID
	IsReplayed bool
}

type CancelResult struct {
	BookingID              uuid.UUID
	FloatingSessionCreated bool
	HoursBeforeSession     float64
}

type AdminCancelInput struct {
	Reason       string
	MarkFlexible bool
}

type RescheduleInput struct {
	TargetSessionID uuid.UUID
	NotifyParent    bool
}

type RescheduleResult struct {
	BookingID         uuid.UUID
	PreviousSessionID uuid.UUID
	SessionID         uuid.UUID
}

type BulkAction string

const (
	BulkCancel           BulkAction = "cancel"
	BulkChangeInstructor BulkAction = "change_instructor"
	BulkMarkCompleted    BulkAction = "mark_completed"
	BulkMarkNoShow       BulkAction = "mark_no_show"
)

func (a BulkAction) IsValid() bool {
	switch a {
	case BulkCancel, BulkChangeInstructor, BulkMarkCompleted, BulkMarkNoShow:
		return true
	default:
		return false
	}
}

type BulkInput struct {
	BookingIDs   []uuid.UUID
	Action       BulkAction
	InstructorID *uuid.UUID
}

type CompleteResult struct {
	BookingID uuid.UUID
	SessionID uuid.UUID
	Status    booking.Status
}

type BulkResult struct {
	Updated          int
	SessionsAffected int
}

type CancelBlockInput struct {
	SwimmerID uuid.UUID
	BatchID   uuid.UUID
	Reason    string
}

type CancelBlockResult struct {
	BlockID                 uuid.UUID
	BookingsCancelled       int
	FloatingSessionsCreated int
}

type BookingCommands interface {
	CreateBookings(ctx context.Context, actor user.Actor, in CreateBookingsInput) (*CreateBookingsResult, error)
	CancelByParent(ctx context.Context, actor user.Actor, bookingID uuid.UUID, reason string) (*CancelResult, error)
	CancelByAdmin(ctx context.Context, actor user.Actor, bookingID uuid.UUID, in AdminCancelInput) (*CancelResult, error)
	Reschedule(ctx context.Context, actor user.Actor, bookingID uuid.UUID, in RescheduleInput) (*RescheduleResult, error)
	CompleteBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*CompleteResult, error)
	Bulk(ctx context.Context, actor user.Actor, in BulkInput) (*BulkResult, error)
	CancelBlock(ctx context.Context, actor user.Actor, in CancelBlockInput) (*CancelBlockResult, error)
}

type bookingCommandsImpl struct {
	lifecycle
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock, policy Policy) BookingCommands {
	return &bookingCommandsImpl{
		lifecycle: lifecycle{uow: uow, clock: clk, policy: policy},
	}
}

func (uc *bookingCommandsImpl) CreateBookings(ctx context.Context, actor user.Actor, in CreateBookingsInput) (*CreateBookingsResult, error) {
	bookingType, err := resolveBookingType(in)
	if err != nil {
		return nil, err
	}

	var result *CreateBookingsResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		if in.IdempotencyKey != nil {
			replay, err := uc.claimIdempotencyKey(ctx, tx, *in.IdempotencyKey, actor.UserID, requestHash(in, bookingType), now)
			if err != nil {
				return err
			}
			if replay != nil {
				result = replay
				return nil
			}
		}

		res, err := uc.createBookings(ctx, tx, actor, in, bookingType, now)
		if err != nil {
			return err
		}

		if in.IdempotencyKey != nil {
			if err := tx.Idempotency().Complete(ctx, tx.DB(), *in.IdempotencyKey, actor.UserID, res.RequestID); err != nil {
				return err
			}
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *bookingCommandsImpl) createBookings(
	ctx context.Context,
	tx shared.Tx,
	actor user.Actor,
	in CreateBookingsInput,
	bookingType booking.Type,
	now time.Time,
) (*CreateBookingsResult, error) {
	sw, err := tx.Swimmers().GetForUpdate(ctx, tx.DB(), in.SwimmerID)
	if err != nil {
		return nil, notFound(err, ErrSwimmerNotFound)
	}
	if !actor.CanActFor(sw.ParentID()) {
		return nil, ErrForbidden
	}

	sessions, err := uc.lockSessions(ctx, tx, in.SessionIDs, now)
	if err != nil {
		return nil, err
	}

	earliest := time.Time{}
	for _, id := range in.SessionIDs {
		s := sessions[id]
		if err := s.CanAcceptBooking(now); err != nil {
			return nil, errs.Wrapf(err, "session %s", id)
		}
		booked, err := tx.Bookings().HasConfirmedOnSession(ctx, tx.DB(), sw.ID(), id)
		if err != nil {
			return nil, err
		}
		if booked {
			return nil, errs.Wrapf(ErrAlreadyBooked, "session %s", id)
		}
		if earliest.IsZero() || s.StartTime().Before(earliest) {
			earliest = s.StartTime()
		}
	}

	var po *purchaseorder.PurchaseOrder
	if sw.IsFunded() {
		po, err = uc.reservePurchaseOrder(ctx, tx, sw.ID(), sessions, len(in.SessionIDs), earliest, now)
		if err != nil {
			return nil, err
		}
	}

	var batchID *uuid.UUID
	if bookingType == booking.TypeRecurring {
		id := uuid.New()
		batchID = &id
	}
	requestID := uuid.New()

	ids := make([]uuid.UUID, 0, len(in.SessionIDs))
	for _, sessionID := range in.SessionIDs {
		params := booking.NewBookingParams{
			SessionID: sessionID,
			SwimmerID: sw.ID(),
			ParentID:  sw.ParentID(),
			Type:      bookingType,
			BatchID:   batchID,
			RequestID: &requestID,
		}
		if po != nil {
			poID := po.ID()
			params.PurchaseOrderID = &poID
		}
		b, err := booking.NewBooking(params, now)
		if err != nil {
			return nil, errs.Mark(err, ErrValidation)
		}
		if err := tx.Bookings().Create(ctx, tx.DB(), b); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return nil, errs.Mark(err, ErrAlreadyBooked)
			}
			return nil, err
		}
		if err := sessions[sessionID].Occupy(1, now); err != nil {
			return nil, errs.Wrapf(err, "session %s", sessionID)
		}
		ids = append(ids, b.ID())
	}

	if err := uc.saveOccupancy(ctx, tx, sessions); err != nil {
		return nil, err
	}
	if po != nil {
		if err := tx.PurchaseOrders().SaveUsage(ctx, tx.DB(), po); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return nil, errs.Mark(err, purchaseorder.ErrInsufficientAuthorization)
			}
			return nil, err
		}
	}

	first := sessions[in.SessionIDs[0]]
	firstID, firstStart := first.ID(), first.StartTime()
	if err := uc.enqueue(ctx, tx, shared.BookingEvent{
		Kind:         shared.EventBookingCreated,
		ParentID:     sw.ParentID(),
		SwimmerID:    sw.ID(),
		BookingIDs:   ids,
		SessionID:    &firstID,
		SessionStart: &firstStart,
		BlockID:      batchID,
		OccurredAt:   now,
	}); err != nil {
		return nil, err
	}

	return &CreateBookingsResult{RequestID: requestID, BookingIDs: ids}, nil
}

// reservePurchaseOrder locks the order that covers the first session and
// takes n sessions from it. Every requested session must fall in its window.
func (uc *bookingCommandsImpl) reservePurchaseOrder(
	ctx context.Context,
	tx shared.Tx,
	swimmerID uuid.UUID,
	sessions map[uuid.UUID]*session.Session,
	n int,
	earliest, now time.Time,
) (*purchaseorder.PurchaseOrder, error) {
	po, err := tx.PurchaseOrders().LockUsableForSwimmer(ctx, tx.DB(), swimmerID, earliest)
	if err != nil {
		return nil, notFound(err, ErrNoActivePurchaseOrder)
	}
	if err := po.CanCover(n, earliest); err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if !po.Covers(s.StartTime()) {
			return nil, errs.Wrapf(ErrNoActivePurchaseOrder, "session %s is outside the order window", s.ID())
		}
	}
	if err := po.Reserve(n, now); err != nil {
		return nil, err
	}
	return po, nil
}

// claimIdempotencyKey registers key for this request. A non-nil result means
// the request already completed and must be replayed.
func (uc *bookingCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	hash string,
	now time.Time,
) (*CreateBookingsResult, error) {
	expiresAt := now.Add(idempotencyTTL)

	inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, createBookingsEndpoint, hash, expiresAt)
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	rec, err := tx.Idempotency().GetForUpdate(ctx, tx.DB(), key, userID)
	if err != nil {
		return nil, err
	}

	if rec.IsExpired(now) {
		claimed, err := tx.Idempotency().ClaimExpired(ctx, tx.DB(), key, userID, createBookingsEndpoint, hash, expiresAt)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, ErrIdempotencyInProgress
		}
		return nil, nil
	}

	if rec.RequestHash != hash {
		return nil, ErrIdempotencyKeyReused
	}

	switch rec.Status {
	case shared.IdempotencyStatusCompleted:
		if rec.ResultRequestID == nil {
			return nil, errs.New("completed idempotency key has no result")
		}
		ids, err := tx.Bookings().IDsByRequest(ctx, tx.DB(), *rec.ResultRequestID)
		if err != nil {
			return nil, err
		}
		return &CreateBookingsResult{RequestID: *rec.ResultRequestID, BookingIDs: ids, IsReplayed: true}, nil
	default:
		return nil, ErrIdempotencyInProgress
	}
}

func resolveBookingType(in CreateBookingsInput) (booking.Type, error) {
	if len(in.SessionIDs) == 0 {
		return "", validationError("at least one session is required")
	}
	if slices.Contains(in.SessionIDs, uuid.Nil) {
		return "", validationError("session ids must not be empty")
	}
	if hasDuplicates(in.SessionIDs) {
		return "", validationError("session ids must be unique")
	}

	t := booking.Type(in.BookingType)
	switch {
	case in.BookingType == "" && len(in.SessionIDs) == 1:
		t = booking.TypeSingle
	case in.BookingType == "":
		t = booking.TypeRecurring
	case !t.IsValid():
		return "", validationError("invalid booking type")
	}

	if t != booking.TypeRecurring && len(in.SessionIDs) != 1 {
		return "", validationError(t.String() + " bookings take exactly one session")
	}
	return t, nil
}

func requestHash(in CreateBookingsInput, t booking.Type) string {
	ids := slices.Clone(in.SessionIDs)
	slices.SortFunc(ids, compareUUID)
	data, _ := json.Marshal(struct {
		SwimmerID  uuid.UUID   `json:"swimmer_id"`
		SessionIDs []uuid.UUID `json:"session_ids"`
		Type       string      `json:"booking_type"`
	}{in.SwimmerID, ids, t.String()})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
