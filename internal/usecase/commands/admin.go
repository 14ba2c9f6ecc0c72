package commands

import (
	"context"
	"time"

	"swimbooking/internal/domain/booking"
	"swimbooking/internal/domain/cancellation"
	"swimbooking/internal/domain/user"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
)

func (uc *bookingCommandsImpl) Reschedule(ctx context.Context, actor user.Actor, bookingID uuid.UUID, in RescheduleInput) (*RescheduleResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if in.TargetSessionID == uuid.Nil {
		return nil, validationError("target_session_id is required")
	}

	var result *RescheduleResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		b, err := tx.Bookings().LockForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			return notFound(err, ErrBookingNotFound)
		}
		if !b.IsConfirmed() {
			return booking.ErrNotConfirmed
		}
		oldID := b.SessionID()
		if oldID == in.TargetSessionID {
			return errs.Mark(booking.ErrSameSession, ErrValidation)
		}

		sessions, err := uc.lockSessions(ctx, tx, []uuid.UUID{oldID, in.TargetSessionID}, now)
		if err != nil {
			return err
		}
		target := sessions[in.TargetSessionID]

		if err := target.CanAcceptBooking(now); err != nil {
			return err
		}
		booked, err := tx.Bookings().HasConfirmedOnSession(ctx, tx.DB(), b.SwimmerID(), target.ID())
		if err != nil {
			return err
		}
		if booked {
			return ErrAlreadyBooked
		}

		if err := b.MoveTo(target.ID(), now); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, tx.DB(), b); err != nil {
			return err
		}
		sessions[oldID].Release(1, now)
		if err := target.Occupy(1, now); err != nil {
			return err
		}
		if err := uc.saveOccupancy(ctx, tx, sessions); err != nil {
			return err
		}

		if in.NotifyParent {
			start := target.StartTime()
			targetID := target.ID()
			if err := uc.enqueue(ctx, tx, shared.BookingEvent{
				Kind:            shared.EventBookingRescheduled,
				ParentID:        b.ParentID(),
				SwimmerID:       b.SwimmerID(),
				BookingIDs:      []uuid.UUID{b.ID()},
				SessionID:       &targetID,
				SessionStart:    &start,
				PreviousSession: &oldID,
				OccurredAt:      now,
			}); err != nil {
				return err
			}
		}

		result = &RescheduleResult{BookingID: b.ID(), PreviousSessionID: oldID, SessionID: target.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteBooking records attendance for one booking. Only a confirmed
// booking can be completed; completing it again is ErrInvalidTransition.
func (uc *bookingCommandsImpl) CompleteBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*CompleteResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	var result *CompleteResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().LockForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			return notFound(err, ErrBookingNotFound)
		}
		if err := b.Complete(uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, tx.DB(), b); err != nil {
			return err
		}
		result = &CompleteResult{BookingID: b.ID(), SessionID: b.SessionID(), Status: b.Status()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *bookingCommandsImpl) Bulk(ctx context.Context, actor user.Actor, in BulkInput) (*BulkResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if len(in.BookingIDs) == 0 {
		return nil, validationError("booking_ids must not be empty")
	}
	if !in.Action.IsValid() {
		return nil, validationError("invalid bulk action")
	}
	if in.Action == BulkChangeInstructor && (in.InstructorID == nil || *in.InstructorID == uuid.Nil) {
		return nil, validationError("instructor_id is required for change_instructor")
	}
	ids := uniqueSorted(in.BookingIDs)

	var result *BulkResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		bookings, err := tx.Bookings().LockManyForUpdate(ctx, tx.DB(), ids)
		if err != nil {
			return err
		}
		if len(bookings) != len(ids) {
			return ErrBookingNotFound
		}

		switch in.Action {
		case BulkCancel:
			result, err = uc.bulkCancel(ctx, tx, actor, bookings, now)
		case BulkChangeInstructor:
			result, err = uc.bulkChangeInstructor(ctx, tx, bookings, *in.InstructorID, now)
		case BulkMarkCompleted:
			result, err = uc.bulkTransition(ctx, tx, bookings, booking.StatusCompleted, now)
		case BulkMarkNoShow:
			result, err = uc.bulkTransition(ctx, tx, bookings, booking.StatusNoShow, now)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// bulkCancel cancels the selected bookings in one statement and settles
// counts per session. Every booking must still be confirmed. Bulk
// cancellation never creates floating sessions.
func (uc *bookingCommandsImpl) bulkCancel(
	ctx context.Context,
	tx shared.Tx,
	actor user.Actor,
	bookings []*booking.Booking,
	now time.Time,
) (*BulkResult, error) {
	cancelled := bookings
	for _, b := range cancelled {
		if err := b.Cancel(booking.ReasonBulkCancel, booking.CancelSourceAdmin, actor.UserID, now); err != nil {
			return nil, errs.Wrapf(err, "booking %s", b.ID())
		}
	}

	ids := make([]uuid.UUID, len(cancelled))
	sessionIDs := make([]uuid.UUID, len(cancelled))
	releases := make(map[uuid.UUID]int)
	for i, b := range cancelled {
		ids[i] = b.ID()
		sessionIDs[i] = b.SessionID()
		if po := b.PurchaseOrderID(); po != nil {
			releases[*po]++
		}
	}

	sessions, err := uc.lockSessions(ctx, tx, sessionIDs, now)
	if err != nil {
		return nil, err
	}

	source := booking.CancelSourceAdmin
	updated, err := tx.Bookings().UpdateStatusBatch(ctx, tx.DB(), ids, shared.StatusUpdate{
		Status:       booking.StatusCancelled,
		CancelReason: booking.ReasonBulkCancel,
		CancelSource: &source,
		CanceledAt:   &now,
		CanceledBy:   &actor.UserID,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	for _, b := range cancelled {
		rec := cancellation.NewRecord(cancellation.RecordParams{
			Booking:      b,
			SessionStart: sessions[b.SessionID()].StartTime(),
			CancelledBy:  actor.UserID,
			Source:       source,
			Reason:       booking.ReasonBulkCancel,
		}, now)
		if err := tx.Cancellations().Create(ctx, tx.DB(), rec); err != nil {
			return nil, err
		}
	}

	if err := uc.syncCounts(ctx, tx, sessions, now); err != nil {
		return nil, err
	}
	if err := uc.saveOccupancy(ctx, tx, sessions); err != nil {
		return nil, err
	}
	for _, poID := range sortedKeys(releases) {
		if err := uc.releasePurchaseOrder(ctx, tx, poID, releases[poID], now); err != nil {
			return nil, err
		}
	}

	return &BulkResult{Updated: int(updated), SessionsAffected: len(sessions)}, nil
}

// bulkTransition moves every selected booking to a terminal status. One
// booking that is already terminal rejects the whole batch.
func (uc *bookingCommandsImpl) bulkTransition(
	ctx context.Context,
	tx shared.Tx,
	bookings []*booking.Booking,
	to booking.Status,
	now time.Time,
) (*BulkResult, error) {
	ids := make([]uuid.UUID, len(bookings))
	touched := make(map[uuid.UUID]struct{})
	for i, b := range bookings {
		var err error
		if to == booking.StatusNoShow {
			err = b.MarkNoShow(now)
		} else {
			err = b.Complete(now)
		}
		if err != nil {
			return nil, errs.Wrapf(err, "booking %s", b.ID())
		}
		ids[i] = b.ID()
		touched[b.SessionID()] = struct{}{}
	}

	updated, err := tx.Bookings().UpdateStatusBatch(ctx, tx.DB(), ids, shared.StatusUpdate{
		Status:    to,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	return &BulkResult{Updated: int(updated), SessionsAffected: len(touched)}, nil
}

// bulkChangeInstructor reassigns the sessions behind the confirmed bookings
// in the selection. The bookings themselves are not modified, and sessions
// reached only through finished bookings keep their instructor.
func (uc *bookingCommandsImpl) bulkChangeInstructor(
	ctx context.Context,
	tx shared.Tx,
	bookings []*booking.Booking,
	instructorID uuid.UUID,
	now time.Time,
) (*BulkResult, error) {
	var sessionIDs []uuid.UUID
	for _, b := range bookings {
		if b.IsConfirmed() {
			sessionIDs = append(sessionIDs, b.SessionID())
		}
	}
	if len(sessionIDs) == 0 {
		return &BulkResult{}, nil
	}
	n, err := tx.Sessions().UpdateInstructor(ctx, tx.DB(), uniqueSorted(sessionIDs), instructorID, now)
	if err != nil {
		return nil, err
	}
	return &BulkResult{Updated: len(sessionIDs), SessionsAffected: int(n)}, nil
}
