package commands

import (
	"context"
	"strings"
	"time"

	"swimbooking/internal/domain/booking"
	"swimbooking/internal/domain/cancellation"
	"swimbooking/internal/domain/swimmer"
	"swimbooking/internal/domain/user"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
)

func (uc *bookingCommandsImpl) CancelByParent(ctx context.Context, actor user.Actor, bookingID uuid.UUID, reason string) (*CancelResult, error) {
	var result *CancelResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		b, err := tx.Bookings().LockForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			return notFound(err, ErrBookingNotFound)
		}
		if !actor.CanActFor(b.ParentID()) {
			return ErrForbidden
		}
		if err := cancellable(b); err != nil {
			return err
		}

		sessions, err := uc.lockSessions(ctx, tx, []uuid.UUID{b.SessionID()}, now)
		if err != nil {
			return err
		}
		s := sessions[b.SessionID()]

		notice := uc.policy.Notice.Evaluate(s.StartTime(), now)
		if notice.Late {
			return &LateCancellationError{
				HoursBeforeSession: notice.HoursBefore,
				ContactPhone:       uc.policy.ContactPhone,
				ContactType:        uc.policy.ContactType,
			}
		}

		out, err := uc.cancelBooking(ctx, tx, cancelRequest{
			booking: b,
			session: s,
			source:  booking.CancelSourceParent,
			reason:  reason,
			by:      actor.UserID,
			float:   cancellation.ShouldFloat(s.IsRecurring(), s.StartTime(), now),
		}, now)
		if err != nil {
			return err
		}

		if err := uc.syncCounts(ctx, tx, sessions, now); err != nil {
			return err
		}
		if err := uc.saveOccupancy(ctx, tx, sessions); err != nil {
			return err
		}

		if err := uc.enqueueCancelled(ctx, tx, b, s.StartTime(), out, now); err != nil {
			return err
		}

		result = &CancelResult{
			BookingID:              b.ID(),
			FloatingSessionCreated: out.floated,
			HoursBeforeSession:     notice.HoursBefore,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// cancellable rejects finished bookings before any notice rules apply, so a
// past session never reads as a late cancellation.
func cancellable(b *booking.Booking) error {
	switch {
	case b.Status() == booking.StatusCancelled:
		return booking.ErrAlreadyCancelled
	case !b.IsConfirmed():
		return booking.ErrInvalidTransition
	}
	return nil
}

func (uc *bookingCommandsImpl) CancelByAdmin(ctx context.Context, actor user.Actor, bookingID uuid.UUID, in AdminCancelInput) (*CancelResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	var result *CancelResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		b, err := tx.Bookings().LockForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			return notFound(err, ErrBookingNotFound)
		}
		if err := cancellable(b); err != nil {
			return err
		}

		// swimmer before session, matching CreateBookings
		var sw *swimmer.Swimmer
		if in.MarkFlexible || b.Type() == booking.TypeAssessment {
			sw, err = tx.Swimmers().GetForUpdate(ctx, tx.DB(), b.SwimmerID())
			if err != nil {
				return notFound(err, ErrSwimmerNotFound)
			}
		}

		sessions, err := uc.lockSessions(ctx, tx, []uuid.UUID{b.SessionID()}, now)
		if err != nil {
			return err
		}
		s := sessions[b.SessionID()]

		out, err := uc.cancelBooking(ctx, tx, cancelRequest{
			booking: b,
			session: s,
			source:  booking.CancelSourceAdmin,
			reason:  in.Reason,
			by:      actor.UserID,
			float:   cancellation.ShouldFloat(s.IsRecurring(), s.StartTime(), now),
		}, now)
		if err != nil {
			return err
		}

		if sw != nil {
			if in.MarkFlexible {
				sw.MarkFlexible(now)
			}
			if b.Type() == booking.TypeAssessment {
				sw.ResetAssessment(now)
				if _, err := tx.Assessments().CancelForBooking(ctx, tx.DB(), b.ID(), now); err != nil {
					return err
				}
			}
			if err := tx.Swimmers().SaveFlags(ctx, tx.DB(), sw); err != nil {
				return err
			}
		}

		if err := uc.syncCounts(ctx, tx, sessions, now); err != nil {
			return err
		}
		if err := uc.saveOccupancy(ctx, tx, sessions); err != nil {
			return err
		}
		if err := uc.enqueueCancelled(ctx, tx, b, s.StartTime(), out, now); err != nil {
			return err
		}

		result = &CancelResult{
			BookingID:              b.ID(),
			FloatingSessionCreated: out.floated,
			HoursBeforeSession:     uc.policy.Notice.Evaluate(s.StartTime(), now).HoursBefore,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *bookingCommandsImpl) CancelBlock(ctx context.Context, actor user.Actor, in CancelBlockInput) (*CancelBlockResult, error) {
	if in.SwimmerID == uuid.Nil || in.BatchID == uuid.Nil {
		return nil, validationError("swimmer_id and batch_id are required")
	}

	source := booking.CancelSourceParent
	if actor.IsAdmin() {
		source = booking.CancelSourceAdmin
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = booking.ReasonBlockCancel
	}

	var result *CancelBlockResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		block, err := tx.Bookings().ListBlockForUpdate(ctx, tx.DB(), in.SwimmerID, in.BatchID)
		if err != nil {
			return err
		}
		if len(block) == 0 {
			return ErrBlockNotFound
		}
		if !actor.CanActFor(block[0].Booking.ParentID()) {
			return ErrForbidden
		}

		// block is ordered by session start
		if !actor.IsAdmin() && !block[0].SessionStart.After(now) {
			return ErrBlockAlreadyStarted
		}

		var targets []shared.BlockBooking
		sessionIDs := make([]uuid.UUID, 0, len(block))
		for _, bb := range block {
			if bb.Booking.IsConfirmed() && bb.SessionStart.After(now) {
				targets = append(targets, bb)
				sessionIDs = append(sessionIDs, bb.Booking.SessionID())
			}
		}

		blockID := uuid.New()
		result = &CancelBlockResult{BlockID: blockID}
		if len(targets) == 0 {
			return nil
		}

		sessions, err := uc.lockSessions(ctx, tx, sessionIDs, now)
		if err != nil {
			return err
		}

		cancelled := make([]uuid.UUID, 0, len(targets))
		for _, bb := range targets {
			out, err := uc.cancelBooking(ctx, tx, cancelRequest{
				booking:      bb.Booking,
				session:      sessions[bb.Booking.SessionID()],
				source:       source,
				reason:       reason,
				by:           actor.UserID,
				float:        true,
				blockID:      &blockID,
				isolateFloat: true,
			}, now)
			if err != nil {
				return err
			}
			if out.floated {
				result.FloatingSessionsCreated++
			}
			cancelled = append(cancelled, bb.Booking.ID())
		}
		result.BookingsCancelled = len(cancelled)

		if err := uc.syncCounts(ctx, tx, sessions, now); err != nil {
			return err
		}
		if err := uc.saveOccupancy(ctx, tx, sessions); err != nil {
			return err
		}

		first := targets[0].Booking
		return uc.enqueue(ctx, tx, shared.BookingEvent{
			Kind:            shared.EventBlockCancelled,
			ParentID:        first.ParentID(),
			SwimmerID:       first.SwimmerID(),
			BookingIDs:      cancelled,
			Reason:          reason,
			BlockID:         &blockID,
			FloatingCreated: result.FloatingSessionsCreated,
			OccurredAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *bookingCommandsImpl) enqueueCancelled(ctx context.Context, tx shared.Tx, b *booking.Booking, start time.Time, out cancelOutcome, now time.Time) error {
	sessionID := b.SessionID()
	floated := 0
	if out.floated {
		floated = 1
	}
	return uc.enqueue(ctx, tx, shared.BookingEvent{
		Kind:            shared.EventBookingCancelled,
		ParentID:        b.ParentID(),
		SwimmerID:       b.SwimmerID(),
		BookingIDs:      []uuid.UUID{b.ID()},
		SessionID:       &sessionID,
		SessionStart:    &start,
		Reason:          b.CancelReason(),
		FloatingCreated: floated,
		OccurredAt:      now,
	})
}
