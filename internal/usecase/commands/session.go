package commands

import (
	"context"

	"swimbooking/internal/domain/booking"
	"swimbooking/internal/domain/session"
	"swimbooking/internal/domain/user"
	"swimbooking/internal/pkg/clock"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CloseSessionInput struct {
	Reason string
	Notes  string
}

type CloseSessionResult struct {
	SessionID               uuid.UUID
	BookingsCancelled       int
	FloatingSessionsCreated int
	FloatingSessionsFailed  int
}

type SessionCommands interface {
	CloseSession(ctx context.Context, actor user.Actor, sessionID uuid.UUID, in CloseSessionInput) (*CloseSessionResult, error)
}

type sessionCommandsImpl struct {
	lifecycle
}

func NewSessionCommands(uow shared.UnitOfWork, clk clock.Clock, policy Policy) SessionCommands {
	return &sessionCommandsImpl{
		lifecycle: lifecycle{uow: uow, clock: clk, policy: policy},
	}
}

// CloseSession closes the session and cancels every confirmed booking on it,
// leaving a floating session behind for each one. A floating session that
// cannot be written is counted in the result and does not stop the cascade.
func (uc *sessionCommandsImpl) CloseSession(ctx context.Context, actor user.Actor, sessionID uuid.UUID, in CloseSessionInput) (*CloseSessionResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	closure, err := session.NewClosure(in.Reason, in.Notes)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var result *CloseSessionResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		sessions, err := uc.lockSessions(ctx, tx, []uuid.UUID{sessionID}, now)
		if err != nil {
			return err
		}
		s := sessions[sessionID]

		if err := s.Close(closure, actor.UserID, now); err != nil {
			return err
		}
		if err := tx.Sessions().SaveClosure(ctx, tx.DB(), s); err != nil {
			return err
		}

		bookings, err := tx.Bookings().ListConfirmedForSessionForUpdate(ctx, tx.DB(), sessionID)
		if err != nil {
			return err
		}

		result = &CloseSessionResult{SessionID: sessionID}
		for _, b := range bookings {
			out, err := uc.cancelBooking(ctx, tx, cancelRequest{
				booking:      b,
				session:      s,
				source:       booking.CancelSourceSystem,
				reason:       booking.ReasonSessionClosed,
				by:           actor.UserID,
				float:        true,
				isolateFloat: true,
			}, now)
			if err != nil {
				return errs.Wrapf(err, "failed to cancel booking %s", b.ID())
			}
			result.BookingsCancelled++
			if out.floated {
				result.FloatingSessionsCreated++
			}
			if out.floatFailed {
				result.FloatingSessionsFailed++
			}

			start := s.StartTime()
			floated := 0
			if out.floated {
				floated = 1
			}
			if err := uc.enqueue(ctx, tx, shared.BookingEvent{
				Kind:            shared.EventSessionClosed,
				ParentID:        b.ParentID(),
				SwimmerID:       b.SwimmerID(),
				BookingIDs:      []uuid.UUID{b.ID()},
				SessionID:       &sessionID,
				SessionStart:    &start,
				Reason:          closure.Reason().String(),
				FloatingCreated: floated,
				OccurredAt:      now,
			}); err != nil {
				return err
			}
		}

		if err := uc.syncCounts(ctx, tx, sessions, now); err != nil {
			return err
		}
		return uc.saveOccupancy(ctx, tx, sessions)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
