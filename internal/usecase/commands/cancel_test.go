//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"swimbooking/internal/domain/booking"
	"swimbooking/internal/domain/session"
	"swimbooking/internal/domain/swimmer"
	"swimbooking/internal/domain/user"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/commands"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelByParent(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		startIn     time.Duration
		recurring   bool
		expectFloat bool
	}{
		{name: "recurring lesson with notice floats", startIn: 48 * time.Hour, recurring: true, expectFloat: true},
		{name: "single lesson with notice does not float", startIn: 48 * time.Hour, recurring: false, expectFloat: false},
		{name: "exactly at the cutoff is on time", startIn: 24 * time.Hour, recurring: true, expectFloat: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld()
			var mutate []func(*builderSession)
			if tc.recurring {
				mutate = append(mutate, recurring)
			}
			sessionID := w.addSession(tc.startIn, 2, mutate...)
			b := w.seedBooking(sessionID)

			res, err := w.bookings.CancelByParent(ctx, w.parent, b.ID(), "sick")
			require.NoError(t, err)

			assert.Equal(t, b.ID(), res.BookingID)
			assert.Equal(t, tc.expectFloat, res.FloatingSessionCreated)
			assert.Equal(t, tc.startIn.Hours(), res.HoursBeforeSession)

			cancelled := w.store.Booking(b.ID())
			assert.Equal(t, booking.StatusCancelled, cancelled.Status())
			require.NotNil(t, cancelled.CancelSource())
			assert.Equal(t, booking.CancelSourceParent, *cancelled.CancelSource())
			assert.Equal(t, "sick", cancelled.CancelReason())

			assert.Equal(t, 0, w.count(sessionID))
			if tc.expectFloat {
				assert.Len(t, w.store.FloatingSessions(), 1)
			} else {
				assert.Empty(t, w.store.FloatingSessions())
			}

			records := w.store.Cancellations()
			require.Len(t, records, 1)
			assert.Equal(t, tc.expectFloat, records[0].FloatingCreated())
			assert.Equal(t, []string{shared.EventBookingCancelled}, w.jobTopics())
		})
	}
}

func TestCancelByParent_LateCancellation(t *testing.T) {
	ctx := context.Background()
	w := newWorld()
	sessionID := w.addSession(5*time.Hour+30*time.Minute, 1, recurring)
	b := w.seedBooking(sessionID)

	res, err := w.bookings.CancelByParent(ctx, w.parent, b.ID(), "")
	require.Error(t, err)
	assert.Nil(t, res)

	var late *commands.LateCancellationError
	require.True(t, errs.As(err, &late))
	assert.Equal(t, 5.5, late.HoursBeforeSession)
	assert.Equal(t, w.policy.ContactPhone, late.ContactPhone)
	assert.Equal(t, w.policy.ContactType, late.ContactType)
	assert.True(t, errs.Is(err, commands.ErrLateCancellation))

	assert.Equal(t, booking.StatusConfirmed, w.status(b.ID()))
	assert.Equal(t, 1, w.count(sessionID))
	assert.Empty(t, w.store.FloatingSessions())
	assert.Empty(t, w.store.Cancellations())
}

func TestCancelByParent_OneMinuteShortOfCutoff(t *testing.T) {
	w := newWorld()
	b := w.seedBooking(w.addSession(24*time.Hour-time.Minute, 1))

	_, err := w.bookings.CancelByParent(context.Background(), w.parent, b.ID(), "")

	var late *commands.LateCancellationError
	require.True(t, errs.As(err, &late), "got %v", err)
	assert.Equal(t, 23.9, late.HoursBeforeSession, "a refused cancellation never reports the full cutoff")
}

func TestCancelByParent_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown booking", func(t *testing.T) {
		w := newWorld()
		_, err := w.bookings.CancelByParent(ctx, w.parent, uuid.New(), "")
		assert.True(t, errs.Is(err, commands.ErrBookingNotFound), "got %v", err)
	})

	t.Run("another parent", func(t *testing.T) {
		w := newWorld()
		b := w.seedBooking(w.addSession(72*time.Hour, 1))
		_, err := w.bookings.CancelByParent(ctx, user.NewActor(uuid.New(), user.RoleParent), b.ID(), "")
		require.ErrorIs(t, err, commands.ErrForbidden)
		assert.Equal(t, booking.StatusConfirmed, w.status(b.ID()))
	})

	t.Run("already cancelled", func(t *testing.T) {
		w := newWorld()
		b := w.seedBooking(w.addSession(72*time.Hour, 1), func(b *builderBooking) { b.Status = booking.StatusCancelled })
		_, err := w.bookings.CancelByParent(ctx, w.parent, b.ID(), "")
		require.ErrorIs(t, err, booking.ErrAlreadyCancelled)
	})

	t.Run("finished bookings are not cancellations", func(t *testing.T) {
		testCases := []struct {
			name    string
			status  booking.Status
			startIn time.Duration
		}{
			{name: "completed, future session", status: booking.StatusCompleted, startIn: 72 * time.Hour},
			{name: "completed, past session", status: booking.StatusCompleted, startIn: -2 * time.Hour},
			{name: "no show, past session", status: booking.StatusNoShow, startIn: -26 * time.Hour},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				w := newWorld()
				b := w.seedBooking(w.addSession(tc.startIn, 1), func(b *builderBooking) { b.Status = tc.status })

				_, err := w.bookings.CancelByParent(ctx, w.parent, b.ID(), "")
				require.ErrorIs(t, err, booking.ErrInvalidTransition)
				var late *commands.LateCancellationError
				assert.False(t, errs.As(err, &late))
				assert.Equal(t, tc.status, w.status(b.ID()))
			})
		}
	})
}

func TestCancelByParent_ReleasesPurchaseOrder(t *testing.T) {
	ctx := context.Background()
	w := newWorld()
	funded := w.addSwimmer(w.parent.UserID, true)
	po := w.addOrder(funded, 2)
	sessionID := w.addSession(72*time.Hour, 2)

	res, err := w.bookings.CreateBookings(ctx, w.parent, commands.CreateBookingsInput{SwimmerID: funded.ID(), SessionIDs: []uuid.UUID{sessionID}})
	require.NoError(t, err)
	require.Equal(t, 1, w.store.PurchaseOrder(po.ID()).SessionsBooked())

	_, err = w.bookings.CancelByParent(ctx, w.parent, res.BookingIDs[0], "")
	require.NoError(t, err)
	assert.Equal(t, 0, w.store.PurchaseOrder(po.ID()).SessionsBooked())
}

func TestCancelByAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("parents may not use it", func(t *testing.T) {
		w := newWorld()
		b := w.seedBooking(w.addSession(72*time.Hour, 1))
		_, err := w.bookings.CancelByAdmin(ctx, w.parent, b.ID(), commands.AdminCancelInput{})
		require.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("inside the notice window", func(t *testing.T) {
		w := newWorld()
		sessionID := w.addSession(2*time.Hour, 1, recurring)
		b := w.seedBooking(sessionID)

		res, err := w.bookings.CancelByAdmin(ctx, w.admin, b.ID(), commands.AdminCancelInput{Reason: "called the front desk"})
		require.NoError(t, err)
		assert.True(t, res.FloatingSessionCreated)
		assert.Equal(t, 2.0, res.HoursBeforeSession)

		cancelled := w.store.Booking(b.ID())
		assert.Equal(t, booking.CancelSourceAdmin, *cancelled.CancelSource())
		assert.Equal(t, w.admin.UserID, *cancelled.CanceledBy())
		assert.Equal(t, 0, w.count(sessionID))
	})

	t.Run("mark flexible", func(t *testing.T) {
		w := newWorld()
		b := w.seedBooking(w.addSession(72*time.Hour, 1))

		_, err := w.bookings.CancelByAdmin(ctx, w.admin, b.ID(), commands.AdminCancelInput{MarkFlexible: true})
		require.NoError(t, err)
		assert.True(t, w.store.Swimmer(w.swimmer.ID()).FlexibleSwimmer())
	})

	t.Run("assessment resets the swimmer", func(t *testing.T) {
		w := newWorld()
		b := w.seedBooking(w.addSession(72*time.Hour, 1), func(b *builderBooking) { b.Type = booking.TypeAssessment })

		_, err := w.bookings.CancelByAdmin(ctx, w.admin, b.ID(), commands.AdminCancelInput{})
		require.NoError(t, err)
		assert.Equal(t, swimmer.AssessmentNotScheduled, w.store.Swimmer(w.swimmer.ID()).AssessmentStatus())
	})
}

func TestCancelBlock(t *testing.T) {
	ctx := context.Background()

	setup := func(w *world) (batchID uuid.UUID, sessions []uuid.UUID, bookings []*booking.Booking) {
		batchID = uuid.New()
		for i := 1; i <= 4; i++ {
			id := w.addSession(time.Duration(i)*7*24*time.Hour, 2, recurring)
			sessions = append(sessions, id)
			bookings = append(bookings, w.seedBooking(id, func(b *builderBooking) {
				b.Type = booking.TypeRecurring
				b.BatchID = &batchID
			}))
		}
		return batchID, sessions, bookings
	}

	t.Run("cancels every future booking and floats each", func(t *testing.T) {
		w := newWorld()
		batchID, sessions, bookings := setup(w)
		// an already cancelled lesson in the block is left alone
		_, err := w.bookings.CancelByParent(ctx, w.parent, bookings[3].ID(), "")
		require.NoError(t, err)

		res, err := w.bookings.CancelBlock(ctx, w.parent, commands.CancelBlockInput{SwimmerID: w.swimmer.ID(), BatchID: batchID})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, res.BlockID)
		assert.Equal(t, 3, res.BookingsCancelled)
		assert.Equal(t, 3, res.FloatingSessionsCreated)
		for _, b := range bookings {
			assert.Equal(t, booking.StatusCancelled, w.status(b.ID()))
		}
		assert.True(t, w.countsConsistent(sessions...))
		for _, id := range sessions {
			assert.Equal(t, 0, w.count(id))
		}

		var blockRecords int
		for _, r := range w.store.Cancellations() {
			if r.BlockID() != nil && *r.BlockID() == res.BlockID {
				blockRecords++
				assert.Equal(t, booking.ReasonBlockCancel, r.Reason())
			}
		}
		assert.Equal(t, 3, blockRecords)
		assert.Contains(t, w.jobTopics(), shared.EventBlockCancelled)
	})

	t.Run("failed floating inserts do not stop the cancellation", func(t *testing.T) {
		w := newWorld()
		batchID, _, bookings := setup(w)
		w.store.FailFloating = true

		res, err := w.bookings.CancelBlock(ctx, w.parent, commands.CancelBlockInput{SwimmerID: w.swimmer.ID(), BatchID: batchID})
		require.NoError(t, err)
		assert.Equal(t, 4, res.BookingsCancelled)
		assert.Equal(t, 0, res.FloatingSessionsCreated)
		for _, b := range bookings {
			assert.Equal(t, booking.StatusCancelled, w.status(b.ID()))
		}
		assert.Empty(t, w.store.FloatingSessions())
	})

	t.Run("parent cannot cancel a block that has started", func(t *testing.T) {
		w := newWorld()
		batchID, _, _ := setup(w)
		w.clock.Add(8 * 24 * time.Hour)

		_, err := w.bookings.CancelBlock(ctx, w.parent, commands.CancelBlockInput{SwimmerID: w.swimmer.ID(), BatchID: batchID})
		require.ErrorIs(t, err, commands.ErrBlockAlreadyStarted)
	})

	t.Run("admin cancels the remainder of a started block", func(t *testing.T) {
		w := newWorld()
		batchID, _, bookings := setup(w)
		w.clock.Add(8 * 24 * time.Hour)

		res, err := w.bookings.CancelBlock(ctx, w.admin, commands.CancelBlockInput{SwimmerID: w.swimmer.ID(), BatchID: batchID})
		require.NoError(t, err)
		assert.Equal(t, 3, res.BookingsCancelled)
		assert.Equal(t, booking.StatusConfirmed, w.status(bookings[0].ID()))
	})

	t.Run("unknown block", func(t *testing.T) {
		w := newWorld()
		_, err := w.bookings.CancelBlock(ctx, w.parent, commands.CancelBlockInput{SwimmerID: w.swimmer.ID(), BatchID: uuid.New()})
		require.ErrorIs(t, err, commands.ErrBlockNotFound)
	})

	t.Run("another parent", func(t *testing.T) {
		w := newWorld()
		batchID, _, _ := setup(w)
		_, err := w.bookings.CancelBlock(ctx, user.NewActor(uuid.New(), user.RoleParent), commands.CancelBlockInput{SwimmerID: w.swimmer.ID(), BatchID: batchID})
		require.ErrorIs(t, err, commands.ErrForbidden)
	})
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the seat and leaves the order alone", func(t *testing.T) {
		w := newWorld()
		funded := w.addSwimmer(w.parent.UserID, true)
		po := w.addOrder(funded, 2)
		from := w.addSession(48*time.Hour, 1)
		to := w.addSession(96*time.Hour, 1)

		created, err := w.bookings.CreateBookings(ctx, w.parent, commands.CreateBookingsInput{SwimmerID: funded.ID(), SessionIDs: []uuid.UUID{from}})
		require.NoError(t, err)
		bookingID := created.BookingIDs[0]

		res, err := w.bookings.Reschedule(ctx, w.admin, bookingID, commands.RescheduleInput{TargetSessionID: to, NotifyParent: true})
		require.NoError(t, err)
		assert.Equal(t, from, res.PreviousSessionID)
		assert.Equal(t, to, res.SessionID)

		assert.Equal(t, to, w.store.Booking(bookingID).SessionID())
		assert.Equal(t, booking.StatusConfirmed, w.status(bookingID))
		assert.Equal(t, 0, w.count(from))
		assert.Equal(t, 1, w.count(to))
		assert.True(t, w.countsConsistent(from, to))
		assert.Equal(t, 1, w.store.PurchaseOrder(po.ID()).SessionsBooked())
		assert.Contains(t, w.jobTopics(), shared.EventBookingRescheduled)
	})

	t.Run("no notification unless asked", func(t *testing.T) {
		w := newWorld()
		b := w.seedBooking(w.addSession(48*time.Hour, 1))
		_, err := w.bookings.Reschedule(ctx, w.admin, b.ID(), commands.RescheduleInput{TargetSessionID: w.addSession(96*time.Hour, 1)})
		require.NoError(t, err)
		assert.Empty(t, w.jobTopics())
	})

	t.Run("rejections", func(t *testing.T) {
		testCases := []struct {
			name  string
			setup func(w *world) (user.Actor, uuid.UUID, uuid.UUID)
			err   error
		}{
			{
				name: "parent caller",
				setup: func(w *world) (user.Actor, uuid.UUID, uuid.UUID) {
					return w.parent, w.seedBooking(w.addSession(48*time.Hour, 1)).ID(), w.addSession(96*time.Hour, 1)
				},
				err: commands.ErrForbidden,
			},
			{
				name: "target full",
				setup: func(w *world) (user.Actor, uuid.UUID, uuid.UUID) {
					b := w.seedBooking(w.addSession(48*time.Hour, 1))
					target := w.addSession(96*time.Hour, 1)
					other := w.addSwimmer(w.parent.UserID, false)
					w.seedBooking(target, func(bb *builderBooking) { bb.SwimmerID = other.ID() })
					return w.admin, b.ID(), target
				},
				err: session.ErrSessionFull,
			},
			{
				name: "same session",
				setup: func(w *world) (user.Actor, uuid.UUID, uuid.UUID) {
					id := w.addSession(48*time.Hour, 1)
					return w.admin, w.seedBooking(id).ID(), id
				},
				err: commands.ErrValidation,
			},
			{
				name: "cancelled booking",
				setup: func(w *world) (user.Actor, uuid.UUID, uuid.UUID) {
					b := w.seedBooking(w.addSession(48*time.Hour, 1), func(bb *builderBooking) { bb.Status = booking.StatusCancelled })
					return w.admin, b.ID(), w.addSession(96*time.Hour, 1)
				},
				err: booking.ErrNotConfirmed,
			},
			{
				name: "unknown target",
				setup: func(w *world) (user.Actor, uuid.UUID, uuid.UUID) {
					return w.admin, w.seedBooking(w.addSession(48*time.Hour, 1)).ID(), uuid.New()
				},
				err: commands.ErrSessionNotFound,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				w := newWorld()
				actor, bookingID, target := tc.setup(w)
				_, err := w.bookings.Reschedule(ctx, actor, bookingID, commands.RescheduleInput{TargetSessionID: target})
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.err), "got %v", err)
			})
		}
	})
}

func TestCompleteBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed booking completes and keeps its seat", func(t *testing.T) {
		w := newWorld()
		sessionID := w.addSession(48*time.Hour, 2)
		b := w.seedBooking(sessionID)

		res, err := w.bookings.CompleteBooking(ctx, w.admin, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, res.Status)
		assert.Equal(t, sessionID, res.SessionID)
		assert.Equal(t, booking.StatusCompleted, w.status(b.ID()))
		assert.Equal(t, 1, w.count(sessionID))
		assert.True(t, w.countsConsistent(sessionID))
	})

	t.Run("completing again is rejected", func(t *testing.T) {
		w := newWorld()
		b := w.seedBooking(w.addSession(48*time.Hour, 2))

		_, err := w.bookings.CompleteBooking(ctx, w.admin, b.ID())
		require.NoError(t, err)
		commits := w.store.Commits()

		_, err = w.bookings.CompleteBooking(ctx, w.admin, b.ID())
		assert.True(t, errs.Is(err, booking.ErrInvalidTransition), "got %v", err)
		assert.Equal(t, commits, w.store.Commits())
		assert.Equal(t, booking.StatusCompleted, w.status(b.ID()))
	})

	t.Run("rejections", func(t *testing.T) {
		w := newWorld()
		sessionID := w.addSession(48*time.Hour, 3)
		confirmed := w.seedBooking(sessionID)
		cancelled := w.seedBooking(sessionID, func(b *builderBooking) { b.Status = booking.StatusCancelled })
		noShow := w.seedBooking(sessionID, func(b *builderBooking) { b.Status = booking.StatusNoShow })

		testCases := []struct {
			name      string
			actor     user.Actor
			bookingID uuid.UUID
			err       error
		}{
			{name: "parent caller", actor: w.parent, bookingID: confirmed.ID(), err: commands.ErrForbidden},
			{name: "unknown booking", actor: w.admin, bookingID: uuid.New(), err: commands.ErrBookingNotFound},
			{name: "cancelled booking", actor: w.admin, bookingID: cancelled.ID(), err: booking.ErrInvalidTransition},
			{name: "no show booking", actor: w.admin, bookingID: noShow.ID(), err: booking.ErrInvalidTransition},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := w.bookings.CompleteBooking(ctx, tc.actor, tc.bookingID)
				assert.True(t, errs.Is(err, tc.err), "got %v", err)
			})
		}
		assert.Equal(t, booking.StatusConfirmed, w.status(confirmed.ID()))
		assert.Zero(t, w.store.Commits())
	})
}

func TestBulk(t *testing.T) {
	ctx := context.Background()

	seed := func(w *world) ([]uuid.UUID, []uuid.UUID) {
		sessions := []uuid.UUID{
			w.addSession(48*time.Hour, 3, recurring),
			w.addSession(96*time.Hour, 3, recurring),
		}
		var ids []uuid.UUID
		for _, s := range sessions {
			ids = append(ids, w.seedBooking(s).ID())
			other := w.addSwimmer(w.parent.UserID, false)
			ids = append(ids, w.seedBooking(s, func(b *builderBooking) { b.SwimmerID = other.ID() }).ID())
		}
		return sessions, ids
	}

	t.Run("cancel never floats", func(t *testing.T) {
		w := newWorld()
		sessions, ids := seed(w)

		res, err := w.bookings.Bulk(ctx, w.admin, commands.BulkInput{BookingIDs: ids, Action: commands.BulkCancel})
		require.NoError(t, err)
		assert.Equal(t, 4, res.Updated)
		assert.Equal(t, 2, res.SessionsAffected)

		for _, id := range ids {
			assert.Equal(t, booking.StatusCancelled, w.status(id))
			assert.Equal(t, booking.ReasonBulkCancel, w.store.Booking(id).CancelReason())
		}
		assert.Empty(t, w.store.FloatingSessions())
		assert.Len(t, w.store.Cancellations(), 4)
		assert.Equal(t, 0, w.count(sessions[0]))
		assert.Equal(t, 0, w.count(sessions[1]))
		assert.True(t, w.countsConsistent(sessions...))
	})

	t.Run("mark completed", func(t *testing.T) {
		w := newWorld()
		sessions, ids := seed(w)

		res, err := w.bookings.Bulk(ctx, w.admin, commands.BulkInput{BookingIDs: ids, Action: commands.BulkMarkCompleted})
		require.NoError(t, err)
		assert.Equal(t, 4, res.Updated)
		for _, id := range ids {
			assert.Equal(t, booking.StatusCompleted, w.status(id))
		}
		assert.Equal(t, 2, w.count(sessions[0]), "completed bookings keep their seat")
	})

	t.Run("completing twice is rejected", func(t *testing.T) {
		w := newWorld()
		_, ids := seed(w)

		_, err := w.bookings.Bulk(ctx, w.admin, commands.BulkInput{BookingIDs: ids[:1], Action: commands.BulkMarkCompleted})
		require.NoError(t, err)
		commits := w.store.Commits()

		res, err := w.bookings.Bulk(ctx, w.admin, commands.BulkInput{BookingIDs: ids[:1], Action: commands.BulkMarkCompleted})
		require.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, errs.Is(err, booking.ErrInvalidTransition), "got %v", err)
		assert.Equal(t, commits, w.store.Commits())
	})

	t.Run("one finished booking rejects the whole batch", func(t *testing.T) {
		testCases := []struct {
			name   string
			status booking.Status
			action commands.BulkAction
			err    error
		}{
			{name: "no show on a cancelled booking", status: booking.StatusCancelled, action: commands.BulkMarkNoShow, err: booking.ErrInvalidTransition},
			{name: "complete a no show", status: booking.StatusNoShow, action: commands.BulkMarkCompleted, err: booking.ErrInvalidTransition},
			{name: "cancel a completed booking", status: booking.StatusCompleted, action: commands.BulkCancel, err: booking.ErrInvalidTransition},
			{name: "cancel a cancelled booking", status: booking.StatusCancelled, action: commands.BulkCancel, err: booking.ErrAlreadyCancelled},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				w := newWorld()
				sessions, ids := seed(w)
				other := w.addSwimmer(w.parent.UserID, false)
				finished := w.seedBooking(sessions[1], func(b *builderBooking) {
					b.SwimmerID = other.ID()
					b.Status = tc.status
				})
				before := w.count(sessions[1])

				_, err := w.bookings.Bulk(ctx, w.admin, commands.BulkInput{BookingIDs: append(ids, finished.ID()), Action: tc.action})
				assert.True(t, errs.Is(err, tc.err), "got %v", err)

				for _, id := range ids {
					assert.Equal(t, booking.StatusConfirmed, w.status(id))
				}
				assert.Equal(t, tc.status, w.status(finished.ID()))
				assert.Equal(t, before, w.count(sessions[1]))
				assert.Empty(t, w.store.Cancellations())
				assert.Zero(t, w.store.Commits())
			})
		}
	})

	t.Run("change instructor", func(t *testing.T) {
		w := newWorld()
		sessions, ids := seed(w)
		instructor := uuid.New()

		res, err := w.bookings.Bulk(ctx, w.admin, commands.BulkInput{BookingIDs: ids, Action: commands.BulkChangeInstructor, InstructorID: &instructor})
		require.NoError(t, err)
		assert.Equal(t, 2, res.SessionsAffected)
		for _, s := range sessions {
			assert.Equal(t, instructor, *w.store.Session(s).InstructorID())
		}
		for _, id := range ids {
			assert.Equal(t, booking.StatusConfirmed, w.status(id))
		}
	})

	t.Run("change instructor ignores finished bookings", func(t *testing.T) {
		w := newWorld()
		live := w.addSession(48*time.Hour, 3)
		past := w.addSession(72*time.Hour, 3)
		keep := w.store.Session(past).InstructorID()
		confirmed := w.seedBooking(live)
		cancelled := w.seedBooking(past, func(b *builderBooking) { b.Status = booking.StatusCancelled })
		instructor := uuid.New()

		res, err := w.bookings.Bulk(ctx, w.admin, commands.BulkInput{
			BookingIDs:   []uuid.UUID{confirmed.ID(), cancelled.ID()},
			Action:       commands.BulkChangeInstructor,
			InstructorID: &instructor,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Updated)
		assert.Equal(t, 1, res.SessionsAffected)
		assert.Equal(t, instructor, *w.store.Session(live).InstructorID())
		assert.Equal(t, keep, w.store.Session(past).InstructorID())
	})

	t.Run("rejections", func(t *testing.T) {
		w := newWorld()
		_, ids := seed(w)

		testCases := []struct {
			name  string
			actor user.Actor
			in    commands.BulkInput
			err   error
		}{
			{name: "parent caller", actor: w.parent, in: commands.BulkInput{BookingIDs: ids, Action: commands.BulkCancel}, err: commands.ErrForbidden},
			{name: "empty ids", actor: w.admin, in: commands.BulkInput{Action: commands.BulkCancel}, err: commands.ErrValidation},
			{name: "unknown action", actor: w.admin, in: commands.BulkInput{BookingIDs: ids, Action: "archive"}, err: commands.ErrValidation},
			{name: "instructor missing", actor: w.admin, in: commands.BulkInput{BookingIDs: ids, Action: commands.BulkChangeInstructor}, err: commands.ErrValidation},
			{name: "unknown booking", actor: w.admin, in: commands.BulkInput{BookingIDs: append([]uuid.UUID{uuid.New()}, ids...), Action: commands.BulkCancel}, err: commands.ErrBookingNotFound},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := w.bookings.Bulk(ctx, tc.actor, tc.in)
				assert.True(t, errs.Is(err, tc.err), "got %v", err)
			})
		}
		for _, id := range ids {
			assert.Equal(t, booking.StatusConfirmed, w.status(id))
		}
	})
}
