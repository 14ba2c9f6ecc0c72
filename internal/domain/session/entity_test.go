//go:build unit

package session_test

import (
	"testing"
	"time"

	"swimbooking/internal/domain/session"
	"swimbooking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_CanAcceptBooking(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name   string
		mutate func(*builder.SessionBuilder)
		errIs  error
	}{
		{
			name:   "open future session with a free seat",
			mutate: func(b *builder.SessionBuilder) {},
		},
		{
			name:   "open status is bookable too",
			mutate: func(b *builder.SessionBuilder) { b.WithStatus(session.StatusOpen) },
		},
		{
			name:   "full session",
			mutate: func(b *builder.SessionBuilder) { b.WithCapacity(2, 2) },
			errIs:  session.ErrSessionFull,
		},
		{
			name:   "booked status reports full",
			mutate: func(b *builder.SessionBuilder) { b.WithStatus(session.StatusBooked) },
			errIs:  session.ErrSessionFull,
		},
		{
			name:   "draft session",
			mutate: func(b *builder.SessionBuilder) { b.WithStatus(session.StatusDraft) },
			errIs:  session.ErrSessionNotOpen,
		},
		{
			name:   "closed session",
			mutate: func(b *builder.SessionBuilder) { b.WithStatus(session.StatusClosed) },
			errIs:  session.ErrSessionNotOpen,
		},
		{
			name:   "session already started",
			mutate: func(b *builder.SessionBuilder) { b.StartingAt(now.Add(-time.Minute)) },
			errIs:  session.ErrSessionInPast,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sess := builder.NewSessionBuilder().StartingAt(now.Add(48 * time.Hour)).With(tc.mutate).MustBuildDomain()
			err := sess.CanAcceptBooking(now)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSession_Counting(t *testing.T) {
	now := time.Now()

	t.Run("occupying the last seat marks the session booked", func(t *testing.T) {
		sess := builder.NewSessionBuilder().WithCapacity(1, 0).MustBuildDomain()

		require.NoError(t, sess.Occupy(1, now))

		assert.Equal(t, 1, sess.BookingCount())
		assert.True(t, sess.IsFull())
		assert.Equal(t, session.StatusBooked, sess.Status())
	})

	t.Run("occupy refuses to overbook", func(t *testing.T) {
		sess := builder.NewSessionBuilder().WithCapacity(2, 1).MustBuildDomain()

		err := sess.Occupy(2, now)

		require.ErrorIs(t, err, session.ErrSessionFull)
		assert.Equal(t, 1, sess.BookingCount())
	})

	t.Run("release frees a seat and reopens a booked session", func(t *testing.T) {
		sess := builder.NewSessionBuilder().WithCapacity(1, 1).WithStatus(session.StatusBooked).MustBuildDomain()

		sess.Release(1, now)

		assert.Equal(t, 0, sess.BookingCount())
		assert.False(t, sess.IsFull())
		assert.Equal(t, session.StatusAvailable, sess.Status())
	})

	t.Run("release is floored at zero", func(t *testing.T) {
		sess := builder.NewSessionBuilder().WithCapacity(3, 1).MustBuildDomain()

		sess.Release(5, now)

		assert.Equal(t, 0, sess.BookingCount())
	})

	t.Run("recount keeps closed sessions closed", func(t *testing.T) {
		sess := builder.NewSessionBuilder().WithCapacity(1, 1).WithStatus(session.StatusClosed).MustBuildDomain()

		sess.Recount(0, now)

		assert.Equal(t, 0, sess.BookingCount())
		assert.Equal(t, session.StatusClosed, sess.Status())
	})

	t.Run("recount repairs drift", func(t *testing.T) {
		sess := builder.NewSessionBuilder().WithCapacity(4, 0).MustBuildDomain()

		sess.Recount(4, now)

		assert.True(t, sess.IsFull())
		assert.Equal(t, session.StatusBooked, sess.Status())
	})
}

func TestSession_Close(t *testing.T) {
	now := time.Now()
	adminID := uuid.New()

	t.Run("closure reason validation", func(t *testing.T) {
		testCases := []struct {
			name   string
			reason string
			notes  string
			errIs  error
		}{
			{name: "pool closed", reason: "pool_closed"},
			{name: "instructor unavailable", reason: "instructor_unavailable"},
			{name: "other with notes", reason: "other", notes: "heater broken"},
			{name: "other without notes", reason: "other", notes: "  ", errIs: session.ErrNotesRequired},
			{name: "unknown reason", reason: "weather", errIs: session.ErrInvalidCloseReason},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := session.NewClosure(tc.reason, tc.notes)
				if tc.errIs != nil {
					require.ErrorIs(t, err, tc.errIs)
					return
				}
				require.NoError(t, err)
			})
		}
	})

	t.Run("closes an open session", func(t *testing.T) {
		sess := builder.NewSessionBuilder().MustBuildDomain()
		closure, err := session.NewClosure("pool_closed", "")
		require.NoError(t, err)

		require.NoError(t, sess.Close(closure, adminID, now))

		assert.Equal(t, session.StatusClosed, sess.Status())
		require.NotNil(t, sess.CloseReason())
		assert.Equal(t, session.CloseReasonPoolClosed, *sess.CloseReason())
		assert.Equal(t, adminID, *sess.ClosedBy())
	})

	t.Run("rejects closed and completed sessions", func(t *testing.T) {
		closure, err := session.NewClosure("pool_closed", "")
		require.NoError(t, err)

		closed := builder.NewSessionBuilder().WithStatus(session.StatusClosed).MustBuildDomain()
		require.ErrorIs(t, closed.Close(closure, adminID, now), session.ErrAlreadyClosed)

		completed := builder.NewSessionBuilder().WithStatus(session.StatusCompleted).MustBuildDomain()
		require.ErrorIs(t, completed.Close(closure, adminID, now), session.ErrAlreadyCompleted)
		assert.Equal(t, session.StatusCompleted, completed.Status())
	})
}

func TestReconstructSession_Validation(t *testing.T) {
	_, err := builder.NewSessionBuilder().WithCapacity(0, 0).BuildDomain()
	require.ErrorIs(t, err, session.ErrInvalidCapacity)

	_, err = builder.NewSessionBuilder().WithCapacity(1, -1).BuildDomain()
	require.ErrorIs(t, err, session.ErrNegativeCount)
}
