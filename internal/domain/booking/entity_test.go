//go:build unit

package booking_test

import (
	"testing"
	"time"

	"swimbooking/internal/domain/booking"
	"swimbooking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	now := time.Now()

	t.Run("starts confirmed", func(t *testing.T) {
		b, err := booking.NewBooking(booking.NewBookingParams{
			SessionID: uuid.New(),
			SwimmerID: uuid.New(),
			ParentID:  uuid.New(),
			Type:      booking.TypeRecurring,
		}, now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, now, b.CreatedAt())
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := booking.NewBooking(booking.NewBookingParams{Type: "trial"}, now)
		require.ErrorIs(t, err, booking.ErrInvalidType)
	})
}

func TestBooking_Transitions(t *testing.T) {
	now := time.Now()
	actorID := uuid.New()

	testCases := []struct {
		name  string
		from  booking.Status
		apply func(*booking.Booking) error
		want  booking.Status
		errIs error
	}{
		{
			name:  "cancel confirmed",
			from:  booking.StatusConfirmed,
			apply: func(b *booking.Booking) error { return b.Cancel("sick", booking.CancelSourceParent, actorID, now) },
			want:  booking.StatusCancelled,
		},
		{
			name:  "cancel twice",
			from:  booking.StatusCancelled,
			apply: func(b *booking.Booking) error { return b.Cancel("sick", booking.CancelSourceParent, actorID, now) },
			want:  booking.StatusCancelled,
			errIs: booking.ErrAlreadyCancelled,
		},
		{
			name:  "cancel completed",
			from:  booking.StatusCompleted,
			apply: func(b *booking.Booking) error { return b.Cancel("", booking.CancelSourceAdmin, actorID, now) },
			want:  booking.StatusCompleted,
			errIs: booking.ErrInvalidTransition,
		},
		{
			name:  "complete confirmed",
			from:  booking.StatusConfirmed,
			apply: func(b *booking.Booking) error { return b.Complete(now) },
			want:  booking.StatusCompleted,
		},
		{
			name:  "complete twice",
			from:  booking.StatusCompleted,
			apply: func(b *booking.Booking) error { return b.Complete(now) },
			want:  booking.StatusCompleted,
			errIs: booking.ErrInvalidTransition,
		},
		{
			name:  "no show confirmed",
			from:  booking.StatusConfirmed,
			apply: func(b *booking.Booking) error { return b.MarkNoShow(now) },
			want:  booking.StatusNoShow,
		},
		{
			name:  "no show cancelled",
			from:  booking.StatusCancelled,
			apply: func(b *booking.Booking) error { return b.MarkNoShow(now) },
			want:  booking.StatusCancelled,
			errIs: booking.ErrInvalidTransition,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingBuilder().WithStatus(tc.from).BuildDomain()
			err := tc.apply(b)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, b.Status())
		})
	}
}

func TestBooking_CancelStampsMetadata(t *testing.T) {
	now := time.Now()
	actorID := uuid.New()
	b := builder.NewBookingBuilder().BuildDomain()

	require.NoError(t, b.Cancel("  family trip ", booking.CancelSourceParent, actorID, now))

	assert.Equal(t, "family trip", b.CancelReason())
	require.NotNil(t, b.CancelSource())
	assert.Equal(t, booking.CancelSourceParent, *b.CancelSource())
	assert.Equal(t, now, *b.CanceledAt())
	assert.Equal(t, actorID, *b.CanceledBy())
}

func TestBooking_MoveTo(t *testing.T) {
	now := time.Now()

	t.Run("moves a confirmed booking", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildDomain()
		target := uuid.New()

		require.NoError(t, b.MoveTo(target, now))
		assert.Equal(t, target, b.SessionID())
	})

	t.Run("same session", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildDomain()
		require.ErrorIs(t, b.MoveTo(b.SessionID(), now), booking.ErrSameSession)
	})

	t.Run("cancelled booking", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildDomain()
		require.ErrorIs(t, b.MoveTo(uuid.New(), now), booking.ErrNotConfirmed)
	})
}
