package shared

import (
	"time"

	"github.com/google/uuid"
)

// Event kinds written to the notification outbox.
const (
	EventBookingCreated     = "booking.created"
	EventBookingCancelled   = "booking.cancelled"
	EventBookingRescheduled = "booking.rescheduled"
	EventSessionClosed      = "session.closed"
	EventBlockCancelled     = "block.cancelled"
)

// JobKindEmail is the only delivery channel the notifier knows.
const JobKindEmail = "email"

// BookingEvent is the outbox payload. The notifier resolves the parent's
// address itself, so the payload carries ids only.
type BookingEvent struct {
	Kind            string      `json:"kind"`
	ParentID        uuid.UUID   `json:"parent_id"`
	SwimmerID       uuid.UUID   `json:"swimmer_id"`
	BookingIDs      []uuid.UUID `json:"booking_ids"`
	SessionID       *uuid.UUID  `json:"session_id,omitempty"`
	SessionStart    *time.Time  `json:"session_start,omitempty"`
	PreviousSession *uuid.UUID  `json:"previous_session_id,omitempty"`
	Reason          string      `json:"reason,omitempty"`
	BlockID         *uuid.UUID  `json:"block_id,omitempty"`
	FloatingCreated int         `json:"floating_created,omitempty"`
	OccurredAt      time.Time   `json:"occurred_at"`
}
