package cancellation

import (
	"time"

	"swimbooking/internal/domain/booking"

	"github.com/google/uuid"
)

// Record is the immutable audit row written for every cancelled booking.
type Record struct {
	id              uuid.UUID
	bookingID       uuid.UUID
	sessionID       uuid.UUID
	swimmerID       uuid.UUID
	parentID        uuid.UUID
	cancelledBy     uuid.UUID
	source          booking.CancelSource
	reason          string
	hoursBefore     float64
	floatingCreated bool
	blockID         *uuid.UUID
	createdAt       time.Time
}

type RecordParams struct {
	Booking         *booking.Booking
	SessionStart    time.Time
	CancelledBy     uuid.UUID
	Source          booking.CancelSource
	Reason          string
	FloatingCreated bool
	BlockID         *uuid.UUID
}

func NewRecord(p RecordParams, now time.Time) *Record {
	return &Record{
		id:              uuid.New(),
		bookingID:       p.Booking.ID(),
		sessionID:       p.Booking.SessionID(),
		swimmerID:       p.Booking.SwimmerID(),
		parentID:        p.Booking.ParentID(),
		cancelledBy:     p.CancelledBy,
		source:          p.Source,
		reason:          p.Reason,
		hoursBefore:     p.SessionStart.Sub(now).Hours(),
		floatingCreated: p.FloatingCreated,
		blockID:         p.BlockID,
		createdAt:       now,
	}
}

func (r *Record) ID() uuid.UUID                { return r.id }
func (r *Record) BookingID() uuid.UUID         { return r.bookingID }
func (r *Record) SessionID() uuid.UUID         { return r.sessionID }
func (r *Record) SwimmerID() uuid.UUID         { return r.swimmerID }
func (r *Record) ParentID() uuid.UUID          { return r.parentID }
func (r *Record) CancelledBy() uuid.UUID       { return r.cancelledBy }
func (r *Record) Source() booking.CancelSource { return r.source }
func (r *Record) Reason() string               { return r.reason }
// HoursBefore is the exact notice given, unrounded.
func (r *Record) HoursBefore() float64         { return r.hoursBefore }
func (r *Record) FloatingCreated() bool        { return r.floatingCreated }
func (r *Record) BlockID() *uuid.UUID          { return r.blockID }
func (r *Record) CreatedAt() time.Time         { return r.createdAt }
