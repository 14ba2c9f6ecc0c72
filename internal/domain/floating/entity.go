package floating

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusClaimed   Status = "claimed"
)

func (s Status) String() string {
	return string(s)
}

// FloatingSession is a makeup credit left behind by a cancelled booking.
type FloatingSession struct {
	id                uuid.UUID
	originalSessionID uuid.UUID
	originalBookingID uuid.UUID
	swimmerID         *uuid.UUID
	parentID          *uuid.UUID
	availableUntil    time.Time
	monthYear         string
	status            Status
	createdAt         time.Time
}

type Params struct {
	OriginalSessionID uuid.UUID
	OriginalBookingID uuid.UUID
	SwimmerID         uuid.UUID
	ParentID          uuid.UUID
	SessionStart      time.Time
	ValidMonths       int
}

func New(p Params, now time.Time) *FloatingSession {
	swimmerID, parentID := p.SwimmerID, p.ParentID
	return &FloatingSession{
		id:                uuid.New(),
		originalSessionID: p.OriginalSessionID,
		originalBookingID: p.OriginalBookingID,
		swimmerID:         &swimmerID,
		parentID:          &parentID,
		availableUntil:    AvailableUntil(p.SessionStart, p.ValidMonths),
		monthYear:         MonthYear(p.SessionStart),
		status:            StatusAvailable,
		createdAt:         now,
	}
}

func Reconstruct(
	id, originalSessionID, originalBookingID uuid.UUID,
	swimmerID, parentID *uuid.UUID,
	availableUntil time.Time,
	monthYear string,
	status Status,
	createdAt time.Time,
) *FloatingSession {
	return &FloatingSession{
		id:                id,
		originalSessionID: originalSessionID,
		originalBookingID: originalBookingID,
		swimmerID:         swimmerID,
		parentID:          parentID,
		availableUntil:    availableUntil,
		monthYear:         monthYear,
		status:            status,
		createdAt:         createdAt,
	}
}

// AvailableUntil returns the last day of the month that is validMonths after
// the month of start. The credit is usable through that whole day.
func AvailableUntil(start time.Time, validMonths int) time.Time {
	if validMonths < 0 {
		validMonths = 0
	}
	firstOfNext := time.Date(start.Year(), start.Month()+time.Month(validMonths)+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1)
}

func MonthYear(start time.Time) string {
	return start.Format("2006-01")
}

func (f *FloatingSession) ID() uuid.UUID                { return f.id }
func (f *FloatingSession) OriginalSessionID() uuid.UUID { return f.originalSessionID }
func (f *FloatingSession) OriginalBookingID() uuid.UUID { return f.originalBookingID }
func (f *FloatingSession) SwimmerID() *uuid.UUID        { return f.swimmerID }
func (f *FloatingSession) ParentID() *uuid.UUID         { return f.parentID }
func (f *FloatingSession) AvailableUntil() time.Time    { return f.availableUntil }
func (f *FloatingSession) MonthYear() string            { return f.monthYear }
func (f *FloatingSession) Status() Status               { return f.status }
func (f *FloatingSession) CreatedAt() time.Time         { return f.createdAt }
