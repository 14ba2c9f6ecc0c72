package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionFull        = errors.New("session is full")
	ErrSessionNotOpen     = errors.New("session is not open for booking")
	ErrSessionInPast      = errors.New("session has already started")
	ErrAlreadyClosed      = errors.New("session is already closed")
	ErrAlreadyCompleted   = errors.New("session is already completed")
	ErrInvalidCloseReason = errors.New("invalid close reason")
	ErrNotesRequired      = errors.New("notes are required when reason is other")
	ErrInvalidCapacity    = errors.New("max capacity must be at least 1")
	ErrNegativeCount      = errors.New("booking count cannot be negative")
)

// Session is a capacity-bounded lesson slot. bookingCount mirrors the number
// of non-cancelled bookings and isFull is always derived from it.
type Session struct {
	id           uuid.UUID
	startTime    time.Time
	endTime      time.Time
	location     string
	instructorID *uuid.UUID
	maxCapacity  int
	bookingCount int
	status       Status
	isRecurring  bool
	batchID      *uuid.UUID
	closeReason  *CloseReason
	closeNotes   string
	closedAt     *time.Time
	closedBy     *uuid.UUID
	updatedAt    time.Time
}

func ReconstructSession(
	id uuid.UUID,
	startTime, endTime time.Time,
	location string,
	instructorID *uuid.UUID,
	maxCapacity, bookingCount int,
	status Status,
	isRecurring bool,
	batchID *uuid.UUID,
	closeReason *CloseReason,
	closeNotes string,
	closedAt *time.Time,
	closedBy *uuid.UUID,
	updatedAt time.Time,
) (*Session, error) {
	if maxCapacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if bookingCount < 0 {
		return nil, ErrNegativeCount
	}
	return &Session{
		id:           id,
		startTime:    startTime,
		endTime:      endTime,
		location:     location,
		instructorID: instructorID,
		maxCapacity:  maxCapacity,
		bookingCount: bookingCount,
		status:       status,
		isRecurring:  isRecurring,
		batchID:      batchID,
		closeReason:  closeReason,
		closeNotes:   closeNotes,
		closedAt:     closedAt,
		closedBy:     closedBy,
		updatedAt:    updatedAt,
	}, nil
}

func (s *Session) IsFull() bool {
	return s.bookingCount >= s.maxCapacity
}

func (s *Session) Remaining() int {
	if r := s.maxCapacity - s.bookingCount; r > 0 {
		return r
	}
	return 0
}

func (s *Session) HasStarted(now time.Time) bool {
	return !now.Before(s.startTime)
}

func (s *Session) IsFuture(now time.Time) bool {
	return s.startTime.After(now)
}

func (s *Session) CanAcceptBooking(now time.Time) error {
	if !s.status.IsBookable() {
		if s.status == StatusBooked {
			return ErrSessionFull
		}
		return ErrSessionNotOpen
	}
	if s.HasStarted(now) {
		return ErrSessionInPast
	}
	if s.IsFull() {
		return ErrSessionFull
	}
	return nil
}

// Occupy takes n seats. It refuses to overbook.
func (s *Session) Occupy(n int, now time.Time) error {
	if s.bookingCount+n > s.maxCapacity {
		return ErrSessionFull
	}
	s.applyCount(s.bookingCount+n, now)
	return nil
}

// Release frees n seats, floored at zero.
func (s *Session) Release(n int, now time.Time) {
	s.applyCount(max(s.bookingCount-n, 0), now)
}

// Recount replaces the stored count with the live number of active bookings.
func (s *Session) Recount(active int, now time.Time) {
	s.applyCount(max(active, 0), now)
}

func (s *Session) applyCount(n int, now time.Time) {
	s.bookingCount = n
	switch {
	case s.status.IsBookable() && s.IsFull():
		s.status = StatusBooked
	case s.status == StatusBooked && !s.IsFull():
		s.status = StatusAvailable
	}
	s.updatedAt = now
}

func (s *Session) Close(c Closure, by uuid.UUID, now time.Time) error {
	switch s.status {
	case StatusClosed:
		return ErrAlreadyClosed
	case StatusCompleted:
		return ErrAlreadyCompleted
	}
	reason := c.Reason()
	s.status = StatusClosed
	s.closeReason = &reason
	s.closeNotes = c.Notes()
	s.closedAt = &now
	s.closedBy = &by
	s.updatedAt = now
	return nil
}

func (s *Session) ChangeInstructor(instructorID uuid.UUID, now time.Time) {
	s.instructorID = &instructorID
	s.updatedAt = now
}

func (s *Session) ID() uuid.UUID             { return s.id }
func (s *Session) StartTime() time.Time      { return s.startTime }
func (s *Session) EndTime() time.Time        { return s.endTime }
func (s *Session) Location() string          { return s.location }
func (s *Session) InstructorID() *uuid.UUID  { return s.instructorID }
func (s *Session) MaxCapacity() int          { return s.maxCapacity }
func (s *Session) BookingCount() int         { return s.bookingCount }
func (s *Session) Status() Status            { return s.status }
func (s *Session) IsRecurring() bool         { return s.isRecurring }
func (s *Session) BatchID() *uuid.UUID       { return s.batchID }
func (s *Session) CloseReason() *CloseReason { return s.closeReason }
func (s *Session) CloseNotes() string        { return s.closeNotes }
func (s *Session) ClosedAt() *time.Time      { return s.closedAt }
func (s *Session) ClosedBy() *uuid.UUID      { return s.closedBy }
func (s *Session) UpdatedAt() time.Time      { return s.updatedAt }
