//go:build unit || e2e

package builder

import (
	"time"

	"swimbooking/internal/domain/session"

	"github.com/google/uuid"
)

type SessionBuilder struct {
	ID           uuid.UUID
	StartTime    time.Time
	Duration     time.Duration
	Location     string
	InstructorID *uuid.UUID
	MaxCapacity  int
	BookingCount int
	Status       session.Status
	IsRecurring  bool
	BatchID      *uuid.UUID
}

func NewSessionBuilder() *SessionBuilder {
	instructorID := uuid.New()
	return &SessionBuilder{
		ID:           uuid.New(),
		StartTime:    time.Now().Add(72 * time.Hour).Truncate(time.Minute),
		Duration:     30 * time.Minute,
		Location:     "Modesto Aquatics Lane 2",
		InstructorID: &instructorID,
		MaxCapacity:  1,
		BookingCount: 0,
		Status:       session.StatusAvailable,
		IsRecurring:  false,
	}
}

func (s *SessionBuilder) With(mutate func(*SessionBuilder)) *SessionBuilder {
	mutate(s)
	return s
}

func (s *SessionBuilder) BuildDomain() (*session.Session, error) {
	return session.ReconstructSession(
		s.ID,
		s.StartTime,
		s.StartTime.Add(s.Duration),
		s.Location,
		s.InstructorID,
		s.MaxCapacity,
		s.BookingCount,
		s.Status,
		s.IsRecurring,
		s.BatchID,
		nil,
		"",
		nil,
		nil,
		s.StartTime.Add(-30*24*time.Hour),
	)
}

func (s *SessionBuilder) MustBuildDomain() *session.Session {
	sess, err := s.BuildDomain()
	if err != nil {
		panic(err)
	}
	return sess
}

func (s *SessionBuilder) StartingIn(d time.Duration) *SessionBuilder {
	s.StartTime = time.Now().Add(d)
	return s
}

func (s *SessionBuilder) StartingAt(t time.Time) *SessionBuilder {
	s.StartTime = t
	return s
}

func (s *SessionBuilder) WithCapacity(maxCapacity, bookingCount int) *SessionBuilder {
	s.MaxCapacity = maxCapacity
	s.BookingCount = bookingCount
	return s
}

func (s *SessionBuilder) WithStatus(status session.Status) *SessionBuilder {
	s.Status = status
	return s
}

func (s *SessionBuilder) AsRecurring(batchID uuid.UUID) *SessionBuilder {
	s.IsRecurring = true
	s.BatchID = &batchID
	return s
}
