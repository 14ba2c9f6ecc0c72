package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView is a booking joined with its session and swimmer.
type BookingView struct {
	ID               uuid.UUID  `json:"id"`
	SessionID        uuid.UUID  `json:"session_id"`
	SwimmerID        uuid.UUID  `json:"swimmer_id"`
	ParentID         uuid.UUID  `json:"parent_id"`
	Status           string     `json:"status"`
	BookingType      string     `json:"booking_type"`
	BatchID          *uuid.UUID `json:"batch_id,omitempty"`
	CancelReason     string     `json:"cancel_reason,omitempty"`
	CancelSource     *string    `json:"cancel_source,omitempty"`
	CanceledAt       *time.Time `json:"canceled_at,omitempty"`
	SessionStartTime time.Time  `json:"session_start_time"`
	SessionEndTime   time.Time  `json:"session_end_time"`
	SessionLocation  string     `json:"session_location"`
	SwimmerName      string     `json:"swimmer_name"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type SessionView struct {
	ID           uuid.UUID  `json:"id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Location     string     `json:"location"`
	InstructorID *uuid.UUID `json:"instructor_id,omitempty"`
	MaxCapacity  int32      `json:"max_capacity"`
	BookingCount int32      `json:"booking_count"`
	IsFull       bool       `json:"is_full"`
	Status       string     `json:"status"`
	IsRecurring  bool       `json:"is_recurring"`
	BatchID      *uuid.UUID `json:"batch_id,omitempty"`
	CloseReason  *string    `json:"close_reason,omitempty"`
	CloseNotes   string     `json:"close_notes,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
}

// SessionCountDrift is a session whose stored booking_count disagrees with
// its live bookings.
type SessionCountDrift struct {
	SessionID    uuid.UUID `json:"session_id"`
	BookingCount int32     `json:"booking_count"`
	ActiveCount  int32     `json:"active_count"`
	MaxCapacity  int32     `json:"max_capacity"`
	IsFull       bool      `json:"is_full"`
}

type FloatingSessionView struct {
	ID                uuid.UUID  `json:"id"`
	OriginalSessionID uuid.UUID  `json:"original_session_id"`
	OriginalBookingID uuid.UUID  `json:"original_booking_id"`
	SwimmerID         *uuid.UUID `json:"swimmer_id,omitempty"`
	ParentID          *uuid.UUID `json:"parent_id,omitempty"`
	AvailableUntil    time.Time  `json:"available_until"`
	MonthYear         string     `json:"month_year"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
}

type SwimmerView struct {
	ID               uuid.UUID  `json:"id"`
	ParentID         uuid.UUID  `json:"parent_id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	PaymentType      string     `json:"payment_type"`
	FundingSourceID  *uuid.UUID `json:"funding_source_id,omitempty"`
	FlexibleSwimmer  bool       `json:"flexible_swimmer"`
	AssessmentStatus string     `json:"assessment_status"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Roles    []string  `json:"roles"`
	IsActive bool      `json:"is_active"`
}
