package session

import "strings"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusAvailable Status = "available"
	StatusOpen      Status = "open"
	StatusBooked    Status = "booked"
	StatusClosed    Status = "closed"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusAvailable, StatusOpen, StatusBooked, StatusClosed, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsBookable covers the statuses a parent can book into.
func (s Status) IsBookable() bool {
	return s == StatusAvailable || s == StatusOpen
}

type CloseReason string

const (
	CloseReasonPoolClosed            CloseReason = "pool_closed"
	CloseReasonInstructorUnavailable CloseReason = "instructor_unavailable"
	CloseReasonOther                 CloseReason = "other"
)

func (r CloseReason) String() string {
	return string(r)
}

func (r CloseReason) IsValid() bool {
	switch r {
	case CloseReasonPoolClosed, CloseReasonInstructorUnavailable, CloseReasonOther:
		return true
	default:
		return false
	}
}

type Closure struct {
	reason CloseReason
	notes  string
}

func NewClosure(reason, notes string) (Closure, error) {
	r := CloseReason(reason)
	if !r.IsValid() {
		return Closure{}, ErrInvalidCloseReason
	}
	notes = strings.TrimSpace(notes)
	if r == CloseReasonOther && notes == "" {
		return Closure{}, ErrNotesRequired
	}
	return Closure{reason: r, notes: notes}, nil
}

func (c Closure) Reason() CloseReason { return c.reason }
func (c Closure) Notes() string       { return c.notes }
