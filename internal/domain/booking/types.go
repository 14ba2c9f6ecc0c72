package booking

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// CountsTowardCapacity reports whether a booking in this status occupies a seat.
func (s Status) CountsTowardCapacity() bool {
	return s != StatusCancelled
}

type Type string

const (
	TypeAssessment Type = "assessment"
	TypeSingle     Type = "single"
	TypeRecurring  Type = "recurring"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeAssessment, TypeSingle, TypeRecurring:
		return true
	default:
		return false
	}
}

type CancelSource string

const (
	CancelSourceParent CancelSource = "parent"
	CancelSourceAdmin  CancelSource = "admin"
	CancelSourceSystem CancelSource = "system"
)

func (s CancelSource) String() string {
	return string(s)
}

const (
	ReasonSessionClosed = "session_closed"
	ReasonBlockCancel   = "block_cancelled"
	ReasonBulkCancel    = "bulk_cancelled"
)
