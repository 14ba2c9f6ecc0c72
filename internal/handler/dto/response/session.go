package response

import (
	"swimbooking/internal/usecase/commands"
	"swimbooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CloseSessionResponse struct {
	SessionID               uuid.UUID `json:"session_id"`
	Status                  string    `json:"status"`
	BookingsCancelled       int       `json:"bookings_cancelled"`
	FloatingSessionsCreated int       `json:"floating_sessions_created"`
	FloatingSessionsFailed  int       `json:"floating_sessions_failed,omitempty"`
}

func FromCloseResult(r *commands.CloseSessionResult) *CloseSessionResponse {
	return &CloseSessionResponse{
		SessionID:               r.SessionID,
		Status:                  "closed",
		BookingsCancelled:       r.BookingsCancelled,
		FloatingSessionsCreated: r.FloatingSessionsCreated,
		FloatingSessionsFailed:  r.FloatingSessionsFailed,
	}
}

type SessionCountReport struct {
	Consistent bool                         `json:"consistent"`
	Drift      []*queries.SessionCountDrift `json:"drift"`
}
