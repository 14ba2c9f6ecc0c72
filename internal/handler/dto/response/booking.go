package response

import (
	"time"

	"swimbooking/internal/usecase/commands"
	"swimbooking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
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
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	var res BookingResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromBookingViews(vs []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(vs))
	for i, v := range vs {
		out[i] = FromBookingView(v)
	}
	return out
}

type CreateBookingsResponse struct {
	RequestID uuid.UUID          `json:"request_id"`
	BatchID   *uuid.UUID         `json:"batch_id,omitempty"`
	Bookings  []*BookingResponse `json:"bookings"`
	Replayed  bool               `json:"replayed"`
}

func NewCreateBookingsResponse(result *commands.CreateBookingsResult, views []*queries.BookingView) *CreateBookingsResponse {
	res := &CreateBookingsResponse{
		RequestID: result.RequestID,
		Bookings:  FromBookingViews(views),
		Replayed:  result.IsReplayed,
	}
	if len(views) > 0 {
		res.BatchID = views[0].BatchID
	}
	return res
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

type CancelBookingResponse struct {
	BookingID              uuid.UUID `json:"booking_id"`
	Status                 string    `json:"status"`
	FloatingSessionCreated bool      `json:"floating_session_created"`
	HoursBeforeSession     float64   `json:"hours_before_session"`
}

func FromCancelResult(r *commands.CancelResult) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:              r.BookingID,
		Status:                 "cancelled",
		FloatingSessionCreated: r.FloatingSessionCreated,
		HoursBeforeSession:     r.HoursBeforeSession,
	}
}

type BookingStatusResponse struct {
	BookingID uuid.UUID `json:"booking_id"`
	SessionID uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
}

func FromCompleteResult(r *commands.CompleteResult) *BookingStatusResponse {
	return &BookingStatusResponse{BookingID: r.BookingID, SessionID: r.SessionID, Status: string(r.Status)}
}

type RescheduleResponse struct {
	BookingID         uuid.UUID `json:"booking_id"`
	PreviousSessionID uuid.UUID `json:"previous_session_id"`
	SessionID         uuid.UUID `json:"session_id"`
}

type BulkResponse struct {
	Updated          int `json:"updated"`
	SessionsAffected int `json:"sessions_affected"`
}

type CancelBlockResponse struct {
	BlockID                 uuid.UUID `json:"block_id"`
	BookingsCancelled       int       `json:"bookings_cancelled"`
	FloatingSessionsCreated int       `json:"floating_sessions_created"`
}
