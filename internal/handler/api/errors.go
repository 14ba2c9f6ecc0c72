package api

import (
	"net/http"

	"swimbooking/internal/domain/booking"
	"swimbooking/internal/domain/purchaseorder"
	"swimbooking/internal/domain/session"
	"swimbooking/internal/handler/httperr"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/commands"
	"swimbooking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Ordered: the first matching target wins.
var errorMappings = []errorMapping{
	{commands.ErrValidation, http.StatusBadRequest, "validation_error", "Invalid request"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "validation_error", "Invalid cursor"},
	{commands.ErrForbidden, http.StatusForbidden, "forbidden", "Not allowed to act on this resource"},
	{queries.ErrAccessDenied, http.StatusForbidden, "forbidden", "Not allowed to act on this resource"},

	{commands.ErrBookingNotFound, http.StatusNotFound, "booking_not_found", "Booking not found"},
	{queries.ErrBookingNotFound, http.StatusNotFound, "booking_not_found", "Booking not found"},
	{commands.ErrSessionNotFound, http.StatusNotFound, "session_not_found", "Session not found"},
	{queries.ErrSessionNotFound, http.StatusNotFound, "session_not_found", "Session not found"},
	{commands.ErrSwimmerNotFound, http.StatusNotFound, "swimmer_not_found", "Swimmer not found"},
	{queries.ErrSwimmerNotFound, http.StatusNotFound, "swimmer_not_found", "Swimmer not found"},
	{commands.ErrBlockNotFound, http.StatusNotFound, "block_not_found", "No bookings found for this block"},

	{booking.ErrAlreadyCancelled, http.StatusBadRequest, "already_cancelled", "Booking is already cancelled"},
	{booking.ErrNotConfirmed, http.StatusBadRequest, "invalid_transition", "Booking is not confirmed"},
	{booking.ErrInvalidTransition, http.StatusBadRequest, "invalid_transition", "Booking status cannot change this way"},
	{session.ErrSessionFull, http.StatusBadRequest, "session_full", "Session is full"},
	{session.ErrSessionNotOpen, http.StatusBadRequest, "session_not_open", "Session is not open for booking"},
	{session.ErrSessionInPast, http.StatusBadRequest, "session_started", "Session has already started"},
	{session.ErrAlreadyClosed, http.StatusBadRequest, "session_closed", "Session is already closed"},
	{session.ErrAlreadyCompleted, http.StatusBadRequest, "session_completed", "Session is already completed"},
	{commands.ErrAlreadyBooked, http.StatusBadRequest, "already_booked", "Swimmer is already booked on this session"},
	{commands.ErrNoActivePurchaseOrder, http.StatusBadRequest, "no_active_purchase_order", "No active purchase order covers these sessions"},
	{purchaseorder.ErrNotUsable, http.StatusBadRequest, "no_active_purchase_order", "No active purchase order covers these sessions"},
	{purchaseorder.ErrInsufficientAuthorization, http.StatusBadRequest, "insufficient_authorization", "Not enough authorized sessions remain on the purchase order"},
	{commands.ErrBlockAlreadyStarted, http.StatusBadRequest, "block_already_started", "The first session in this block has already started; cancel bookings individually"},

	{commands.ErrIdempotencyKeyReused, http.StatusConflict, "idempotency_key_reused", "Idempotency key was used with a different request"},
	{commands.ErrIdempotencyInProgress, http.StatusConflict, "idempotency_in_progress", "Request is already being processed"},
}

// respondError maps a use case error onto the error envelope.
func respondError(c *gin.Context, err error) {
	var late *commands.LateCancellationError
	if errs.As(err, &late) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "late_cancellation",
			"This lesson starts too soon to cancel in the app; please contact staff",
			map[string]any{
				"cannotCancelInApp":  true,
				"hoursBeforeSession": late.HoursBeforeSession,
				"contactPhone":       late.ContactPhone,
				"contactType":        late.ContactType,
			})
		return
	}

	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.code, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "internal_error", "Internal server error", nil)
}

func badRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "validation_error", msg, nil)
}
