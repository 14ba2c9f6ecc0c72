package api

import (
	"net/http"
	"strconv"

	reqdto "swimbooking/internal/handler/dto/request"
	resdto "swimbooking/internal/handler/dto/response"
	"swimbooking/internal/handler/middleware"
	"swimbooking/internal/usecase/commands"
	"swimbooking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Book one session for a swimmer
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingsResponse
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}
	h.create(c, func(key *uuid.UUID) commands.CreateBookingsInput { return req.ToInput(key) })
}

// @Summary Create recurring bookings
// @Description Book a series of sessions for a swimmer in one all-or-nothing request
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateRecurringBookingRequest true "Recurring booking request"
// @Success 201 {object} resdto.CreateBookingsResponse
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /bookings/recurring [post]
func (h *BookingHandler) CreateRecurring(c *gin.Context) {
	var req reqdto.CreateRecurringBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}
	h.create(c, func(key *uuid.UUID) commands.CreateBookingsInput { return req.ToInput(key) })
}

func (h *BookingHandler) create(c *gin.Context, input func(key *uuid.UUID) commands.CreateBookingsInput) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errMissingActor)
		return
	}
	key, err := idempotencyKey(c)
	if err != nil {
		badRequest(c, err, "Invalid Idempotency-Key header")
		return
	}

	result, err := h.cmds.CreateBookings(c.Request.Context(), actor, input(key))
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.q.ListByIDs(c.Request.Context(), result.BookingIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.NewCreateBookingsResponse(result, views))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]any
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	view, err := h.q.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List swimmer bookings
// @Description Keyset-paginated bookings for a swimmer, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Swimmer ID"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Router /swimmers/{id}/bookings [get]
func (h *BookingHandler) ListForSwimmer(c *gin.Context) {
	actor, swimmerID, ok := actorAndID(c)
	if !ok {
		return
	}

	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, err, "Invalid limit")
			return
		}
		limit = n
	}

	views, next, err := h.q.ListSwimmerBookings(c.Request.Context(), actor, swimmerID, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	res := resdto.BookingListResponse{Items: resdto.FromBookingViews(views)}
	if next != nil {
		res.NextCursor = next.After
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Cancel booking
// @Description Parent cancellation. Refused inside the notice window with cannotCancelInApp.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} resdto.CancelBookingResponse
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelByParent(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.CancelBookingRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.cmds.CancelByParent(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}

// @Summary Cancel booking as admin
// @Description No notice window. Optionally flags the swimmer as flexible.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AdminCancelBookingRequest false "Admin cancellation"
// @Success 200 {object} resdto.CancelBookingResponse
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /admin/bookings/{id}/cancel [post]
func (h *BookingHandler) CancelByAdmin(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.AdminCancelBookingRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.cmds.CancelByAdmin(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}

// @Summary Mark booking completed
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingStatusResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /admin/bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	result, err := h.cmds.CompleteBooking(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCompleteResult(result))
}

// @Summary Reschedule booking
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleRequest true "Target session"
// @Success 200 {object} resdto.RescheduleResponse
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /bookings/{id}/reschedule [post]
func (h *BookingHandler) Reschedule(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.cmds.Reschedule(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RescheduleResponse{
		BookingID:         result.BookingID,
		PreviousSessionID: result.PreviousSessionID,
		SessionID:         result.SessionID,
	})
}

// @Summary Bulk booking update
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkBookingRequest true "Bulk action"
// @Success 200 {object} resdto.BulkResponse
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /bookings/bulk [post]
func (h *BookingHandler) Bulk(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errMissingActor)
		return
	}
	var req reqdto.BulkBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.cmds.Bulk(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.BulkResponse{Updated: result.Updated, SessionsAffected: result.SessionsAffected})
}

// @Summary Cancel recurring block
// @Description Cancels every future confirmed booking of one recurring batch
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CancelBlockRequest true "Block to cancel"
// @Success 200 {object} resdto.CancelBlockResponse
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /bookings/cancel-block [post]
func (h *BookingHandler) CancelBlock(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondError(c, errMissingActor)
		return
	}
	var req reqdto.CancelBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.cmds.CancelBlock(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CancelBlockResponse{
		BlockID:                 result.BlockID,
		BookingsCancelled:       result.BookingsCancelled,
		FloatingSessionsCreated: result.FloatingSessionsCreated,
	})
}
