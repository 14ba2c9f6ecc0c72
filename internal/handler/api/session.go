package api

import (
	"net/http"

	reqdto "swimbooking/internal/handler/dto/request"
	resdto "swimbooking/internal/handler/dto/response"
	"swimbooking/internal/usecase/commands"
	"swimbooking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionHandler struct {
	cmds commands.SessionCommands
	q    queries.SessionQueries
}

func NewSessionHandler(cmds commands.SessionCommands, q queries.SessionQueries) *SessionHandler {
	return &SessionHandler{cmds: cmds, q: q}
}

// @Summary Get session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} queries.SessionView
// @Failure 404 {object} map[string]any
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid session ID format")
		return
	}
	view, err := h.q.GetSession(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Close session
// @Description Closes a session and cancels its confirmed bookings, issuing floating sessions
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.CloseSessionRequest true "Closure reason"
// @Success 200 {object} resdto.CloseSessionResponse
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /admin/sessions/{id}/close [post]
func (h *SessionHandler) Close(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.cmds.CloseSession(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCloseResult(result))
}

// @Summary List floating sessions
// @Description Unused, unexpired floating sessions held by a parent
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Parent ID"
// @Success 200 {array} queries.FloatingSessionView
// @Failure 403 {object} map[string]any
// @Router /parents/{id}/floating-sessions [get]
func (h *SessionHandler) ListFloating(c *gin.Context) {
	actor, parentID, ok := actorAndID(c)
	if !ok {
		return
	}
	views, err := h.q.ListFloatingSessions(c.Request.Context(), actor, parentID)
	if err != nil {
		respondError(c, err)
		return
	}
	if views == nil {
		views = []*queries.FloatingSessionView{}
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Verify session counts
// @Description Reports sessions whose stored booking count differs from their confirmed bookings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SessionCountReport
// @Router /admin/sessions/count-drift [get]
func (h *SessionHandler) CountDrift(c *gin.Context) {
	drift, err := h.q.VerifySessionCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if drift == nil {
		drift = []*queries.SessionCountDrift{}
	}
	c.JSON(http.StatusOK, resdto.SessionCountReport{Consistent: len(drift) == 0, Drift: drift})
}
