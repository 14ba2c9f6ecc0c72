//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"swimbooking/internal/domain/session"
	"swimbooking/internal/domain/user"
	"swimbooking/internal/handler/api"
	reqdto "swimbooking/internal/handler/dto/request"
	resdto "swimbooking/internal/handler/dto/response"
	"swimbooking/internal/handler/middleware"
	"swimbooking/internal/usecase/commands"
	"swimbooking/internal/usecase/queries"
	"swimbooking/tests/common/builder"
	"swimbooking/tests/common/httptest"
	commandsmock "swimbooking/tests/mock/commands"
	queriesmock "swimbooking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSessionCommands
	mockQueries  *queriesmock.MockSessionQueries
	actor        user.Actor
}

func (s *SessionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSessionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSessionQueries(s.mockCtrl)
	s.actor = builder.NewUserBuilder().AsAdmin().BuildActor()
	h := api.NewSessionHandler(s.mockCommands, s.mockQueries)

	g := s.router.Group("", func(c *gin.Context) {
		middleware.SetActor(c, s.actor)
		c.Next()
	})
	g.GET("/sessions/:id", h.Get)
	g.POST("/admin/sessions/:id/close", h.Close)
	g.GET("/parents/:id/floating-sessions", h.ListFloating)
	g.GET("/admin/sessions/count-drift", h.CountDrift)
}

func (s *SessionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}

func (s *SessionHandlerTestSuite) TestGet() {
	s.Run("success", func() {
		id := uuid.New()
		start := time.Now().Add(24 * time.Hour)
		s.mockQueries.EXPECT().GetSession(gomock.Any(), id).Return(&queries.SessionView{
			ID: id, StartTime: start, EndTime: start.Add(30 * time.Minute), MaxCapacity: 2, BookingCount: 1, Status: "open",
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/"+id.String(), nil, "")

		var res queries.SessionView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(int32(1), res.BookingCount)
	})

	s.Run("error: not found", func() {
		s.mockQueries.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(nil, queries.ErrSessionNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/"+uuid.NewString(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "session_not_found")
	})
}

func (s *SessionHandlerTestSuite) TestClose() {
	id := uuid.New()
	url := "/admin/sessions/" + id.String() + "/close"

	s.Run("success: reports cascade counts", func() {
		req := reqdto.CloseSessionRequest{Reason: "pool_closed", Notes: "heater broken"}
		s.mockCommands.EXPECT().CloseSession(gomock.Any(), s.actor, id, req.ToInput()).
			Return(&commands.CloseSessionResult{SessionID: id, BookingsCancelled: 2, FloatingSessionsCreated: 2}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, "")

		var res resdto.CloseSessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("closed", res.Status)
		s.Equal(2, res.BookingsCancelled)
		s.Equal(2, res.FloatingSessionsCreated)
	})

	s.Run("error: unknown reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "rain"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "validation_error")
	})

	s.Run("error: already closed", func() {
		s.mockCommands.EXPECT().CloseSession(gomock.Any(), s.actor, id, gomock.Any()).Return(nil, session.ErrAlreadyClosed)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.CloseSessionRequest{Reason: "other"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "session_closed")
	})
}

func (s *SessionHandlerTestSuite) TestListFloating() {
	parentID := uuid.New()
	url := "/parents/" + parentID.String() + "/floating-sessions"

	s.Run("success: empty list renders as an array", func() {
		s.mockQueries.EXPECT().ListFloatingSessions(gomock.Any(), s.actor, parentID).Return(nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("error: access denied", func() {
		s.mockQueries.EXPECT().ListFloatingSessions(gomock.Any(), s.actor, parentID).Return(nil, queries.ErrAccessDenied)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "forbidden")
	})
}

func (s *SessionHandlerTestSuite) TestCountDrift() {
	s.Run("consistent", func() {
		s.mockQueries.EXPECT().VerifySessionCounts(gomock.Any()).Return(nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/sessions/count-drift", nil, "")

		var res resdto.SessionCountReport
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.True(res.Consistent)
		s.Empty(res.Drift)
	})

	s.Run("drift reported", func() {
		s.mockQueries.EXPECT().VerifySessionCounts(gomock.Any()).Return([]*queries.SessionCountDrift{
			{SessionID: uuid.New(), BookingCount: 3, ActiveCount: 2, MaxCapacity: 4},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/sessions/count-drift", nil, "")

		var res resdto.SessionCountReport
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.False(res.Consistent)
		s.Len(res.Drift, 1)
	})
}
