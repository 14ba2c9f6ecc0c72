//go:build e2e

package booking_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"swimbooking/internal/domain/user"
	reqdto "swimbooking/internal/handler/dto/request"
	resdto "swimbooking/internal/handler/dto/response"
	"swimbooking/tests/common/authtest"
	"swimbooking/tests/common/dbtest"
	"swimbooking/tests/common/httptest"
	"swimbooking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type bookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

type family struct {
	parentID  uuid.UUID
	swimmerID uuid.UUID
	token     string
}

func (s *bookingSuite) newFamily(email string) family {
	parentID, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, email, string(user.RoleParent))
	return family{parentID: parentID, swimmerID: dbtest.CreateTestSwimmer(s.T(), s.DB, parentID, "Sam"), token: token}
}

func (s *bookingSuite) book(f family, sessionID uuid.UUID) resdto.CreateBookingsResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings",
		reqdto.CreateBookingRequest{SwimmerID: f.swimmerID, SessionID: sessionID}, f.token)
	var res resdto.CreateBookingsResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
	require.Len(s.T(), res.Bookings, 1)
	return res
}

func (s *bookingSuite) TestBookAndCancel() {
	s.Run("early cancellation of a recurring lesson issues a floating session", func() {
		t := s.T()
		f := s.newFamily("early@example.com")
		sessionID := dbtest.CreateTestSession(t, s.DB, time.Now().Add(72*time.Hour), 1)
		_, err := s.DB.Exec(t.Context(), "UPDATE sessions SET is_recurring = true WHERE id = $1", sessionID)
		require.NoError(t, err)

		created := s.book(f, sessionID)
		count, full := dbtest.SessionBookingCount(t, s.DB, sessionID)
		require.Equal(t, 1, count)
		require.True(t, full)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/bookings/"+created.Bookings[0].ID.String()+"/cancel", nil, f.token)
		var res resdto.CancelBookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.True(t, res.FloatingSessionCreated)

		count, full = dbtest.SessionBookingCount(t, s.DB, sessionID)
		require.Equal(t, 0, count)
		require.False(t, full)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/parents/"+f.parentID.String()+"/floating-sessions", nil, f.token)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), sessionID.String())
	})

	s.Run("late cancellation is refused with staff contact details", func() {
		t := s.T()
		f := s.newFamily("late@example.com")
		sessionID := dbtest.CreateTestSession(t, s.DB, time.Now().Add(5*time.Hour), 1)
		created := s.book(f, sessionID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/bookings/"+created.Bookings[0].ID.String()+"/cancel", nil, f.token)
		body := httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "late_cancellation")
		require.Equal(t, true, body["cannotCancelInApp"])
		require.Equal(t, s.Config.Policy.StaffContactPhone, body["contactPhone"])

		count, _ := dbtest.SessionBookingCount(t, s.DB, sessionID)
		require.Equal(t, 1, count, "refused cancellation must not release the seat")
	})

	s.Run("another parent cannot cancel", func() {
		t := s.T()
		owner := s.newFamily("owner@example.com")
		other := s.newFamily("other@example.com")
		sessionID := dbtest.CreateTestSession(t, s.DB, time.Now().Add(72*time.Hour), 2)
		created := s.book(owner, sessionID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/bookings/"+created.Bookings[0].ID.String()+"/cancel", nil, other.token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "forbidden")
	})
}

func (s *bookingSuite) TestGetBooking() {
	s.Run("owner sees the booking with its session", func() {
		t := s.T()
		f := s.newFamily("reader@example.com")
		sessionID := dbtest.CreateTestSession(t, s.DB, time.Now().Add(72*time.Hour), 2)
		created := s.book(f, sessionID)
		bookingID := created.Bookings[0].ID

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/bookings/"+bookingID.String(), nil, f.token)
		var actual resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &actual)

		expected := &resdto.BookingResponse{
			ID:              bookingID,
			SessionID:       sessionID,
			SwimmerID:       f.swimmerID,
			ParentID:        f.parentID,
			Status:          "confirmed",
			BookingType:     "single",
			SessionLocation: "Main Pool",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.BookingResponse{}, "SessionStartTime", "SessionEndTime", "SwimmerName", "CreatedAt"),
		}
		if diff := cmp.Diff(expected, &actual, opts...); diff != "" {
			t.Errorf("booking mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("another parent cannot see it", func() {
		t := s.T()
		owner := s.newFamily("private@example.com")
		other := s.newFamily("curious@example.com")
		created := s.book(owner, dbtest.CreateTestSession(t, s.DB, time.Now().Add(72*time.Hour), 2))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/bookings/"+created.Bookings[0].ID.String(), nil, other.token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "booking_not_found")
	})
}

func (s *bookingSuite) TestIdempotentCreate() {
	s.Run("same key replays, different body conflicts", func() {
		t := s.T()
		f := s.newFamily("idem@example.com")
		sessionID := dbtest.CreateTestSession(t, s.DB, time.Now().Add(72*time.Hour), 3)
		key := uuid.NewString()
		req := reqdto.CreateBookingRequest{SwimmerID: f.swimmerID, SessionID: sessionID}
		headers := map[string]string{"Idempotency-Key": key, "Authorization": "Bearer " + f.token}

		first := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, "/api/bookings", req, headers)
		var a resdto.CreateBookingsResponse
		httptest.AssertSuccessResponse(t, first, http.StatusCreated, &a)

		second := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, "/api/bookings", req, headers)
		var b resdto.CreateBookingsResponse
		httptest.AssertSuccessResponse(t, second, http.StatusOK, &b)
		require.True(t, b.Replayed)
		require.Equal(t, a.Bookings[0].ID, b.Bookings[0].ID)

		count, _ := dbtest.SessionBookingCount(t, s.DB, sessionID)
		require.Equal(t, 1, count)

		otherSession := dbtest.CreateTestSession(t, s.DB, time.Now().Add(96*time.Hour), 3)
		third := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, "/api/bookings",
			reqdto.CreateBookingRequest{SwimmerID: f.swimmerID, SessionID: otherSession}, headers)
		httptest.AssertErrorResponse(t, third, http.StatusConflict, "idempotency_key_reused")
	})
}

func (s *bookingSuite) TestConcurrentBookingForLastSeat() {
	s.Run("exactly one of many parents gets the last seat", func() {
		t := s.T()
		sessionID := dbtest.CreateTestSession(t, s.DB, time.Now().Add(72*time.Hour), 1)

		const n = 8
		families := make([]family, n)
		for i := range families {
			families[i] = s.newFamily(uuid.NewString()[:8] + "@example.com")
		}

		var wg sync.WaitGroup
		codes := make([]int, n)
		for i, f := range families {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings",
					reqdto.CreateBookingRequest{SwimmerID: f.swimmerID, SessionID: sessionID}, f.token)
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		created := 0
		for _, c := range codes {
			if c == http.StatusCreated {
				created++
			} else {
				require.Equal(t, http.StatusBadRequest, c)
			}
		}
		require.Equal(t, 1, created)

		count, full := dbtest.SessionBookingCount(t, s.DB, sessionID)
		require.Equal(t, 1, count)
		require.True(t, full)
	})
}

func (s *bookingSuite) TestConcurrentBookingForLastAuthorizedSession() {
	s.Run("one purchase order slot left goes to exactly one booking", func() {
		t := s.T()
		parentID, token := authtest.CreateAndLogin(t, s.DB, s.Router, "funded@example.com", string(user.RoleParent))
		swimmerID, fundingSourceID := dbtest.CreateFundedSwimmer(t, s.DB, parentID, "Noor")
		poID := dbtest.CreateTestPurchaseOrder(t, s.DB, swimmerID, fundingSourceID, 3, 2)

		const n = 4
		sessions := make([]uuid.UUID, n)
		for i := range sessions {
			sessions[i] = dbtest.CreateTestSession(t, s.DB, time.Now().Add(72*time.Hour+time.Duration(i)*2*time.Hour), 4)
		}

		var wg sync.WaitGroup
		codes := make([]int, n)
		bodies := make([]string, n)
		for i, sessionID := range sessions {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings",
					reqdto.CreateBookingRequest{SwimmerID: swimmerID, SessionID: sessionID}, token)
				codes[i], bodies[i] = w.Code, w.Body.String()
			}()
		}
		wg.Wait()

		created := 0
		for i, c := range codes {
			if c == http.StatusCreated {
				created++
				continue
			}
			require.Equal(t, http.StatusBadRequest, c, bodies[i])
			require.Contains(t, bodies[i], "insufficient_authorization")
		}
		require.Equal(t, 1, created)

		authorized, booked := dbtest.PurchaseOrderUsage(t, s.DB, poID)
		require.Equal(t, authorized, booked)

		seats := 0
		for _, id := range sessions {
			count, _ := dbtest.SessionBookingCount(t, s.DB, id)
			seats += count
		}
		require.Equal(t, 1, seats, "rejected requests leave no seat behind")
	})
}

func (s *bookingSuite) TestCloseSession() {
	s.Run("closure cancels confirmed bookings and issues floating sessions", func() {
		t := s.T()
		_, adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "boss@example.com", string(user.RoleAdmin))
		sessionID := dbtest.CreateTestSession(t, s.DB, time.Now().Add(48*time.Hour), 3)
		a := s.newFamily("a@example.com")
		b := s.newFamily("b@example.com")
		s.book(a, sessionID)
		s.book(b, sessionID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/admin/sessions/"+sessionID.String()+"/close",
			reqdto.CloseSessionRequest{Reason: "pool_closed"}, adminToken)
		var res resdto.CloseSessionResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Equal(t, 2, res.BookingsCancelled)
		require.Equal(t, 2, res.FloatingSessionsCreated)

		count, _ := dbtest.SessionBookingCount(t, s.DB, sessionID)
		require.Equal(t, 0, count)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/admin/sessions/count-drift", nil, adminToken)
		var report resdto.SessionCountReport
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &report)
		require.True(t, report.Consistent)

		var jobs int
		require.NoError(t, s.DB.QueryRow(t.Context(),
			"SELECT count(*) FROM notification_jobs WHERE topic = 'session.closed'").Scan(&jobs))
		require.Equal(t, 2, jobs)
	})
}
