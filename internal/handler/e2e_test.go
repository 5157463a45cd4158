//go:build e2e

package handler_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"parking-booking/cmd/bootstrap"
	"parking-booking/cmd/bootstrap/components"
	resdto "parking-booking/internal/handler/dto/response"
	"parking-booking/internal/pkg/config"
	"parking-booking/internal/pkg/jwt"
	"parking-booking/internal/testutil/dbtest"
	"parking-booking/internal/testutil/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

type BookingE2ESuite struct {
	suite.Suite
	DB     *pgxpool.Pool
	Router *gin.Engine
	JWT    *jwt.Service
	app    *fx.App
}

func TestBookingE2ESuite(t *testing.T) {
	suite.Run(t, new(BookingE2ESuite))
}

func (s *BookingE2ESuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	pool, dbConfig := dbtest.NewDatabase(s.T())
	s.DB = pool

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig

	s.app = fx.New(
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() config.Config { return cfg },
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.RedisModule,
		bootstrap.BrokerModule,
		components.PersistenceModule,
		components.GatewayModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&s.Router, &s.JWT),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(s.T(), s.app.Start(ctx))
}

func (s *BookingE2ESuite) TearDownSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.app.Stop(ctx)
}

func (s *BookingE2ESuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
}

func (s *BookingE2ESuite) token(userID uuid.UUID, role string) string {
	tok, err := s.JWT.GenerateToken(userID, role, time.Hour)
	s.Require().NoError(err)
	return tok
}

func availabilityURL(slotID uuid.UUID, start, end time.Time) string {
	q := url.Values{}
	q.Set("start", start.Format(time.RFC3339))
	q.Set("end", end.Format(time.RFC3339))
	return "/api/slots/" + slotID.String() + "/availability?" + q.Encode()
}

func (s *BookingE2ESuite) TestBookingLifecycle() {
	s.Run("book, replay, read, cancel", func() {
		t := s.T()
		ownerID, userID := uuid.New(), uuid.New()
		locationID := dbtest.CreateLocation(t, s.DB, dbtest.LocationSeed{OwnerID: ownerID, Name: "Central", PricePerHour: 5, IsActive: true})
		slotID := dbtest.CreateSlot(t, s.DB, locationID, "A-01", true)

		start := time.Now().UTC().Truncate(time.Second).Add(24 * time.Hour)
		end := start.Add(2 * time.Hour)
		userToken := s.token(userID, "user")
		key := uuid.NewString()
		body := map[string]any{
			"slot_id":        slotID,
			"start_time":     start,
			"end_time":       end,
			"vehicle_number": "KA01AB1234",
			"payment_method": "card",
		}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, "/api/bookings", body, userToken,
			map[string]string{"Idempotency-Key": key})
		var created resdto.CheckoutResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.NotNil(t, created.Payment)

		want := resdto.BookingResponse{
			UserID:        userID,
			LocationID:    locationID,
			SlotID:        slotID,
			StartTime:     start,
			EndTime:       end,
			Status:        "active",
			TotalDuration: 2,
			TotalCost:     10,
			HourlyRate:    5,
			VehicleNumber: "KA01AB1234",
		}
		opts := cmpopts.IgnoreFields(resdto.BookingResponse{}, "ID", "CreatedAt", "UpdatedAt")
		if diff := cmp.Diff(want, *created.Booking, opts); diff != "" {
			t.Errorf("created booking mismatch (-want +got):\n%s", diff)
		}
		s.Equal("success", created.Payment.Status)
		s.Equal("/api/bookings/"+created.Booking.ID.String(), w.Header().Get("Location"))

		var avail resdto.AvailabilityResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL(slotID, start.Add(time.Hour), end.Add(time.Hour)), nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &avail)
		s.False(avail.Available)

		// same key, same body
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, "/api/bookings", body, userToken,
			map[string]string{"Idempotency-Key": key})
		var replayed resdto.CheckoutResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &replayed)
		s.True(replayed.Replayed)
		s.Equal(created.Booking.ID, replayed.Booking.ID)

		// a second booking over the same interval
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings", body, s.token(uuid.New(), "user"))
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "not available")

		bookingURL := "/api/bookings/" + created.Booking.ID.String()
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingURL, nil, userToken)
		var fetched resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &fetched)
		s.Equal("Central", fetched.LocationName)
		s.Equal("A-01", fetched.SlotNumber)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingURL, nil, s.token(uuid.New(), "user"))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Forbidden")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/locations/"+locationID.String()+"/bookings", nil, s.token(ownerID, "owner"))
		var byLocation []resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &byLocation)
		s.Len(byLocation, 1)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/cancel", nil, s.token(ownerID, "owner"))
		var cancelled resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		s.Equal("cancelled", cancelled.Status)
		s.Require().NotNil(cancelled.CancelledBy)
		s.Equal(ownerID, *cancelled.CancelledBy)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingURL+"/cancel", nil, userToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "cannot change")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL(slotID, start, end), nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &avail)
		s.True(avail.Available)
	})

	s.Run("inactive slot is rejected", func() {
		t := s.T()
		locationID := dbtest.CreateLocation(t, s.DB, dbtest.LocationSeed{OwnerID: uuid.New(), PricePerHour: 3, IsActive: true})
		slotID := dbtest.CreateSlot(t, s.DB, locationID, "B-01", false)
		start := time.Now().UTC().Truncate(time.Second).Add(time.Hour)

		body := map[string]any{
			"slot_id":        slotID,
			"start_time":     start,
			"end_time":       start.Add(time.Hour),
			"vehicle_number": "MH12XY0001",
			"payment_method": "upi",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings", body, s.token(uuid.New(), "user"))
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "not active")
	})
}

func (s *BookingE2ESuite) TestAdmin() {
	s.Run("stats require the admin role", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/admin/stats", nil, s.token(uuid.New(), "owner"))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/admin/stats", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/admin/stats", nil, s.token(uuid.New(), "admin"))
		var stats resdto.StatsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &stats)
		s.Zero(stats.Bookings.Total)
	})
}
