package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"

	"wheelio/internal/clients"
	"wheelio/internal/models"
)

// stubUserService fakes the user service's /internal surface with a fixed
// set of known users and drivers.
func stubUserService(t *testing.T, users map[string]models.User, drivers map[string]models.DriverProfile) *clients.UserClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/users/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/internal/users/"):]
		user, ok := users[id]
		if !ok {
			http.Error(w, `{"error":"User not found"}`, http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(user)
	})
	mux.HandleFunc("/internal/drivers/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/internal/drivers/"):]
		driver, ok := drivers[id]
		if !ok {
			http.Error(w, `{"error":"Driver not found"}`, http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(driver)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return clients.NewUserClient(server.URL, zap.NewNop())
}

func stubVehicleService(t *testing.T, vehicles map[string]models.Vehicle) *clients.VehicleClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/vehicles/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/internal/vehicles/"):]
		vehicle, ok := vehicles[id]
		if !ok {
			http.Error(w, `{"error":"Vehicle not found"}`, http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(vehicle)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return clients.NewVehicleClient(server.URL, zap.NewNop())
}

// deadVehicleService returns a client whose upstream is already gone.
func deadVehicleService(t *testing.T) *clients.VehicleClient {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	return clients.NewVehicleClient(server.URL, zap.NewNop())
}

func TestEnrichBookingAllResolved(t *testing.T) {
	handler := &BookingHandler{
		Users: stubUserService(t,
			map[string]models.User{"USR-1": {UserID: "USR-1", Email: "jane@example.com"}},
			map[string]models.DriverProfile{"USR-9": {UserID: "USR-9", LicenseNumber: "LIC-42"}},
		),
		Vehicles: stubVehicleService(t, map[string]models.Vehicle{"VEH-1": {VehicleID: "VEH-1", Name: "City Cruiser"}}),
		Log:      zap.NewNop(),
	}

	booking := models.Booking{BookingID: "BKG-1", UserID: "USR-1", VehicleID: "VEH-1", DriverID: "USR-9"}
	enriched := handler.enrichBooking(context.Background(), booking)

	require.NotNil(t, enriched.User)
	assert.Equal(t, "jane@example.com", enriched.User.Email)
	require.NotNil(t, enriched.Vehicle)
	assert.Equal(t, "City Cruiser", enriched.Vehicle.Name)
	require.NotNil(t, enriched.Driver)
	assert.Equal(t, "LIC-42", enriched.Driver.LicenseNumber)
}

// A dangling vehicle reference nulls the vehicle field; the booking's own
// fields survive untouched.
func TestEnrichBookingDanglingVehicle(t *testing.T) {
	handler := &BookingHandler{
		Users:    stubUserService(t, map[string]models.User{"USR-1": {UserID: "USR-1"}}, nil),
		Vehicles: stubVehicleService(t, map[string]models.Vehicle{}),
		Log:      zap.NewNop(),
	}

	booking := models.Booking{BookingID: "BKG-1", UserID: "USR-1", VehicleID: "VEH-deleted", TotalAmount: 750}
	enriched := handler.enrichBooking(context.Background(), booking)

	assert.Nil(t, enriched.Vehicle)
	require.NotNil(t, enriched.User)
	assert.Equal(t, "BKG-1", enriched.BookingID)
	assert.Equal(t, 750.0, enriched.TotalAmount)
}

// A collaborator being down looks exactly like a dangling reference.
func TestEnrichBookingCollaboratorDown(t *testing.T) {
	handler := &BookingHandler{
		Users:    stubUserService(t, map[string]models.User{"USR-1": {UserID: "USR-1"}}, nil),
		Vehicles: deadVehicleService(t),
		Log:      zap.NewNop(),
	}

	booking := models.Booking{BookingID: "BKG-1", UserID: "USR-1", VehicleID: "VEH-1"}
	enriched := handler.enrichBooking(context.Background(), booking)

	assert.Nil(t, enriched.Vehicle)
	require.NotNil(t, enriched.User)
}

func bookingRouter(handler *BookingHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/bookings", handler.CreateBooking)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, router, http.MethodPost, path, payload)
}

// A syntactically valid but nonexistent reference is a validation error
// naming the reference, never a 500.
func TestCreateBookingNonexistentVehicle(t *testing.T) {
	handler := &BookingHandler{
		Users:    stubUserService(t, map[string]models.User{"USR-1": {UserID: "USR-1"}}, nil),
		Vehicles: stubVehicleService(t, map[string]models.Vehicle{}),
		Log:      zap.NewNop(),
	}
	router := bookingRouter(handler)

	rec := postJSON(t, router, "/api/v1/bookings", gin.H{
		"userId":      "USR-1",
		"vehicleId":   "VEH-ghost",
		"startDate":   "2026-01-05",
		"endDate":     "2026-01-10",
		"totalAmount": 750,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VEH-ghost")
}

// A collaborator outage during existence validation also rejects creation:
// the reference cannot be confirmed.
func TestCreateBookingValidationUpstreamDown(t *testing.T) {
	handler := &BookingHandler{
		Users:    stubUserService(t, map[string]models.User{"USR-1": {UserID: "USR-1"}}, nil),
		Vehicles: deadVehicleService(t),
		Log:      zap.NewNop(),
	}
	router := bookingRouter(handler)

	rec := postJSON(t, router, "/api/v1/bookings", gin.H{
		"userId":      "USR-1",
		"vehicleId":   "VEH-1",
		"startDate":   "2026-01-05",
		"endDate":     "2026-01-10",
		"totalAmount": 750,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VEH-1")
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
	handler := &BookingHandler{Log: zap.NewNop()}
	router := bookingRouter(handler)

	rec := postJSON(t, router, "/api/v1/bookings", gin.H{
		"userId":      "USR-1",
		"vehicleId":   "VEH-1",
		"startDate":   "2026-01-10",
		"endDate":     "2026-01-05",
		"totalAmount": 750,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "endDate must be after startDate")
}

// Status setters have no transition graph: CONFIRMED may overwrite
// CANCELLED.
func TestSetBookingStatusOverwritesCancelled(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("cancelled to confirmed", func(mt *mtest.T) {
		confirmedDoc := bson.D{
			{Key: "bookingID", Value: "BKG-1"},
			{Key: "userID", Value: "USR-1"},
			{Key: "vehicleID", Value: "VEH-1"},
			{Key: "status", Value: "CONFIRMED"},
			{Key: "paymentStatus", Value: "PAID"},
		}
		mt.AddMockResponses(
			updatedResponse(),
			mtest.CreateCursorResponse(0, "wheelio.bookings", mtest.FirstBatch, confirmedDoc),
		)

		handler := &BookingHandler{DB: mt.DB, Log: zap.NewNop()}
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.PATCH("/api/v1/bookings/:id/status", handler.SetBookingStatus)

		rec := doJSON(mt.T, router, http.MethodPatch, "/api/v1/bookings/BKG-1/status", gin.H{
			"status": "CONFIRMED",
		})

		require.Equal(mt.T, http.StatusOK, rec.Code)
		assert.Contains(mt.T, rec.Body.String(), "CONFIRMED")
	})
}

// A created booking comes back 201 CONFIRMED/PAID and can be fetched again
// under the id the creation returned.
func TestCreateBookingThenFetch(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("round trip", func(mt *mtest.T) {
		users := stubUserService(mt.T, map[string]models.User{"USR-1": {UserID: "USR-1"}}, nil)
		vehicles := stubVehicleService(mt.T, map[string]models.Vehicle{"VEH-1": {VehicleID: "VEH-1"}})
		handler := &BookingHandler{DB: mt.DB, Users: users, Vehicles: vehicles, Log: zap.NewNop()}

		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.POST("/api/v1/bookings", handler.CreateBooking)
		router.GET("/api/v1/bookings/:id", handler.GetBookingByID)

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		rec := postJSON(mt.T, router, "/api/v1/bookings", gin.H{
			"userId":      "USR-1",
			"vehicleId":   "VEH-1",
			"startDate":   "2026-01-05",
			"endDate":     "2026-01-10",
			"totalAmount": 750,
		})
		require.Equal(mt.T, http.StatusCreated, rec.Code)

		var created struct {
			ID            string  `json:"id"`
			Status        string  `json:"status"`
			PaymentStatus string  `json:"paymentStatus"`
			TotalAmount   float64 `json:"totalAmount"`
		}
		require.NoError(mt.T, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEmpty(mt.T, created.ID)
		assert.Equal(mt.T, "CONFIRMED", created.Status)
		assert.Equal(mt.T, "PAID", created.PaymentStatus)
		assert.Equal(mt.T, 750.0, created.TotalAmount)

		storedDoc := bson.D{
			{Key: "bookingID", Value: created.ID},
			{Key: "userID", Value: "USR-1"},
			{Key: "vehicleID", Value: "VEH-1"},
			{Key: "startDate", Value: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
			{Key: "endDate", Value: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
			{Key: "totalAmount", Value: 750.0},
			{Key: "status", Value: "CONFIRMED"},
			{Key: "paymentStatus", Value: "PAID"},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "wheelio.bookings", mtest.FirstBatch, storedDoc))

		fetch := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+created.ID, nil)
		fetchRec := httptest.NewRecorder()
		router.ServeHTTP(fetchRec, fetch)

		require.Equal(mt.T, http.StatusOK, fetchRec.Code)
		assert.Contains(mt.T, fetchRec.Body.String(), created.ID)
		assert.Contains(mt.T, fetchRec.Body.String(), `"totalAmount":750`)
	})
}

func TestCreateBookingRejectsNonPositiveAmount(t *testing.T) {
	handler := &BookingHandler{Log: zap.NewNop()}
	router := bookingRouter(handler)

	rec := postJSON(t, router, "/api/v1/bookings", gin.H{
		"userId":      "USR-1",
		"vehicleId":   "VEH-1",
		"startDate":   "2026-01-05",
		"endDate":     "2026-01-10",
		"totalAmount": -10,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "totalAmount")
}
