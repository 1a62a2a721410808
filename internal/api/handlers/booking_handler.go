package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wheelio/internal/clients"
	"wheelio/internal/models"
)

type BookingHandler struct {
	DB       *mongo.Database
	Users    *clients.UserClient
	Vehicles *clients.VehicleClient
	Log      *zap.Logger
}

type CreateBookingRequest struct {
	UserID      string  `json:"userId" binding:"required"`
	VehicleID   string  `json:"vehicleId" binding:"required"`
	DriverID    string  `json:"driverId"`
	StartDate   string  `json:"startDate" binding:"required"`
	EndDate     string  `json:"endDate" binding:"required"`
	TotalAmount float64 `json:"totalAmount" binding:"required"`
}

type BookingStatusRequest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// enrichBooking resolves the booking's references concurrently. Unresolvable
// references (deleted entity, collaborator down) become nulls; the booking
// itself is always returned.
func (h *BookingHandler) enrichBooking(ctx context.Context, booking models.Booking) models.EnrichedBooking {
	enriched := models.EnrichedBooking{Booking: booking}

	var g errgroup.Group
	g.Go(func() error {
		if user, ok := h.Users.GetUser(ctx, booking.UserID); ok {
			enriched.User = user
		}
		return nil
	})
	g.Go(func() error {
		if vehicle, ok := h.Vehicles.GetVehicle(ctx, booking.VehicleID); ok {
			enriched.Vehicle = vehicle
		}
		return nil
	})
	if booking.DriverID != "" {
		g.Go(func() error {
			if driver, ok := h.Users.GetDriver(ctx, booking.DriverID); ok {
				enriched.Driver = driver
			}
			return nil
		})
	}
	g.Wait()

	return enriched
}

func (h *BookingHandler) enrichBookings(ctx context.Context, bookings []models.Booking) []models.EnrichedBooking {
	enriched := make([]models.EnrichedBooking, len(bookings))
	var g errgroup.Group
	for i, booking := range bookings {
		i, booking := i, booking
		g.Go(func() error {
			enriched[i] = h.enrichBooking(ctx, booking)
			return nil
		})
	}
	g.Wait()
	return enriched
}

// CreateBooking validates the referenced user, vehicle and optional driver
// in parallel, then persists the booking. The references are checked only
// here, never again on later reads.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("startDate: %s", err.Error())})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("endDate: %s", err.Error())})
		return
	}
	if !endDate.After(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be after startDate"})
		return
	}
	if err := validAmount(req.TotalAmount, true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("totalAmount: %s", err.Error())})
		return
	}

	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		if _, ok := h.Users.GetUser(gctx, req.UserID); !ok {
			return fmt.Errorf("user '%s' does not exist", req.UserID)
		}
		return nil
	})
	g.Go(func() error {
		if _, ok := h.Vehicles.GetVehicle(gctx, req.VehicleID); !ok {
			return fmt.Errorf("vehicle '%s' does not exist", req.VehicleID)
		}
		return nil
	})
	if req.DriverID != "" {
		g.Go(func() error {
			if _, ok := h.Users.GetDriver(gctx, req.DriverID); !ok {
				return fmt.Errorf("driver '%s' does not exist", req.DriverID)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	newBooking := models.Booking{
		BookingID:   fmt.Sprintf("BKG-%s", uuid.New().String()[:8]),
		UserID:      req.UserID,
		VehicleID:   req.VehicleID,
		DriverID:    req.DriverID,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalAmount: req.TotalAmount,
		// No payment capture step exists; bookings are confirmed and paid
		// the moment they are created.
		Status:        "CONFIRMED",
		PaymentStatus: "PAID",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	collection := h.DB.Collection("bookings")
	result, err := collection.InsertOne(context.Background(), newBooking)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newBooking.ID = oid
	}

	c.JSON(http.StatusCreated, h.enrichBooking(c.Request.Context(), newBooking))
}

func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	filter := bson.M{}
	if userID := c.Query("userId"); userID != "" {
		filter["userID"] = userID
	}
	if vehicleID := c.Query("vehicleId"); vehicleID != "" {
		filter["vehicleID"] = vehicleID
	}
	if status := c.Query("status"); status != "" {
		normalized, err := models.NormalizeBookingStatus(status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter["status"] = normalized
	}

	collection := h.DB.Collection("bookings")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query bookings"})
		return
	}
	defer cursor.Close(context.Background())

	var bookings []models.Booking
	if err = cursor.All(context.Background(), &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode bookings"})
		return
	}

	c.JSON(http.StatusOK, h.enrichBookings(c.Request.Context(), bookings))
}

func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	bookingID := c.Param("id")

	var booking models.Booking
	err := h.DB.Collection("bookings").FindOne(context.Background(), bson.M{"bookingID": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booking"})
		}
		return
	}

	c.JSON(http.StatusOK, h.enrichBooking(c.Request.Context(), booking))
}

// SetBookingStatus sets status and/or paymentStatus. Any valid value may
// replace any other; there is no transition graph.
func (h *BookingHandler) SetBookingStatus(c *gin.Context) {
	bookingID := c.Param("id")

	var req BookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == "" && req.PaymentStatus == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status or paymentStatus is required"})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Status != "" {
		status, err := models.NormalizeBookingStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update["status"] = status
	}
	if req.PaymentStatus != "" {
		paymentStatus, err := models.NormalizeBookingPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update["paymentStatus"] = paymentStatus
	}

	collection := h.DB.Collection("bookings")
	result, err := collection.UpdateOne(context.Background(), bson.M{"bookingID": bookingID}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	var booking models.Booking
	if err := collection.FindOne(context.Background(), bson.M{"bookingID": bookingID}).Decode(&booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CancelBooking sets the status to CANCELLED regardless of the current
// status, including already cancelled or completed bookings.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("id")

	result, err := h.DB.Collection("bookings").UpdateOne(context.Background(),
		bson.M{"bookingID": bookingID},
		bson.M{"$set": bson.M{"status": "CANCELLED", "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "status": "CANCELLED"})
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID := c.Param("id")

	result, err := h.DB.Collection("bookings").DeleteOne(context.Background(), bson.M{"bookingID": bookingID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// --- Internal endpoints (service-to-service) ---

// GetBookingInternal returns the raw stored booking. Internal consumers get
// no enrichment: cross-service joins never chain past one hop.
func (h *BookingHandler) GetBookingInternal(c *gin.Context) {
	bookingID := c.Param("id")

	var booking models.Booking
	err := h.DB.Collection("bookings").FindOne(context.Background(), bson.M{"bookingID": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booking"})
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) GetBookingsInternal(c *gin.Context) {
	ids := splitIDs(c.Query("ids"))
	bookings := []models.Booking{}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, bookings)
		return
	}

	cursor, err := h.DB.Collection("bookings").Find(context.Background(), bson.M{"bookingID": bson.M{"$in": ids}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query bookings"})
		return
	}
	defer cursor.Close(context.Background())

	if err = cursor.All(context.Background(), &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode bookings"})
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	c.JSON(http.StatusOK, bookings)
}
