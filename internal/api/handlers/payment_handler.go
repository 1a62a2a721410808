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

type PaymentHandler struct {
	DB       *mongo.Database
	Bookings *clients.BookingClient
	Log      *zap.Logger
}

type CreatePaymentRequest struct {
	BookingID         string  `json:"bookingId" binding:"required"`
	ExternalPaymentID string  `json:"externalPaymentId" binding:"required"`
	ExternalOrderID   string  `json:"externalOrderId"`
	ExternalSignature string  `json:"externalSignature"`
	Amount            float64 `json:"amount" binding:"required"`
	Method            string  `json:"method"`
	Status            string  `json:"status"`
}

func (h *PaymentHandler) enrichPayment(ctx context.Context, payment models.Payment) models.EnrichedPayment {
	enriched := models.EnrichedPayment{Payment: payment}
	if booking, ok := h.Bookings.GetBooking(ctx, payment.BookingID); ok {
		enriched.Booking = booking
	}
	return enriched
}

func (h *PaymentHandler) enrichPayments(ctx context.Context, payments []models.Payment) []models.EnrichedPayment {
	enriched := make([]models.EnrichedPayment, len(payments))
	var g errgroup.Group
	for i, payment := range payments {
		i, payment := i, payment
		g.Go(func() error {
			enriched[i] = h.enrichPayment(ctx, payment)
			return nil
		})
	}
	g.Wait()
	return enriched
}

// CreatePayment records a payment already captured by the external
// processor. The referenced booking must exist at creation time.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validAmount(req.Amount, true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("amount: %s", err.Error())})
		return
	}
	status, err := models.NormalizePaymentStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := h.Bookings.GetBooking(c.Request.Context(), req.BookingID); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("booking '%s' does not exist", req.BookingID)})
		return
	}

	now := time.Now()
	newPayment := models.Payment{
		PaymentID:         fmt.Sprintf("PAY-%s", uuid.New().String()[:8]),
		BookingID:         req.BookingID,
		ExternalPaymentID: req.ExternalPaymentID,
		ExternalOrderID:   req.ExternalOrderID,
		ExternalSignature: req.ExternalSignature,
		Amount:            req.Amount,
		Method:            req.Method,
		Status:            status,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	collection := h.DB.Collection("payments")
	result, err := collection.InsertOne(context.Background(), newPayment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "A payment with this external payment id already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newPayment.ID = oid
	}

	c.JSON(http.StatusCreated, h.enrichPayment(c.Request.Context(), newPayment))
}

func (h *PaymentHandler) GetAllPayments(c *gin.Context) {
	filter := bson.M{}
	if bookingID := c.Query("bookingId"); bookingID != "" {
		filter["bookingID"] = bookingID
	}

	collection := h.DB.Collection("payments")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query payments"})
		return
	}
	defer cursor.Close(context.Background())

	var payments []models.Payment
	if err = cursor.All(context.Background(), &payments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode payments"})
		return
	}

	c.JSON(http.StatusOK, h.enrichPayments(c.Request.Context(), payments))
}

func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	paymentID := c.Param("id")

	var payment models.Payment
	err := h.DB.Collection("payments").FindOne(context.Background(), bson.M{"paymentID": paymentID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment"})
		}
		return
	}

	c.JSON(http.StatusOK, h.enrichPayment(c.Request.Context(), payment))
}

// --- Internal endpoints (service-to-service) ---

func (h *PaymentHandler) GetPaymentInternal(c *gin.Context) {
	paymentID := c.Param("id")

	var payment models.Payment
	err := h.DB.Collection("payments").FindOne(context.Background(), bson.M{"paymentID": paymentID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment"})
		}
		return
	}

	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) GetPaymentsInternal(c *gin.Context) {
	ids := splitIDs(c.Query("ids"))
	payments := []models.Payment{}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, payments)
		return
	}

	cursor, err := h.DB.Collection("payments").Find(context.Background(), bson.M{"paymentID": bson.M{"$in": ids}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query payments"})
		return
	}
	defer cursor.Close(context.Background())

	if err = cursor.All(context.Background(), &payments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode payments"})
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	c.JSON(http.StatusOK, payments)
}
