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

type DamageReportHandler struct {
	DB       *mongo.Database
	Users    *clients.UserClient
	Vehicles *clients.VehicleClient
	Log      *zap.Logger
}

type CreateDamageReportRequest struct {
	VehicleID     string   `json:"vehicleId" binding:"required"`
	ReportedByID  string   `json:"reportedById" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Images        []string `json:"images"`
	Severity      string   `json:"severity"`
	EstimatedCost float64  `json:"estimatedCost"`
}

type UpdateDamageReportRequest struct {
	Status        *string  `json:"status"`
	Severity      *string  `json:"severity"`
	EstimatedCost *float64 `json:"estimatedCost"`
	Description   *string  `json:"description"`
}

type MarkPaidRequest struct {
	ExternalPaymentID string `json:"externalPaymentId"`
}

func (h *DamageReportHandler) enrichReport(ctx context.Context, report models.DamageReport) models.EnrichedDamageReport {
	enriched := models.EnrichedDamageReport{DamageReport: report}

	var g errgroup.Group
	g.Go(func() error {
		if vehicle, ok := h.Vehicles.GetVehicle(ctx, report.VehicleID); ok {
			enriched.Vehicle = vehicle
		}
		return nil
	})
	g.Go(func() error {
		if user, ok := h.Users.GetUser(ctx, report.ReportedByID); ok {
			enriched.ReportedBy = user
		}
		return nil
	})
	g.Wait()

	return enriched
}

func (h *DamageReportHandler) enrichReports(ctx context.Context, reports []models.DamageReport) []models.EnrichedDamageReport {
	enriched := make([]models.EnrichedDamageReport, len(reports))
	var g errgroup.Group
	for i, report := range reports {
		i, report := i, report
		g.Go(func() error {
			enriched[i] = h.enrichReport(ctx, report)
			return nil
		})
	}
	g.Wait()
	return enriched
}

// initialReportStatus promotes a report straight to ESTIMATED when a
// positive estimated cost is supplied at creation.
func initialReportStatus(estimatedCost float64) string {
	if estimatedCost > 0 {
		return "ESTIMATED"
	}
	return "OPEN"
}

// CreateDamageReport validates the vehicle and reporter in parallel. A
// positive estimated cost at creation promotes the status straight to
// ESTIMATED.
func (h *DamageReportHandler) CreateDamageReport(c *gin.Context) {
	var req CreateDamageReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	severity, err := models.NormalizeSeverity(req.Severity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validAmount(req.EstimatedCost, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("estimatedCost: %s", err.Error())})
		return
	}

	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		if _, ok := h.Vehicles.GetVehicle(gctx, req.VehicleID); !ok {
			return fmt.Errorf("vehicle '%s' does not exist", req.VehicleID)
		}
		return nil
	})
	g.Go(func() error {
		if _, ok := h.Users.GetUser(gctx, req.ReportedByID); !ok {
			return fmt.Errorf("user '%s' does not exist", req.ReportedByID)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := initialReportStatus(req.EstimatedCost)

	now := time.Now()
	newReport := models.DamageReport{
		ReportID:      fmt.Sprintf("DMG-%s", uuid.New().String()[:8]),
		VehicleID:     req.VehicleID,
		ReportedByID:  req.ReportedByID,
		Description:   req.Description,
		Images:        req.Images,
		Severity:      severity,
		Status:        status,
		EstimatedCost: req.EstimatedCost,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	collection := h.DB.Collection("damage_reports")
	result, err := collection.InsertOne(context.Background(), newReport)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create damage report"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newReport.ID = oid
	}

	c.JSON(http.StatusCreated, h.enrichReport(c.Request.Context(), newReport))
}

func (h *DamageReportHandler) GetAllDamageReports(c *gin.Context) {
	filter := bson.M{}
	if vehicleID := c.Query("vehicleId"); vehicleID != "" {
		filter["vehicleID"] = vehicleID
	}
	if status := c.Query("status"); status != "" {
		normalized, err := models.NormalizeReportStatus(status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter["status"] = normalized
	}

	collection := h.DB.Collection("damage_reports")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query damage reports"})
		return
	}
	defer cursor.Close(context.Background())

	var reports []models.DamageReport
	if err = cursor.All(context.Background(), &reports); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode damage reports"})
		return
	}

	c.JSON(http.StatusOK, h.enrichReports(c.Request.Context(), reports))
}

func (h *DamageReportHandler) GetDamageReportByID(c *gin.Context) {
	reportID := c.Param("id")

	var report models.DamageReport
	err := h.DB.Collection("damage_reports").FindOne(context.Background(), bson.M{"reportID": reportID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Damage report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve damage report"})
		}
		return
	}

	c.JSON(http.StatusOK, h.enrichReport(c.Request.Context(), report))
}

// UpdateDamageReport applies a partial update. Status, severity and
// estimated cost are settable independently with no transition guard.
func (h *DamageReportHandler) UpdateDamageReport(c *gin.Context) {
	reportID := c.Param("id")

	var req UpdateDamageReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Status != nil {
		status, err := models.NormalizeReportStatus(*req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update["status"] = status
	}
	if req.Severity != nil {
		severity, err := models.NormalizeSeverity(*req.Severity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update["severity"] = severity
	}
	if req.EstimatedCost != nil {
		if err := validAmount(*req.EstimatedCost, false); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("estimatedCost: %s", err.Error())})
			return
		}
		update["estimatedCost"] = *req.EstimatedCost
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}

	collection := h.DB.Collection("damage_reports")
	result, err := collection.UpdateOne(context.Background(), bson.M{"reportID": reportID}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update damage report"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Damage report not found"})
		return
	}

	var report models.DamageReport
	if err := collection.FindOne(context.Background(), bson.M{"reportID": reportID}).Decode(&report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve damage report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// MarkPaid unconditionally sets the status to PAID, regardless of the
// current status, optionally recording the external payment id.
func (h *DamageReportHandler) MarkPaid(c *gin.Context) {
	reportID := c.Param("id")

	// The body is optional; mark-paid with no payload is valid.
	var req MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	update := bson.M{"status": "PAID", "updatedAt": time.Now()}
	if req.ExternalPaymentID != "" {
		update["externalPaymentID"] = req.ExternalPaymentID
	}

	result, err := h.DB.Collection("damage_reports").UpdateOne(context.Background(),
		bson.M{"reportID": reportID}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark damage report paid"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Damage report not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Damage report marked paid", "status": "PAID"})
}

func (h *DamageReportHandler) DeleteDamageReport(c *gin.Context) {
	reportID := c.Param("id")

	result, err := h.DB.Collection("damage_reports").DeleteOne(context.Background(), bson.M{"reportID": reportID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete damage report"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Damage report not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Damage report deleted successfully"})
}

// --- Internal endpoints (service-to-service) ---

func (h *DamageReportHandler) GetDamageReportInternal(c *gin.Context) {
	reportID := c.Param("id")

	var report models.DamageReport
	err := h.DB.Collection("damage_reports").FindOne(context.Background(), bson.M{"reportID": reportID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Damage report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve damage report"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *DamageReportHandler) GetDamageReportsInternal(c *gin.Context) {
	ids := splitIDs(c.Query("ids"))
	reports := []models.DamageReport{}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, reports)
		return
	}

	cursor, err := h.DB.Collection("damage_reports").Find(context.Background(), bson.M{"reportID": bson.M{"$in": ids}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query damage reports"})
		return
	}
	defer cursor.Close(context.Background())

	if err = cursor.All(context.Background(), &reports); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode damage reports"})
		return
	}
	if reports == nil {
		reports = []models.DamageReport{}
	}

	c.JSON(http.StatusOK, reports)
}
