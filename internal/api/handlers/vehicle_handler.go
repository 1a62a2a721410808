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

	"wheelio/internal/models"
)

type VehicleHandler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

type CreateVehicleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Brand       string   `json:"brand" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	PricePerDay float64  `json:"pricePerDay" binding:"required"`
	Location    string   `json:"location"`
	Status      string   `json:"status"`
	Image       string   `json:"image"`
	Features    []string `json:"features"`
	Description string   `json:"description"`
}

type UpdateVehicleRequest struct {
	Brand       *string   `json:"brand"`
	Type        *string   `json:"type"`
	PricePerDay *float64  `json:"pricePerDay"`
	Location    *string   `json:"location"`
	Status      *string   `json:"status"`
	Image       *string   `json:"image"`
	Features    *[]string `json:"features"`
	Description *string   `json:"description"`
}

type VehicleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicleType, err := models.NormalizeVehicleType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := models.NormalizeVehicleStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validAmount(req.PricePerDay, true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("pricePerDay: %s", err.Error())})
		return
	}

	now := time.Now()
	newVehicle := models.Vehicle{
		VehicleID:   fmt.Sprintf("VEH-%s", uuid.New().String()[:8]),
		Name:        req.Name,
		Brand:       req.Brand,
		Type:        vehicleType,
		PricePerDay: req.PricePerDay,
		Location:    req.Location,
		Status:      status,
		Image:       req.Image,
		Features:    req.Features,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	collection := h.DB.Collection("vehicles")
	result, err := collection.InsertOne(context.Background(), newVehicle)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "A vehicle with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newVehicle.ID = oid
	}

	c.JSON(http.StatusCreated, newVehicle)
}

// GetAllVehicles lists vehicles, optionally filtered by status, type,
// location or brand query parameters.
func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		normalized, err := models.NormalizeVehicleStatus(status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter["status"] = normalized
	}
	if vehicleType := c.Query("type"); vehicleType != "" {
		normalized, err := models.NormalizeVehicleType(vehicleType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter["type"] = normalized
	}
	if location := c.Query("location"); location != "" {
		filter["location"] = location
	}
	if brand := c.Query("brand"); brand != "" {
		filter["brand"] = brand
	}

	collection := h.DB.Collection("vehicles")
	cursor, err := collection.Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query vehicles"})
		return
	}
	defer cursor.Close(context.Background())

	var vehicles []models.Vehicle
	if err = cursor.All(context.Background(), &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode vehicles"})
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) GetVehicleByID(c *gin.Context) {
	vehicleID := c.Param("id")

	var vehicle models.Vehicle
	err := h.DB.Collection("vehicles").FindOne(context.Background(), bson.M{"vehicleID": vehicleID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicle"})
		}
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle applies a partial update; only the supplied fields change.
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	vehicleID := c.Param("id")

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Brand != nil {
		update["brand"] = *req.Brand
	}
	if req.Type != nil {
		vehicleType, err := models.NormalizeVehicleType(*req.Type)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update["type"] = vehicleType
	}
	if req.PricePerDay != nil {
		if err := validAmount(*req.PricePerDay, true); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("pricePerDay: %s", err.Error())})
			return
		}
		update["pricePerDay"] = *req.PricePerDay
	}
	if req.Location != nil {
		update["location"] = *req.Location
	}
	if req.Status != nil {
		status, err := models.NormalizeVehicleStatus(*req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update["status"] = status
	}
	if req.Image != nil {
		update["image"] = *req.Image
	}
	if req.Features != nil {
		update["features"] = *req.Features
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}

	collection := h.DB.Collection("vehicles")
	result, err := collection.UpdateOne(context.Background(), bson.M{"vehicleID": vehicleID}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	var vehicle models.Vehicle
	if err := collection.FindOne(context.Background(), bson.M{"vehicleID": vehicleID}).Decode(&vehicle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicle"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// SetVehicleStatus sets the status directly. Any valid value may replace any
// other; there is no transition graph.
func (h *VehicleHandler) SetVehicleStatus(c *gin.Context) {
	vehicleID := c.Param("id")

	var req VehicleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := models.NormalizeVehicleStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Collection("vehicles").UpdateOne(context.Background(),
		bson.M{"vehicleID": vehicleID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle status"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle status updated", "status": status})
}

func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	vehicleID := c.Param("id")

	result, err := h.DB.Collection("vehicles").DeleteOne(context.Background(), bson.M{"vehicleID": vehicleID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}

// --- Internal endpoints (service-to-service) ---

func (h *VehicleHandler) GetVehicleInternal(c *gin.Context) {
	vehicleID := c.Param("id")

	var vehicle models.Vehicle
	err := h.DB.Collection("vehicles").FindOne(context.Background(), bson.M{"vehicleID": vehicleID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicle"})
		}
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) GetVehiclesInternal(c *gin.Context) {
	ids := splitIDs(c.Query("ids"))
	vehicles := []models.Vehicle{}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, vehicles)
		return
	}

	cursor, err := h.DB.Collection("vehicles").Find(context.Background(), bson.M{"vehicleID": bson.M{"$in": ids}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query vehicles"})
		return
	}
	defer cursor.Close(context.Background())

	if err = cursor.All(context.Background(), &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode vehicles"})
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	c.JSON(http.StatusOK, vehicles)
}
