package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"wheelio/internal/auth"
	"wheelio/internal/models"
)

type UserHandler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UpsertDriverRequest struct {
	LicenseNumber string            `json:"licenseNumber"`
	Rating        *float64          `json:"rating"`
	Status        string            `json:"status"`
	Documents     map[string]string `json:"documents"`
}

// Signup creates a user and returns a bearer token plus the public view.
func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	newUser := models.User{
		UserID:    fmt.Sprintf("USR-%s", uuid.New().String()[:8]),
		Email:     strings.ToLower(req.Email),
		Password:  hashedPassword,
		FullName:  req.FullName,
		Role:      "USER",
		Phone:     req.Phone,
		City:      req.City,
		CreatedAt: now,
		UpdatedAt: now,
	}

	collection := h.DB.Collection("users")
	result, err := collection.InsertOne(context.Background(), newUser)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "A user with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newUser.ID = oid
	}

	token, err := auth.GenerateJWT(newUser.UserID, newUser.Email, newUser.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": newUser})
}

// Login verifies credentials and returns a fresh token.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("users")
	var user models.User
	err := collection.FindOne(context.Background(), bson.M{"email": strings.ToLower(req.Email)}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(user.UserID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me re-fetches the current user by the token subject. A valid token whose
// subject no longer exists is an auth error, not a 404.
func (h *UserHandler) Me(c *gin.Context) {
	email := c.GetString("user_email")

	collection := h.DB.Collection("users")
	var user models.User
	err := collection.FindOne(context.Background(), bson.M{"email": email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	collection := h.DB.Collection("users")

	cursor, err := collection.Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}
	defer cursor.Close(context.Background())

	var users []models.User
	if err = cursor.All(context.Background(), &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}
	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID := c.Param("id")

	collection := h.DB.Collection("users")
	var user models.User
	err := collection.FindOne(context.Background(), bson.M{"userID": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateRole sets a user's role. Admin only.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	userID := c.Param("id")

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := models.NormalizeRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("users")
	result, err := collection.UpdateOne(context.Background(),
		bson.M{"userID": userID},
		bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully", "role": role})
}

// DeleteUser removes a user and any driver profile attached to it.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	result, err := h.DB.Collection("users").DeleteOne(context.Background(), bson.M{"userID": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if _, err := h.DB.Collection("driver_profiles").DeleteOne(context.Background(), bson.M{"userID": userID}); err != nil {
		h.Log.Warn("failed to delete driver profile with user", zap.String("userID", userID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// UpsertDriver promotes a user to driver. Idempotent by user id: a second
// call updates the existing profile's mutable fields instead of creating
// another one, and fields absent from the payload are left untouched.
func (h *UserHandler) UpsertDriver(c *gin.Context) {
	userID := c.Param("id")

	var req UpsertDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := "ACTIVE"
	if req.Status != "" {
		normalized, err := models.NormalizeDriverStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status = normalized
	}

	users := h.DB.Collection("users")
	var user models.User
	if err := users.FindOne(context.Background(), bson.M{"userID": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	profiles := h.DB.Collection("driver_profiles")
	now := time.Now()

	// Mutable fields: only the ones the payload carries are written, so a
	// bare re-promote never resets an existing profile.
	update := bson.M{"updatedAt": now}
	if req.Status != "" {
		update["status"] = status
	}
	if req.LicenseNumber != "" {
		update["licenseNumber"] = req.LicenseNumber
	}
	if req.Rating != nil {
		update["rating"] = *req.Rating
	}
	if req.Documents != nil {
		update["documents"] = req.Documents
	}

	err := profiles.FindOne(context.Background(), bson.M{"userID": userID}).Err()
	switch err {
	case nil:
		if !h.updateDriverProfile(c, userID, update) {
			return
		}
	case mongo.ErrNoDocuments:
		license := req.LicenseNumber
		if license == "" {
			// Placeholder derived from the user id; real license comes later
			// with the document upload.
			license = fmt.Sprintf("LIC-%s", strings.TrimPrefix(userID, "USR-"))
		}
		rating := 5.0
		if req.Rating != nil {
			rating = *req.Rating
		}
		profile := models.DriverProfile{
			UserID:        userID,
			LicenseNumber: license,
			Rating:        rating,
			Status:        status,
			Documents:     req.Documents,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if _, err := profiles.InsertOne(context.Background(), profile); err != nil {
			if !mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver profile"})
				return
			}
			// The duplicate can come from either unique index. A concurrent
			// promote that won the insert leaves a profile for this user;
			// update that one instead of reporting a conflict.
			if profiles.FindOne(context.Background(), bson.M{"userID": userID}).Err() != nil {
				c.JSON(http.StatusConflict, gin.H{"error": "A driver with this license number already exists"})
				return
			}
			if !h.updateDriverProfile(c, userID, update) {
				return
			}
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up driver profile"})
		return
	}

	if user.Role != "DRIVER" {
		if _, err := users.UpdateOne(context.Background(), bson.M{"userID": userID},
			bson.M{"$set": bson.M{"role": "DRIVER", "updatedAt": now}}); err != nil {
			h.Log.Warn("failed to promote user role to driver", zap.String("userID", userID), zap.Error(err))
		}
	}

	var profile models.DriverProfile
	if err := profiles.FindOne(context.Background(), bson.M{"userID": userID}).Decode(&profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve driver profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// updateDriverProfile applies the supplied mutable fields to the profile
// keyed by userID. Returns false when it has already written an error
// response.
func (h *UserHandler) updateDriverProfile(c *gin.Context, userID string, update bson.M) bool {
	_, err := h.DB.Collection("driver_profiles").UpdateOne(context.Background(), bson.M{"userID": userID}, bson.M{"$set": update})
	if err == nil {
		return true
	}
	if mongo.IsDuplicateKeyError(err) {
		c.JSON(http.StatusConflict, gin.H{"error": "A driver with this license number already exists"})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver profile"})
	}
	return false
}

// GetDriver returns a driver profile with its user view embedded.
func (h *UserHandler) GetDriver(c *gin.Context) {
	userID := c.Param("id")

	var profile models.DriverProfile
	err := h.DB.Collection("driver_profiles").FindOne(context.Background(), bson.M{"userID": userID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve driver"})
		}
		return
	}

	var user models.User
	if err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"userID": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusOK, gin.H{"profile": profile, "user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile, "user": user})
}

// --- Internal endpoints (service-to-service) ---

func (h *UserHandler) GetUserInternal(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"userID": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetUsersInternal(c *gin.Context) {
	ids := splitIDs(c.Query("ids"))
	users := []models.User{}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, users)
		return
	}

	cursor, err := h.DB.Collection("users").Find(context.Background(), bson.M{"userID": bson.M{"$in": ids}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}
	defer cursor.Close(context.Background())

	if err = cursor.All(context.Background(), &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}
	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetDriverInternal(c *gin.Context) {
	userID := c.Param("id")

	var profile models.DriverProfile
	err := h.DB.Collection("driver_profiles").FindOne(context.Background(), bson.M{"userID": userID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve driver"})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) GetDriversInternal(c *gin.Context) {
	ids := splitIDs(c.Query("ids"))
	profiles := []models.DriverProfile{}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, profiles)
		return
	}

	cursor, err := h.DB.Collection("driver_profiles").Find(context.Background(), bson.M{"userID": bson.M{"$in": ids}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query drivers"})
		return
	}
	defer cursor.Close(context.Background())

	if err = cursor.All(context.Background(), &profiles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode drivers"})
		return
	}
	if profiles == nil {
		profiles = []models.DriverProfile{}
	}

	c.JSON(http.StatusOK, profiles)
}
