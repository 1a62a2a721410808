package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

func vehicleRouter(handler *VehicleHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/vehicles", handler.CreateVehicle)
	return router
}

// Creating a vehicle whose name is already under the unique index is a
// conflict, not a server error.
func TestCreateVehicleDuplicateName(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("duplicate name", func(mt *mtest.T) {
		mt.AddMockResponses(duplicateKeyResponse())

		handler := &VehicleHandler{DB: mt.DB, Log: zap.NewNop()}
		rec := postJSON(mt.T, vehicleRouter(handler), "/api/v1/vehicles", gin.H{
			"name":        "City Cruiser",
			"brand":       "Toyoda",
			"type":        "SEDAN",
			"pricePerDay": 120,
		})

		require.Equal(mt.T, http.StatusConflict, rec.Code)
		assert.Contains(mt.T, rec.Body.String(), "name already exists")
	})
}

func TestCreateVehicleRejectsUnknownType(t *testing.T) {
	handler := &VehicleHandler{Log: zap.NewNop()}
	rec := postJSON(t, vehicleRouter(handler), "/api/v1/vehicles", gin.H{
		"name":        "City Cruiser",
		"brand":       "Toyoda",
		"type":        "SPACESHIP",
		"pricePerDay": 120,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "SPACESHIP")
}
