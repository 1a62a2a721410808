// Package routes assembles one gin engine per service. Public endpoints live
// under /api/v1; the /internal group is service-to-service only and is never
// routed by the gateway.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"wheelio/internal/api/handlers"
	"wheelio/internal/api/middleware"
	"wheelio/internal/clients"
	"wheelio/internal/s3"
)

func newEngine() *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func SetupUserRouter(db *mongo.Database, log *zap.Logger) *gin.Engine {
	router := newEngine()
	userHandler := &handlers.UserHandler{DB: db, Log: log}

	apiV1 := router.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/signup", userHandler.Signup)
			auth.POST("/login", userHandler.Login)
			auth.GET("/me", middleware.Authenticate(), userHandler.Me)
		}

		users := apiV1.Group("/users")
		{
			users.GET("/", userHandler.GetAllUsers)
			users.GET("/:id", userHandler.GetUserByID)
			users.POST("/:id/driver", userHandler.UpsertDriver)

			// Administrative endpoints require an ADMIN bearer token.
			admin := users.Group("/")
			admin.Use(middleware.Authenticate())
			admin.Use(middleware.Authorize("ADMIN"))
			{
				admin.PUT("/:id/role", userHandler.UpdateRole)
				admin.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		apiV1.GET("/drivers/:id", userHandler.GetDriver)
	}

	internal := router.Group("/internal")
	{
		internal.GET("/users", userHandler.GetUsersInternal)
		internal.GET("/users/:id", userHandler.GetUserInternal)
		internal.GET("/drivers", userHandler.GetDriversInternal)
		internal.GET("/drivers/:id", userHandler.GetDriverInternal)
	}

	return router
}

func SetupVehicleRouter(db *mongo.Database, log *zap.Logger) *gin.Engine {
	router := newEngine()
	vehicleHandler := &handlers.VehicleHandler{DB: db, Log: log}

	vehicles := router.Group("/api/v1/vehicles")
	{
		vehicles.GET("/", vehicleHandler.GetAllVehicles)
		vehicles.GET("/:id", vehicleHandler.GetVehicleByID)
		vehicles.POST("/", vehicleHandler.CreateVehicle)
		vehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
		vehicles.PATCH("/:id/status", vehicleHandler.SetVehicleStatus)
		vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
	}

	internal := router.Group("/internal")
	{
		internal.GET("/vehicles", vehicleHandler.GetVehiclesInternal)
		internal.GET("/vehicles/:id", vehicleHandler.GetVehicleInternal)
	}

	return router
}

func SetupBookingRouter(db *mongo.Database, users *clients.UserClient, vehicles *clients.VehicleClient, log *zap.Logger) *gin.Engine {
	router := newEngine()
	bookingHandler := &handlers.BookingHandler{DB: db, Users: users, Vehicles: vehicles, Log: log}

	bookings := router.Group("/api/v1/bookings")
	{
		bookings.GET("/", bookingHandler.GetAllBookings)
		bookings.GET("/:id", bookingHandler.GetBookingByID)
		bookings.POST("/", bookingHandler.CreateBooking)
		bookings.PATCH("/:id/status", bookingHandler.SetBookingStatus)
		bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
		bookings.DELETE("/:id", bookingHandler.DeleteBooking)
	}

	internal := router.Group("/internal")
	{
		internal.GET("/bookings", bookingHandler.GetBookingsInternal)
		internal.GET("/bookings/:id", bookingHandler.GetBookingInternal)
	}

	return router
}

func SetupPaymentRouter(db *mongo.Database, bookings *clients.BookingClient, log *zap.Logger) *gin.Engine {
	router := newEngine()
	paymentHandler := &handlers.PaymentHandler{DB: db, Bookings: bookings, Log: log}

	payments := router.Group("/api/v1/payments")
	{
		payments.GET("/", paymentHandler.GetAllPayments)
		payments.GET("/:id", paymentHandler.GetPaymentByID)
		payments.POST("/", paymentHandler.CreatePayment)
	}

	internal := router.Group("/internal")
	{
		internal.GET("/payments", paymentHandler.GetPaymentsInternal)
		internal.GET("/payments/:id", paymentHandler.GetPaymentInternal)
	}

	return router
}

func SetupDamageRouter(db *mongo.Database, users *clients.UserClient, vehicles *clients.VehicleClient, log *zap.Logger) *gin.Engine {
	router := newEngine()
	damageHandler := &handlers.DamageReportHandler{DB: db, Users: users, Vehicles: vehicles, Log: log}

	reports := router.Group("/api/v1/damage-reports")
	{
		reports.GET("/", damageHandler.GetAllDamageReports)
		reports.GET("/:id", damageHandler.GetDamageReportByID)
		reports.POST("/", damageHandler.CreateDamageReport)
		reports.PATCH("/:id", damageHandler.UpdateDamageReport)
		reports.POST("/:id/paid", damageHandler.MarkPaid)
		reports.DELETE("/:id", damageHandler.DeleteDamageReport)
	}

	internal := router.Group("/internal")
	{
		internal.GET("/damage-reports", damageHandler.GetDamageReportsInternal)
		internal.GET("/damage-reports/:id", damageHandler.GetDamageReportInternal)
	}

	return router
}

func SetupFileRouter(db *mongo.Database, storage *s3.Storage, log *zap.Logger) *gin.Engine {
	router := newEngine()
	fileHandler := &handlers.FileHandler{DB: db, Storage: storage, Log: log}

	files := router.Group("/api/v1/files")
	{
		files.POST("/", fileHandler.UploadFile)
		files.GET("/:id", fileHandler.DownloadFile)
		files.DELETE("/:id", fileHandler.DeleteFile)
	}

	return router
}
