package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"wheelio/config"
	"wheelio/internal/api/routes"
	"wheelio/internal/clients"
	"wheelio/internal/database"
	"wheelio/internal/logger"
)

func main() {
	godotenv.Load()

	log := logger.New("payment-service")
	defer log.Sync()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatal("could not load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatal("could not connect to mongo", zap.Error(err))
	}
	if err := database.EnsurePaymentIndexes(db); err != nil {
		log.Fatal("could not create indexes", zap.Error(err))
	}

	bookingClient := clients.NewBookingClient(cfg.Services.BookingURL, log)

	router := routes.SetupPaymentRouter(db, bookingClient, log)

	log.Info("starting payment service", zap.String("port", cfg.Ports.Payment))
	if err := router.Run(":" + cfg.Ports.Payment); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
