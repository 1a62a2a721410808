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

	log := logger.New("damage-service")
	defer log.Sync()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatal("could not load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatal("could not connect to mongo", zap.Error(err))
	}

	userClient := clients.NewUserClient(cfg.Services.UserURL, log)
	vehicleClient := clients.NewVehicleClient(cfg.Services.VehicleURL, log)

	router := routes.SetupDamageRouter(db, userClient, vehicleClient, log)

	log.Info("starting damage report service", zap.String("port", cfg.Ports.Damage))
	if err := router.Run(":" + cfg.Ports.Damage); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
