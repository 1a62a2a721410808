package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"wheelio/config"
	"wheelio/internal/api/routes"
	"wheelio/internal/database"
	"wheelio/internal/logger"
)

func main() {
	godotenv.Load()

	log := logger.New("vehicle-service")
	defer log.Sync()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatal("could not load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatal("could not connect to mongo", zap.Error(err))
	}
	if err := database.EnsureVehicleIndexes(db); err != nil {
		log.Fatal("could not create indexes", zap.Error(err))
	}
	if err := database.SeedVehicleCatalog(db); err != nil {
		log.Fatal("could not seed vehicle catalog", zap.Error(err))
	}

	router := routes.SetupVehicleRouter(db, log)

	log.Info("starting vehicle service", zap.String("port", cfg.Ports.Vehicle))
	if err := router.Run(":" + cfg.Ports.Vehicle); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
