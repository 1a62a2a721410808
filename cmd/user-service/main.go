package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"wheelio/config"
	"wheelio/internal/api/routes"
	"wheelio/internal/auth"
	"wheelio/internal/database"
	"wheelio/internal/logger"
)

func main() {
	godotenv.Load()

	log := logger.New("user-service")
	defer log.Sync()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatal("could not load config", zap.Error(err))
	}

	if err := auth.Init(cfg.JWT); err != nil {
		log.Fatal("could not initialize auth", zap.Error(err))
	}

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatal("could not connect to mongo", zap.Error(err))
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Fatal("could not create indexes", zap.Error(err))
	}
	if err := database.SeedAdminUser(db); err != nil {
		log.Fatal("could not seed admin user", zap.Error(err))
	}

	router := routes.SetupUserRouter(db, log)

	log.Info("starting user service", zap.String("port", cfg.Ports.User))
	if err := router.Run(":" + cfg.Ports.User); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
