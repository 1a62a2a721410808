package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"wheelio/config"
	"wheelio/internal/api/routes"
	"wheelio/internal/database"
	"wheelio/internal/logger"
	"wheelio/internal/s3"
)

func main() {
	godotenv.Load()

	log := logger.New("file-service")
	defer log.Sync()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatal("could not load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatal("could not connect to mongo", zap.Error(err))
	}

	storage, err := s3.NewStorage(cfg.S3)
	if err != nil {
		log.Fatal("could not initialize blob storage", zap.Error(err))
	}

	router := routes.SetupFileRouter(db, storage, log)

	log.Info("starting file service", zap.String("port", cfg.Ports.File))
	if err := router.Run(":" + cfg.Ports.File); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
