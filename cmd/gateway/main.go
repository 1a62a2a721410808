package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"wheelio/config"
	"wheelio/internal/gateway"
	"wheelio/internal/logger"
)

func main() {
	godotenv.Load()

	log := logger.New("gateway")
	defer log.Sync()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatal("could not load config", zap.Error(err))
	}

	gw, err := gateway.New(cfg, log)
	if err != nil {
		log.Fatal("could not build gateway routing table", zap.Error(err))
	}

	router := gw.Router()

	log.Info("starting api gateway", zap.String("port", cfg.Ports.Gateway))
	if err := router.Run(":" + cfg.Ports.Gateway); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
