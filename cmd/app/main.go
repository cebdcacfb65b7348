package main

import (
	"rentro/config"
	"rentro/di"
	"rentro/helper"
	"rentro/infras/metrics"
	"rentro/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Rentro Booking API
// @version 1.0
// @description Booking requests and the viewing-slot negotiation flow of the rental marketplace.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	if cfg.Metrics.Enable {
		metrics.Register()
	}

	http, cleanup, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	defer cleanup()

	http.Serve()
}
