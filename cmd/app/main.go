package main

import (
	"tourism/config"
	"tourism/di"
	"tourism/helper"
	"tourism/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Tourism Booking API
// @version 1.0
// @description Bookings for resorts, hotels, restaurants, landing areas and boats, with PayMongo down payments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
