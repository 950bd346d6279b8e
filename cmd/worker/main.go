package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tourism/config"
	"tourism/di"
	"tourism/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()

	if err := worker.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Worker exited")
	}
}
