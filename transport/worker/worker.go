package worker

import (
	"context"
	"fmt"

	"tourism/config"
	"tourism/infras/kafka"
	historyService "tourism/internal/domains/bookinghistory/service"

	"github.com/rs/zerolog/log"
)

// Worker consumes booking status events and records them as history.
type Worker struct {
	config  *config.Config
	client  kafka.Client
	history historyService.History
}

func New(cfg *config.Config, client kafka.Client, history historyService.History) *Worker {
	return &Worker{
		config:  cfg,
		client:  client,
		history: history,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	topic := w.config.Kafka.Topics.BookingStatus

	log.Info().Str("topic", topic).Str("group", w.config.Kafka.ConsumerGroup).Msg("Starting booking status consumer.")

	defer func() {
		if err := w.client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client.")
		}
	}()

	if err := w.client.Consume(ctx, w.config.Kafka.ConsumerGroup, topic, w.history.HandleMessage); err != nil {
		return fmt.Errorf("booking status consumer stopped: %w", err)
	}

	log.Info().Msg("Booking status consumer stopped.")

	return nil
}
