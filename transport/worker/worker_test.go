package worker_test

import (
	"context"
	"errors"
	"testing"

	"tourism/config"
	"tourism/infras/kafka"
	kafkaMocks "tourism/infras/kafka/mocks"
	historyMocks "tourism/internal/domains/bookinghistory/service/mocks"
	"tourism/transport/worker"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestWorker_Run(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "tourism-worker"
	cfg.Kafka.Topics.BookingStatus = "booking.status"

	t.Run("hands messages to the history service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := kafkaMocks.NewMockClient(ctrl)
		history := historyMocks.NewMockHistory(ctrl)

		msg := kafkaGo.Message{Key: []byte("booking-1"), Value: []byte(`{}`)}

		history.EXPECT().HandleMessage(gomock.Any(), msg).Return(nil)
		client.EXPECT().Consume(gomock.Any(), "tourism-worker", "booking.status", gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _ string, handler kafka.Handler) error {
				return handler(ctx, msg)
			})
		client.EXPECT().Close().Return(nil)

		err := worker.New(cfg, client, history).Run(context.Background())
		assert.NoError(t, err)
	})

	t.Run("consumer failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := kafkaMocks.NewMockClient(ctrl)
		history := historyMocks.NewMockHistory(ctrl)

		client.EXPECT().Consume(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("topic name cannot be empty"))
		client.EXPECT().Close().Return(nil)

		err := worker.New(cfg, client, history).Run(context.Background())
		assert.Error(t, err)
	})
}
