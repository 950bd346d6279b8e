package event_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tourism/config"
	"tourism/infras/kafka"
	kafkaMocks "tourism/infras/kafka/mocks"
	"tourism/infras/otel/mocks"
	"tourism/internal/domains/bookinghistory/event"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPublisher_PublishStatusChanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.BookingStatus = "booking.status"

	publisher := event.NewPublisher(client, cfg, mocks.NewOtel())
	evt := event.NewBookingStatusChanged("booking-1", "pending", "accepted", "owner-1", "", time.Now())

	t.Run("keyed by booking", func(t *testing.T) {
		client.EXPECT().SendMessages(gomock.Any(), "booking.status", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, messages ...kafka.Message) error {
				assert.Len(t, messages, 1)
				assert.Equal(t, "booking-1", messages[0].Key)

				return nil
			})

		assert.NoError(t, publisher.PublishStatusChanged(context.Background(), evt))
	})

	t.Run("broker error", func(t *testing.T) {
		client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		assert.Error(t, publisher.PublishStatusChanged(context.Background(), evt))
	})
}

func TestBookingStatusChanged_RoundTrip(t *testing.T) {
	evt := event.NewBookingStatusChanged("booking-1", "accepted", "cancelled", "cust-1", "change of plans", time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))

	msg := kafka.Message{Key: evt.BookingID, Value: evt}
	raw, err := msg.ToKafkaMessage()
	assert.NoError(t, err)

	var payload map[string]any
	assert.NoError(t, json.Unmarshal(raw.Value, &payload))
	assert.Equal(t, "change of plans", payload["reason"])

	decoded, err := kafka.DecodeKafkaMessage[event.BookingStatusChanged](kafkaGo.Message{Value: raw.Value})
	assert.NoError(t, err)
	assert.Equal(t, evt.ID, decoded.ID)
	assert.True(t, evt.OccurredAt.Equal(decoded.OccurredAt))
}
