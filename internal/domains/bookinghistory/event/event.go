package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"tourism/config"
	"tourism/infras/kafka"
	"tourism/infras/otel"
	"tourism/shared/constant"

	"github.com/google/uuid"
)

// BookingStatusChanged is published after a status change has been committed.
type BookingStatusChanged struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ActorID    string    `json:"actor_id"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookingStatusChanged(bookingID, from, to, actorID, reason string, at time.Time) BookingStatusChanged {
	return BookingStatusChanged{
		ID:         uuid.NewString(),
		BookingID:  bookingID,
		From:       from,
		To:         to,
		ActorID:    actorID,
		Reason:     reason,
		OccurredAt: at,
	}
}

type Publisher interface {
	PublishStatusChanged(ctx context.Context, events ...BookingStatusChanged) error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topics.BookingStatus,
		otel:   otel,
	}
}

// PublishStatusChanged keys every message by booking so one booking's
// changes stay ordered on a single partition.
func (p *kafkaPublisher) PublishStatusChanged(ctx context.Context, events ...BookingStatusChanged) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".PublishStatusChanged")
	defer scope.End()
	defer scope.TraceIfError(err)

	messages := make([]kafka.Message, len(events))
	for i, evt := range events {
		messages[i] = kafka.Message{Key: evt.BookingID, Value: evt}
	}

	if err = p.client.SendMessages(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish booking status change: %w", err)
	}

	return nil
}
