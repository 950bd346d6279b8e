package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tourism/infras/kafka"
	"tourism/infras/otel"
	"tourism/internal/domains/bookinghistory/event"
	"tourism/internal/domains/bookinghistory/model"
	"tourism/internal/domains/bookinghistory/model/dto"
	"tourism/internal/domains/bookinghistory/repository"
	"tourism/shared"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	gRepo "tourism/shared/repository"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type History interface {
	Record(ctx context.Context, evt event.BookingStatusChanged) error
	ListByBooking(ctx context.Context, bookingID string) (dto.GetHistoriesResponse, error)
	HandleMessage(ctx context.Context, msg kafkaGo.Message) error
}

type serviceImpl struct {
	repo repository.History
	otel otel.Otel
}

func New(repo repository.History, otel otel.Otel) History {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// Record appends the change once. A redelivered event is ignored.
func (s *serviceImpl) Record(ctx context.Context, evt event.BookingStatusChanged) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Record")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.repo.Exist(ctx, shared.FilterByID(evt.ID, model.FieldID, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to check history: %w", err)
	}

	if exists {
		log.Debug().Str("event_id", evt.ID).Msg("booking status change already recorded")

		return nil
	}

	if err = s.repo.Insert(ctx, dto.FromEvent(evt)); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return nil
		}

		log.Error().Err(err).Str("booking_id", evt.BookingID).Msg("failed to record booking status change")

		return fmt.Errorf("failed to record booking status change: %w", err)
	}

	return nil
}

func (s *serviceImpl) ListByBooking(ctx context.Context, bookingID string) (res dto.GetHistoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldOccurredAt, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking history")

		return res, fmt.Errorf("failed to get booking history: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

// HandleMessage is the kafka.Handler for the booking status topic. Payloads
// that cannot be decoded are dropped so they do not block the partition.
func (s *serviceImpl) HandleMessage(ctx context.Context, msg kafkaGo.Message) error {
	evt, err := kafka.DecodeKafkaMessage[event.BookingStatusChanged](msg)
	if err != nil {
		log.Warn().Err(err).Int64("offset", msg.Offset).Msg("dropping malformed booking status event")

		return nil
	}

	return s.Record(ctx, evt)
}
