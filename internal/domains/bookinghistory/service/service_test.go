package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tourism/infras/otel/mocks"
	"tourism/internal/domains/bookinghistory/event"
	historyMocks "tourism/internal/domains/bookinghistory/mocks"
	"tourism/internal/domains/bookinghistory/model"
	"tourism/internal/domains/bookinghistory/service"
	gDto "tourism/shared/dto"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHistoryService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := historyMocks.NewMockHistory(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	evt := event.NewBookingStatusChanged("booking-1", "pending", "confirmed", "owner-1", "", time.Now())

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "new event is stored",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, history model.History) error {
					assert.Equal(t, evt.ID, history.ID)
					assert.Equal(t, "pending", history.FromStatus)
					assert.Equal(t, "confirmed", history.ToStatus)

					return nil
				})
			},
		},
		{
			name: "redelivery is ignored",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
		},
		{
			name: "insert failure is retried by the consumer",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Record(context.Background(), evt)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHistoryService_HandleMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := historyMocks.NewMockHistory(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	t.Run("malformed payload is dropped", func(t *testing.T) {
		assert.NoError(t, svc.HandleMessage(context.Background(), kafkaGo.Message{Value: []byte("{not json")}))
	})

	t.Run("valid payload is recorded", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		payload := []byte(`{"id":"evt-1","booking_id":"booking-1","from":"accepted","to":"paid","actor_id":"system","occurred_at":"2026-05-01T08:00:00Z"}`)
		assert.NoError(t, svc.HandleMessage(context.Background(), kafkaGo.Message{Value: payload}))
	})
}

func TestHistoryService_ListByBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := historyMocks.NewMockHistory(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.History, error) {
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.History{
				{ID: "h1", BookingID: "booking-1", FromStatus: "pending", ToStatus: "accepted", OccurredAt: time.Now()},
				{ID: "h2", BookingID: "booking-1", FromStatus: "accepted", ToStatus: "paid", OccurredAt: time.Now()},
			}, nil
		})

	res, err := svc.ListByBooking(context.Background(), "booking-1")
	assert.NoError(t, err)
	assert.Len(t, res.Histories, 2)
	assert.Equal(t, "paid", res.Histories[1].ToStatus)
}
