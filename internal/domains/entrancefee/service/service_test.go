package service_test

import (
	"context"
	"errors"
	"testing"

	"tourism/config"
	"tourism/infras/otel/mocks"
	feeMocks "tourism/internal/domains/entrancefee/mocks"
	"tourism/internal/domains/entrancefee/model"
	"tourism/internal/domains/entrancefee/model/dto"
	"tourism/internal/domains/entrancefee/service"
	estMocks "tourism/internal/domains/establishment/mocks"
	estModel "tourism/internal/domains/establishment/model"
	cacheMocks "tourism/shared/cache/mocks"
	"tourism/shared/constant"
	"tourism/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.EntranceFee.Adult = 10000
	cfg.EntranceFee.Child = 5000
	cfg.EntranceFee.Senior = 8000
	cfg.EntranceFee.PWD = 8000

	return cfg
}

func ownerContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func setupCache(mockCache *cacheMocks.MockRedisCache) {
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func resortFees(resortID string) []model.EntranceFee {
	return []model.EntranceFee{
		{ID: "fee-child", ResortID: resortID, Tier: model.TierChild, Price: 5000},
		{ID: "fee-adult", ResortID: resortID, Tier: model.TierAdult, Price: 10000},
		{ID: "fee-pwd", ResortID: resortID, Tier: model.TierPWD, Price: 8000},
		{ID: "fee-senior", ResortID: resortID, Tier: model.TierSenior, Price: 8000},
	}
}

func TestEntranceFeeService_Seed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := feeMocks.NewMockEntranceFee(ctrl)
	mockEstRepo := estMocks.NewMockEstablishment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, mockEstRepo, testConfig(), mockCache, mocks.NewOtel())
	ctx := ownerContext("operator-id", constant.RoleResortOperator)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "seeds all tiers for a new resort",
			setupMock: func() {
				mockRepo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				mockRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, fees []model.EntranceFee) error {
						assert.Len(t, fees, len(model.Tiers))

						for _, fee := range fees {
							assert.Equal(t, "resort-1", fee.ResortID)
							assert.Equal(t, "operator-id", fee.CreatedBy)
						}

						assert.Equal(t, model.TierAdult, fees[0].Tier)
						assert.Equal(t, int64(10000), fees[0].Price)

						return nil
					})
			},
		},
		{
			name: "only missing tiers are inserted",
			setupMock: func() {
				mockRepo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.EntranceFee{
					{Tier: model.TierAdult, Price: 15000},
					{Tier: model.TierChild, Price: 1},
				}, nil)
				mockRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, fees []model.EntranceFee) error {
						assert.Len(t, fees, 2)
						assert.Equal(t, model.TierSenior, fees[0].Tier)
						assert.Equal(t, model.TierPWD, fees[1].Tier)

						return nil
					})
			},
		},
		{
			name: "complete resort is left untouched",
			setupMock: func() {
				mockRepo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(resortFees("resort-1"), nil)
			},
		},
		{
			name: "insert fails",
			setupMock: func() {
				mockRepo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				mockRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Seed(ctx, nil, "resort-1")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntranceFeeService_ListByResort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := feeMocks.NewMockEntranceFee(ctrl)
	mockEstRepo := estMocks.NewMockEstablishment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	setupCache(mockCache)

	svc := service.New(mockRepo, mockEstRepo, testConfig(), mockCache, mocks.NewOtel())

	t.Run("sorted by tier order", func(t *testing.T) {
		mockEstRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(estModel.Establishment{ID: "resort-1", Type: estModel.TypeResort}, nil)
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(resortFees("resort-1"), nil)

		res, err := svc.ListByResort(context.Background(), "resort-1")
		assert.NoError(t, err)
		assert.Len(t, res.EntranceFees, 4)

		for i, tier := range model.Tiers {
			assert.Equal(t, tier, res.EntranceFees[i].Tier)
		}

		assert.InDelta(t, 100.0, res.EntranceFees[0].PriceInPeso, 0.001)
	})

	t.Run("hotel is not a resort", func(t *testing.T) {
		mockEstRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(estModel.Establishment{ID: "hotel-1", Type: estModel.TypeHotel}, nil)

		_, err := svc.ListByResort(context.Background(), "hotel-1")
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestEntranceFeeService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := feeMocks.NewMockEntranceFee(ctrl)
	mockEstRepo := estMocks.NewMockEstablishment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	setupCache(mockCache)

	svc := service.New(mockRepo, mockEstRepo, testConfig(), mockCache, mocks.NewOtel())

	price := int64(12000)
	req := dto.UpdateEntranceFeeRequest{Price: &price}
	fee := model.EntranceFee{ID: "fee-adult", ResortID: "resort-1", Tier: model.TierAdult, Price: 10000}
	resort := estModel.Establishment{ID: "resort-1", Type: estModel.TypeResort, OwnerID: "owner-id"}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name: "owner updates price",
			ctx:  ownerContext("owner-id", constant.RoleResortOperator),
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(fee, nil)
				mockEstRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(resort, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, &price, fields[model.FieldPrice])

						return nil
					})
			},
		},
		{
			name: "admin updates price",
			ctx:  ownerContext("admin-id", constant.RoleAdmin),
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(fee, nil)
				mockEstRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(resort, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "another operator is forbidden",
			ctx:  ownerContext("other-id", constant.RoleResortOperator),
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(fee, nil)
				mockEstRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(resort, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "fee not found",
			ctx:  ownerContext("owner-id", constant.RoleResortOperator),
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.EntranceFee{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(tt.ctx, req, fee.ID)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntranceFeeService_Quote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := feeMocks.NewMockEntranceFee(ctrl)
	mockEstRepo := estMocks.NewMockEstablishment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, mockEstRepo, testConfig(), mockCache, mocks.NewOtel())

	t.Run("sums each tier", func(t *testing.T) {
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(resortFees("resort-1"), nil)

		quote, err := svc.Quote(context.Background(), "resort-1", model.GuestCounts{
			model.TierAdult: 2,
			model.TierChild: 1,
			model.TierPWD:   0,
		})
		assert.NoError(t, err)
		assert.Len(t, quote.Lines, 2)
		assert.Equal(t, int64(20000), quote.Lines[0].Subtotal)
		assert.Equal(t, int64(25000), quote.Total)
	})

	t.Run("missing tier", func(t *testing.T) {
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(resortFees("resort-1")[:1], nil)

		_, err := svc.Quote(context.Background(), "resort-1", model.GuestCounts{model.TierSenior: 1})
		assert.Error(t, err)
		assert.Equal(t, 422, failure.GetCode(err))
	})
}
