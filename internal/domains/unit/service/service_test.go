package service_test

import (
	"context"
	"errors"
	"testing"

	"tourism/config"
	"tourism/infras/otel/mocks"
	s3Mocks "tourism/infras/s3/mocks"
	estMocks "tourism/internal/domains/establishment/mocks"
	estModel "tourism/internal/domains/establishment/model"
	unitMocks "tourism/internal/domains/unit/mocks"
	"tourism/internal/domains/unit/model"
	"tourism/internal/domains/unit/model/dto"
	"tourism/internal/domains/unit/service"
	cacheMocks "tourism/shared/cache/mocks"
	"tourism/shared/constant"
	"tourism/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func setup(t *testing.T) (service.Unit, *unitMocks.MockUnit, *estMocks.MockEstablishment) {
	ctrl := gomock.NewController(t)

	mockRepo := unitMocks.NewMockUnit(ctrl)
	mockEstRepo := estMocks.NewMockEstablishment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockEstRepo, &config.Config{}, mockCache, mocks.NewOtel(), s3Mocks.NewMockS3(ctrl))

	return svc, mockRepo, mockEstRepo
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, model.KindRoom, model.KindFor(estModel.TypeResort))
	assert.Equal(t, model.KindRoom, model.KindFor(estModel.TypeHotel))
	assert.Equal(t, model.KindTable, model.KindFor(estModel.TypeRestaurant))
	assert.Equal(t, model.KindService, model.KindFor(estModel.TypeLandingArea))
	assert.Empty(t, model.KindFor("boat"))
}

func TestUnitService_Create(t *testing.T) {
	price := int64(350000)
	restaurant := estModel.Establishment{ID: "est-1", OwnerID: "rest-op", Type: estModel.TypeRestaurant}

	tests := []struct {
		name     string
		ctx      context.Context
		setup    func(repo *unitMocks.MockUnit, est *estMocks.MockEstablishment)
		wantCode int
		wantErr  bool
	}{
		{
			name: "kind follows establishment type",
			ctx:  userContext("rest-op", constant.RoleRestaurantOperator),
			setup: func(repo *unitMocks.MockUnit, est *estMocks.MockEstablishment) {
				est.EXPECT().Get(gomock.Any(), gomock.Any()).Return(restaurant, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, unit model.Unit) error {
					assert.Equal(t, model.KindTable, unit.Kind)
					assert.Equal(t, model.StatusAvailable, unit.Status)
					assert.Equal(t, price, unit.Price)

					return nil
				})
			},
		},
		{
			name: "not the owner",
			ctx:  userContext("someone", constant.RoleRestaurantOperator),
			setup: func(_ *unitMocks.MockUnit, est *estMocks.MockEstablishment) {
				est.EXPECT().Get(gomock.Any(), gomock.Any()).Return(restaurant, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "establishment missing",
			ctx:  userContext("admin-id", constant.RoleAdmin),
			setup: func(_ *unitMocks.MockUnit, est *estMocks.MockEstablishment) {
				est.EXPECT().Get(gomock.Any(), gomock.Any()).Return(estModel.Establishment{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, est := setup(t)
			tt.setup(repo, est)

			_, err := svc.Create(tt.ctx, dto.CreateUnitRequest{
				EstablishmentID: "est-1",
				Name:            "Table 4",
				Capacity:        4,
				Price:           &price,
			})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUnitService_Update(t *testing.T) {
	unit := model.Unit{ID: "unit-1", EstablishmentID: "est-1", Status: model.StatusAvailable}
	hotel := estModel.Establishment{ID: "est-1", OwnerID: "hotel-op", Type: estModel.TypeHotel}

	t.Run("owner marks unit unavailable", func(t *testing.T) {
		svc, repo, est := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unit, nil)
		est.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotel, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusUnavailable, fields[model.FieldStatus])

				return nil
			})

		err := svc.Update(userContext("hotel-op", constant.RoleHotelOperator), dto.UpdateUnitRequest{Status: model.StatusUnavailable}, "unit-1")
		assert.NoError(t, err)
	})

	t.Run("unit missing", func(t *testing.T) {
		svc, repo, _ := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Unit{}, nil)

		err := svc.Update(userContext("hotel-op", constant.RoleHotelOperator), dto.UpdateUnitRequest{Name: "x"}, "unit-1")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestUnitService_Delete(t *testing.T) {
	svc, repo, est := setup(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Unit{ID: "unit-1", EstablishmentID: "est-1"}, nil)
	est.EXPECT().Get(gomock.Any(), gomock.Any()).Return(estModel.Establishment{ID: "est-1", OwnerID: "hotel-op"}, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, svc.Delete(userContext("admin-id", constant.RoleAdmin), "unit-1"))
}
