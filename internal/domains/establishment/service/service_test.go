package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"tourism/config"
	"tourism/infras/otel/mocks"
	s3Mocks "tourism/infras/s3/mocks"
	feeMocks "tourism/internal/domains/entrancefee/service/mocks"
	estMocks "tourism/internal/domains/establishment/mocks"
	"tourism/internal/domains/establishment/model"
	"tourism/internal/domains/establishment/model/dto"
	"tourism/internal/domains/establishment/service"
	userMocks "tourism/internal/domains/user/mocks"
	userModel "tourism/internal/domains/user/model"
	cacheMocks "tourism/shared/cache/mocks"
	"tourism/shared/constant"
	"tourism/shared/failure"
	gRepo "tourism/shared/repository"
	txMocks "tourism/shared/repository/mocks"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type deps struct {
	repo       *estMocks.MockEstablishment
	userRepo   *userMocks.MockUser
	fees       *feeMocks.MockEntranceFee
	transactor *txMocks.MockTransactor
	s3         *s3Mocks.MockS3
}

func setup(t *testing.T) (service.Establishment, deps) {
	ctrl := gomock.NewController(t)

	d := deps{
		repo:       estMocks.NewMockEstablishment(ctrl),
		userRepo:   userMocks.NewMockUser(ctrl),
		fees:       feeMocks.NewMockEntranceFee(ctrl),
		transactor: txMocks.NewMockTransactor(ctrl),
		s3:         s3Mocks.NewMockS3(ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.External.S3.BucketName = "tourism"

	svc := service.New(d.repo, d.userRepo, d.fees, d.transactor, cfg, mockCache, mocks.NewOtel(), d.s3)

	return svc, d
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func runInTx(d deps) {
	d.transactor.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn gRepo.TxFunc) error {
			return fn(ctx, nil)
		})
}

func TestEstablishmentService_Create(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateEstablishmentRequest
		setupMock func(d deps)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "resort operator creates resort and seeds fees",
			ctx:  userContext("resort-op", constant.RoleResortOperator),
			req:  dto.CreateEstablishmentRequest{Type: model.TypeResort, Name: "Blue Lagoon", Address: "Coron"},
			setupMock: func(d deps) {
				runInTx(d)
				d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, est model.Establishment) error {
						assert.Equal(t, "resort-op", est.OwnerID)
						assert.True(t, est.Active)

						return nil
					})
				d.fees.EXPECT().Seed(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "hotel operator creates hotel without transaction",
			ctx:  userContext("hotel-op", constant.RoleHotelOperator),
			req:  dto.CreateEstablishmentRequest{Type: model.TypeHotel, Name: "Harbor Inn", Address: "Coron"},
			setupMock: func(d deps) {
				d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "hotel operator cannot create restaurant",
			ctx:       userContext("hotel-op", constant.RoleHotelOperator),
			req:       dto.CreateEstablishmentRequest{Type: model.TypeRestaurant, Name: "Grill", Address: "Coron"},
			setupMock: func(d deps) {},
			wantErr:   true,
			wantCode:  403,
		},
		{
			name:      "admin must name an owner",
			ctx:       userContext("admin-id", constant.RoleAdmin),
			req:       dto.CreateEstablishmentRequest{Type: model.TypeHotel, Name: "Harbor Inn", Address: "Coron"},
			setupMock: func(d deps) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "admin owner with wrong role",
			ctx:  userContext("admin-id", constant.RoleAdmin),
			req:  dto.CreateEstablishmentRequest{OwnerID: "cust-id", Type: model.TypeHotel, Name: "Harbor Inn", Address: "Coron"},
			setupMock: func(d deps) {
				d.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "cust-id", Role: constant.RoleCustomer}, nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
		{
			name: "admin creates for operator",
			ctx:  userContext("admin-id", constant.RoleAdmin),
			req:  dto.CreateEstablishmentRequest{OwnerID: "hotel-op", Type: model.TypeHotel, Name: "Harbor Inn", Address: "Coron"},
			setupMock: func(d deps) {
				d.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "hotel-op", Role: constant.RoleHotelOperator}, nil)
				d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, est model.Establishment) error {
					assert.Equal(t, "hotel-op", est.OwnerID)
					assert.Equal(t, "admin-id", est.CreatedBy)

					return nil
				})
			},
		},
		{
			name: "seed failure discards uploaded image",
			ctx:  userContext("resort-op", constant.RoleResortOperator),
			req: dto.CreateEstablishmentRequest{
				Type: model.TypeResort, Name: "Blue Lagoon", Address: "Coron",
				Image: &multipart.FileHeader{Filename: "cover.PNG"},
			},
			setupMock: func(d deps) {
				d.s3.EXPECT().UploadFile(gomock.Any(), "tourism", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/establishment/x.png", nil)
				runInTx(d)
				d.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				d.fees.EXPECT().Seed(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("seed failed"))
				d.s3.EXPECT().DeleteFile(gomock.Any(), "tourism", model.EntityName, gomock.Any()).Return(nil)
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := setup(t)
			tt.setupMock(d)

			id, err := svc.Create(tt.ctx, tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, id)
			}
		})
	}
}

func TestEstablishmentService_Update(t *testing.T) {
	current := model.Establishment{
		ID:      "est-1",
		OwnerID: "hotel-op",
		Type:    model.TypeHotel,
		Image:   "https://cdn.example.com/establishment/old.png",
	}

	t.Run("owner replaces image", func(t *testing.T) {
		svc, d := setup(t)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		d.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/establishment/new.png", nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, "https://cdn.example.com/establishment/new.png", fields[model.FieldImage])

				return nil
			})
		d.s3.EXPECT().GetObjectNameFromURL("tourism", current.Image).Return("establishment/old.png")
		d.s3.EXPECT().DeleteFile(gomock.Any(), "tourism", model.EntityName, "old.png").Return(nil)

		err := svc.Update(userContext("hotel-op", constant.RoleHotelOperator), dto.UpdateEstablishmentRequest{
			Image: &multipart.FileHeader{Filename: "new.png"},
		}, "est-1")
		assert.NoError(t, err)
	})

	t.Run("other operator is rejected", func(t *testing.T) {
		svc, d := setup(t)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		err := svc.Update(userContext("other-op", constant.RoleHotelOperator), dto.UpdateEstablishmentRequest{Name: "New"}, "est-1")
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("empty update", func(t *testing.T) {
		svc, d := setup(t)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		err := svc.Update(userContext("admin-id", constant.RoleAdmin), dto.UpdateEstablishmentRequest{}, "est-1")
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		svc, d := setup(t)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Establishment{}, nil)

		err := svc.Update(userContext("admin-id", constant.RoleAdmin), dto.UpdateEstablishmentRequest{Name: "New"}, "est-1")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestEstablishmentService_Delete(t *testing.T) {
	current := model.Establishment{ID: "est-1", OwnerID: "hotel-op", Type: model.TypeHotel}

	t.Run("owner deletes", func(t *testing.T) {
		svc, d := setup(t)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		d.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(userContext("hotel-op", constant.RoleHotelOperator), "est-1"))
	})

	t.Run("referenced by bookings", func(t *testing.T) {
		svc, d := setup(t)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		d.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		err := svc.Delete(userContext("admin-id", constant.RoleAdmin), "est-1")
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestEstablishmentService_Get(t *testing.T) {
	svc, d := setup(t)

	d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Establishment{ID: "est-1", Name: "Harbor Inn"}, nil)

	res, err := svc.Get(context.Background(), "est-1")
	assert.NoError(t, err)
	assert.Equal(t, "Harbor Inn", res.Name)
}
