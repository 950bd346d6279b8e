package service_test

import (
	"context"
	"errors"
	"testing"

	"tourism/config"
	"tourism/infras/otel/mocks"
	userMocks "tourism/internal/domains/user/mocks"
	"tourism/internal/domains/user/model"
	"tourism/internal/domains/user/model/dto"
	"tourism/internal/domains/user/service"
	cacheMocks "tourism/shared/cache/mocks"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func setupCache(mockCache *cacheMocks.MockRedisCache) {
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestUserService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	setupCache(mockCache)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	req := dto.CreateUserRequest{
		Email:    "operator@example.com",
		Password: "password123",
		Role:     constant.RoleResortOperator,
		FullName: "Resort Operator",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name: "success",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user model.User) error {
					assert.Equal(t, constant.RoleResortOperator, user.Role)
					assert.Equal(t, "admin-id", user.CreatedBy)
					assert.NotEqual(t, req.Password, user.Password)

					return nil
				})
			},
		},
		{
			name: "email already registered",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "exist check fails",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantErr:  true,
			wantCode: 500,
		},
		{
			name: "insert fails",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert error"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(adminContext(), req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	setupCache(mockCache)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	t.Run("found", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{
			ID:       "user-1",
			Email:    "customer@example.com",
			Role:     constant.RoleCustomer,
			FullName: "Customer",
			Active:   true,
		}, nil)

		res, err := svc.Get(adminContext(), "user-1")
		assert.NoError(t, err)
		assert.Equal(t, "customer@example.com", res.Email)
		assert.Equal(t, constant.RoleCustomer, res.Role)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(adminContext(), "missing")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestUserService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	setupCache(mockCache)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	_, err := svc.Me(context.Background())
	assert.Equal(t, 401, failure.GetCode(err))

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "admin-id", Role: constant.RoleAdmin}, nil)

	res, err := svc.Me(adminContext())
	assert.NoError(t, err)
	assert.Equal(t, "admin-id", res.ID)
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	setupCache(mockCache)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	inactive := false

	tests := []struct {
		name      string
		id        string
		req       dto.UpdateUserRequest
		setupMock func()
		wantCode  int
	}{
		{
			name:      "empty request",
			id:        "user-1",
			req:       dto.UpdateUserRequest{},
			setupMock: func() {},
			wantCode:  400,
		},
		{
			name: "not found",
			id:   "user-1",
			req:  dto.UpdateUserRequest{FullName: "New Name"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: 404,
		},
		{
			name: "cannot deactivate self",
			id:   "admin-id",
			req:  dto.UpdateUserRequest{Active: &inactive},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: 400,
		},
		{
			name: "role change",
			id:   "user-1",
			req:  dto.UpdateUserRequest{Role: constant.RoleBoatOperator},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, constant.RoleBoatOperator, fields[model.FieldRole])
						assert.Equal(t, "admin-id", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(adminContext(), tt.req, tt.id)
			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	setupCache(mockCache)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	err := svc.Delete(adminContext(), "admin-id")
	assert.Equal(t, 400, failure.GetCode(err))

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, svc.Delete(adminContext(), "user-1"))
}
