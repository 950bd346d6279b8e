package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tourism/config"
	"tourism/infras/jwt"
	jwtMocks "tourism/infras/jwt/mocks"
	otelMocks "tourism/infras/otel/mocks"
	"tourism/permissions"
	"tourism/shared/constant"
	"tourism/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var testPermissions = &permissions.PermissionData{
	Endpoints: []permissions.Permission{
		{Path: "/v1/boats", Method: http.MethodGet, Skip: true},
		{Path: "/v1/boats", Method: http.MethodPost, Permissions: []string{constant.RoleAdmin, constant.RoleBoatOperator}},
		{Path: "/v1/bookings/{id}/accept", Method: http.MethodPost, Permissions: []string{constant.RoleAdmin, constant.RoleResortOperator}},
	},
}

// newRouter mounts the middleware the way transport/http does and echoes the
// caller's role so tests can see what Auth put in the context.
func newRouter(t *testing.T, jwtService jwt.JWT) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	mw := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), testPermissions, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
		_, _ = w.Write([]byte(role))
	}

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(mw.APIKey, mw.Auth, mw.RBAC)

		r.Get("/v1/boats", echo)
		r.Post("/v1/boats", echo)
		r.Post("/v1/bookings/{id}/accept", echo)
		r.Get("/v1/users/me", echo)
	})

	return router
}

func TestAuthAndRBAC(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		header    map[string]string
		setupMock func(j *jwtMocks.MockJWT)
		wantCode  int
		wantBody  string
	}{
		{
			name:     "public route needs no token",
			method:   http.MethodGet,
			path:     "/v1/boats",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing token",
			method:   http.MethodPost,
			path:     "/v1/boats",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodPost,
			path:     "/v1/boats",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			method: http.MethodPost,
			path:   "/v1/boats",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer expired"},
			setupMock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "incomplete claims",
			method: http.MethodPost,
			path:   "/v1/boats",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer partial"},
			setupMock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("partial", jwt.AccessToken).Return(&jwt.Claims{UserID: "u-1"}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "allowed role",
			method: http.MethodPost,
			path:   "/v1/boats",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer boat"},
			setupMock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("boat", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u-1", Email: "boat@example.com", Role: constant.RoleBoatOperator}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: constant.RoleBoatOperator,
		},
		{
			name:   "role not allowed",
			method: http.MethodPost,
			path:   "/v1/boats",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer customer"},
			setupMock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("customer", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u-2", Email: "c@example.com", Role: constant.RoleCustomer}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "path parameters match the route pattern",
			method: http.MethodPost,
			path:   "/v1/bookings/3f1c/accept",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer resort"},
			setupMock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("resort", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u-3", Email: "r@example.com", Role: constant.RoleResortOperator}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: constant.RoleResortOperator,
		},
		{
			name:   "unlisted route is open to any signed-in role",
			method: http.MethodGet,
			path:   "/v1/users/me",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer customer"},
			setupMock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken("customer", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "u-2", Email: "c@example.com", Role: constant.RoleCustomer}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: constant.RoleCustomer,
		},
		{
			name:     "internal api key bypasses auth",
			method:   http.MethodPost,
			path:     "/v1/boats",
			header:   map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong api key",
			method:   http.MethodPost,
			path:     "/v1/boats",
			header:   map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(jwtService)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newRouter(t, jwtService).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
