package permissions_test

import (
	"net/http"
	"testing"

	"tourism/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.NotEmpty(t, data.Endpoints)
	assert.False(t, data.Skip)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name     string
		path     string
		method   string
		skip     bool
		contains string
	}{
		{name: "public login", path: "/v1/auth/login", method: http.MethodPost, skip: true},
		{name: "webhook is public", path: "/v1/payments/webhook", method: http.MethodPost, skip: true},
		{name: "trailing slash collection", path: "/v1/bookings/", method: http.MethodPost, contains: "customer"},
		{name: "admin list", path: "/v1/bookings", method: http.MethodGet, contains: "admin"},
		{name: "assign boat", path: "/v1/bookings/{id}/assign-boat", method: http.MethodPost, contains: "landing_area_operator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, permission.Skip)

			if tt.contains != "" {
				assert.Contains(t, permission.Permissions, tt.contains)
			}
		})
	}

	unknown := data.FindPermissions("/v1/unknown", http.MethodGet)
	assert.Empty(t, unknown.Path)
}
