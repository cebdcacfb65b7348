package permissions_test

import (
	"net/http"
	"rentro/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name         string
		path         string
		method       string
		expectedSkip bool
		expectedRole []string
	}{
		{name: "login skips auth", path: "/v1/auth/login", method: http.MethodPost, expectedSkip: true, expectedRole: []string{}},
		{name: "accept is landlord only", path: "/v1/request/{id}/accept", method: http.MethodPut, expectedRole: []string{"landlord", "admin"}},
		{name: "landlord view", path: "/v1/booking/landlord/posts/{postID}", method: http.MethodGet, expectedRole: []string{"landlord", "admin"}},
		{name: "user listing is admin only", path: "/v1/users/", method: http.MethodGet, expectedRole: []string{"admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.expectedSkip, permission.Skip)
			assert.Equal(t, tt.expectedRole, permission.Permissions)
		})
	}

	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/unknown", http.MethodGet))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{
			name: "valid table",
			raw:  `{"endpoints":[{"path":"/v1/request/{id}/accept","method":"PUT","permissions":["landlord","admin"]}]}`,
		},
		{
			name:    "unknown role",
			raw:     `{"endpoints":[{"path":"/v1/request/{id}/accept","method":"PUT","permissions":["owner"]}]}`,
			wantErr: permissions.ErrUnknownRole,
		},
		{
			name:    "unknown method",
			raw:     `{"endpoints":[{"path":"/v1/booking/slots","method":"FETCH","permissions":[]}]}`,
			wantErr: permissions.ErrUnknownMethod,
		},
		{
			name: "duplicate endpoint",
			raw: `{"endpoints":[
				{"path":"/v1/users/","method":"GET","permissions":["admin"]},
				{"path":"/v1/users/","method":"get","permissions":["admin"]}]}`,
			wantErr: permissions.ErrDuplicate,
		},
		{
			name:    "skip with roles",
			raw:     `{"endpoints":[{"path":"/v1/auth/login","method":"POST","skip":true,"permissions":["user"]}]}`,
			wantErr: permissions.ErrSkipWithRoles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := permissions.Parse([]byte(tt.raw))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, data)

				return
			}

			require.NoError(t, err)
			assert.Len(t, data.Endpoints, 1)
		})
	}
}

func TestPermission_Allows(t *testing.T) {
	landlordOnly := permissions.Permission{Permissions: []string{"landlord", "admin"}}

	assert.True(t, landlordOnly.Allows("landlord"))
	assert.True(t, landlordOnly.Allows("admin"))
	assert.False(t, landlordOnly.Allows("user"))
	assert.False(t, landlordOnly.Allows(""))
	assert.True(t, permissions.Permission{}.Allows("user"))
	assert.True(t, permissions.Permission{Skip: true}.Allows(""))
}
