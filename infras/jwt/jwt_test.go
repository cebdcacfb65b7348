package jwt_test

import (
	"rentro/config"
	"rentro/infras/jwt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "rentro"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestGenerateAndValidate(t *testing.T) {
	service := newService()

	pair, err := service.GenerateTokenPair("user-1", "tenant@example.com", "landlord")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := service.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "landlord", claims.Role)
	assert.Equal(t, "rentro", claims.Issuer)
}

func TestValidateWrongType(t *testing.T) {
	service := newService()

	pair, err := service.GenerateTokenPair("user-1", "tenant@example.com", "user")
	require.NoError(t, err)

	_, err = service.ValidateToken(pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = service.ValidateToken("garbage", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestRefreshTokenValidatesAsRefresh(t *testing.T) {
	service := newService()

	pair, err := service.GenerateTokenPair("user-1", "tenant@example.com", "user")
	require.NoError(t, err)

	claims, err := service.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.RefreshToken, claims.Type)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		token   string
		wantErr bool
	}{
		{header: "Bearer abc.def", token: "abc.def"},
		{header: "bearer abc.def", token: "abc.def"},
		{header: "", wantErr: true},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
		})
	}
}
