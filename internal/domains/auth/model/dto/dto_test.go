package dto_test

import (
	"rentro/infras/jwt"
	"rentro/internal/domains/auth/model/dto"
	"rentro/shared/constant"
	"rentro/shared/validator"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenResponse_FromTokenPair(t *testing.T) {
	var res dto.TokenResponse
	res.FromTokenPair(&jwt.TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900})

	assert.Equal(t, dto.TokenResponse{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900}, res)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{Email: "  Landlord@Example.com ", Password: "password123", Role: constant.RoleLandlord}

	user := req.ToUserModel("hash")

	assert.Equal(t, "landlord@example.com", user.Email)
	assert.Equal(t, constant.RoleLandlord, user.Role)
	assert.Equal(t, "hash", user.Password)
	assert.True(t, user.Active)
	assert.Equal(t, user.ID, user.CreatedBy)

	assert.Equal(t, constant.RoleUser, (&dto.RegisterRequest{}).ToUserModel("hash").Role)
}

func TestRegisterRequest_RejectsAdminRole(t *testing.T) {
	req := dto.RegisterRequest{Email: "a@example.com", Password: "password123", Role: constant.RoleAdmin}

	assert.Error(t, validator.ValidateStruct(&req))
}

func TestChangePasswordRequest_MustDiffer(t *testing.T) {
	req := dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123"}

	assert.Error(t, validator.ValidateStruct(&req))
}
