package dto_test

import (
	"rentro/internal/domains/user/model"
	"rentro/internal/domains/user/model/dto"
	"rentro/shared/constant"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserResponse_FromModel(t *testing.T) {
	name := "Nguyen Van A"
	lastLogin := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)

	var res dto.UserResponse
	res.FromModel(model.User{
		ID:        "u-1",
		Email:     "a@example.com",
		Password:  "secret-hash",
		Role:      constant.RoleLandlord,
		FullName:  &name,
		LastLogin: &lastLogin,
		Active:    true,
	})

	assert.Equal(t, "u-1", res.ID)
	assert.Equal(t, constant.RoleLandlord, res.Role)
	assert.Equal(t, &name, res.FullName)
	require.NotNil(t, res.LastLogin)

	parsed, err := time.Parse(constant.DateFormat, *res.LastLogin)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(lastLogin))
}

func TestUserResponse_NoLastLogin(t *testing.T) {
	var res dto.UserResponse
	res.FromModel(model.User{ID: "u-2"})

	assert.Nil(t, res.LastLogin)
}

func TestGetUsersResponse_FromModels(t *testing.T) {
	var res dto.GetUsersResponse
	res.FromModels([]model.User{{ID: "u-1"}, {ID: "u-2"}}, 21, 10)

	assert.Equal(t, 21, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	require.Len(t, res.Users, 2)
	assert.Equal(t, "u-2", res.Users[1].ID)
}

func TestUpdateUserRequest_IsEmpty(t *testing.T) {
	active := false

	assert.True(t, dto.UpdateUserRequest{}.IsEmpty())
	assert.False(t, dto.UpdateUserRequest{Active: &active}.IsEmpty())
}
