package dto

import (
	"rentro/internal/domains/user/model"
	"rentro/shared"
	"rentro/shared/constant"
	gDto "rentro/shared/dto"
	"rentro/shared/timezone"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.Role = user.Role
	r.FullName = user.FullName
	r.Phone = user.Phone
	r.Active = user.Active
	r.Metadata.FromModel(user.Metadata)

	if user.LastLogin != nil {
		lastLogin := timezone.Format(*user.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}

// UpdateUserRequest is the admin edit of an account. Only the fields present are written.
type UpdateUserRequest struct {
	Role     *string `json:"role,omitempty"      db:"role"      validate:"omitempty,oneof=user landlord admin"`
	FullName *string `json:"full_name,omitempty" db:"full_name" validate:"omitempty,max=255"`
	Phone    *string `json:"phone,omitempty"     db:"phone"     validate:"omitempty,max=32"`
	Active   *bool   `json:"active,omitempty"    db:"active"`
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.Role == nil && r.FullName == nil && r.Phone == nil && r.Active == nil
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
