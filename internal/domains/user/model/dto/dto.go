package dto

import (
	"tourism/internal/domains/user/model"
	"tourism/shared"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	gModel "tourism/shared/model"
	"tourism/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string  `json:"email"     validate:"required,email,max=100"`
	Password string  `json:"password"  validate:"required,min=8"`
	Role     string  `json:"role"      validate:"omitempty,oneof=admin resort_operator hotel_operator restaurant_operator landing_area_operator boat_operator customer"`
	FullName string  `json:"full_name" validate:"required,min=2,max=100"`
	Phone    *string `json:"phone"     validate:"omitempty,max=20"`
	Active   *bool   `json:"active"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleCustomer
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return model.User{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: hashedPassword,
		Role:     role,
		FullName: r.FullName,
		Phone:    r.Phone,
		Active:   active,
		Metadata: gModel.NewMetadata(username, timezone.Now()),
	}
}

type UpdateUserRequest struct {
	FullName string  `db:"full_name" json:"full_name" validate:"omitempty,min=2,max=100"`
	Role     string  `db:"role"      json:"role"      validate:"omitempty,oneof=admin resort_operator hotel_operator restaurant_operator landing_area_operator boat_operator customer"`
	Phone    *string `db:"phone"     json:"phone"     validate:"omitempty,max=20"`
	Active   *bool   `db:"active"    json:"active"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	FullName  string  `json:"full_name"`
	Phone     *string `json:"phone,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}
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
