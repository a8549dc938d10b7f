// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type RegisterRequest struct {
	Name        string `json:"name"         validate:"required,min=1,max=100"`
	Email       string `json:"email"        validate:"omitempty,email,max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,len=10,numeric"`
	Role        string `json:"role"         validate:"required,oneof=Individual Business"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,len=10,numeric"`
}

type SendOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,len=10,numeric"`
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,len=10,numeric"`
	OTP         string `json:"otp"          validate:"required,len=6,numeric"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email,omitempty"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type LoginUser struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
}

type LoginResponse struct {
	User        LoginUser `json:"user"`
	AccessToken string    `json:"accessToken"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}
