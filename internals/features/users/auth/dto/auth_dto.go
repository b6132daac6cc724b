// file: internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"strings"
	"time"

	userModel "levelearn_backend/internals/features/users/user/model"
)

type RegisterRequest struct {
	Name     string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"user_email" validate:"required,email,max=255"`
	Password string `json:"user_password" validate:"required,min=8,max=72"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginRequest struct {
	Email    string `json:"user_email" validate:"required,email"`
	Password string `json:"user_password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type AuthUser struct {
	UserID             uint   `json:"user_id"`
	UserName           string `json:"user_name"`
	UserEmail          string `json:"user_email"`
	UserRole           string `json:"user_role"`
	UserTotalScore     int    `json:"user_total_score"`
	UserCurrentStageID *uint  `json:"user_current_stage_id,omitempty"`
}

type AuthResponse struct {
	User        AuthUser  `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func FromUserModel(u userModel.UserModel) AuthUser {
	return AuthUser{
		UserID:             u.UserID,
		UserName:           u.UserName,
		UserEmail:          u.UserEmail,
		UserRole:           u.UserRole,
		UserTotalScore:     u.UserTotalScore,
		UserCurrentStageID: u.UserCurrentStageID,
	}
}
