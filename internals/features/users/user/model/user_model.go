package model

import (
	"time"
)

// UserModel represents the users table. user_total_score and
// user_current_stage_id are aggregates mutated only as a side effect
// of a successful evaluation submission.
type UserModel struct {
	UserID             uint      `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	UserName           string    `gorm:"column:user_name;size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	UserEmail          string    `gorm:"column:user_email;size:255;unique;not null" json:"user_email" validate:"required,email"`
	UserPassword       string    `gorm:"column:user_password;not null" json:"-" validate:"required,min=8"`
	UserRole           string    `gorm:"column:user_role;type:varchar(20);not null;default:'user'" json:"-"`
	UserTotalScore     int       `gorm:"column:user_total_score;not null;default:0" json:"user_total_score"`
	UserCurrentStageID *uint     `gorm:"column:user_current_stage_id" json:"user_current_stage_id,omitempty"`
	UserIsActive       bool      `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`
	UserCreatedAt      time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt      time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues normalizes fields before insert
func (u *UserModel) SetDefaultValues() {
	if u.UserRole == "" {
		u.UserRole = "user"
	}
}
