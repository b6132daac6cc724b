// file: internals/features/users/auth/model/refresh_token_model.go
package model

import "time"

// RefreshTokenModel stores the HMAC hash of an issued refresh token,
// never the token itself. Rotation revokes the old row.
type RefreshTokenModel struct {
	RefreshTokenID        uint       `json:"refresh_token_id" gorm:"column:refresh_token_id;primaryKey;autoIncrement"`
	RefreshTokenUserID    uint       `json:"refresh_token_user_id" gorm:"column:refresh_token_user_id;not null;index:idx_refresh_tokens_user"`
	RefreshTokenJTI       string     `json:"refresh_token_jti" gorm:"column:refresh_token_jti;size:36;uniqueIndex:uq_refresh_tokens_jti"`
	RefreshTokenHash      string     `json:"-" gorm:"column:refresh_token_hash;size:64;not null;index:idx_refresh_tokens_hash"`
	RefreshTokenExpiresAt time.Time  `json:"refresh_token_expires_at" gorm:"column:refresh_token_expires_at;not null"`
	RefreshTokenRevokedAt *time.Time `json:"refresh_token_revoked_at,omitempty" gorm:"column:refresh_token_revoked_at"`

	RefreshTokenUserAgent string `json:"-" gorm:"column:refresh_token_user_agent;size:255"`
	RefreshTokenIP        string `json:"-" gorm:"column:refresh_token_ip;size:45"`

	RefreshTokenCreatedAt time.Time `json:"refresh_token_created_at" gorm:"column:refresh_token_created_at;autoCreateTime"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

func (m *RefreshTokenModel) IsUsable(now time.Time) bool {
	return m.RefreshTokenRevokedAt == nil && now.Before(m.RefreshTokenExpiresAt)
}
