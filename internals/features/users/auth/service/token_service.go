// file: internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"levelearn_backend/internals/configs"
	authModel "levelearn_backend/internals/features/users/auth/model"
	userModel "levelearn_backend/internals/features/users/user/model"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

/* =========================================================
   ISSUING
========================================================= */

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// IssueTokenPair signs a short-lived access JWT plus a refresh JWT and
// stores the refresh token's HMAC hash for rotation checks.
func IssueTokenPair(db *gorm.DB, user *userModel.UserModel, userAgent, ip string) (*TokenPair, error) {
	if configs.JWTSecret == "" || configs.JWTRefreshSecret == "" {
		return nil, errors.New("jwt secrets are not configured")
	}

	now := time.Now().UTC()
	accessExp := now.Add(accessTTL)

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":        user.UserID,
		"role":      user.UserRole,
		"user_name": user.UserName,
		"iat":       now.Unix(),
		"exp":       accessExp.Unix(),
	}).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return nil, err
	}

	jti := uuid.NewString()
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.UserID,
		"jti": jti,
		"iat": now.Unix(),
		"exp": now.Add(refreshTTL).Unix(),
	}).SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return nil, err
	}

	row := authModel.RefreshTokenModel{
		RefreshTokenUserID:    user.UserID,
		RefreshTokenJTI:       jti,
		RefreshTokenHash:      ComputeRefreshHash(refresh),
		RefreshTokenExpiresAt: now.Add(refreshTTL),
		RefreshTokenUserAgent: userAgent,
		RefreshTokenIP:        ip,
	}
	if err := db.Create(&row).Error; err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: accessExp}, nil
}

/* =========================================================
   ROTATION
========================================================= */

// RotateRefreshToken validates a presented refresh token, revokes its
// stored row, and issues a fresh pair for the same user. An unusable
// row (revoked or expired) rejects the rotation.
func RotateRefreshToken(db *gorm.DB, raw, userAgent, ip string) (*TokenPair, *userModel.UserModel, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return nil, nil, errors.New("refresh token invalid")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, errors.New("refresh token invalid")
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, nil, errors.New("refresh token invalid")
	}
	userID := uint(sub)

	now := time.Now().UTC()
	hash := ComputeRefreshHash(raw)

	var row authModel.RefreshTokenModel
	if err := db.
		Where("refresh_token_hash = ? AND refresh_token_user_id = ?", hash, userID).
		First(&row).Error; err != nil {
		return nil, nil, errors.New("refresh token unknown")
	}
	if !row.IsUsable(now) {
		return nil, nil, errors.New("refresh token revoked or expired")
	}

	var user userModel.UserModel
	if err := db.First(&user, "user_id = ? AND user_is_active = TRUE", userID).Error; err != nil {
		return nil, nil, errors.New("account unavailable")
	}

	if err := db.Model(&authModel.RefreshTokenModel{}).
		Where("refresh_token_id = ?", row.RefreshTokenID).
		Update("refresh_token_revoked_at", now).Error; err != nil {
		return nil, nil, err
	}

	pair, err := IssueTokenPair(db, &user, userAgent, ip)
	if err != nil {
		return nil, nil, err
	}
	return pair, &user, nil
}

// RevokeAllForUser invalidates every live refresh token of a user,
// used on logout.
func RevokeAllForUser(db *gorm.DB, userID uint) error {
	return db.Model(&authModel.RefreshTokenModel{}).
		Where("refresh_token_user_id = ? AND refresh_token_revoked_at IS NULL", userID).
		Update("refresh_token_revoked_at", time.Now().UTC()).Error
}

// ComputeRefreshHash keys the digest with the refresh secret so a DB
// leak alone cannot forge usable rows.
func ComputeRefreshHash(raw string) string {
	mac := hmac.New(sha256.New, []byte(configs.JWTRefreshSecret))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}
