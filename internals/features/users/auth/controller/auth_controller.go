// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authDTO "levelearn_backend/internals/features/users/auth/dto"
	authSvc "levelearn_backend/internals/features/users/auth/service"
	userModel "levelearn_backend/internals/features/users/user/model"
	helper "levelearn_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

var (
	validateAuth     *validator.Validate
	validateAuthOnce sync.Once
)

func authValidator() *validator.Validate {
	validateAuthOnce.Do(func() { validateAuth = validator.New() })
	return validateAuth
}

/* =========================================================
   POST /api/auth/register
========================================================= */

func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := authValidator().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName:     req.Name,
		UserEmail:    req.Email,
		UserPassword: string(hashed),
	}
	user.SetDefaultValues()

	if err := ctl.DB.Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register user")
	}

	return helper.JsonCreated(c, "Registration successful", authDTO.FromUserModel(user))
}

/* =========================================================
   POST /api/auth/login
========================================================= */

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := authValidator().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	var user userModel.UserModel
	if err := ctl.DB.First(&user, "user_email = ?", req.Email).Error; err != nil {
		// same message for unknown email and wrong password
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	pair, err := authSvc.IssueTokenPair(ctl.DB, &user, c.Get("User-Agent"), c.IP())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}

	setRefreshCookie(c, pair.RefreshToken)
	return helper.JsonOK(c, "Login successful", authDTO.AuthResponse{
		User:        authDTO.FromUserModel(user),
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.ExpiresAt,
	})
}

/* =========================================================
   POST /api/auth/refresh-token
========================================================= */

func (ctl *AuthController) Refresh(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Cookies("refresh_token"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	pair, user, err := authSvc.RotateRefreshToken(ctl.DB, raw, c.Get("User-Agent"), c.IP())
	if err != nil {
		clearRefreshCookie(c)
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	setRefreshCookie(c, pair.RefreshToken)
	return helper.JsonOK(c, "Token refreshed", authDTO.AuthResponse{
		User:        authDTO.FromUserModel(*user),
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.ExpiresAt,
	})
}

/* =========================================================
   POST /api/auth/logout
========================================================= */

func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	if err := authSvc.RevokeAllForUser(ctl.DB, userID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log out")
	}

	clearRefreshCookie(c)
	return helper.JsonOK(c, "Logged out", fiber.Map{"user_id": userID})
}

/* =========================================================
   cookies
========================================================= */

func setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/api/auth",
	})
}

func clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/api/auth",
	})
}
