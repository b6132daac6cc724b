// file: internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "levelearn_backend/internals/features/users/auth/controller"
	"levelearn_backend/internals/middlewares"
	authMiddleware "levelearn_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Post("/refresh-token", ctl.Refresh)
	auth.Post("/logout", authMiddleware.AuthMiddleware(db), ctl.Logout)
}
