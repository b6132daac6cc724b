// file: internals/middlewares/setup_middlewares.go
package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// SetupMiddlewares attaches the app-wide middleware chain. Order
// matters: recovery first so the limiter and CORS failures still get
// a clean 500.
func SetupMiddlewares(app *fiber.App) {
	log.Println("[INFO] Setting up global middlewares...")

	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
