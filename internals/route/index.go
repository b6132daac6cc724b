// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"levelearn_backend/internals/ai"
	questionSvc "levelearn_backend/internals/features/learning/questions/service"
	routeDetails "levelearn_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, delegate ai.Delegate) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// shared so admin CRUD invalidates the same cache the generate
	// endpoint fills
	generator := questionSvc.NewGeneratorService(db, delegate)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== USER (/api/u) =====================
	log.Println("[INFO] Setting up LearningUserRoutes...")
	routeDetails.LearningUserRoutes(app, db, delegate, generator)

	// ===================== ADMIN (/api/a) =====================
	log.Println("[INFO] Setting up LearningAdminRoutes...")
	routeDetails.LearningAdminRoutes(app, db, generator)
}
