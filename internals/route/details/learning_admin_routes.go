// file: internals/route/details/learning_admin_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	questionController "levelearn_backend/internals/features/learning/questions/controller"
	questionSvc "levelearn_backend/internals/features/learning/questions/service"
	stageController "levelearn_backend/internals/features/learning/stages/controller"
	userController "levelearn_backend/internals/features/users/user/controller"
	authMiddleware "levelearn_backend/internals/middlewares/auth"
)

// LearningAdminRoutes wires the admin surface under /api/a.
func LearningAdminRoutes(app *fiber.App, db *gorm.DB, generator *questionSvc.GeneratorService) {
	stageCtl := stageController.NewStageController(db)
	questionCtl := questionController.NewQuestionController(db, generator)
	userCtl := userController.NewUserController(db)

	a := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyAdmin("learning management"),
	)

	a.Get("/users", userCtl.ListAll)

	a.Post("/stages", stageCtl.Create)
	a.Get("/stages", stageCtl.ListAll)
	a.Get("/stages/:id", stageCtl.GetByID)
	a.Patch("/stages/:id", stageCtl.Update)
	a.Delete("/stages/:id", stageCtl.Delete)
	a.Post("/stages/:id/questions/generate", questionCtl.GenerateForStage)

	a.Post("/questions", questionCtl.Create)
	a.Get("/questions", questionCtl.ListAll)
	a.Get("/questions/:id", questionCtl.GetByID)
	a.Patch("/questions/:id", questionCtl.Update)
	a.Delete("/questions/:id", questionCtl.Delete)
}
