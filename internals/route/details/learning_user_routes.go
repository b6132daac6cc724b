// file: internals/route/details/learning_user_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"levelearn_backend/internals/ai"
	evalController "levelearn_backend/internals/features/learning/evaluations/controller"
	evalSvc "levelearn_backend/internals/features/learning/evaluations/service"
	fbController "levelearn_backend/internals/features/learning/feedback/controller"
	fbSvc "levelearn_backend/internals/features/learning/feedback/service"
	questionController "levelearn_backend/internals/features/learning/questions/controller"
	questionSvc "levelearn_backend/internals/features/learning/questions/service"
	stageController "levelearn_backend/internals/features/learning/stages/controller"
	userController "levelearn_backend/internals/features/users/user/controller"
	"levelearn_backend/internals/middlewares"
	authMiddleware "levelearn_backend/internals/middlewares/auth"
)

// LearningUserRoutes wires the learner-facing surface under /api/u.
func LearningUserRoutes(app *fiber.App, db *gorm.DB, delegate ai.Delegate, generator *questionSvc.GeneratorService) {
	grader := evalSvc.NewGrader(delegate)
	feedback := fbSvc.NewFeedbackService(db, delegate)
	evaluations := evalSvc.NewEvaluationService(db, grader, feedback)

	stageCtl := stageController.NewStageController(db)
	questionCtl := questionController.NewQuestionController(db, generator)
	evalCtl := evalController.NewEvaluationController(evaluations)
	fbCtl := fbController.NewFeedbackController(db, feedback)
	userCtl := userController.NewUserController(db)

	u := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	u.Get("/profile", userCtl.GetProfile)

	u.Get("/stages", stageCtl.ListForUser)
	u.Get("/stages/progress", stageCtl.ListProgress)
	u.Get("/stages/:id/questions", questionCtl.ListForStage)

	u.Post("/evaluations", middlewares.SubmitRateLimiter(), evalCtl.Submit)
	u.Get("/evaluations", evalCtl.ListMine)
	u.Get("/evaluations/:id/feedback", fbCtl.GetByAttempt)
}
