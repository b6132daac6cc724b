// file: internals/databases/migrate.go
package database

import (
	"log"

	evalModel "levelearn_backend/internals/features/learning/evaluations/model"
	fbModel "levelearn_backend/internals/features/learning/feedback/model"
	questionModel "levelearn_backend/internals/features/learning/questions/model"
	stageModel "levelearn_backend/internals/features/learning/stages/model"
	authModel "levelearn_backend/internals/features/users/auth/model"
	userModel "levelearn_backend/internals/features/users/user/model"
)

// Migrate keeps the schema aligned with the models. Ordered so FK
// targets exist before their referrers.
func Migrate() {
	if DB == nil {
		log.Fatal("❌ Migrate called before ConnectDB")
	}

	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&stageModel.StageModel{},
		&stageModel.UserStageProgressModel{},
		&questionModel.QuestionModel{},
		&evalModel.EvaluationAttemptModel{},
		&evalModel.UserResponseModel{},
		&fbModel.FeedbackModel{},
	)
	if err != nil {
		log.Fatalf("❌ Auto-migration failed: %v", err)
	}
	log.Println("✅ Database schema migrated.")
}
