// file: internals/features/learning/evaluations/model/evaluation_attempt_model.go
package model

import (
	"time"
)

/* =============================================================================
   MODEL: evaluation_attempts
   One row per submission, created atomically with its child
   user_responses. Immutable once scored.
============================================================================= */
type EvaluationAttemptModel struct {
	// PK
	AttemptID uint `json:"attempt_id" gorm:"column:attempt_id;primaryKey;autoIncrement"`

	// Client-supplied answers-batch identity
	AttemptBatchRef string `json:"attempt_batch_ref" gorm:"column:attempt_batch_ref;size:64;index:idx_attempts_batch_ref"`

	// FK
	AttemptUserID  uint `json:"attempt_user_id" gorm:"column:attempt_user_id;not null;index:idx_attempts_user_stage,priority:1"`
	AttemptStageID uint `json:"attempt_stage_id" gorm:"column:attempt_stage_id;not null;index:idx_attempts_user_stage,priority:2"`

	// Timing
	AttemptStartedAt      time.Time `json:"attempt_started_at" gorm:"column:attempt_started_at;not null"`
	AttemptFinishedAt     time.Time `json:"attempt_finished_at" gorm:"column:attempt_finished_at;not null"`
	AttemptElapsedSeconds int       `json:"attempt_elapsed_seconds" gorm:"column:attempt_elapsed_seconds;not null;default:0"`

	// Result
	AttemptScore       int  `json:"attempt_score" gorm:"column:attempt_score;not null;default:0"`
	AttemptIsCompleted bool `json:"attempt_is_completed" gorm:"column:attempt_is_completed;not null;default:false"`

	// Audit
	AttemptCreatedAt time.Time `json:"attempt_created_at" gorm:"column:attempt_created_at;autoCreateTime"`
}

func (EvaluationAttemptModel) TableName() string { return "evaluation_attempts" }
