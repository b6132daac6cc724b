// file: internals/features/learning/evaluations/model/user_response_model.go
package model

import (
	"time"
)

/* =============================================================================
   MODEL: user_responses
   One row per answered question per attempt. Insert-only, never
   mutated after the submission transaction commits.
============================================================================= */
type UserResponseModel struct {
	// PK
	ResponseID uint `json:"response_id" gorm:"column:response_id;primaryKey;autoIncrement"`

	// FK
	ResponseAttemptID  uint `json:"response_attempt_id" gorm:"column:response_attempt_id;not null;index:idx_responses_attempt"`
	ResponseQuestionID uint `json:"response_question_id" gorm:"column:response_question_id;not null;index:idx_responses_question"`

	// Answer + grading outcome
	ResponseAnswerText   string `json:"response_answer_text" gorm:"column:response_answer_text;type:text"`
	ResponseIsCorrect    bool   `json:"response_is_correct" gorm:"column:response_is_correct;not null;default:false"`
	ResponsePointsEarned int    `json:"response_points_earned" gorm:"column:response_points_earned;not null;default:0"`

	// Audit
	ResponseCreatedAt time.Time `json:"response_created_at" gorm:"column:response_created_at;autoCreateTime"`
}

func (UserResponseModel) TableName() string { return "user_responses" }
