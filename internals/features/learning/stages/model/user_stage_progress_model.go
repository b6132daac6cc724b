// file: internals/features/learning/stages/model/user_stage_progress_model.go
package model

import (
	"time"
)

/* =============================================================================
   MODEL: user_stage_progress
   One row per user×stage (unique pair). Created lazily on the first
   submission for that stage and never deleted. The stored score is
   monotonically non-decreasing; a later submission may only raise it
   and may only flip is_completed false→true.
============================================================================= */
type UserStageProgressModel struct {
	// PK
	UserStageProgressID uint `json:"user_stage_progress_id" gorm:"column:user_stage_progress_id;primaryKey;autoIncrement"`

	// FK pair (unique)
	UserStageProgressUserID  uint `json:"user_stage_progress_user_id" gorm:"column:user_stage_progress_user_id;not null;uniqueIndex:uq_usp_user_stage,priority:1"`
	UserStageProgressStageID uint `json:"user_stage_progress_stage_id" gorm:"column:user_stage_progress_stage_id;not null;uniqueIndex:uq_usp_user_stage,priority:2"`

	// Best score 0..100
	UserStageProgressScore int `json:"user_stage_progress_score" gorm:"column:user_stage_progress_score;not null;default:0"`

	// Completion
	UserStageProgressIsCompleted bool       `json:"user_stage_progress_is_completed" gorm:"column:user_stage_progress_is_completed;not null;default:false"`
	UserStageProgressCompletedAt *time.Time `json:"user_stage_progress_completed_at,omitempty" gorm:"column:user_stage_progress_completed_at"`

	// Audit
	UserStageProgressCreatedAt time.Time `json:"user_stage_progress_created_at" gorm:"column:user_stage_progress_created_at;autoCreateTime"`
	UserStageProgressUpdatedAt time.Time `json:"user_stage_progress_updated_at" gorm:"column:user_stage_progress_updated_at;autoUpdateTime"`
}

func (UserStageProgressModel) TableName() string { return "user_stage_progress" }

/* ===================================================================
   Helper methods
=================================================================== */

// ApplyScore merges a new attempt score into the record while keeping
// the monotonicity invariant: the stored score never drops and the
// completion flag never reverts. Returns true when this call crossed
// the completion threshold for the first time.
func (m *UserStageProgressModel) ApplyScore(score int, threshold int, now time.Time) (justCompleted bool) {
	if score > m.UserStageProgressScore {
		m.UserStageProgressScore = score
	}
	if !m.UserStageProgressIsCompleted && score >= threshold {
		m.UserStageProgressIsCompleted = true
		m.UserStageProgressCompletedAt = &now
		return true
	}
	return false
}
