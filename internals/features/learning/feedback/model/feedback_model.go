// file: internals/features/learning/feedback/model/feedback_model.go
package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

/* =============================================================================
   MODEL: feedbacks
   One row per attempt (unique), created post-commit and best-effort.
   strengths/improvements are JSONB string arrays so the delegate's
   lists round-trip without a join table.
============================================================================= */
type FeedbackModel struct {
	// PK
	FeedbackID uint `json:"feedback_id" gorm:"column:feedback_id;primaryKey;autoIncrement"`

	// FK (one per attempt)
	FeedbackAttemptID uint `json:"feedback_attempt_id" gorm:"column:feedback_attempt_id;not null;uniqueIndex:uq_feedback_attempt"`

	// Score breakdown
	FeedbackScore        int `json:"feedback_score" gorm:"column:feedback_score;not null;default:0"`
	FeedbackCorrectCount int `json:"feedback_correct_count" gorm:"column:feedback_correct_count;not null;default:0"`
	FeedbackTotalCount   int `json:"feedback_total_count" gorm:"column:feedback_total_count;not null;default:0"`

	// Qualitative content
	FeedbackStrengths    datatypes.JSON `json:"feedback_strengths" gorm:"column:feedback_strengths;type:jsonb"`
	FeedbackImprovements datatypes.JSON `json:"feedback_improvements" gorm:"column:feedback_improvements;type:jsonb"`
	FeedbackNextSteps    string         `json:"feedback_next_steps" gorm:"column:feedback_next_steps;type:text"`
	FeedbackDetailed     string         `json:"feedback_detailed" gorm:"column:feedback_detailed;type:text"`
	FeedbackBadge        string         `json:"feedback_badge" gorm:"column:feedback_badge;size:40;not null"`

	// Audit
	FeedbackCreatedAt time.Time `json:"feedback_created_at" gorm:"column:feedback_created_at;autoCreateTime"`
}

func (FeedbackModel) TableName() string { return "feedbacks" }

/* ===================================================================
   Helper methods
=================================================================== */

func (m *FeedbackModel) SetStrengths(items []string) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	m.FeedbackStrengths = datatypes.JSON(raw)
	return nil
}

func (m *FeedbackModel) SetImprovements(items []string) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	m.FeedbackImprovements = datatypes.JSON(raw)
	return nil
}

func (m *FeedbackModel) Strengths() []string    { return decodeList(m.FeedbackStrengths) }
func (m *FeedbackModel) Improvements() []string { return decodeList(m.FeedbackImprovements) }

func decodeList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
