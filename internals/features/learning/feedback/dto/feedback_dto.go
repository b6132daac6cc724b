// file: internals/features/learning/feedback/dto/feedback_dto.go
package dto

import (
	"time"

	m "levelearn_backend/internals/features/learning/feedback/model"
)

type FeedbackResponse struct {
	FeedbackID           uint     `json:"feedback_id"`
	FeedbackAttemptID    uint     `json:"feedback_attempt_id"`
	FeedbackScore        int      `json:"feedback_score"`
	FeedbackCorrectCount int      `json:"feedback_correct_count"`
	FeedbackTotalCount   int      `json:"feedback_total_count"`
	FeedbackStrengths    []string `json:"feedback_strengths"`
	FeedbackImprovements []string `json:"feedback_improvements"`
	FeedbackNextSteps    string   `json:"feedback_next_steps"`
	FeedbackDetailed     string   `json:"feedback_detailed"`
	FeedbackBadge        string   `json:"feedback_badge"`

	FeedbackCreatedAt time.Time `json:"feedback_created_at"`
}

func FromFeedbackModel(mo m.FeedbackModel) FeedbackResponse {
	return FeedbackResponse{
		FeedbackID:           mo.FeedbackID,
		FeedbackAttemptID:    mo.FeedbackAttemptID,
		FeedbackScore:        mo.FeedbackScore,
		FeedbackCorrectCount: mo.FeedbackCorrectCount,
		FeedbackTotalCount:   mo.FeedbackTotalCount,
		FeedbackStrengths:    mo.Strengths(),
		FeedbackImprovements: mo.Improvements(),
		FeedbackNextSteps:    mo.FeedbackNextSteps,
		FeedbackDetailed:     mo.FeedbackDetailed,
		FeedbackBadge:        mo.FeedbackBadge,
		FeedbackCreatedAt:    mo.FeedbackCreatedAt,
	}
}
