// file: internals/features/learning/evaluations/dto/evaluation_dto.go
package dto

import (
	"strings"
	"time"

	m "levelearn_backend/internals/features/learning/evaluations/model"
	svc "levelearn_backend/internals/features/learning/evaluations/service"
)

/* =========================================================
   SUBMIT
========================================================= */

type SubmitAnswer struct {
	QuestionID uint   `json:"question_id" validate:"required,gt=0"`
	Answer     string `json:"answer"`
}

type SubmitEvaluationRequest struct {
	BatchRef       string `json:"batch_ref" validate:"omitempty,max=64"`
	UserID         uint   `json:"user_id" validate:"required,gt=0"`
	StageID        uint   `json:"stage_id" validate:"required,gt=0"`
	ElapsedSeconds int    `json:"elapsed_seconds" validate:"gte=0"`

	Answers []SubmitAnswer `json:"answers" validate:"required,min=1,dive"`
}

func (r *SubmitEvaluationRequest) Normalize() {
	r.BatchRef = strings.TrimSpace(r.BatchRef)
	for i := range r.Answers {
		r.Answers[i].Answer = strings.TrimSpace(r.Answers[i].Answer)
	}
}

func (r SubmitEvaluationRequest) ToInput(authUserID uint) *svc.SubmitInput {
	answers := make([]svc.AnswerInput, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, svc.AnswerInput{QuestionID: a.QuestionID, Answer: a.Answer})
	}
	return &svc.SubmitInput{
		AuthUserID:     authUserID,
		BatchRef:       r.BatchRef,
		UserID:         r.UserID,
		StageID:        r.StageID,
		ElapsedSeconds: r.ElapsedSeconds,
		Answers:        answers,
	}
}

/* =========================================================
   RESPONSES
========================================================= */

type AttemptResponse struct {
	AttemptID             uint      `json:"attempt_id"`
	AttemptBatchRef       string    `json:"attempt_batch_ref,omitempty"`
	AttemptUserID         uint      `json:"attempt_user_id"`
	AttemptStageID        uint      `json:"attempt_stage_id"`
	AttemptStartedAt      time.Time `json:"attempt_started_at"`
	AttemptFinishedAt     time.Time `json:"attempt_finished_at"`
	AttemptElapsedSeconds int       `json:"attempt_elapsed_seconds"`
	AttemptScore          int       `json:"attempt_score"`
	AttemptIsCompleted    bool      `json:"attempt_is_completed"`
}

func FromAttemptModel(mo m.EvaluationAttemptModel) AttemptResponse {
	return AttemptResponse{
		AttemptID:             mo.AttemptID,
		AttemptBatchRef:       mo.AttemptBatchRef,
		AttemptUserID:         mo.AttemptUserID,
		AttemptStageID:        mo.AttemptStageID,
		AttemptStartedAt:      mo.AttemptStartedAt,
		AttemptFinishedAt:     mo.AttemptFinishedAt,
		AttemptElapsedSeconds: mo.AttemptElapsedSeconds,
		AttemptScore:          mo.AttemptScore,
		AttemptIsCompleted:    mo.AttemptIsCompleted,
	}
}

func FromAttemptModels(rows []m.EvaluationAttemptModel) []AttemptResponse {
	out := make([]AttemptResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromAttemptModel(rows[i]))
	}
	return out
}

type SubmitEvaluationResponse struct {
	Attempt       AttemptResponse `json:"attempt"`
	Score         int             `json:"score"`
	CorrectCount  int             `json:"correct_count"`
	TotalCount    int             `json:"total_count"`
	IsCompleted   bool            `json:"is_completed"`
	JustCompleted bool            `json:"just_completed"`
	FeedbackID    uint            `json:"feedback_id,omitempty"`
}

func FromSubmitResult(res *svc.SubmitResult) SubmitEvaluationResponse {
	return SubmitEvaluationResponse{
		Attempt:       FromAttemptModel(*res.Attempt),
		Score:         res.Score,
		CorrectCount:  res.CorrectCount,
		TotalCount:    res.TotalCount,
		IsCompleted:   res.IsCompleted,
		JustCompleted: res.JustCompleted,
		FeedbackID:    res.Feedback,
	}
}
