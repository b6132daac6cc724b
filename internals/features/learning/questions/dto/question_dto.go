// file: internals/features/learning/questions/dto/question_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	m "levelearn_backend/internals/features/learning/questions/model"
)

/* =========================================================
   CREATE
========================================================= */

type CreateQuestionRequest struct {
	StageID uint   `json:"question_stage_id" validate:"required,gt=0"`
	Text    string `json:"question_text" validate:"required,min=1"`
	Type    string `json:"question_type" validate:"required,oneof=open multiple_choice"`

	Options       []string `json:"question_options" validate:"omitempty,min=2,max=8,dive,min=1"`
	CorrectAnswer *string  `json:"question_correct_answer" validate:"omitempty,min=1"`

	Points     *int   `json:"question_points" validate:"omitempty,gt=0,lte=100"`
	Category   string `json:"question_category" validate:"omitempty,max=80"`
	Difficulty string `json:"question_difficulty" validate:"omitempty,max=20"`
}

func (r *CreateQuestionRequest) Normalize() {
	r.Text = strings.TrimSpace(r.Text)
	r.Category = strings.TrimSpace(r.Category)
	r.Difficulty = strings.TrimSpace(r.Difficulty)
	for i := range r.Options {
		r.Options[i] = strings.TrimSpace(r.Options[i])
	}
	if r.CorrectAnswer != nil {
		v := strings.TrimSpace(*r.CorrectAnswer)
		r.CorrectAnswer = &v
	}
}

// Check enforces the cross-field rules the validator tags cannot:
// MCQ needs options and a correct answer that is one of them, open
// questions carry neither.
func (r CreateQuestionRequest) Check() error {
	switch m.QuestionType(r.Type) {
	case m.QuestionTypeMultipleChoice:
		if len(r.Options) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "Multiple-choice questions need at least two options")
		}
		if r.CorrectAnswer == nil || *r.CorrectAnswer == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Multiple-choice questions need a correct answer")
		}
		for _, opt := range r.Options {
			if opt == *r.CorrectAnswer {
				return nil
			}
		}
		return fiber.NewError(fiber.StatusBadRequest, "Correct answer must match one of the options")
	case m.QuestionTypeOpen:
		if len(r.Options) > 0 || r.CorrectAnswer != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Open questions must not carry options or a correct answer")
		}
		return nil
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Unknown question type")
	}
}

func (r CreateQuestionRequest) ToModel() (m.QuestionModel, error) {
	mm := m.QuestionModel{
		QuestionStageID:    r.StageID,
		QuestionText:       r.Text,
		QuestionType:       m.QuestionType(r.Type),
		QuestionPoints:     10,
		QuestionCategory:   r.Category,
		QuestionDifficulty: r.Difficulty,
	}
	if r.Points != nil {
		mm.QuestionPoints = *r.Points
	}
	if mm.QuestionType == m.QuestionTypeMultipleChoice {
		if err := mm.SetOptions(r.Options); err != nil {
			return mm, err
		}
		mm.QuestionCorrectAnswer = r.CorrectAnswer
	}
	return mm, nil
}

/* =========================================================
   UPDATE (partial, pointer fields)
========================================================= */

type UpdateQuestionRequest struct {
	Text          *string  `json:"question_text" validate:"omitempty,min=1"`
	Options       []string `json:"question_options" validate:"omitempty,min=2,max=8,dive,min=1"`
	CorrectAnswer *string  `json:"question_correct_answer" validate:"omitempty,min=1"`

	Points     *int    `json:"question_points" validate:"omitempty,gt=0,lte=100"`
	Category   *string `json:"question_category" validate:"omitempty,max=80"`
	Difficulty *string `json:"question_difficulty" validate:"omitempty,max=20"`
}

func (r UpdateQuestionRequest) Apply(mo *m.QuestionModel) error {
	if r.Text != nil {
		mo.QuestionText = strings.TrimSpace(*r.Text)
	}
	if r.Points != nil {
		mo.QuestionPoints = *r.Points
	}
	if r.Category != nil {
		mo.QuestionCategory = strings.TrimSpace(*r.Category)
	}
	if r.Difficulty != nil {
		mo.QuestionDifficulty = strings.TrimSpace(*r.Difficulty)
	}
	if len(r.Options) > 0 {
		if mo.QuestionType != m.QuestionTypeMultipleChoice {
			return fiber.NewError(fiber.StatusBadRequest, "Options only apply to multiple-choice questions")
		}
		if err := mo.SetOptions(r.Options); err != nil {
			return err
		}
	}
	if r.CorrectAnswer != nil {
		if mo.QuestionType != m.QuestionTypeMultipleChoice {
			return fiber.NewError(fiber.StatusBadRequest, "Correct answer only applies to multiple-choice questions")
		}
		v := strings.TrimSpace(*r.CorrectAnswer)
		mo.QuestionCorrectAnswer = &v
	}
	if mo.QuestionType == m.QuestionTypeMultipleChoice && mo.QuestionCorrectAnswer != nil {
		found := false
		for _, opt := range mo.Options() {
			if opt == *mo.QuestionCorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return fiber.NewError(fiber.StatusBadRequest, "Correct answer must match one of the options")
		}
	}
	return nil
}

/* =========================================================
   RESPONSES
========================================================= */

type QuestionResponse struct {
	QuestionID      uint   `json:"question_id"`
	QuestionStageID uint   `json:"question_stage_id"`
	QuestionText    string `json:"question_text"`
	QuestionType    string `json:"question_type"`

	QuestionOptions       []string `json:"question_options,omitempty"`
	QuestionCorrectAnswer *string  `json:"question_correct_answer,omitempty"`

	QuestionPoints     int       `json:"question_points"`
	QuestionCategory   string    `json:"question_category,omitempty"`
	QuestionDifficulty string    `json:"question_difficulty,omitempty"`
	QuestionCreatedAt  time.Time `json:"question_created_at"`
}

// FromQuestionModel builds the admin view, correct answer included.
func FromQuestionModel(mo m.QuestionModel) QuestionResponse {
	return QuestionResponse{
		QuestionID:            mo.QuestionID,
		QuestionStageID:       mo.QuestionStageID,
		QuestionText:          mo.QuestionText,
		QuestionType:          mo.QuestionType.String(),
		QuestionOptions:       mo.Options(),
		QuestionCorrectAnswer: mo.QuestionCorrectAnswer,
		QuestionPoints:        mo.QuestionPoints,
		QuestionCategory:      mo.QuestionCategory,
		QuestionDifficulty:    mo.QuestionDifficulty,
		QuestionCreatedAt:     mo.QuestionCreatedAt,
	}
}

func FromQuestionModels(rows []m.QuestionModel) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromQuestionModel(rows[i]))
	}
	return out
}

// FromQuestionModelPublic strips the correct answer for learner-facing
// listings.
func FromQuestionModelPublic(mo m.QuestionModel) QuestionResponse {
	resp := FromQuestionModel(mo)
	resp.QuestionCorrectAnswer = nil
	return resp
}

func FromQuestionModelsPublic(rows []m.QuestionModel) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromQuestionModelPublic(rows[i]))
	}
	return out
}
