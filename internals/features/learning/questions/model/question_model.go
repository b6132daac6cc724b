// file: internals/features/learning/questions/model/question_model.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

/* =============================================================================
   ENUM-like: Question type ('open','multiple_choice')
============================================================================= */
type QuestionType string

const (
	QuestionTypeOpen           QuestionType = "open"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
)

func (t QuestionType) String() string { return string(t) }
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeOpen, QuestionTypeMultipleChoice:
		return true
	default:
		return false
	}
}

func (t *QuestionType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = QuestionType(v)
	case []byte:
		*t = QuestionType(string(v))
	default:
		return fmt.Errorf("unsupported type for QuestionType: %T", value)
	}
	if !t.Valid() {
		return fmt.Errorf("invalid QuestionType: %q", *t)
	}
	return nil
}

func (t QuestionType) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	if !t.Valid() {
		return nil, fmt.Errorf("invalid QuestionType: %q", t)
	}
	return string(t), nil
}

/* =============================================================================
   MODEL: questions
   A question belongs to exactly one stage. Once referenced by a
   submission it is treated as immutable (grading and feedback resolve
   it by id).
============================================================================= */
type QuestionModel struct {
	// PK
	QuestionID uint `json:"question_id" gorm:"column:question_id;primaryKey;autoIncrement"`

	// FK
	QuestionStageID uint `json:"question_stage_id" gorm:"column:question_stage_id;not null;index:idx_questions_stage"`

	// Content
	QuestionText string       `json:"question_text" gorm:"column:question_text;type:text;not null"`
	QuestionType QuestionType `json:"question_type" gorm:"column:question_type;type:varchar(20);not null"`

	// MCQ only: ordered option list + the designated correct option text
	QuestionOptions       datatypes.JSON `json:"question_options,omitempty" gorm:"column:question_options;type:jsonb"`
	QuestionCorrectAnswer *string        `json:"question_correct_answer,omitempty" gorm:"column:question_correct_answer;type:text"`

	// Weight & metadata
	QuestionPoints     int    `json:"question_points" gorm:"column:question_points;not null;default:10"`
	QuestionCategory   string `json:"question_category" gorm:"column:question_category;size:80"`
	QuestionDifficulty string `json:"question_difficulty" gorm:"column:question_difficulty;size:20;default:'medium'"`

	// Audit
	QuestionCreatedAt time.Time `json:"question_created_at" gorm:"column:question_created_at;autoCreateTime"`
	QuestionUpdatedAt time.Time `json:"question_updated_at" gorm:"column:question_updated_at;autoUpdateTime"`
}

func (QuestionModel) TableName() string { return "questions" }

/* ===================================================================
   Helper methods
=================================================================== */

// Options decodes the JSONB option list. Empty for open questions.
func (m *QuestionModel) Options() []string {
	if len(m.QuestionOptions) == 0 {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(m.QuestionOptions, &opts); err != nil {
		return nil
	}
	return opts
}

// SetOptions encodes the ordered option list into the JSONB column.
func (m *QuestionModel) SetOptions(opts []string) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	m.QuestionOptions = datatypes.JSON(raw)
	return nil
}
