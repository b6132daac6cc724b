// file: internals/features/learning/stages/model/stage_model.go
package model

import (
	"time"
)

/* =============================================================================
   MODEL: stages
   stage_order_number defines the total order of the curriculum and must
   be unique among active stages (gaps tolerated, see unlock service).
============================================================================= */
type StageModel struct {
	// PK
	StageID uint `json:"stage_id" gorm:"column:stage_id;primaryKey;autoIncrement"`

	// Display
	StageName        string `json:"stage_name" gorm:"column:stage_name;size:120;not null"`
	StageDescription string `json:"stage_description" gorm:"column:stage_description;type:text"`

	// Ordering
	StageOrderNumber int `json:"stage_order_number" gorm:"column:stage_order_number;not null;index:idx_stages_order"`

	// Target question mix for AI generation
	StageOpenQuestionCount   int `json:"stage_open_question_count" gorm:"column:stage_open_question_count;not null;default:3"`
	StageClosedQuestionCount int `json:"stage_closed_question_count" gorm:"column:stage_closed_question_count;not null;default:2"`

	// Lifecycle
	StageIsActive bool `json:"stage_is_active" gorm:"column:stage_is_active;not null;default:true;index:idx_stages_active"`

	// Audit
	StageCreatedAt time.Time `json:"stage_created_at" gorm:"column:stage_created_at;autoCreateTime"`
	StageUpdatedAt time.Time `json:"stage_updated_at" gorm:"column:stage_updated_at;autoUpdateTime"`
}

func (StageModel) TableName() string { return "stages" }
