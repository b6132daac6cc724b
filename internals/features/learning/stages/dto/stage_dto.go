// file: internals/features/learning/stages/dto/stage_dto.go
package dto

import (
	"strings"
	"time"

	m "levelearn_backend/internals/features/learning/stages/model"
	svc "levelearn_backend/internals/features/learning/stages/service"
)

/* =========================================================
   CREATE
========================================================= */

type CreateStageRequest struct {
	Name        string `json:"stage_name" validate:"required,min=1,max=120"`
	Description string `json:"stage_description" validate:"omitempty,max=2000"`
	OrderNumber int    `json:"stage_order_number" validate:"required,gt=0"`

	OpenQuestionCount   *int `json:"stage_open_question_count" validate:"omitempty,gte=0,lte=50"`
	ClosedQuestionCount *int `json:"stage_closed_question_count" validate:"omitempty,gte=0,lte=50"`
	IsActive            *bool `json:"stage_is_active"`
}

func (r *CreateStageRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r CreateStageRequest) ToModel() m.StageModel {
	mm := m.StageModel{
		StageName:                r.Name,
		StageDescription:         r.Description,
		StageOrderNumber:         r.OrderNumber,
		StageOpenQuestionCount:   3,
		StageClosedQuestionCount: 2,
		StageIsActive:            true,
	}
	if r.OpenQuestionCount != nil {
		mm.StageOpenQuestionCount = *r.OpenQuestionCount
	}
	if r.ClosedQuestionCount != nil {
		mm.StageClosedQuestionCount = *r.ClosedQuestionCount
	}
	if r.IsActive != nil {
		mm.StageIsActive = *r.IsActive
	}
	return mm
}

/* =========================================================
   UPDATE (partial, pointer fields)
========================================================= */

type UpdateStageRequest struct {
	Name        *string `json:"stage_name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"stage_description" validate:"omitempty,max=2000"`
	OrderNumber *int    `json:"stage_order_number" validate:"omitempty,gt=0"`

	OpenQuestionCount   *int  `json:"stage_open_question_count" validate:"omitempty,gte=0,lte=50"`
	ClosedQuestionCount *int  `json:"stage_closed_question_count" validate:"omitempty,gte=0,lte=50"`
	IsActive            *bool `json:"stage_is_active"`
}

func (r UpdateStageRequest) Apply(mo *m.StageModel) {
	if r.Name != nil {
		mo.StageName = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		mo.StageDescription = strings.TrimSpace(*r.Description)
	}
	if r.OrderNumber != nil {
		mo.StageOrderNumber = *r.OrderNumber
	}
	if r.OpenQuestionCount != nil {
		mo.StageOpenQuestionCount = *r.OpenQuestionCount
	}
	if r.ClosedQuestionCount != nil {
		mo.StageClosedQuestionCount = *r.ClosedQuestionCount
	}
	if r.IsActive != nil {
		mo.StageIsActive = *r.IsActive
	}
}

/* =========================================================
   RESPONSES
========================================================= */

type StageResponse struct {
	StageID                  uint      `json:"stage_id"`
	StageName                string    `json:"stage_name"`
	StageDescription         string    `json:"stage_description,omitempty"`
	StageOrderNumber         int       `json:"stage_order_number"`
	StageOpenQuestionCount   int       `json:"stage_open_question_count"`
	StageClosedQuestionCount int       `json:"stage_closed_question_count"`
	StageIsActive            bool      `json:"stage_is_active"`
	StageCreatedAt           time.Time `json:"stage_created_at"`
	StageUpdatedAt           time.Time `json:"stage_updated_at"`
}

func FromStageModel(mo m.StageModel) StageResponse {
	return StageResponse{
		StageID:                  mo.StageID,
		StageName:                mo.StageName,
		StageDescription:         mo.StageDescription,
		StageOrderNumber:         mo.StageOrderNumber,
		StageOpenQuestionCount:   mo.StageOpenQuestionCount,
		StageClosedQuestionCount: mo.StageClosedQuestionCount,
		StageIsActive:            mo.StageIsActive,
		StageCreatedAt:           mo.StageCreatedAt,
		StageUpdatedAt:           mo.StageUpdatedAt,
	}
}

func FromStageModels(rows []m.StageModel) []StageResponse {
	out := make([]StageResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromStageModel(rows[i]))
	}
	return out
}

// StageAccessResponse is the user-facing listing: catalog entry plus
// the caller's unlock/completion view of it.
type StageAccessResponse struct {
	StageResponse
	IsUnlocked  bool `json:"is_unlocked"`
	IsCompleted bool `json:"is_completed"`
	BestScore   int  `json:"best_score"`
}

func FromStageAccess(rows []svc.StageAccess) []StageAccessResponse {
	out := make([]StageAccessResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, StageAccessResponse{
			StageResponse: FromStageModel(r.Stage),
			IsUnlocked:    r.IsUnlocked,
			IsCompleted:   r.IsCompleted,
			BestScore:     r.BestScore,
		})
	}
	return out
}

/* =========================================================
   PROGRESS
========================================================= */

type UserStageProgressResponse struct {
	UserStageProgressID          uint       `json:"user_stage_progress_id"`
	UserStageProgressUserID      uint       `json:"user_stage_progress_user_id"`
	UserStageProgressStageID     uint       `json:"user_stage_progress_stage_id"`
	UserStageProgressScore       int        `json:"user_stage_progress_score"`
	UserStageProgressIsCompleted bool       `json:"user_stage_progress_is_completed"`
	UserStageProgressCompletedAt *time.Time `json:"user_stage_progress_completed_at,omitempty"`
}

func FromProgressModel(mo m.UserStageProgressModel) UserStageProgressResponse {
	return UserStageProgressResponse{
		UserStageProgressID:          mo.UserStageProgressID,
		UserStageProgressUserID:      mo.UserStageProgressUserID,
		UserStageProgressStageID:     mo.UserStageProgressStageID,
		UserStageProgressScore:       mo.UserStageProgressScore,
		UserStageProgressIsCompleted: mo.UserStageProgressIsCompleted,
		UserStageProgressCompletedAt: mo.UserStageProgressCompletedAt,
	}
}

func FromProgressModels(rows []m.UserStageProgressModel) []UserStageProgressResponse {
	out := make([]UserStageProgressResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromProgressModel(rows[i]))
	}
	return out
}
