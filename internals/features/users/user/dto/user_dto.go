// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"time"

	stageModel "levelearn_backend/internals/features/learning/stages/model"
	m "levelearn_backend/internals/features/users/user/model"
)

type UserResponse struct {
	UserID             uint      `json:"user_id"`
	UserName           string    `json:"user_name"`
	UserEmail          string    `json:"user_email"`
	UserRole           string    `json:"user_role"`
	UserTotalScore     int       `json:"user_total_score"`
	UserCurrentStageID *uint     `json:"user_current_stage_id,omitempty"`
	UserIsActive       bool      `json:"user_is_active"`
	UserCreatedAt      time.Time `json:"user_created_at"`
}

func FromUserModel(mo m.UserModel) UserResponse {
	return UserResponse{
		UserID:             mo.UserID,
		UserName:           mo.UserName,
		UserEmail:          mo.UserEmail,
		UserRole:           mo.UserRole,
		UserTotalScore:     mo.UserTotalScore,
		UserCurrentStageID: mo.UserCurrentStageID,
		UserIsActive:       mo.UserIsActive,
		UserCreatedAt:      mo.UserCreatedAt,
	}
}

func FromUserModels(rows []m.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromUserModel(rows[i]))
	}
	return out
}

type CurrentStageSummary struct {
	StageID          uint   `json:"stage_id"`
	StageName        string `json:"stage_name"`
	StageOrderNumber int    `json:"stage_order_number"`
}

type ProfileResponse struct {
	UserResponse
	CompletedStageCount int                  `json:"completed_stage_count"`
	CurrentStage        *CurrentStageSummary `json:"current_stage,omitempty"`
}

func BuildProfileResponse(user m.UserModel, currentStage *stageModel.StageModel, completedCount int) ProfileResponse {
	resp := ProfileResponse{
		UserResponse:        FromUserModel(user),
		CompletedStageCount: completedCount,
	}
	if currentStage != nil {
		resp.CurrentStage = &CurrentStageSummary{
			StageID:          currentStage.StageID,
			StageName:        currentStage.StageName,
			StageOrderNumber: currentStage.StageOrderNumber,
		}
	}
	return resp
}
