// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	stageModel "levelearn_backend/internals/features/learning/stages/model"
	userDTO "levelearn_backend/internals/features/users/user/dto"
	userModel "levelearn_backend/internals/features/users/user/model"
	helper "levelearn_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /api/u/profile — global score, current stage, completion counts
func (ctl *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var user userModel.UserModel
	if err := ctl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch profile")
	}

	var completed int64
	if err := ctl.DB.Model(&stageModel.UserStageProgressModel{}).
		Where("user_stage_progress_user_id = ? AND user_stage_progress_is_completed = TRUE", userID).
		Count(&completed).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch progress")
	}

	var currentStage *stageModel.StageModel
	if user.UserCurrentStageID != nil {
		var s stageModel.StageModel
		if err := ctl.DB.First(&s, "stage_id = ?", *user.UserCurrentStageID).Error; err == nil {
			currentStage = &s
		}
	}

	return helper.JsonOK(c, "Profile fetched", userDTO.BuildProfileResponse(user, currentStage, int(completed)))
}

// GET /api/a/users — admin listing
func (ctl *UserController) ListAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	var total int64
	if err := ctl.DB.Model(&userModel.UserModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var rows []userModel.UserModel
	if err := ctl.DB.
		Order("user_id ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	return helper.JsonList(c, "Users fetched",
		userDTO.FromUserModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
