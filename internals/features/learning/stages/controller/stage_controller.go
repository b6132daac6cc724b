// file: internals/features/learning/stages/controller/stage_controller.go
package controller

import (
	"errors"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	stageDTO "levelearn_backend/internals/features/learning/stages/dto"
	stageModel "levelearn_backend/internals/features/learning/stages/model"
	stageSvc "levelearn_backend/internals/features/learning/stages/service"
	helper "levelearn_backend/internals/helpers"
)

type StageController struct {
	DB *gorm.DB
}

func NewStageController(db *gorm.DB) *StageController {
	return &StageController{DB: db}
}

var (
	validateStage     *validator.Validate
	validateStageOnce sync.Once
)

func stageValidator() *validator.Validate {
	validateStageOnce.Do(func() { validateStage = validator.New() })
	return validateStage
}

/* =========================================================
   ADMIN CRUD
========================================================= */

// POST /api/a/stages
func (ctl *StageController) Create(c *fiber.Ctx) error {
	var req stageDTO.CreateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := stageValidator().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	m := req.ToModel()
	if err := ctl.DB.Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A stage with this order number already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create stage")
	}
	return helper.JsonCreated(c, "Stage created", stageDTO.FromStageModel(m))
}

// GET /api/a/stages (admin: includes inactive)
func (ctl *StageController) ListAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	var total int64
	if err := ctl.DB.Model(&stageModel.StageModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count stages")
	}

	var rows []stageModel.StageModel
	if err := ctl.DB.
		Order("stage_order_number ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch stages")
	}

	return helper.JsonList(c, "Stages fetched",
		stageDTO.FromStageModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/a/stages/:id
func (ctl *StageController) GetByID(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid stage id")
	}

	var m stageModel.StageModel
	if err := ctl.DB.First(&m, "stage_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Stage not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch stage")
	}
	return helper.JsonOK(c, "Stage fetched", stageDTO.FromStageModel(m))
}

// PATCH /api/a/stages/:id
func (ctl *StageController) Update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid stage id")
	}

	var req stageDTO.UpdateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := stageValidator().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	var m stageModel.StageModel
	if err := ctl.DB.First(&m, "stage_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Stage not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch stage")
	}

	req.Apply(&m)
	if err := ctl.DB.Save(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A stage with this order number already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update stage")
	}
	return helper.JsonUpdated(c, "Stage updated", stageDTO.FromStageModel(m))
}

// DELETE /api/a/stages/:id — deactivates, history rows stay intact
func (ctl *StageController) Delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid stage id")
	}

	res := ctl.DB.Model(&stageModel.StageModel{}).
		Where("stage_id = ?", id).
		Update("stage_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete stage")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Stage not found")
	}
	return helper.JsonDeleted(c, "Stage deleted", fiber.Map{"stage_id": id})
}

/* =========================================================
   USER LISTING (catalog + unlock flags)
========================================================= */

// GET /api/u/stages
func (ctl *StageController) ListForUser(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var stages []stageModel.StageModel
	if err := ctl.DB.
		Where("stage_is_active = TRUE").
		Order("stage_order_number ASC").
		Find(&stages).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch stages")
	}

	var progressRows []stageModel.UserStageProgressModel
	if err := ctl.DB.
		Where("user_stage_progress_user_id = ?", userID).
		Find(&progressRows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch progress")
	}

	progress := make(map[uint]stageModel.UserStageProgressModel, len(progressRows))
	for _, p := range progressRows {
		progress[p.UserStageProgressStageID] = p
	}

	access := stageSvc.ComputeStageAccess(stages, progress)
	return helper.JsonOK(c, "Stages fetched", stageDTO.FromStageAccess(access))
}

// GET /api/u/stages/progress
func (ctl *StageController) ListProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var rows []stageModel.UserStageProgressModel
	if err := ctl.DB.
		Where("user_stage_progress_user_id = ?", userID).
		Order("user_stage_progress_stage_id ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch progress")
	}
	return helper.JsonOK(c, "Progress fetched", stageDTO.FromProgressModels(rows))
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(v), nil
}
