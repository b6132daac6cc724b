// file: internals/features/learning/questions/controller/question_controller.go
package controller

import (
	"errors"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"levelearn_backend/internals/ai"
	questionDTO "levelearn_backend/internals/features/learning/questions/dto"
	questionModel "levelearn_backend/internals/features/learning/questions/model"
	questionSvc "levelearn_backend/internals/features/learning/questions/service"
	helper "levelearn_backend/internals/helpers"
)

type QuestionController struct {
	DB        *gorm.DB
	Generator *questionSvc.GeneratorService
}

func NewQuestionController(db *gorm.DB, generator *questionSvc.GeneratorService) *QuestionController {
	return &QuestionController{DB: db, Generator: generator}
}

var (
	validateQuestion     *validator.Validate
	validateQuestionOnce sync.Once
)

func questionValidator() *validator.Validate {
	validateQuestionOnce.Do(func() { validateQuestion = validator.New() })
	return validateQuestion
}

/* =========================================================
   ADMIN CRUD
========================================================= */

// POST /api/a/questions
func (ctl *QuestionController) Create(c *fiber.Ctx) error {
	var req questionDTO.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := questionValidator().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	if err := req.Check(); err != nil {
		return helper.FromFiberError(c, err, "Invalid question payload")
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid option list")
	}
	if err := ctl.DB.Create(&m).Error; err != nil {
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Stage does not exist")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create question")
	}

	ctl.Generator.Invalidate(m.QuestionStageID)
	return helper.JsonCreated(c, "Question created", questionDTO.FromQuestionModel(m))
}

// GET /api/a/questions?stage_id=
func (ctl *QuestionController) ListAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	q := ctl.DB.Model(&questionModel.QuestionModel{})
	if raw := c.Query("stage_id"); raw != "" {
		stageID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || stageID == 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid stage_id filter")
		}
		q = q.Where("question_stage_id = ?", uint(stageID))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count questions")
	}

	var rows []questionModel.QuestionModel
	if err := q.Order("question_id ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch questions")
	}

	return helper.JsonList(c, "Questions fetched",
		questionDTO.FromQuestionModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/a/questions/:id
func (ctl *QuestionController) GetByID(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	var m questionModel.QuestionModel
	if err := ctl.DB.First(&m, "question_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch question")
	}
	return helper.JsonOK(c, "Question fetched", questionDTO.FromQuestionModel(m))
}

// PATCH /api/a/questions/:id
func (ctl *QuestionController) Update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	var req questionDTO.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := questionValidator().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	var m questionModel.QuestionModel
	if err := ctl.DB.First(&m, "question_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch question")
	}

	if err := req.Apply(&m); err != nil {
		return helper.FromFiberError(c, err, "Invalid question payload")
	}
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update question")
	}

	ctl.Generator.Invalidate(m.QuestionStageID)
	return helper.JsonUpdated(c, "Question updated", questionDTO.FromQuestionModel(m))
}

// DELETE /api/a/questions/:id
func (ctl *QuestionController) Delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	var m questionModel.QuestionModel
	if err := ctl.DB.First(&m, "question_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch question")
	}

	if err := ctl.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete question")
	}

	ctl.Generator.Invalidate(m.QuestionStageID)
	return helper.JsonDeleted(c, "Question deleted", fiber.Map{"question_id": id})
}

// POST /api/a/stages/:id/questions/generate
func (ctl *QuestionController) GenerateForStage(c *fiber.Ctx) error {
	stageID, err := parseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid stage id")
	}

	rows, err := ctl.Generator.GenerateForStage(c.Context(), stageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Stage not found")
		}
		if ai.IsDecodeError(err) {
			return helper.JsonError(c, fiber.StatusBadGateway, "Delegate returned malformed questions")
		}
		return helper.JsonError(c, fiber.StatusBadGateway, "Question generation failed")
	}
	return helper.JsonCreated(c, "Questions generated", questionDTO.FromQuestionModels(rows))
}

/* =========================================================
   USER LISTING (answers stripped)
========================================================= */

// GET /api/u/stages/:id/questions
func (ctl *QuestionController) ListForStage(c *fiber.Ctx) error {
	stageID, err := parseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid stage id")
	}

	var rows []questionModel.QuestionModel
	if err := ctl.DB.
		Where("question_stage_id = ?", stageID).
		Order("question_id ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch questions")
	}
	return helper.JsonOK(c, "Questions fetched", questionDTO.FromQuestionModelsPublic(rows))
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(v), nil
}
