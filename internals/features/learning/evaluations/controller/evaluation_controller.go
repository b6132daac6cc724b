// file: internals/features/learning/evaluations/controller/evaluation_controller.go
package controller

import (
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	evalDTO "levelearn_backend/internals/features/learning/evaluations/dto"
	evalSvc "levelearn_backend/internals/features/learning/evaluations/service"
	helper "levelearn_backend/internals/helpers"
)

type EvaluationController struct {
	Service *evalSvc.EvaluationService
}

func NewEvaluationController(service *evalSvc.EvaluationService) *EvaluationController {
	return &EvaluationController{Service: service}
}

var (
	validateEval     *validator.Validate
	validateEvalOnce sync.Once
)

func evalValidator() *validator.Validate {
	validateEvalOnce.Do(func() { validateEval = validator.New() })
	return validateEval
}

// POST /api/u/evaluations
func (ctl *EvaluationController) Submit(c *fiber.Ctx) error {
	authUserID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req evalDTO.SubmitEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := evalValidator().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	res, err := ctl.Service.Submit(c.Context(), req.ToInput(authUserID))
	if err != nil {
		return helper.FromFiberError(c, err, "Failed to submit evaluation")
	}

	return helper.JsonCreated(c, "Evaluation submitted", evalDTO.FromSubmitResult(res))
}

// GET /api/u/evaluations?stage_id=
func (ctl *EvaluationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var stageID uint
	if raw := c.Query("stage_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || v == 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid stage_id filter")
		}
		stageID = uint(v)
	}

	paging := helper.ResolvePaging(c, 25, 100)
	rows, total, err := ctl.Service.ListAttempts(c.Context(), userID, stageID, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attempts")
	}

	return helper.JsonList(c, "Attempts fetched",
		evalDTO.FromAttemptModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
