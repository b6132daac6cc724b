// file: internals/features/learning/feedback/controller/feedback_controller.go
package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"levelearn_backend/internals/constants"
	emodel "levelearn_backend/internals/features/learning/evaluations/model"
	fbDTO "levelearn_backend/internals/features/learning/feedback/dto"
	fbSvc "levelearn_backend/internals/features/learning/feedback/service"
	helper "levelearn_backend/internals/helpers"
)

type FeedbackController struct {
	DB      *gorm.DB
	Service *fbSvc.FeedbackService
}

func NewFeedbackController(db *gorm.DB, service *fbSvc.FeedbackService) *FeedbackController {
	return &FeedbackController{DB: db, Service: service}
}

// GET /api/u/evaluations/:id/feedback
func (ctl *FeedbackController) GetByAttempt(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	raw := c.Params("id")
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}
	attemptID := uint(v)

	// feedback belongs to the attempt's owner; admins may review any
	var attempt emodel.EvaluationAttemptModel
	if err := ctl.DB.First(&attempt, "attempt_id = ?", attemptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attempt not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attempt")
	}
	if attempt.AttemptUserID != userID && helper.GetRoleFromToken(c) != constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Attempt belongs to another user")
	}

	fb, err := ctl.Service.GetByAttempt(c.Context(), attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Feedback not available for this attempt")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch feedback")
	}

	return helper.JsonOK(c, "Feedback fetched", fbDTO.FromFeedbackModel(*fb))
}
