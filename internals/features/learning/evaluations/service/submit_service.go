// file: internals/features/learning/evaluations/service/submit_service.go
package service

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	emodel "levelearn_backend/internals/features/learning/evaluations/model"
	fbsvc "levelearn_backend/internals/features/learning/feedback/service"
	qmodel "levelearn_backend/internals/features/learning/questions/model"
	smodel "levelearn_backend/internals/features/learning/stages/model"
	usermodel "levelearn_backend/internals/features/users/user/model"
)

/* =========================================================
   EVALUATION SUBMISSION ORCHESTRATOR

   Validate → Grade → (one transaction: Persist → Score row →
   ProgressUpdate → AggregateUpdate) → post-commit feedback.

   Grading runs before the transaction opens: delegate calls
   can take seconds and must not hold row locks. Every write
   from the attempt row to the aggregate cascade commits or
   rolls back as one unit.
========================================================= */

// PassThreshold is the completion score for a stage.
const PassThreshold = 60

type AnswerInput struct {
	QuestionID uint
	Answer     string
}

type SubmitInput struct {
	// identity of the authenticated caller, checked against UserID
	AuthUserID uint

	BatchRef       string
	UserID         uint
	StageID        uint
	ElapsedSeconds int
	Answers        []AnswerInput
}

type SubmitResult struct {
	Attempt       *emodel.EvaluationAttemptModel
	Feedback      uint // feedback id, 0 when storing feedback failed
	Score         int
	CorrectCount  int
	TotalCount    int
	IsCompleted   bool
	JustCompleted bool
}

type EvaluationService struct {
	DB       *gorm.DB
	Grader   *Grader
	Feedback *fbsvc.FeedbackService
}

func NewEvaluationService(db *gorm.DB, grader *Grader, feedback *fbsvc.FeedbackService) *EvaluationService {
	return &EvaluationService{DB: db, Grader: grader, Feedback: feedback}
}

/* =========================================================
   PUBLIC API: Submit
========================================================= */

func (s *EvaluationService) Submit(ctx context.Context, in *SubmitInput) (*SubmitResult, error) {
	if in == nil {
		return nil, errors.New("input cannot be nil")
	}

	log.Printf("[EvaluationService] Submit called. user_id=%d stage_id=%d answers=%d elapsed=%ds",
		in.UserID, in.StageID, len(in.Answers), in.ElapsedSeconds)

	// ---------- Validating ----------
	if in.AuthUserID != in.UserID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Submitted user does not match the authenticated user")
	}
	if in.UserID == 0 || in.StageID == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "user_id and stage_id must be positive")
	}
	if in.ElapsedSeconds < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "elapsed_seconds must not be negative")
	}

	var stage smodel.StageModel
	if err := s.DB.WithContext(ctx).
		First(&stage, "stage_id = ? AND stage_is_active = TRUE", in.StageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Stage not found")
		}
		return nil, err
	}

	var questions []qmodel.QuestionModel
	if err := s.DB.WithContext(ctx).
		Where("question_stage_id = ?", in.StageID).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Stage has no questions to evaluate")
	}

	questionByID := make(map[uint]*qmodel.QuestionModel, len(questions))
	for i := range questions {
		questionByID[questions[i].QuestionID] = &questions[i]
	}

	valid := 0
	for _, a := range in.Answers {
		if _, ok := questionByID[a.QuestionID]; ok {
			valid++
		}
	}
	if valid == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No submitted answer references a question of this stage")
	}

	// ---------- Grading ----------
	// An unknown question id aborts the whole submission; a delegate
	// failure only degrades that single answer to incorrect.
	type gradedAnswer struct {
		question *qmodel.QuestionModel
		answer   string
		result   GradeResult
	}

	graded := make([]gradedAnswer, 0, len(in.Answers))
	correctCount := 0
	for _, a := range in.Answers {
		q, ok := questionByID[a.QuestionID]
		if !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Answer references a question that does not belong to this stage")
		}
		res := s.Grader.Grade(ctx, q, a.Answer)
		if res.IsCorrect {
			correctCount++
		}
		graded = append(graded, gradedAnswer{question: q, answer: a.Answer, result: res})
	}

	// ---------- Scoring ----------
	totalCount := len(graded)
	score := computeScore(correctCount, totalCount)
	isCompleted := score >= PassThreshold

	now := time.Now().UTC()
	attempt := &emodel.EvaluationAttemptModel{
		AttemptBatchRef:       in.BatchRef,
		AttemptUserID:         in.UserID,
		AttemptStageID:        in.StageID,
		AttemptStartedAt:      now.Add(-time.Duration(in.ElapsedSeconds) * time.Second),
		AttemptFinishedAt:     now,
		AttemptElapsedSeconds: in.ElapsedSeconds,
		AttemptScore:          score,
		AttemptIsCompleted:    isCompleted,
	}

	justCompleted := false

	// ---------- Persisting → AggregateUpdate (one transaction) ----------
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		responses := make([]emodel.UserResponseModel, 0, len(graded))
		for _, g := range graded {
			responses = append(responses, emodel.UserResponseModel{
				ResponseAttemptID:    attempt.AttemptID,
				ResponseQuestionID:   g.question.QuestionID,
				ResponseAnswerText:   g.answer,
				ResponseIsCorrect:    g.result.IsCorrect,
				ResponsePointsEarned: g.result.PointsEarned,
			})
		}
		if err := tx.Create(&responses).Error; err != nil {
			return err
		}

		var err error
		justCompleted, err = s.upsertProgress(tx, in.UserID, in.StageID, score, now)
		if err != nil {
			return err
		}

		return s.cascadeAggregates(tx, in.UserID, &stage, justCompleted)
	})
	if err != nil {
		log.Printf("[ERROR] EvaluationService: submission rolled back (user_id=%d stage_id=%d): %v", in.UserID, in.StageID, err)
		return nil, err
	}

	log.Printf("[EvaluationService] Submission committed. attempt_id=%d score=%d completed=%v just_completed=%v",
		attempt.AttemptID, score, isCompleted, justCompleted)

	result := &SubmitResult{
		Attempt:       attempt,
		Score:         score,
		CorrectCount:  correctCount,
		TotalCount:    totalCount,
		IsCompleted:   isCompleted,
		JustCompleted: justCompleted,
	}

	// ---------- Post-commit: feedback (best-effort) ----------
	details := make([]fbsvc.ResponseDetail, 0, len(graded))
	for _, g := range graded {
		details = append(details, buildDetail(g.question, g.answer, g.result.IsCorrect))
	}
	fb, fbErr := s.Feedback.GenerateAndStore(ctx, &fbsvc.GenerateInput{
		AttemptID:    attempt.AttemptID,
		Score:        score,
		CorrectCount: correctCount,
		TotalCount:   totalCount,
		Details:      details,
	})
	if fbErr != nil {
		// the evaluation is committed; a feedback storage failure is
		// logged and the response simply carries no feedback id
		log.Printf("[WARN] EvaluationService: feedback not stored (attempt_id=%d): %v", attempt.AttemptID, fbErr)
	} else {
		result.Feedback = fb.FeedbackID
	}

	return result, nil
}

/* =========================================================
   PROGRESS UPSERT (row-locked, monotonic)
========================================================= */

// upsertProgress creates or merges the user×stage progress row inside
// the submission transaction. The existing row is locked FOR UPDATE so
// two concurrent submissions by the same user serialize here and the
// stored score can never go down.
func (s *EvaluationService) upsertProgress(tx *gorm.DB, userID, stageID uint, score int, now time.Time) (bool, error) {
	var progress smodel.UserStageProgressModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_stage_progress_user_id = ? AND user_stage_progress_stage_id = ?", userID, stageID).
		First(&progress).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = smodel.UserStageProgressModel{
			UserStageProgressUserID:  userID,
			UserStageProgressStageID: stageID,
		}
		justCompleted := progress.ApplyScore(score, PassThreshold, now)
		if err := tx.Create(&progress).Error; err != nil {
			return false, err
		}
		return justCompleted, nil
	case err != nil:
		return false, err
	}

	justCompleted := progress.ApplyScore(score, PassThreshold, now)
	if err := tx.Save(&progress).Error; err != nil {
		return false, err
	}
	return justCompleted, nil
}

/* =========================================================
   AGGREGATE CASCADE (global score + current stage pointer)
========================================================= */

func (s *EvaluationService) cascadeAggregates(tx *gorm.DB, userID uint, stage *smodel.StageModel, justCompleted bool) error {
	// global score = sum of best scores across completed stages
	var totalScore int64
	if err := tx.Model(&smodel.UserStageProgressModel{}).
		Where("user_stage_progress_user_id = ? AND user_stage_progress_is_completed = TRUE", userID).
		Select("COALESCE(SUM(user_stage_progress_score), 0)").
		Scan(&totalScore).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{
		"user_total_score": totalScore,
	}

	if justCompleted {
		// advance the pointer to the next active stage, when one exists
		var next smodel.StageModel
		err := tx.
			Where("stage_order_number = ? AND stage_is_active = TRUE", stage.StageOrderNumber+1).
			First(&next).Error
		switch {
		case err == nil:
			updates["user_current_stage_id"] = next.StageID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// last stage of the curriculum: pointer stays put
		default:
			return err
		}
	}

	return tx.Model(&usermodel.UserModel{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

/* =========================================================
   ATTEMPT HISTORY
========================================================= */

func (s *EvaluationService) ListAttempts(ctx context.Context, userID uint, stageID uint, limit, offset int) ([]emodel.EvaluationAttemptModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&emodel.EvaluationAttemptModel{}).
		Where("attempt_user_id = ?", userID)
	if stageID != 0 {
		q = q.Where("attempt_stage_id = ?", stageID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []emodel.EvaluationAttemptModel
	if err := q.Order("attempt_created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

/* =========================================================
   helpers
========================================================= */

// computeScore rounds half away from zero, so 2 of 3 gives 67.
func computeScore(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

func buildDetail(q *qmodel.QuestionModel, answer string, isCorrect bool) fbsvc.ResponseDetail {
	d := fbsvc.ResponseDetail{
		QuestionText: q.QuestionText,
		QuestionType: q.QuestionType.String(),
		SelectedText: answer,
		IsCorrect:    isCorrect,
	}
	if q.QuestionType == qmodel.QuestionTypeMultipleChoice {
		// resolve the selected index to its option text for readable
		// feedback; the raw index stays in the stored response row
		opts := q.Options()
		if idx, err := strconv.Atoi(strings.TrimSpace(answer)); err == nil && idx >= 0 && idx < len(opts) {
			d.SelectedText = opts[idx]
		}
		if q.QuestionCorrectAnswer != nil {
			d.CorrectText = *q.QuestionCorrectAnswer
		}
	}
	return d
}
