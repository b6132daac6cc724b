// file: internals/features/learning/feedback/service/feedback_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"levelearn_backend/internals/ai"
	fmodel "levelearn_backend/internals/features/learning/feedback/model"
)

/* =========================================================
   FEEDBACK GENERATOR
   Delegates narrative synthesis to the AI service, strict-
   decodes the reply, and falls back to a fixed payload on
   any failure. Feedback is always producible, never blocks.
========================================================= */

// feedbackTimeout bounds the synthesis call, independent of grading.
const feedbackTimeout = 30 * time.Second

/* =========================================================
   BADGE LADDER (fixed five buckets, inclusive lower bounds)
========================================================= */

const (
	BadgeBeginner    = "Beginner"    // 0–40
	BadgeApprentice  = "Apprentice"  // 41–60
	BadgeSkilled     = "Skilled"     // 61–80
	BadgeExpert      = "Expert"      // 81–95
	BadgeGrandmaster = "Grandmaster" // 96–100
)

// BadgeForScore maps a 0–100 score into the five-bucket ladder.
func BadgeForScore(score int) string {
	switch {
	case score <= 40:
		return BadgeBeginner
	case score <= 60:
		return BadgeApprentice
	case score <= 80:
		return BadgeSkilled
	case score <= 95:
		return BadgeExpert
	default:
		return BadgeGrandmaster
	}
}

/* =========================================================
   INPUT / OUTPUT TYPES
========================================================= */

// ResponseDetail is one graded answer, already resolved for display:
// for MCQ, SelectedText/CorrectText carry the option texts; for open
// questions SelectedText is the free-form answer.
type ResponseDetail struct {
	QuestionText string
	QuestionType string
	SelectedText string
	CorrectText  string
	IsCorrect    bool
}

type GenerateInput struct {
	AttemptID    uint
	Score        int
	CorrectCount int
	TotalCount   int
	Details      []ResponseDetail
}

type generatedPayload struct {
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	NextSteps        string   `json:"nextSteps"`
	DetailedFeedback string   `json:"detailedFeedback"`
	Badge            string   `json:"badge"`
}

type FeedbackService struct {
	DB       *gorm.DB
	Delegate ai.Delegate
}

func NewFeedbackService(db *gorm.DB, delegate ai.Delegate) *FeedbackService {
	return &FeedbackService{DB: db, Delegate: delegate}
}

/* =========================================================
   PUBLIC API
========================================================= */

// GenerateAndStore produces the feedback row for a committed attempt.
// Runs post-commit and best-effort: any delegate or decode failure
// degrades to the fixed fallback payload, and only a database error
// is returned to the caller.
func (s *FeedbackService) GenerateAndStore(ctx context.Context, in *GenerateInput) (*fmodel.FeedbackModel, error) {
	payload, degraded := s.synthesize(ctx, in)

	// the badge is earned from the score ladder; the delegate's badge
	// field is advisory only. The fixed fallback keeps the lowest tier.
	if !degraded {
		payload.Badge = BadgeForScore(in.Score)
	}

	m := &fmodel.FeedbackModel{
		FeedbackAttemptID:    in.AttemptID,
		FeedbackScore:        in.Score,
		FeedbackCorrectCount: in.CorrectCount,
		FeedbackTotalCount:   in.TotalCount,
		FeedbackNextSteps:    payload.NextSteps,
		FeedbackDetailed:     payload.DetailedFeedback,
		FeedbackBadge:        payload.Badge,
	}
	if err := m.SetStrengths(payload.Strengths); err != nil {
		return nil, err
	}
	if err := m.SetImprovements(payload.Improvements); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		log.Printf("[ERROR] FeedbackService: failed to store feedback (attempt_id=%d): %v", in.AttemptID, err)
		return nil, err
	}
	return m, nil
}

// GetByAttempt loads the feedback row for an attempt.
func (s *FeedbackService) GetByAttempt(ctx context.Context, attemptID uint) (*fmodel.FeedbackModel, error) {
	var m fmodel.FeedbackModel
	if err := s.DB.WithContext(ctx).
		First(&m, "feedback_attempt_id = ?", attemptID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

/* =========================================================
   SYNTHESIS
========================================================= */

func (s *FeedbackService) synthesize(ctx context.Context, in *GenerateInput) (generatedPayload, bool) {
	if s.Delegate == nil {
		return fallbackPayload(), true
	}

	callCtx, cancel := context.WithTimeout(ctx, feedbackTimeout)
	defer cancel()

	raw, err := s.Delegate.Complete(callCtx, buildFeedbackMessages(in))
	if err != nil {
		log.Printf("[WARN] FeedbackService: delegate failed, using fallback (attempt_id=%d): %v", in.AttemptID, err)
		return fallbackPayload(), true
	}

	var payload generatedPayload
	if err := ai.DecodeStrict(raw, &payload); err != nil {
		log.Printf("[WARN] FeedbackService: undecodable reply, using fallback (attempt_id=%d): %v", in.AttemptID, err)
		return fallbackPayload(), true
	}
	// required-field checks: a partially filled object is not accepted
	if len(payload.Strengths) == 0 || len(payload.Improvements) == 0 ||
		strings.TrimSpace(payload.NextSteps) == "" || strings.TrimSpace(payload.DetailedFeedback) == "" {
		log.Printf("[WARN] FeedbackService: reply missing required fields, using fallback (attempt_id=%d)", in.AttemptID)
		return fallbackPayload(), true
	}
	return payload, false
}

func buildFeedbackMessages(in *GenerateInput) []ai.Message {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d%% (%d of %d correct)\n\nAnswers:\n", in.Score, in.CorrectCount, in.TotalCount)
	for i, d := range in.Details {
		fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, d.QuestionType, d.QuestionText)
		fmt.Fprintf(&sb, "   Answer: %s\n", d.SelectedText)
		if d.CorrectText != "" {
			fmt.Fprintf(&sb, "   Correct answer: %s\n", d.CorrectText)
		}
		fmt.Fprintf(&sb, "   Result: %v\n", d.IsCorrect)
	}

	return []ai.Message{
		{
			Role: "system",
			Content: "You write encouraging, concrete feedback for a learner who just finished a stage evaluation. " +
				"Reply with JSON only, exactly this shape: " +
				`{"strengths": ["..."], "improvements": ["..."], "nextSteps": "...", "detailedFeedback": "...", "badge": "..."}`,
		},
		{Role: "user", Content: sb.String()},
	}
}

// fallbackPayload is the fixed degradation used whenever the delegate
// fails or returns an unusable structure. It always carries the lowest
// badge tier.
func fallbackPayload() generatedPayload {
	return generatedPayload{
		Strengths:        []string{"You completed the evaluation."},
		Improvements:     []string{"Review the stage material and try again to raise your score."},
		NextSteps:        "Ask for detailed feedback once the service is available again.",
		DetailedFeedback: "Automatic feedback could not be generated for this attempt. Your answers and score were recorded normally.",
		Badge:            BadgeBeginner,
	}
}
