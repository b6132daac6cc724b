// file: internals/features/learning/evaluations/service/grader_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"levelearn_backend/internals/ai"
	qmodel "levelearn_backend/internals/features/learning/questions/model"
)

/* =========================================================
   ANSWER GRADER
   MCQ is deterministic; open-text delegates to the AI
   service and fails CLOSED per item — a dead delegate marks
   that answer incorrect but never aborts the batch.
========================================================= */

// gradingTimeout bounds one open-text delegate call.
const gradingTimeout = 20 * time.Second

type GradeResult struct {
	IsCorrect    bool
	PointsEarned int
}

type Grader struct {
	Delegate ai.Delegate
}

func NewGrader(delegate ai.Delegate) *Grader {
	return &Grader{Delegate: delegate}
}

// Grade dispatches on the question kind.
func (g *Grader) Grade(ctx context.Context, q *qmodel.QuestionModel, rawAnswer string) GradeResult {
	switch q.QuestionType {
	case qmodel.QuestionTypeMultipleChoice:
		return g.gradeMultipleChoice(q, rawAnswer)
	case qmodel.QuestionTypeOpen:
		return g.gradeOpen(ctx, q, rawAnswer)
	default:
		log.Printf("[WARN] Grader: unknown question type %q (question_id=%d)", q.QuestionType, q.QuestionID)
		return GradeResult{}
	}
}

// gradeMultipleChoice treats the raw answer as a zero-based index into
// the option list and compares the RESOLVED OPTION TEXT against the
// stored correct answer. The index→text mapping is load-bearing:
// correctness is text equality, not index equality.
func (g *Grader) gradeMultipleChoice(q *qmodel.QuestionModel, rawAnswer string) GradeResult {
	if q.QuestionCorrectAnswer == nil {
		return GradeResult{}
	}
	opts := q.Options()
	idx, err := strconv.Atoi(strings.TrimSpace(rawAnswer))
	if err != nil || idx < 0 || idx >= len(opts) {
		// out-of-range or non-numeric answers are never correct
		return GradeResult{}
	}
	if opts[idx] == *q.QuestionCorrectAnswer {
		return GradeResult{IsCorrect: true, PointsEarned: q.QuestionPoints}
	}
	return GradeResult{}
}

type openGradeReply struct {
	IsCorrect   *bool  `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

// gradeOpen asks the delegate to judge a free-form answer. Criteria
// favor leniency: short-but-coherent or example-bearing answers pass,
// only irrelevant or nonsensical answers fail.
func (g *Grader) gradeOpen(ctx context.Context, q *qmodel.QuestionModel, rawAnswer string) GradeResult {
	if strings.TrimSpace(rawAnswer) == "" {
		return GradeResult{}
	}
	if g.Delegate == nil {
		log.Printf("[WARN] Grader: no AI delegate configured, marking open answer incorrect (question_id=%d)", q.QuestionID)
		return GradeResult{}
	}

	callCtx, cancel := context.WithTimeout(ctx, gradingTimeout)
	defer cancel()

	messages := []ai.Message{
		{
			Role: "system",
			Content: "You grade short free-form answers for a learning platform. " +
				"Be lenient: a short but coherent answer, or one that gives a valid example, is correct. " +
				"Only completely irrelevant or nonsensical answers are incorrect. " +
				`Reply with JSON only: {"isCorrect": true|false, "explanation": "..."}`,
		},
		{
			Role: "user",
			Content: fmt.Sprintf(
				"Question (category: %s, difficulty: %s):\n%s\n\nStudent answer:\n%s",
				q.QuestionCategory, q.QuestionDifficulty, q.QuestionText, rawAnswer,
			),
		},
	}

	raw, err := g.Delegate.Complete(callCtx, messages)
	if err != nil {
		log.Printf("[WARN] Grader: delegate call failed, fail closed (question_id=%d): %v", q.QuestionID, err)
		return GradeResult{}
	}

	var reply openGradeReply
	if err := ai.DecodeStrict(raw, &reply); err != nil {
		log.Printf("[WARN] Grader: undecodable delegate reply, fail closed (question_id=%d): %v", q.QuestionID, err)
		return GradeResult{}
	}
	if reply.IsCorrect == nil {
		log.Printf("[WARN] Grader: delegate reply missing isCorrect, fail closed (question_id=%d)", q.QuestionID)
		return GradeResult{}
	}
	if *reply.IsCorrect {
		return GradeResult{IsCorrect: true, PointsEarned: q.QuestionPoints}
	}
	return GradeResult{}
}
