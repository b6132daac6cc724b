// file: internals/features/learning/evaluations/service/grader_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"levelearn_backend/internals/ai"
	qmodel "levelearn_backend/internals/features/learning/questions/model"
)

type fakeDelegate struct {
	reply string
	err   error
	calls int
}

func (f *fakeDelegate) Complete(_ context.Context, _ []ai.Message) (string, error) {
	f.calls++
	return f.reply, f.err
}

func mcq(options []string, correct string, points int) *qmodel.QuestionModel {
	q := &qmodel.QuestionModel{
		QuestionID:     1,
		QuestionType:   qmodel.QuestionTypeMultipleChoice,
		QuestionPoints: points,
	}
	if err := q.SetOptions(options); err != nil {
		panic(err)
	}
	q.QuestionCorrectAnswer = &correct
	return q
}

func openQ(points int) *qmodel.QuestionModel {
	return &qmodel.QuestionModel{
		QuestionID:     2,
		QuestionText:   "What is regression testing?",
		QuestionType:   qmodel.QuestionTypeOpen,
		QuestionPoints: points,
	}
}

func TestGradeMultipleChoice(t *testing.T) {
	opts := []string{"Unit test", "Regression test", "Smoke test"}

	tests := []struct {
		name        string
		question    *qmodel.QuestionModel
		answer      string
		wantCorrect bool
		wantPoints  int
	}{
		{"correct index", mcq(opts, "Regression test", 10), "1", true, 10},
		{"wrong index", mcq(opts, "Regression test", 10), "0", false, 0},
		{"index with surrounding spaces", mcq(opts, "Regression test", 10), " 1 ", true, 10},
		{"out of range", mcq(opts, "Regression test", 10), "3", false, 0},
		{"negative index", mcq(opts, "Regression test", 10), "-1", false, 0},
		{"non-numeric answer", mcq(opts, "Regression test", 10), "Regression test", false, 0},
		{"empty answer", mcq(opts, "Regression test", 10), "", false, 0},
		{"no stored correct answer", func() *qmodel.QuestionModel {
			q := mcq(opts, "Regression test", 10)
			q.QuestionCorrectAnswer = nil
			return q
		}(), "1", false, 0},
		{"duplicate option text matches by text", mcq([]string{"Yes", "Yes", "No"}, "Yes", 5), "1", true, 5},
	}

	g := NewGrader(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Grade(context.Background(), tt.question, tt.answer)
			if got.IsCorrect != tt.wantCorrect {
				t.Errorf("IsCorrect = %v, want %v", got.IsCorrect, tt.wantCorrect)
			}
			if got.PointsEarned != tt.wantPoints {
				t.Errorf("PointsEarned = %d, want %d", got.PointsEarned, tt.wantPoints)
			}
		})
	}
}

func TestGradeOpen(t *testing.T) {
	tests := []struct {
		name        string
		delegate    *fakeDelegate
		answer      string
		wantCorrect bool
		wantCalls   int
	}{
		{
			name:        "delegate says correct",
			delegate:    &fakeDelegate{reply: `{"isCorrect": true, "explanation": "solid answer"}`},
			answer:      "Re-running tests after a change",
			wantCorrect: true,
			wantCalls:   1,
		},
		{
			name:        "delegate says incorrect",
			delegate:    &fakeDelegate{reply: `{"isCorrect": false, "explanation": "off topic"}`},
			answer:      "I like turtles",
			wantCorrect: false,
			wantCalls:   1,
		},
		{
			name:        "fenced reply still decodes",
			delegate:    &fakeDelegate{reply: "```json\n{\"isCorrect\": true, \"explanation\": \"ok\"}\n```"},
			answer:      "Checking old features still work",
			wantCorrect: true,
			wantCalls:   1,
		},
		{
			name:        "delegate error fails closed",
			delegate:    &fakeDelegate{err: errors.New("upstream 503")},
			answer:      "A valid answer",
			wantCorrect: false,
			wantCalls:   1,
		},
		{
			name:        "unparsable reply fails closed",
			delegate:    &fakeDelegate{reply: "Sure! The answer looks good to me."},
			answer:      "A valid answer",
			wantCorrect: false,
			wantCalls:   1,
		},
		{
			name:        "missing isCorrect field fails closed",
			delegate:    &fakeDelegate{reply: `{"explanation": "no verdict"}`},
			answer:      "A valid answer",
			wantCorrect: false,
			wantCalls:   1,
		},
		{
			name:        "empty answer never calls the delegate",
			delegate:    &fakeDelegate{reply: `{"isCorrect": true}`},
			answer:      "   ",
			wantCorrect: false,
			wantCalls:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrader(tt.delegate)
			got := g.Grade(context.Background(), openQ(10), tt.answer)
			if got.IsCorrect != tt.wantCorrect {
				t.Errorf("IsCorrect = %v, want %v", got.IsCorrect, tt.wantCorrect)
			}
			if tt.wantCorrect && got.PointsEarned != 10 {
				t.Errorf("PointsEarned = %d, want 10", got.PointsEarned)
			}
			if tt.delegate.calls != tt.wantCalls {
				t.Errorf("delegate calls = %d, want %d", tt.delegate.calls, tt.wantCalls)
			}
		})
	}
}

func TestGradeOpenWithoutDelegate(t *testing.T) {
	g := NewGrader(nil)
	got := g.Grade(context.Background(), openQ(10), "A perfectly fine answer")
	if got.IsCorrect {
		t.Error("no delegate must fail closed")
	}
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 5, 0},
		{5, 5, 100},
		{2, 3, 67},
		{1, 3, 33},
		{1, 2, 50},
		{3, 5, 60},
		{1, 6, 17},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := computeScore(tt.correct, tt.total); got != tt.want {
			t.Errorf("computeScore(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}
