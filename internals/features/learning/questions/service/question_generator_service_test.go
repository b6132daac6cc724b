// file: internals/features/learning/questions/service/question_generator_service_test.go
package service

import (
	"strings"
	"testing"

	qmodel "levelearn_backend/internals/features/learning/questions/model"
	smodel "levelearn_backend/internals/features/learning/stages/model"
)

func testStage() *smodel.StageModel {
	return &smodel.StageModel{
		StageID:                  3,
		StageName:                "Test Design Basics",
		StageOpenQuestionCount:   3,
		StageClosedQuestionCount: 2,
	}
}

func TestBuildQuestionRow(t *testing.T) {
	tests := []struct {
		name   string
		in     generatedQuestion
		wantOK bool
	}{
		{
			name: "valid open question",
			in: generatedQuestion{
				Text:       "Explain boundary value analysis.",
				Type:       "open",
				Category:   "test design",
				Difficulty: "intermediate",
			},
			wantOK: true,
		},
		{
			name: "valid multiple choice",
			in: generatedQuestion{
				Text:          "Which is a black-box technique?",
				Type:          "multiple_choice",
				Options:       []string{"Statement coverage", "Equivalence partitioning", "Branch coverage", "Path coverage"},
				CorrectAnswer: "Equivalence partitioning",
			},
			wantOK: true,
		},
		{
			name:   "empty text rejected",
			in:     generatedQuestion{Text: "   ", Type: "open"},
			wantOK: false,
		},
		{
			name:   "unknown type rejected",
			in:     generatedQuestion{Text: "Q", Type: "true_false"},
			wantOK: false,
		},
		{
			name: "mcq with one option rejected",
			in: generatedQuestion{
				Text:          "Q",
				Type:          "multiple_choice",
				Options:       []string{"only"},
				CorrectAnswer: "only",
			},
			wantOK: false,
		},
		{
			name: "mcq correct answer not among options rejected",
			in: generatedQuestion{
				Text:          "Q",
				Type:          "multiple_choice",
				Options:       []string{"A", "B"},
				CorrectAnswer: "C",
			},
			wantOK: false,
		},
	}

	st := testStage()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := buildQuestionRow(st, tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if row.QuestionStageID != st.StageID {
				t.Errorf("stage id = %d, want %d", row.QuestionStageID, st.StageID)
			}
			if row.QuestionType == qmodel.QuestionTypeMultipleChoice {
				if row.QuestionCorrectAnswer == nil {
					t.Fatal("mcq row missing correct answer")
				}
				found := false
				for _, opt := range row.Options() {
					if opt == *row.QuestionCorrectAnswer {
						found = true
					}
				}
				if !found {
					t.Error("correct answer not among stored options")
				}
			}
		})
	}
}

func TestBuildGenerationPromptMentionsCounts(t *testing.T) {
	st := testStage()
	prompt := buildGenerationPrompt(st)
	for _, want := range []string{"3 open", "2 multiple_choice", st.StageName} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
