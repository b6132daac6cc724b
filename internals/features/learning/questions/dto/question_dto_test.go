// file: internals/features/learning/questions/dto/question_dto_test.go
package dto

import (
	"testing"

	m "levelearn_backend/internals/features/learning/questions/model"
)

func strPtr(s string) *string { return &s }

func TestCreateQuestionRequestCheck(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateQuestionRequest
		wantErr bool
	}{
		{
			name: "valid open",
			req:  CreateQuestionRequest{StageID: 1, Text: "Explain smoke testing.", Type: "open"},
		},
		{
			name: "valid mcq",
			req: CreateQuestionRequest{
				StageID: 1, Text: "Pick one.", Type: "multiple_choice",
				Options:       []string{"A", "B"},
				CorrectAnswer: strPtr("B"),
			},
		},
		{
			name: "mcq without options",
			req: CreateQuestionRequest{
				StageID: 1, Text: "Pick one.", Type: "multiple_choice",
				CorrectAnswer: strPtr("B"),
			},
			wantErr: true,
		},
		{
			name: "mcq without correct answer",
			req: CreateQuestionRequest{
				StageID: 1, Text: "Pick one.", Type: "multiple_choice",
				Options: []string{"A", "B"},
			},
			wantErr: true,
		},
		{
			name: "mcq correct answer outside options",
			req: CreateQuestionRequest{
				StageID: 1, Text: "Pick one.", Type: "multiple_choice",
				Options:       []string{"A", "B"},
				CorrectAnswer: strPtr("C"),
			},
			wantErr: true,
		},
		{
			name: "open with options",
			req: CreateQuestionRequest{
				StageID: 1, Text: "Explain.", Type: "open",
				Options: []string{"A", "B"},
			},
			wantErr: true,
		},
		{
			name:    "unknown type",
			req:     CreateQuestionRequest{StageID: 1, Text: "Q", Type: "boolean"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Check()
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateQuestionRequestToModel(t *testing.T) {
	req := CreateQuestionRequest{
		StageID:       4,
		Text:          "Pick the odd one out.",
		Type:          "multiple_choice",
		Options:       []string{"A", "B", "C"},
		CorrectAnswer: strPtr("C"),
		Category:      "basics",
	}

	mo, err := req.ToModel()
	if err != nil {
		t.Fatalf("ToModel: %v", err)
	}
	if mo.QuestionPoints != 10 {
		t.Errorf("default points = %d, want 10", mo.QuestionPoints)
	}
	if mo.QuestionType != m.QuestionTypeMultipleChoice {
		t.Errorf("type = %q", mo.QuestionType)
	}
	if got := mo.Options(); len(got) != 3 || got[2] != "C" {
		t.Errorf("options = %v", got)
	}
	if mo.QuestionCorrectAnswer == nil || *mo.QuestionCorrectAnswer != "C" {
		t.Error("correct answer not carried over")
	}
}
