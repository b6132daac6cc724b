// file: internals/features/learning/evaluations/service/submit_service_test.go
package service

import "testing"

func TestBuildDetail(t *testing.T) {
	t.Run("mcq resolves index to option text", func(t *testing.T) {
		q := mcq([]string{"Alpha", "Beta", "Gamma"}, "Beta", 10)
		q.QuestionText = "Pick one."

		d := buildDetail(q, "2", false)
		if d.SelectedText != "Gamma" {
			t.Errorf("SelectedText = %q, want Gamma", d.SelectedText)
		}
		if d.CorrectText != "Beta" {
			t.Errorf("CorrectText = %q, want Beta", d.CorrectText)
		}
		if d.QuestionType != "multiple_choice" {
			t.Errorf("QuestionType = %q", d.QuestionType)
		}
	})

	t.Run("mcq out-of-range index keeps the raw answer", func(t *testing.T) {
		q := mcq([]string{"Alpha", "Beta"}, "Beta", 10)
		d := buildDetail(q, "9", false)
		if d.SelectedText != "9" {
			t.Errorf("SelectedText = %q, want the raw index", d.SelectedText)
		}
	})

	t.Run("open answer passes through", func(t *testing.T) {
		q := openQ(10)
		d := buildDetail(q, "Re-testing after changes", true)
		if d.SelectedText != "Re-testing after changes" {
			t.Errorf("SelectedText = %q", d.SelectedText)
		}
		if d.CorrectText != "" {
			t.Errorf("open question must not carry a correct text, got %q", d.CorrectText)
		}
		if !d.IsCorrect {
			t.Error("IsCorrect not carried over")
		}
	})
}
