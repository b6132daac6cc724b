// file: internals/features/learning/stages/model/user_stage_progress_model_test.go
package model

import (
	"testing"
	"time"
)

func TestApplyScore(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	const threshold = 60

	t.Run("passing score completes and stamps completed_at", func(t *testing.T) {
		var p UserStageProgressModel
		just := p.ApplyScore(75, threshold, now)

		if !just {
			t.Error("expected justCompleted = true")
		}
		if !p.UserStageProgressIsCompleted {
			t.Error("expected is_completed = true")
		}
		if p.UserStageProgressScore != 75 {
			t.Errorf("score = %d, want 75", p.UserStageProgressScore)
		}
		if p.UserStageProgressCompletedAt == nil || !p.UserStageProgressCompletedAt.Equal(now) {
			t.Errorf("completed_at = %v, want %v", p.UserStageProgressCompletedAt, now)
		}
	})

	t.Run("exactly at threshold completes", func(t *testing.T) {
		var p UserStageProgressModel
		if !p.ApplyScore(60, threshold, now) {
			t.Error("score 60 should complete at threshold 60")
		}
	})

	t.Run("failing score neither completes nor stamps", func(t *testing.T) {
		var p UserStageProgressModel
		if p.ApplyScore(59, threshold, now) {
			t.Error("expected justCompleted = false")
		}
		if p.UserStageProgressIsCompleted || p.UserStageProgressCompletedAt != nil {
			t.Error("failing score must not complete")
		}
		if p.UserStageProgressScore != 59 {
			t.Errorf("score = %d, want 59", p.UserStageProgressScore)
		}
	})

	t.Run("stored score never goes down", func(t *testing.T) {
		var p UserStageProgressModel
		p.ApplyScore(80, threshold, now)
		p.ApplyScore(40, threshold, now.Add(time.Hour))

		if p.UserStageProgressScore != 80 {
			t.Errorf("score = %d, want 80 after a worse retry", p.UserStageProgressScore)
		}
		if !p.UserStageProgressIsCompleted {
			t.Error("completion must never revert")
		}
	})

	t.Run("second passing attempt is not a fresh completion", func(t *testing.T) {
		var p UserStageProgressModel
		first := now
		p.ApplyScore(70, threshold, first)

		just := p.ApplyScore(90, threshold, now.Add(time.Hour))
		if just {
			t.Error("already-completed row must not report justCompleted again")
		}
		if p.UserStageProgressScore != 90 {
			t.Errorf("score = %d, want raised to 90", p.UserStageProgressScore)
		}
		if !p.UserStageProgressCompletedAt.Equal(first) {
			t.Error("completed_at must keep the first crossing time")
		}
	})
}
