// file: internals/features/learning/stages/service/unlock_service.go
package service

import (
	"sort"

	smodel "levelearn_backend/internals/features/learning/stages/model"
)

/* =========================================================
   UNLOCK EVALUATOR
   Pure sequential-gating over the active stage catalog. No
   side effects, safe to recompute on every listing request.
========================================================= */

// StageAccess is one stage decorated with the caller's progress.
type StageAccess struct {
	Stage       smodel.StageModel
	IsUnlocked  bool
	IsCompleted bool
	BestScore   int
}

// ComputeStageAccess decides isUnlocked for every active stage.
// Rules:
//  1. The stage with the lowest order number is always unlocked.
//  2. A stage whose predecessor (order number - 1) does not exist is
//     unlocked: a gap in the sequence must never strand the player.
//  3. Otherwise the predecessor's completion gates the stage.
//
// progress is keyed by stage id.
func ComputeStageAccess(stages []smodel.StageModel, progress map[uint]smodel.UserStageProgressModel) []StageAccess {
	ordered := make([]smodel.StageModel, len(stages))
	copy(ordered, stages)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StageOrderNumber < ordered[j].StageOrderNumber
	})

	byOrder := make(map[int]smodel.StageModel, len(ordered))
	for _, st := range ordered {
		byOrder[st.StageOrderNumber] = st
	}

	out := make([]StageAccess, 0, len(ordered))
	for i, st := range ordered {
		acc := StageAccess{Stage: st}
		if p, ok := progress[st.StageID]; ok {
			acc.IsCompleted = p.UserStageProgressIsCompleted
			acc.BestScore = p.UserStageProgressScore
		}

		switch {
		case i == 0:
			// lowest order number among active stages
			acc.IsUnlocked = true
		default:
			prev, hasPrev := byOrder[st.StageOrderNumber-1]
			if !hasPrev {
				// sequence gap: fail open
				acc.IsUnlocked = true
			} else if p, ok := progress[prev.StageID]; ok {
				acc.IsUnlocked = p.UserStageProgressIsCompleted
			} else {
				acc.IsUnlocked = false
			}
		}
		out = append(out, acc)
	}
	return out
}

// IsStageUnlocked answers the question for a single stage id using the
// same rules as ComputeStageAccess.
func IsStageUnlocked(stageID uint, stages []smodel.StageModel, progress map[uint]smodel.UserStageProgressModel) bool {
	for _, acc := range ComputeStageAccess(stages, progress) {
		if acc.Stage.StageID == stageID {
			return acc.IsUnlocked
		}
	}
	return false
}
