// file: internals/features/learning/questions/service/question_generator_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"levelearn_backend/internals/ai"
	"levelearn_backend/internals/cache"
	qmodel "levelearn_backend/internals/features/learning/questions/model"
	smodel "levelearn_backend/internals/features/learning/stages/model"
)

const generationTimeout = 45 * time.Second

// generationKey identifies one stage's generated-question batch in the
// cache. A struct key so a stage id can never collide with anything else.
type generationKey struct {
	StageID uint
}

// generatedQuestion mirrors the JSON array elements the delegate is
// asked to produce.
type generatedQuestion struct {
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Category      string   `json:"category,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
}

type GeneratorService struct {
	DB       *gorm.DB
	Delegate ai.Delegate
	cache    *cache.TTLCache[generationKey, []qmodel.QuestionModel]
}

func NewGeneratorService(db *gorm.DB, delegate ai.Delegate) *GeneratorService {
	return &GeneratorService{
		DB:       db,
		Delegate: delegate,
		cache:    cache.NewTTLCache[generationKey, []qmodel.QuestionModel](10*time.Minute, 64),
	}
}

/* =========================================================
   GENERATE FOR STAGE

   Prompts the delegate for the stage's target open/MCQ mix,
   persists the accepted rows, and caches the batch so a burst
   of listings on a sparse stage does not fan out duplicate
   delegate calls.
========================================================= */

func (s *GeneratorService) GenerateForStage(ctx context.Context, stageID uint) ([]qmodel.QuestionModel, error) {
	if s.Delegate == nil {
		return nil, errors.New("question generation requires an AI delegate")
	}

	key := generationKey{StageID: stageID}
	if cached, ok := s.cache.Get(key); ok {
		log.Printf("[GeneratorService] cache hit for stage_id=%d (%d questions)", stageID, len(cached))
		return cached, nil
	}

	var stage smodel.StageModel
	if err := s.DB.WithContext(ctx).
		First(&stage, "stage_id = ? AND stage_is_active = TRUE", stageID).Error; err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	raw, err := s.Delegate.Complete(cctx, []ai.Message{
		{Role: "system", Content: generationSystemPrompt},
		{Role: "user", Content: buildGenerationPrompt(&stage)},
	})
	if err != nil {
		return nil, fmt.Errorf("delegate call failed: %w", err)
	}

	var parsed []generatedQuestion
	if derr := ai.DecodeStrict(raw, &parsed); derr != nil {
		log.Printf("[ERROR] GeneratorService: undecodable delegate reply for stage_id=%d: %v", stageID, derr)
		return nil, derr
	}

	rows := make([]qmodel.QuestionModel, 0, len(parsed))
	for _, g := range parsed {
		row, ok := buildQuestionRow(&stage, g)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.New("delegate produced no usable questions")
	}

	if err := s.DB.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}

	s.cache.Set(key, rows)
	log.Printf("[GeneratorService] generated %d questions for stage_id=%d (%q)", len(rows), stageID, stage.StageName)
	return rows, nil
}

// Invalidate drops the cached batch for a stage, called after admin
// CRUD so a fresh listing never serves deleted questions.
func (s *GeneratorService) Invalidate(stageID uint) {
	s.cache.Delete(generationKey{StageID: stageID})
}

/* =========================================================
   prompt + row construction
========================================================= */

const generationSystemPrompt = `You are a quality-assurance training content author. ` +
	`Reply with a JSON array only, no prose and no code fences. Each element: ` +
	`{"text": "...", "type": "open" or "multiple_choice", "options": ["..."] (multiple_choice only, 4 options), ` +
	`"correctAnswer": "exact text of the correct option" (multiple_choice only), ` +
	`"category": "...", "difficulty": "beginner"|"intermediate"|"advanced"}`

func buildGenerationPrompt(stage *smodel.StageModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write practice questions for the learning stage %q.\n", stage.StageName)
	if stage.StageDescription != "" {
		fmt.Fprintf(&b, "Stage description: %s\n", stage.StageDescription)
	}
	fmt.Fprintf(&b, "Produce exactly %d open questions and %d multiple_choice questions.\n",
		stage.StageOpenQuestionCount, stage.StageClosedQuestionCount)
	b.WriteString("The topic domain is software quality assurance and testing.")
	return b.String()
}

// buildQuestionRow validates one delegate element. Malformed elements
// are skipped rather than failing the batch.
func buildQuestionRow(stage *smodel.StageModel, g generatedQuestion) (qmodel.QuestionModel, bool) {
	text := strings.TrimSpace(g.Text)
	if text == "" {
		return qmodel.QuestionModel{}, false
	}

	qt := qmodel.QuestionType(strings.TrimSpace(g.Type))
	if !qt.Valid() {
		return qmodel.QuestionModel{}, false
	}

	row := qmodel.QuestionModel{
		QuestionStageID:    stage.StageID,
		QuestionText:       text,
		QuestionType:       qt,
		QuestionCategory:   strings.TrimSpace(g.Category),
		QuestionDifficulty: strings.TrimSpace(g.Difficulty),
	}

	if qt == qmodel.QuestionTypeMultipleChoice {
		if len(g.Options) < 2 {
			return qmodel.QuestionModel{}, false
		}
		correct := strings.TrimSpace(g.CorrectAnswer)
		found := false
		for _, opt := range g.Options {
			if opt == correct {
				found = true
				break
			}
		}
		if !found {
			return qmodel.QuestionModel{}, false
		}
		if err := row.SetOptions(g.Options); err != nil {
			return qmodel.QuestionModel{}, false
		}
		row.QuestionCorrectAnswer = &correct
	}

	return row, true
}
