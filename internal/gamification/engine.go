package gamification

import (
	"fmt"

	"buddy/internal/models"
)

// QuestionStore records answers and derives streak/total counters from
// the question history.
type QuestionStore interface {
	// RecordAnswer marks the question answered with the selected option,
	// scores it, and recomputes the child's streak and total-correct
	// counters within the same storage transaction as the write.
	// Implementations return ErrQuestionNotFound, ErrAlreadyAnswered, or
	// ErrInvalidOption as appropriate.
	RecordAnswer(questionID string, selectedIndex int) (*AnswerOutcome, error)
}

// AnswerOutcome is the storage-level result of recording an answer: the
// scored question plus the child's counters as of that write.
type AnswerOutcome struct {
	IsCorrect     bool
	Question      *models.ScienceQuestion
	CurrentStreak int
	TotalCorrect  int
}

// AnswerResult is the outcome of submitting an answer: whether it was
// correct, the updated question, any achievements unlocked by it, and
// the child's reward state after XP was applied.
type AnswerResult struct {
	IsCorrect       bool                    `json:"is_correct"`
	Question        *models.ScienceQuestion `json:"question"`
	NewAchievements []models.Achievement    `json:"new_achievements"`
	Reward          *models.Reward          `json:"reward,omitempty"`
}

// Engine ties answer recording, achievement evaluation, and the reward
// ledger together.
type Engine struct {
	questions QuestionStore
	evaluator *Evaluator
	ledger    *Ledger
}

// NewEngine creates a new gamification engine
func NewEngine(questions QuestionStore, evaluator *Evaluator, ledger *Ledger) *Engine {
	return &Engine{questions: questions, evaluator: evaluator, ledger: ledger}
}

// SubmitAnswer records the child's answer and, when it is correct,
// awards XP, evaluates achievements against the refreshed counters, and
// awards bonus XP for each one unlocked. Incorrect answers mutate only
// the question row.
func (e *Engine) SubmitAnswer(childID, questionID string, selectedIndex int) (*AnswerResult, error) {
	outcome, err := e.questions.RecordAnswer(questionID, selectedIndex)
	if err != nil {
		return nil, err
	}

	result := &AnswerResult{
		IsCorrect:       outcome.IsCorrect,
		Question:        outcome.Question,
		NewAchievements: []models.Achievement{},
	}
	if !outcome.IsCorrect {
		return result, nil
	}

	reward, err := e.ledger.Award(childID, XPPerCorrectAnswer)
	if err != nil {
		return nil, fmt.Errorf("failed to award answer xp: %w", err)
	}
	result.Reward = reward

	unlocked, err := e.evaluator.Evaluate(childID, outcome.CurrentStreak, outcome.TotalCorrect)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate achievements: %w", err)
	}
	result.NewAchievements = unlocked

	for range unlocked {
		reward, err = e.ledger.Award(childID, XPPerAchievement)
		if err != nil {
			return nil, fmt.Errorf("failed to award achievement xp: %w", err)
		}
		result.Reward = reward
	}

	return result, nil
}
