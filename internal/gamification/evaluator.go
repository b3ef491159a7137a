package gamification

import (
	"fmt"

	"buddy/internal/models"
)

// AchievementStore persists earned achievements
type AchievementStore interface {
	// HasAchievement reports whether the child already owns the type
	HasAchievement(childID string, t models.AchievementType) (bool, error)

	// CreateAchievement persists a new achievement and returns it with
	// its generated id and timestamp
	CreateAchievement(a *models.Achievement) (*models.Achievement, error)
}

// Evaluator awards achievements whose thresholds a child has just crossed
type Evaluator struct {
	achievements AchievementStore
}

// NewEvaluator creates a new achievement evaluator
func NewEvaluator(achievements AchievementStore) *Evaluator {
	return &Evaluator{achievements: achievements}
}

// Evaluate checks the streak then total thresholds in ascending order and
// persists any achievement the child is newly eligible for. It returns
// the newly created achievements in evaluation order; owned achievements
// are never re-created. A storage failure aborts the remaining checks;
// achievements written before the failure stay written.
func (e *Evaluator) Evaluate(childID string, currentStreak, totalCorrect int) ([]models.Achievement, error) {
	var earned []models.Achievement

	for _, def := range StreakDefinitions() {
		if currentStreak < def.RequiredStreak {
			continue
		}
		a, err := e.awardOnce(childID, def, func(a *models.Achievement) {
			streak := currentStreak
			a.StreakCount = &streak
		})
		if err != nil {
			return earned, err
		}
		if a != nil {
			earned = append(earned, *a)
		}
	}

	for _, def := range TotalDefinitions() {
		if totalCorrect < def.RequiredTotal {
			continue
		}
		a, err := e.awardOnce(childID, def, func(a *models.Achievement) {
			total := totalCorrect
			a.TotalCorrect = &total
		})
		if err != nil {
			return earned, err
		}
		if a != nil {
			earned = append(earned, *a)
		}
	}

	return earned, nil
}

// awardOnce creates the achievement unless the child already owns it.
// Returns nil without error when the achievement was already owned.
func (e *Evaluator) awardOnce(childID string, def Definition, stamp func(*models.Achievement)) (*models.Achievement, error) {
	owned, err := e.achievements.HasAchievement(childID, def.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to check achievement %s: %w", def.Type, err)
	}
	if owned {
		return nil, nil
	}

	achievement := &models.Achievement{
		ChildID:     childID,
		Type:        def.Type,
		Title:       def.Title,
		Description: def.Description,
	}
	stamp(achievement)

	created, err := e.achievements.CreateAchievement(achievement)
	if err != nil {
		return nil, fmt.Errorf("failed to create achievement %s: %w", def.Type, err)
	}
	return created, nil
}
