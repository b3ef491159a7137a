package gamification

import (
	"time"

	"buddy/internal/models"
)

// AchievementProgress describes one achievement for the progress view,
// earned or not, with a completion percentage toward its threshold.
type AchievementProgress struct {
	Type        models.AchievementType `json:"type"`
	Category    Category               `json:"category"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Earned      bool                   `json:"earned"`
	EarnedAt    *string                `json:"earned_at,omitempty"`
	Progress    int                    `json:"progress"`
}

// ProgressReport is the full gamification state for a child: reward
// level/XP, counters, and per-category achievement progress.
type ProgressReport struct {
	Level         int                                `json:"level"`
	XP            int                                `json:"xp"`
	CurrentStreak int                                `json:"current_streak"`
	TotalCorrect  int                                `json:"total_correct"`
	Achievements  map[Category][]AchievementProgress `json:"achievements"`
}

// BuildProgress assembles the progress view from earned achievements
// and the child's counters. Display-only categories report 100% when
// earned and 0% otherwise.
func BuildProgress(reward *models.Reward, earned []models.Achievement, streak, total int) *ProgressReport {
	earnedByType := make(map[models.AchievementType]*models.Achievement, len(earned))
	for i := range earned {
		earnedByType[earned[i].Type] = &earned[i]
	}

	report := &ProgressReport{
		CurrentStreak: streak,
		TotalCorrect:  total,
		Achievements:  make(map[Category][]AchievementProgress),
	}
	if reward != nil {
		report.Level = reward.Level
		report.XP = reward.XP
	}

	for _, def := range Definitions() {
		entry := AchievementProgress{
			Type:        def.Type,
			Category:    def.Category,
			Title:       def.Title,
			Description: def.Description,
		}
		if a, ok := earnedByType[def.Type]; ok {
			entry.Earned = true
			entry.Progress = 100
			ts := a.EarnedAt.Format(time.RFC3339)
			entry.EarnedAt = &ts
		} else {
			entry.Progress = progressToward(def, streak, total)
		}
		report.Achievements[def.Category] = append(report.Achievements[def.Category], entry)
	}

	return report
}

func progressToward(def Definition, streak, total int) int {
	switch def.Category {
	case CategoryStreak:
		return percent(streak, def.RequiredStreak)
	case CategoryTotal:
		return percent(total, def.RequiredTotal)
	default:
		return 0
	}
}

func percent(have, want int) int {
	if want <= 0 {
		return 0
	}
	p := have * 100 / want
	if p > 100 {
		p = 100
	}
	return p
}
