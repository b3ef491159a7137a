package models

import "time"

// AchievementType enumerates the one-time badges a child can earn
type AchievementType string

const (
	// Streak milestones
	PerfectStreakBeginner AchievementType = "perfect_streak_beginner"
	ScienceMaster         AchievementType = "science_master"
	PerfectStreakLegend   AchievementType = "perfect_streak_legend"

	// Cumulative-correct milestones
	ScienceExplorer    AchievementType = "science_explorer"
	ScienceChampion    AchievementType = "science_champion"
	ScienceGrandmaster AchievementType = "science_grandmaster"

	// Display-only categories, not auto-awarded
	TopicExplorer       AchievementType = "topic_explorer"
	QuickThinker        AchievementType = "quick_thinker"
	DifficultyConqueror AchievementType = "difficulty_conqueror"
)

// Achievement is a one-time, per-child, per-type unlock.
// (ChildID, Type) is unique; records are immutable once created.
type Achievement struct {
	AchievementID string          `json:"achievement_id"`
	ChildID       string          `json:"child_id"`
	Type          AchievementType `json:"type"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	StreakCount   *int            `json:"streak_count,omitempty"`
	TotalCorrect  *int            `json:"total_correct,omitempty"`
	EarnedAt      time.Time       `json:"earned_at"`
}
