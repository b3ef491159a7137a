package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"buddy/internal/database"
	"buddy/internal/gamification"
	"buddy/internal/models"
)

// AchievementRepository handles database operations for achievements
type AchievementRepository struct {
	db *database.DB
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db *database.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// HasAchievement reports whether the child already owns the type
func (r *AchievementRepository) HasAchievement(childID string, t models.AchievementType) (bool, error) {
	query := "SELECT COUNT(*) FROM achievements WHERE child_id = ? AND type = ?"
	var count int
	if err := r.db.QueryRow(query, childID, t).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check achievement: %w", err)
	}
	return count > 0, nil
}

// CreateAchievement persists a new achievement. The (child_id, type)
// unique constraint backstops concurrent evaluators; a violation is
// reported as gamification.ErrDuplicateAchievement.
func (r *AchievementRepository) CreateAchievement(a *models.Achievement) (*models.Achievement, error) {
	a.AchievementID = uuid.NewString()
	a.EarnedAt = time.Now().UTC()

	query := `
		INSERT INTO achievements (achievement_id, child_id, type, title, description, streak_count, total_correct, earned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		a.AchievementID, a.ChildID, a.Type, a.Title, a.Description,
		a.StreakCount, a.TotalCorrect, a.EarnedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, gamification.ErrDuplicateAchievement
		}
		return nil, fmt.Errorf("failed to create achievement: %w", err)
	}

	return a, nil
}

// GetChildAchievements retrieves all achievements earned by a child
func (r *AchievementRepository) GetChildAchievements(childID string) ([]models.Achievement, error) {
	query := `
		SELECT achievement_id, child_id, type, title, description, streak_count, total_correct, earned_at
		FROM achievements
		WHERE child_id = ?
		ORDER BY earned_at ASC
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var achievements []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(
			&a.AchievementID, &a.ChildID, &a.Type, &a.Title, &a.Description,
			&a.StreakCount, &a.TotalCorrect, &a.EarnedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}

	return achievements, rows.Err()
}
