package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"buddy/internal/database"
	"buddy/internal/models"
)

// RewardRepository handles database operations for reward records
type RewardRepository struct {
	db *database.DB
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(db *database.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

// GetReward retrieves a child's reward record, nil when absent
func (r *RewardRepository) GetReward(childID string) (*models.Reward, error) {
	query := `
		SELECT reward_id, child_id, level, xp, created_at, updated_at
		FROM rewards WHERE child_id = ?
	`
	reward := &models.Reward{}
	err := r.db.QueryRow(query, childID).Scan(
		&reward.RewardID,
		&reward.ChildID,
		&reward.Level,
		&reward.XP,
		&reward.CreatedAt,
		&reward.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}
	return reward, nil
}

// CreateReward inserts a level-0 record for the child. When a concurrent
// insert wins the race on the child_id unique constraint, the existing
// record is returned instead.
func (r *RewardRepository) CreateReward(childID string) (*models.Reward, error) {
	now := time.Now().UTC()
	reward := &models.Reward{
		RewardID:  uuid.NewString(),
		ChildID:   childID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO rewards (reward_id, child_id, level, xp, created_at, updated_at)
		VALUES (?, ?, 0, 0, ?, ?)
	`
	_, err := r.db.Exec(query, reward.RewardID, reward.ChildID, reward.CreatedAt, reward.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return r.GetReward(childID)
		}
		return nil, fmt.Errorf("failed to create reward: %w", err)
	}

	return reward, nil
}

// UpdateReward writes the new level/xp only if the stored record still
// matches prevLevel/prevXP, stamping next.UpdatedAt with the write
// time. Returns false when no row matched.
func (r *RewardRepository) UpdateReward(next *models.Reward, prevLevel, prevXP int) (bool, error) {
	next.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE rewards
		SET level = ?, xp = ?, updated_at = ?
		WHERE child_id = ? AND level = ? AND xp = ?
	`
	result, err := r.db.Exec(query, next.Level, next.XP, next.UpdatedAt, next.ChildID, prevLevel, prevXP)
	if err != nil {
		return false, fmt.Errorf("failed to update reward: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check reward update: %w", err)
	}
	return affected > 0, nil
}
