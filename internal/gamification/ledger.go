package gamification

import (
	"fmt"

	"buddy/internal/models"
)

// XP amounts for the two events that feed the ledger
const (
	XPPerCorrectAnswer = 1
	XPPerAchievement   = 5
)

// RewardStore persists per-child level/XP records
type RewardStore interface {
	// GetReward returns the child's reward, or nil when none exists yet
	GetReward(childID string) (*models.Reward, error)

	// CreateReward inserts a fresh level-0 record for the child
	CreateReward(childID string) (*models.Reward, error)

	// UpdateReward writes next only if the stored record still carries
	// prevLevel/prevXP, stamping next.UpdatedAt with the write time.
	// Returns false when no record matched.
	UpdateReward(next *models.Reward, prevLevel, prevXP int) (bool, error)
}

// Ledger maintains per-child level/XP state. Award is not idempotent;
// callers must invoke it at most once per correct answer and per
// achievement.
type Ledger struct {
	rewards RewardStore
}

// NewLedger creates a new reward ledger
func NewLedger(rewards RewardStore) *Ledger {
	return &Ledger{rewards: rewards}
}

// awardAttempts bounds the compare-and-swap retry loop; concurrent
// submissions for the same child re-read and retry instead of losing an
// increment.
const awardAttempts = 3

// Award adds XP to the child's reward, creating it lazily, and applies
// at most one level-up. Returns the updated reward, or ErrRewardNotFound
// when the update matched no record after retries.
func (l *Ledger) Award(childID string, amount int) (*models.Reward, error) {
	for attempt := 0; attempt < awardAttempts; attempt++ {
		reward, err := l.rewards.GetReward(childID)
		if err != nil {
			return nil, fmt.Errorf("failed to load reward: %w", err)
		}
		if reward == nil {
			reward, err = l.rewards.CreateReward(childID)
			if err != nil {
				return nil, fmt.Errorf("failed to create reward: %w", err)
			}
		}

		prevLevel, prevXP := reward.Level, reward.XP
		updated := *reward
		updated.AddXP(amount)

		ok, err := l.rewards.UpdateReward(&updated, prevLevel, prevXP)
		if err != nil {
			return nil, fmt.Errorf("failed to update reward: %w", err)
		}
		if ok {
			return &updated, nil
		}
		// Lost the race against a concurrent award; re-read and retry.
	}

	return nil, ErrRewardNotFound
}
