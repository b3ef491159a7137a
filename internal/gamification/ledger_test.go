package gamification

import (
	"errors"
	"testing"
	"time"

	"buddy/internal/models"
)

func TestAwardCreatesRewardLazily(t *testing.T) {
	store := newFakeRewardStore()
	ledger := NewLedger(store)

	reward, err := ledger.Award("child-1", 1)
	if err != nil {
		t.Fatalf("Award: %v", err)
	}
	if reward.Level != 0 || reward.XP != 1 {
		t.Errorf("reward = level %d xp %d, want level 0 xp 1", reward.Level, reward.XP)
	}
}

func TestAwardLevelUp(t *testing.T) {
	tests := []struct {
		name      string
		level, xp int
		amount    int
		wantLevel int
		wantXP    int
	}{
		{"plain increment", 0, 3, 1, 0, 4},
		{"level up with rollover", 2, 9, 1, 3, 0},
		{"rollover keeps remainder", 4, 8, 5, 5, 3},
		{"final level up", 9, 9, 1, 10, 0},
		{"capped level accumulates xp", 10, 9, 1, 10, 10},
		{"single level up per award", 0, 0, 25, 1, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeRewardStore()
			store.rewards["child-1"] = &models.Reward{RewardID: "rw-child-1", ChildID: "child-1", Level: tt.level, XP: tt.xp}
			ledger := NewLedger(store)

			reward, err := ledger.Award("child-1", tt.amount)
			if err != nil {
				t.Fatalf("Award: %v", err)
			}
			if reward.Level != tt.wantLevel || reward.XP != tt.wantXP {
				t.Errorf("reward = level %d xp %d, want level %d xp %d",
					reward.Level, reward.XP, tt.wantLevel, tt.wantXP)
			}
		})
	}
}

func TestAwardRetriesOnConflict(t *testing.T) {
	store := newFakeRewardStore()
	store.rewards["child-1"] = &models.Reward{RewardID: "rw-child-1", ChildID: "child-1", Level: 1, XP: 4}
	store.conflictUpdates = 2
	ledger := NewLedger(store)

	reward, err := ledger.Award("child-1", 1)
	if err != nil {
		t.Fatalf("Award: %v", err)
	}
	if reward.XP != 5 {
		t.Errorf("xp = %d, want 5", reward.XP)
	}
}

func TestAwardExhaustedRetries(t *testing.T) {
	store := newFakeRewardStore()
	store.rewards["child-1"] = &models.Reward{RewardID: "rw-child-1", ChildID: "child-1"}
	store.conflictUpdates = awardAttempts
	ledger := NewLedger(store)

	_, err := ledger.Award("child-1", 1)
	if !errors.Is(err, ErrRewardNotFound) {
		t.Fatalf("err = %v, want ErrRewardNotFound", err)
	}
}

// The reward returned by Award must carry the timestamp the store wrote,
// not the one read before the update.
func TestAwardReturnsFreshTimestamp(t *testing.T) {
	store := newFakeRewardStore()
	ledger := NewLedger(store)

	stale := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.rewards["child-1"] = &models.Reward{
		RewardID:  "rw-child-1",
		ChildID:   "child-1",
		Level:     1,
		XP:        2,
		UpdatedAt: stale,
	}

	reward, err := ledger.Award("child-1", 1)
	if err != nil {
		t.Fatalf("Award: %v", err)
	}
	if !reward.UpdatedAt.After(stale) {
		t.Errorf("UpdatedAt = %v, want later than %v", reward.UpdatedAt, stale)
	}
	if !store.rewards["child-1"].UpdatedAt.Equal(reward.UpdatedAt) {
		t.Error("returned timestamp should match the stored one")
	}
}
