package models

import "time"

// Reward tracks per-child level/XP progress.
// Levels run 0-10; 10 XP converts to one level. At level 10 XP keeps
// accumulating but no further level-ups occur.
type Reward struct {
	RewardID  string    `json:"reward_id"`
	ChildID   string    `json:"child_id"`
	Level     int       `json:"level"`
	XP        int       `json:"xp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaxLevel is the level cap; XPPerLevel is the rollover threshold.
const (
	MaxLevel   = 10
	XPPerLevel = 10
)

// AddXP adds XP points and applies at most one level-up.
// Returns true if a level-up occurred.
func (r *Reward) AddXP(amount int) bool {
	r.XP += amount
	if r.XP >= XPPerLevel && r.Level < MaxLevel {
		r.Level++
		r.XP -= XPPerLevel
		return true
	}
	return false
}
