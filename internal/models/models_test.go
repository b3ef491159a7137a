package models

import "testing"

func TestRewardAddXP(t *testing.T) {
	tests := []struct {
		name          string
		level         int
		xp            int
		amount        int
		wantLevel     int
		wantXP        int
		wantLeveledUp bool
	}{
		{
			name:  "plain increment",
			level: 0, xp: 3, amount: 1,
			wantLevel: 0, wantXP: 4, wantLeveledUp: false,
		},
		{
			name:  "level up at threshold",
			level: 0, xp: 9, amount: 1,
			wantLevel: 1, wantXP: 0, wantLeveledUp: true,
		},
		{
			name:  "level up with remainder",
			level: 2, xp: 8, amount: 5,
			wantLevel: 3, wantXP: 3, wantLeveledUp: true,
		},
		{
			name:  "final level up",
			level: 9, xp: 9, amount: 1,
			wantLevel: 10, wantXP: 0, wantLeveledUp: true,
		},
		{
			name:  "capped at max level",
			level: 10, xp: 9, amount: 1,
			wantLevel: 10, wantXP: 10, wantLeveledUp: false,
		},
		{
			name:  "xp accumulates unbounded at cap",
			level: 10, xp: 27, amount: 5,
			wantLevel: 10, wantXP: 32, wantLeveledUp: false,
		},
		{
			name:  "single level up per call even for large amounts",
			level: 0, xp: 0, amount: 25,
			wantLevel: 1, wantXP: 15, wantLeveledUp: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reward{Level: tt.level, XP: tt.xp}
			leveledUp := r.AddXP(tt.amount)
			if r.Level != tt.wantLevel || r.XP != tt.wantXP {
				t.Errorf("AddXP(%d) = level %d xp %d, want level %d xp %d",
					tt.amount, r.Level, r.XP, tt.wantLevel, tt.wantXP)
			}
			if leveledUp != tt.wantLeveledUp {
				t.Errorf("AddXP(%d) leveledUp = %v, want %v", tt.amount, leveledUp, tt.wantLeveledUp)
			}
		})
	}
}

func TestScienceQuestionAnswered(t *testing.T) {
	q := ScienceQuestion{}
	if q.Answered() {
		t.Error("new question should not be answered")
	}

	now := q.CreatedAt
	q.AnsweredAt = &now
	if !q.Answered() {
		t.Error("question with AnsweredAt set should be answered")
	}
}
