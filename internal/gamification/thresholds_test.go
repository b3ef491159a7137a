package gamification

import (
	"testing"

	"buddy/internal/models"
)

func TestStreakDefinitionsAscending(t *testing.T) {
	defs := StreakDefinitions()
	if len(defs) != 3 {
		t.Fatalf("expected 3 streak definitions, got %d", len(defs))
	}
	prev := 0
	for _, d := range defs {
		if d.RequiredStreak <= prev {
			t.Errorf("streak thresholds not ascending: %d after %d", d.RequiredStreak, prev)
		}
		prev = d.RequiredStreak
	}
	if defs[0].Type != models.PerfectStreakBeginner || defs[0].RequiredStreak != 2 {
		t.Errorf("first streak definition = %s/%d, want perfect_streak_beginner/2", defs[0].Type, defs[0].RequiredStreak)
	}
}

func TestTotalDefinitionsAscending(t *testing.T) {
	defs := TotalDefinitions()
	if len(defs) != 3 {
		t.Fatalf("expected 3 total definitions, got %d", len(defs))
	}
	prev := 0
	for _, d := range defs {
		if d.RequiredTotal <= prev {
			t.Errorf("total thresholds not ascending: %d after %d", d.RequiredTotal, prev)
		}
		prev = d.RequiredTotal
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		achievementType models.AchievementType
		want            Category
	}{
		{models.PerfectStreakBeginner, CategoryStreak},
		{models.ScienceGrandmaster, CategoryTotal},
		{models.TopicExplorer, CategoryTopic},
		{models.QuickThinker, CategorySpeed},
		{models.DifficultyConqueror, CategoryDifficulty},
	}
	for _, tt := range tests {
		got, ok := CategoryOf(tt.achievementType)
		if !ok {
			t.Errorf("CategoryOf(%s) not found", tt.achievementType)
			continue
		}
		if got != tt.want {
			t.Errorf("CategoryOf(%s) = %s, want %s", tt.achievementType, got, tt.want)
		}
	}

	if _, ok := CategoryOf("bogus"); ok {
		t.Error("CategoryOf(bogus) should not resolve")
	}
}

func TestDefinitionsCopy(t *testing.T) {
	defs := Definitions()
	defs[0].Title = "mutated"
	if Definitions()[0].Title == "mutated" {
		t.Error("Definitions should return a copy of the table")
	}
}
