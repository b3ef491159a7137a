package gamification

import "buddy/internal/models"

// Category groups achievement types for display
type Category string

const (
	CategoryStreak     Category = "streak"
	CategoryTotal      Category = "total"
	CategoryTopic      Category = "topic"
	CategorySpeed      Category = "speed"
	CategoryDifficulty Category = "difficulty"
)

// Definition is a static unlock rule plus display metadata for one
// achievement type
type Definition struct {
	Type        models.AchievementType
	Category    Category
	Title       string
	Description string

	// RequiredStreak/RequiredTotal drive the automatic trigger path.
	// The remaining requirements belong to display-only categories.
	RequiredStreak  int
	RequiredTotal   int
	RequiredTopics  int
	RequiredSeconds int
	RequiredHard    int
}

// definitions is the full threshold table. Streak and total entries are
// listed in ascending order of their requirement; the evaluator relies
// on that ordering.
var definitions = []Definition{
	{
		Type:           models.PerfectStreakBeginner,
		Category:       CategoryStreak,
		Title:          "Perfect Streak Beginner",
		Description:    "Answered 2 questions correctly in a row",
		RequiredStreak: 2,
	},
	{
		Type:           models.ScienceMaster,
		Category:       CategoryStreak,
		Title:          "Science Master",
		Description:    "Answered 15 questions correctly in a row",
		RequiredStreak: 15,
	},
	{
		Type:           models.PerfectStreakLegend,
		Category:       CategoryStreak,
		Title:          "Perfect Streak Legend",
		Description:    "Answered 50 questions correctly in a row",
		RequiredStreak: 50,
	},
	{
		Type:          models.ScienceExplorer,
		Category:      CategoryTotal,
		Title:         "Science Explorer",
		Description:   "Answered 10 questions correctly",
		RequiredTotal: 10,
	},
	{
		Type:          models.ScienceChampion,
		Category:      CategoryTotal,
		Title:         "Science Champion",
		Description:   "Answered 50 questions correctly",
		RequiredTotal: 50,
	},
	{
		Type:          models.ScienceGrandmaster,
		Category:      CategoryTotal,
		Title:         "Science Grandmaster",
		Description:   "Answered 100 questions correctly",
		RequiredTotal: 100,
	},
	{
		Type:           models.TopicExplorer,
		Category:       CategoryTopic,
		Title:          "Topic Explorer",
		Description:    "Mastered questions across 5 different topics",
		RequiredTopics: 5,
	},
	{
		Type:            models.QuickThinker,
		Category:        CategorySpeed,
		Title:           "Quick Thinker",
		Description:     "Answered a question correctly in under 10 seconds",
		RequiredSeconds: 10,
	},
	{
		Type:         models.DifficultyConqueror,
		Category:     CategoryDifficulty,
		Title:        "Difficulty Conqueror",
		Description:  "Answered 10 hard questions correctly",
		RequiredHard: 10,
	},
}

// Definitions returns the full threshold table in display order
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// StreakDefinitions returns the streak-triggered entries in ascending
// order of required streak
func StreakDefinitions() []Definition {
	return byCategory(CategoryStreak)
}

// TotalDefinitions returns the total-triggered entries in ascending
// order of required total
func TotalDefinitions() []Definition {
	return byCategory(CategoryTotal)
}

// Lookup returns the definition for an achievement type
func Lookup(t models.AchievementType) (Definition, bool) {
	for _, d := range definitions {
		if d.Type == t {
			return d, true
		}
	}
	return Definition{}, false
}

// CategoryOf returns the display category for an achievement type
func CategoryOf(t models.AchievementType) (Category, bool) {
	d, ok := Lookup(t)
	if !ok {
		return "", false
	}
	return d.Category, true
}

func byCategory(c Category) []Definition {
	var out []Definition
	for _, d := range definitions {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out
}
