package gamification

import (
	"errors"
	"testing"

	"buddy/internal/models"
)

func newTestEngine() (*Engine, *fakeQuestionStore, *fakeAchievementStore, *fakeRewardStore) {
	questions := newFakeQuestionStore()
	achievements := newFakeAchievementStore()
	rewards := newFakeRewardStore()
	engine := NewEngine(questions, NewEvaluator(achievements), NewLedger(rewards))
	return engine, questions, achievements, rewards
}

// Two correct answers in a row should unlock the first streak badge and
// pay out both the answer XP and the achievement bonus.
func TestSubmitAnswerStreakUnlock(t *testing.T) {
	engine, questions, _, _ := newTestEngine()
	questions.addQuestion("q1", "child-1", 1)
	questions.addQuestion("q2", "child-1", 0)

	if _, err := engine.SubmitAnswer("child-1", "q1", 1); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	result, err := engine.SubmitAnswer("child-1", "q2", 0)
	if err != nil {
		t.Fatalf("second answer: %v", err)
	}

	if !result.IsCorrect {
		t.Error("second answer should be correct")
	}
	if len(result.NewAchievements) != 1 || result.NewAchievements[0].Type != models.PerfectStreakBeginner {
		t.Fatalf("achievements = %v, want perfect_streak_beginner", result.NewAchievements)
	}
	// 1 XP per answer plus 5 for the badge: 1 + 1 + 5 = 7.
	if result.Reward.Level != 0 || result.Reward.XP != 7 {
		t.Errorf("reward = level %d xp %d, want level 0 xp 7", result.Reward.Level, result.Reward.XP)
	}
}

func TestSubmitAnswerIncorrect(t *testing.T) {
	engine, questions, _, rewards := newTestEngine()
	questions.addQuestion("q1", "child-1", 2)

	result, err := engine.SubmitAnswer("child-1", "q1", 0)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if result.IsCorrect {
		t.Error("answer should be incorrect")
	}
	if len(result.NewAchievements) != 0 {
		t.Errorf("no achievements expected, got %d", len(result.NewAchievements))
	}
	if result.Reward != nil {
		t.Error("incorrect answer must not touch the reward")
	}
	if len(rewards.rewards) != 0 {
		t.Error("no reward record should be created for an incorrect answer")
	}
}

func TestSubmitAnswerRetryAfterIncorrect(t *testing.T) {
	engine, questions, _, _ := newTestEngine()
	questions.addQuestion("q1", "child-1", 2)

	if _, err := engine.SubmitAnswer("child-1", "q1", 0); err != nil {
		t.Fatalf("wrong attempt: %v", err)
	}
	result, err := engine.SubmitAnswer("child-1", "q1", 2)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !result.IsCorrect {
		t.Error("retry with the right option should score")
	}
	if result.Question.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", result.Question.Attempts)
	}
}

func TestSubmitAnswerConflictOnScoredQuestion(t *testing.T) {
	engine, questions, _, rewards := newTestEngine()
	questions.addQuestion("q1", "child-1", 1)

	if _, err := engine.SubmitAnswer("child-1", "q1", 1); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	before := *rewards.rewards["child-1"]

	_, err := engine.SubmitAnswer("child-1", "q1", 1)
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("err = %v, want ErrAlreadyAnswered", err)
	}
	after := *rewards.rewards["child-1"]
	if before != after {
		t.Error("re-answering a scored question must not mutate the reward")
	}
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	engine, _, _, _ := newTestEngine()
	_, err := engine.SubmitAnswer("child-1", "missing", 0)
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestSubmitAnswerInvalidOption(t *testing.T) {
	engine, questions, _, _ := newTestEngine()
	questions.addQuestion("q1", "child-1", 1)
	_, err := engine.SubmitAnswer("child-1", "q1", 7)
	if !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("err = %v, want ErrInvalidOption", err)
	}
}

// Reaching 10 total correct unlocks Science Explorer with the counter
// stamped on the achievement.
func TestSubmitAnswerTotalUnlock(t *testing.T) {
	engine, questions, achievements, _ := newTestEngine()

	var last *AnswerResult
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		questions.addQuestion(id, "child-1", 0)
		// Break the streak before every answer so only total thresholds fire.
		questions.streak = 0
		var err error
		last, err = engine.SubmitAnswer("child-1", id, 0)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	if len(last.NewAchievements) != 1 {
		t.Fatalf("achievements on 10th answer = %d, want 1", len(last.NewAchievements))
	}
	a := last.NewAchievements[0]
	if a.Type != models.ScienceExplorer {
		t.Errorf("type = %s, want science_explorer", a.Type)
	}
	if a.TotalCorrect == nil || *a.TotalCorrect != 10 {
		t.Errorf("total stamp = %v, want 10", a.TotalCorrect)
	}
	if achievements.created != 1 {
		t.Errorf("store created %d achievements, want 1", achievements.created)
	}
}

func TestSubmitAnswerLevelCap(t *testing.T) {
	engine, questions, _, rewards := newTestEngine()
	rewards.rewards["child-1"] = &models.Reward{RewardID: "rw-child-1", ChildID: "child-1", Level: 10, XP: 9}
	questions.addQuestion("q1", "child-1", 0)
	questions.streak = 10 // past thresholds already earned
	questions.total = 200

	// Pre-own every auto achievement so only the answer XP lands.
	achievementStore := engine.evaluator.achievements.(*fakeAchievementStore)
	for _, def := range append(StreakDefinitions(), TotalDefinitions()...) {
		achievementStore.achievements[achievementKey("child-1", def.Type)] = &models.Achievement{ChildID: "child-1", Type: def.Type}
	}

	result, err := engine.SubmitAnswer("child-1", "q1", 0)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if result.Reward.Level != 10 || result.Reward.XP != 10 {
		t.Errorf("reward = level %d xp %d, want level 10 xp 10", result.Reward.Level, result.Reward.XP)
	}
}
