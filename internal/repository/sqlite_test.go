package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"buddy/internal/config"
	"buddy/internal/database"
	"buddy/internal/gamification"
	"buddy/internal/models"
)

// newTestDB opens a migrated SQLite database in a per-test directory
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := &config.Config{
		DatabaseType:   "sqlite3",
		DatabasePath:   filepath.Join(t.TempDir(), "test.db"),
		MigrationsPath: "../../migrations",
	}
	db, err := database.Initialize(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func seedChild(t *testing.T, db *database.DB) *models.Child {
	t.Helper()
	users := NewUserRepository(db)

	parent, err := users.CreateParent("pat@example.com", "pat", "hash", "Pat", "Example")
	if err != nil {
		t.Fatalf("Failed to create parent: %v", err)
	}
	child, err := users.CreateChild(&models.Child{
		ParentID:     parent.ParentID,
		FirstName:    "Sam",
		LastName:     "Example",
		Username:     "samexample_pat",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("Failed to create child: %v", err)
	}
	return child
}

func seedQuestion(t *testing.T, repo *QuestionRepository, childID string, correctIndex int) *models.ScienceQuestion {
	t.Helper()
	q, err := repo.CreateQuestion(&models.ScienceQuestion{
		ChildID:         childID,
		ChunkID:         "chunk-1",
		Topic:           "space",
		DifficultyLevel: models.DifficultyEasy,
		AgeRange:        "6-8",
		Question:        "Which planet is closest to the sun?",
		Options:         []string{"Venus", "Mercury", "Earth", "Mars"},
		CorrectIndex:    correctIndex,
		Explanation:     "Mercury orbits closest to the sun.",
	})
	if err != nil {
		t.Fatalf("Failed to create question: %v", err)
	}
	return q
}

// Two correct answers build a streak; an incorrect one resets the walk
// while the total keeps counting.
func TestQuestionRepositoryStreakWalk(t *testing.T) {
	db := newTestDB(t)
	child := seedChild(t, db)
	repo := NewQuestionRepository(db)

	q1 := seedQuestion(t, repo, child.ChildID, 1)
	q2 := seedQuestion(t, repo, child.ChildID, 0)
	q3 := seedQuestion(t, repo, child.ChildID, 2)

	out, err := repo.RecordAnswer(q1.QuestionID, 1)
	if err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if !out.IsCorrect || out.CurrentStreak != 1 || out.TotalCorrect != 1 {
		t.Errorf("first answer = correct %v streak %d total %d, want true 1 1",
			out.IsCorrect, out.CurrentStreak, out.TotalCorrect)
	}

	out, err = repo.RecordAnswer(q2.QuestionID, 0)
	if err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if out.CurrentStreak != 2 || out.TotalCorrect != 2 {
		t.Errorf("second answer = streak %d total %d, want 2 2", out.CurrentStreak, out.TotalCorrect)
	}

	out, err = repo.RecordAnswer(q3.QuestionID, 0)
	if err != nil {
		t.Fatalf("third answer: %v", err)
	}
	if out.IsCorrect {
		t.Error("third answer should be incorrect")
	}
	if out.CurrentStreak != 0 || out.TotalCorrect != 2 {
		t.Errorf("third answer = streak %d total %d, want 0 2", out.CurrentStreak, out.TotalCorrect)
	}

	streak, err := repo.CurrentStreak(child.ChildID)
	if err != nil {
		t.Fatalf("CurrentStreak: %v", err)
	}
	if streak != 0 {
		t.Errorf("streak after miss = %d, want 0", streak)
	}
	total, err := repo.TotalCorrect(child.ChildID)
	if err != nil {
		t.Fatalf("TotalCorrect: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
}

func TestQuestionRepositoryRecordAnswerErrors(t *testing.T) {
	db := newTestDB(t)
	child := seedChild(t, db)
	repo := NewQuestionRepository(db)

	if _, err := repo.RecordAnswer("missing", 0); !errors.Is(err, gamification.ErrQuestionNotFound) {
		t.Errorf("missing question err = %v, want ErrQuestionNotFound", err)
	}

	q := seedQuestion(t, repo, child.ChildID, 1)
	if _, err := repo.RecordAnswer(q.QuestionID, 7); !errors.Is(err, gamification.ErrInvalidOption) {
		t.Errorf("out-of-range option err = %v, want ErrInvalidOption", err)
	}

	// Incorrect answers leave the question open for another attempt.
	out, err := repo.RecordAnswer(q.QuestionID, 0)
	if err != nil {
		t.Fatalf("incorrect answer: %v", err)
	}
	if out.IsCorrect {
		t.Error("answer should be incorrect")
	}
	out, err = repo.RecordAnswer(q.QuestionID, 1)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !out.IsCorrect || out.Question.Attempts != 2 {
		t.Errorf("retry = correct %v attempts %d, want true 2", out.IsCorrect, out.Question.Attempts)
	}

	// A correctly scored question is terminal.
	if _, err := repo.RecordAnswer(q.QuestionID, 1); !errors.Is(err, gamification.ErrAlreadyAnswered) {
		t.Errorf("re-answer err = %v, want ErrAlreadyAnswered", err)
	}
}

// The compare-and-swap update refuses stale level/xp pairs.
func TestRewardRepositoryCompareAndSwap(t *testing.T) {
	db := newTestDB(t)
	child := seedChild(t, db)
	repo := NewRewardRepository(db)

	created, err := repo.CreateReward(child.ChildID)
	if err != nil {
		t.Fatalf("CreateReward: %v", err)
	}

	next := *created
	next.Level = 0
	next.XP = 1
	ok, err := repo.UpdateReward(&next, 0, 0)
	if err != nil {
		t.Fatalf("UpdateReward: %v", err)
	}
	if !ok {
		t.Fatal("update with matching prev state should succeed")
	}

	// The same prev state is now stale.
	stale := *created
	stale.XP = 5
	ok, err = repo.UpdateReward(&stale, 0, 0)
	if err != nil {
		t.Fatalf("UpdateReward stale: %v", err)
	}
	if ok {
		t.Error("update against a stale snapshot must report no match")
	}

	stored, err := repo.GetReward(child.ChildID)
	if err != nil {
		t.Fatalf("GetReward: %v", err)
	}
	if stored.Level != 0 || stored.XP != 1 {
		t.Errorf("stored reward = level %d xp %d, want level 0 xp 1", stored.Level, stored.XP)
	}

	// A second create hits the child_id unique constraint and returns
	// the existing record.
	again, err := repo.CreateReward(child.ChildID)
	if err != nil {
		t.Fatalf("second CreateReward: %v", err)
	}
	if again.RewardID != created.RewardID {
		t.Errorf("second create returned %s, want existing %s", again.RewardID, created.RewardID)
	}
}

// The (child_id, type) unique constraint backstops duplicate awards.
func TestAchievementRepositoryDuplicateBackstop(t *testing.T) {
	db := newTestDB(t)
	child := seedChild(t, db)
	repo := NewAchievementRepository(db)

	streak := 2
	first, err := repo.CreateAchievement(&models.Achievement{
		ChildID:     child.ChildID,
		Type:        models.PerfectStreakBeginner,
		Title:       "Perfect Streak Beginner",
		Description: "Answer 2 questions in a row correctly",
		StreakCount: &streak,
	})
	if err != nil {
		t.Fatalf("CreateAchievement: %v", err)
	}
	if first.AchievementID == "" {
		t.Error("created achievement should carry an id")
	}

	_, err = repo.CreateAchievement(&models.Achievement{
		ChildID:     child.ChildID,
		Type:        models.PerfectStreakBeginner,
		Title:       "Perfect Streak Beginner",
		Description: "Answer 2 questions in a row correctly",
		StreakCount: &streak,
	})
	if !errors.Is(err, gamification.ErrDuplicateAchievement) {
		t.Fatalf("duplicate err = %v, want ErrDuplicateAchievement", err)
	}

	owned, err := repo.HasAchievement(child.ChildID, models.PerfectStreakBeginner)
	if err != nil {
		t.Fatalf("HasAchievement: %v", err)
	}
	if !owned {
		t.Error("achievement should be owned after the first create")
	}
}
