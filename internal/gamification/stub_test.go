package gamification

import (
	"errors"
	"fmt"
	"time"

	"buddy/internal/models"
)

// fakeAchievementStore keeps achievements in a map keyed by (child, type)
type fakeAchievementStore struct {
	achievements map[string]*models.Achievement
	failCreate   bool
	created      int
}

func newFakeAchievementStore() *fakeAchievementStore {
	return &fakeAchievementStore{achievements: make(map[string]*models.Achievement)}
}

func achievementKey(childID string, t models.AchievementType) string {
	return childID + "/" + string(t)
}

func (s *fakeAchievementStore) HasAchievement(childID string, t models.AchievementType) (bool, error) {
	_, ok := s.achievements[achievementKey(childID, t)]
	return ok, nil
}

func (s *fakeAchievementStore) CreateAchievement(a *models.Achievement) (*models.Achievement, error) {
	if s.failCreate {
		return nil, errors.New("storage down")
	}
	key := achievementKey(a.ChildID, a.Type)
	if _, ok := s.achievements[key]; ok {
		return nil, ErrDuplicateAchievement
	}
	s.created++
	stored := *a
	stored.AchievementID = fmt.Sprintf("ach-%d", s.created)
	stored.EarnedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.achievements[key] = &stored
	return &stored, nil
}

// fakeRewardStore keeps one reward per child and honors the
// compare-and-swap contract of UpdateReward
type fakeRewardStore struct {
	rewards map[string]*models.Reward

	// conflictUpdates makes the next N updates fail the CAS check, as a
	// concurrent writer would
	conflictUpdates int
}

func newFakeRewardStore() *fakeRewardStore {
	return &fakeRewardStore{rewards: make(map[string]*models.Reward)}
}

func (s *fakeRewardStore) GetReward(childID string) (*models.Reward, error) {
	r, ok := s.rewards[childID]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (s *fakeRewardStore) CreateReward(childID string) (*models.Reward, error) {
	r := &models.Reward{RewardID: "rw-" + childID, ChildID: childID}
	s.rewards[childID] = r
	copied := *r
	return &copied, nil
}

func (s *fakeRewardStore) UpdateReward(next *models.Reward, prevLevel, prevXP int) (bool, error) {
	if s.conflictUpdates > 0 {
		s.conflictUpdates--
		return false, nil
	}
	current, ok := s.rewards[next.ChildID]
	if !ok || current.Level != prevLevel || current.XP != prevXP {
		return false, nil
	}
	next.UpdatedAt = time.Now().UTC()
	copied := *next
	s.rewards[next.ChildID] = &copied
	return true, nil
}

// fakeQuestionStore replays a scripted question history
type fakeQuestionStore struct {
	questions map[string]*models.ScienceQuestion
	streak    int
	total     int
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: make(map[string]*models.ScienceQuestion)}
}

func (s *fakeQuestionStore) addQuestion(id, childID string, correctIndex int) {
	s.questions[id] = &models.ScienceQuestion{
		QuestionID:   id,
		ChildID:      childID,
		Question:     "Which planet is closest to the sun?",
		Options:      []string{"Venus", "Mercury", "Earth", "Mars"},
		CorrectIndex: correctIndex,
	}
}

func (s *fakeQuestionStore) RecordAnswer(questionID string, selectedIndex int) (*AnswerOutcome, error) {
	q, ok := s.questions[questionID]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	if q.Scored {
		return nil, ErrAlreadyAnswered
	}
	if selectedIndex < 0 || selectedIndex >= len(q.Options) {
		return nil, ErrInvalidOption
	}
	correct := selectedIndex == q.CorrectIndex
	q.SelectedIndex = &selectedIndex
	q.Scored = correct
	q.Attempts++
	now := time.Now()
	q.AnsweredAt = &now
	if correct {
		s.streak++
		s.total++
	} else {
		s.streak = 0
	}
	copied := *q
	return &AnswerOutcome{
		IsCorrect:     correct,
		Question:      &copied,
		CurrentStreak: s.streak,
		TotalCorrect:  s.total,
	}, nil
}
