package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"buddy/internal/gamification"
	"buddy/internal/llm"
	"buddy/internal/models"
	"buddy/internal/repository"
	"buddy/internal/vector"
)

var (
	ErrNoChunks          = errors.New("no book content available for quiz generation")
	ErrInvalidDifficulty = errors.New("invalid difficulty level")
)

// questionSchema is the structured output contract for quiz generation
var questionSchema = &llm.Schema{
	Name:        "science-question",
	Description: "A multiple-choice science question for a child",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"question", "options", "correct_index", "explanation"},
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text, phrased for the child's age",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly four answer options",
			},
			"correct_index": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "Index of the correct option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A short kid-friendly explanation of the answer",
			},
		},
		"additionalProperties": false,
	},
}

// generatedQuestion mirrors the schema for decoding
type generatedQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// QuizService generates science questions and scores answers
type QuizService struct {
	questionRepo    *repository.QuestionRepository
	achievementRepo *repository.AchievementRepository
	rewardRepo      *repository.RewardRepository
	store           *vector.Store
	provider        llm.Provider
	engine          *gamification.Engine
}

// NewQuizService creates a new quiz service
func NewQuizService(
	questionRepo *repository.QuestionRepository,
	achievementRepo *repository.AchievementRepository,
	rewardRepo *repository.RewardRepository,
	store *vector.Store,
	provider llm.Provider,
) *QuizService {
	evaluator := gamification.NewEvaluator(achievementRepo)
	ledger := gamification.NewLedger(rewardRepo)
	return &QuizService{
		questionRepo:    questionRepo,
		achievementRepo: achievementRepo,
		rewardRepo:      rewardRepo,
		store:           store,
		provider:        provider,
		engine:          gamification.NewEngine(questionRepo, evaluator, ledger),
	}
}

// GenerateQuestion creates a new question for the child from a random
// book chunk, optionally restricted to a topic
func (s *QuizService) GenerateQuestion(ctx context.Context, child *models.Child, topic, difficulty string) (*models.ScienceQuestion, error) {
	switch difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	case "":
		difficulty = models.DifficultyEasy
	default:
		return nil, ErrInvalidDifficulty
	}

	chunk, err := s.store.RandomChunk(topic)
	if err != nil {
		return nil, err
	}
	if chunk == nil {
		return nil, ErrNoChunks
	}

	ageRange := AgeRange(child.BirthDate)

	system := "You write science quiz questions for children. " +
		"Base the question strictly on the provided book excerpt. " +
		"Keep the language simple, positive, and free of scary or violent content."
	prompt := fmt.Sprintf(
		"Write one %s multiple-choice question for a child aged %s.\n\nBook excerpt:\n%s",
		difficulty, ageRange, chunk.Content)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      questionSchema,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate question: %w", err)
	}

	var gen generatedQuestion
	if err := json.Unmarshal(resp.Content, &gen); err != nil {
		return nil, fmt.Errorf("failed to decode question: %w", err)
	}

	question, err := s.questionRepo.CreateQuestion(&models.ScienceQuestion{
		ChildID:         child.ChildID,
		ChunkID:         chunk.ChunkID,
		Topic:           chunk.Topic,
		DifficultyLevel: difficulty,
		AgeRange:        ageRange,
		Question:        gen.Question,
		Options:         gen.Options,
		CorrectIndex:    gen.CorrectIndex,
		Explanation:     gen.Explanation,
	})
	if err != nil {
		return nil, err
	}
	redactUnanswered(question)
	return question, nil
}

// redactUnanswered blanks the answer rationale on questions the child
// has not answered yet, so responses cannot leak it ahead of time.
func redactUnanswered(q *models.ScienceQuestion) {
	if !q.Answered() {
		q.Explanation = ""
	}
}

// SubmitAnswer scores the child's answer and runs the gamification
// engine. The question must belong to the child.
func (s *QuizService) SubmitAnswer(childID, questionID string, selectedIndex int) (*gamification.AnswerResult, error) {
	question, err := s.questionRepo.GetQuestionByID(questionID)
	if err != nil {
		return nil, err
	}
	if question == nil || question.ChildID != childID {
		return nil, gamification.ErrQuestionNotFound
	}

	return s.engine.SubmitAnswer(childID, questionID, selectedIndex)
}

// GetRecentQuestions lists the child's latest questions
func (s *QuizService) GetRecentQuestions(childID string, limit int) ([]models.ScienceQuestion, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	questions, err := s.questionRepo.GetRecentQuestions(childID, limit)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		redactUnanswered(&questions[i])
	}
	return questions, nil
}

// GetProgress assembles the child's gamification state
func (s *QuizService) GetProgress(childID string) (*gamification.ProgressReport, error) {
	reward, err := s.rewardRepo.GetReward(childID)
	if err != nil {
		return nil, err
	}
	earned, err := s.achievementRepo.GetChildAchievements(childID)
	if err != nil {
		return nil, err
	}
	streak, err := s.questionRepo.CurrentStreak(childID)
	if err != nil {
		return nil, err
	}
	total, err := s.questionRepo.TotalCorrect(childID)
	if err != nil {
		return nil, err
	}

	return gamification.BuildProgress(reward, earned, streak, total), nil
}

// Topics lists the topics available for quiz generation
func (s *QuizService) Topics() ([]string, error) {
	return s.store.Topics()
}

// AgeRange buckets a birth date into the bands the prompts use.
// Unknown birth dates land in the middle band.
func AgeRange(birthDate *time.Time) string {
	if birthDate == nil {
		return "6-8"
	}
	years := int(time.Since(*birthDate).Hours() / 24 / 365.25)
	switch {
	case years <= 5:
		return "3-5"
	case years <= 8:
		return "6-8"
	case years <= 12:
		return "9-12"
	default:
		return "13-15"
	}
}
