package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"buddy/internal/database"
	"buddy/internal/gamification"
	"buddy/internal/models"
)

// QuestionRepository handles database operations for science questions
type QuestionRepository struct {
	db *database.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// CreateQuestion stores a freshly generated question
func (r *QuestionRepository) CreateQuestion(q *models.ScienceQuestion) (*models.ScienceQuestion, error) {
	q.QuestionID = uuid.NewString()
	q.CreatedAt = time.Now().UTC()

	options, err := marshalStrings(q.Options)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO science_questions (question_id, child_id, chunk_id, topic, difficulty_level, age_range, question, options, correct_index, explanation, selected_index, scored, attempts, created_at, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, FALSE, 0, ?, NULL)
	`
	_, err = r.db.Exec(query,
		q.QuestionID, q.ChildID, q.ChunkID, q.Topic, q.DifficultyLevel,
		q.AgeRange, q.Question, options, q.CorrectIndex, q.Explanation,
		q.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return q, nil
}

// GetQuestionByID retrieves a question by ID
func (r *QuestionRepository) GetQuestionByID(questionID string) (*models.ScienceQuestion, error) {
	return getQuestion(r.db, questionID)
}

func getQuestion(dbtx database.DBTX, questionID string) (*models.ScienceQuestion, error) {
	query := `
		SELECT question_id, child_id, chunk_id, topic, difficulty_level, age_range, question, options, correct_index, explanation, selected_index, scored, attempts, created_at, answered_at
		FROM science_questions WHERE question_id = ?
	`
	return scanQuestion(dbtx.QueryRow(query, questionID))
}

// GetRecentQuestions retrieves a child's latest questions, newest first
func (r *QuestionRepository) GetRecentQuestions(childID string, limit int) ([]models.ScienceQuestion, error) {
	query := `
		SELECT question_id, child_id, chunk_id, topic, difficulty_level, age_range, question, options, correct_index, explanation, selected_index, scored, attempts, created_at, answered_at
		FROM science_questions
		WHERE child_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, childID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.ScienceQuestion
	for rows.Next() {
		q, err := r.scanQuestionRows(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}

	return questions, rows.Err()
}

// RecordAnswer scores the selected option against the question and
// recomputes the child's streak/total counters, all inside one
// transaction so the counters reflect exactly this answer. It returns
// gamification.ErrQuestionNotFound, ErrAlreadyAnswered or
// ErrInvalidOption on the corresponding failures. A correct answer is
// terminal; an incorrect one leaves the question open for retry.
func (r *QuestionRepository) RecordAnswer(questionID string, selectedIndex int) (*gamification.AnswerOutcome, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin answer transaction: %w", err)
	}
	defer tx.Rollback()

	q, err := getQuestion(tx, questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, gamification.ErrQuestionNotFound
	}
	if q.Scored {
		return nil, gamification.ErrAlreadyAnswered
	}
	if selectedIndex < 0 || selectedIndex >= len(q.Options) {
		return nil, gamification.ErrInvalidOption
	}

	correct := selectedIndex == q.CorrectIndex
	now := time.Now().UTC()

	// The scored guard repeats in the WHERE clause so two concurrent
	// submissions cannot both score the question.
	query := `
		UPDATE science_questions
		SET selected_index = ?, scored = ?, attempts = attempts + 1, answered_at = ?
		WHERE question_id = ? AND scored = FALSE
	`
	result, err := tx.Exec(query, selectedIndex, correct, now, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to record answer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check answer update: %w", err)
	}
	if affected == 0 {
		return nil, gamification.ErrAlreadyAnswered
	}

	streak, err := currentStreak(tx, q.ChildID)
	if err != nil {
		return nil, err
	}
	total, err := totalCorrect(tx, q.ChildID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit answer: %w", err)
	}

	q.SelectedIndex = &selectedIndex
	q.Scored = correct
	q.Attempts++
	q.AnsweredAt = &now
	return &gamification.AnswerOutcome{
		IsCorrect:     correct,
		Question:      q,
		CurrentStreak: streak,
		TotalCorrect:  total,
	}, nil
}

// CurrentStreak counts the child's consecutive correct answers, walking
// the answered history newest first and stopping at the first miss.
func (r *QuestionRepository) CurrentStreak(childID string) (int, error) {
	return currentStreak(r.db, childID)
}

func currentStreak(dbtx database.DBTX, childID string) (int, error) {
	query := `
		SELECT scored
		FROM science_questions
		WHERE child_id = ? AND answered_at IS NOT NULL
		ORDER BY answered_at DESC
	`
	rows, err := dbtx.Query(query, childID)
	if err != nil {
		return 0, fmt.Errorf("failed to query answer history: %w", err)
	}
	defer rows.Close()

	streak := 0
	for rows.Next() {
		var scored bool
		if err := rows.Scan(&scored); err != nil {
			return 0, fmt.Errorf("failed to scan answer: %w", err)
		}
		if !scored {
			break
		}
		streak++
	}

	return streak, rows.Err()
}

// TotalCorrect counts all of the child's correctly answered questions
func (r *QuestionRepository) TotalCorrect(childID string) (int, error) {
	return totalCorrect(r.db, childID)
}

func totalCorrect(dbtx database.DBTX, childID string) (int, error) {
	query := "SELECT COUNT(*) FROM science_questions WHERE child_id = ? AND scored = TRUE"
	var total int
	if err := dbtx.QueryRow(query, childID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count correct answers: %w", err)
	}
	return total, nil
}

func scanQuestion(row *sql.Row) (*models.ScienceQuestion, error) {
	q := &models.ScienceQuestion{}
	var options string
	err := row.Scan(
		&q.QuestionID, &q.ChildID, &q.ChunkID, &q.Topic, &q.DifficultyLevel,
		&q.AgeRange, &q.Question, &options, &q.CorrectIndex, &q.Explanation,
		&q.SelectedIndex, &q.Scored, &q.Attempts, &q.CreatedAt, &q.AnsweredAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if q.Options, err = unmarshalStrings(options); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuestionRepository) scanQuestionRows(rows *sql.Rows) (*models.ScienceQuestion, error) {
	q := &models.ScienceQuestion{}
	var options string
	err := rows.Scan(
		&q.QuestionID, &q.ChildID, &q.ChunkID, &q.Topic, &q.DifficultyLevel,
		&q.AgeRange, &q.Question, &options, &q.CorrectIndex, &q.Explanation,
		&q.SelectedIndex, &q.Scored, &q.Attempts, &q.CreatedAt, &q.AnsweredAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan question: %w", err)
	}
	if q.Options, err = unmarshalStrings(options); err != nil {
		return nil, err
	}
	return q, nil
}
