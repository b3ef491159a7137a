package models

import "time"

// Difficulty levels accepted for question generation
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ScienceQuestion is a multiple-choice question generated for a child.
//
// A question starts unanswered (AnsweredAt nil). Answering it scores the
// selected option against CorrectIndex; an incorrect question may be
// retried, a correctly answered one is terminal.
type ScienceQuestion struct {
	QuestionID      string     `json:"question_id"`
	ChildID         string     `json:"child_id"`
	ChunkID         string     `json:"chunk_id"`
	Topic           string     `json:"topic"`
	DifficultyLevel string     `json:"difficulty_level"`
	AgeRange        string     `json:"age_range"`
	Question        string     `json:"question"`
	Options         []string   `json:"options"`
	CorrectIndex    int        `json:"-"`
	Explanation     string     `json:"explanation,omitempty"`
	SelectedIndex   *int       `json:"selected_index,omitempty"`
	Scored          bool       `json:"scored"`
	Attempts        int        `json:"attempts"`
	CreatedAt       time.Time  `json:"created_at"`
	AnsweredAt      *time.Time `json:"answered_at,omitempty"`
}

// Answered reports whether the question has been answered at least once
func (q *ScienceQuestion) Answered() bool {
	return q.AnsweredAt != nil
}
