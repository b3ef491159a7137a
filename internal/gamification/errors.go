package gamification

import "errors"

var (
	// ErrQuestionNotFound is returned when the question a child is
	// answering does not exist
	ErrQuestionNotFound = errors.New("question not found")

	// ErrAlreadyAnswered is returned when a question already answered
	// correctly receives another attempt
	ErrAlreadyAnswered = errors.New("question already answered correctly")

	// ErrInvalidOption is returned when the selected option index is out
	// of range for the question
	ErrInvalidOption = errors.New("selected option out of range")

	// ErrRewardNotFound is returned when a reward update matched no record
	ErrRewardNotFound = errors.New("reward not found")

	// ErrDuplicateAchievement is returned by the storage layer when the
	// (child, type) uniqueness backstop rejects an insert
	ErrDuplicateAchievement = errors.New("achievement already earned")
)
