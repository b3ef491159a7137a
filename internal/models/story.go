package models

import "time"

// Story is a personalized story generated for a child
type Story struct {
	StoryID       string    `json:"story_id"`
	ChildID       string    `json:"child_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// VocabularyWord is a word the child encountered in a story
type VocabularyWord struct {
	WordID       string    `json:"word_id"`
	StoryID      string    `json:"story_id"`
	ChildID      string    `json:"child_id"`
	Word         string    `json:"word"`
	Synonym      string    `json:"synonym,omitempty"`
	Meaning      string    `json:"meaning"`
	RelatedWords []string  `json:"related_words,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// VocabularyEntry is a vocabulary word joined with its story title
type VocabularyEntry struct {
	VocabularyWord
	StoryTitle string `json:"story_title"`
}
