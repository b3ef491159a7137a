package handlers

import (
	"net/http"
	"strconv"

	"buddy/internal/service"
)

// QuizHandler serves the child-facing quiz endpoints
type QuizHandler struct {
	quizService *service.QuizService
	userService *service.UserService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService, userService *service.UserService) *QuizHandler {
	return &QuizHandler{quizService: quizService, userService: userService}
}

type generateQuestionRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

// GenerateQuestion creates a new question for the authenticated child
func (h *QuizHandler) GenerateQuestion(w http.ResponseWriter, r *http.Request) {
	var req generateQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	child, err := h.userService.RequireChild(UserIDFromContext(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	question, err := h.quizService.GenerateQuestion(r.Context(), child, req.Topic, req.Difficulty)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, question)
}

type answerRequest struct {
	SelectedIndex *int `json:"selected_index"`
}

// SubmitAnswer scores an answer and returns the gamification outcome
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SelectedIndex == nil {
		respondError(w, http.StatusBadRequest, "selected_index is required")
		return
	}

	result, err := h.quizService.SubmitAnswer(UserIDFromContext(r), r.PathValue("questionID"), *req.SelectedIndex)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ListQuestions returns the child's recent questions
func (h *QuizHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	questions, err := h.quizService.GetRecentQuestions(UserIDFromContext(r), limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, questions)
}

// GetProgress returns the child's own gamification state
func (h *QuizHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.quizService.GetProgress(UserIDFromContext(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// ListTopics returns the available quiz topics
func (h *QuizHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.quizService.Topics()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if topics == nil {
		topics = []string{}
	}
	respondJSON(w, http.StatusOK, topics)
}
