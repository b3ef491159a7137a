package handlers

import (
	"net/http"
	"time"

	"buddy/internal/models"
	"buddy/internal/service"
)

// ChildHandler serves parent-facing child account management
type ChildHandler struct {
	userService *service.UserService
	quizService *service.QuizService
}

// NewChildHandler creates a new child handler
func NewChildHandler(userService *service.UserService, quizService *service.QuizService) *ChildHandler {
	return &ChildHandler{userService: userService, quizService: quizService}
}

type createChildRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Nickname  string `json:"nickname"`
	BirthDate string `json:"birth_date"`
}

// CreateChild creates a child account for the authenticated parent.
// The generated credentials appear in this response only.
func (h *ChildHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req createChildRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
			return
		}
		birthDate = &parsed
	}

	child, creds, err := h.userService.CreateChild(r.Context(), UserIDFromContext(r), req.FirstName, req.LastName, req.Nickname, birthDate)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"child":       child,
		"credentials": creds,
	})
}

// ListChildren lists the parent's children
func (h *ChildHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.userService.GetChildren(UserIDFromContext(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if children == nil {
		children = []models.Child{}
	}
	respondJSON(w, http.StatusOK, children)
}

// GetChild returns one of the parent's children
func (h *ChildHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	child, err := h.userService.GetChild(UserIDFromContext(r), r.PathValue("childID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

type childStatusRequest struct {
	Status models.ChildStatus `json:"status"`
}

// SetChildStatus activates or deactivates a child account
func (h *ChildHandler) SetChildStatus(w http.ResponseWriter, r *http.Request) {
	var req childStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status != models.ChildActive && req.Status != models.ChildInactive {
		respondError(w, http.StatusBadRequest, "status must be Active or Inactive")
		return
	}

	if err := h.userService.SetChildStatus(UserIDFromContext(r), r.PathValue("childID"), req.Status); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

// GetChildProgress returns a child's gamification state for the parent
func (h *ChildHandler) GetChildProgress(w http.ResponseWriter, r *http.Request) {
	child, err := h.userService.GetChild(UserIDFromContext(r), r.PathValue("childID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	progress, err := h.quizService.GetProgress(child.ChildID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}
