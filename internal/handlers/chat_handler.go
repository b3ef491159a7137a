package handlers

import (
	"net/http"

	"buddy/internal/service"
)

// ChatHandler serves the child's science chat
type ChatHandler struct {
	chatService *service.ChatService
	userService *service.UserService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService, userService *service.UserService) *ChatHandler {
	return &ChatHandler{chatService: chatService, userService: userService}
}

type chatRequest struct {
	Messages []service.ChatMessage `json:"messages"`
}

// Ask answers the latest message in the conversation
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		respondError(w, http.StatusBadRequest, "messages must not be empty")
		return
	}

	child, err := h.userService.RequireChild(UserIDFromContext(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	reply, err := h.chatService.Ask(r.Context(), child, req.Messages)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}
