package handlers

import (
	"net/http"

	"buddy/internal/service"
)

// AuthHandler serves registration, verification and login
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

type registerRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register parks a parent signup and emails the verification code
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.Register(r.Context(), req.Email, req.Username, req.Password, req.FirstName, req.LastName); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "verification code sent",
	})
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP consumes the code and creates the parent account
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	parent, token, err := h.authService.VerifyOTP(req.Email, req.OTP)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"parent": parent,
		"token":  token,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a parent or child
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Me returns the authenticated account's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.GetProfile(UserIDFromContext(r), RoleFromContext(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
