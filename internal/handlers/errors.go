package handlers

import (
	"errors"
	"log"
	"net/http"

	"buddy/internal/gamification"
	"buddy/internal/llm"
	"buddy/internal/service"
	"buddy/internal/validation"
)

// handleServiceError maps service errors onto HTTP statuses and writes
// the response. Unknown errors become 500s with the detail logged, not
// leaked.
func handleServiceError(w http.ResponseWriter, err error) {
	var valErr validation.ValidationError
	if errors.As(err, &valErr) {
		respondError(w, http.StatusBadRequest, valErr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrChildInactive):
		respondError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrOTPInvalid),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrInvalidDifficulty),
		errors.Is(err, gamification.ErrInvalidOption):
		respondError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrNotYourChild):
		respondError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrChildNotFound),
		errors.Is(err, service.ErrStoryNotFound),
		errors.Is(err, gamification.ErrQuestionNotFound),
		errors.Is(err, gamification.ErrRewardNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, gamification.ErrAlreadyAnswered):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrNoChunks):
		respondError(w, http.StatusServiceUnavailable, err.Error())

	default:
		if isProviderError(err) {
			log.Printf("Model provider error: %v", err)
			respondError(w, http.StatusBadGateway, "content generation is temporarily unavailable")
			return
		}
		log.Printf("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isProviderError(err error) bool {
	var rateLimit *llm.ErrRateLimit
	var invalid *llm.ErrInvalidResponse
	var unavailable *llm.ErrProviderUnavailable
	var truncated *llm.ErrMaxTokensExceeded
	return errors.As(err, &rateLimit) ||
		errors.As(err, &invalid) ||
		errors.As(err, &unavailable) ||
		errors.As(err, &truncated)
}
