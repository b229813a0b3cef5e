package handler

import (
	"net/http"

	"prodexa/internal/auth"
	"prodexa/internal/model"

	"github.com/rs/zerolog"
)

// AuthHandler handles operator login.
type AuthHandler struct {
	auth   auth.Authenticator
	logger zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authenticator auth.Authenticator, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   authenticator,
		logger: logger.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /api/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, token)
}
