package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/travelease/travelease/internal/auth"
	"github.com/travelease/travelease/internal/handler/dto"
)

// TokenHandler issues self-signed bearer tokens when the local auth
// strategy is active. With the idp strategy, clients obtain tokens from
// the identity provider instead and this handler is not routed.
type TokenHandler struct {
	verifier *auth.LocalVerifier
	ttl      time.Duration
	logger   *slog.Logger
}

// NewTokenHandler creates a TokenHandler.
func NewTokenHandler(verifier *auth.LocalVerifier, ttl time.Duration, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{verifier: verifier, ttl: ttl, logger: logger}
}

// Issue handles POST /auth/token.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "a valid email is required")
		return
	}

	token, err := h.verifier.Issue(email, h.ttl)
	if err != nil {
		h.logger.Error("token_issue_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
		return
	}

	h.logger.Info("token_issued", "subject", email)
	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}
