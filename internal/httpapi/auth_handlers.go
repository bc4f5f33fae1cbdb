package httpapi

import (
	"net/http"
	"strings"
	"time"

	"openconext.org/invite/internal/audit"
	"openconext.org/invite/internal/authority"
	"openconext.org/invite/internal/token"
)

type tokenRequest struct {
	User      string              `json:"user"`
	Authority authority.Authority `json:"authority"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

const tokenTTL = 15 * time.Minute

func (a *API) handleAuthToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if !token.Enabled() {
		writeError(w, r, http.StatusServiceUnavailable, "token issuing is not configured")
		return
	}

	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user := strings.TrimSpace(req.User)
	if user == "" {
		writeError(w, r, http.StatusBadRequest, "user is required")
		return
	}
	if req.Authority != "" && !authority.Valid(req.Authority) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":     "invalid_authority",
			"authority": string(req.Authority),
		})
		return
	}

	signed, err := token.Generate(user, req.Authority, tokenTTL)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}

	expiresAt := time.Now().UTC().Add(tokenTTL)
	_ = audit.LogEvent(r.Context(), "auth.token.issued", map[string]any{
		"user":       user,
		"authority":  req.Authority,
		"expires_at": expiresAt.Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
	})
}
