package api

import (
	"net/http"
	"time"

	"github.com/vpapadim/anagnostirio/internal/auth"
	httperrors "github.com/vpapadim/anagnostirio/internal/http/errors"
)

type sessionResponse struct {
	Email   string `json:"email"`
	Expires string `json:"expires"`
}

// SessionInfo answers GET /api/auth/session, the front end's probe for "am I
// signed in". Tokens are never echoed back.
func (h *Handler) SessionInfo(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		httperrors.Unauthorized(w)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Email:   sess.Email,
		Expires: sess.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
