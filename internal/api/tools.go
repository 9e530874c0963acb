package api

import (
	"net/http"

	"github.com/vpapadim/anagnostirio/internal/tools"
)

type toolsResponse struct {
	Tools []tools.Tool `json:"tools"`
}

// ListTools answers GET /api/tools. It is the one unauthenticated API
// surface, and it never fails: discovery degrades to an empty list.
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toolsResponse{Tools: tools.Discover(h.cfg.ToolsDir)})
}
