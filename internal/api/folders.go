package api

import (
	"net/http"

	"github.com/vpapadim/anagnostirio/internal/auth"
	httperrors "github.com/vpapadim/anagnostirio/internal/http/errors"
)

type folderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type foldersResponse struct {
	Folders []folderInfo `json:"folders"`
}

// ListFolders answers GET /api/folders with the registered content
// categories. Drive folder ids stay server-side.
func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.SessionFromContext(r.Context()); !ok {
		httperrors.Unauthorized(w)
		return
	}

	all := h.registry.All()
	out := make([]folderInfo, 0, len(all))
	for _, d := range all {
		out = append(out, folderInfo{ID: d.ID, Name: d.Name, Icon: d.Icon})
	}
	writeJSON(w, http.StatusOK, foldersResponse{Folders: out})
}
