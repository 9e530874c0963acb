// Package api implements the JSON endpoints the browser front end talks to.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/vpapadim/anagnostirio/internal/config"
	"github.com/vpapadim/anagnostirio/internal/drive"
	"github.com/vpapadim/anagnostirio/internal/folders"
)

// Handler holds the read-only dependencies shared by all endpoints.
type Handler struct {
	cfg      *config.Config
	registry *folders.Registry
	drive    drive.Adapter
}

func NewHandler(cfg *config.Config, registry *folders.Registry, adapter drive.Adapter) *Handler {
	return &Handler{cfg: cfg, registry: registry, drive: adapter}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
