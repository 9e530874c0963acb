package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vpapadim/anagnostirio/internal/auth"
	httperrors "github.com/vpapadim/anagnostirio/internal/http/errors"
	"github.com/vpapadim/anagnostirio/internal/metrics"
)

const pdfSuffix = ".pdf"

// FileRecord is the listing entry handed to the front end. It is built per
// request from provider data and never cached server-side.
type FileRecord struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Path           string   `json:"path"`
	Size           int64    `json:"size"`
	Modified       string   `json:"modified"`
	WebViewLink    string   `json:"webViewLink"`
	WebContentLink string   `json:"webContentLink"`
	Categories     []string `json:"categories"`
	Description    string   `json:"description"`
	Notes          string   `json:"notes"`
}

type listFilesResponse struct {
	Files      []FileRecord `json:"files"`
	Categories []string     `json:"categories"`
	Folder     string       `json:"folder"`
}

// ListFiles answers GET /api/files/{folderId}: the PDFs of one registered
// folder, in the provider's name-ascending order.
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		httperrors.Unauthorized(w)
		return
	}

	folderID := chi.URLParam(r, "folderId")
	folder, ok := h.registry.Resolve(folderID)
	if !ok {
		httperrors.BadRequestError(w, r, fmt.Errorf("unknown folder id %q", folderID), "Invalid folder")
		return
	}

	start := time.Now()
	files, err := h.drive.ListPDFs(r.Context(), sess.AccessToken, folder.DriveID)
	metrics.ObserveDriveLatency(r.Context(), "list", start)
	if err != nil {
		httperrors.InternalError(w, r, err, "Failed to fetch files")
		return
	}

	records := make([]FileRecord, 0, len(files))
	for _, f := range files {
		records = append(records, FileRecord{
			ID:             f.ID,
			Name:           f.Name,
			Title:          strings.TrimSuffix(f.Name, pdfSuffix),
			Path:           folderID + "/" + f.ID,
			Size:           parseSize(f.Size),
			Modified:       f.ModifiedTime,
			WebViewLink:    f.WebViewLink,
			WebContentLink: f.WebContentLink,
			Categories:     []string{},
		})
	}

	writeJSON(w, http.StatusOK, listFilesResponse{
		Files:      records,
		Categories: []string{},
		Folder:     folder.Name,
	})
}

// GetPDF answers GET /api/files/pdf/{fileId}: the raw bytes of one file,
// exactly as the provider returned them, for inline display.
func (h *Handler) GetPDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		httperrors.Unauthorized(w)
		return
	}

	fileID := chi.URLParam(r, "fileId")
	if fileID == "" {
		httperrors.BadRequestError(w, r, fmt.Errorf("empty file id"), "File ID required")
		return
	}

	start := time.Now()
	data, err := h.drive.GetBytes(r.Context(), sess.AccessToken, fileID)
	metrics.ObserveDriveLatency(r.Context(), "get", start)
	if err != nil {
		httperrors.InternalError(w, r, err, "Failed to fetch file")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// parseSize reads the provider's decimal size string; anything missing or
// malformed becomes 0, never an error.
func parseSize(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
