package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"mindcoach/internal/service"
)

// AdminHandler handles operator requests guarded by the admin key
type AdminHandler struct {
	backup *service.BackupService
	digest *service.DigestService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(backup *service.BackupService, digest *service.DigestService) *AdminHandler {
	return &AdminHandler{backup: backup, digest: digest}
}

// Export streams a backup of every stored record
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.backup.ExportToWriter(r.Context(), &buf); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error exporting backup", err)
		return
	}

	filename := fmt.Sprintf("mindcoach-backup-%s.json", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(buf.Bytes())
}

// RunDigest sends the weekly digest now and reports the counts
func (h *AdminHandler) RunDigest(w http.ResponseWriter, r *http.Request) {
	summary, err := h.digest.Run(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error running digest", err)
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}
