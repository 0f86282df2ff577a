package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"osm-report-server/metrics"
	services "osm-report-server/service"
)

const (
	SESSION_FILES_ROUTE = "session_files"
	DOWNLOAD_ROUTE      = "download"

	SESSION_ID_PATH_ARG = "session_id"
	FILENAME_PATH_ARG   = "filename"
)

// SessionHandler serves the session file listing and download endpoints.
type SessionHandler struct {
	reportService *services.ReportService
}

func NewSessionHandler(reportService *services.ReportService) *SessionHandler {
	return &SessionHandler{reportService: reportService}
}

// ListFiles returns the downloadable artifacts of a session.
func (h *SessionHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)[SESSION_ID_PATH_ARG]

	files, err := h.reportService.ListSessionFiles(sessionID)
	if err != nil {
		writeError(w, SESSION_FILES_ROUTE, err)
		return
	}
	writeJSON(w, SESSION_FILES_ROUTE, http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"files":      files,
	})
}

// Download streams a single session artifact.
func (h *SessionHandler) Download(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars[SESSION_ID_PATH_ARG]
	filename := vars[FILENAME_PATH_ARG]

	path, err := h.reportService.SessionFilePath(sessionID, filename)
	if err != nil {
		writeError(w, DOWNLOAD_ROUTE, err)
		return
	}

	metrics.RequestsTotal.WithLabelValues(DOWNLOAD_ROUTE, http.StatusText(http.StatusOK)).Inc()
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, path)
}
