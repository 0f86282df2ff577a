package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"osm-report-server/metrics"
	"osm-report-server/models"
	services "osm-report-server/service"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// statusForError maps pipeline errors onto HTTP statuses. Validation failures
// are the caller's fault, upstream trouble is a gateway problem, oversized
// results ask the caller to narrow the request.
func statusForError(err error) int {
	var reqErr *models.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.Kind {
		case models.ErrInvalidBoundingBox,
			models.ErrUnknownFeatureType,
			models.ErrTooManyFeatureTypes,
			models.ErrUnsupportedOutputFormat:
			return http.StatusBadRequest
		case models.ErrResultTooLarge:
			return http.StatusRequestEntityTooLarge
		case models.ErrUpstreamQueryError:
			return http.StatusBadGateway
		}
	}
	if errors.Is(err, services.ErrSessionNotFound) || errors.Is(err, services.ErrFileNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeError renders the error as JSON and records the request metric.
func writeError(w http.ResponseWriter, route string, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error on %s: %v", route, err)
	}

	body := errorBody{Error: http.StatusText(status), Detail: err.Error()}
	var reqErr *models.RequestError
	if errors.As(err, &reqErr) {
		body.Error = string(reqErr.Kind)
		body.Detail = reqErr.Detail
	}

	writeJSON(w, route, status, body)
}

// writeJSON renders a JSON response and records the request metric.
func writeJSON(w http.ResponseWriter, route string, status int, payload interface{}) {
	metrics.RequestsTotal.WithLabelValues(route, http.StatusText(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("Error encoding response:", err)
	}
}
