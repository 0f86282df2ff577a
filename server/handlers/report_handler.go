package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"osm-report-server/metrics"
	"osm-report-server/models"
	"osm-report-server/registry"
	services "osm-report-server/service"
)

const (
	QUERY_ROUTE         = "query"
	GENERATE_ROUTE      = "generate"
	CSV_ROLLUP_ROUTE    = "csv_rollup"
	FEATURE_TYPES_ROUTE = "feature_types"
	PING_ROUTE          = "ping"
)

// ReportHandler serves the query, generate and csv-rollup endpoints plus the
// feature type listings.
type ReportHandler struct {
	reportService *services.ReportService
	registry      *registry.FeatureTypeRegistry
}

func NewReportHandler(reportService *services.ReportService, reg *registry.FeatureTypeRegistry) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		registry:      reg,
	}
}

// Query returns classified elements and the rollup as JSON without writing
// any files.
func (h *ReportHandler) Query(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseBody(w, r, QUERY_ROUTE)
	if !ok {
		return
	}

	resp, err := h.reportService.Query(req)
	if err != nil {
		writeError(w, QUERY_ROUTE, err)
		return
	}
	writeJSON(w, QUERY_ROUTE, http.StatusOK, resp)
}

// Generate runs the pipeline, writes the requested artifacts into a new
// session and returns the session manifest.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseBody(w, r, GENERATE_ROUTE)
	if !ok {
		return
	}

	resp, err := h.reportService.GenerateReports(req)
	if err != nil {
		writeError(w, GENERATE_ROUTE, err)
		return
	}
	writeJSON(w, GENERATE_ROUTE, http.StatusOK, resp)
}

// CSVRollup returns the rollup document directly as text/csv.
func (h *ReportHandler) CSVRollup(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseBody(w, r, CSV_ROLLUP_ROUTE)
	if !ok {
		return
	}

	csv, err := h.reportService.CSVRollup(req)
	if err != nil {
		writeError(w, CSV_ROLLUP_ROUTE, err)
		return
	}

	metrics.RequestsTotal.WithLabelValues(CSV_ROLLUP_ROUTE, http.StatusText(http.StatusOK)).Inc()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="feature_rollup.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Println("Error writing CSV response:", err)
	}
}

// ListFeatureTypes returns every queryable category name.
func (h *ReportHandler) ListFeatureTypes(w http.ResponseWriter, r *http.Request) {
	categories := h.registry.Categories()
	writeJSON(w, FEATURE_TYPES_ROUTE, http.StatusOK, map[string]interface{}{
		"feature_types": categories,
		"count":         len(categories),
	})
}

// ListEngineeringFeatureTypes returns the engineering subset of categories.
func (h *ReportHandler) ListEngineeringFeatureTypes(w http.ResponseWriter, r *http.Request) {
	categories := h.registry.EngineeringCategories()
	writeJSON(w, FEATURE_TYPES_ROUTE, http.StatusOK, map[string]interface{}{
		"feature_types": categories,
		"count":         len(categories),
	})
}

// Ping is the liveness probe.
func (h *ReportHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, PING_ROUTE, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ReportHandler) parseBody(w http.ResponseWriter, r *http.Request, route string) (models.QueryRequest, bool) {
	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, route, http.StatusBadRequest, errorBody{
			Error:  "malformed_request",
			Detail: err.Error(),
		})
		return models.QueryRequest{}, false
	}
	return req, true
}
