package server

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"osm-report-server/server/handlers"
)

type Router struct {
	reportHandler  *handlers.ReportHandler
	sessionHandler *handlers.SessionHandler
	router         *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	reportHandler *handlers.ReportHandler,
	sessionHandler *handlers.SessionHandler,
	router *mux.Router) *Router {
	return &Router{
		reportHandler:  reportHandler,
		sessionHandler: sessionHandler,
		router:         router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects a JSON body with bbox, feature_types and (for generate) outputs
	r.router.HandleFunc("/v1/query", r.reportHandler.Query).Methods("POST")
	r.router.HandleFunc("/v1/generate", r.reportHandler.Generate).Methods("POST")
	r.router.HandleFunc("/v1/csv-rollup", r.reportHandler.CSVRollup).Methods("POST")

	r.router.HandleFunc("/v1/feature-types", r.reportHandler.ListFeatureTypes).Methods("GET")
	r.router.HandleFunc("/v1/feature-types/engineering", r.reportHandler.ListEngineeringFeatureTypes).Methods("GET")

	r.router.HandleFunc("/v1/sessions/{session_id}/files", r.sessionHandler.ListFiles).Methods("GET")
	r.router.HandleFunc("/v1/download/{session_id}/{filename}", r.sessionHandler.Download).Methods("GET")

	r.router.HandleFunc("/ping", r.reportHandler.Ping).Methods("GET")
	r.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}
