// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts handled requests per route and outcome.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "osm_report",
		Name:      "requests_total",
		Help:      "Total number of handled API requests.",
	}, []string{"route", "status"})

	// UpstreamQueriesTotal counts Overpass calls by outcome.
	UpstreamQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "osm_report",
		Name:      "upstream_queries_total",
		Help:      "Total number of Overpass queries issued.",
	}, []string{"status"})

	// UpstreamQueryDuration observes Overpass round-trip time.
	UpstreamQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "osm_report",
		Name:      "upstream_query_duration_seconds",
		Help:      "Overpass query duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	// ElementsRetrieved observes the element count per successful query.
	ElementsRetrieved = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "osm_report",
		Name:      "elements_retrieved",
		Help:      "Number of raw OSM elements retrieved per query.",
		Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
	})

	// SessionsCreated counts generate sessions.
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "osm_report",
		Name:      "sessions_created_total",
		Help:      "Total number of artifact sessions created.",
	})
)
