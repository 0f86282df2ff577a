package models

// OSMDataResponse is the query-only output: classified elements plus query
// metadata.
type OSMDataResponse struct {
	TotalElements int                     `json:"total_elements"`
	Classified    map[string][]OsmElement `json:"classified"`
	Rollup        []RollupRow             `json:"rollup"`
	BBox          BoundingBox             `json:"bbox"`
	FeatureTypes  []string                `json:"feature_types"`
	QueryTime     string                  `json:"query_time"`
}

// GenerateResponse describes the artifacts produced by a generate request.
type GenerateResponse struct {
	Success       bool        `json:"success"`
	Message       string      `json:"message"`
	SessionID     string      `json:"session_id"`
	TotalElements int         `json:"total_elements"`
	BBox          BoundingBox `json:"bbox"`
	FeatureTypes  []string    `json:"feature_types"`
	Files         []string    `json:"files"`
}
