package models

// RollupRow is the per-category aggregate derived from a ClassifiedResult.
// Nodes+Ways+Relations always equals Count.
type RollupRow struct {
	Category  string `json:"category"`
	Count     int    `json:"count"`
	Nodes     int    `json:"nodes"`
	Ways      int    `json:"ways"`
	Relations int    `json:"relations"`

	// Engineering sub-metrics. LengthWays counts ways carrying a usable line
	// geometry; WayLengthMeters is their summed length.
	LengthWays      int     `json:"length_ways"`
	PointFeatures   int     `json:"point_features"`
	WayLengthMeters float64 `json:"way_length_m"`
}
