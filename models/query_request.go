package models

// OutputType is one artifact kind a caller can request.
type OutputType string

const (
	OutputData        OutputType = "data"
	OutputReport      OutputType = "report"
	OutputEngineering OutputType = "engineering"
	OutputCSV         OutputType = "csv"
	OutputPlot        OutputType = "plot"
	OutputMap         OutputType = "map"

	// OutputAll is a request shorthand expanded by ResolveOutputs.
	OutputAll OutputType = "all"
)

var allOutputs = []OutputType{
	OutputData, OutputReport, OutputEngineering, OutputCSV, OutputPlot, OutputMap,
}

// QueryRequest is the request body shared by the query, generate and
// csv-rollup endpoints.
type QueryRequest struct {
	BBox         BoundingBox  `json:"bbox"`
	FeatureTypes []string     `json:"feature_types"`
	Outputs      []OutputType `json:"outputs"`
}

// ResolveOutputs validates the requested output kinds and expands "all".
// An empty request resolves to every kind.
func ResolveOutputs(requested []OutputType) ([]OutputType, error) {
	if len(requested) == 0 {
		return allOutputs, nil
	}

	seen := make(map[OutputType]bool)
	var resolved []OutputType
	for _, out := range requested {
		if out == OutputAll {
			return allOutputs, nil
		}
		valid := false
		for _, known := range allOutputs {
			if out == known {
				valid = true
				break
			}
		}
		if !valid {
			return nil, UnsupportedOutputFormat(string(out))
		}
		if !seen[out] {
			seen[out] = true
			resolved = append(resolved, out)
		}
	}
	return resolved, nil
}
