package util

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"osm-report-server/models"
)

// ReadOverpassElementsFromJSON loads an Overpass response from JSON on disk
// and returns its elements.
func ReadOverpassElementsFromJSON(filePath string) ([]models.OsmElement, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.OverpassResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal OverpassResponse: %w", err)
	}
	return resp.Elements, nil
}
