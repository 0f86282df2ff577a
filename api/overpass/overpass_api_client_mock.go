package overpass

import (
	"fmt"

	"osm-report-server/config"
	"osm-report-server/models"
	"osm-report-server/registry"
	"osm-report-server/util"
)

// OverpassApiClientMock serves a canned Overpass response from disk so the
// pipeline can run without upstream traffic.
type OverpassApiClientMock struct {
}

// NewOverpassApiClientMock creates a new instance of OverpassApiClientMock
func NewOverpassApiClientMock() *OverpassApiClientMock {
	return &OverpassApiClientMock{}
}

// QueryBoundingBox returns the fixture elements regardless of the bbox and
// predicates.
func (c *OverpassApiClientMock) QueryBoundingBox(bbox models.BoundingBox, predicates []registry.TagPredicate) ([]models.OsmElement, error) {
	elements, err := util.ReadOverpassElementsFromJSON(config.GetResourcePath(config.OVERPASS_RESPONSE_RESOURCE))
	if err != nil {
		fmt.Println("Could not read overpass response from json")
		return nil, err
	}

	return elements, nil
}
