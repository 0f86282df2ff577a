package overpass

import (
	"osm-report-server/models"
	"osm-report-server/registry"
)

// OverpassAPI defines the interface for querying the external OSM data source
type OverpassAPI interface {
	QueryBoundingBox(bbox models.BoundingBox, predicates []registry.TagPredicate) ([]models.OsmElement, error)
}
