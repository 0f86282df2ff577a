package models

// ElementKind is the OSM element kind: node, way or relation.
type ElementKind string

const (
	KindNode     ElementKind = "node"
	KindWay      ElementKind = "way"
	KindRelation ElementKind = "relation"
)

// LatLon is one coordinate of a way geometry.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OsmElement is one raw entity returned by the Overpass API. Elements live
// only for the duration of the request that fetched them.
type OsmElement struct {
	ID       int64             `json:"id"`
	Kind     ElementKind       `json:"type"`
	Lat      float64           `json:"lat,omitempty"`
	Lon      float64           `json:"lon,omitempty"`
	Tags     map[string]string `json:"tags,omitempty"`
	Geometry []LatLon          `json:"geometry,omitempty"`
}

// IsClosed reports whether a way's geometry forms a ring.
func (e OsmElement) IsClosed() bool {
	if e.Kind != KindWay || len(e.Geometry) < 3 {
		return false
	}
	return e.Geometry[0] == e.Geometry[len(e.Geometry)-1]
}

// OverpassResponse is the wire shape of an Overpass API reply.
type OverpassResponse struct {
	Elements []OsmElement `json:"elements"`
}
