package models

// BoundingBox is a rectangular geographic region. Once Validate has passed it
// is treated as immutable by the rest of the pipeline.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Area returns the covered area in square degrees.
func (b BoundingBox) Area() float64 {
	return (b.MaxLat - b.MinLat) * (b.MaxLon - b.MinLon)
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// Validate checks coordinate ranges, axis ordering and the maximum area.
// The returned RequestError names the check that failed.
func (b BoundingBox) Validate(maxArea float64) error {
	if b.MinLat < -90 || b.MinLat > 90 || b.MaxLat < -90 || b.MaxLat > 90 {
		return InvalidBoundingBox("latitude out of range [-90, 90]")
	}
	if b.MinLon < -180 || b.MinLon > 180 || b.MaxLon < -180 || b.MaxLon > 180 {
		return InvalidBoundingBox("longitude out of range [-180, 180]")
	}
	if b.MinLat >= b.MaxLat {
		return InvalidBoundingBox("min_lat (%f) must be less than max_lat (%f)", b.MinLat, b.MaxLat)
	}
	if b.MinLon >= b.MaxLon {
		return InvalidBoundingBox("min_lon (%f) must be less than max_lon (%f)", b.MinLon, b.MaxLon)
	}
	if area := b.Area(); area > maxArea {
		return InvalidBoundingBox("bounding box too large: %f square degrees (maximum: %f)", area, maxArea)
	}
	return nil
}
