package rollup

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"osm-report-server/models"
)

// RollupAggregator derives per-category aggregates from a ClassifiedResult.
// Aggregation is pure: the same input always yields the same rows.
type RollupAggregator struct {
}

// NewRollupAggregator creates a new instance of RollupAggregator
func NewRollupAggregator() *RollupAggregator {
	return &RollupAggregator{}
}

// Aggregate produces one RollupRow per category, in the category order of the
// classified result. Per-kind counts always sum to the total count.
func (a *RollupAggregator) Aggregate(result *models.ClassifiedResult) []models.RollupRow {
	rows := make([]models.RollupRow, 0, len(result.Categories))
	for _, category := range result.Categories {
		row := models.RollupRow{Category: category}
		for _, elem := range result.Elements[category] {
			row.Count++
			switch elem.Kind {
			case models.KindNode:
				row.Nodes++
				row.PointFeatures++
			case models.KindWay:
				row.Ways++
				if length := wayLength(elem); length > 0 {
					row.LengthWays++
					row.WayLengthMeters += length
				}
			case models.KindRelation:
				row.Relations++
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// wayLength returns the length of a way's line geometry in meters, 0 when no
// usable geometry was returned.
func wayLength(elem models.OsmElement) float64 {
	if len(elem.Geometry) < 2 {
		return 0
	}
	line := make(orb.LineString, len(elem.Geometry))
	for i, p := range elem.Geometry {
		line[i] = orb.Point{p.Lon, p.Lat}
	}
	return geo.Length(line)
}
