package report

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"osm-report-server/models"
)

// GeoJSONExporter renders a classified result as a GeoJSON FeatureCollection.
// One feature is emitted per category membership, with the category recorded
// as a property, so an element classified twice appears once per category.
type GeoJSONExporter struct {
}

func NewGeoJSONExporter() *GeoJSONExporter {
	return &GeoJSONExporter{}
}

// Export marshals the classified elements. Relations without geometry are
// skipped; Overpass returns them without coordinates in this service's query
// mode.
func (e *GeoJSONExporter) Export(classified *models.ClassifiedResult) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, category := range classified.Categories {
		for _, elem := range classified.Elements[category] {
			geom := elementGeometry(elem)
			if geom == nil {
				continue
			}
			feature := geojson.NewFeature(geom)
			feature.Properties["osm_id"] = elem.ID
			feature.Properties["osm_type"] = string(elem.Kind)
			feature.Properties["category"] = category
			for k, v := range elem.Tags {
				feature.Properties["tag:"+k] = v
			}
			fc.Append(feature)
		}
	}
	return fc.MarshalJSON()
}

func elementGeometry(elem models.OsmElement) orb.Geometry {
	switch elem.Kind {
	case models.KindNode:
		return orb.Point{elem.Lon, elem.Lat}
	case models.KindWay:
		if len(elem.Geometry) < 2 {
			return nil
		}
		line := make(orb.LineString, len(elem.Geometry))
		for i, p := range elem.Geometry {
			line[i] = orb.Point{p.Lon, p.Lat}
		}
		if elem.IsClosed() {
			return orb.Polygon{orb.Ring(line)}
		}
		return line
	default:
		return nil
	}
}
