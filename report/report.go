// Package report renders classified OSM data into the artifact formats the
// service can emit: text report, engineering report, CSV rollup and GeoJSON.
// Formatters never mutate their inputs.
package report

import "osm-report-server/models"

// uniqueElements flattens a classified result back into the distinct elements
// it contains, first-seen order. Elements appearing under several categories
// are returned once.
func uniqueElements(classified *models.ClassifiedResult) []models.OsmElement {
	type elemKey struct {
		kind models.ElementKind
		id   int64
	}
	seen := make(map[elemKey]bool)
	var out []models.OsmElement
	for _, category := range classified.Categories {
		for _, elem := range classified.Elements[category] {
			k := elemKey{elem.Kind, elem.ID}
			if !seen[k] {
				seen[k] = true
				out = append(out, elem)
			}
		}
	}
	return out
}

func countByKind(elements []models.OsmElement) (nodes, ways, relations int) {
	for _, elem := range elements {
		switch elem.Kind {
		case models.KindNode:
			nodes++
		case models.KindWay:
			ways++
		case models.KindRelation:
			relations++
		}
	}
	return
}
