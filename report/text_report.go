package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"osm-report-server/models"
)

// TextReportFormatter renders the general-purpose text report.
type TextReportFormatter struct {
}

func NewTextReportFormatter() *TextReportFormatter {
	return &TextReportFormatter{}
}

// Generate renders the report for a classified result and its rollup rows.
func (f *TextReportFormatter) Generate(classified *models.ClassifiedResult, rows []models.RollupRow, bbox models.BoundingBox) string {
	var lines []string
	divider := strings.Repeat("=", 80)
	section := strings.Repeat("-", 40)

	lines = append(lines, divider)
	lines = append(lines, "OSM DATA REPORT")
	lines = append(lines, divider)
	lines = append(lines, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))
	lines = append(lines, fmt.Sprintf("Bounding Box: %.6f, %.6f to %.6f, %.6f",
		bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MaxLon))
	lines = append(lines, "")

	elements := uniqueElements(classified)
	nodes, ways, relations := countByKind(elements)

	lines = append(lines, "SUMMARY STATISTICS")
	lines = append(lines, section)
	lines = append(lines, fmt.Sprintf("Total Elements: %d", len(elements)))
	lines = append(lines, fmt.Sprintf("  - Nodes (Points): %d", nodes))
	lines = append(lines, fmt.Sprintf("  - Ways (Lines/Polygons): %d", ways))
	lines = append(lines, fmt.Sprintf("  - Relations: %d", relations))
	lines = append(lines, "")

	geometryCounts := countGeometryTypes(elements)
	if len(geometryCounts) > 0 {
		lines = append(lines, "Geometry Types:")
		for _, gc := range geometryCounts {
			lines = append(lines, fmt.Sprintf("  - %s: %d", gc.name, gc.count))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "FEATURE TYPE ANALYSIS")
	lines = append(lines, section)
	matched := 0
	for _, row := range rows {
		if row.Count > 0 {
			lines = append(lines, fmt.Sprintf("  %s: %d", row.Category, row.Count))
			matched++
		}
	}
	if matched == 0 {
		lines = append(lines, "No tagged features found")
	}
	lines = append(lines, "")

	lines = append(lines, "DETAILED BREAKDOWN")
	lines = append(lines, section)
	for _, category := range classified.Categories {
		elems := classified.Elements[category]
		if len(elems) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s (%d total):", strings.ToUpper(category), len(elems)))
		for _, tc := range topTags(elems, 10) {
			lines = append(lines, fmt.Sprintf("  %s: %d", tc.key, tc.count))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "SAMPLE DATA")
	lines = append(lines, section)
	lines = append(lines, sampleElements(elements)...)

	return strings.Join(lines, "\n")
}

type geometryCount struct {
	name  string
	count int
}

func countGeometryTypes(elements []models.OsmElement) []geometryCount {
	counts := map[string]int{}
	for _, elem := range elements {
		switch elem.Kind {
		case models.KindNode:
			counts["Point"]++
		case models.KindWay:
			if elem.IsClosed() {
				counts["Polygon"]++
			} else if len(elem.Geometry) >= 2 {
				counts["LineString"]++
			}
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]geometryCount, 0, len(names))
	for _, name := range names {
		out = append(out, geometryCount{name, counts[name]})
	}
	return out
}

type tagCount struct {
	key   string
	count int
}

// topTags counts tag keys across elements and keeps the limit most frequent,
// most frequent first, ties broken alphabetically.
func topTags(elements []models.OsmElement, limit int) []tagCount {
	counts := map[string]int{}
	for _, elem := range elements {
		for key := range elem.Tags {
			counts[key]++
		}
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}

	out := make([]tagCount, 0, len(keys))
	for _, key := range keys {
		out = append(out, tagCount{key, counts[key]})
	}
	return out
}

func titleKind(kind models.ElementKind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sampleElements(elements []models.OsmElement) []string {
	var lines []string
	shown := 0
	for _, elem := range elements {
		if shown >= 3 {
			break
		}
		shown++
		lines = append(lines, fmt.Sprintf("  %s %d:", titleKind(elem.Kind), elem.ID))
		if elem.Kind == models.KindNode {
			lines = append(lines, fmt.Sprintf("    Location: %.6f, %.6f", elem.Lat, elem.Lon))
		}
		if len(elem.Tags) > 0 {
			keys := make([]string, 0, len(elem.Tags))
			for key := range elem.Tags {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			if len(keys) > 3 {
				keys = keys[:3]
			}
			var pairs []string
			for _, key := range keys {
				pairs = append(pairs, fmt.Sprintf("%s=%s", key, elem.Tags[key]))
			}
			lines = append(lines, fmt.Sprintf("    Tags: %s", strings.Join(pairs, ", ")))
		}
		lines = append(lines, "")
	}
	if shown == 0 {
		lines = append(lines, "  No elements matched the requested categories.")
	}
	return lines
}
