package report

import (
	"fmt"
	"sort"
	"strings"

	"osm-report-server/models"
)

// EngineeringReportFormatter renders the civil-engineering and survey report:
// category analysis, infrastructure breakdowns and survey recommendations.
type EngineeringReportFormatter struct {
	transportationObjects map[string][]string
	utilityObjects        map[string][]string
	civilFeatures         map[string][]string
	surveyControlPoints   map[string][]string
	drainageStructures    map[string][]string
}

func NewEngineeringReportFormatter() *EngineeringReportFormatter {
	return &EngineeringReportFormatter{
		transportationObjects: map[string][]string{
			"highway":  {"traffic_signals", "stop", "give_way", "traffic_sign"},
			"barrier":  {"bollard", "fence", "wall", "gate", "chain", "cable_barrier"},
			"man_made": {"street_lamp", "street_cabinet", "utility_pole"},
		},
		utilityObjects: map[string][]string{
			"amenity":   {"fire_hydrant", "waste_disposal", "recycling"},
			"emergency": {"fire_hydrant"},
			"man_made":  {"manhole", "utility_pole", "pipeline", "tower", "mast"},
			"power":     {"line", "pole", "tower", "substation", "generator"},
			"telecom":   {"pole", "tower", "mast", "antenna"},
		},
		civilFeatures: map[string][]string{
			"man_made": {"bridge", "tunnel", "embankment", "cutting", "pier", "breakwater", "pipeline", "tower", "mast", "substation", "generator", "transformer"},
			"waterway": {"drain", "ditch", "stream", "river", "canal", "culvert"},
			"natural":  {"water", "wetland", "coastline"},
			"highway":  {"bridleway", "footway", "cycleway", "path", "track", "steps", "ramp"},
			"kerb":     {"yes", "raised", "lowered", "flush", "rolled", "no"},
			"barrier":  {"retaining_wall", "noise_barrier", "sound_barrier", "guard_rail", "crash_barrier", "cycle_barrier", "bollard", "fence", "wall", "gate"},
		},
		surveyControlPoints: map[string][]string{
			"man_made": {"survey_point", "benchmark", "marker"},
			"amenity":  {"benchmark"},
		},
		drainageStructures: map[string][]string{
			"man_made": {"manhole", "drain", "gutter", "culvert"},
			"waterway": {"drain", "ditch", "stream"},
		},
	}
}

// Generate renders the engineering report for a classified result.
func (f *EngineeringReportFormatter) Generate(classified *models.ClassifiedResult, rows []models.RollupRow, bbox models.BoundingBox) string {
	var lines []string
	divider := strings.Repeat("=", 80)

	lines = append(lines, divider)
	lines = append(lines, "ENGINEERING & SURVEY REPORT")
	lines = append(lines, divider)
	lines = append(lines, "")

	lines = append(lines, "BOUNDING BOX:")
	lines = append(lines, fmt.Sprintf("  Min Lat: %.6f", bbox.MinLat))
	lines = append(lines, fmt.Sprintf("  Min Lon: %.6f", bbox.MinLon))
	lines = append(lines, fmt.Sprintf("  Max Lat: %.6f", bbox.MaxLat))
	lines = append(lines, fmt.Sprintf("  Max Lon: %.6f", bbox.MaxLon))
	lines = append(lines, fmt.Sprintf("  Area: %.6f square degrees", bbox.Area()))
	lines = append(lines, "")

	elements := uniqueElements(classified)
	nodes, ways, relations := countByKind(elements)

	lines = append(lines, "SUMMARY STATISTICS:")
	lines = append(lines, fmt.Sprintf("  Total Elements: %d", len(elements)))
	lines = append(lines, fmt.Sprintf("  Nodes: %d", nodes))
	lines = append(lines, fmt.Sprintf("  Ways: %d", ways))
	lines = append(lines, fmt.Sprintf("  Relations: %d", relations))
	lines = append(lines, "")

	transportation := f.analyzeTransportation(elements)
	utility := f.analyzeUtility(elements)
	civil := f.analyzeCivil(elements)
	survey := countMatching(elements, f.surveyControlPoints)
	drainage := countMatching(elements, f.drainageStructures)

	lines = append(lines, "ENGINEERING FEATURE ANALYSIS:")
	lines = append(lines, strings.Repeat("-", 40))
	lines = append(lines, "")
	lines = append(lines, "TRANSPORTATION OBJECTS:")
	lines = append(lines, fmt.Sprintf("  Traffic Signs: %d", transportation["traffic_signs"]))
	lines = append(lines, fmt.Sprintf("  Traffic Lights: %d", transportation["traffic_lights"]))
	lines = append(lines, fmt.Sprintf("  Bollards: %d", transportation["bollards"]))
	lines = append(lines, fmt.Sprintf("  Street Lights: %d", transportation["street_lights"]))
	lines = append(lines, "")
	lines = append(lines, "UTILITY OBJECTS:")
	lines = append(lines, fmt.Sprintf("  Manholes: %d", utility["manholes"]))
	lines = append(lines, fmt.Sprintf("  Utility Infrastructure: %d", utility["utility_poles"]+utility["utility_cabinets"]))
	lines = append(lines, fmt.Sprintf("  Fire Hydrants: %d", utility["fire_hydrants"]))
	lines = append(lines, "")
	lines = append(lines, "CIVIL ENGINEERING FEATURES:")
	lines = append(lines, fmt.Sprintf("  Bridges: %d", civil["bridges"]))
	lines = append(lines, fmt.Sprintf("  Tunnels: %d", civil["tunnels"]))
	lines = append(lines, fmt.Sprintf("  Water Structures: %d", civil["water_structures"]))
	lines = append(lines, fmt.Sprintf("  Kerbs/Curbs: %d", civil["kerbs"]))
	lines = append(lines, fmt.Sprintf("  Retaining Walls: %d", civil["retaining_walls"]))
	lines = append(lines, fmt.Sprintf("  Noise Barriers: %d", civil["noise_barriers"]))
	lines = append(lines, fmt.Sprintf("  Guard Rails: %d", civil["guard_rails"]))
	lines = append(lines, fmt.Sprintf("  Steps/Ramps: %d", civil["steps_ramps"]))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("SURVEY CONTROL POINTS: %d", survey))
	lines = append(lines, fmt.Sprintf("DRAINAGE STRUCTURES: %d", drainage))
	lines = append(lines, "")

	lines = append(lines, divider)
	lines = append(lines, "INFRASTRUCTURE ANALYSIS")
	lines = append(lines, divider)
	lines = append(lines, infrastructureBreakdown("HIGHWAY INFRASTRUCTURE", "highway", elements, "segments")...)
	lines = append(lines, infrastructureBreakdown("BARRIER INFRASTRUCTURE", "barrier", elements, "features")...)
	lines = append(lines, infrastructureBreakdown("MAN-MADE INFRASTRUCTURE", "man_made", elements, "features")...)

	lines = append(lines, "MEASURED LINEAR FEATURES:")
	measured := 0
	for _, row := range rows {
		if row.LengthWays > 0 {
			lines = append(lines, fmt.Sprintf("  %s: %d ways, %.1f m total", row.Category, row.LengthWays, row.WayLengthMeters))
			measured++
		}
	}
	if measured == 0 {
		lines = append(lines, "  No length-bearing ways found.")
	}
	lines = append(lines, "")

	lines = append(lines, divider)
	lines = append(lines, "SURVEY & ENGINEERING RECOMMENDATIONS")
	lines = append(lines, divider)
	lines = append(lines, f.recommendations(len(elements), survey, utility, transportation)...)
	lines = append(lines, "")
	lines = append(lines, divider)

	return strings.Join(lines, "\n")
}

func (f *EngineeringReportFormatter) analyzeTransportation(elements []models.OsmElement) map[string]int {
	counts := map[string]int{}
	for _, elem := range elements {
		tags := elem.Tags
		if tags["highway"] == "traffic_signals" {
			counts["traffic_lights"]++
		} else if tags["highway"] == "stop" || tags["highway"] == "give_way" || tags["traffic_sign"] != "" {
			counts["traffic_signs"]++
		}
		if tags["barrier"] == "bollard" {
			counts["bollards"]++
		}
		if tags["man_made"] == "street_lamp" || tags["highway"] == "street_lamp" {
			counts["street_lights"]++
		}
	}
	return counts
}

func (f *EngineeringReportFormatter) analyzeUtility(elements []models.OsmElement) map[string]int {
	counts := map[string]int{}
	for _, elem := range elements {
		tags := elem.Tags
		if tags["man_made"] == "manhole" || tags["manhole"] != "" {
			counts["manholes"]++
		}
		switch tags["man_made"] {
		case "utility_pole":
			counts["utility_poles"]++
		case "street_cabinet":
			counts["utility_cabinets"]++
		}
		if tags["amenity"] == "fire_hydrant" || tags["emergency"] == "fire_hydrant" {
			counts["fire_hydrants"]++
		}
	}
	return counts
}

func (f *EngineeringReportFormatter) analyzeCivil(elements []models.OsmElement) map[string]int {
	counts := map[string]int{}
	for _, elem := range elements {
		tags := elem.Tags
		if tags["man_made"] == "bridge" || tags["bridge"] != "" {
			counts["bridges"]++
		}
		if tags["tunnel"] != "" || tags["man_made"] == "tunnel" {
			counts["tunnels"]++
		}
		if tags["waterway"] != "" || tags["natural"] == "water" {
			counts["water_structures"]++
		}
		if tags["kerb"] != "" {
			counts["kerbs"]++
		}
		switch tags["barrier"] {
		case "retaining_wall":
			counts["retaining_walls"]++
		case "noise_barrier", "sound_barrier":
			counts["noise_barriers"]++
		case "guard_rail", "crash_barrier":
			counts["guard_rails"]++
		}
		if tags["highway"] == "steps" || tags["highway"] == "ramp" {
			counts["steps_ramps"]++
		}
	}
	return counts
}

func (f *EngineeringReportFormatter) recommendations(totalElements, surveyPoints int, utility, transportation map[string]int) []string {
	var recs []string
	if totalElements < 50 {
		recs = append(recs, "1. Low data density - consider expanding survey area")
	}
	if surveyPoints == 0 {
		recs = append(recs, fmt.Sprintf("%d. Add survey control points for accurate positioning", len(recs)+1))
	}
	if utility["manholes"] == 0 {
		recs = append(recs, fmt.Sprintf("%d. Verify underground utility locations", len(recs)+1))
	}
	if transportation["traffic_lights"] == 0 {
		recs = append(recs, fmt.Sprintf("%d. Check for traffic control devices", len(recs)+1))
	}
	if len(recs) == 0 {
		recs = append(recs,
			"1. Data density appears adequate for engineering analysis",
			"2. Consider additional survey points for critical infrastructure")
	}
	return recs
}

// countMatching counts elements whose tags hit any key/value pair in the
// category table.
func countMatching(elements []models.OsmElement, table map[string][]string) int {
	count := 0
	for _, elem := range elements {
		if matchesTable(elem.Tags, table) {
			count++
		}
	}
	return count
}

func matchesTable(tags map[string]string, table map[string][]string) bool {
	for key, values := range table {
		v, ok := tags[key]
		if !ok {
			continue
		}
		for _, candidate := range values {
			if v == candidate {
				return true
			}
		}
	}
	return false
}

// infrastructureBreakdown lists the distinct values of one tag key with
// counts, sorted by value name.
func infrastructureBreakdown(heading, tagKey string, elements []models.OsmElement, unit string) []string {
	counts := map[string]int{}
	for _, elem := range elements {
		if v, ok := elem.Tags[tagKey]; ok {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Strings(values)

	lines := []string{heading + ":"}
	for _, v := range values {
		lines = append(lines, fmt.Sprintf("  %s: %d %s", v, counts[v], unit))
	}
	lines = append(lines, "")
	return lines
}
