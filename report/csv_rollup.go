package report

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"osm-report-server/models"
)

// CSVRollupFormatter renders the rollup as CSV: a header row plus exactly one
// row per requested category.
type CSVRollupFormatter struct {
}

func NewCSVRollupFormatter() *CSVRollupFormatter {
	return &CSVRollupFormatter{}
}

var csvHeader = []string{"category", "count", "nodes", "ways", "relations", "way_length_m"}

// Generate renders the rollup rows in their given order.
func (f *CSVRollupFormatter) Generate(rows []models.RollupRow) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Category,
			strconv.Itoa(row.Count),
			strconv.Itoa(row.Nodes),
			strconv.Itoa(row.Ways),
			strconv.Itoa(row.Relations),
			strconv.FormatFloat(row.WayLengthMeters, 'f', 1, 64),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write csv row for %s: %w", row.Category, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return sb.String(), nil
}
