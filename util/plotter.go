package util

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"osm-report-server/models"
)

// RenderPlotPage generates an HTML page with a coordinate scatter per
// category, a per-category count bar chart and a geometry-kind pie.
func RenderPlotPage(classified *models.ClassifiedResult, rows []models.RollupRow, bbox models.BoundingBox, outputFile string) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "OSM Data Plot",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "OSM Data Visualization"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Longitude", Type: "value", Min: bbox.MinLon, Max: bbox.MaxLon}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Latitude", Type: "value", Min: bbox.MinLat, Max: bbox.MaxLat}),
	)
	for _, category := range classified.Categories {
		points := elementPoints(classified.Elements[category])
		if len(points) == 0 {
			continue
		}
		series := make([]opts.ScatterData, 0, len(points))
		for _, p := range points {
			series = append(series, opts.ScatterData{Value: []float64{p[0], p[1]}, SymbolSize: 6})
		}
		scatter.AddSeries(category, series)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Elements per Category"}),
	)
	var categories []string
	var nodeCounts, wayCounts, relationCounts []opts.BarData
	for _, row := range rows {
		categories = append(categories, row.Category)
		nodeCounts = append(nodeCounts, opts.BarData{Value: row.Nodes})
		wayCounts = append(wayCounts, opts.BarData{Value: row.Ways})
		relationCounts = append(relationCounts, opts.BarData{Value: row.Relations})
	}
	bar.SetXAxis(categories).
		AddSeries("nodes", nodeCounts).
		AddSeries("ways", wayCounts).
		AddSeries("relations", relationCounts)

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Geometry Type Distribution"}),
	)
	pie.AddSeries("geometry", geometryPieData(classified))

	page := components.NewPage()
	page.AddCharts(scatter, bar, pie)

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render plot page: %w", err)
	}
	return nil
}

// RenderMap generates an HTML file rendering the bounding box and the
// classified elements on a geo chart.
func RenderMap(classified *models.ClassifiedResult, bbox models.BoundingBox, outputFile string) error {
	// Corner points forming the bounding box polygon.
	boxPoints := []opts.GeoData{
		{Name: "SW", Value: []float64{bbox.MinLon, bbox.MinLat}},
		{Name: "NW", Value: []float64{bbox.MinLon, bbox.MaxLat}},
		{Name: "NE", Value: []float64{bbox.MaxLon, bbox.MaxLat}},
		{Name: "SE", Value: []float64{bbox.MaxLon, bbox.MinLat}},
		{Name: "SW", Value: []float64{bbox.MinLon, bbox.MinLat}}, // Close the polygon.
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "OSM Data Map",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("BoundingBox", types.ChartScatter, boxPoints,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)
	for _, category := range classified.Categories {
		points := elementPoints(classified.Elements[category])
		if len(points) == 0 {
			continue
		}
		series := make([]opts.GeoData, 0, len(points))
		for i, p := range points {
			series = append(series, opts.GeoData{
				Name:  fmt.Sprintf("%s-%d", category, i),
				Value: []float64{p[0], p[1]},
			})
		}
		geo.AddSeries(category, types.ChartScatter, series)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create map file: %w", err)
	}
	defer f.Close()

	if err := geo.Render(f); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	return nil
}

// elementPoints extracts one (lon, lat) per element: node coordinates
// directly, the first geometry point for ways, nothing for relations.
func elementPoints(elements []models.OsmElement) [][2]float64 {
	var points [][2]float64
	for _, elem := range elements {
		switch elem.Kind {
		case models.KindNode:
			points = append(points, [2]float64{elem.Lon, elem.Lat})
		case models.KindWay:
			if len(elem.Geometry) > 0 {
				points = append(points, [2]float64{elem.Geometry[0].Lon, elem.Geometry[0].Lat})
			}
		}
	}
	return points
}

func geometryPieData(classified *models.ClassifiedResult) []opts.PieData {
	counts := map[string]int{}
	seen := map[int64]bool{}
	for _, category := range classified.Categories {
		for _, elem := range classified.Elements[category] {
			if seen[elem.ID] {
				continue
			}
			seen[elem.ID] = true
			switch {
			case elem.Kind == models.KindNode:
				counts["Point"]++
			case elem.Kind == models.KindWay && elem.IsClosed():
				counts["Polygon"]++
			case elem.Kind == models.KindWay && len(elem.Geometry) >= 2:
				counts["LineString"]++
			}
		}
	}
	data := make([]opts.PieData, 0, len(counts))
	for _, name := range []string{"Point", "LineString", "Polygon"} {
		if counts[name] > 0 {
			data = append(data, opts.PieData{Name: name, Value: counts[name]})
		}
	}
	return data
}
