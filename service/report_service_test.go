package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"osm-report-server/config"
	redisdao "osm-report-server/dao/redis"
	"osm-report-server/db"
	"osm-report-server/models"
	"osm-report-server/registry"
)

// stubOverpassAPI records calls and serves canned elements.
type stubOverpassAPI struct {
	calls    int
	elements []models.OsmElement
	err      error
}

func (s *stubOverpassAPI) QueryBoundingBox(bbox models.BoundingBox, predicates []registry.TagPredicate) ([]models.OsmElement, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.elements, nil
}

func validBBox() models.BoundingBox {
	return models.BoundingBox{MinLat: 51.500, MinLon: -0.125, MaxLat: 51.505, MaxLon: -0.115}
}

func fixtureElements() []models.OsmElement {
	return []models.OsmElement{
		{
			ID:   195306355,
			Kind: models.KindWay,
			Tags: map[string]string{"highway": "residential"},
			Geometry: []models.LatLon{
				{Lat: 51.5027, Lon: -0.1205},
				{Lat: 51.5035, Lon: -0.1188},
			},
		},
		{
			ID:   195306356,
			Kind: models.KindWay,
			Tags: map[string]string{"building": "yes"},
			Geometry: []models.LatLon{
				{Lat: 51.5032, Lon: -0.1193},
				{Lat: 51.5033, Lon: -0.1190},
				{Lat: 51.5035, Lon: -0.1191},
				{Lat: 51.5032, Lon: -0.1193},
			},
		},
		{
			ID:   1104208697,
			Kind: models.KindNode,
			Lat:  51.5033,
			Lon:  -0.1192,
			Tags: map[string]string{"amenity": "cafe"},
		},
	}
}

func newTestService(t *testing.T, stub *stubOverpassAPI, maxFeatureTypes int) (*ReportService, *redisdao.RedisSessionDAO, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		MaxBBoxSize:     0.1,
		MaxFeatureTypes: maxFeatureTypes,
		OutputDir:       t.TempDir(),
		SessionTTL:      time.Hour,
	}
	sessionDao := redisdao.NewRedisSessionDAO(db.NewMockRedisClient(context.Background()))
	reg := registry.NewFeatureTypeRegistry(maxFeatureTypes)
	return NewReportService(cfg, reg, stub, sessionDao), sessionDao, cfg
}

func TestReportService_Query(t *testing.T) {
	// Arrange
	stub := &stubOverpassAPI{elements: fixtureElements()}
	service, _, _ := newTestService(t, stub, 20)

	// Act
	resp, err := service.Query(models.QueryRequest{
		BBox:         validBBox(),
		FeatureTypes: []string{"highway", "building"},
	})

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", stub.calls)
	}
	if resp.TotalElements != 2 {
		t.Errorf("Expected 2 classified elements, got %d", resp.TotalElements)
	}
	if len(resp.Classified["highway"]) != 1 {
		t.Errorf("Expected 1 highway element, got %d", len(resp.Classified["highway"]))
	}
	if len(resp.Classified["building"]) != 1 {
		t.Errorf("Expected 1 building element, got %d", len(resp.Classified["building"]))
	}
	if _, ok := resp.Classified["amenity"]; ok {
		t.Errorf("Expected no amenity bucket when amenity was not requested")
	}
	if len(resp.Rollup) != 2 {
		t.Errorf("Expected 2 rollup rows, got %d", len(resp.Rollup))
	}
	if resp.QueryTime == "" {
		t.Errorf("Expected a query timestamp")
	}
}

func TestReportService_Query_InvalidBBoxSkipsUpstream(t *testing.T) {
	stub := &stubOverpassAPI{elements: fixtureElements()}
	service, _, _ := newTestService(t, stub, 20)

	_, err := service.Query(models.QueryRequest{
		BBox:         models.BoundingBox{MinLat: 50.0, MinLon: -1.0, MaxLat: 52.0, MaxLon: 1.0},
		FeatureTypes: []string{"highway"},
	})

	var reqErr *models.RequestError
	if !errors.As(err, &reqErr) || reqErr.Kind != models.ErrInvalidBoundingBox {
		t.Fatalf("Expected invalid_bounding_box, got %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("Expected no upstream call for an invalid bbox, got %d", stub.calls)
	}
}

func TestReportService_Query_TooManyFeatureTypesSkipsUpstream(t *testing.T) {
	stub := &stubOverpassAPI{elements: fixtureElements()}
	service, _, _ := newTestService(t, stub, 2)

	_, err := service.Query(models.QueryRequest{
		BBox:         validBBox(),
		FeatureTypes: []string{"highway", "building", "amenity"},
	})

	var reqErr *models.RequestError
	if !errors.As(err, &reqErr) || reqErr.Kind != models.ErrTooManyFeatureTypes {
		t.Fatalf("Expected too_many_feature_types, got %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("Expected no upstream call above the feature type cap, got %d", stub.calls)
	}
}

func TestReportService_Query_UnknownFeatureTypeSkipsUpstream(t *testing.T) {
	stub := &stubOverpassAPI{elements: fixtureElements()}
	service, _, _ := newTestService(t, stub, 20)

	_, err := service.Query(models.QueryRequest{
		BBox:         validBBox(),
		FeatureTypes: []string{"nonexistent"},
	})

	var reqErr *models.RequestError
	if !errors.As(err, &reqErr) || reqErr.Kind != models.ErrUnknownFeatureType {
		t.Fatalf("Expected unknown_feature_type, got %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("Expected no upstream call for an unknown type, got %d", stub.calls)
	}
}

func TestReportService_Query_UpstreamErrorPropagates(t *testing.T) {
	stub := &stubOverpassAPI{err: models.UpstreamQueryError("overpass timed out")}
	service, _, _ := newTestService(t, stub, 20)

	_, err := service.Query(models.QueryRequest{
		BBox:         validBBox(),
		FeatureTypes: []string{"highway"},
	})

	var reqErr *models.RequestError
	if !errors.As(err, &reqErr) || reqErr.Kind != models.ErrUpstreamQueryError {
		t.Fatalf("Expected upstream_query_error, got %v", err)
	}
}

func TestReportService_CSVRollup(t *testing.T) {
	stub := &stubOverpassAPI{elements: fixtureElements()}
	service, _, _ := newTestService(t, stub, 20)

	csv, err := service.CSVRollup(models.QueryRequest{
		BBox:         validBBox(),
		FeatureTypes: []string{"highway", "building"},
	})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "category,count,nodes,ways,relations,way_length_m" {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "highway,1,") {
		t.Errorf("Unexpected highway row: %s", lines[1])
	}
}

func TestReportService_GenerateReports(t *testing.T) {
	// Arrange
	stub := &stubOverpassAPI{elements: fixtureElements()}
	service, sessionDao, cfg := newTestService(t, stub, 20)

	// Act
	resp, err := service.GenerateReports(models.QueryRequest{
		BBox:         validBBox(),
		FeatureTypes: []string{"highway", "building"},
		Outputs:      []models.OutputType{models.OutputReport, models.OutputCSV, models.OutputData},
	})

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !resp.Success {
		t.Errorf("Expected a successful response")
	}
	if resp.SessionID == "" {
		t.Fatalf("Expected a session id")
	}
	if len(resp.Files) != 3 {
		t.Fatalf("Expected 3 download links, got %d", len(resp.Files))
	}
	for _, link := range resp.Files {
		if !strings.HasPrefix(link, "/v1/download/"+resp.SessionID+"/") {
			t.Errorf("Unexpected download link: %s", link)
		}
	}

	// Artifacts on disk
	for _, name := range []string{REPORT_FILE, CSV_FILE, DATA_FILE} {
		path := filepath.Join(cfg.OutputDir, resp.SessionID, name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected artifact %s on disk: %v", name, err)
		}
	}

	// Session metadata in Redis
	session, err := sessionDao.GetSession(resp.SessionID)
	if err != nil {
		t.Fatalf("Expected the session stored, got %v", err)
	}
	if session.TotalElements != 2 {
		t.Errorf("Expected 2 total elements in the session, got %d", session.TotalElements)
	}
	if len(session.Files) != 3 {
		t.Errorf("Expected 3 files in the session, got %d", len(session.Files))
	}
}

func TestReportService_GenerateReports_UnsupportedOutputSkipsUpstream(t *testing.T) {
	stub := &stubOverpassAPI{elements: fixtureElements()}
	service, _, _ := newTestService(t, stub, 20)

	_, err := service.GenerateReports(models.QueryRequest{
		BBox:         validBBox(),
		FeatureTypes: []string{"highway"},
		Outputs:      []models.OutputType{"pdf"},
	})

	var reqErr *models.RequestError
	if !errors.As(err, &reqErr) || reqErr.Kind != models.ErrUnsupportedOutputFormat {
		t.Fatalf("Expected unsupported_output_format, got %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("Expected no upstream call for an unsupported output, got %d", stub.calls)
	}
}

func TestReportService_ListSessionFiles(t *testing.T) {
	stub := &stubOverpassAPI{elements: fixtureElements()}
	service, _, _ := newTestService(t, stub, 20)

	resp, err := service.GenerateReports(models.QueryRequest{
		BBox:         validBBox(),
		FeatureTypes: []string{"highway"},
		Outputs:      []models.OutputType{models.OutputReport},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	files, err := service.ListSessionFiles(resp.SessionID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(files))
	}
	if files[0].Filename != REPORT_FILE {
		t.Errorf("Expected %s, got %s", REPORT_FILE, files[0].Filename)
	}
	if files[0].Size <= 0 {
		t.Errorf("Expected a positive file size, got %d", files[0].Size)
	}

	if _, err := service.ListSessionFiles("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestReportService_SessionFilePath(t *testing.T) {
	stub := &stubOverpassAPI{elements: fixtureElements()}
	service, _, cfg := newTestService(t, stub, 20)

	resp, err := service.GenerateReports(models.QueryRequest{
		BBox:         validBBox(),
		FeatureTypes: []string{"highway"},
		Outputs:      []models.OutputType{models.OutputReport},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	path, err := service.SessionFilePath(resp.SessionID, REPORT_FILE)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := filepath.Join(cfg.OutputDir, resp.SessionID, REPORT_FILE)
	if path != want {
		t.Errorf("Expected %s, got %s", want, path)
	}

	tests := []struct {
		name      string
		sessionID string
		filename  string
		wantErr   error
	}{
		{"Traversal with dots", resp.SessionID, "../secret.txt", ErrFileNotFound},
		{"Traversal with slash", resp.SessionID, "sub/secret.txt", ErrFileNotFound},
		{"Unknown session", "missing", REPORT_FILE, ErrSessionNotFound},
		{"Unknown file", resp.SessionID, "nope.txt", ErrFileNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := service.SessionFilePath(test.sessionID, test.filename); !errors.Is(err, test.wantErr) {
				t.Errorf("Expected %v, got %v", test.wantErr, err)
			}
		})
	}
}
