package services

import (
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"osm-report-server/api/overpass"
	"osm-report-server/classify"
	"osm-report-server/config"
	redisdao "osm-report-server/dao/redis"
	"osm-report-server/metrics"
	"osm-report-server/models"
	"osm-report-server/registry"
	"osm-report-server/report"
	"osm-report-server/rollup"
	"osm-report-server/util"
)

// ErrSessionNotFound is returned when a session id has no live metadata.
var ErrSessionNotFound = errors.New("session not found")

// ErrFileNotFound is returned when a session exists but the file does not.
var ErrFileNotFound = errors.New("file not found")

// Artifact file names within a session directory.
const (
	REPORT_FILE      = "osm_report.txt"
	ENGINEERING_FILE = "engineering_report.txt"
	CSV_FILE         = "feature_rollup.csv"
	DATA_FILE        = "osm_data.geojson"
	PLOT_FILE        = "osm_plot.html"
	MAP_FILE         = "osm_map.html"
)

// ReportService drives the request pipeline: validate, query Overpass,
// classify, aggregate and render. A request moves through the stages in
// order; the first failing stage aborts it.
type ReportService struct {
	cfg         *config.Config
	registry    *registry.FeatureTypeRegistry
	overpassApi overpass.OverpassAPI
	classifier  *classify.FeatureClassifier
	aggregator  *rollup.RollupAggregator
	textReport  *report.TextReportFormatter
	engReport   *report.EngineeringReportFormatter
	csvRollup   *report.CSVRollupFormatter
	geoExport   *report.GeoJSONExporter
	sessionDao  *redisdao.RedisSessionDAO
}

// NewReportService constructs the service with its collaborators injected.
func NewReportService(
	cfg *config.Config,
	reg *registry.FeatureTypeRegistry,
	overpassApi overpass.OverpassAPI,
	sessionDao *redisdao.RedisSessionDAO) *ReportService {

	return &ReportService{
		cfg:         cfg,
		registry:    reg,
		overpassApi: overpassApi,
		classifier:  classify.NewFeatureClassifier(reg),
		aggregator:  rollup.NewRollupAggregator(),
		textReport:  report.NewTextReportFormatter(),
		engReport:   report.NewEngineeringReportFormatter(),
		csvRollup:   report.NewCSVRollupFormatter(),
		geoExport:   report.NewGeoJSONExporter(),
		sessionDao:  sessionDao,
	}
}

// runPipeline executes Validated → Queried → Classified → Aggregated. All
// input validation happens before the upstream call so a bad request never
// generates Overpass traffic.
func (s *ReportService) runPipeline(req models.QueryRequest) ([]string, *models.ClassifiedResult, []models.RollupRow, error) {
	if err := req.BBox.Validate(s.cfg.MaxBBoxSize); err != nil {
		return nil, nil, nil, err
	}
	categories, err := s.registry.Resolve(req.FeatureTypes)
	if err != nil {
		return nil, nil, nil, err
	}

	predicates, err := s.collectPredicates(categories)
	if err != nil {
		return nil, nil, nil, err
	}

	elements, err := s.overpassApi.QueryBoundingBox(req.BBox, predicates)
	if err != nil {
		return nil, nil, nil, err
	}

	classified, err := s.classifier.Classify(elements, categories)
	if err != nil {
		return nil, nil, nil, err
	}

	rows := s.aggregator.Aggregate(classified)
	return categories, classified, rows, nil
}

func (s *ReportService) collectPredicates(categories []string) ([]registry.TagPredicate, error) {
	var predicates []registry.TagPredicate
	for _, category := range categories {
		preds, err := s.registry.PredicatesFor(category)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, preds...)
	}
	return predicates, nil
}

// Query runs the pipeline and returns the classified data without writing
// any artifacts.
func (s *ReportService) Query(req models.QueryRequest) (*models.OSMDataResponse, error) {
	categories, classified, rows, err := s.runPipeline(req)
	if err != nil {
		return nil, err
	}

	return &models.OSMDataResponse{
		TotalElements: classified.TotalMatches(),
		Classified:    classified.Elements,
		Rollup:        rows,
		BBox:          req.BBox,
		FeatureTypes:  categories,
		QueryTime:     time.Now().Format(time.RFC3339),
	}, nil
}

// CSVRollup runs the pipeline and renders only the CSV document.
func (s *ReportService) CSVRollup(req models.QueryRequest) (string, error) {
	_, _, rows, err := s.runPipeline(req)
	if err != nil {
		return "", err
	}
	return s.csvRollup.Generate(rows)
}

// GenerateReports runs the pipeline and writes one artifact per requested
// output kind into a fresh session directory. Session metadata goes to Redis
// with the configured TTL.
func (s *ReportService) GenerateReports(req models.QueryRequest) (*models.GenerateResponse, error) {
	outputs, err := models.ResolveOutputs(req.Outputs)
	if err != nil {
		return nil, err
	}

	categories, classified, rows, err := s.runPipeline(req)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.New().String()
	sessionDir := filepath.Join(s.cfg.OutputDir, sessionID)
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	var files []string
	for _, output := range outputs {
		filename, err := s.renderArtifact(output, sessionDir, classified, rows, req.BBox)
		if err != nil {
			return nil, err
		}
		files = append(files, filename)
	}

	session := &models.Session{
		ID:            sessionID,
		BBox:          req.BBox,
		FeatureTypes:  categories,
		Files:         files,
		TotalElements: classified.TotalMatches(),
		CreatedAt:     time.Now(),
	}
	if err := s.sessionDao.UpsertSession(session, s.cfg.SessionTTL); err != nil {
		return nil, err
	}
	metrics.SessionsCreated.Inc()
	log.Printf("Generated %d files for session %s", len(files), sessionID)

	downloads := make([]string, 0, len(files))
	for _, f := range files {
		downloads = append(downloads, fmt.Sprintf("/v1/download/%s/%s", sessionID, f))
	}

	return &models.GenerateResponse{
		Success:       true,
		Message:       fmt.Sprintf("Generated %d files successfully", len(files)),
		SessionID:     sessionID,
		TotalElements: classified.TotalMatches(),
		BBox:          req.BBox,
		FeatureTypes:  categories,
		Files:         downloads,
	}, nil
}

func (s *ReportService) renderArtifact(
	output models.OutputType,
	sessionDir string,
	classified *models.ClassifiedResult,
	rows []models.RollupRow,
	bbox models.BoundingBox) (string, error) {

	switch output {
	case models.OutputReport:
		content := s.textReport.Generate(classified, rows, bbox)
		return REPORT_FILE, writeArtifact(sessionDir, REPORT_FILE, []byte(content))
	case models.OutputEngineering:
		content := s.engReport.Generate(classified, rows, bbox)
		return ENGINEERING_FILE, writeArtifact(sessionDir, ENGINEERING_FILE, []byte(content))
	case models.OutputCSV:
		content, err := s.csvRollup.Generate(rows)
		if err != nil {
			return "", err
		}
		return CSV_FILE, writeArtifact(sessionDir, CSV_FILE, []byte(content))
	case models.OutputData:
		content, err := s.geoExport.Export(classified)
		if err != nil {
			return "", err
		}
		return DATA_FILE, writeArtifact(sessionDir, DATA_FILE, content)
	case models.OutputPlot:
		return PLOT_FILE, util.RenderPlotPage(classified, rows, bbox, filepath.Join(sessionDir, PLOT_FILE))
	case models.OutputMap:
		return MAP_FILE, util.RenderMap(classified, bbox, filepath.Join(sessionDir, MAP_FILE))
	default:
		return "", models.UnsupportedOutputFormat(string(output))
	}
}

func writeArtifact(sessionDir, filename string, content []byte) error {
	if err := ioutil.WriteFile(filepath.Join(sessionDir, filename), content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// ListSessionFiles lists the downloadable artifacts of a session.
func (s *ReportService) ListSessionFiles(sessionID string) ([]models.SessionFile, error) {
	session, err := s.sessionDao.GetSession(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	files := make([]models.SessionFile, 0, len(session.Files))
	for _, name := range session.Files {
		path := filepath.Join(s.cfg.OutputDir, sessionID, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		files = append(files, models.SessionFile{
			Filename:    name,
			Size:        info.Size(),
			DownloadURL: fmt.Sprintf("/v1/download/%s/%s", sessionID, name),
		})
	}
	return files, nil
}

// SessionFilePath resolves a download request to a path on disk, rejecting
// names that could escape the session directory.
func (s *ReportService) SessionFilePath(sessionID, filename string) (string, error) {
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return "", ErrFileNotFound
	}
	if _, err := s.sessionDao.GetSession(sessionID); err != nil {
		return "", ErrSessionNotFound
	}

	path := filepath.Join(s.cfg.OutputDir, sessionID, filename)
	if _, err := os.Stat(path); err != nil {
		return "", ErrFileNotFound
	}
	return path, nil
}
