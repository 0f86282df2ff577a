package overpass

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"osm-report-server/config"
	"osm-report-server/models"
	"osm-report-server/util"
)

func writeMockResource(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	resourceDir := filepath.Join(root, config.RESOURCES_PATH_PREFIX)
	if err := os.MkdirAll(resourceDir, 0o755); err != nil {
		t.Fatalf("Failed to create resources dir: %v", err)
	}

	content := `{
		"elements": [
			{"type": "node", "id": 1, "lat": 51.5033, "lon": -0.1192, "tags": {"amenity": "cafe"}},
			{"type": "way", "id": 2, "tags": {"highway": "residential"},
			 "geometry": [{"lat": 51.5027, "lon": -0.1205}, {"lat": 51.5035, "lon": -0.1188}]}
		]
	}`
	path := filepath.Join(resourceDir, config.OVERPASS_RESPONSE_RESOURCE)
	if err := ioutil.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write mock resource: %v", err)
	}
	t.Setenv("PROJECT_ROOT", root)
}

func TestQueryBoundingBox_Mock_Success(t *testing.T) {
	// Arrange
	writeMockResource(t)
	client := NewOverpassApiClientMock()

	expected, err := util.ReadOverpassElementsFromJSON(config.GetResourcePath(config.OVERPASS_RESPONSE_RESOURCE))
	if err != nil {
		t.Errorf("expected no error when reading expected response, got %v", err)
	}

	// Act
	bbox := models.BoundingBox{MinLat: 51.500, MinLon: -0.125, MaxLat: 51.505, MaxLon: -0.115}
	elements, err := client.QueryBoundingBox(bbox, nil)

	// Assert
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	assert.Equal(t, expected, elements, "Elements dont match")
}

func TestQueryBoundingBox_Mock_MissingResource(t *testing.T) {
	t.Setenv("PROJECT_ROOT", t.TempDir())
	client := NewOverpassApiClientMock()

	bbox := models.BoundingBox{MinLat: 51.500, MinLon: -0.125, MaxLat: 51.505, MaxLon: -0.115}
	_, err := client.QueryBoundingBox(bbox, nil)

	assert.Error(t, err)
}
