package classify

import (
	"reflect"
	"testing"

	"osm-report-server/models"
	"osm-report-server/registry"
)

// londonEyeElements is a small slice of the area around the London Eye.
func londonEyeElements() []models.OsmElement {
	return []models.OsmElement{
		{
			ID:   195306355,
			Kind: models.KindWay,
			Tags: map[string]string{"highway": "residential", "name": "Belvedere Road"},
		},
		{
			ID:   195306356,
			Kind: models.KindWay,
			Tags: map[string]string{"building": "yes"},
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

func TestFeatureClassifier_Classify(t *testing.T) {
	// Arrange
	reg := registry.NewFeatureTypeRegistry(20)
	classifier := NewFeatureClassifier(reg)

	// Act
	result, err := classifier.Classify(londonEyeElements(), []string{"highway", "building"})

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Count("highway") != 1 {
		t.Errorf("Expected 1 highway element, got %d", result.Count("highway"))
	}
	if result.Count("building") != 1 {
		t.Errorf("Expected 1 building element, got %d", result.Count("building"))
	}
	if _, ok := result.Elements["amenity"]; ok {
		t.Errorf("Expected no amenity bucket when amenity was not requested")
	}
	if result.TotalMatches() != 2 {
		t.Errorf("Expected 2 total matches, got %d", result.TotalMatches())
	}
	if got := result.Elements["highway"][0].ID; got != 195306355 {
		t.Errorf("Expected highway element 195306355, got %d", got)
	}
}

func TestFeatureClassifier_Classify_MultipleCategories(t *testing.T) {
	reg := registry.NewFeatureTypeRegistry(20)
	classifier := NewFeatureClassifier(reg)

	// A drain inside a culvert matches both the waterway key category and the
	// derived culvert category.
	elements := []models.OsmElement{
		{
			ID:   195306358,
			Kind: models.KindWay,
			Tags: map[string]string{"waterway": "drain", "tunnel": "culvert"},
		},
	}

	result, err := classifier.Classify(elements, []string{"waterway", "culvert"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Count("waterway") != 1 {
		t.Errorf("Expected the element under waterway, got %d", result.Count("waterway"))
	}
	if result.Count("culvert") != 1 {
		t.Errorf("Expected the element under culvert, got %d", result.Count("culvert"))
	}
	if result.TotalMatches() != 2 {
		t.Errorf("Expected the element counted once per category, got %d", result.TotalMatches())
	}
}

func TestFeatureClassifier_Classify_SkipsUntaggedElements(t *testing.T) {
	reg := registry.NewFeatureTypeRegistry(20)
	classifier := NewFeatureClassifier(reg)

	elements := []models.OsmElement{
		{ID: 1, Kind: models.KindNode, Lat: 51.5, Lon: -0.12},
		{ID: 2, Kind: models.KindNode, Lat: 51.5, Lon: -0.12, Tags: map[string]string{"highway": "crossing"}},
	}

	result, err := classifier.Classify(elements, []string{"highway"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Count("highway") != 1 {
		t.Errorf("Expected only the tagged element, got %d", result.Count("highway"))
	}
}

func TestFeatureClassifier_Classify_Deterministic(t *testing.T) {
	reg := registry.NewFeatureTypeRegistry(20)
	classifier := NewFeatureClassifier(reg)
	categories := []string{"highway", "building", "amenity"}

	first, err := classifier.Classify(londonEyeElements(), categories)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := classifier.Classify(londonEyeElements(), categories)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results for identical inputs")
	}
}

func TestFeatureClassifier_Classify_UnknownCategory(t *testing.T) {
	reg := registry.NewFeatureTypeRegistry(20)
	classifier := NewFeatureClassifier(reg)

	if _, err := classifier.Classify(londonEyeElements(), []string{"nonexistent"}); err == nil {
		t.Fatalf("Expected an error, got nil")
	}
}
