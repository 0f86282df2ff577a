package classify

import (
	"osm-report-server/models"
	"osm-report-server/registry"
)

// FeatureClassifier assigns raw OSM elements to the requested feature
// categories. Classification is a pure function of its inputs: the same
// element sequence always produces the same per-category lists in the same
// order.
type FeatureClassifier struct {
	registry *registry.FeatureTypeRegistry
}

// NewFeatureClassifier constructs a classifier over the given registry.
func NewFeatureClassifier(reg *registry.FeatureTypeRegistry) *FeatureClassifier {
	return &FeatureClassifier{registry: reg}
}

// Classify builds the category → elements multimap. An element matching the
// predicates of several requested categories appears under each of them;
// elements without a matching requested category are dropped. Input order is
// preserved within every category list.
func (c *FeatureClassifier) Classify(elements []models.OsmElement, categories []string) (*models.ClassifiedResult, error) {
	predicateSets := make([][]registry.TagPredicate, len(categories))
	for i, name := range categories {
		preds, err := c.registry.PredicatesFor(name)
		if err != nil {
			return nil, err
		}
		predicateSets[i] = preds
	}

	result := models.NewClassifiedResult(categories)
	for _, elem := range elements {
		if len(elem.Tags) == 0 {
			continue
		}
		for i, name := range categories {
			if matchesAny(predicateSets[i], elem.Tags) {
				result.Add(name, elem)
			}
		}
	}
	return result, nil
}

func matchesAny(predicates []registry.TagPredicate, tags map[string]string) bool {
	for _, p := range predicates {
		if p.Matches(tags) {
			return true
		}
	}
	return false
}
