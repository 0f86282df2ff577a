package registry

import (
	"strings"

	"osm-report-server/models"
)

// TagPredicate matches OSM tags for one feature category. An empty Value
// matches any value of Key. Prefix predicates match any tag key that equals
// Key or starts with "Key:" (addr, name and friends).
type TagPredicate struct {
	Key    string `yaml:"key" json:"key"`
	Value  string `yaml:"value,omitempty" json:"value,omitempty"`
	Prefix bool   `yaml:"prefix,omitempty" json:"prefix,omitempty"`
}

// Matches reports whether the predicate matches any tag in the set.
func (p TagPredicate) Matches(tags map[string]string) bool {
	if p.Prefix {
		for k := range tags {
			if k == p.Key || strings.HasPrefix(k, p.Key+":") {
				return true
			}
		}
		return false
	}
	v, ok := tags[p.Key]
	if !ok {
		return false
	}
	return p.Value == "" || p.Value == v
}

// FeatureTypeRegistry is the static category-name → tag-predicate mapping.
// It is built once at startup and read-only afterwards.
type FeatureTypeRegistry struct {
	order           []string
	predicates      map[string][]TagPredicate
	maxFeatureTypes int
}

// NewFeatureTypeRegistry builds a registry from the built-in category table.
func NewFeatureTypeRegistry(maxFeatureTypes int) *FeatureTypeRegistry {
	return newRegistry(builtinCategories, maxFeatureTypes)
}

func newRegistry(categories []categoryDef, maxFeatureTypes int) *FeatureTypeRegistry {
	r := &FeatureTypeRegistry{
		order:           make([]string, 0, len(categories)),
		predicates:      make(map[string][]TagPredicate, len(categories)),
		maxFeatureTypes: maxFeatureTypes,
	}
	for _, c := range categories {
		r.order = append(r.order, c.Name)
		r.predicates[c.Name] = c.Predicates
	}
	return r
}

// Categories returns all category names in registry order.
func (r *FeatureTypeRegistry) Categories() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// EngineeringCategories returns the curated civil-engineering subset.
func (r *FeatureTypeRegistry) EngineeringCategories() []string {
	out := make([]string, 0, len(engineeringCategories))
	for _, name := range engineeringCategories {
		if _, ok := r.predicates[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// PredicatesFor returns the predicate set for one category.
func (r *FeatureTypeRegistry) PredicatesFor(name string) ([]TagPredicate, error) {
	preds, ok := r.predicates[name]
	if !ok {
		return nil, models.UnknownFeatureType(name)
	}
	return preds, nil
}

// Resolve validates a requested category list. The per-request cap is checked
// before anything else so an oversized request never reaches the upstream
// API; an empty request resolves to every category. Duplicates collapse to
// their first occurrence.
func (r *FeatureTypeRegistry) Resolve(names []string) ([]string, error) {
	if len(names) == 0 {
		return r.Categories(), nil
	}
	if len(names) > r.maxFeatureTypes {
		return nil, models.TooManyFeatureTypes(len(names), r.maxFeatureTypes)
	}

	seen := make(map[string]bool, len(names))
	resolved := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := r.predicates[name]; !ok {
			return nil, models.UnknownFeatureType(name)
		}
		if !seen[name] {
			seen[name] = true
			resolved = append(resolved, name)
		}
	}
	return resolved, nil
}
