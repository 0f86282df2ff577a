package registry

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type registryFile struct {
	Categories []categoryDef `yaml:"categories"`
}

// NewFeatureTypeRegistryFromFile builds a registry from a YAML category
// mapping, replacing the built-in table. The file lists categories in order:
//
//	categories:
//	  - name: bollard
//	    predicates:
//	      - key: barrier
//	        value: bollard
func NewFeatureTypeRegistryFromFile(filename string, maxFeatureTypes int) (*FeatureTypeRegistry, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading feature type mapping %s", filename)
	}

	var parsed registryFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.Wrapf(err, "parsing feature type mapping %s", filename)
	}
	if len(parsed.Categories) == 0 {
		return nil, errors.Errorf("feature type mapping %s defines no categories", filename)
	}
	for _, c := range parsed.Categories {
		if c.Name == "" {
			return nil, errors.Errorf("feature type mapping %s contains a category without a name", filename)
		}
		if len(c.Predicates) == 0 {
			return nil, errors.Errorf("category %q has no predicates", c.Name)
		}
		for _, p := range c.Predicates {
			if p.Key == "" {
				return nil, errors.Errorf("category %q has a predicate without a key", c.Name)
			}
		}
	}

	return newRegistry(parsed.Categories, maxFeatureTypes), nil
}
