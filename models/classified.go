package models

// ClassifiedResult maps category name to the elements that matched it. An
// element matching several categories appears under each of them; within one
// category elements keep the order they were received in.
type ClassifiedResult struct {
	// Categories preserves the order the caller requested.
	Categories []string
	// Elements holds the per-category match lists.
	Elements map[string][]OsmElement
}

// NewClassifiedResult prepares an empty result for the given categories.
func NewClassifiedResult(categories []string) *ClassifiedResult {
	return &ClassifiedResult{
		Categories: categories,
		Elements:   make(map[string][]OsmElement, len(categories)),
	}
}

// Add appends an element to a category's match list.
func (c *ClassifiedResult) Add(category string, elem OsmElement) {
	c.Elements[category] = append(c.Elements[category], elem)
}

// Count returns the number of matches for one category.
func (c *ClassifiedResult) Count(category string) int {
	return len(c.Elements[category])
}

// TotalMatches returns the sum of all per-category match counts. An element
// in two categories counts twice.
func (c *ClassifiedResult) TotalMatches() int {
	total := 0
	for _, elems := range c.Elements {
		total += len(elems)
	}
	return total
}
