package overpass

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"

	"osm-report-server/api"
	"osm-report-server/metrics"
	"osm-report-server/models"
	"osm-report-server/registry"
)

// OverpassApiClient issues Overpass QL queries over the shared HTTPClient.
type OverpassApiClient struct {
	*api.HTTPClient
	timeoutSeconds int
	maxElements    int
}

// NewOverpassApiClient creates a new instance of OverpassApiClient. The
// timeout is passed through to the Overpass server, maxElements caps the
// accepted result size.
func NewOverpassApiClient(httpClient *api.HTTPClient, timeoutSeconds, maxElements int) *OverpassApiClient {
	return &OverpassApiClient{
		HTTPClient:     httpClient,
		timeoutSeconds: timeoutSeconds,
		maxElements:    maxElements,
	}
}

// QueryBoundingBox issues a single Overpass query for the bounding box and
// the union of the given predicates. It never truncates: results above the
// element cap fail with ResultTooLarge so the caller can narrow the request.
func (c *OverpassApiClient) QueryBoundingBox(bbox models.BoundingBox, predicates []registry.TagPredicate) ([]models.OsmElement, error) {
	query := c.buildQuery(bbox, predicates)
	log.Printf("Querying Overpass for bbox (%f, %f) to (%f, %f)", bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MaxLon)

	start := time.Now()
	body, err := c.PostRaw("", "text/plain", []byte(query))
	metrics.UpstreamQueryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamQueriesTotal.WithLabelValues("error").Inc()
		return nil, models.UpstreamQueryError(errors.Wrap(err, "overpass request failed").Error())
	}

	var response models.OverpassResponse
	if err := json.Unmarshal(body, &response); err != nil {
		metrics.UpstreamQueriesTotal.WithLabelValues("error").Inc()
		return nil, models.UpstreamQueryError(errors.Wrap(err, "malformed overpass response").Error())
	}

	metrics.UpstreamQueriesTotal.WithLabelValues("ok").Inc()
	metrics.ElementsRetrieved.Observe(float64(len(response.Elements)))

	if len(response.Elements) > c.maxElements {
		return nil, models.ResultTooLarge(len(response.Elements), c.maxElements)
	}

	log.Printf("Retrieved %d elements from Overpass", len(response.Elements))
	return response.Elements, nil
}

// buildQuery renders the Overpass QL. Each predicate becomes one nwr clause;
// duplicate clauses collapse so overlapping category predicate sets do not
// inflate the query.
func (c *OverpassApiClient) buildQuery(bbox models.BoundingBox, predicates []registry.TagPredicate) string {
	box := fmt.Sprintf("(%f,%f,%f,%f)", bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MaxLon)

	seen := make(map[string]bool)
	var clauses []string
	for _, p := range predicates {
		var clause string
		switch {
		case p.Prefix:
			clause = fmt.Sprintf("  nwr[~\"^%s(:.*)?$\"~\".*\"]%s;", p.Key, box)
		case p.Value != "":
			clause = fmt.Sprintf("  nwr[%q=%q]%s;", p.Key, p.Value, box)
		default:
			clause = fmt.Sprintf("  nwr[%q]%s;", p.Key, box)
		}
		if !seen[clause] {
			seen[clause] = true
			clauses = append(clauses, clause)
		}
	}

	return fmt.Sprintf("[out:json][timeout:%d];\n(\n%s\n);\nout geom;\n",
		c.timeoutSeconds, strings.Join(clauses, "\n"))
}
