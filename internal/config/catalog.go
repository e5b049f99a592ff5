package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"seodash/internal/models"
)

//go:embed default_catalog.yaml
var DefaultCatalogYAML []byte

// Catalog is the set of query definitions shown on the dashboard.
// It is loaded once at startup and read-only afterwards.
type Catalog struct {
	Queries []models.QueryDefinition `yaml:"queries"`

	byID map[string]int
}

// LoadCatalog loads the catalog from path, or the embedded default when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return parseCatalog(DefaultCatalogYAML)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return parseCatalog(data)
}

// parseCatalog parses YAML bytes into a Catalog, applying defaults and rejecting duplicate ids.
func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c.byID = make(map[string]int, len(c.Queries))
	for i := range c.Queries {
		q := &c.Queries[i]
		if q.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", q.ID)
		}
		if q.QueryType == "" {
			q.QueryType = q.ID
		}
		if q.Title == "" {
			q.Title = q.ID
		}
		if q.Status == "" {
			q.Status = models.QueryStatusActive
		}
		c.byID[q.ID] = i
	}

	return &c, nil
}

// Lookup finds a query definition by id.
func (c *Catalog) Lookup(id string) (models.QueryDefinition, bool) {
	if c == nil {
		return models.QueryDefinition{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return models.QueryDefinition{}, false
	}
	return c.Queries[i], true
}

// All returns the query definitions in catalog order.
func (c *Catalog) All() []models.QueryDefinition {
	if c == nil {
		return nil
	}
	out := make([]models.QueryDefinition, len(c.Queries))
	copy(out, c.Queries)
	return out
}
