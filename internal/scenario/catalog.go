package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/teaonrocks/ODAT/internal/models"
	"github.com/teaonrocks/ODAT/internal/store"
)

// Catalog serves the read-only per-day scenario records.
type Catalog struct {
	store *store.Store
}

// NewCatalog creates a catalog backed by the shared store
func NewCatalog(s *store.Store) *Catalog {
	return &Catalog{store: s}
}

// Seed loads scenario records from a JSON file into the store, replacing
// any existing record for the same day.
func (c *Catalog) Seed(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading scenarios: %w", err)
	}

	var scenarios []models.Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return fmt.Errorf("parsing scenarios: %w", err)
	}

	for i := range scenarios {
		c.store.PutScenario(&scenarios[i])
	}
	return nil
}

// GetByDay returns the scenario for the given day
func (c *Catalog) GetByDay(day int) (*models.Scenario, error) {
	return c.store.ScenarioByDay(day)
}

// SubPageCount returns how many sub-pages the day's scenario has. Days
// without a configured scenario have none.
func (c *Catalog) SubPageCount(day int) int {
	scenario, err := c.store.ScenarioByDay(day)
	if err != nil {
		return 0
	}
	return len(scenario.SubPages)
}
