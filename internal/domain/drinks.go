package domain

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

type DrinkSpec struct {
	Price           float64 `json:"price"`
	PrepTimeMinutes int     `json:"prep_time_minutes"`
}

// DrinkCatalog maps drink name to its authoritative price and prep time.
// The scheduler always resolves both from here, never from client input.
type DrinkCatalog map[string]DrinkSpec

func LoadDrinkCatalog(configPath string) (DrinkCatalog, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog file %s does not exist", configPath)
		}
		return nil, fmt.Errorf("failed to read catalog file %s: %w", configPath, err)
	}

	var catalog DrinkCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (c DrinkCatalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("invalid catalog: no drinks configured")
	}
	for name, spec := range c {
		if spec.Price <= 0 {
			return fmt.Errorf("invalid catalog: non-positive price %.2f for drink %s", spec.Price, name)
		}
		if spec.PrepTimeMinutes <= 0 {
			return fmt.Errorf("invalid catalog: non-positive prep time %d for drink %s", spec.PrepTimeMinutes, name)
		}
	}
	return nil
}

func (c DrinkCatalog) Lookup(drinkType string) (DrinkSpec, bool) {
	spec, exists := c[drinkType]
	return spec, exists
}

// Names returns drink names in a fixed order so seeded generators stay
// reproducible across runs.
func (c DrinkCatalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultDrinkCatalog mirrors config/drinks.json for callers that have no
// config file at hand (simulation CLI, tests).
func DefaultDrinkCatalog() DrinkCatalog {
	return DrinkCatalog{
		"Cold Brew":  {Price: 120, PrepTimeMinutes: 1},
		"Espresso":   {Price: 150, PrepTimeMinutes: 2},
		"Americano":  {Price: 140, PrepTimeMinutes: 2},
		"Cappuccino": {Price: 180, PrepTimeMinutes: 4},
		"Latte":      {Price: 200, PrepTimeMinutes: 4},
		"Specialty":  {Price: 250, PrepTimeMinutes: 6},
	}
}
