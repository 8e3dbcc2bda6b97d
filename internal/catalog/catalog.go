// Package catalog loads the static gear/food rule table and dish library the
// aggregation engine reads. The data is embedded at compile time, validated
// once at startup, and treated as immutable for the process lifetime.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/dsmirnov/campkit/backend/internal/domain"
)

// data holds the raw bytes of catalog.json, embedded at compile time.
// Shipping the catalog inside the binary means the rules and the running
// code are always in sync.
//
//go:embed catalog.json
var data []byte

// ConditionSets groups the rule sets gated on a boolean trip condition.
type ConditionSets struct {
	Rain     domain.RuleSet `json:"rain"`
	Swimming domain.RuleSet `json:"swimming"`
}

// TemperatureSets groups the rule sets keyed by temperature band.
// Exactly one band applies per trip.
type TemperatureSets struct {
	Cold domain.RuleSet `json:"cold"`
	Cool domain.RuleSet `json:"cool"`
	Warm domain.RuleSet `json:"warm"`
	Hot  domain.RuleSet `json:"hot"`
}

// Catalog is the full static rule table: a base layer that always applies,
// conditional layers, temperature layers, and the dish library.
type Catalog struct {
	Base        domain.RuleSet  `json:"base"`
	Conditions  ConditionSets   `json:"conditions"`
	Temperature TemperatureSets `json:"temperature"`
	Dishes      []domain.Dish   `json:"dishes"`

	byID map[string]domain.Dish
}

// Load parses and validates the embedded catalog.
// A validation failure means the shipped data is corrupt and is fatal at
// startup; request-time code may assume a loaded catalog is well-formed.
func Load() (*Catalog, error) {
	return Parse(data)
}

// Parse builds a Catalog from raw JSON. Exposed separately from Load so
// tests can feed hand-crafted catalogs.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}

	c.byID = make(map[string]domain.Dish, len(c.Dishes))
	for _, d := range c.Dishes {
		c.byID[d.ID] = d
	}
	return &c, nil
}

// DishByID returns the dish with the given ID.
// The second return is false when the catalog does not know the ID.
func (c *Catalog) DishByID(id string) (domain.Dish, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// TemperatureSet returns the rule set for the given band.
// The caller must pass a valid band; an unknown band yields an empty set.
func (c *Catalog) TemperatureSet(t domain.Temperature) domain.RuleSet {
	switch t {
	case domain.TempCold:
		return c.Temperature.Cold
	case domain.TempCool:
		return c.Temperature.Cool
	case domain.TempWarm:
		return c.Temperature.Warm
	case domain.TempHot:
		return c.Temperature.Hot
	}
	return domain.RuleSet{}
}

// validate checks catalog integrity:
//   - every product unit is in the closed unit set,
//   - dish IDs are non-empty and unique,
//   - at least one dish exists (trip creation picks dishes at random).
func (c *Catalog) validate() error {
	for name, set := range map[string]domain.RuleSet{
		"base":                c.Base,
		"conditions.rain":     c.Conditions.Rain,
		"conditions.swimming": c.Conditions.Swimming,
		"temperature.cold":    c.Temperature.Cold,
		"temperature.cool":    c.Temperature.Cool,
		"temperature.warm":    c.Temperature.Warm,
		"temperature.hot":     c.Temperature.Hot,
	} {
		for _, r := range set.Products {
			if !r.Item.Unit.Valid() {
				return fmt.Errorf("%w: %q in rule set %s (product %q)",
					domain.ErrInvalidUnit, r.Item.Unit, name, r.Item.Name)
			}
		}
	}

	if len(c.Dishes) == 0 {
		return fmt.Errorf("%w: catalog has no dishes", domain.ErrValidation)
	}

	seen := make(map[string]bool, len(c.Dishes))
	for _, d := range c.Dishes {
		if d.ID == "" {
			return fmt.Errorf("%w: dish %q has no id", domain.ErrValidation, d.Name)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate dish id %q", domain.ErrValidation, d.ID)
		}
		seen[d.ID] = true

		for _, p := range d.Products {
			if !p.Unit.Valid() {
				return fmt.Errorf("%w: %q on dish %q (product %q)",
					domain.ErrInvalidUnit, p.Unit, d.ID, p.Name)
			}
		}
	}
	return nil
}
