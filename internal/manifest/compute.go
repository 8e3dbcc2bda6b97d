// Package manifest implements the list-aggregation engine: the pure function
// that merges base rules, conditional rules, temperature rules, and per-meal
// dish requirements into the final gear and food totals for a trip.
//
// The merge policies differ by category and must not be mixed up:
//
//   - gear merges by item name taking the MAXIMUM quantity. Gear is reusable
//     equipment; one tent suffices no matter how many layers ask for a tent,
//     and a rain jacket requested by both the rain layer and a cold band must
//     not be double counted.
//   - food merges by (name, unit) ADDITIVELY. Food is consumed, so every
//     layer's contribution sums. Food quantities are always scaled by the
//     trip's people count.
//
// Gear from rule layers scales with people only when the rule says so; gear
// from dishes is a flat per-trip requirement and never scales.
package manifest

import (
	"fmt"

	"github.com/dsmirnov/campkit/backend/internal/catalog"
	"github.com/dsmirnov/campkit/backend/internal/domain"
)

// Compute aggregates the trip's configuration against the catalog and returns
// the final manifest. It is deterministic and performs no I/O: the same trip
// and catalog always yield the same manifest, with lines ordered by first
// insertion.
//
// Layers apply in strict order: base, rain, swimming, the trip's temperature
// band, then every meal in sequence. MinimizeWeight has no effect on the
// result.
//
// Errors indicate upstream data integrity problems (domain.ErrInvalidUnit,
// domain.ErrMissingDish) and are unreachable for a validated catalog and a
// structurally sound trip.
func Compute(trip domain.Trip, cat *catalog.Catalog) (domain.Manifest, error) {
	acc := newAccumulator()

	// Base layer always applies.
	if err := acc.applySet(cat.Base, trip.People); err != nil {
		return domain.Manifest{}, fmt.Errorf("manifest.Compute: base: %w", err)
	}

	// Conditional layers.
	if trip.Conditions.Rain {
		if err := acc.applySet(cat.Conditions.Rain, trip.People); err != nil {
			return domain.Manifest{}, fmt.Errorf("manifest.Compute: rain: %w", err)
		}
	}
	if trip.Conditions.Swimming {
		if err := acc.applySet(cat.Conditions.Swimming, trip.People); err != nil {
			return domain.Manifest{}, fmt.Errorf("manifest.Compute: swimming: %w", err)
		}
	}

	// Exactly one temperature band per trip; bands never stack.
	if err := acc.applySet(cat.TemperatureSet(trip.Conditions.Temperature), trip.People); err != nil {
		return domain.Manifest{}, fmt.Errorf("manifest.Compute: temperature: %w", err)
	}

	// Per-meal dish requirements, in meal sequence order.
	for i, meal := range trip.Meals {
		if meal.Dish.ID == "" {
			return domain.Manifest{}, fmt.Errorf("manifest.Compute: meal %d: %w", i, domain.ErrMissingDish)
		}
		for _, g := range meal.Dish.Gear {
			// Dish gear is a flat per-trip requirement: three meals needing a
			// pot still need one pot.
			acc.mergeGear(g.Name, g.Qty, g.Emoji)
		}
		for _, p := range meal.Dish.Products {
			if !p.Unit.Valid() {
				return domain.Manifest{}, fmt.Errorf("manifest.Compute: meal %d product %q: %w",
					i, p.Name, domain.ErrInvalidUnit)
			}
			acc.addProduct(p.Name, p.Qty*float64(trip.People), p.Unit, p.Emoji)
		}
	}

	return acc.manifest(), nil
}

// productKey is the composite identity of a food line: the same name measured
// in different units accumulates separately.
type productKey struct {
	name string
	unit domain.Unit
}

// accumulator collects gear and food totals while preserving first-insertion
// order, so a manifest renders the same way on every computation.
type accumulator struct {
	gearOrder []string
	gear      map[string]domain.GearTotal

	productOrder []productKey
	products     map[productKey]domain.ProductTotal
}

func newAccumulator() *accumulator {
	return &accumulator{
		gear:     make(map[string]domain.GearTotal),
		products: make(map[productKey]domain.ProductTotal),
	}
}

// applySet merges one catalog rule layer. Gear quantities scale with people
// only when the rule is flagged per-person; food quantities always scale.
func (a *accumulator) applySet(set domain.RuleSet, people int) error {
	for _, r := range set.Gear {
		qty := r.Item.Qty
		if r.PerPerson {
			qty *= people
		}
		a.mergeGear(r.Item.Name, qty, r.Item.Emoji)
	}
	for _, r := range set.Products {
		if !r.Item.Unit.Valid() {
			return fmt.Errorf("product %q: %w", r.Item.Name, domain.ErrInvalidUnit)
		}
		a.addProduct(r.Item.Name, r.Item.Qty*float64(people), r.Item.Unit, r.Item.Emoji)
	}
	return nil
}

// mergeGear records a gear contribution under the max policy: an existing
// entry keeps the larger quantity, never the sum. The first contribution
// fixes the line's position and emoji.
func (a *accumulator) mergeGear(name string, qty int, emoji string) {
	if existing, ok := a.gear[name]; ok {
		if qty > existing.Qty {
			existing.Qty = qty
			a.gear[name] = existing
		}
		return
	}
	a.gearOrder = append(a.gearOrder, name)
	a.gear[name] = domain.GearTotal{Name: name, Qty: qty, Emoji: emoji}
}

// addProduct records a food contribution under the additive policy.
// The first contribution fixes the line's position and emoji.
func (a *accumulator) addProduct(name string, qty float64, unit domain.Unit, emoji string) {
	key := productKey{name: name, unit: unit}
	if existing, ok := a.products[key]; ok {
		existing.Qty += qty
		a.products[key] = existing
		return
	}
	a.productOrder = append(a.productOrder, key)
	a.products[key] = domain.ProductTotal{Name: name, Qty: qty, Unit: unit, Emoji: emoji}
}

// manifest flattens the accumulated maps into ordered slices.
func (a *accumulator) manifest() domain.Manifest {
	m := domain.Manifest{
		Gear:     make([]domain.GearTotal, 0, len(a.gearOrder)),
		Products: make([]domain.ProductTotal, 0, len(a.productOrder)),
	}
	for _, name := range a.gearOrder {
		m.Gear = append(m.Gear, a.gear[name])
	}
	for _, key := range a.productOrder {
		m.Products = append(m.Products, a.products[key])
	}
	return m
}
