package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmirnov/campkit/backend/internal/catalog"
	"github.com/dsmirnov/campkit/backend/internal/domain"
	"github.com/dsmirnov/campkit/backend/internal/manifest"
)

// ---- fixtures --------------------------------------------------------------

// gearRule builds a catalog gear rule.
func gearRule(name string, qty int, perPerson bool) domain.GearRule {
	return domain.GearRule{
		PerPerson: perPerson,
		Item:      domain.GearItem{Name: name, Qty: qty, Emoji: "🎒"},
	}
}

// productRule builds a catalog food rule. Food is always people-scaled, so
// the per-person flag is irrelevant to the engine and fixed to true here.
func productRule(name string, qty float64, unit domain.Unit) domain.ProductRule {
	return domain.ProductRule{
		PerPerson: true,
		Item:      domain.ProductItem{Name: name, Qty: qty, Unit: unit, Emoji: "🍽️"},
	}
}

// potDish is a dish requiring one shared pot and a per-person staple,
// matching the reference scenario from the aggregation contract.
func potDish() domain.Dish {
	return domain.Dish{
		ID:    "porridge",
		Name:  "Porridge",
		Emoji: "🥣",
		Gear: []domain.GearItem{
			{Name: "Pot", Qty: 1, Emoji: "🍲"},
		},
		Products: []domain.ProductItem{
			{Name: "Oats", Qty: 0.1, Unit: domain.UnitKilograms, Emoji: "🌾"},
		},
	}
}

// testCatalog builds a small hand-crafted catalog exercising every layer.
func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Base: domain.RuleSet{
			Gear: []domain.GearRule{
				gearRule("Tent", 1, false),
				gearRule("Sleeping bag", 1, true),
			},
			Products: []domain.ProductRule{
				productRule("Water", 2, domain.UnitLiters),
			},
		},
		Conditions: catalog.ConditionSets{
			Rain: domain.RuleSet{
				Gear: []domain.GearRule{
					gearRule("Rain jacket", 1, true),
					gearRule("Tarp", 1, false),
				},
			},
			Swimming: domain.RuleSet{
				Gear: []domain.GearRule{
					gearRule("Towel", 1, true),
				},
			},
		},
		Temperature: catalog.TemperatureSets{
			Cold: domain.RuleSet{
				Gear: []domain.GearRule{
					// Overlaps with the rain layer on purpose: the engine must
					// take the max, not the sum.
					gearRule("Rain jacket", 1, true),
					gearRule("Warm hat", 1, true),
				},
				Products: []domain.ProductRule{
					productRule("Water", 0.5, domain.UnitLiters),
				},
			},
			Cool: domain.RuleSet{},
			Warm: domain.RuleSet{},
			Hot:  domain.RuleSet{},
		},
		Dishes: []domain.Dish{potDish()},
	}
}

// tripWithMeals builds a trip whose every meal slot is assigned the given dish.
func tripWithMeals(people, days int, cond domain.Conditions, dish domain.Dish) domain.Trip {
	var meals []domain.Meal
	for day := 1; day <= days; day++ {
		for _, tod := range domain.MealTimes {
			meals = append(meals, domain.Meal{Day: day, Time: tod, Dish: dish})
		}
	}
	return domain.Trip{
		Name:       "Test trip",
		People:     people,
		Days:       days,
		Conditions: cond,
		Meals:      meals,
	}
}

func gearQty(t *testing.T, m domain.Manifest, name string) int {
	t.Helper()
	for _, g := range m.Gear {
		if g.Name == name {
			return g.Qty
		}
	}
	t.Fatalf("gear %q not in manifest", name)
	return 0
}

func productQty(t *testing.T, m domain.Manifest, name string, unit domain.Unit) float64 {
	t.Helper()
	for _, p := range m.Products {
		if p.Name == name && p.Unit == unit {
			return p.Qty
		}
	}
	t.Fatalf("product %q (%s) not in manifest", name, unit)
	return 0
}

// ---- reference scenario ----------------------------------------------------

// TestCompute_referenceScenario is the end-to-end contract check:
// people=2, days=1, rain, cold band, three meals of the same pot dish.
func TestCompute_referenceScenario(t *testing.T) {
	cond := domain.Conditions{Rain: true, Temperature: domain.TempCold}
	trip := tripWithMeals(2, 1, cond, potDish())

	m, err := manifest.Compute(trip, testCatalog())
	require.NoError(t, err)

	// 3 meals × 0.1 kg × 2 people.
	assert.InDelta(t, 0.6, productQty(t, m, "Oats", domain.UnitKilograms), 1e-9)

	// One pot despite three meals needing one each.
	assert.Equal(t, 1, gearQty(t, m, "Pot"))

	// Rain jacket requested by both the rain layer (2) and the cold band (2):
	// max, not 4.
	assert.Equal(t, 2, gearQty(t, m, "Rain jacket"))

	// Base water 2 l × 2 people plus cold-band 0.5 l × 2 people, summed.
	assert.InDelta(t, 5.0, productQty(t, m, "Water", domain.UnitLiters), 1e-9)

	// Flat base gear is unaffected by people.
	assert.Equal(t, 1, gearQty(t, m, "Tent"))
	assert.Equal(t, 2, gearQty(t, m, "Sleeping bag"))
}

// ---- scaling law -----------------------------------------------------------

func TestCompute_scalingLaw(t *testing.T) {
	cond := domain.Conditions{Temperature: domain.TempCool}
	single := tripWithMeals(1, 2, cond, potDish())
	double := tripWithMeals(2, 2, cond, potDish())

	m1, err := manifest.Compute(single, testCatalog())
	require.NoError(t, err)
	m2, err := manifest.Compute(double, testCatalog())
	require.NoError(t, err)

	// Doubling people exactly doubles every food total.
	require.Len(t, m2.Products, len(m1.Products))
	for i, p := range m1.Products {
		assert.InDelta(t, p.Qty*2, m2.Products[i].Qty, 1e-9, "product %q", p.Name)
	}

	// Flat gear quantities are unchanged; per-person gear doubles.
	assert.Equal(t, gearQty(t, m1, "Tent"), gearQty(t, m2, "Tent"))
	assert.Equal(t, gearQty(t, m1, "Sleeping bag")*2, gearQty(t, m2, "Sleeping bag"))
}

// ---- merge policies --------------------------------------------------------

func TestCompute_gearMaxUnderOverlap(t *testing.T) {
	// Rain layer asks for a per-person rain jacket (qty 4 for 4 people);
	// the cold band asks for the same item. The final quantity must be
	// max(4, 4) = 4, never 8.
	cond := domain.Conditions{Rain: true, Temperature: domain.TempCold}
	trip := tripWithMeals(4, 1, cond, potDish())

	m, err := manifest.Compute(trip, testCatalog())
	require.NoError(t, err)

	assert.Equal(t, 4, gearQty(t, m, "Rain jacket"))
}

func TestCompute_foodAdditiveAcrossLayers(t *testing.T) {
	// Water appears in the base layer (2 l/person) and in the cold band
	// (0.5 l/person): contributions sum.
	cond := domain.Conditions{Temperature: domain.TempCold}
	trip := tripWithMeals(3, 1, cond, potDish())

	m, err := manifest.Compute(trip, testCatalog())
	require.NoError(t, err)

	assert.InDelta(t, 7.5, productQty(t, m, "Water", domain.UnitLiters), 1e-9)
}

func TestCompute_conditionsOff(t *testing.T) {
	cond := domain.Conditions{Temperature: domain.TempCool}
	trip := tripWithMeals(2, 1, cond, potDish())

	m, err := manifest.Compute(trip, testCatalog())
	require.NoError(t, err)

	for _, g := range m.Gear {
		assert.NotEqual(t, "Rain jacket", g.Name, "rain gear must not apply when rain is off")
		assert.NotEqual(t, "Towel", g.Name, "swimming gear must not apply when swimming is off")
	}
}

// ---- minimizeWeight is a documented no-op ----------------------------------

func TestCompute_minimizeWeightNoOp(t *testing.T) {
	cond := domain.Conditions{Rain: true, Temperature: domain.TempCold}
	plain := tripWithMeals(2, 1, cond, potDish())

	light := plain
	light.Conditions.MinimizeWeight = true

	m1, err := manifest.Compute(plain, testCatalog())
	require.NoError(t, err)
	m2, err := manifest.Compute(light, testCatalog())
	require.NoError(t, err)

	assert.Equal(t, m1, m2)
}

// ---- determinism -----------------------------------------------------------

func TestCompute_deterministic(t *testing.T) {
	cond := domain.Conditions{Rain: true, Swimming: true, Temperature: domain.TempCold}
	trip := tripWithMeals(2, 3, cond, potDish())
	cat := testCatalog()

	m1, err := manifest.Compute(trip, cat)
	require.NoError(t, err)
	m2, err := manifest.Compute(trip, cat)
	require.NoError(t, err)

	assert.Equal(t, m1, m2)
}

func TestCompute_insertionOrder(t *testing.T) {
	cond := domain.Conditions{Rain: true, Temperature: domain.TempCold}
	trip := tripWithMeals(1, 1, cond, potDish())

	m, err := manifest.Compute(trip, testCatalog())
	require.NoError(t, err)

	// Layers apply base → rain → temperature → dishes, and within a layer
	// rules keep their catalog order; a line's position is fixed by its
	// first contribution.
	names := make([]string, len(m.Gear))
	for i, g := range m.Gear {
		names[i] = g.Name
	}
	assert.Equal(t,
		[]string{"Tent", "Sleeping bag", "Rain jacket", "Tarp", "Warm hat", "Pot"},
		names)
}

// ---- error conditions ------------------------------------------------------

func TestCompute_missingDish(t *testing.T) {
	trip := tripWithMeals(1, 1, domain.DefaultConditions(), potDish())
	trip.Meals[1].Dish = domain.Dish{} // slot lost its dish

	_, err := manifest.Compute(trip, testCatalog())

	assert.ErrorIs(t, err, domain.ErrMissingDish)
}

func TestCompute_invalidDishUnit(t *testing.T) {
	dish := potDish()
	dish.Products = append(dish.Products, domain.ProductItem{
		Name: "Mystery powder", Qty: 1, Unit: "cups", Emoji: "❓",
	})
	trip := tripWithMeals(1, 1, domain.DefaultConditions(), dish)

	_, err := manifest.Compute(trip, testCatalog())

	assert.ErrorIs(t, err, domain.ErrInvalidUnit)
}

func TestCompute_invalidRuleUnit(t *testing.T) {
	cat := testCatalog()
	cat.Base.Products = append(cat.Base.Products, domain.ProductRule{
		PerPerson: true,
		Item:      domain.ProductItem{Name: "Firewood", Qty: 1, Unit: "bundles", Emoji: "🪵"},
	})
	trip := tripWithMeals(1, 1, domain.DefaultConditions(), potDish())

	_, err := manifest.Compute(trip, cat)

	assert.ErrorIs(t, err, domain.ErrInvalidUnit)
}

// TestCompute_embeddedCatalog runs the engine against the real shipped
// catalog as a smoke check that data and engine agree on units and shape.
func TestCompute_embeddedCatalog(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	trip := tripWithMeals(2, 2, domain.Conditions{Rain: true, Temperature: domain.TempCold}, cat.Dishes[0])

	m, err := manifest.Compute(trip, cat)
	require.NoError(t, err)
	assert.NotEmpty(t, m.Gear)
	assert.NotEmpty(t, m.Products)
}
