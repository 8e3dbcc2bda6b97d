package domain

// Unit is the measurement unit for a food quantity.
// The set is closed: any other string in catalog data is rejected at load
// time with ErrInvalidUnit.
type Unit string

const (
	UnitPieces    Unit = "pcs" // piece count
	UnitKilograms Unit = "kg"  // mass in kilograms
	UnitLiters    Unit = "l"   // volume in liters
)

// Valid reports whether u is one of the three recognized units.
func (u Unit) Valid() bool {
	switch u {
	case UnitPieces, UnitKilograms, UnitLiters:
		return true
	}
	return false
}

// GearItem is a single piece of reusable equipment.
type GearItem struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Emoji string `json:"emoji"`
}

// ProductItem is a consumable food item with its unit of measure.
// Quantities on dishes are defined per person and multiplied by the trip's
// people count at aggregation time.
type ProductItem struct {
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Unit  Unit    `json:"unit"`
	Emoji string  `json:"emoji"`
}

// GearRule is a catalog rule contributing gear to the manifest.
// When PerPerson is true the quantity scales linearly with the trip's people
// count; otherwise it is a flat per-trip quantity (one tent regardless of
// group size).
type GearRule struct {
	PerPerson bool     `json:"per_person"`
	Item      GearItem `json:"item"`
}

// ProductRule is a catalog rule contributing food to the manifest.
// Food quantities are always people-scaled at aggregation time; the PerPerson
// flag is carried for catalog-format fidelity but does not create a flat-food
// case in any layer.
type ProductRule struct {
	PerPerson bool        `json:"per_person"`
	Item      ProductItem `json:"item"`
}

// RuleSet is one layer of catalog rules: the base layer, a conditional layer
// (rain, swimming), or a temperature band.
type RuleSet struct {
	Gear     []GearRule    `json:"gear"`
	Products []ProductRule `json:"products"`
}

// Dish is a catalog meal entry carrying its own equipment and food needs.
// Dish gear is a flat per-trip requirement (multiple meals needing a pot do
// not need multiple pots); dish product quantities are per person per meal.
type Dish struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Emoji    string        `json:"emoji"`
	Gear     []GearItem    `json:"gear"`
	Products []ProductItem `json:"products"`
}
