package domain

// GearTotal is one aggregated gear line of a manifest.
type GearTotal struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Emoji string `json:"emoji"`
}

// ProductTotal is one aggregated food line of a manifest.
// Identity is the (Name, Unit) pair: the same name measured in different
// units accumulates separately.
type ProductTotal struct {
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Unit  Unit    `json:"unit"`
	Emoji string  `json:"emoji"`
}

// Manifest is the computed, de-duplicated total of gear and food for a trip.
// It is never persisted; callers recompute it on demand. Lines appear in
// first-insertion order, which is stable for an unchanged trip and catalog.
type Manifest struct {
	Gear     []GearTotal    `json:"gear"`
	Products []ProductTotal `json:"products"`
}
