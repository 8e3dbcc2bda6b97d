// Package domain contains the core data types for the campkit backend.
// This package has zero internal dependencies and is imported by every other
// internal package (catalog, manifest, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MealsPerDay is the number of meal slots every trip day carries:
// one breakfast, one lunch, one dinner.
const MealsPerDay = 3

// Temperature is the expected temperature band for a trip.
// Exactly one band applies per trip; bands never stack.
type Temperature string

const (
	TempCold Temperature = "cold"
	TempCool Temperature = "cool"
	TempWarm Temperature = "warm"
	TempHot  Temperature = "hot"
)

// Temperatures lists all valid bands in display order.
var Temperatures = []Temperature{TempCold, TempCool, TempWarm, TempHot}

// Valid reports whether t is one of the four recognized bands.
func (t Temperature) Valid() bool {
	switch t {
	case TempCold, TempCool, TempWarm, TempHot:
		return true
	}
	return false
}

// TimeOfDay identifies which of the three daily meal slots a Meal fills.
type TimeOfDay string

const (
	Breakfast TimeOfDay = "breakfast"
	Lunch     TimeOfDay = "lunch"
	Dinner    TimeOfDay = "dinner"
)

// MealTimes lists the slots of one day in chronological order.
// The meal sequence of a trip is generated in this order, day by day.
var MealTimes = []TimeOfDay{Breakfast, Lunch, Dinner}

// Conditions holds the toggleable trip parameters that select which
// conditional catalog rule sets apply.
//
// MinimizeWeight is persisted and toggleable but currently has no effect on
// the computed manifest. The flag is kept as-is rather than given invented
// behavior.
type Conditions struct {
	Rain           bool        `json:"rain"`
	Swimming       bool        `json:"swimming"`
	MinimizeWeight bool        `json:"minimize_weight"`
	Temperature    Temperature `json:"temperature"`
}

// DefaultConditions returns the conditions a freshly created trip starts with.
func DefaultConditions() Conditions {
	return Conditions{Temperature: TempCool}
}

// Meal is one (day, time-of-day) slot of a trip with its assigned dish.
// The dish is an embedded value copy captured at assignment time, not a
// reference: later catalog edits never retroactively change existing trips.
type Meal struct {
	Day  int       `json:"day"`
	Time TimeOfDay `json:"time"`
	Dish Dish      `json:"dish"`
}

// Trip represents one user's camping-preparation record.
// Invariant: len(Meals) == Days*MealsPerDay at all times; changing Days
// regenerates the whole meal sequence.
type Trip struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    string     `json:"owner_id"`
	Name       string     `json:"name"`
	People     int        `json:"people"`
	Days       int        `json:"days"`
	Conditions Conditions `json:"conditions"`
	Meals      []Meal     `json:"meals"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
