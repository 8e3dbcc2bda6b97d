package domain

// TripPatch is a partial update for a trip. Nil fields are left untouched.
// The repo applies a patch in a single UPDATE that always refreshes
// updated_at, so every mutation bumps the timestamp exactly once.
type TripPatch struct {
	Name       *string
	People     *int
	Days       *int
	Conditions *Conditions
	Meals      *[]Meal
}

// IsZero reports whether the patch carries no changes at all.
func (p TripPatch) IsZero() bool {
	return p.Name == nil && p.People == nil && p.Days == nil &&
		p.Conditions == nil && p.Meals == nil
}
