// Package session tracks which trip field a user is currently typing a value
// for. The chat flow is: the user picks "edit people" on a trip, the bot asks
// for a number, and the next message from that user carries the value.
//
// State is in-memory and per-process: losing it on restart only means the
// user has to pick the field again, which matches how chat editing behaves.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Field identifies which trip attribute a pending edit targets.
type Field string

const (
	FieldName   Field = "name"
	FieldPeople Field = "people"
	FieldDays   Field = "days"
	FieldMeal   Field = "meal"
)

// Valid reports whether f is a known editable field.
func (f Field) Valid() bool {
	switch f {
	case FieldName, FieldPeople, FieldDays, FieldMeal:
		return true
	}
	return false
}

// Edit is one pending edit: the trip, the field, and for meal edits the slot
// index the value applies to.
type Edit struct {
	TripID    uuid.UUID
	Field     Field
	MealIndex int
}

// Store holds at most one pending edit per owner. A later Begin silently
// replaces any in-flight edit rather than queuing behind it.
// Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	edits map[string]Edit
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{edits: make(map[string]Edit)}
}

// Begin records a pending edit for the owner, replacing any existing one.
func (s *Store) Begin(ownerID string, e Edit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edits[ownerID] = e
}

// Peek returns the owner's pending edit without clearing it.
// Used when a submitted value fails validation and the user should be
// re-prompted for the same field.
func (s *Store) Peek(ownerID string) (Edit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.edits[ownerID]
	return e, ok
}

// Clear removes the owner's pending edit, if any.
func (s *Store) Clear(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.edits, ownerID)
}
