// Package service contains the business logic for the campkit backend.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here; services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dsmirnov/campkit/backend/internal/catalog"
	"github.com/dsmirnov/campkit/backend/internal/domain"
	"github.com/dsmirnov/campkit/backend/internal/manifest"
	"github.com/dsmirnov/campkit/backend/internal/repo"
)

// Rand is the randomness source for initial dish assignment.
// *math/rand.Rand satisfies it; tests supply a deterministic source so exact
// initial assignments can be asserted.
type Rand interface {
	Intn(n int) int
}

// Limits holds the configurable upper bounds for trip parameters.
type Limits struct {
	// MaxTrips is the maximum number of trips one owner may hold.
	MaxTrips int
	// MaxPeople is the maximum headcount per trip.
	MaxPeople int
	// MaxDays is the maximum trip duration in days.
	MaxDays int
}

// DefaultLimits returns the production defaults.
func DefaultLimits() Limits {
	return Limits{MaxTrips: 10, MaxPeople: 30, MaxDays: 14}
}

// TripService implements the trip lifecycle operations.
// All dependencies are explicit: no ambient catalog holder, store, or RNG.
type TripService struct {
	repo   repo.TripRepo
	cat    *catalog.Catalog
	rng    Rand
	limits Limits
}

// NewTripService constructs a TripService.
func NewTripService(r repo.TripRepo, cat *catalog.Catalog, rng Rand, limits Limits) *TripService {
	return &TripService{repo: r, cat: cat, rng: rng, limits: limits}
}

// Create initializes and persists a new trip for the owner: one person, one
// day, default conditions, and a randomly assigned dish in every meal slot.
// Returns domain.ErrCapacity when the owner is already at the trip limit.
func (s *TripService) Create(ctx context.Context, ownerID string) (domain.Trip, error) {
	count, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if count >= s.limits.MaxTrips {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w (max %d)", domain.ErrCapacity, s.limits.MaxTrips)
	}

	trip := domain.Trip{
		OwnerID:    ownerID,
		Name:       fmt.Sprintf("Trip #%d", count+1),
		People:     1,
		Days:       1,
		Conditions: domain.DefaultConditions(),
		Meals:      s.generateMeals(1),
	}

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// Get returns a single trip, scoped to the owner.
func (s *TripService) Get(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// List returns one page of the owner's trips plus the owner's total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListByOwner(ctx, ownerID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Rename changes the trip's display name.
// Returns domain.ErrValidation when the name is empty after trimming.
func (s *TripService) Rename(ctx context.Context, ownerID string, id uuid.UUID, name string) (domain.Trip, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Rename: %w: name is required", domain.ErrValidation)
	}
	return s.patch(ctx, "Rename", ownerID, id, domain.TripPatch{Name: &name})
}

// SetPeople changes the headcount. Meals are untouched.
// Returns domain.ErrValidation when people is outside 1..MaxPeople.
func (s *TripService) SetPeople(ctx context.Context, ownerID string, id uuid.UUID, people int) (domain.Trip, error) {
	if people <= 0 || people > s.limits.MaxPeople {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetPeople: %w: people must be between 1 and %d",
			domain.ErrValidation, s.limits.MaxPeople)
	}
	return s.patch(ctx, "SetPeople", ownerID, id, domain.TripPatch{People: &people})
}

// SetDays changes the trip duration and regenerates the whole meal sequence:
// all prior per-meal dish assignments are discarded, keeping the
// meals-per-day invariant trivially true. Returns domain.ErrValidation when
// days is outside 1..MaxDays.
func (s *TripService) SetDays(ctx context.Context, ownerID string, id uuid.UUID, days int) (domain.Trip, error) {
	if days <= 0 || days > s.limits.MaxDays {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetDays: %w: days must be between 1 and %d",
			domain.ErrValidation, s.limits.MaxDays)
	}
	meals := s.generateMeals(days)
	return s.patch(ctx, "SetDays", ownerID, id, domain.TripPatch{Days: &days, Meals: &meals})
}

// SetMealDish assigns a catalog dish to one meal slot. The slot stores a
// value copy of the dish: later catalog edits never change this trip.
// Returns domain.ErrValidation for an out-of-bounds index and
// domain.ErrMissingDish for an unknown dish ID.
func (s *TripService) SetMealDish(ctx context.Context, ownerID string, id uuid.UUID, mealIndex int, dishID string) (domain.Trip, error) {
	trip, err := s.repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetMealDish: %w", err)
	}

	if mealIndex < 0 || mealIndex >= len(trip.Meals) {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetMealDish: %w: meal index %d out of range",
			domain.ErrValidation, mealIndex)
	}
	dish, ok := s.cat.DishByID(dishID)
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetMealDish: %w: %q", domain.ErrMissingDish, dishID)
	}

	meals := trip.Meals
	meals[mealIndex].Dish = dish
	return s.applyPatch(ctx, "SetMealDish", ownerID, id, domain.TripPatch{Meals: &meals})
}

// ToggleCondition flips one of the boolean trip conditions ("rain",
// "swimming", "minimize_weight") and returns the updated trip for
// re-rendering. Returns domain.ErrValidation for an unknown condition name.
func (s *TripService) ToggleCondition(ctx context.Context, ownerID string, id uuid.UUID, name string) (domain.Trip, error) {
	trip, err := s.repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.ToggleCondition: %w", err)
	}

	cond := trip.Conditions
	switch name {
	case "rain":
		cond.Rain = !cond.Rain
	case "swimming":
		cond.Swimming = !cond.Swimming
	case "minimize_weight":
		cond.MinimizeWeight = !cond.MinimizeWeight
	default:
		return domain.Trip{}, fmt.Errorf("service.TripService.ToggleCondition: %w: unknown condition %q",
			domain.ErrValidation, name)
	}
	return s.applyPatch(ctx, "ToggleCondition", ownerID, id, domain.TripPatch{Conditions: &cond})
}

// SetTemperature selects the trip's temperature band.
// Returns domain.ErrValidation for an unknown band.
func (s *TripService) SetTemperature(ctx context.Context, ownerID string, id uuid.UUID, band domain.Temperature) (domain.Trip, error) {
	if !band.Valid() {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetTemperature: %w: unknown temperature %q",
			domain.ErrValidation, band)
	}

	trip, err := s.repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetTemperature: %w", err)
	}

	cond := trip.Conditions
	cond.Temperature = band
	return s.applyPatch(ctx, "SetTemperature", ownerID, id, domain.TripPatch{Conditions: &cond})
}

// Delete removes a trip. Deleting an absent trip succeeds silently so
// double-submitted chat actions stay harmless.
func (s *TripService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Manifest loads the trip and computes its aggregated gear and food totals.
func (s *TripService) Manifest(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, domain.Manifest, error) {
	trip, err := s.repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, domain.Manifest{}, fmt.Errorf("service.TripService.Manifest: %w", err)
	}

	m, err := manifest.Compute(trip, s.cat)
	if err != nil {
		return domain.Trip{}, domain.Manifest{}, fmt.Errorf("service.TripService.Manifest: %w", err)
	}
	return trip, m, nil
}

// patch verifies the trip exists for this owner, then applies the patch.
// Used by operations that do not need the current record for validation.
func (s *TripService) patch(ctx context.Context, op, ownerID string, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
	if _, err := s.repo.GetByOwner(ctx, ownerID, id); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	return s.applyPatch(ctx, op, ownerID, id, p)
}

// applyPatch writes the patch and re-reads the record so the caller sees the
// store-refreshed updated_at.
func (s *TripService) applyPatch(ctx context.Context, op, ownerID string, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
	if err := s.repo.Update(ctx, ownerID, id, p); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	updated, err := s.repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	return updated, nil
}

// generateMeals builds the full meal sequence for the given duration, picking
// a uniformly random catalog dish for every slot. len(result) == days*3 with
// exactly one breakfast, lunch, and dinner per day.
func (s *TripService) generateMeals(days int) []domain.Meal {
	meals := make([]domain.Meal, 0, days*domain.MealsPerDay)
	for day := 1; day <= days; day++ {
		for _, tod := range domain.MealTimes {
			dish := s.cat.Dishes[s.rng.Intn(len(s.cat.Dishes))]
			meals = append(meals, domain.Meal{Day: day, Time: tod, Dish: dish})
		}
	}
	return meals
}
