package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dsmirnov/campkit/backend/internal/domain"
	"github.com/dsmirnov/campkit/backend/internal/session"
)

const testOwner = "chat:1001"

// mockTripService implements TripServicer with per-method function fields so
// each test wires up exactly the behavior it needs.
type mockTripService struct {
	CreateFn          func(ctx context.Context, ownerID string) (domain.Trip, error)
	GetFn             func(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error)
	ListFn            func(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error)
	RenameFn          func(ctx context.Context, ownerID string, id uuid.UUID, name string) (domain.Trip, error)
	SetPeopleFn       func(ctx context.Context, ownerID string, id uuid.UUID, people int) (domain.Trip, error)
	SetDaysFn         func(ctx context.Context, ownerID string, id uuid.UUID, days int) (domain.Trip, error)
	SetMealDishFn     func(ctx context.Context, ownerID string, id uuid.UUID, mealIndex int, dishID string) (domain.Trip, error)
	ToggleConditionFn func(ctx context.Context, ownerID string, id uuid.UUID, name string) (domain.Trip, error)
	SetTemperatureFn  func(ctx context.Context, ownerID string, id uuid.UUID, band domain.Temperature) (domain.Trip, error)
	DeleteFn          func(ctx context.Context, ownerID string, id uuid.UUID) error
	ManifestFn        func(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, domain.Manifest, error)
}

var _ TripServicer = (*mockTripService)(nil)

func (m *mockTripService) Create(ctx context.Context, ownerID string) (domain.Trip, error) {
	return m.CreateFn(ctx, ownerID)
}

func (m *mockTripService) Get(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error) {
	return m.GetFn(ctx, ownerID, id)
}

func (m *mockTripService) List(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.ListFn(ctx, ownerID, p)
}

func (m *mockTripService) Rename(ctx context.Context, ownerID string, id uuid.UUID, name string) (domain.Trip, error) {
	return m.RenameFn(ctx, ownerID, id, name)
}

func (m *mockTripService) SetPeople(ctx context.Context, ownerID string, id uuid.UUID, people int) (domain.Trip, error) {
	return m.SetPeopleFn(ctx, ownerID, id, people)
}

func (m *mockTripService) SetDays(ctx context.Context, ownerID string, id uuid.UUID, days int) (domain.Trip, error) {
	return m.SetDaysFn(ctx, ownerID, id, days)
}

func (m *mockTripService) SetMealDish(ctx context.Context, ownerID string, id uuid.UUID, mealIndex int, dishID string) (domain.Trip, error) {
	return m.SetMealDishFn(ctx, ownerID, id, mealIndex, dishID)
}

func (m *mockTripService) ToggleCondition(ctx context.Context, ownerID string, id uuid.UUID, name string) (domain.Trip, error) {
	return m.ToggleConditionFn(ctx, ownerID, id, name)
}

func (m *mockTripService) SetTemperature(ctx context.Context, ownerID string, id uuid.UUID, band domain.Temperature) (domain.Trip, error) {
	return m.SetTemperatureFn(ctx, ownerID, id, band)
}

func (m *mockTripService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return m.DeleteFn(ctx, ownerID, id)
}

func (m *mockTripService) Manifest(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, domain.Manifest, error) {
	return m.ManifestFn(ctx, ownerID, id)
}

func newTestServer(trips TripServicer) (*Server, http.Handler) {
	s := NewServer(trips, session.NewStore())
	return s, s.Routes()
}

// doRequest runs req through the router with the owner header set and returns
// the recorded response.
func doRequest(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("X-User-ID", testOwner)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[errorBody](t, rec).Error.Code
}

func sampleTrip(owner string) domain.Trip {
	now := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	return domain.Trip{
		ID:         uuid.New(),
		OwnerID:    owner,
		Name:       "Trip #1",
		People:     2,
		Days:       1,
		Conditions: domain.DefaultConditions(),
		Meals: []domain.Meal{
			{Day: 1, Time: domain.Breakfast, Dish: domain.Dish{ID: "oatmeal", Name: "Oatmeal"}},
			{Day: 1, Time: domain.Lunch, Dish: domain.Dish{ID: "pasta-cheese", Name: "Pasta with cheese"}},
			{Day: 1, Time: domain.Dinner, Dish: domain.Dish{ID: "fish-soup", Name: "Fish soup"}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
