// Package handler implements the HTTP handlers for the campkit API.
// All handlers are methods on Server; methods are split into files by concern
// (health.go, trip.go, edits.go) but share the same struct so they can access
// its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dsmirnov/campkit/backend/internal/domain"
	"github.com/dsmirnov/campkit/backend/internal/middleware"
	"github.com/dsmirnov/campkit/backend/internal/session"
)

// TripServicer defines the business operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, ownerID string) (domain.Trip, error)
	Get(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Rename(ctx context.Context, ownerID string, id uuid.UUID, name string) (domain.Trip, error)
	SetPeople(ctx context.Context, ownerID string, id uuid.UUID, people int) (domain.Trip, error)
	SetDays(ctx context.Context, ownerID string, id uuid.UUID, days int) (domain.Trip, error)
	SetMealDish(ctx context.Context, ownerID string, id uuid.UUID, mealIndex int, dishID string) (domain.Trip, error)
	ToggleCondition(ctx context.Context, ownerID string, id uuid.UUID, name string) (domain.Trip, error)
	SetTemperature(ctx context.Context, ownerID string, id uuid.UUID, band domain.Temperature) (domain.Trip, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	Manifest(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, domain.Manifest, error)
}

// Server holds the handler dependencies: the trip service and the per-user
// pending-edit store backing the chat "type a value" flow.
type Server struct {
	trips TripServicer
	edits *session.Store
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, edits *session.Store) *Server {
	return &Server{trips: trips, edits: edits}
}

// Routes returns the full route tree. The health check is public; everything
// else requires the owner header.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireOwner)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Delete("/", s.DeleteTrip)
				r.Put("/name", s.RenameTrip)
				r.Put("/people", s.SetPeople)
				r.Put("/days", s.SetDays)
				r.Put("/meals/{mealIndex}", s.SetMealDish)
				r.Post("/conditions/{condition}/toggle", s.ToggleCondition)
				r.Put("/temperature", s.SetTemperature)
				r.Get("/manifest", s.GetManifest)
				r.Post("/edits", s.BeginEdit)
			})
		})

		r.Post("/edits/value", s.SubmitEditValue)
	})

	return r
}
