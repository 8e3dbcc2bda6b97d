package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dsmirnov/campkit/backend/internal/domain"
	"github.com/dsmirnov/campkit/backend/internal/middleware"
	"github.com/dsmirnov/campkit/backend/internal/render"
)

type listTripsResponse struct {
	Data       []domain.Trip `json:"data"`
	Pagination pagination    `json:"pagination"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type setPeopleRequest struct {
	People int `json:"people"`
}

type setDaysRequest struct {
	Days int `json:"days"`
}

type setMealRequest struct {
	DishID string `json:"dish_id"`
}

type setTemperatureRequest struct {
	Temperature domain.Temperature `json:"temperature"`
}

type manifestResponse struct {
	TripID   uuid.UUID       `json:"trip_id"`
	Name     string          `json:"name"`
	Manifest domain.Manifest `json:"manifest"`
}

// ownerID pulls the owner injected by middleware.RequireOwner. The routes
// are always mounted behind that middleware, so a miss means a wiring bug.
func ownerID(r *http.Request) string {
	owner, ok := middleware.OwnerFrom(r.Context())
	if !ok {
		panic("handler: owner missing from context")
	}
	return owner
}

// tripID parses the {tripID} route parameter. A string that is not a UUID
// cannot name an existing trip, so the caller gets the same 404 it would get
// for a well-formed unknown id.
func tripID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	return id, err == nil
}

func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Create(r.Context(), ownerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, trip)
}

func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	params := domain.NewPaginationParams(page, limit)

	trips, total, err := s.trips.List(r.Context(), ownerID(r), params)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listTripsResponse{
		Data: trips,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	trip, err := s.trips.Get(r.Context(), ownerID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// DeleteTrip is idempotent: deleting an already-deleted trip still returns
// 204 so a client retrying a delete cannot fail.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := s.trips.Delete(r.Context(), ownerID(r), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) RenameTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	var req renameRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	trip, err := s.trips.Rename(r.Context(), ownerID(r), id, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

func (s *Server) SetPeople(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	var req setPeopleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	trip, err := s.trips.SetPeople(r.Context(), ownerID(r), id, req.People)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

func (s *Server) SetDays(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	var req setDaysRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	trip, err := s.trips.SetDays(r.Context(), ownerID(r), id, req.Days)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

func (s *Server) SetMealDish(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	mealIndex, err := strconv.Atoi(chi.URLParam(r, "mealIndex"))
	if err != nil {
		respondValidation(w, "meal index must be a number")
		return
	}
	var req setMealRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	trip, err := s.trips.SetMealDish(r.Context(), ownerID(r), id, mealIndex, req.DishID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

func (s *Server) ToggleCondition(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	trip, err := s.trips.ToggleCondition(r.Context(), ownerID(r), id, chi.URLParam(r, "condition"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

func (s *Server) SetTemperature(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	var req setTemperatureRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	trip, err := s.trips.SetTemperature(r.Context(), ownerID(r), id, req.Temperature)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// GetManifest aggregates the trip checklist. With ?format=text it returns
// the Markdown rendering used by chat frontends instead of JSON.
func (s *Server) GetManifest(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	trip, m, err := s.trips.Manifest(r.Context(), ownerID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(render.Manifest(trip.Name, m)))
		return
	}
	respondJSON(w, http.StatusOK, manifestResponse{
		TripID:   trip.ID,
		Name:     trip.Name,
		Manifest: m,
	})
}
