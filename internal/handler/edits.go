package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dsmirnov/campkit/backend/internal/domain"
	"github.com/dsmirnov/campkit/backend/internal/session"
)

type beginEditRequest struct {
	Field     session.Field `json:"field"`
	MealIndex *int          `json:"meal_index,omitempty"`
}

type submitValueRequest struct {
	Value string `json:"value"`
}

// BeginEdit records which field of the trip the user wants to type a value
// for. Starting a new edit replaces any edit already in flight for the same
// user.
func (s *Server) BeginEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	var req beginEditRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if !req.Field.Valid() {
		respondValidation(w, "unknown field: "+string(req.Field))
		return
	}
	mealIndex := 0
	if req.Field == session.FieldMeal {
		if req.MealIndex == nil || *req.MealIndex < 0 {
			respondValidation(w, "meal edits require a non-negative meal_index")
			return
		}
		mealIndex = *req.MealIndex
	}

	owner := ownerID(r)
	// Verify the trip exists before arming the edit, otherwise the value
	// submission would fail with a confusing 404 one step later.
	if _, err := s.trips.Get(r.Context(), owner, id); err != nil {
		respondError(w, err)
		return
	}

	s.edits.Begin(owner, session.Edit{TripID: id, Field: req.Field, MealIndex: mealIndex})
	w.WriteHeader(http.StatusNoContent)
}

// SubmitEditValue applies the user's typed value to the pending edit. A value
// that fails validation keeps the edit armed so the user can retry with a
// corrected value; success and hard failures (trip gone) clear it.
func (s *Server) SubmitEditValue(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	edit, ok := s.edits.Peek(owner)
	if !ok {
		respondJSON(w, http.StatusNotFound, errorBody{errorDetail{
			Code:    "no_pending_edit",
			Message: "no edit in progress",
		}})
		return
	}
	var req submitValueRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}

	var (
		trip domain.Trip
		err  error
	)
	switch edit.Field {
	case session.FieldName:
		trip, err = s.trips.Rename(r.Context(), owner, edit.TripID, req.Value)
	case session.FieldPeople:
		people, convErr := strconv.Atoi(strings.TrimSpace(req.Value))
		if convErr != nil {
			respondValidation(w, "people must be a number")
			return
		}
		trip, err = s.trips.SetPeople(r.Context(), owner, edit.TripID, people)
	case session.FieldDays:
		days, convErr := strconv.Atoi(strings.TrimSpace(req.Value))
		if convErr != nil {
			respondValidation(w, "days must be a number")
			return
		}
		trip, err = s.trips.SetDays(r.Context(), owner, edit.TripID, days)
	case session.FieldMeal:
		trip, err = s.trips.SetMealDish(r.Context(), owner, edit.TripID, edit.MealIndex, strings.TrimSpace(req.Value))
	default:
		s.edits.Clear(owner)
		respondValidation(w, "unknown field: "+string(edit.Field))
		return
	}

	if err != nil {
		// The trip disappearing is not recoverable by retyping a value.
		if errors.Is(err, domain.ErrNotFound) {
			s.edits.Clear(owner)
		}
		respondError(w, err)
		return
	}

	s.edits.Clear(owner)
	respondJSON(w, http.StatusOK, trip)
}
