package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dsmirnov/campkit/backend/internal/domain"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps domain sentinel errors to HTTP statuses and writes the
// JSON error envelope. Unknown errors become an opaque 500 so internal
// details never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{errorDetail{
			Code:    "not_found",
			Message: "trip not found",
		}})
	case errors.Is(err, domain.ErrCapacity):
		respondJSON(w, http.StatusConflict, errorBody{errorDetail{
			Code:    "capacity_exceeded",
			Message: messageAfter(err, domain.ErrCapacity.Error()),
		}})
	case errors.Is(err, domain.ErrMissingDish):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{errorDetail{
			Code:    "unknown_dish",
			Message: messageAfter(err, domain.ErrMissingDish.Error()),
		}})
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{errorDetail{
			Code:    "validation_error",
			Message: messageAfter(err, domain.ErrValidation.Error()),
		}})
	default:
		respondJSON(w, http.StatusInternalServerError, errorBody{errorDetail{
			Code:    "internal",
			Message: "internal server error",
		}})
	}
}

// messageAfter strips the wrapping prefixes ("service.TripService.SetPeople:
// ...") and returns the part of the error text starting at the sentinel, so
// clients see "validation error: people must be between 1 and 30" rather than
// the internal call chain.
func messageAfter(err error, sentinel string) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel); i >= 0 {
		return msg[i:]
	}
	return msg
}

func respondValidation(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusUnprocessableEntity, errorBody{errorDetail{
		Code:    "validation_error",
		Message: message,
	}})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into v. A body that is not valid JSON,
// or that carries fields of the wrong type, is a client error.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
