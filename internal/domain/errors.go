package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// trip does not exist or is not owned by the requesting user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. people count out of range, meal index out of bounds).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrCapacity is returned when an owner already holds the maximum number of
// trips and tries to create another one.
// Handlers should map this to HTTP 409 Conflict.
var ErrCapacity = errors.New("trip limit reached")

// ErrInvalidUnit indicates a catalog product carries a unit outside the
// recognized closed set. It means the catalog data is corrupt; it is checked
// once at startup and never expected at request time.
var ErrInvalidUnit = errors.New("invalid unit")

// ErrMissingDish indicates a meal slot references a dish the catalog does not
// know, or has no dish assigned at all. Dish resolution happens eagerly at
// assignment time, so the aggregation engine only sees this for a structurally
// broken trip. It still refuses to silently skip the meal.
var ErrMissingDish = errors.New("dish not in catalog")
