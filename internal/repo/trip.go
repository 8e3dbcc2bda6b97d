// Package repo contains all database access logic for the campkit backend.
// No business logic lives here, only SQL and type mapping. Every query is
// scoped by owner_id so cross-owner access is impossible at this layer.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dsmirnov/campkit/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// Update and Delete are silent no-ops when the target row is absent: chat
// surfaces double-submit actions, and treating a repeat as an error would
// surface phantom failures to the user.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated). The caller
	// never chooses the ID.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByOwner retrieves a single trip by ID, scoped to the given owner.
	// Returns domain.ErrNotFound when the trip is absent or owned by someone else.
	GetByOwner(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error)

	// ListByOwner returns one page of the owner's trips, newest first,
	// along with the owner's total trip count.
	ListByOwner(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// CountByOwner returns how many trips the owner currently holds.
	CountByOwner(ctx context.Context, ownerID string) (int, error)

	// Update applies a partial patch to the trip, always refreshing
	// updated_at. A patch against an absent trip is a silent no-op.
	Update(ctx context.Context, ownerID string, id uuid.UUID, patch domain.TripPatch) error

	// Delete removes a trip. Deleting an absent trip is a silent no-op.
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
// Conditions and meals are stored as JSONB columns; the rest are scalars.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, owner_id, name, people, days, conditions, meals, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (owner_id, name, people, days, conditions, meals)
		VALUES (@owner_id, @name, @people, @days, @conditions, @meals)
		RETURNING ` + tripColumns

	conditions, meals, err := marshalTripJSON(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	args := pgx.NamedArgs{
		"owner_id":   trip.OwnerID,
		"name":       trip.Name,
		"people":     trip.People,
		"days":       trip.Days,
		"conditions": conditions,
		"meals":      meals,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByOwner(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE owner_id = @owner_id AND id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"owner_id": ownerID, "id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByOwner: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListByOwner(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `, count(*) OVER () AS total
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"owner_id": ownerID,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	var (
		trips []domain.Trip
		total int64
	)
	for rows.Next() {
		t, n, err := scanTripWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListByOwner: scan: %w", err)
		}
		trips = append(trips, t)
		total = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByOwner: rows: %w", err)
	}

	// An empty page beyond the last one still needs the real total.
	if trips == nil {
		trips = []domain.Trip{}
		n, err := r.CountByOwner(ctx, ownerID)
		if err != nil {
			return nil, 0, err
		}
		total = int64(n)
	}
	return trips, total, nil
}

func (r *pgTripRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	const q = `SELECT count(*) FROM trips WHERE owner_id = @owner_id`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"owner_id": ownerID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.TripRepo.CountByOwner: %w", err)
	}
	return n, nil
}

func (r *pgTripRepo) Update(ctx context.Context, ownerID string, id uuid.UUID, patch domain.TripPatch) error {
	if patch.IsZero() {
		return nil
	}

	// Build the SET clause from the non-nil patch fields.
	// updated_at is refreshed on every mutation, whatever the patch carries.
	sets := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"owner_id": ownerID, "id": id}

	if patch.Name != nil {
		sets = append(sets, "name = @name")
		args["name"] = *patch.Name
	}
	if patch.People != nil {
		sets = append(sets, "people = @people")
		args["people"] = *patch.People
	}
	if patch.Days != nil {
		sets = append(sets, "days = @days")
		args["days"] = *patch.Days
	}
	if patch.Conditions != nil {
		b, err := json.Marshal(patch.Conditions)
		if err != nil {
			return fmt.Errorf("repo.TripRepo.Update: marshal conditions: %w", err)
		}
		sets = append(sets, "conditions = @conditions")
		args["conditions"] = b
	}
	if patch.Meals != nil {
		b, err := json.Marshal(*patch.Meals)
		if err != nil {
			return fmt.Errorf("repo.TripRepo.Update: marshal meals: %w", err)
		}
		sets = append(sets, "meals = @meals")
		args["meals"] = b
	}

	q := `UPDATE trips SET ` + strings.Join(sets, ", ") + ` WHERE owner_id = @owner_id AND id = @id`

	// RowsAffected is deliberately not checked: patching an absent trip is
	// a no-op so double-submitted chat actions stay harmless.
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return nil
}

func (r *pgTripRepo) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE owner_id = @owner_id AND id = @id`

	// Deleting an absent trip is a no-op for the same double-submission reason.
	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"owner_id": ownerID, "id": id}); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	return nil
}

// marshalTripJSON serializes the JSONB columns of a trip.
func marshalTripJSON(trip domain.Trip) (conditions, meals []byte, err error) {
	conditions, err = json.Marshal(trip.Conditions)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal conditions: %w", err)
	}
	meals, err = json.Marshal(trip.Meals)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal meals: %w", err)
	}
	return conditions, meals, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip, decoding the
// JSONB conditions and meals columns.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		id         pgtype.UUID
		conditions []byte
		meals      []byte
	)

	err := s.Scan(&id, &t.OwnerID, &t.Name, &t.People, &t.Days, &conditions, &meals, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	if err := json.Unmarshal(conditions, &t.Conditions); err != nil {
		return domain.Trip{}, fmt.Errorf("unmarshal conditions: %w", err)
	}
	if err := json.Unmarshal(meals, &t.Meals); err != nil {
		return domain.Trip{}, fmt.Errorf("unmarshal meals: %w", err)
	}
	return t, nil
}

// scanTripWithTotal is scanTrip plus the window-function total column used by
// ListByOwner.
func scanTripWithTotal(s scanner) (domain.Trip, int64, error) {
	var (
		t          domain.Trip
		id         pgtype.UUID
		conditions []byte
		meals      []byte
		total      int64
	)

	err := s.Scan(&id, &t.OwnerID, &t.Name, &t.People, &t.Days, &conditions, &meals, &t.CreatedAt, &t.UpdatedAt, &total)
	if err != nil {
		return domain.Trip{}, 0, err
	}

	t.ID = uuid.UUID(id.Bytes)
	if err := json.Unmarshal(conditions, &t.Conditions); err != nil {
		return domain.Trip{}, 0, fmt.Errorf("unmarshal conditions: %w", err)
	}
	if err := json.Unmarshal(meals, &t.Meals); err != nil {
		return domain.Trip{}, 0, fmt.Errorf("unmarshal meals: %w", err)
	}
	return t, total, nil
}
