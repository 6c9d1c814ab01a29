package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"autocrm_backend/platform/apperr"
)

const (
	vehicleNotFoundMessage = "vehicle not found"
	vehicleMovedMessage    = "vehicle no longer available"
)

const vehicleColumns = `id, make, model, year, vin, price, mileage, status, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vehicles repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create adds a vehicle to inventory in status available.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Vehicle, error) {
	query := `
		INSERT INTO vehicles (id, make, model, year, vin, price, mileage, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING ` + vehicleColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.New(), params.Make, params.Model, params.Year, params.VIN, params.Price, params.Mileage, StatusAvailable,
	)
	return scanVehicle(row, "create vehicle")
}

// GetByID retrieves a vehicle by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.pool.QueryRow(ctx, query, id), "get vehicle by id")
}

// List retrieves vehicles, optionally filtered by status, newest first.
func (r *Repo) List(ctx context.Context, status *string) ([]Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	args := []interface{}{}
	if status != nil {
		query += " WHERE status = $1"
		args = append(args, *status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]Vehicle, 0)
	for rows.Next() {
		vehicle, err := scanVehicle(rows, "scan vehicle row")
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicle rows: %w", err)
	}
	return vehicles, nil
}

// GetStatusTx reads a vehicle's status inside the caller's transaction.
func (r *Repo) GetStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (string, error) {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM vehicles WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound(vehicleNotFoundMessage)
		}
		return "", fmt.Errorf("get vehicle status: %w", err)
	}
	return status, nil
}

// SetStatusTx writes a vehicle's status inside the caller's transaction,
// guarded by the status the caller last observed. A zero-row update means
// either the row is gone or another transaction changed it first.
func (r *Repo) SetStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status, expectedPrior string) error {
	result, err := tx.Exec(ctx,
		`UPDATE vehicles SET status = $2, updated_at = now() WHERE id = $1 AND status = $3`,
		id, status, expectedPrior)
	if err != nil {
		return fmt.Errorf("set vehicle status: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM vehicles WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound(vehicleNotFoundMessage)
		}
		return fmt.Errorf("recheck vehicle status: %w", err)
	}
	return apperr.Conflict(vehicleMovedMessage).WithDetails(map[string]string{
		"expected": expectedPrior,
		"actual":   current,
	})
}

func scanVehicle(row pgx.Row, op string) (Vehicle, error) {
	var v Vehicle
	err := row.Scan(
		&v.ID, &v.Make, &v.Model, &v.Year, &v.VIN, &v.Price, &v.Mileage, &v.Status,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Vehicle{}, apperr.NotFound(vehicleNotFoundMessage)
		}
		return Vehicle{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}
