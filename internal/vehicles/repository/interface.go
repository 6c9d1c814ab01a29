package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Vehicle status vocabulary.
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusSold      = "sold"
)

// KnownStatuses lists every valid vehicle status.
var KnownStatuses = []string{StatusAvailable, StatusReserved, StatusSold}

// Vehicle is a unit of inventory.
type Vehicle struct {
	ID        uuid.UUID
	Make      string
	Model     string
	Year      int
	VIN       *string
	Price     float64
	Mileage   *int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateParams contains parameters for adding a vehicle to inventory.
type CreateParams struct {
	Make    string
	Model   string
	Year    int
	VIN     *string
	Price   float64
	Mileage *int
}

// Repository combines all vehicle repository operations. SetStatusTx takes
// the status the caller last observed and fails with a conflict when the
// row has moved on, so two deals cannot both sell the same unit.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (Vehicle, error)
	List(ctx context.Context, status *string) ([]Vehicle, error)
	GetStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (string, error)
	SetStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status, expectedPrior string) error
}
