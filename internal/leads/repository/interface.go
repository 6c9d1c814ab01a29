package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Lead status vocabulary. The deals engine only ever writes qualified,
// converted, and lost; the earlier values belong to lead capture.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusConverted = "converted"
	StatusLost      = "lost"
)

// KnownStatuses lists every valid lead status.
var KnownStatuses = []string{StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost}

// Lead is a captured prospect record.
type Lead struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	Source    *string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateParams contains parameters for capturing a lead.
type CreateParams struct {
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	Source    *string
}

// Repository combines all lead repository operations. The Tx variants run
// inside a caller-owned transaction so the deals engine can cascade lead
// status atomically with its own writes.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, status *string) ([]Lead, error)
	GetStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (string, error)
	SetStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status string) error
}
