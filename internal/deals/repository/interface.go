package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"autocrm_backend/internal/deals/domain"
	"autocrm_backend/internal/deals/ports"
)

// CreateParams contains the fields persisted when a deal enters the pipeline.
// Status is always negotiation on create and is set by the repository.
type CreateParams struct {
	LeadID            uuid.UUID
	VehicleID         uuid.UUID
	AgentID           uuid.UUID
	VehiclePrice      float64
	DepositAmount     *float64
	CommissionRate    float64
	Probability       int
	ExpectedCloseDate *time.Time
	NextAction        *string
	NextActionDate    *time.Time
	Notes             *string
}

// CloseParams contains the terminal-state fields written on close.
type CloseParams struct {
	ID             uuid.UUID
	Status         domain.DealStatus
	FinalPrice     float64
	Probability    int
	ClosedAt       time.Time
	ClosingNotes   *string
	LostReason     *string
	CompetitorInfo *string
}

// UpdateDetailsParams contains the optional free-field edits outside the
// state machine. Nil pointers leave the column untouched.
type UpdateDetailsParams struct {
	ID                uuid.UUID
	Notes             *string
	NextAction        *string
	NextActionDate    *time.Time
	ExpectedCloseDate *time.Time
	Probability       *int
	CommissionRate    *float64
	DepositAmount     *float64
	DocumentsStatus   *string
	FinancingStatus   *string
	InsuranceStatus   *string
	InspectionStatus  *string
}

// ListFilter narrows deal listings by agent and/or status.
type ListFilter struct {
	AgentID *uuid.UUID
	Status  *domain.DealStatus
}

// Reader provides read operations for deals.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Deal, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Deal, error)
	// ListOpenByStatus returns open deals in one stage ordered by
	// probability descending, then expected close date ascending with
	// nulls last. Used by the kanban aggregation.
	ListOpenByStatus(ctx context.Context, status domain.DealStatus, agentID *uuid.UUID) ([]domain.Deal, error)
}

// Writer provides the transactional write operations. Every method takes the
// unit-of-work handle from BeginTx; the caller commits exactly once.
type Writer interface {
	BeginTx(ctx context.Context) (ports.Tx, error)
	Create(ctx context.Context, tx ports.Tx, params CreateParams) (domain.Deal, error)
	// GetByIDForUpdate locks the deal row for the duration of the
	// transaction so concurrent mutations serialize.
	GetByIDForUpdate(ctx context.Context, tx ports.Tx, id uuid.UUID) (domain.Deal, error)
	UpdateStage(ctx context.Context, tx ports.Tx, id uuid.UUID, status domain.DealStatus, notes *string) error
	Close(ctx context.Context, tx ports.Tx, params CloseParams) error
	Reopen(ctx context.Context, tx ports.Tx, id uuid.UUID, probability int) error
	Reassign(ctx context.Context, tx ports.Tx, id uuid.UUID, agentID uuid.UUID) error
	UpdateDetails(ctx context.Context, tx ports.Tx, params UpdateDetailsParams) error
}

// Repository combines all deal repository operations.
type Repository interface {
	Reader
	Writer
}
