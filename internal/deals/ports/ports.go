// Package ports defines the outbound contracts the deal pipeline engine
// depends on. Concrete implementations live in internal/adapters so the
// engine stays decoupled from the collaborating modules' internals.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// Tx is a unit-of-work handle obtained from the deal store. The engine
// begins exactly one per mutating operation and passes it through every
// entity write, so a deal change and its cascades commit or roll back
// together. The concrete value is a database transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Lead status values this engine is allowed to write.
const (
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// Vehicle status values this engine reads and writes.
const (
	VehicleStatusAvailable = "available"
	VehicleStatusSold      = "sold"
)

// LeadGateway exposes the narrow slice of the lead subsystem the engine
// needs: read a lead's status and cascade a new one inside the caller's
// transaction.
type LeadGateway interface {
	GetStatus(ctx context.Context, tx Tx, id uuid.UUID) (string, error)
	SetStatus(ctx context.Context, tx Tx, id uuid.UUID, status string) error
}

// VehicleGateway exposes the narrow slice of the vehicle subsystem the
// engine needs. SetStatus applies an optimistic guard: the write succeeds
// only if the vehicle's current status equals expectedPrior, otherwise a
// conflict error is returned and the caller's transaction must roll back.
type VehicleGateway interface {
	GetStatus(ctx context.Context, tx Tx, id uuid.UUID) (string, error)
	SetStatus(ctx context.Context, tx Tx, id uuid.UUID, status, expectedPrior string) error
}

// AgentProvider verifies that a referenced agent account exists.
type AgentProvider interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
