package adapters

import (
	"context"

	"github.com/google/uuid"

	"autocrm_backend/internal/deals/ports"
	vehiclesrepo "autocrm_backend/internal/vehicles/repository"
)

// DealVehicleGateway adapts the vehicles repository to the engine's
// VehicleGateway port.
type DealVehicleGateway struct {
	vehicles vehiclesrepo.Repository
}

// NewDealVehicleGateway creates a vehicle gateway backed by the vehicles
// repository.
func NewDealVehicleGateway(vehicles vehiclesrepo.Repository) *DealVehicleGateway {
	return &DealVehicleGateway{vehicles: vehicles}
}

var _ ports.VehicleGateway = (*DealVehicleGateway)(nil)

// GetStatus reads the vehicle's status inside the engine's transaction.
func (g *DealVehicleGateway) GetStatus(ctx context.Context, tx ports.Tx, id uuid.UUID) (string, error) {
	pgtx, err := unwrapTx(tx)
	if err != nil {
		return "", err
	}
	return g.vehicles.GetStatusTx(ctx, pgtx, id)
}

// SetStatus flips the vehicle's status inside the engine's transaction,
// guarded by the status the engine last observed. A conflict here makes the
// engine roll back the whole close.
func (g *DealVehicleGateway) SetStatus(ctx context.Context, tx ports.Tx, id uuid.UUID, status, expectedPrior string) error {
	pgtx, err := unwrapTx(tx)
	if err != nil {
		return err
	}
	return g.vehicles.SetStatusTx(ctx, pgtx, id, status, expectedPrior)
}
