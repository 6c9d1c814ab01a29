// Package adapters wires the deal pipeline's outbound ports to the
// collaborating modules. Each adapter unwraps the engine's transaction
// handle back into a database transaction so cascades stay atomic with the
// deal write that triggered them.
package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"autocrm_backend/internal/deals/ports"
	leadsrepo "autocrm_backend/internal/leads/repository"
)

// DealLeadGateway adapts the leads repository to the engine's LeadGateway port.
type DealLeadGateway struct {
	leads leadsrepo.Repository
}

// NewDealLeadGateway creates a lead gateway backed by the leads repository.
func NewDealLeadGateway(leads leadsrepo.Repository) *DealLeadGateway {
	return &DealLeadGateway{leads: leads}
}

var _ ports.LeadGateway = (*DealLeadGateway)(nil)

// GetStatus reads the lead's status inside the engine's transaction.
func (g *DealLeadGateway) GetStatus(ctx context.Context, tx ports.Tx, id uuid.UUID) (string, error) {
	pgtx, err := unwrapTx(tx)
	if err != nil {
		return "", err
	}
	return g.leads.GetStatusTx(ctx, pgtx, id)
}

// SetStatus cascades a lead status change inside the engine's transaction.
func (g *DealLeadGateway) SetStatus(ctx context.Context, tx ports.Tx, id uuid.UUID, status string) error {
	pgtx, err := unwrapTx(tx)
	if err != nil {
		return err
	}
	return g.leads.SetStatusTx(ctx, pgtx, id, status)
}

// unwrapTx recovers the database transaction behind the engine's opaque
// handle. The deal store hands out pgx transactions, so anything else is a
// wiring bug.
func unwrapTx(tx ports.Tx) (pgx.Tx, error) {
	pgtx, ok := tx.(pgx.Tx)
	if !ok {
		return nil, fmt.Errorf("unexpected transaction type %T", tx)
	}
	return pgtx, nil
}
