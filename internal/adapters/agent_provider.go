package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"autocrm_backend/internal/deals/ports"
)

// AgentProvider answers whether an agent account exists and is active. It
// reads through the pool rather than the engine's transaction; agents are
// never written by deal operations.
type AgentProvider struct {
	pool *pgxpool.Pool
}

// NewAgentProvider creates an agent provider backed by the users table.
func NewAgentProvider(pool *pgxpool.Pool) *AgentProvider {
	return &AgentProvider{pool: pool}
}

var _ ports.AgentProvider = (*AgentProvider)(nil)

// Exists reports whether an active user with the given ID exists.
func (p *AgentProvider) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND is_active)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check agent exists: %w", err)
	}
	return exists, nil
}
