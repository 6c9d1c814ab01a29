package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"autocrm_backend/internal/deals/domain"
	"autocrm_backend/internal/deals/ports"
	"autocrm_backend/platform/apperr"
)

const dealNotFoundMessage = "deal not found"

const dealColumns = `id, lead_id, vehicle_id, agent_id, status,
	vehicle_price, final_price, deposit_amount, commission_rate, probability,
	expected_close_date, actual_close_date, closed_at,
	next_action, next_action_date,
	notes, closing_notes, lost_reason, competitor_info,
	documents_status, financing_status, insurance_status, inspection_status,
	created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new deals repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// BeginTx opens the unit of work for one engine operation.
func (r *Repo) BeginTx(ctx context.Context) (ports.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin deal transaction: %w", err)
	}
	return tx, nil
}

// pgxTx unwraps the unit-of-work handle back to the database transaction.
func pgxTx(tx ports.Tx) (pgx.Tx, error) {
	typed, ok := tx.(pgx.Tx)
	if !ok {
		return nil, fmt.Errorf("transaction handle is not a database transaction")
	}
	return typed, nil
}

// GetByID retrieves a deal by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`
	return scanDeal(r.pool.QueryRow(ctx, query, id), "get deal by id")
}

// GetByIDForUpdate retrieves a deal and locks its row inside the transaction.
func (r *Repo) GetByIDForUpdate(ctx context.Context, tx ports.Tx, id uuid.UUID) (domain.Deal, error) {
	typed, err := pgxTx(tx)
	if err != nil {
		return domain.Deal{}, err
	}
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1 FOR UPDATE`
	return scanDeal(typed.QueryRow(ctx, query, id), "lock deal")
}

// Create inserts a new deal in the negotiation stage.
func (r *Repo) Create(ctx context.Context, tx ports.Tx, params CreateParams) (domain.Deal, error) {
	typed, err := pgxTx(tx)
	if err != nil {
		return domain.Deal{}, err
	}

	query := `
		INSERT INTO deals (
			id, lead_id, vehicle_id, agent_id, status,
			vehicle_price, deposit_amount, commission_rate, probability,
			expected_close_date, next_action, next_action_date, notes,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
		RETURNING ` + dealColumns

	row := typed.QueryRow(ctx, query,
		uuid.New(), params.LeadID, params.VehicleID, params.AgentID, domain.StatusNegotiation,
		params.VehiclePrice, params.DepositAmount, params.CommissionRate, params.Probability,
		params.ExpectedCloseDate, params.NextAction, params.NextActionDate, params.Notes,
	)
	return scanDeal(row, "create deal")
}

// UpdateStage moves the deal to a new status and optionally replaces notes.
// Transition legality is the engine's responsibility.
func (r *Repo) UpdateStage(ctx context.Context, tx ports.Tx, id uuid.UUID, status domain.DealStatus, notes *string) error {
	typed, err := pgxTx(tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE deals
		SET status = $2, notes = COALESCE($3, notes), updated_at = now()
		WHERE id = $1`

	return execExpectingRow(ctx, typed, "update deal stage", query, id, status, notes)
}

// Close writes the terminal-state fields in one statement.
func (r *Repo) Close(ctx context.Context, tx ports.Tx, params CloseParams) error {
	typed, err := pgxTx(tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE deals
		SET status = $2,
		    final_price = $3,
		    probability = $4,
		    actual_close_date = $5,
		    closed_at = $5,
		    closing_notes = $6,
		    lost_reason = $7,
		    competitor_info = $8,
		    updated_at = now()
		WHERE id = $1`

	return execExpectingRow(ctx, typed, "close deal", query,
		params.ID, params.Status, params.FinalPrice, params.Probability,
		params.ClosedAt, params.ClosingNotes, params.LostReason, params.CompetitorInfo,
	)
}

// Reopen resets a closed deal back to negotiation and clears the close fields.
func (r *Repo) Reopen(ctx context.Context, tx ports.Tx, id uuid.UUID, probability int) error {
	typed, err := pgxTx(tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE deals
		SET status = $2,
		    probability = $3,
		    final_price = NULL,
		    actual_close_date = NULL,
		    closed_at = NULL,
		    updated_at = now()
		WHERE id = $1`

	return execExpectingRow(ctx, typed, "reopen deal", query, id, domain.StatusNegotiation, probability)
}

// Reassign moves the deal to a different owning agent.
func (r *Repo) Reassign(ctx context.Context, tx ports.Tx, id uuid.UUID, agentID uuid.UUID) error {
	typed, err := pgxTx(tx)
	if err != nil {
		return err
	}

	query := `UPDATE deals SET agent_id = $2, updated_at = now() WHERE id = $1`
	return execExpectingRow(ctx, typed, "reassign deal", query, id, agentID)
}

// UpdateDetails applies the free-field edits; nil parameters keep the
// current column value.
func (r *Repo) UpdateDetails(ctx context.Context, tx ports.Tx, params UpdateDetailsParams) error {
	typed, err := pgxTx(tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE deals
		SET notes = COALESCE($2, notes),
		    next_action = COALESCE($3, next_action),
		    next_action_date = COALESCE($4, next_action_date),
		    expected_close_date = COALESCE($5, expected_close_date),
		    probability = COALESCE($6, probability),
		    commission_rate = COALESCE($7, commission_rate),
		    deposit_amount = COALESCE($8, deposit_amount),
		    documents_status = COALESCE($9, documents_status),
		    financing_status = COALESCE($10, financing_status),
		    insurance_status = COALESCE($11, insurance_status),
		    inspection_status = COALESCE($12, inspection_status),
		    updated_at = now()
		WHERE id = $1`

	return execExpectingRow(ctx, typed, "update deal details", query,
		params.ID, params.Notes, params.NextAction, params.NextActionDate,
		params.ExpectedCloseDate, params.Probability, params.CommissionRate,
		params.DepositAmount, params.DocumentsStatus, params.FinancingStatus,
		params.InsuranceStatus, params.InspectionStatus,
	)
}

// List retrieves deals matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]domain.Deal, error) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)

	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		conditions = append(conditions, fmt.Sprintf("agent_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + dealColumns + ` FROM deals`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	return scanDeals(rows)
}

// ListOpenByStatus retrieves one kanban column: open deals in the given
// stage, highest probability first, sooner expected close dates before
// later ones, deals without a date last.
func (r *Repo) ListOpenByStatus(ctx context.Context, status domain.DealStatus, agentID *uuid.UUID) ([]domain.Deal, error) {
	args := []interface{}{status}
	query := `SELECT ` + dealColumns + ` FROM deals WHERE status = $1`
	if agentID != nil {
		args = append(args, *agentID)
		query += fmt.Sprintf(" AND agent_id = $%d", len(args))
	}
	query += " ORDER BY probability DESC, expected_close_date ASC NULLS LAST, created_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deals by status: %w", err)
	}
	defer rows.Close()

	return scanDeals(rows)
}

// execExpectingRow runs a single-row mutation and maps a zero-row result to
// not found.
func execExpectingRow(ctx context.Context, tx pgx.Tx, op, query string, args ...interface{}) error {
	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(dealNotFoundMessage)
	}
	return nil
}

func scanDeal(row pgx.Row, op string) (domain.Deal, error) {
	var d domain.Deal
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&d.ID, &d.LeadID, &d.VehicleID, &d.AgentID, &d.Status,
		&d.VehiclePrice, &d.FinalPrice, &d.DepositAmount, &d.CommissionRate, &d.Probability,
		&d.ExpectedCloseDate, &d.ActualCloseDate, &d.ClosedAt,
		&d.NextAction, &d.NextActionDate,
		&d.Notes, &d.ClosingNotes, &d.LostReason, &d.CompetitorInfo,
		&d.DocumentsStatus, &d.FinancingStatus, &d.InsuranceStatus, &d.InspectionStatus,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Deal{}, apperr.NotFound(dealNotFoundMessage)
		}
		return domain.Deal{}, fmt.Errorf("%s: %w", op, err)
	}

	d.CreatedAt = createdAt
	d.UpdatedAt = updatedAt
	return d, nil
}

func scanDeals(rows pgx.Rows) ([]domain.Deal, error) {
	deals := make([]domain.Deal, 0)
	for rows.Next() {
		deal, err := scanDeal(rows, "scan deal row")
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deal rows: %w", err)
	}
	return deals, nil
}
