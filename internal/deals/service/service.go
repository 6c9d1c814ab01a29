// Package service implements the deal pipeline engine: it validates stage
// transitions, derives financial fields, and commits every deal mutation
// together with its lead/vehicle cascades in a single transaction.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"autocrm_backend/internal/deals/domain"
	"autocrm_backend/internal/deals/ports"
	"autocrm_backend/internal/deals/repository"
	"autocrm_backend/internal/deals/transport"
	"autocrm_backend/internal/events"
	"autocrm_backend/internal/scheduler"
	"autocrm_backend/platform/apperr"
	"autocrm_backend/platform/logger"
)

// defaultProbability is the confidence score assigned to a new deal when the
// caller does not provide one.
const defaultProbability = 25

const (
	msgLeadNotFound    = "lead not found"
	msgVehicleNotFound = "vehicle not found"
	msgAgentNotFound   = "agent not found"
)

// Service orchestrates all deal pipeline operations.
type Service struct {
	repo     repository.Repository
	leads    ports.LeadGateway
	vehicles ports.VehicleGateway
	agents   ports.AgentProvider
	bus      events.Bus
	sched    scheduler.FollowUpScheduler
	log      *logger.Logger
}

// New creates the pipeline engine. The scheduler may be nil when no task
// queue is configured; follow-up reminders are then skipped.
func New(
	repo repository.Repository,
	leads ports.LeadGateway,
	vehicles ports.VehicleGateway,
	agents ports.AgentProvider,
	bus events.Bus,
	sched scheduler.FollowUpScheduler,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:     repo,
		leads:    leads,
		vehicles: vehicles,
		agents:   agents,
		bus:      bus,
		sched:    sched,
		log:      log,
	}
}

// Create opens a new deal in negotiation. The referenced lead is nudged to
// qualified unless it already converted through another deal.
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, req transport.CreateDealRequest) (transport.DealResponse, error) {
	probability := defaultProbability
	if req.Probability != nil {
		probability = *req.Probability
	}
	if err := domain.ValidateFinancials(req.VehiclePrice, nil, req.DepositAmount, req.CommissionRate, probability); err != nil {
		return transport.DealResponse{}, err
	}

	exists, err := s.agents.Exists(ctx, req.AgentID)
	if err != nil {
		return transport.DealResponse{}, err
	}
	if !exists {
		return transport.DealResponse{}, apperr.NotFound(msgAgentNotFound)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return transport.DealResponse{}, err
	}
	defer tx.Rollback(ctx)

	leadStatus, err := s.leads.GetStatus(ctx, tx, req.LeadID)
	if err != nil {
		return transport.DealResponse{}, err
	}
	if _, err := s.vehicles.GetStatus(ctx, tx, req.VehicleID); err != nil {
		return transport.DealResponse{}, err
	}

	deal, err := s.repo.Create(ctx, tx, repository.CreateParams{
		LeadID:            req.LeadID,
		VehicleID:         req.VehicleID,
		AgentID:           req.AgentID,
		VehiclePrice:      req.VehiclePrice,
		DepositAmount:     req.DepositAmount,
		CommissionRate:    req.CommissionRate,
		Probability:       probability,
		ExpectedCloseDate: req.ExpectedCloseDate,
		NextAction:        req.NextAction,
		NextActionDate:    req.NextActionDate,
		Notes:             req.Notes,
	})
	if err != nil {
		return transport.DealResponse{}, err
	}

	if leadStatus != ports.LeadStatusConverted {
		if err := s.leads.SetStatus(ctx, tx, req.LeadID, ports.LeadStatusQualified); err != nil {
			return transport.DealResponse{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return transport.DealResponse{}, apperr.Wrap(apperr.KindInternal, "commit deal creation", err)
	}

	s.scheduleFollowUp(ctx, deal)
	s.publish(ctx, events.DealCreated{
		BaseEvent: events.NewBaseEvent(),
		DealID:    deal.ID,
		LeadID:    deal.LeadID,
		VehicleID: deal.VehicleID,
		AgentID:   deal.AgentID,
		ActorID:   actorID,
	})

	s.log.Info("deal created", "id", deal.ID, "lead", deal.LeadID, "vehicle", deal.VehicleID, "actor", actorID)
	return toResponse(deal), nil
}

// UpdateStage moves a deal between open pipeline stages. Terminal targets
// must go through Close so the closing invariants hold.
func (s *Service) UpdateStage(ctx context.Context, actorID uuid.UUID, dealID uuid.UUID, req transport.UpdateStageRequest) (transport.DealResponse, error) {
	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		return transport.DealResponse{}, apperr.Validation(err.Error())
	}
	if target.IsTerminal() {
		return transport.DealResponse{}, apperr.Unprocessable("closing a deal requires the close operation")
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return transport.DealResponse{}, err
	}
	defer tx.Rollback(ctx)

	deal, err := s.repo.GetByIDForUpdate(ctx, tx, dealID)
	if err != nil {
		return transport.DealResponse{}, err
	}

	if !deal.Status.CanTransitionTo(target) {
		return transport.DealResponse{}, apperr.Unprocessable("invalid stage transition").
			WithDetails(map[string]string{"from": string(deal.Status), "to": string(target)})
	}

	if err := s.repo.UpdateStage(ctx, tx, dealID, target, req.Notes); err != nil {
		return transport.DealResponse{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return transport.DealResponse{}, apperr.Wrap(apperr.KindInternal, "commit stage update", err)
	}

	s.publish(ctx, events.DealStageChanged{
		BaseEvent:  events.NewBaseEvent(),
		DealID:     dealID,
		FromStatus: string(deal.Status),
		ToStatus:   string(target),
		ActorID:    actorID,
	})

	s.log.Info("deal stage updated", "id", dealID, "from", deal.Status, "to", target, "actor", actorID)
	return s.Get(ctx, dealID)
}

// Close settles a deal into closed_won or closed_lost, defaulting the final
// price to the asking price, and cascades lead and vehicle status inside the
// same transaction. A vehicle already sold to another deal surfaces as a
// conflict and rolls back everything.
func (s *Service) Close(ctx context.Context, actorID uuid.UUID, dealID uuid.UUID, req transport.CloseDealRequest) (transport.DealResponse, error) {
	outcome, err := domain.ParseStatus(req.Outcome)
	if err != nil || !outcome.IsTerminal() {
		return transport.DealResponse{}, apperr.Validation("outcome must be closed_won or closed_lost")
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return transport.DealResponse{}, err
	}
	defer tx.Rollback(ctx)

	deal, err := s.repo.GetByIDForUpdate(ctx, tx, dealID)
	if err != nil {
		return transport.DealResponse{}, err
	}
	if deal.Status.IsTerminal() {
		return transport.DealResponse{}, apperr.Unprocessable("deal is already closed")
	}

	finalPrice := deal.VehiclePrice
	if req.FinalPrice != nil {
		finalPrice = *req.FinalPrice
	}
	probability := 100
	leadStatus := ports.LeadStatusConverted
	if outcome == domain.StatusClosedLost {
		probability = 0
		leadStatus = ports.LeadStatusLost
	}

	if err := s.repo.Close(ctx, tx, repository.CloseParams{
		ID:             dealID,
		Status:         outcome,
		FinalPrice:     finalPrice,
		Probability:    probability,
		ClosedAt:       time.Now(),
		ClosingNotes:   req.ClosingNotes,
		LostReason:     req.LostReason,
		CompetitorInfo: req.CompetitorInfo,
	}); err != nil {
		return transport.DealResponse{}, err
	}

	if err := s.leads.SetStatus(ctx, tx, deal.LeadID, leadStatus); err != nil {
		return transport.DealResponse{}, err
	}

	if outcome == domain.StatusClosedWon {
		if err := s.vehicles.SetStatus(ctx, tx, deal.VehicleID, ports.VehicleStatusSold, ports.VehicleStatusAvailable); err != nil {
			return transport.DealResponse{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return transport.DealResponse{}, apperr.Wrap(apperr.KindInternal, "commit deal close", err)
	}

	s.publish(ctx, events.DealClosed{
		BaseEvent:  events.NewBaseEvent(),
		DealID:     dealID,
		Outcome:    string(outcome),
		FinalPrice: finalPrice,
		AgentID:    deal.AgentID,
		ActorID:    actorID,
	})

	s.log.Info("deal closed", "id", dealID, "outcome", outcome, "finalPrice", finalPrice, "actor", actorID)
	return s.Get(ctx, dealID)
}

// Reopen pulls a closed deal back into negotiation, clearing the close
// fields and reverting the lead and vehicle cascades.
func (s *Service) Reopen(ctx context.Context, actorID uuid.UUID, dealID uuid.UUID) (transport.DealResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return transport.DealResponse{}, err
	}
	defer tx.Rollback(ctx)

	deal, err := s.repo.GetByIDForUpdate(ctx, tx, dealID)
	if err != nil {
		return transport.DealResponse{}, err
	}
	if !deal.Status.IsTerminal() {
		return transport.DealResponse{}, apperr.Unprocessable("deal is not closed")
	}

	if err := s.repo.Reopen(ctx, tx, dealID, domain.ReopenedProbability); err != nil {
		return transport.DealResponse{}, err
	}

	leadStatus, err := s.leads.GetStatus(ctx, tx, deal.LeadID)
	if err != nil {
		return transport.DealResponse{}, err
	}
	if leadStatus == ports.LeadStatusConverted || leadStatus == ports.LeadStatusLost {
		if err := s.leads.SetStatus(ctx, tx, deal.LeadID, ports.LeadStatusQualified); err != nil {
			return transport.DealResponse{}, err
		}
	}

	vehicleStatus, err := s.vehicles.GetStatus(ctx, tx, deal.VehicleID)
	if err != nil {
		return transport.DealResponse{}, err
	}
	if vehicleStatus == ports.VehicleStatusSold {
		if err := s.vehicles.SetStatus(ctx, tx, deal.VehicleID, ports.VehicleStatusAvailable, ports.VehicleStatusSold); err != nil {
			return transport.DealResponse{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return transport.DealResponse{}, apperr.Wrap(apperr.KindInternal, "commit deal reopen", err)
	}

	s.publish(ctx, events.DealReopened{
		BaseEvent:      events.NewBaseEvent(),
		DealID:         dealID,
		PreviousStatus: string(deal.Status),
		ActorID:        actorID,
	})

	s.log.Info("deal reopened", "id", dealID, "previous", deal.Status, "actor", actorID)
	return s.Get(ctx, dealID)
}

// Reassign hands the deal to another agent. No cascades.
func (s *Service) Reassign(ctx context.Context, actorID uuid.UUID, dealID uuid.UUID, req transport.ReassignDealRequest) (transport.DealResponse, error) {
	exists, err := s.agents.Exists(ctx, req.AgentID)
	if err != nil {
		return transport.DealResponse{}, err
	}
	if !exists {
		return transport.DealResponse{}, apperr.NotFound(msgAgentNotFound)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return transport.DealResponse{}, err
	}
	defer tx.Rollback(ctx)

	deal, err := s.repo.GetByIDForUpdate(ctx, tx, dealID)
	if err != nil {
		return transport.DealResponse{}, err
	}

	if err := s.repo.Reassign(ctx, tx, dealID, req.AgentID); err != nil {
		return transport.DealResponse{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return transport.DealResponse{}, apperr.Wrap(apperr.KindInternal, "commit deal reassign", err)
	}

	s.publish(ctx, events.DealReassigned{
		BaseEvent:  events.NewBaseEvent(),
		DealID:     dealID,
		OldAgentID: deal.AgentID,
		NewAgentID: req.AgentID,
		ActorID:    actorID,
	})

	s.log.Info("deal reassigned", "id", dealID, "from", deal.AgentID, "to", req.AgentID, "actor", actorID)
	return s.Get(ctx, dealID)
}

// UpdateDetails edits follow-up, probability, and informational fields
// without touching the pipeline stage.
func (s *Service) UpdateDetails(ctx context.Context, actorID uuid.UUID, dealID uuid.UUID, req transport.UpdateDealRequest) (transport.DealResponse, error) {
	if req.Probability != nil && (*req.Probability < 0 || *req.Probability > 100) {
		return transport.DealResponse{}, apperr.Validation("probability must be between 0 and 100")
	}
	if req.CommissionRate != nil && (*req.CommissionRate < 0 || *req.CommissionRate > 1) {
		return transport.DealResponse{}, apperr.Validation("commission rate must be between 0 and 1")
	}
	if req.DepositAmount != nil && *req.DepositAmount < 0 {
		return transport.DealResponse{}, apperr.Validation("deposit amount must not be negative")
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return transport.DealResponse{}, err
	}
	defer tx.Rollback(ctx)

	if _, err := s.repo.GetByIDForUpdate(ctx, tx, dealID); err != nil {
		return transport.DealResponse{}, err
	}

	if err := s.repo.UpdateDetails(ctx, tx, repository.UpdateDetailsParams{
		ID:                dealID,
		Notes:             req.Notes,
		NextAction:        req.NextAction,
		NextActionDate:    req.NextActionDate,
		ExpectedCloseDate: req.ExpectedCloseDate,
		Probability:       req.Probability,
		CommissionRate:    req.CommissionRate,
		DepositAmount:     req.DepositAmount,
		DocumentsStatus:   req.DocumentsStatus,
		FinancingStatus:   req.FinancingStatus,
		InsuranceStatus:   req.InsuranceStatus,
		InspectionStatus:  req.InspectionStatus,
	}); err != nil {
		return transport.DealResponse{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return transport.DealResponse{}, apperr.Wrap(apperr.KindInternal, "commit deal update", err)
	}

	updated, err := s.repo.GetByID(ctx, dealID)
	if err != nil {
		return transport.DealResponse{}, err
	}
	s.scheduleFollowUp(ctx, updated)

	s.log.Info("deal details updated", "id", dealID, "actor", actorID)
	return toResponse(updated), nil
}

func (s *Service) scheduleFollowUp(ctx context.Context, deal domain.Deal) {
	if s.sched == nil || deal.NextActionDate == nil {
		return
	}
	payload := scheduler.DealFollowUpPayload{DealID: deal.ID.String()}
	if err := s.sched.ScheduleDealFollowUp(ctx, payload, *deal.NextActionDate); err != nil {
		s.log.Error("failed to schedule follow-up reminder", "deal", deal.ID, "error", err)
	}
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, event)
	}
}
