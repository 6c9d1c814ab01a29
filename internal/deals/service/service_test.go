package service

import (
	"context"
	"sync"
	"testing"
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

// fakeStore is the shared in-memory state behind the fake repository and
// gateways. BeginTx holds the store lock until commit or rollback, which
// serializes transactions the way row locks do in the real database.
type fakeStore struct {
	mu       sync.Mutex
	deals    map[uuid.UUID]domain.Deal
	leads    map[uuid.UUID]string
	vehicles map[uuid.UUID]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		deals:    make(map[uuid.UUID]domain.Deal),
		leads:    make(map[uuid.UUID]string),
		vehicles: make(map[uuid.UUID]string),
	}
}

// fakeTx stages writes and applies them on commit.
type fakeTx struct {
	store    *fakeStore
	deals    map[uuid.UUID]domain.Deal
	leads    map[uuid.UUID]string
	vehicles map[uuid.UUID]string
	done     bool
}

func (t *fakeTx) Commit(_ context.Context) error {
	if t.done {
		return nil
	}
	for id, deal := range t.deals {
		t.store.deals[id] = deal
	}
	for id, status := range t.leads {
		t.store.leads[id] = status
	}
	for id, status := range t.vehicles {
		t.store.vehicles[id] = status
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

type fakeRepo struct {
	store *fakeStore
}

var _ repository.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) BeginTx(_ context.Context) (ports.Tx, error) {
	r.store.mu.Lock()
	return &fakeTx{
		store:    r.store,
		deals:    make(map[uuid.UUID]domain.Deal),
		leads:    make(map[uuid.UUID]string),
		vehicles: make(map[uuid.UUID]string),
	}, nil
}

func (r *fakeRepo) txDeal(tx ports.Tx, id uuid.UUID) (domain.Deal, bool) {
	typed := tx.(*fakeTx)
	if deal, ok := typed.deals[id]; ok {
		return deal, true
	}
	deal, ok := r.store.deals[id]
	return deal, ok
}

func (r *fakeRepo) Create(_ context.Context, tx ports.Tx, params repository.CreateParams) (domain.Deal, error) {
	now := time.Now()
	deal := domain.Deal{
		ID:                uuid.New(),
		LeadID:            params.LeadID,
		VehicleID:         params.VehicleID,
		AgentID:           params.AgentID,
		Status:            domain.StatusNegotiation,
		VehiclePrice:      params.VehiclePrice,
		DepositAmount:     params.DepositAmount,
		CommissionRate:    params.CommissionRate,
		Probability:       params.Probability,
		ExpectedCloseDate: params.ExpectedCloseDate,
		NextAction:        params.NextAction,
		NextActionDate:    params.NextActionDate,
		Notes:             params.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	tx.(*fakeTx).deals[deal.ID] = deal
	return deal, nil
}

func (r *fakeRepo) GetByIDForUpdate(_ context.Context, tx ports.Tx, id uuid.UUID) (domain.Deal, error) {
	deal, ok := r.txDeal(tx, id)
	if !ok {
		return domain.Deal{}, apperr.NotFound("deal not found")
	}
	return deal, nil
}

func (r *fakeRepo) UpdateStage(_ context.Context, tx ports.Tx, id uuid.UUID, status domain.DealStatus, notes *string) error {
	deal, ok := r.txDeal(tx, id)
	if !ok {
		return apperr.NotFound("deal not found")
	}
	deal.Status = status
	if notes != nil {
		deal.Notes = notes
	}
	tx.(*fakeTx).deals[id] = deal
	return nil
}

func (r *fakeRepo) Close(_ context.Context, tx ports.Tx, params repository.CloseParams) error {
	deal, ok := r.txDeal(tx, params.ID)
	if !ok {
		return apperr.NotFound("deal not found")
	}
	closedAt := params.ClosedAt
	finalPrice := params.FinalPrice
	deal.Status = params.Status
	deal.FinalPrice = &finalPrice
	deal.Probability = params.Probability
	deal.ClosedAt = &closedAt
	deal.ActualCloseDate = &closedAt
	deal.ClosingNotes = params.ClosingNotes
	deal.LostReason = params.LostReason
	deal.CompetitorInfo = params.CompetitorInfo
	tx.(*fakeTx).deals[params.ID] = deal
	return nil
}

func (r *fakeRepo) Reopen(_ context.Context, tx ports.Tx, id uuid.UUID, probability int) error {
	deal, ok := r.txDeal(tx, id)
	if !ok {
		return apperr.NotFound("deal not found")
	}
	deal.Status = domain.StatusNegotiation
	deal.Probability = probability
	deal.FinalPrice = nil
	deal.ClosedAt = nil
	deal.ActualCloseDate = nil
	tx.(*fakeTx).deals[id] = deal
	return nil
}

func (r *fakeRepo) Reassign(_ context.Context, tx ports.Tx, id uuid.UUID, agentID uuid.UUID) error {
	deal, ok := r.txDeal(tx, id)
	if !ok {
		return apperr.NotFound("deal not found")
	}
	deal.AgentID = agentID
	tx.(*fakeTx).deals[id] = deal
	return nil
}

func (r *fakeRepo) UpdateDetails(_ context.Context, tx ports.Tx, params repository.UpdateDetailsParams) error {
	deal, ok := r.txDeal(tx, params.ID)
	if !ok {
		return apperr.NotFound("deal not found")
	}
	if params.Notes != nil {
		deal.Notes = params.Notes
	}
	if params.NextAction != nil {
		deal.NextAction = params.NextAction
	}
	if params.NextActionDate != nil {
		deal.NextActionDate = params.NextActionDate
	}
	if params.ExpectedCloseDate != nil {
		deal.ExpectedCloseDate = params.ExpectedCloseDate
	}
	if params.Probability != nil {
		deal.Probability = *params.Probability
	}
	if params.CommissionRate != nil {
		deal.CommissionRate = *params.CommissionRate
	}
	if params.DepositAmount != nil {
		deal.DepositAmount = params.DepositAmount
	}
	tx.(*fakeTx).deals[params.ID] = deal
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Deal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	deal, ok := r.store.deals[id]
	if !ok {
		return domain.Deal{}, apperr.NotFound("deal not found")
	}
	return deal, nil
}

func (r *fakeRepo) List(_ context.Context, filter repository.ListFilter) ([]domain.Deal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	deals := make([]domain.Deal, 0)
	for _, deal := range r.store.deals {
		if filter.AgentID != nil && deal.AgentID != *filter.AgentID {
			continue
		}
		if filter.Status != nil && deal.Status != *filter.Status {
			continue
		}
		deals = append(deals, deal)
	}
	return deals, nil
}

func (r *fakeRepo) ListOpenByStatus(_ context.Context, status domain.DealStatus, agentID *uuid.UUID) ([]domain.Deal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	deals := make([]domain.Deal, 0)
	for _, deal := range r.store.deals {
		if deal.Status != status {
			continue
		}
		if agentID != nil && deal.AgentID != *agentID {
			continue
		}
		deals = append(deals, deal)
	}
	return deals, nil
}

type fakeLeadGateway struct {
	store *fakeStore
}

func (g *fakeLeadGateway) GetStatus(_ context.Context, tx ports.Tx, id uuid.UUID) (string, error) {
	typed := tx.(*fakeTx)
	if status, ok := typed.leads[id]; ok {
		return status, nil
	}
	status, ok := g.store.leads[id]
	if !ok {
		return "", apperr.NotFound("lead not found")
	}
	return status, nil
}

func (g *fakeLeadGateway) SetStatus(_ context.Context, tx ports.Tx, id uuid.UUID, status string) error {
	if _, ok := g.store.leads[id]; !ok {
		return apperr.NotFound("lead not found")
	}
	tx.(*fakeTx).leads[id] = status
	return nil
}

type fakeVehicleGateway struct {
	store *fakeStore
}

func (g *fakeVehicleGateway) GetStatus(_ context.Context, tx ports.Tx, id uuid.UUID) (string, error) {
	typed := tx.(*fakeTx)
	if status, ok := typed.vehicles[id]; ok {
		return status, nil
	}
	status, ok := g.store.vehicles[id]
	if !ok {
		return "", apperr.NotFound("vehicle not found")
	}
	return status, nil
}

func (g *fakeVehicleGateway) SetStatus(_ context.Context, tx ports.Tx, id uuid.UUID, status, expectedPrior string) error {
	typed := tx.(*fakeTx)
	current, ok := typed.vehicles[id]
	if !ok {
		current, ok = g.store.vehicles[id]
	}
	if !ok {
		return apperr.NotFound("vehicle not found")
	}
	if current != expectedPrior {
		return apperr.Conflict("vehicle no longer available")
	}
	typed.vehicles[id] = status
	return nil
}

type fakeAgents struct {
	known map[uuid.UUID]bool
}

func (a *fakeAgents) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return a.known[id], nil
}

// capturingBus records published events synchronously.
type capturingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *capturingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *capturingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *capturingBus) Subscribe(string, events.Handler) {}

func (b *capturingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, len(b.events))
	for i, e := range b.events {
		names[i] = e.EventName()
	}
	return names
}

type fakeFollowUpScheduler struct {
	mu        sync.Mutex
	scheduled []scheduler.DealFollowUpPayload
}

func (s *fakeFollowUpScheduler) ScheduleDealFollowUp(_ context.Context, payload scheduler.DealFollowUpPayload, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, payload)
	return nil
}

type fixture struct {
	svc   *Service
	store *fakeStore
	bus   *capturingBus
	sched *fakeFollowUpScheduler

	leadID    uuid.UUID
	vehicleID uuid.UUID
	agentID   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newFakeStore()
	bus := &capturingBus{}
	sched := &fakeFollowUpScheduler{}
	f := &fixture{
		store:     store,
		bus:       bus,
		sched:     sched,
		leadID:    uuid.New(),
		vehicleID: uuid.New(),
		agentID:   uuid.New(),
	}
	store.leads[f.leadID] = "contacted"
	store.vehicles[f.vehicleID] = ports.VehicleStatusAvailable

	repo := &fakeRepo{store: store}
	f.svc = New(
		repo,
		&fakeLeadGateway{store: store},
		&fakeVehicleGateway{store: store},
		&fakeAgents{known: map[uuid.UUID]bool{f.agentID: true}},
		bus,
		sched,
		logger.New("test"),
	)
	return f
}

func (f *fixture) createDeal(t *testing.T, price float64) transport.DealResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), f.agentID, transport.CreateDealRequest{
		LeadID:         f.leadID,
		VehicleID:      f.vehicleID,
		AgentID:        f.agentID,
		VehiclePrice:   price,
		CommissionRate: 0.05,
	})
	if err != nil {
		t.Fatalf("create deal: %v", err)
	}
	return resp
}

func (f *fixture) dealStatus(t *testing.T, id uuid.UUID) domain.DealStatus {
	t.Helper()
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	deal, ok := f.store.deals[id]
	if !ok {
		t.Fatalf("deal %s not in store", id)
	}
	return deal.Status
}

func TestCreateQualifiesLead(t *testing.T) {
	f := newFixture(t)

	resp := f.createDeal(t, 30000)

	if resp.Status != string(domain.StatusNegotiation) {
		t.Errorf("status = %s, want negotiation", resp.Status)
	}
	if resp.Probability != defaultProbability {
		t.Errorf("probability = %d, want %d", resp.Probability, defaultProbability)
	}
	if got := f.store.leads[f.leadID]; got != ports.LeadStatusQualified {
		t.Errorf("lead status = %s, want qualified", got)
	}
	if names := f.bus.names(); len(names) != 1 || names[0] != "deals.deal.created" {
		t.Errorf("published events = %v, want [deals.deal.created]", names)
	}
}

func TestCreateLeavesConvertedLeadAlone(t *testing.T) {
	f := newFixture(t)
	f.store.leads[f.leadID] = ports.LeadStatusConverted

	f.createDeal(t, 30000)

	if got := f.store.leads[f.leadID]; got != ports.LeadStatusConverted {
		t.Errorf("lead status = %s, want converted untouched", got)
	}
}

func TestCreateRejectsUnknownReferences(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		req  transport.CreateDealRequest
	}{
		{"unknown lead", transport.CreateDealRequest{LeadID: uuid.New(), VehicleID: f.vehicleID, AgentID: f.agentID}},
		{"unknown vehicle", transport.CreateDealRequest{LeadID: f.leadID, VehicleID: uuid.New(), AgentID: f.agentID}},
		{"unknown agent", transport.CreateDealRequest{LeadID: f.leadID, VehicleID: f.vehicleID, AgentID: uuid.New()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), f.agentID, tc.req)
			if apperr.GetKind(err) != apperr.KindNotFound {
				t.Errorf("kind = %v, want not found (err: %v)", apperr.GetKind(err), err)
			}
		})
	}
}

func TestCreateRejectsBadFinancials(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.agentID, transport.CreateDealRequest{
		LeadID:         f.leadID,
		VehicleID:      f.vehicleID,
		AgentID:        f.agentID,
		VehiclePrice:   30000,
		CommissionRate: 1.5,
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation", apperr.GetKind(err))
	}
}

func TestUpdateStageFollowsTransitionGraph(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)

	resp, err := f.svc.UpdateStage(context.Background(), f.agentID, deal.ID, transport.UpdateStageRequest{Status: "contract"})
	if err != nil {
		t.Fatalf("negotiation -> contract: %v", err)
	}
	if resp.Status != string(domain.StatusContract) {
		t.Errorf("status = %s, want contract", resp.Status)
	}
}

func TestUpdateStageRejectsSkippingStages(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)

	_, err := f.svc.UpdateStage(context.Background(), f.agentID, deal.ID, transport.UpdateStageRequest{Status: "financing"})
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Fatalf("kind = %v, want unprocessable", apperr.GetKind(err))
	}
	if got := f.dealStatus(t, deal.ID); got != domain.StatusNegotiation {
		t.Errorf("status after rejected transition = %s, want negotiation", got)
	}
}

func TestUpdateStageRejectsTerminalTarget(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)

	for _, target := range []string{"closed_won", "closed_lost"} {
		_, err := f.svc.UpdateStage(context.Background(), f.agentID, deal.ID, transport.UpdateStageRequest{Status: target})
		if apperr.GetKind(err) != apperr.KindUnprocessable {
			t.Errorf("target %s: kind = %v, want unprocessable", target, apperr.GetKind(err))
		}
	}
}

func TestCloseWonDefaultsFinalPriceAndCascades(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)

	resp, err := f.svc.Close(context.Background(), f.agentID, deal.ID, transport.CloseDealRequest{Outcome: "closed_won"})
	if err != nil {
		t.Fatalf("close won: %v", err)
	}

	if resp.Status != string(domain.StatusClosedWon) {
		t.Errorf("status = %s, want closed_won", resp.Status)
	}
	if resp.FinalPrice == nil || *resp.FinalPrice != 30000 {
		t.Errorf("final price = %v, want asking price 30000", resp.FinalPrice)
	}
	if resp.Probability != 100 {
		t.Errorf("probability = %d, want 100", resp.Probability)
	}
	if resp.ClosedAt == nil || resp.ActualCloseDate == nil {
		t.Errorf("close dates not set: closedAt=%v actualCloseDate=%v", resp.ClosedAt, resp.ActualCloseDate)
	}
	if got := f.store.leads[f.leadID]; got != ports.LeadStatusConverted {
		t.Errorf("lead status = %s, want converted", got)
	}
	if got := f.store.vehicles[f.vehicleID]; got != ports.VehicleStatusSold {
		t.Errorf("vehicle status = %s, want sold", got)
	}
}

func TestCloseWonWithExplicitPrice(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)

	price := 28500.0
	resp, err := f.svc.Close(context.Background(), f.agentID, deal.ID, transport.CloseDealRequest{
		Outcome:    "closed_won",
		FinalPrice: &price,
	})
	if err != nil {
		t.Fatalf("close won: %v", err)
	}
	if resp.FinalPrice == nil || *resp.FinalPrice != price {
		t.Errorf("final price = %v, want %v", resp.FinalPrice, price)
	}
	if resp.DiscountAmount != 1500 {
		t.Errorf("discount amount = %v, want 1500", resp.DiscountAmount)
	}
}

func TestCloseLostLeavesVehicleAlone(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)

	reason := "bought elsewhere"
	resp, err := f.svc.Close(context.Background(), f.agentID, deal.ID, transport.CloseDealRequest{
		Outcome:    "closed_lost",
		LostReason: &reason,
	})
	if err != nil {
		t.Fatalf("close lost: %v", err)
	}

	if resp.Probability != 0 {
		t.Errorf("probability = %d, want 0", resp.Probability)
	}
	if got := f.store.leads[f.leadID]; got != ports.LeadStatusLost {
		t.Errorf("lead status = %s, want lost", got)
	}
	if got := f.store.vehicles[f.vehicleID]; got != ports.VehicleStatusAvailable {
		t.Errorf("vehicle status = %s, want available untouched", got)
	}
}

func TestCloseRejectsAlreadyClosed(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)

	if _, err := f.svc.Close(context.Background(), f.agentID, deal.ID, transport.CloseDealRequest{Outcome: "closed_won"}); err != nil {
		t.Fatalf("first close: %v", err)
	}
	_, err := f.svc.Close(context.Background(), f.agentID, deal.ID, transport.CloseDealRequest{Outcome: "closed_lost"})
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Errorf("kind = %v, want unprocessable", apperr.GetKind(err))
	}
}

func TestCloseRejectsOpenOutcome(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)

	_, err := f.svc.Close(context.Background(), f.agentID, deal.ID, transport.CloseDealRequest{Outcome: "contract"})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation", apperr.GetKind(err))
	}
}

func TestCloseWonConflictRollsBack(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)
	f.store.vehicles[f.vehicleID] = ports.VehicleStatusSold

	_, err := f.svc.Close(context.Background(), f.agentID, deal.ID, transport.CloseDealRequest{Outcome: "closed_won"})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want conflict", apperr.GetKind(err))
	}
	if got := f.dealStatus(t, deal.ID); got != domain.StatusNegotiation {
		t.Errorf("deal status after conflict = %s, want negotiation (rolled back)", got)
	}
	if got := f.store.leads[f.leadID]; got != ports.LeadStatusQualified {
		t.Errorf("lead status after conflict = %s, want qualified (rolled back)", got)
	}
}

func TestConcurrentCloseOnSharedVehicle(t *testing.T) {
	f := newFixture(t)
	first := f.createDeal(t, 30000)
	second := f.createDeal(t, 30000)

	results := make(chan error, 2)
	for _, id := range []uuid.UUID{first.ID, second.ID} {
		go func(dealID uuid.UUID) {
			_, err := f.svc.Close(context.Background(), f.agentID, dealID, transport.CloseDealRequest{Outcome: "closed_won"})
			results <- err
		}(id)
	}

	var won, conflicts int
	for i := 0; i < 2; i++ {
		err := <-results
		switch {
		case err == nil:
			won++
		case apperr.GetKind(err) == apperr.KindConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if won != 1 || conflicts != 1 {
		t.Errorf("won=%d conflicts=%d, want exactly one of each", won, conflicts)
	}
	if got := f.store.vehicles[f.vehicleID]; got != ports.VehicleStatusSold {
		t.Errorf("vehicle status = %s, want sold", got)
	}
}

func TestReopenRestoresNegotiation(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)
	if _, err := f.svc.Close(context.Background(), f.agentID, deal.ID, transport.CloseDealRequest{Outcome: "closed_won"}); err != nil {
		t.Fatalf("close: %v", err)
	}

	resp, err := f.svc.Reopen(context.Background(), f.agentID, deal.ID)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	if resp.Status != string(domain.StatusNegotiation) {
		t.Errorf("status = %s, want negotiation", resp.Status)
	}
	if resp.Probability != domain.ReopenedProbability {
		t.Errorf("probability = %d, want %d", resp.Probability, domain.ReopenedProbability)
	}
	if resp.FinalPrice != nil || resp.ClosedAt != nil || resp.ActualCloseDate != nil {
		t.Errorf("close fields not cleared: finalPrice=%v closedAt=%v actualCloseDate=%v",
			resp.FinalPrice, resp.ClosedAt, resp.ActualCloseDate)
	}
	if got := f.store.leads[f.leadID]; got != ports.LeadStatusQualified {
		t.Errorf("lead status = %s, want qualified", got)
	}
	if got := f.store.vehicles[f.vehicleID]; got != ports.VehicleStatusAvailable {
		t.Errorf("vehicle status = %s, want available", got)
	}
}

func TestReopenRejectsOpenDeal(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)

	_, err := f.svc.Reopen(context.Background(), f.agentID, deal.ID)
	if apperr.GetKind(err) != apperr.KindUnprocessable {
		t.Errorf("kind = %v, want unprocessable", apperr.GetKind(err))
	}
}

func TestReassign(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)

	_, err := f.svc.Reassign(context.Background(), f.agentID, deal.ID, transport.ReassignDealRequest{AgentID: uuid.New()})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("unknown agent: kind = %v, want not found", apperr.GetKind(err))
	}

	other := uuid.New()
	f.svc.agents.(*fakeAgents).known[other] = true

	resp, err := f.svc.Reassign(context.Background(), f.agentID, deal.ID, transport.ReassignDealRequest{AgentID: other})
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if resp.AgentID != other {
		t.Errorf("agent = %s, want %s", resp.AgentID, other)
	}
}

func TestUpdateDetailsSchedulesFollowUp(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)

	action := "call about financing"
	due := time.Now().Add(48 * time.Hour)
	resp, err := f.svc.UpdateDetails(context.Background(), f.agentID, deal.ID, transport.UpdateDealRequest{
		NextAction:     &action,
		NextActionDate: &due,
	})
	if err != nil {
		t.Fatalf("update details: %v", err)
	}
	if resp.NextAction == nil || *resp.NextAction != action {
		t.Errorf("next action = %v, want %q", resp.NextAction, action)
	}

	f.sched.mu.Lock()
	defer f.sched.mu.Unlock()
	if len(f.sched.scheduled) != 1 || f.sched.scheduled[0].DealID != deal.ID.String() {
		t.Errorf("scheduled = %v, want one reminder for %s", f.sched.scheduled, deal.ID)
	}
}

func TestUpdateDetailsRejectsOutOfRange(t *testing.T) {
	f := newFixture(t)
	deal := f.createDeal(t, 30000)

	bad := 140
	_, err := f.svc.UpdateDetails(context.Background(), f.agentID, deal.ID, transport.UpdateDealRequest{Probability: &bad})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation", apperr.GetKind(err))
	}
}
