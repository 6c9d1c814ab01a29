// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"autocrm_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Deal Pipeline Events
// =============================================================================

// DealCreated is published when a new deal enters the pipeline.
type DealCreated struct {
	BaseEvent
	DealID    uuid.UUID `json:"dealId"`
	LeadID    uuid.UUID `json:"leadId"`
	VehicleID uuid.UUID `json:"vehicleId"`
	AgentID   uuid.UUID `json:"agentId"`
	ActorID   uuid.UUID `json:"actorId"`
}

func (e DealCreated) EventName() string { return "deals.deal.created" }

// DealStageChanged is published when a deal moves between open pipeline stages.
type DealStageChanged struct {
	BaseEvent
	DealID     uuid.UUID `json:"dealId"`
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	ActorID    uuid.UUID `json:"actorId"`
}

func (e DealStageChanged) EventName() string { return "deals.deal.stage_changed" }

// DealClosed is published when a deal reaches a terminal outcome.
type DealClosed struct {
	BaseEvent
	DealID     uuid.UUID `json:"dealId"`
	Outcome    string    `json:"outcome"`
	FinalPrice float64   `json:"finalPrice"`
	AgentID    uuid.UUID `json:"agentId"`
	ActorID    uuid.UUID `json:"actorId"`
}

func (e DealClosed) EventName() string { return "deals.deal.closed" }

// DealReopened is published when a closed deal is moved back into negotiation.
type DealReopened struct {
	BaseEvent
	DealID         uuid.UUID `json:"dealId"`
	PreviousStatus string    `json:"previousStatus"`
	ActorID        uuid.UUID `json:"actorId"`
}

func (e DealReopened) EventName() string { return "deals.deal.reopened" }

// DealReassigned is published when a deal changes owning agent.
type DealReassigned struct {
	BaseEvent
	DealID     uuid.UUID `json:"dealId"`
	OldAgentID uuid.UUID `json:"oldAgentId"`
	NewAgentID uuid.UUID `json:"newAgentId"`
	ActorID    uuid.UUID `json:"actorId"`
}

func (e DealReassigned) EventName() string { return "deals.deal.reassigned" }

// DealFollowUpDue is published by the worker when a scheduled next-action
// reminder comes due and the deal is still open.
type DealFollowUpDue struct {
	BaseEvent
	DealID     uuid.UUID  `json:"dealId"`
	AgentID    uuid.UUID  `json:"agentId"`
	NextAction string     `json:"nextAction"`
	DueAt      *time.Time `json:"dueAt,omitempty"`
}

func (e DealFollowUpDue) EventName() string { return "deals.deal.follow_up_due" }
