package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateDealRequest contains data for opening a new deal in the pipeline.
type CreateDealRequest struct {
	LeadID            uuid.UUID  `json:"leadId" validate:"required"`
	VehicleID         uuid.UUID  `json:"vehicleId" validate:"required"`
	AgentID           uuid.UUID  `json:"agentId" validate:"required"`
	VehiclePrice      float64    `json:"vehiclePrice" validate:"gte=0"`
	DepositAmount     *float64   `json:"depositAmount,omitempty" validate:"omitempty,gte=0"`
	CommissionRate    float64    `json:"commissionRate" validate:"gte=0,lte=1"`
	Probability       *int       `json:"probability,omitempty" validate:"omitempty,gte=0,lte=100"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
	NextAction        *string    `json:"nextAction,omitempty" validate:"omitempty,max=500"`
	NextActionDate    *time.Time `json:"nextActionDate,omitempty"`
	Notes             *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// UpdateStageRequest moves a deal to another open pipeline stage.
type UpdateStageRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// CloseDealRequest settles a deal into one of the two terminal outcomes.
type CloseDealRequest struct {
	Outcome        string   `json:"outcome" validate:"required,oneof=closed_won closed_lost"`
	FinalPrice     *float64 `json:"finalPrice,omitempty" validate:"omitempty,gte=0"`
	ClosingNotes   *string  `json:"closingNotes,omitempty" validate:"omitempty,max=5000"`
	LostReason     *string  `json:"lostReason,omitempty" validate:"omitempty,max=1000"`
	CompetitorInfo *string  `json:"competitorInfo,omitempty" validate:"omitempty,max=1000"`
}

// ReassignDealRequest hands a deal to a different agent.
type ReassignDealRequest struct {
	AgentID uuid.UUID `json:"agentId" validate:"required"`
}

// UpdateDealRequest edits fields outside the state machine. Omitted fields
// are left unchanged.
type UpdateDealRequest struct {
	Notes             *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
	NextAction        *string    `json:"nextAction,omitempty" validate:"omitempty,max=500"`
	NextActionDate    *time.Time `json:"nextActionDate,omitempty"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
	Probability       *int       `json:"probability,omitempty" validate:"omitempty,gte=0,lte=100"`
	CommissionRate    *float64   `json:"commissionRate,omitempty" validate:"omitempty,gte=0,lte=1"`
	DepositAmount     *float64   `json:"depositAmount,omitempty" validate:"omitempty,gte=0"`
	DocumentsStatus   *string    `json:"documentsStatus,omitempty" validate:"omitempty,max=100"`
	FinancingStatus   *string    `json:"financingStatus,omitempty" validate:"omitempty,max=100"`
	InsuranceStatus   *string    `json:"insuranceStatus,omitempty" validate:"omitempty,max=100"`
	InspectionStatus  *string    `json:"inspectionStatus,omitempty" validate:"omitempty,max=100"`
}

// ListDealsRequest narrows the deal listing.
type ListDealsRequest struct {
	AgentID *uuid.UUID `form:"agentId"`
	Status  *string    `form:"status"`
}

// KanbanRequest narrows the kanban board to one agent.
type KanbanRequest struct {
	AgentID *uuid.UUID `form:"agentId"`
}

// DealResponse represents a deal in API responses, including the derived
// financial and scheduling metrics computed at read time.
type DealResponse struct {
	ID        uuid.UUID `json:"id"`
	LeadID    uuid.UUID `json:"leadId"`
	VehicleID uuid.UUID `json:"vehicleId"`
	AgentID   uuid.UUID `json:"agentId"`

	Status string `json:"status"`

	VehiclePrice   float64  `json:"vehiclePrice"`
	FinalPrice     *float64 `json:"finalPrice,omitempty"`
	DepositAmount  *float64 `json:"depositAmount,omitempty"`
	CommissionRate float64  `json:"commissionRate"`
	Probability    int      `json:"probability"`

	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
	ActualCloseDate   *time.Time `json:"actualCloseDate,omitempty"`
	ClosedAt          *time.Time `json:"closedAt,omitempty"`
	NextAction        *string    `json:"nextAction,omitempty"`
	NextActionDate    *time.Time `json:"nextActionDate,omitempty"`

	Notes          *string `json:"notes,omitempty"`
	ClosingNotes   *string `json:"closingNotes,omitempty"`
	LostReason     *string `json:"lostReason,omitempty"`
	CompetitorInfo *string `json:"competitorInfo,omitempty"`

	DocumentsStatus  *string `json:"documentsStatus,omitempty"`
	FinancingStatus  *string `json:"financingStatus,omitempty"`
	InsuranceStatus  *string `json:"insuranceStatus,omitempty"`
	InspectionStatus *string `json:"inspectionStatus,omitempty"`

	Commission         float64 `json:"commission"`
	ExpectedCommission float64 `json:"expectedCommission"`
	DiscountAmount     float64 `json:"discountAmount"`
	DiscountPercentage float64 `json:"discountPercentage"`
	IsOverdue          bool    `json:"isOverdue"`
	DaysOpen           int     `json:"daysOpen"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DealListResponse wraps a list of deals.
type DealListResponse struct {
	Items []DealResponse `json:"items"`
	Total int            `json:"total"`
}

// KanbanColumn is one stage group of the board.
type KanbanColumn struct {
	Status     string         `json:"status"`
	Count      int            `json:"count"`
	TotalValue float64        `json:"totalValue"`
	Deals      []DealResponse `json:"deals"`
}

// KanbanResponse is the stage-grouped view of the open pipeline.
type KanbanResponse struct {
	Columns []KanbanColumn `json:"columns"`
}
