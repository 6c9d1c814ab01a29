package domain

import (
	"time"

	"github.com/google/uuid"

	"autocrm_backend/platform/apperr"
)

// Deal is a tracked sales opportunity linking a lead, a vehicle, and an
// owning agent through the negotiation lifecycle. Lead, vehicle, and agent
// are referenced by identity only; their records belong to other modules.
type Deal struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	VehicleID uuid.UUID
	AgentID   uuid.UUID

	Status DealStatus

	// Financial fields. VehiclePrice is the asking price; FinalPrice stays
	// nil until the deal closes. CommissionRate is a fraction in [0,1].
	VehiclePrice   float64
	FinalPrice     *float64
	DepositAmount  *float64
	CommissionRate float64

	// Probability is a confidence score in [0,100]. Forced to 100/0 on
	// close and to ReopenedProbability on reopen.
	Probability int

	ExpectedCloseDate *time.Time
	ActualCloseDate   *time.Time
	ClosedAt          *time.Time

	// Free-form follow-up reminder; carries no state-machine meaning.
	NextAction     *string
	NextActionDate *time.Time

	Notes          *string
	ClosingNotes   *string
	LostReason     *string
	CompetitorInfo *string

	// Informational sub-statuses tracked alongside the main pipeline.
	// They never gate stage transitions.
	DocumentsStatus  *string
	FinancingStatus  *string
	InsuranceStatus  *string
	InspectionStatus *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateFinancials rejects out-of-range numeric fields before any write.
func ValidateFinancials(vehiclePrice float64, finalPrice, depositAmount *float64, commissionRate float64, probability int) error {
	if vehiclePrice < 0 {
		return apperr.Validation("vehicle price must not be negative")
	}
	if finalPrice != nil && *finalPrice < 0 {
		return apperr.Validation("final price must not be negative")
	}
	if depositAmount != nil && *depositAmount < 0 {
		return apperr.Validation("deposit amount must not be negative")
	}
	if commissionRate < 0 || commissionRate > 1 {
		return apperr.Validation("commission rate must be between 0 and 1")
	}
	if probability < 0 || probability > 100 {
		return apperr.Validation("probability must be between 0 and 100")
	}
	return nil
}
