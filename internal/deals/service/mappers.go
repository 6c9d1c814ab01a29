package service

import (
	"time"

	"autocrm_backend/internal/deals/domain"
	"autocrm_backend/internal/deals/transport"
)

// toResponse maps a deal entity to its API shape, computing the derived
// financial and scheduling metrics at read time.
func toResponse(deal domain.Deal) transport.DealResponse {
	now := time.Now()

	return transport.DealResponse{
		ID:        deal.ID,
		LeadID:    deal.LeadID,
		VehicleID: deal.VehicleID,
		AgentID:   deal.AgentID,

		Status: string(deal.Status),

		VehiclePrice:   deal.VehiclePrice,
		FinalPrice:     deal.FinalPrice,
		DepositAmount:  deal.DepositAmount,
		CommissionRate: deal.CommissionRate,
		Probability:    deal.Probability,

		ExpectedCloseDate: deal.ExpectedCloseDate,
		ActualCloseDate:   deal.ActualCloseDate,
		ClosedAt:          deal.ClosedAt,
		NextAction:        deal.NextAction,
		NextActionDate:    deal.NextActionDate,

		Notes:          deal.Notes,
		ClosingNotes:   deal.ClosingNotes,
		LostReason:     deal.LostReason,
		CompetitorInfo: deal.CompetitorInfo,

		DocumentsStatus:  deal.DocumentsStatus,
		FinancingStatus:  deal.FinancingStatus,
		InsuranceStatus:  deal.InsuranceStatus,
		InspectionStatus: deal.InspectionStatus,

		Commission:         domain.Commission(deal),
		ExpectedCommission: domain.ExpectedCommission(deal),
		DiscountAmount:     domain.DiscountAmount(deal),
		DiscountPercentage: domain.DiscountPercentage(deal),
		IsOverdue:          domain.IsOverdue(deal, now),
		DaysOpen:           domain.DaysOpen(deal, now),

		CreatedAt: deal.CreatedAt,
		UpdatedAt: deal.UpdatedAt,
	}
}
