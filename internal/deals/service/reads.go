package service

import (
	"context"

	"github.com/google/uuid"

	"autocrm_backend/internal/deals/domain"
	"autocrm_backend/internal/deals/repository"
	"autocrm_backend/internal/deals/transport"
	"autocrm_backend/platform/apperr"
)

// Get retrieves a single deal with derived read-time metrics.
func (s *Service) Get(ctx context.Context, dealID uuid.UUID) (transport.DealResponse, error) {
	deal, err := s.repo.GetByID(ctx, dealID)
	if err != nil {
		return transport.DealResponse{}, err
	}
	return toResponse(deal), nil
}

// List retrieves deals filtered by agent and/or status, newest first.
func (s *Service) List(ctx context.Context, req transport.ListDealsRequest) (transport.DealListResponse, error) {
	filter := repository.ListFilter{AgentID: req.AgentID}
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return transport.DealListResponse{}, apperr.Validation(err.Error())
		}
		filter.Status = &status
	}

	deals, err := s.repo.List(ctx, filter)
	if err != nil {
		return transport.DealListResponse{}, err
	}

	items := make([]transport.DealResponse, 0, len(deals))
	for _, deal := range deals {
		items = append(items, toResponse(deal))
	}
	return transport.DealListResponse{Items: items, Total: len(items)}, nil
}
