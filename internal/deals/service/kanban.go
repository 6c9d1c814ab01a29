package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"autocrm_backend/internal/deals/domain"
	"autocrm_backend/internal/deals/transport"
)

// Kanban returns the open pipeline grouped by stage, one column per open
// status with per-column count and summed asking-price value. The columns
// use the same status enumeration the engine enforces, so the board can
// never show a stage a deal could not actually be in. Columns are fetched
// concurrently; each is already ordered by the repository.
func (s *Service) Kanban(ctx context.Context, req transport.KanbanRequest) (transport.KanbanResponse, error) {
	statuses := domain.OpenStatuses()
	columns := make([]transport.KanbanColumn, len(statuses))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, status := range statuses {
		group.Go(func() error {
			deals, err := s.repo.ListOpenByStatus(groupCtx, status, req.AgentID)
			if err != nil {
				return err
			}

			column := transport.KanbanColumn{
				Status: string(status),
				Deals:  make([]transport.DealResponse, 0, len(deals)),
			}
			for _, deal := range deals {
				column.Deals = append(column.Deals, toResponse(deal))
				column.TotalValue += deal.VehiclePrice
			}
			column.Count = len(deals)
			columns[i] = column
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return transport.KanbanResponse{}, err
	}

	return transport.KanbanResponse{Columns: columns}, nil
}
