package service

import (
	"context"
	"testing"

	"autocrm_backend/internal/deals/domain"
	"autocrm_backend/internal/deals/transport"
)

func TestKanbanGroupsOpenDealsByStage(t *testing.T) {
	f := newFixture(t)

	first := f.createDeal(t, 30000)
	second := f.createDeal(t, 20000)
	third := f.createDeal(t, 45000)

	if _, err := f.svc.UpdateStage(context.Background(), f.agentID, second.ID, transport.UpdateStageRequest{Status: "contract"}); err != nil {
		t.Fatalf("move to contract: %v", err)
	}
	if _, err := f.svc.Close(context.Background(), f.agentID, third.ID, transport.CloseDealRequest{Outcome: "closed_lost"}); err != nil {
		t.Fatalf("close third: %v", err)
	}

	board, err := f.svc.Kanban(context.Background(), transport.KanbanRequest{})
	if err != nil {
		t.Fatalf("kanban: %v", err)
	}

	open := domain.OpenStatuses()
	if len(board.Columns) != len(open) {
		t.Fatalf("columns = %d, want %d", len(board.Columns), len(open))
	}

	byStatus := make(map[string]transport.KanbanColumn, len(board.Columns))
	for i, column := range board.Columns {
		if column.Status != string(open[i]) {
			t.Errorf("column %d status = %s, want %s (stage order)", i, column.Status, open[i])
		}
		byStatus[column.Status] = column
	}

	negotiation := byStatus["negotiation"]
	if negotiation.Count != 1 || negotiation.TotalValue != 30000 {
		t.Errorf("negotiation count=%d total=%v, want 1/30000", negotiation.Count, negotiation.TotalValue)
	}
	if len(negotiation.Deals) != 1 || negotiation.Deals[0].ID != first.ID {
		t.Errorf("negotiation column holds %v, want deal %s", negotiation.Deals, first.ID)
	}

	contract := byStatus["contract"]
	if contract.Count != 1 || contract.TotalValue != 20000 {
		t.Errorf("contract count=%d total=%v, want 1/20000", contract.Count, contract.TotalValue)
	}

	if financing := byStatus["financing"]; financing.Count != 0 || len(financing.Deals) != 0 {
		t.Errorf("financing column not empty: %+v", financing)
	}

	// Closed deals never appear on the board.
	for _, column := range board.Columns {
		for _, deal := range column.Deals {
			if deal.ID == third.ID {
				t.Errorf("closed deal %s on the board in %s", third.ID, column.Status)
			}
		}
	}
}

func TestKanbanFiltersByAgent(t *testing.T) {
	f := newFixture(t)
	f.createDeal(t, 30000)

	other := f.agentID
	board, err := f.svc.Kanban(context.Background(), transport.KanbanRequest{AgentID: &other})
	if err != nil {
		t.Fatalf("kanban: %v", err)
	}
	if board.Columns[0].Count != 1 {
		t.Errorf("own agent filter count = %d, want 1", board.Columns[0].Count)
	}

	stranger := f.leadID // any uuid that is not an agent
	board, err = f.svc.Kanban(context.Background(), transport.KanbanRequest{AgentID: &stranger})
	if err != nil {
		t.Fatalf("kanban: %v", err)
	}
	for _, column := range board.Columns {
		if column.Count != 0 {
			t.Errorf("stranger filter: column %s count = %d, want 0", column.Status, column.Count)
		}
	}
}
