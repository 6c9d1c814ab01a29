package notification

import (
	"context"
	"fmt"

	"autocrm_backend/internal/deals/domain"
	"autocrm_backend/internal/events"
	"autocrm_backend/platform/config"
	"autocrm_backend/platform/logger"
)

// Notifier subscribes to deal pipeline events and mails the sales desk
// inbox. When email delivery is disabled it logs the event instead, so the
// pipeline behaves the same with or without an SMTP server configured.
type Notifier struct {
	sender  Sender
	inbox   string
	enabled bool
	log     *logger.Logger
}

// NewNotifier creates a notifier. The sender may be nil when email is
// disabled.
func NewNotifier(cfg config.EmailConfig, sender Sender, log *logger.Logger) *Notifier {
	enabled := cfg.GetEmailEnabled() && cfg.GetSalesInboxAddress() != "" && sender != nil
	if !enabled {
		log.Info("email notifications disabled")
	}
	return &Notifier{
		sender:  sender,
		inbox:   cfg.GetSalesInboxAddress(),
		enabled: enabled,
		log:     log,
	}
}

// Register subscribes the notifier to the deal pipeline events it handles.
func (n *Notifier) Register(bus events.Bus) {
	bus.Subscribe(events.DealClosed{}.EventName(), events.HandlerFunc(n.onDealClosed))
	bus.Subscribe(events.DealReopened{}.EventName(), events.HandlerFunc(n.onDealReopened))
	bus.Subscribe(events.DealFollowUpDue{}.EventName(), events.HandlerFunc(n.onFollowUpDue))
}

func (n *Notifier) onDealClosed(ctx context.Context, event events.Event) error {
	e, ok := event.(events.DealClosed)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if !n.enabled {
		n.log.Info("deal closed", "deal", e.DealID, "outcome", e.Outcome)
		return nil
	}

	data := DealClosedEmailData{
		DealID:         e.DealID.String(),
		Outcome:        e.Outcome,
		PriceFormatted: formatCurrencyEUR(e.FinalPrice),
	}
	data.Title = "Deal closed"
	data.Heading = "Deal closed"
	if e.Outcome == string(domain.StatusClosedWon) {
		data.Heading = "Deal won"
	}
	return n.sender.SendDealClosedEmail(ctx, n.inbox, data)
}

func (n *Notifier) onDealReopened(ctx context.Context, event events.Event) error {
	e, ok := event.(events.DealReopened)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if !n.enabled {
		n.log.Info("deal reopened", "deal", e.DealID, "previous", e.PreviousStatus)
		return nil
	}

	data := DealReopenedEmailData{
		DealID:         e.DealID.String(),
		PreviousStatus: e.PreviousStatus,
	}
	data.Title = "Deal reopened"
	data.Heading = "Deal reopened"
	return n.sender.SendDealReopenedEmail(ctx, n.inbox, data)
}

func (n *Notifier) onFollowUpDue(ctx context.Context, event events.Event) error {
	e, ok := event.(events.DealFollowUpDue)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if !n.enabled {
		n.log.Info("deal follow-up due", "deal", e.DealID, "agent", e.AgentID)
		return nil
	}

	data := FollowUpDueEmailData{
		DealID:     e.DealID.String(),
		NextAction: e.NextAction,
	}
	if e.DueAt != nil {
		data.DueDate = e.DueAt.Format("2006-01-02")
	}
	data.Title = "Follow-up due"
	data.Heading = "Follow-up due"
	return n.sender.SendFollowUpDueEmail(ctx, n.inbox, data)
}
