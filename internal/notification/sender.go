// Package notification turns deal pipeline events into emails for the sales
// desk. It subscribes to the event bus and renders HTML mail delivered over
// SMTP; when email is not configured the notifier logs instead of sending.
package notification

import "context"

// Sender delivers rendered notification emails.
type Sender interface {
	SendDealClosedEmail(ctx context.Context, toEmail string, data DealClosedEmailData) error
	SendDealReopenedEmail(ctx context.Context, toEmail string, data DealReopenedEmailData) error
	SendFollowUpDueEmail(ctx context.Context, toEmail string, data FollowUpDueEmailData) error
}
