package notification

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	"autocrm_backend/platform/config"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

var _ Sender = (*SMTPSender)(nil)

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendDealClosedEmail notifies the sales desk of a settled deal.
func (s *SMTPSender) SendDealClosedEmail(ctx context.Context, toEmail string, data DealClosedEmailData) error {
	content, err := renderEmailTemplate("deal_closed.html", data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf(subjectDealWonFmt, data.PriceFormatted)
	if data.Outcome != "closed_won" {
		subject = fmt.Sprintf(subjectDealLostFmt, data.DealID)
	}
	return s.send(ctx, toEmail, subject, content)
}

// SendDealReopenedEmail notifies the sales desk of a reopened deal.
func (s *SMTPSender) SendDealReopenedEmail(ctx context.Context, toEmail string, data DealReopenedEmailData) error {
	content, err := renderEmailTemplate("deal_reopened.html", data)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectDealReopened, content)
}

// SendFollowUpDueEmail notifies the sales desk of a due follow-up.
func (s *SMTPSender) SendFollowUpDueEmail(ctx context.Context, toEmail string, data FollowUpDueEmailData) error {
	content, err := renderEmailTemplate("follow_up_due.html", data)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectFollowUpDue, content)
}
