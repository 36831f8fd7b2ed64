package email

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/shared/config"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPNotifier struct {
	from    string
	name    string
	baseURL string
	dialer  sender
	logger  logger.Interface
}

func NewSMTPNotifier(cfg config.EmailConfig, baseURL string, log logger.Interface) *SMTPNotifier {
	return &SMTPNotifier{
		from:    cfg.FromAddress,
		name:    cfg.FromName,
		baseURL: baseURL,
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		logger:  log,
	}
}

// NewNotifier returns an SMTP notifier when email is enabled and a no-op one
// otherwise.
func NewNotifier(cfg config.EmailConfig, baseURL string, log logger.Interface) common.Notifier {
	if !cfg.Enabled || cfg.SMTPHost == "" {
		return common.NopNotifier{}
	}
	return NewSMTPNotifier(cfg, baseURL, log)
}

func (s *SMTPNotifier) TicketAssigned(ctx context.Context, n common.AssignmentNotice) error {
	link := s.ticketURL(n.TicketKey)
	subject := fmt.Sprintf("[%s] assigned to you", n.TicketKey)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Hello %s,</p>
			<p>Ticket <strong>%s</strong> "%s" is now assigned to you.</p>
			<p><a href="%s">Open the ticket</a></p>
		</body>
		</html>
	`, html.EscapeString(n.RecipientName), html.EscapeString(n.TicketKey), html.EscapeString(n.TicketTitle), link)

	plainBody := fmt.Sprintf(`
Hello %s,

Ticket %s "%s" is now assigned to you.

%s
	`, n.RecipientName, n.TicketKey, n.TicketTitle, link)

	return s.send(ctx, n.RecipientEmail, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) TestRejected(ctx context.Context, n common.TestRejectedNotice) error {
	link := s.ticketURL(n.TicketKey)
	subject := fmt.Sprintf("[%s] test rejected", n.TicketKey)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Hello %s,</p>
			<p>%s rejected a test on <strong>%s</strong> "%s":</p>
			<blockquote>%s</blockquote>
			<p><a href="%s">Open the ticket</a></p>
		</body>
		</html>
	`, html.EscapeString(n.RecipientName), html.EscapeString(n.ReviewerName), html.EscapeString(n.TicketKey),
		html.EscapeString(n.TicketTitle), html.EscapeString(n.TestDescription), link)

	plainBody := fmt.Sprintf(`
Hello %s,

%s rejected a test on %s "%s":

%s

%s
	`, n.RecipientName, n.ReviewerName, n.TicketKey, n.TicketTitle, n.TestDescription, link)

	return s.send(ctx, n.RecipientEmail, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) ticketURL(key string) string {
	return fmt.Sprintf("%s/tickets/%s", s.baseURL, key)
}

func (s *SMTPNotifier) send(ctx context.Context, to, subject, htmlBody, plainBody string) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.name)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Warnw("failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debugw("email sent", "to", to, "subject", subject)
	return nil
}
