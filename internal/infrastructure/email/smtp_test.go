package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/shared/config"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

type mockSender struct {
	DialAndSendFunc func(m ...*gomail.Message) error
	sent            []*gomail.Message
}

func (s *mockSender) DialAndSend(m ...*gomail.Message) error {
	s.sent = append(s.sent, m...)
	if s.DialAndSendFunc != nil {
		return s.DialAndSendFunc(m...)
	}
	return nil
}

func newTestNotifier(s sender) *SMTPNotifier {
	n := NewSMTPNotifier(config.EmailConfig{
		Enabled:     true,
		SMTPHost:    "smtp.example.com",
		SMTPPort:    587,
		FromAddress: "noreply@example.com",
		FromName:    "Sprintly",
	}, "https://sprintly.example.com", logger.NewNop())
	n.dialer = s
	return n
}

func render(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestSMTPNotifier_TicketAssigned(t *testing.T) {
	s := &mockSender{}
	n := newTestNotifier(s)

	err := n.TicketAssigned(context.Background(), common.AssignmentNotice{
		RecipientEmail: "dev@example.com",
		RecipientName:  "Dana",
		TicketKey:      "PROJ-042",
		TicketTitle:    "Fix <login> page",
	})
	require.NoError(t, err)
	require.Len(t, s.sent, 1)

	assert.Equal(t, []string{"dev@example.com"}, s.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"[PROJ-042] assigned to you"}, s.sent[0].GetHeader("Subject"))
	body := render(t, s.sent[0])
	assert.Contains(t, body, "https://sprintly.example.com/tickets/PROJ-042")
	assert.Contains(t, body, `Ticket PROJ-042 "Fix <login> page" is now assigned to you.`)
}

func TestSMTPNotifier_TestRejected(t *testing.T) {
	s := &mockSender{DialAndSendFunc: func(m ...*gomail.Message) error {
		return errors.New("connection refused")
	}}
	n := newTestNotifier(s)

	err := n.TestRejected(context.Background(), common.TestRejectedNotice{
		RecipientEmail:  "dev@example.com",
		TicketKey:       "PROJ-042",
		ReviewerName:    "Quinn",
		TestDescription: "Button does nothing on Safari",
	})
	assert.ErrorContains(t, err, "connection refused")
	require.Len(t, s.sent, 1)
	assert.Equal(t, []string{"[PROJ-042] test rejected"}, s.sent[0].GetHeader("Subject"))
}

func TestSMTPNotifier_EmptyRecipient(t *testing.T) {
	s := &mockSender{}
	err := newTestNotifier(s).TicketAssigned(context.Background(), common.AssignmentNotice{TicketKey: "PROJ-001"})
	assert.Error(t, err)
	assert.Empty(t, s.sent)
}

func TestNewNotifier_Disabled(t *testing.T) {
	n := NewNotifier(config.EmailConfig{Enabled: false}, "", logger.NewNop())
	assert.IsType(t, common.NopNotifier{}, n)
}
