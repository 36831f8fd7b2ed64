package common

import "context"

// AssignmentNotice tells a user a ticket now belongs to them.
type AssignmentNotice struct {
	RecipientEmail string
	RecipientName  string
	TicketKey      string
	TicketTitle    string
}

// TestRejectedNotice tells the ticket assignee that QA rejected a test.
type TestRejectedNotice struct {
	RecipientEmail  string
	RecipientName   string
	TicketKey       string
	TicketTitle     string
	ReviewerName    string
	TestDescription string
}

// Notifier delivers user notifications. Delivery failures never fail the
// operation that triggered them.
type Notifier interface {
	TicketAssigned(ctx context.Context, notice AssignmentNotice) error
	TestRejected(ctx context.Context, notice TestRejectedNotice) error
}

// NopNotifier drops every notice.
type NopNotifier struct{}

func (NopNotifier) TicketAssigned(context.Context, AssignmentNotice) error { return nil }
func (NopNotifier) TestRejected(context.Context, TestRejectedNotice) error { return nil }
