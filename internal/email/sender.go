// Package email delivers notification emails for opportunity assignments.
package email

import "context"

// Sender delivers notification emails.
type Sender interface {
	// SendAssignmentEmail notifies an assistant about a newly assigned lead.
	SendAssignmentEmail(ctx context.Context, toEmail string, data AssignmentEmailData) error
}

// AssignmentEmailData carries the fields rendered into the assignment template.
type AssignmentEmailData struct {
	AssistantName string
	CustomerName  string
	Vehicle       string
}

// NoopSender discards all emails. Used when SMTP is not configured.
type NoopSender struct{}

// SendAssignmentEmail does nothing.
func (NoopSender) SendAssignmentEmail(context.Context, string, AssignmentEmailData) error {
	return nil
}
