package email

import (
	"context"

	"mobiauto_backend/internal/events"
	"mobiauto_backend/platform/logger"
)

// Notifier listens for assignment events and sends the corresponding emails.
type Notifier struct {
	sender Sender
	log    *logger.Logger
}

// NewNotifier creates a notifier and subscribes it to the event bus.
func NewNotifier(bus events.Bus, sender Sender, log *logger.Logger) *Notifier {
	n := &Notifier{sender: sender, log: log}
	bus.Subscribe(events.OpportunityAssigned{}.EventName(), events.HandlerFunc(n.handleAssigned))
	return n
}

func (n *Notifier) handleAssigned(ctx context.Context, event events.Event) error {
	assigned, ok := event.(events.OpportunityAssigned)
	if !ok {
		return nil
	}

	err := n.sender.SendAssignmentEmail(ctx, assigned.AssistantEmail, AssignmentEmailData{
		AssistantName: assigned.AssistantName,
		CustomerName:  assigned.CustomerName,
		Vehicle:       assigned.Vehicle,
	})
	if err != nil {
		n.log.Error("assignment email failed",
			"opportunity_id", assigned.OpportunityID,
			"assistant_id", assigned.AssistantID,
			"error", err,
		)
		return err
	}

	n.log.Debug("assignment email sent", "assistant_email", assigned.AssistantEmail)
	return nil
}
