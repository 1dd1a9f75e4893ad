package email

import (
	"context"
	"testing"

	"mobiauto_backend/internal/events"
	"mobiauto_backend/platform/logger"

	"github.com/google/uuid"
)

type captureSender struct {
	to   []string
	data []AssignmentEmailData
}

func (c *captureSender) SendAssignmentEmail(_ context.Context, toEmail string, data AssignmentEmailData) error {
	c.to = append(c.to, toEmail)
	c.data = append(c.data, data)
	return nil
}

func TestNotifierSendsOnAssignment(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sender := &captureSender{}
	NewNotifier(bus, sender, log)

	err := bus.PublishSync(context.Background(), events.OpportunityAssigned{
		BaseEvent:      events.NewBaseEvent(),
		OpportunityID:  uuid.New(),
		AssistantID:    uuid.New(),
		AssistantName:  "Ana",
		AssistantEmail: "ana@dealer.test",
		CustomerName:   "Carlos",
		Vehicle:        "Fiat Argo 2023",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(sender.to) != 1 || sender.to[0] != "ana@dealer.test" {
		t.Fatalf("recipients = %v", sender.to)
	}
	if sender.data[0].CustomerName != "Carlos" || sender.data[0].Vehicle != "Fiat Argo 2023" {
		t.Fatalf("data = %+v", sender.data[0])
	}
}

func TestNotifierIgnoresOtherEvents(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sender := &captureSender{}
	n := NewNotifier(bus, sender, log)

	if err := n.handleAssigned(context.Background(), events.OpportunityConcluded{}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.to) != 0 {
		t.Fatalf("unexpected email sent to %v", sender.to)
	}
}
