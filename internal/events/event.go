// Package events provides domain event definitions and the in-memory bus for
// decoupled communication between modules.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is the base interface all domain events must implement.
type Event interface {
	// EventName returns a unique identifier for the event type.
	EventName() string
	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent creates a new base event with the current timestamp.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler processes events of a specific type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc is an adapter to allow ordinary functions to be used as handlers.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus is the interface for publishing and subscribing to domain events.
type Bus interface {
	// Publish sends an event to all registered handlers for that event type.
	// Handlers are executed asynchronously.
	Publish(ctx context.Context, event Event)

	// PublishSync sends an event and waits for all handlers to complete.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for a specific event type.
	// The eventName should match the value returned by Event.EventName().
	Subscribe(eventName string, handler Handler)
}

// =============================================================================
// Opportunity Domain Events
// =============================================================================

// OpportunityAssigned is published after an opportunity is persisted with a
// new assignee, whether through a direct assignment or a distribution run.
type OpportunityAssigned struct {
	BaseEvent
	OpportunityID  uuid.UUID `json:"opportunityId"`
	AssistantID    uuid.UUID `json:"assistantId"`
	AssistantName  string    `json:"assistantName"`
	AssistantEmail string    `json:"assistantEmail"`
	CustomerName   string    `json:"customerName"`
	Vehicle        string    `json:"vehicle"`
}

func (e OpportunityAssigned) EventName() string { return "opportunities.assigned" }

// OpportunityConcluded is published when an opportunity reaches a terminal status.
type OpportunityConcluded struct {
	BaseEvent
	OpportunityID uuid.UUID `json:"opportunityId"`
	Status        string    `json:"status"`
	Reason        string    `json:"reason,omitempty"`
}

func (e OpportunityConcluded) EventName() string { return "opportunities.concluded" }

// OpportunitiesDistributed is published at the end of a distribution run.
type OpportunitiesDistributed struct {
	BaseEvent
	Assigned   int `json:"assigned"`
	Assistants int `json:"assistants"`
}

func (e OpportunitiesDistributed) EventName() string { return "opportunities.distributed" }
