package service

import (
	"context"

	"mobiauto_backend/internal/events"
	"mobiauto_backend/platform/logger"
)

// Observer listens for opportunity lifecycle events and records them in the
// structured log, giving operators an audit trail of conclusions and
// distribution runs without querying the store.
type Observer struct {
	log *logger.Logger
}

// NewObserver creates an observer and subscribes it to the event bus.
func NewObserver(bus events.Bus, log *logger.Logger) *Observer {
	o := &Observer{log: log}
	bus.Subscribe(events.OpportunityConcluded{}.EventName(), events.HandlerFunc(o.handleConcluded))
	bus.Subscribe(events.OpportunitiesDistributed{}.EventName(), events.HandlerFunc(o.handleDistributed))
	return o
}

func (o *Observer) handleConcluded(_ context.Context, event events.Event) error {
	concluded, ok := event.(events.OpportunityConcluded)
	if !ok {
		return nil
	}

	o.log.Info("opportunity concluded",
		"opportunity_id", concluded.OpportunityID,
		"status", concluded.Status,
		"reason", concluded.Reason,
	)
	return nil
}

func (o *Observer) handleDistributed(_ context.Context, event events.Event) error {
	distributed, ok := event.(events.OpportunitiesDistributed)
	if !ok {
		return nil
	}

	o.log.Info("opportunities distributed",
		"assigned", distributed.Assigned,
		"assistants", distributed.Assistants,
	)
	return nil
}
