package service

import (
	"context"
	"time"

	"mobiauto_backend/internal/events"
	"mobiauto_backend/internal/opportunities/domain"
	"mobiauto_backend/internal/opportunities/transport"
	"mobiauto_backend/platform/apperr"

	"github.com/google/uuid"
)

const noAssistantsMessage = "no assistants available"

// Distribute assigns every unassigned opportunity to the currently
// least-loaded assistant and returns the full opportunity set.
//
// The load per assistant is seeded once from the store and incremented
// locally as the run assigns, so each pick observes every assignment made
// earlier in the same run. Each assignment is persisted immediately; a
// persistence failure aborts the run without rolling back the opportunities
// already assigned.
//
// When a run lock is configured the run is serialized across processes;
// without one, concurrent runs may both pick the same least-loaded assistant.
func (s *Service) Distribute(ctx context.Context) ([]transport.OpportunityResponse, error) {
	if s.lock != nil {
		release, ok, err := s.lock.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Conflict("a distribution run is already in progress")
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.log.Error("release distribution lock", "error", err.Error())
			}
		}()
	}

	return s.distribute(ctx)
}

func (s *Service) distribute(ctx context.Context) ([]transport.OpportunityResponse, error) {
	start := time.Now()

	unassigned, err := s.repo.ListUnassigned(ctx)
	if err != nil {
		return nil, err
	}

	assistants, err := s.directory.ListAssistants(ctx)
	if err != nil {
		return nil, err
	}

	if len(unassigned) > 0 && len(assistants) == 0 {
		return nil, apperr.NotFound(noAssistantsMessage)
	}

	assigned := 0
	if len(unassigned) > 0 {
		loads, err := s.repo.AssignmentCounts(ctx)
		if err != nil {
			return nil, err
		}

		for _, opp := range unassigned {
			assistant := leastLoaded(assistants, loads)

			domain.Assign(&opp, assistant.ID, time.Now().UTC())
			saved, err := s.repo.Save(ctx, opp)
			if err != nil {
				return nil, err
			}

			loads[assistant.ID]++
			assigned++
			s.publishAssigned(ctx, saved, assistant)
		}
	}

	if s.bus != nil && assigned > 0 {
		// Delivered synchronously so the run summary is observed before the
		// response. Subscriber errors are logged, not propagated.
		err := s.bus.PublishSync(ctx, events.OpportunitiesDistributed{
			BaseEvent:  events.NewBaseEvent(),
			Assigned:   assigned,
			Assistants: len(assistants),
		})
		if err != nil {
			s.log.Error("distribution event delivery failed", "error", err.Error())
		}
	}
	s.log.DistributionRun(assigned, len(assistants), float64(time.Since(start).Milliseconds()))

	return s.List(ctx)
}

// leastLoaded picks the assistant with the strictly smallest load. Ties go to
// the first assistant in pool order.
func leastLoaded(assistants []User, loads map[uuid.UUID]int) User {
	best := assistants[0]
	for _, candidate := range assistants[1:] {
		if loads[candidate.ID] < loads[best.ID] {
			best = candidate
		}
	}
	return best
}
