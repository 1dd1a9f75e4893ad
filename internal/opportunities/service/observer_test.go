package service

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"mobiauto_backend/internal/events"
	"mobiauto_backend/internal/opportunities/domain"
	"mobiauto_backend/platform/logger"

	"github.com/google/uuid"
)

func captureLogger(buf *bytes.Buffer) *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(buf, nil))}
}

func TestObserverLogsConcludedEvents(t *testing.T) {
	var buf bytes.Buffer
	bus := events.NewInMemoryBus(testLogger())
	NewObserver(bus, captureLogger(&buf))

	oppID := uuid.New()
	err := bus.PublishSync(context.Background(), events.OpportunityConcluded{
		BaseEvent:     events.NewBaseEvent(),
		OpportunityID: oppID,
		Status:        "COMPLETED",
		Reason:        "vehicle delivered",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	logged := buf.String()
	if !strings.Contains(logged, "opportunity concluded") {
		t.Fatalf("expected conclusion log entry, got %q", logged)
	}
	if !strings.Contains(logged, oppID.String()) || !strings.Contains(logged, "COMPLETED") {
		t.Fatalf("expected opportunity ID and status in log entry, got %q", logged)
	}
}

func TestObserverLogsDistributionRuns(t *testing.T) {
	var buf bytes.Buffer
	bus := events.NewInMemoryBus(testLogger())
	NewObserver(bus, captureLogger(&buf))

	err := bus.PublishSync(context.Background(), events.OpportunitiesDistributed{
		BaseEvent:  events.NewBaseEvent(),
		Assigned:   3,
		Assistants: 2,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	logged := buf.String()
	if !strings.Contains(logged, "opportunities distributed") {
		t.Fatalf("expected distribution log entry, got %q", logged)
	}
	if !strings.Contains(logged, "assigned=3") || !strings.Contains(logged, "assistants=2") {
		t.Fatalf("expected run counts in log entry, got %q", logged)
	}
}

func TestDistributeDeliversSummaryBeforeReturning(t *testing.T) {
	repo := newFakeRepo()
	a := User{ID: uuid.New(), Name: "A", Role: "ASSISTANT"}
	bus := events.NewInMemoryBus(testLogger())
	svc := New(repo, &fakeDirectory{users: []User{a}}, bus, nil, testLogger())

	var mu sync.Mutex
	var summaries []events.OpportunitiesDistributed
	bus.Subscribe(events.OpportunitiesDistributed{}.EventName(), events.HandlerFunc(
		func(_ context.Context, event events.Event) error {
			mu.Lock()
			defer mu.Unlock()
			summaries = append(summaries, event.(events.OpportunitiesDistributed))
			return nil
		}))

	repo.seed(domain.Opportunity{Status: domain.StatusNew})

	if _, err := svc.Distribute(context.Background()); err != nil {
		t.Fatalf("distribute: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(summaries) != 1 {
		t.Fatalf("expected the run summary to be delivered before the run returns, got %d events", len(summaries))
	}
	if summaries[0].Assigned != 1 || summaries[0].Assistants != 1 {
		t.Fatalf("expected 1 assigned across 1 assistant, got %+v", summaries[0])
	}
}

func TestDistributeSurvivesFailingSummarySubscriber(t *testing.T) {
	repo := newFakeRepo()
	a := User{ID: uuid.New(), Name: "A", Role: "ASSISTANT"}
	bus := events.NewInMemoryBus(testLogger())
	svc := New(repo, &fakeDirectory{users: []User{a}}, bus, nil, testLogger())

	bus.Subscribe(events.OpportunitiesDistributed{}.EventName(), events.HandlerFunc(
		func(context.Context, events.Event) error {
			return context.DeadlineExceeded
		}))

	opp := repo.seed(domain.Opportunity{Status: domain.StatusNew})

	result, err := svc.Distribute(context.Background())
	if err != nil {
		t.Fatalf("a failing subscriber must not fail the run: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected full set of 1 opportunity, got %d", len(result))
	}

	saved, err := repo.GetByID(context.Background(), opp.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if saved.AssignedUserID == nil || *saved.AssignedUserID != a.ID {
		t.Fatalf("expected opportunity assigned to A, got %v", saved.AssignedUserID)
	}
}
