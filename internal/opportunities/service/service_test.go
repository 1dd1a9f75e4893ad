package service

import (
	"context"
	"testing"
	"time"

	"mobiauto_backend/internal/opportunities/domain"
	"mobiauto_backend/internal/opportunities/transport"
	"mobiauto_backend/platform/apperr"

	"github.com/google/uuid"
)

func newTestService(repo *fakeRepo, dir *fakeDirectory) *Service {
	return New(repo, dir, nil, nil, testLogger())
}

func sampleRequest() transport.OpportunityRequest {
	return transport.OpportunityRequest{
		CustomerName:   "Ana Souza",
		CustomerEmail:  "ana@example.com",
		CustomerPhone:  "+5511912345678",
		VehicleBrand:   "Fiat",
		VehicleModel:   "Argo",
		VehicleVersion: "Drive 1.0",
		VehicleYear:    2023,
	}
}

func TestCreateForcesStatusNew(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeDirectory{})

	req := sampleRequest()
	req.Status = "COMPLETED" // must be ignored

	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != string(domain.StatusNew) {
		t.Fatalf("expected status NEW, got %s", created.Status)
	}
	if created.AssignedUserID != nil {
		t.Fatal("new opportunity must not have an assignee")
	}
	if created.AssignedDate != nil || created.ConclusionDate != nil {
		t.Fatal("new opportunity must not carry assignment or conclusion dates")
	}
}

func TestAssignSetsUserAndDate(t *testing.T) {
	repo := newFakeRepo()
	assistant := User{ID: uuid.New(), Name: "Bia", Email: "bia@example.com", Role: "ASSISTANT"}
	dir := &fakeDirectory{users: []User{assistant}}
	svc := newTestService(repo, dir)

	opp := repo.seed(domain.Opportunity{Status: domain.StatusNew})

	assigned, err := svc.Assign(context.Background(), opp.ID, assistant.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.AssignedUserID == nil || *assigned.AssignedUserID != assistant.ID {
		t.Fatalf("expected assignee %s, got %v", assistant.ID, assigned.AssignedUserID)
	}
	if assigned.AssignedDate == nil {
		t.Fatal("expected assigned date to be set")
	}
	if assigned.Status != string(domain.StatusNew) {
		t.Fatalf("assignment must not change status, got %s", assigned.Status)
	}
}

func TestAssignUnknownAssistantFails(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeDirectory{})

	opp := repo.seed(domain.Opportunity{Status: domain.StatusNew})

	_, err := svc.Assign(context.Background(), opp.ID, uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.saves != 0 {
		t.Fatalf("expected no writes, got %d", repo.saves)
	}
}

func TestAssignUnknownOpportunityFails(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeDirectory{})

	_, err := svc.Assign(context.Background(), uuid.New(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStatusCompletedSetsConclusion(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeDirectory{})

	opp := repo.seed(domain.Opportunity{Status: domain.StatusInProgress})

	reason := "vehicle delivered"
	updated, err := svc.UpdateStatus(context.Background(), opp.ID, transport.StatusUpdateRequest{
		Status:           "completed",
		ConclusionReason: &reason,
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != string(domain.StatusCompleted) {
		t.Fatalf("expected COMPLETED, got %s", updated.Status)
	}
	if updated.ConclusionDate == nil {
		t.Fatal("expected conclusion date to be set")
	}
	if updated.ConclusionReason == nil || *updated.ConclusionReason != reason {
		t.Fatalf("expected reason %q, got %v", reason, updated.ConclusionReason)
	}
}

func TestUpdateStatusCancelledLeavesConclusionDateEmpty(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeDirectory{})

	opp := repo.seed(domain.Opportunity{Status: domain.StatusInProgress})

	updated, err := svc.UpdateStatus(context.Background(), opp.ID, transport.StatusUpdateRequest{
		Status: "CANCELLED",
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.ConclusionDate != nil {
		t.Fatalf("CANCELLED must not stamp conclusion date, got %v", *updated.ConclusionDate)
	}
}

func TestUpdateStatusInvalidValueLeavesOpportunityUnmodified(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeDirectory{})

	opp := repo.seed(domain.Opportunity{Status: domain.StatusNew})

	_, err := svc.UpdateStatus(context.Background(), opp.ID, transport.StatusUpdateRequest{Status: "bogus"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.saves != 0 {
		t.Fatalf("expected no writes, got %d", repo.saves)
	}

	current, err := repo.GetByID(context.Background(), opp.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.Status != domain.StatusNew || current.ConclusionReason != nil {
		t.Fatal("opportunity must be unmodified after an invalid status update")
	}
}

func TestUpdateReplacesDescriptiveFieldsOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeDirectory{})

	assistantID := uuid.New()
	assignedAt := time.Now().Add(-time.Hour)
	opp := repo.seed(domain.Opportunity{
		Status:         domain.StatusInProgress,
		CustomerName:   "Old Name",
		AssignedUserID: &assistantID,
		AssignedDate:   &assignedAt,
	})

	req := sampleRequest()
	updated, err := svc.Update(context.Background(), opp.ID, req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CustomerName != req.CustomerName {
		t.Fatalf("expected customer name %q, got %q", req.CustomerName, updated.CustomerName)
	}
	if updated.Status != string(domain.StatusInProgress) {
		t.Fatalf("update must not touch status, got %s", updated.Status)
	}
	if updated.AssignedUserID == nil || *updated.AssignedUserID != assistantID {
		t.Fatal("update must not touch the assignment")
	}
}

func TestUpdateMissingOpportunityFails(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeDirectory{})

	_, err := svc.Update(context.Background(), uuid.New(), sampleRequest())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteMissingOpportunityFailsWithoutMutation(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeDirectory{})

	repo.seed(domain.Opportunity{Status: domain.StatusNew})

	err := svc.Delete(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.deletes != 0 {
		t.Fatalf("expected no deletes, got %d", repo.deletes)
	}
	if len(repo.snapshot()) != 1 {
		t.Fatal("store must be unchanged")
	}
}

func TestGetByIDIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeDirectory{})

	opp := repo.seed(domain.Opportunity{Status: domain.StatusNew, CustomerName: "Carlos"})

	first, err := svc.GetByID(context.Background(), opp.ID)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	second, err := svc.GetByID(context.Background(), opp.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if first != second {
		t.Fatalf("expected equal representations, got %+v and %+v", first, second)
	}
}

func TestListByAssigneeReturnsOnlyTheirOpportunities(t *testing.T) {
	repo := newFakeRepo()
	assistant := User{ID: uuid.New(), Name: "Bia", Email: "bia@example.com", Role: "ASSISTANT"}
	other := User{ID: uuid.New(), Name: "Davi", Email: "davi@example.com", Role: "ASSISTANT"}
	svc := newTestService(repo, &fakeDirectory{users: []User{assistant, other}})

	mine := repo.seed(domain.Opportunity{Status: domain.StatusInProgress, AssignedUserID: &assistant.ID})
	repo.seed(domain.Opportunity{Status: domain.StatusInProgress, AssignedUserID: &other.ID})
	repo.seed(domain.Opportunity{Status: domain.StatusNew})

	result, err := svc.ListByAssignee(context.Background(), assistant.ID)
	if err != nil {
		t.Fatalf("list by assignee: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(result))
	}
	if result[0].ID != mine.ID {
		t.Fatalf("expected opportunity %s, got %s", mine.ID, result[0].ID)
	}
}

func TestListByAssigneeEmptyForIdleAssistant(t *testing.T) {
	repo := newFakeRepo()
	assistant := User{ID: uuid.New(), Name: "Bia", Email: "bia@example.com", Role: "ASSISTANT"}
	svc := newTestService(repo, &fakeDirectory{users: []User{assistant}})

	repo.seed(domain.Opportunity{Status: domain.StatusNew})

	result, err := svc.ListByAssignee(context.Background(), assistant.ID)
	if err != nil {
		t.Fatalf("list by assignee: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected no opportunities, got %d", len(result))
	}
}

func TestListByAssigneeUnknownAssistantFails(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeDirectory{})

	_, err := svc.ListByAssignee(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateNormalizesCustomerPhone(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeDirectory{})

	req := sampleRequest()
	req.CustomerPhone = "11 91234-5678"

	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.CustomerPhone != "+5511912345678" {
		t.Fatalf("expected normalized phone, got %q", created.CustomerPhone)
	}
}
