package domain

import (
	"testing"
	"time"

	"mobiauto_backend/platform/apperr"

	"github.com/google/uuid"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"NEW", StatusNew, false},
		{"new", StatusNew, false},
		{"In_Progress", StatusInProgress, false},
		{"  completed ", StatusCompleted, false},
		{"CANCELLED", StatusCancelled, false},
		{"bogus", "", true},
		{"", "", true},
		{"DONE", "", true},
	}

	for _, tc := range cases {
		got, err := ParseStatus(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q) expected error, got %q", tc.input, got)
				continue
			}
			if !apperr.Is(err, apperr.KindValidation) {
				t.Errorf("ParseStatus(%q) expected validation error, got %v", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	if StatusNew.Terminal() || StatusInProgress.Terminal() {
		t.Fatal("NEW and IN_PROGRESS must not be terminal")
	}
	if !StatusCompleted.Terminal() || !StatusCancelled.Terminal() {
		t.Fatal("COMPLETED and CANCELLED must be terminal")
	}
}

func TestApplyStatusCompletedStampsConclusionDate(t *testing.T) {
	opp := Opportunity{ID: uuid.New(), Status: StatusInProgress}
	reason := "vehicle sold"
	now := time.Now()

	ApplyStatus(&opp, StatusCompleted, &reason, now)

	if opp.Status != StatusCompleted {
		t.Fatalf("expected status COMPLETED, got %s", opp.Status)
	}
	if opp.ConclusionReason == nil || *opp.ConclusionReason != reason {
		t.Fatalf("expected conclusion reason %q, got %v", reason, opp.ConclusionReason)
	}
	if opp.ConclusionDate == nil || !opp.ConclusionDate.Equal(now) {
		t.Fatalf("expected conclusion date %v, got %v", now, opp.ConclusionDate)
	}
}

func TestApplyStatusCancelledDoesNotStampConclusionDate(t *testing.T) {
	opp := Opportunity{ID: uuid.New(), Status: StatusInProgress}
	reason := "customer gave up"

	ApplyStatus(&opp, StatusCancelled, &reason, time.Now())

	if opp.Status != StatusCancelled {
		t.Fatalf("expected status CANCELLED, got %s", opp.Status)
	}
	if opp.ConclusionDate != nil {
		t.Fatalf("CANCELLED must not stamp a conclusion date, got %v", opp.ConclusionDate)
	}
	if opp.ConclusionReason == nil || *opp.ConclusionReason != reason {
		t.Fatalf("expected conclusion reason %q, got %v", reason, opp.ConclusionReason)
	}
}

func TestApplyStatusWritesReasonForNonTerminalStatus(t *testing.T) {
	opp := Opportunity{ID: uuid.New(), Status: StatusNew}
	reason := "early note"

	ApplyStatus(&opp, StatusInProgress, &reason, time.Now())

	if opp.ConclusionReason == nil || *opp.ConclusionReason != reason {
		t.Fatalf("reason must be written even for non-terminal statuses, got %v", opp.ConclusionReason)
	}
	if opp.ConclusionDate != nil {
		t.Fatalf("non-terminal status must not stamp a conclusion date")
	}
}

func TestAssignOverwritesPreviousAssignment(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	opp := Opportunity{ID: uuid.New(), Status: StatusNew}

	t1 := time.Now().Add(-time.Hour)
	Assign(&opp, first, t1)
	if !opp.Assigned() || *opp.AssignedUserID != first {
		t.Fatal("expected first assignment to stick")
	}

	t2 := time.Now()
	Assign(&opp, second, t2)
	if *opp.AssignedUserID != second {
		t.Fatalf("expected reassignment to %s, got %s", second, *opp.AssignedUserID)
	}
	if !opp.AssignedDate.Equal(t2) {
		t.Fatalf("expected assigned date to be overwritten, got %v", opp.AssignedDate)
	}
	if opp.Status != StatusNew {
		t.Fatalf("assignment must not change status, got %s", opp.Status)
	}
}
