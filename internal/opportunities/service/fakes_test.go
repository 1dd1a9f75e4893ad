package service

import (
	"context"
	"sync"
	"time"

	"mobiauto_backend/internal/opportunities/domain"
	"mobiauto_backend/platform/apperr"
	"mobiauto_backend/platform/logger"

	"github.com/google/uuid"
)

func testLogger() *logger.Logger { return logger.New("development") }

// fakeRepo is an in-memory opportunity store preserving insertion order.
type fakeRepo struct {
	mu    sync.Mutex
	order []uuid.UUID
	store map[uuid.UUID]domain.Opportunity

	// Number of writes observed, for no-mutation assertions.
	saves   int
	deletes int

	// Optional hooks for interleaving tests.
	beforeCounts     func()
	unassignedsServe func([]domain.Opportunity) []domain.Opportunity
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{store: make(map[uuid.UUID]domain.Opportunity)}
}

func (r *fakeRepo) seed(opp domain.Opportunity) domain.Opportunity {
	r.mu.Lock()
	defer r.mu.Unlock()
	if opp.ID == uuid.Nil {
		opp.ID = uuid.New()
	}
	if opp.CreatedAt.IsZero() {
		opp.CreatedAt = time.Now().Add(-time.Duration(len(r.order)) * time.Minute)
	}
	r.order = append(r.order, opp.ID)
	r.store[opp.ID] = opp
	return opp
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	opp, ok := r.store[id]
	if !ok {
		return domain.Opportunity{}, apperr.NotFound("opportunity not found")
	}
	return opp, nil
}

func (r *fakeRepo) List(_ context.Context) ([]domain.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(), nil
}

func (r *fakeRepo) ListUnassigned(_ context.Context) ([]domain.Opportunity, error) {
	r.mu.Lock()
	unassigned := make([]domain.Opportunity, 0)
	for _, id := range r.order {
		if opp := r.store[id]; !opp.Assigned() {
			unassigned = append(unassigned, opp)
		}
	}
	serve := r.unassignedsServe
	r.mu.Unlock()

	if serve != nil {
		return serve(unassigned), nil
	}
	return unassigned, nil
}

func (r *fakeRepo) ListByAssignee(_ context.Context, userID uuid.UUID) ([]domain.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]domain.Opportunity, 0)
	for _, id := range r.order {
		opp := r.store[id]
		if opp.AssignedUserID != nil && *opp.AssignedUserID == userID {
			items = append(items, opp)
		}
	}
	return items, nil
}

func (r *fakeRepo) AssignmentCounts(_ context.Context) (map[uuid.UUID]int, error) {
	r.mu.Lock()
	counts := make(map[uuid.UUID]int)
	for _, opp := range r.store {
		if opp.AssignedUserID != nil {
			counts[*opp.AssignedUserID]++
		}
	}
	r.mu.Unlock()
	// The barrier must sit after the snapshot is read so that every caller
	// holds its counts before any caller proceeds to assign.
	if r.beforeCounts != nil {
		r.beforeCounts()
	}
	return counts, nil
}

func (r *fakeRepo) Create(_ context.Context, opp domain.Opportunity) (domain.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	opp.CreatedAt = time.Now()
	opp.UpdatedAt = opp.CreatedAt
	r.order = append(r.order, opp.ID)
	r.store[opp.ID] = opp
	return opp, nil
}

func (r *fakeRepo) Save(_ context.Context, opp domain.Opportunity) (domain.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[opp.ID]; !ok {
		return domain.Opportunity{}, apperr.NotFound("opportunity not found")
	}
	opp.UpdatedAt = time.Now()
	r.store[opp.ID] = opp
	r.saves++
	return opp, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[id]; !ok {
		return apperr.NotFound("opportunity not found")
	}
	delete(r.store, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.deletes++
	return nil
}

func (r *fakeRepo) snapshot() []domain.Opportunity {
	items := make([]domain.Opportunity, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.store[id])
	}
	return items
}

func (r *fakeRepo) assignedCount(userID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, opp := range r.store {
		if opp.AssignedUserID != nil && *opp.AssignedUserID == userID {
			count++
		}
	}
	return count
}

// fakeDirectory serves a fixed pool of users in declaration order.
type fakeDirectory struct {
	users []User
}

func (d *fakeDirectory) UserByID(_ context.Context, id uuid.UUID) (User, error) {
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, apperr.NotFound("assistant not found")
}

func (d *fakeDirectory) ListAssistants(_ context.Context) ([]User, error) {
	assistants := make([]User, 0)
	for _, u := range d.users {
		if u.Role == "ASSISTANT" {
			assistants = append(assistants, u)
		}
	}
	return assistants, nil
}
