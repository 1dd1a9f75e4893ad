package repository

import (
	"context"

	"mobiauto_backend/internal/opportunities/domain"

	"github.com/google/uuid"
)

// Reader provides read operations for opportunities.
type Reader interface {
	// GetByID returns the opportunity or a not-found error.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Opportunity, error)
	// List returns every opportunity, oldest first.
	List(ctx context.Context) ([]domain.Opportunity, error)
	// ListUnassigned returns opportunities without an assignee, oldest first.
	ListUnassigned(ctx context.Context) ([]domain.Opportunity, error)
	// ListByAssignee returns opportunities assigned to the given user.
	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]domain.Opportunity, error)
	// AssignmentCounts returns the number of opportunities per assignee.
	// Users without any assignment are absent from the map.
	AssignmentCounts(ctx context.Context) (map[uuid.UUID]int, error)
}

// Writer provides write operations for opportunities.
type Writer interface {
	// Create inserts a new opportunity and returns the stored row.
	Create(ctx context.Context, opp domain.Opportunity) (domain.Opportunity, error)
	// Save overwrites all mutable columns of an existing opportunity.
	Save(ctx context.Context, opp domain.Opportunity) (domain.Opportunity, error)
	// Delete removes the opportunity or returns a not-found error.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository combines all opportunity store operations.
type Repository interface {
	Reader
	Writer
}
