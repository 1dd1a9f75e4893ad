package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role values a user may hold. Only assistants receive distributed opportunities.
const (
	RoleAdmin     = "ADMIN"
	RoleOwner     = "OWNER"
	RoleManager   = "MANAGER"
	RoleAssistant = "ASSISTANT"
)

// User is a staff record.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         string
	DealershipID *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateParams contains parameters for creating a user.
type CreateParams struct {
	Email        string
	Name         string
	PasswordHash string
	Role         string
	DealershipID *uuid.UUID
}

// UpdateParams contains the partial update for an existing user.
// Nil fields are left unchanged.
type UpdateParams struct {
	ID           uuid.UUID
	Email        *string
	Name         *string
	PasswordHash *string
	Role         *string
	DealershipID *uuid.UUID
}

// Reader provides read operations for users.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	// ListByRole returns users with the given role in a stable order
	// (oldest first), so distribution tie-breaking is deterministic.
	ListByRole(ctx context.Context, role string) ([]User, error)
	ListByDealership(ctx context.Context, dealershipID uuid.UUID) ([]User, error)
}

// Writer provides write operations for users.
type Writer interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	Update(ctx context.Context, params UpdateParams) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository combines all user directory operations.
type Repository interface {
	Reader
	Writer
}
