package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Dealership is a registered store.
type Dealership struct {
	ID            uuid.UUID
	CNPJ          string
	CorporateName string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateParams contains parameters for registering a dealership.
type CreateParams struct {
	CNPJ          string
	CorporateName string
}

// UpdateParams contains the partial update for a dealership.
// Nil fields are left unchanged.
type UpdateParams struct {
	ID            uuid.UUID
	CNPJ          *string
	CorporateName *string
}

// Repository provides dealership persistence.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Dealership, error)
	List(ctx context.Context) ([]Dealership, error)
	Create(ctx context.Context, params CreateParams) (Dealership, error)
	Update(ctx context.Context, params UpdateParams) (Dealership, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
