package repository

import (
	"context"
	"errors"
	"fmt"

	"mobiauto_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dealershipNotFoundMessage = "dealership not found"
	cnpjInUseMessage          = "CNPJ is already registered"

	uniqueViolationCode = "23505"
)

const dealershipColumns = `
	id, cnpj, corporate_name, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dealerships repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// GetByID retrieves a dealership by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Dealership, error) {
	query := `SELECT` + dealershipColumns + ` FROM dealerships WHERE id = $1`

	dealership, err := scanDealership(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Dealership{}, apperr.NotFound(dealershipNotFoundMessage)
		}
		return Dealership{}, fmt.Errorf("get dealership by id: %w", err)
	}
	return dealership, nil
}

// List retrieves all dealerships, oldest first.
func (r *Repo) List(ctx context.Context) ([]Dealership, error) {
	query := `SELECT` + dealershipColumns + ` FROM dealerships ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dealerships: %w", err)
	}
	defer rows.Close()

	dealerships := make([]Dealership, 0)
	for rows.Next() {
		dealership, err := scanDealership(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dealership: %w", err)
		}
		dealerships = append(dealerships, dealership)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dealership rows: %w", err)
	}
	return dealerships, nil
}

// Create registers a new dealership. A duplicate CNPJ yields a conflict.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Dealership, error) {
	query := `
		INSERT INTO dealerships (id, cnpj, corporate_name)
		VALUES ($1, $2, $3)
		RETURNING` + dealershipColumns

	dealership, err := scanDealership(r.pool.QueryRow(ctx, query, uuid.New(), params.CNPJ, params.CorporateName))
	if err != nil {
		if isUniqueViolation(err) {
			return Dealership{}, apperr.Conflict(cnpjInUseMessage)
		}
		return Dealership{}, fmt.Errorf("create dealership: %w", err)
	}
	return dealership, nil
}

// Update applies a partial update to an existing dealership.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Dealership, error) {
	query := `
		UPDATE dealerships SET
			cnpj = COALESCE($2, cnpj),
			corporate_name = COALESCE($3, corporate_name),
			updated_at = now()
		WHERE id = $1
		RETURNING` + dealershipColumns

	dealership, err := scanDealership(r.pool.QueryRow(ctx, query, params.ID, params.CNPJ, params.CorporateName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Dealership{}, apperr.NotFound(dealershipNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return Dealership{}, apperr.Conflict(cnpjInUseMessage)
		}
		return Dealership{}, fmt.Errorf("update dealership: %w", err)
	}
	return dealership, nil
}

// Delete removes a dealership permanently.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dealerships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dealership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(dealershipNotFoundMessage)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDealership(row rowScanner) (Dealership, error) {
	var d Dealership
	err := row.Scan(&d.ID, &d.CNPJ, &d.CorporateName, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}
