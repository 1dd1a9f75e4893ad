package repository

import (
	"context"
	"errors"
	"fmt"

	"mobiauto_backend/internal/opportunities/domain"
	"mobiauto_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const opportunityNotFoundMessage = "opportunity not found"

const opportunityColumns = `
	id, customer_name, customer_email, customer_phone,
	vehicle_brand, vehicle_model, vehicle_version, vehicle_year,
	status, conclusion_reason, assigned_user_id, assigned_date,
	conclusion_date, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new opportunities repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves an opportunity by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Opportunity, error) {
	query := `SELECT` + opportunityColumns + `
		FROM opportunities
		WHERE id = $1`

	opp, err := scanOpportunity(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Opportunity{}, apperr.NotFound(opportunityNotFoundMessage)
		}
		return domain.Opportunity{}, fmt.Errorf("get opportunity by id: %w", err)
	}

	return opp, nil
}

// List retrieves all opportunities, oldest first.
func (r *Repo) List(ctx context.Context) ([]domain.Opportunity, error) {
	query := `SELECT` + opportunityColumns + `
		FROM opportunities
		ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	defer rows.Close()

	return scanOpportunities(rows)
}

// ListUnassigned retrieves opportunities without an assignee, oldest first.
// The order is deterministic so distribution runs are reproducible.
func (r *Repo) ListUnassigned(ctx context.Context) ([]domain.Opportunity, error) {
	query := `SELECT` + opportunityColumns + `
		FROM opportunities
		WHERE assigned_user_id IS NULL
		ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list unassigned opportunities: %w", err)
	}
	defer rows.Close()

	return scanOpportunities(rows)
}

// ListByAssignee retrieves opportunities assigned to the given user.
func (r *Repo) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]domain.Opportunity, error) {
	query := `SELECT` + opportunityColumns + `
		FROM opportunities
		WHERE assigned_user_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list opportunities by assignee: %w", err)
	}
	defer rows.Close()

	return scanOpportunities(rows)
}

// AssignmentCounts returns the current number of opportunities per assignee.
func (r *Repo) AssignmentCounts(ctx context.Context) (map[uuid.UUID]int, error) {
	query := `
		SELECT assigned_user_id, COUNT(*)
		FROM opportunities
		WHERE assigned_user_id IS NOT NULL
		GROUP BY assigned_user_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("assignment counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var userID uuid.UUID
		var count int
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("scan assignment count: %w", err)
		}
		counts[userID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("assignment counts rows: %w", err)
	}

	return counts, nil
}

// Create inserts a new opportunity.
func (r *Repo) Create(ctx context.Context, opp domain.Opportunity) (domain.Opportunity, error) {
	query := `
		INSERT INTO opportunities (
			id, customer_name, customer_email, customer_phone,
			vehicle_brand, vehicle_model, vehicle_version, vehicle_year,
			status, conclusion_reason, assigned_user_id, assigned_date, conclusion_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING` + opportunityColumns

	created, err := scanOpportunity(r.pool.QueryRow(ctx, query,
		opp.ID, opp.CustomerName, opp.CustomerEmail, opp.CustomerPhone,
		opp.VehicleBrand, opp.VehicleModel, opp.VehicleVersion, opp.VehicleYear,
		opp.Status, opp.ConclusionReason, opp.AssignedUserID, opp.AssignedDate,
		opp.ConclusionDate,
	))
	if err != nil {
		return domain.Opportunity{}, fmt.Errorf("create opportunity: %w", err)
	}

	return created, nil
}

// Save overwrites all mutable columns of an existing opportunity.
func (r *Repo) Save(ctx context.Context, opp domain.Opportunity) (domain.Opportunity, error) {
	query := `
		UPDATE opportunities SET
			customer_name = $2, customer_email = $3, customer_phone = $4,
			vehicle_brand = $5, vehicle_model = $6, vehicle_version = $7,
			vehicle_year = $8, status = $9, conclusion_reason = $10,
			assigned_user_id = $11, assigned_date = $12, conclusion_date = $13,
			updated_at = now()
		WHERE id = $1
		RETURNING` + opportunityColumns

	saved, err := scanOpportunity(r.pool.QueryRow(ctx, query,
		opp.ID, opp.CustomerName, opp.CustomerEmail, opp.CustomerPhone,
		opp.VehicleBrand, opp.VehicleModel, opp.VehicleVersion, opp.VehicleYear,
		opp.Status, opp.ConclusionReason, opp.AssignedUserID, opp.AssignedDate,
		opp.ConclusionDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Opportunity{}, apperr.NotFound(opportunityNotFoundMessage)
		}
		return domain.Opportunity{}, fmt.Errorf("save opportunity: %w", err)
	}

	return saved, nil
}

// Delete removes an opportunity permanently.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(opportunityNotFoundMessage)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOpportunity(row rowScanner) (domain.Opportunity, error) {
	var opp domain.Opportunity
	err := row.Scan(
		&opp.ID, &opp.CustomerName, &opp.CustomerEmail, &opp.CustomerPhone,
		&opp.VehicleBrand, &opp.VehicleModel, &opp.VehicleVersion, &opp.VehicleYear,
		&opp.Status, &opp.ConclusionReason, &opp.AssignedUserID, &opp.AssignedDate,
		&opp.ConclusionDate, &opp.CreatedAt, &opp.UpdatedAt,
	)
	return opp, err
}

func scanOpportunities(rows pgx.Rows) ([]domain.Opportunity, error) {
	opportunities := make([]domain.Opportunity, 0)
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan opportunity: %w", err)
		}
		opportunities = append(opportunities, opp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("opportunity rows: %w", err)
	}
	return opportunities, nil
}
