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
	userNotFoundMessage = "user not found"
	emailInUseMessage   = "email is already in use"

	uniqueViolationCode = "23505"
)

const userColumns = `
	id, email, name, password_hash, role, dealership_id, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new users repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a user by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// List retrieves all users, oldest first.
func (r *Repo) List(ctx context.Context) ([]User, error) {
	query := `SELECT` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// ListByRole retrieves users with the given role, oldest first.
func (r *Repo) ListByRole(ctx context.Context, role string) ([]User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// ListByDealership retrieves users affiliated with the given dealership.
func (r *Repo) ListByDealership(ctx context.Context, dealershipID uuid.UUID) ([]User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE dealership_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, dealershipID)
	if err != nil {
		return nil, fmt.Errorf("list users by dealership: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Create inserts a new user. A duplicate email yields a conflict error.
func (r *Repo) Create(ctx context.Context, params CreateParams) (User, error) {
	query := `
		INSERT INTO users (id, email, name, password_hash, role, dealership_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query,
		uuid.New(), params.Email, params.Name, params.PasswordHash, params.Role, params.DealershipID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, apperr.Conflict(emailInUseMessage)
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Update applies a partial update to an existing user.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (User, error) {
	query := `
		UPDATE users SET
			email = COALESCE($2, email),
			name = COALESCE($3, name),
			password_hash = COALESCE($4, password_hash),
			role = COALESCE($5, role),
			dealership_id = COALESCE($6, dealership_id),
			updated_at = now()
		WHERE id = $1
		RETURNING` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query,
		params.ID, params.Email, params.Name, params.PasswordHash, params.Role, params.DealershipID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return User{}, apperr.Conflict(emailInUseMessage)
		}
		return User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes a user permanently.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(userNotFoundMessage)
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

func scanUser(row rowScanner) (User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.Role, &user.DealershipID, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func scanUsers(rows pgx.Rows) ([]User, error) {
	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user rows: %w", err)
	}
	return users, nil
}
