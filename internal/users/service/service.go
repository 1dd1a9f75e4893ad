package service

import (
	"context"
	"fmt"

	"mobiauto_backend/internal/users/repository"
	"mobiauto_backend/internal/users/transport"
	"mobiauto_backend/platform/apperr"
	"mobiauto_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service implements the user directory use cases.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new users service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// GetByEmail retrieves a single user by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (transport.UserResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return transport.UserResponse{}, err
	}
	return transport.ToUserResponse(user), nil
}

// List retrieves every user in the directory.
func (s *Service) List(ctx context.Context) ([]transport.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return transport.ToUserResponses(users), nil
}

// ListByDealership retrieves the users affiliated with a dealership.
func (s *Service) ListByDealership(ctx context.Context, dealershipID uuid.UUID) ([]transport.UserResponse, error) {
	users, err := s.repo.ListByDealership(ctx, dealershipID)
	if err != nil {
		return nil, err
	}
	return transport.ToUserResponses(users), nil
}

// Create registers a new user with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, req transport.CreateUserRequest) (transport.UserResponse, error) {
	hash, err := hashPassword(req.Password)
	if err != nil {
		return transport.UserResponse{}, err
	}

	user, err := s.repo.Create(ctx, repository.CreateParams{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
		DealershipID: req.DealershipID,
	})
	if err != nil {
		return transport.UserResponse{}, err
	}

	s.log.Info("user created", "user_id", user.ID, "role", user.Role)
	return transport.ToUserResponse(user), nil
}

// Update applies a partial update to the user identified by email.
func (s *Service) Update(ctx context.Context, email string, req transport.UpdateUserRequest) (transport.UserResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return transport.UserResponse{}, err
	}

	params := repository.UpdateParams{
		ID:    user.ID,
		Email: req.Email,
		Name:  req.Name,
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return transport.UserResponse{}, err
		}
		params.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, params)
	if err != nil {
		return transport.UserResponse{}, err
	}
	return transport.ToUserResponse(updated), nil
}

// UpdateRole changes the role of the user identified by email.
func (s *Service) UpdateRole(ctx context.Context, email, role string) (transport.UserResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return transport.UserResponse{}, err
	}

	updated, err := s.repo.Update(ctx, repository.UpdateParams{ID: user.ID, Role: &role})
	if err != nil {
		return transport.UserResponse{}, err
	}

	s.log.Info("user role changed", "user_id", user.ID, "role", role)
	return transport.ToUserResponse(updated), nil
}

// Delete removes the user identified by email.
func (s *Service) Delete(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, user.ID)
}

// VerifyCredentials checks an email and password pair and returns the
// matching user. Unknown emails and wrong passwords are indistinguishable
// to the caller.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (repository.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return repository.User{}, apperr.Unauthorized("invalid credentials")
		}
		return repository.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return repository.User{}, apperr.Unauthorized("invalid credentials")
	}
	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
