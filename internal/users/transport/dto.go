package transport

import (
	"time"

	"mobiauto_backend/internal/users/repository"

	"github.com/google/uuid"
)

// CreateUserRequest is the payload for registering a new user.
type CreateUserRequest struct {
	Email        string     `json:"email" validate:"required,email"`
	Name         string     `json:"name" validate:"required"`
	Password     string     `json:"password" validate:"required,min=8"`
	Role         string     `json:"role" validate:"required,oneof=ADMIN OWNER MANAGER ASSISTANT"`
	DealershipID *uuid.UUID `json:"dealershipId"`
}

// UpdateUserRequest is the payload for a partial user update. Absent
// fields are left unchanged.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// UpdateRoleRequest changes a user's role within their dealership.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN OWNER MANAGER ASSISTANT"`
}

// UserResponse is the API representation of a user. The password hash
// is never serialized.
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	DealershipID *uuid.UUID `json:"dealershipId,omitempty"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

// ToUserResponse maps a stored user onto the API shape.
func ToUserResponse(u repository.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		DealershipID: u.DealershipID,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    u.UpdatedAt.Format(time.RFC3339),
	}
}

// ToUserResponses maps a slice of users.
func ToUserResponses(users []repository.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
