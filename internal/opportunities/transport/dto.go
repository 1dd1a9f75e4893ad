package transport

import "github.com/google/uuid"

// OpportunityRequest contains the descriptive fields for creating or fully
// replacing an opportunity. A caller-supplied status is accepted but ignored
// on creation: every opportunity starts as NEW.
type OpportunityRequest struct {
	CustomerName   string `json:"name" validate:"required,min=1,max=120"`
	CustomerEmail  string `json:"email" validate:"required,email"`
	CustomerPhone  string `json:"phone" validate:"required,min=3,max=40"`
	VehicleBrand   string `json:"brand" validate:"required,min=1,max=60"`
	VehicleModel   string `json:"model" validate:"required,min=1,max=60"`
	VehicleVersion string `json:"version" validate:"required,min=1,max=60"`
	VehicleYear    int    `json:"yearModel" validate:"required,min=1900,max=2100"`
	Status         string `json:"status,omitempty"`
}

// AssignRequest names the assistant an opportunity is assigned to.
type AssignRequest struct {
	AssistantID uuid.UUID `json:"assistantId" validate:"required"`
}

// StatusUpdateRequest changes the lifecycle status of an opportunity.
type StatusUpdateRequest struct {
	Status           string  `json:"status" validate:"required"`
	ConclusionReason *string `json:"conclusionReason,omitempty" validate:"omitempty,max=500"`
}

// OpportunityResponse represents an opportunity in API responses.
type OpportunityResponse struct {
	ID               uuid.UUID  `json:"id"`
	CustomerName     string     `json:"name"`
	CustomerEmail    string     `json:"email"`
	CustomerPhone    string     `json:"phone"`
	VehicleBrand     string     `json:"brand"`
	VehicleModel     string     `json:"model"`
	VehicleVersion   string     `json:"version"`
	VehicleYear      int        `json:"yearModel"`
	Status           string     `json:"status"`
	ConclusionReason *string    `json:"conclusionReason,omitempty"`
	AssignedUserID   *uuid.UUID `json:"assignedUserId,omitempty"`
	AssignedDate     *string    `json:"assignedDate,omitempty"`
	ConclusionDate   *string    `json:"conclusionDate,omitempty"`
	CreatedAt        string     `json:"createdAt"`
	UpdatedAt        string     `json:"updatedAt"`
}
