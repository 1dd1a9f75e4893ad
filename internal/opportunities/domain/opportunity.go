// Package domain holds the opportunity model and its status transition rules.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Opportunity is a tracked sales lead for a vehicle purchase.
type Opportunity struct {
	ID               uuid.UUID
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	VehicleBrand     string
	VehicleModel     string
	VehicleVersion   string
	VehicleYear      int
	Status           Status
	ConclusionReason *string
	AssignedUserID   *uuid.UUID
	AssignedDate     *time.Time
	ConclusionDate   *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Assigned reports whether the opportunity currently has an assignee.
func (o *Opportunity) Assigned() bool {
	return o.AssignedUserID != nil
}

// Assign attaches the opportunity to a user and stamps the assignment time,
// overwriting any previous assignment. Status is left untouched.
func Assign(o *Opportunity, userID uuid.UUID, now time.Time) {
	o.AssignedUserID = &userID
	o.AssignedDate = &now
}
