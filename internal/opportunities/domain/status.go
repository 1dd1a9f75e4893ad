package domain

import (
	"strings"
	"time"

	"mobiauto_backend/platform/apperr"
)

// Status is the lifecycle stage of an opportunity.
type Status string

const (
	// StatusNew is the initial status of every opportunity.
	StatusNew Status = "NEW"
	// StatusInProgress marks an opportunity being worked by an assistant.
	StatusInProgress Status = "IN_PROGRESS"
	// StatusCompleted is the successful terminal status.
	StatusCompleted Status = "COMPLETED"
	// StatusCancelled is the unsuccessful terminal status.
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus converts a raw string to a Status, matching case-insensitively.
// Unknown values yield a validation error.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusNew:
		return StatusNew, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", apperr.Validation("invalid opportunity status: " + raw)
	}
}

// Terminal reports whether the status ends the opportunity's lifecycle.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ApplyStatus performs a status transition in one place so every side effect
// stays consistent. The status and conclusion reason are always written; only
// COMPLETED stamps the conclusion date. CANCELLED never stamped it and
// downstream reporting relies on that.
func ApplyStatus(o *Opportunity, next Status, reason *string, now time.Time) {
	o.Status = next
	o.ConclusionReason = reason
	if next == StatusCompleted {
		o.ConclusionDate = &now
	}
}
