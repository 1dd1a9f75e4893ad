package service

import (
	"context"
	"time"

	"mobiauto_backend/internal/events"
	"mobiauto_backend/internal/opportunities/domain"
	"mobiauto_backend/internal/opportunities/repository"
	"mobiauto_backend/internal/opportunities/transport"
	"mobiauto_backend/platform/logger"
	"mobiauto_backend/platform/phone"

	"github.com/google/uuid"
)

// User is a staff record as seen by the opportunity module.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// Directory is the narrow view of the user module the opportunity engine
// needs: existence checks for assignment targets and the assistant pool.
type Directory interface {
	// UserByID returns the user or a not-found error.
	UserByID(ctx context.Context, id uuid.UUID) (User, error)
	// ListAssistants returns users with role ASSISTANT in a stable order.
	ListAssistants(ctx context.Context) ([]User, error)
}

// RunLock serializes distribution runs across processes. A nil RunLock leaves
// the legacy unserialized behavior in place.
type RunLock interface {
	Acquire(ctx context.Context) (release func(context.Context) error, ok bool, err error)
}

// Service owns the opportunity lifecycle and the distribution engine.
type Service struct {
	repo      repository.Repository
	directory Directory
	bus       events.Bus
	lock      RunLock
	log       *logger.Logger
}

// New creates a new opportunity service. bus and lock may be nil.
func New(repo repository.Repository, directory Directory, bus events.Bus, lock RunLock, log *logger.Logger) *Service {
	return &Service{repo: repo, directory: directory, bus: bus, lock: lock, log: log}
}

// GetByID retrieves an opportunity by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.OpportunityResponse, error) {
	opp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.OpportunityResponse{}, err
	}
	return toResponse(opp), nil
}

// List retrieves all opportunities.
func (s *Service) List(ctx context.Context) ([]transport.OpportunityResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

// ListByAssignee retrieves the opportunities assigned to one assistant. The
// assistant must exist; an empty result for a valid assistant is not an error.
func (s *Service) ListByAssignee(ctx context.Context, assistantID uuid.UUID) ([]transport.OpportunityResponse, error) {
	if _, err := s.directory.UserByID(ctx, assistantID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByAssignee(ctx, assistantID)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

// Create stores a new opportunity. The status is always NEW regardless of
// anything the caller put in the request, and no assignee is set.
func (s *Service) Create(ctx context.Context, req transport.OpportunityRequest) (transport.OpportunityResponse, error) {
	opp := domain.Opportunity{
		ID:             uuid.New(),
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  phone.NormalizeE164(req.CustomerPhone),
		VehicleBrand:   req.VehicleBrand,
		VehicleModel:   req.VehicleModel,
		VehicleVersion: req.VehicleVersion,
		VehicleYear:    req.VehicleYear,
		Status:         domain.StatusNew,
	}

	created, err := s.repo.Create(ctx, opp)
	if err != nil {
		return transport.OpportunityResponse{}, err
	}

	s.log.Info("opportunity created", "id", created.ID, "customer", created.CustomerName)
	return toResponse(created), nil
}

// Update replaces all descriptive fields of an opportunity wholesale. Status,
// assignment and conclusion fields are left untouched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.OpportunityRequest) (transport.OpportunityResponse, error) {
	opp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.OpportunityResponse{}, err
	}

	opp.CustomerName = req.CustomerName
	opp.CustomerEmail = req.CustomerEmail
	opp.CustomerPhone = phone.NormalizeE164(req.CustomerPhone)
	opp.VehicleBrand = req.VehicleBrand
	opp.VehicleModel = req.VehicleModel
	opp.VehicleVersion = req.VehicleVersion
	opp.VehicleYear = req.VehicleYear

	saved, err := s.repo.Save(ctx, opp)
	if err != nil {
		return transport.OpportunityResponse{}, err
	}

	return toResponse(saved), nil
}

// Delete removes an opportunity permanently.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("opportunity deleted", "id", id)
	return nil
}

// Assign attaches an opportunity to an assistant, overwriting any previous
// assignment, and stamps the assignment time. Status is not changed.
func (s *Service) Assign(ctx context.Context, id, assistantID uuid.UUID) (transport.OpportunityResponse, error) {
	opp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.OpportunityResponse{}, err
	}

	assistant, err := s.directory.UserByID(ctx, assistantID)
	if err != nil {
		return transport.OpportunityResponse{}, err
	}

	domain.Assign(&opp, assistant.ID, time.Now().UTC())

	saved, err := s.repo.Save(ctx, opp)
	if err != nil {
		return transport.OpportunityResponse{}, err
	}

	s.publishAssigned(ctx, saved, assistant)
	s.log.Info("opportunity assigned", "id", saved.ID, "assistant", assistant.ID)
	return toResponse(saved), nil
}

// UpdateStatus applies a lifecycle transition. The status string is matched
// case-insensitively; unknown values fail validation before any mutation.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.StatusUpdateRequest) (transport.OpportunityResponse, error) {
	opp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.OpportunityResponse{}, err
	}

	next, err := domain.ParseStatus(req.Status)
	if err != nil {
		return transport.OpportunityResponse{}, err
	}

	domain.ApplyStatus(&opp, next, req.ConclusionReason, time.Now().UTC())

	saved, err := s.repo.Save(ctx, opp)
	if err != nil {
		return transport.OpportunityResponse{}, err
	}

	if next.Terminal() && s.bus != nil {
		reason := ""
		if saved.ConclusionReason != nil {
			reason = *saved.ConclusionReason
		}
		s.bus.Publish(ctx, events.OpportunityConcluded{
			BaseEvent:     events.NewBaseEvent(),
			OpportunityID: saved.ID,
			Status:        string(saved.Status),
			Reason:        reason,
		})
	}

	s.log.Info("opportunity status updated", "id", saved.ID, "status", saved.Status)
	return toResponse(saved), nil
}

func (s *Service) publishAssigned(ctx context.Context, opp domain.Opportunity, assistant User) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.OpportunityAssigned{
		BaseEvent:      events.NewBaseEvent(),
		OpportunityID:  opp.ID,
		AssistantID:    assistant.ID,
		AssistantName:  assistant.Name,
		AssistantEmail: assistant.Email,
		CustomerName:   opp.CustomerName,
		Vehicle:        opp.VehicleBrand + " " + opp.VehicleModel,
	})
}

func toResponse(opp domain.Opportunity) transport.OpportunityResponse {
	return transport.OpportunityResponse{
		ID:               opp.ID,
		CustomerName:     opp.CustomerName,
		CustomerEmail:    opp.CustomerEmail,
		CustomerPhone:    opp.CustomerPhone,
		VehicleBrand:     opp.VehicleBrand,
		VehicleModel:     opp.VehicleModel,
		VehicleVersion:   opp.VehicleVersion,
		VehicleYear:      opp.VehicleYear,
		Status:           string(opp.Status),
		ConclusionReason: opp.ConclusionReason,
		AssignedUserID:   opp.AssignedUserID,
		AssignedDate:     formatTime(opp.AssignedDate),
		ConclusionDate:   formatTime(opp.ConclusionDate),
		CreatedAt:        opp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        opp.UpdatedAt.Format(time.RFC3339),
	}
}

func toResponses(items []domain.Opportunity) []transport.OpportunityResponse {
	responses := make([]transport.OpportunityResponse, len(items))
	for i, item := range items {
		responses[i] = toResponse(item)
	}
	return responses
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
