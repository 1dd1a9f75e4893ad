package service

import (
	"context"
	"strings"
	"unicode"

	"mobiauto_backend/internal/dealerships/repository"
	"mobiauto_backend/internal/dealerships/transport"
	"mobiauto_backend/platform/apperr"
	"mobiauto_backend/platform/logger"

	"github.com/google/uuid"
)

const cnpjLength = 14

// Service implements the dealership registry use cases.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new dealerships service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// GetByID retrieves a dealership by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.DealershipResponse, error) {
	dealership, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.DealershipResponse{}, err
	}
	return transport.ToDealershipResponse(dealership), nil
}

// List retrieves all dealerships.
func (s *Service) List(ctx context.Context) ([]transport.DealershipResponse, error) {
	dealerships, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return transport.ToDealershipResponses(dealerships), nil
}

// Create registers a new dealership. The CNPJ is stored as bare digits.
func (s *Service) Create(ctx context.Context, req transport.DealershipRequest) (transport.DealershipResponse, error) {
	cnpj, err := normalizeCNPJ(req.CNPJ)
	if err != nil {
		return transport.DealershipResponse{}, err
	}

	dealership, err := s.repo.Create(ctx, repository.CreateParams{
		CNPJ:          cnpj,
		CorporateName: req.CorporateName,
	})
	if err != nil {
		return transport.DealershipResponse{}, err
	}

	s.log.Info("dealership created", "dealership_id", dealership.ID)
	return transport.ToDealershipResponse(dealership), nil
}

// Update applies a partial update to a dealership.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateDealershipRequest) (transport.DealershipResponse, error) {
	params := repository.UpdateParams{ID: id, CorporateName: req.CorporateName}
	if req.CNPJ != nil {
		cnpj, err := normalizeCNPJ(*req.CNPJ)
		if err != nil {
			return transport.DealershipResponse{}, err
		}
		params.CNPJ = &cnpj
	}

	dealership, err := s.repo.Update(ctx, params)
	if err != nil {
		return transport.DealershipResponse{}, err
	}
	return transport.ToDealershipResponse(dealership), nil
}

// Delete removes a dealership.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// normalizeCNPJ strips formatting punctuation and checks the digit count.
func normalizeCNPJ(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	cnpj := b.String()
	if len(cnpj) != cnpjLength {
		return "", apperr.Validation("CNPJ must contain 14 digits")
	}
	return cnpj, nil
}
