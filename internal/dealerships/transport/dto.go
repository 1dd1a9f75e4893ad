package transport

import (
	"time"

	"mobiauto_backend/internal/dealerships/repository"

	"github.com/google/uuid"
)

// DealershipRequest is the payload for creating a dealership.
type DealershipRequest struct {
	CNPJ          string `json:"cnpj" validate:"required"`
	CorporateName string `json:"corporateName" validate:"required"`
}

// UpdateDealershipRequest is the payload for a partial update.
type UpdateDealershipRequest struct {
	CNPJ          *string `json:"cnpj" validate:"omitempty,min=1"`
	CorporateName *string `json:"corporateName" validate:"omitempty,min=1"`
}

// DealershipResponse is the API representation of a dealership.
type DealershipResponse struct {
	ID            uuid.UUID `json:"id"`
	CNPJ          string    `json:"cnpj"`
	CorporateName string    `json:"corporateName"`
	CreatedAt     string    `json:"createdAt"`
	UpdatedAt     string    `json:"updatedAt"`
}

// ToDealershipResponse maps a stored dealership onto the API shape.
func ToDealershipResponse(d repository.Dealership) DealershipResponse {
	return DealershipResponse{
		ID:            d.ID,
		CNPJ:          d.CNPJ,
		CorporateName: d.CorporateName,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     d.UpdatedAt.Format(time.RFC3339),
	}
}

// ToDealershipResponses maps a slice of dealerships.
func ToDealershipResponses(dealerships []repository.Dealership) []DealershipResponse {
	out := make([]DealershipResponse, 0, len(dealerships))
	for _, d := range dealerships {
		out = append(out, ToDealershipResponse(d))
	}
	return out
}
