package dto

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/digiserve/digiserve/internal/domain/catalog"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
	"github.com/digiserve/digiserve/internal/validator"
)

// CreateServiceRequest represents a request to create a catalog service
type CreateServiceRequest struct {
	Name          string          `json:"name" binding:"required" validate:"required"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	DurationLabel string          `json:"duration_label,omitempty"`
}

// Validate validates the create service request
func (r *CreateServiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Price.IsZero() || r.Price.IsNegative() {
		return ierr.NewError("invalid price").
			WithHint("Price must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToService converts the request to a catalog service
func (r *CreateServiceRequest) ToService(ctx context.Context) *catalog.Service {
	return &catalog.Service{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SERVICE),
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		DurationLabel: r.DurationLabel,
		IsActive:      true,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

// UpdateServiceRequest represents a request to update a catalog service
type UpdateServiceRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	DurationLabel *string          `json:"duration_label,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// ServiceResponse represents a catalog service response
type ServiceResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	DurationLabel string          `json:"duration_label,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ListServicesResponse represents a paginated list of catalog services
type ListServicesResponse struct {
	Items      []*ServiceResponse       `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// NewServiceResponse creates a new service response from a catalog service
func NewServiceResponse(s *catalog.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		Price:         s.Price,
		DurationLabel: s.DurationLabel,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
