package catalog

import (
	"github.com/shopspring/decimal"

	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

// Service is a purchasable catalog entry. The payment core treats the
// price as an opaque positive amount and the duration as informational.
type Service struct {
	// Unique identifier for this service
	ID string `json:"id"`
	// Display name
	Name string `json:"name"`
	// Longer description shown on the service page
	Description string `json:"description,omitempty"`
	// Price in the shop currency
	Price decimal.Decimal `json:"price"`
	// Informational duration label, e.g. "3 months"
	DurationLabel string `json:"duration_label,omitempty"`
	// Whether the service is visible and purchasable
	IsActive bool `json:"is_active"`

	types.BaseModel
}

// Validate validates the service
func (s *Service) Validate() error {
	if s.Name == "" {
		return ierr.NewError("invalid name").
			WithHint("Name is required").
			Mark(ierr.ErrValidation)
	}
	if s.Price.IsZero() || s.Price.IsNegative() {
		return ierr.NewError("invalid price").
			WithHint("Price must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TableName returns the table name for the service
func (s *Service) TableName() string {
	return "services"
}
