package catalog

import (
	"context"

	"github.com/digiserve/digiserve/internal/types"
)

// Repository defines the interface for catalog service persistence
type Repository interface {
	Create(ctx context.Context, service *Service) error
	Get(ctx context.Context, id string) (*Service, error)
	Update(ctx context.Context, service *Service) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.ServiceFilter) ([]*Service, error)
	Count(ctx context.Context, filter *types.ServiceFilter) (int, error)
}
