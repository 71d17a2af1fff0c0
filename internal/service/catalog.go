package service

import (
	"context"
	"time"

	"github.com/digiserve/digiserve/internal/api/dto"
	"github.com/digiserve/digiserve/internal/cache"
	"github.com/digiserve/digiserve/internal/domain/catalog"
	"github.com/digiserve/digiserve/internal/types"
)

const serviceCacheExpiry = 5 * time.Minute

// CatalogService defines the interface for catalog service operations
type CatalogService interface {
	CreateService(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	GetService(ctx context.Context, id string) (*dto.ServiceResponse, error)
	ListServices(ctx context.Context, filter *types.ServiceFilter) (*dto.ListServicesResponse, error)
	UpdateService(ctx context.Context, id string, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	DeleteService(ctx context.Context, id string) error
}

type catalogService struct {
	ServiceParams
}

// NewCatalogService creates a new catalog service
func NewCatalogService(params ServiceParams) CatalogService {
	return &catalogService{ServiceParams: params}
}

// CreateService creates a new catalog service
func (s *catalogService) CreateService(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	svc := req.ToService(ctx)
	if err := svc.Validate(); err != nil {
		return nil, err
	}

	if err := s.CatalogRepo.Create(ctx, svc); err != nil {
		return nil, err
	}

	s.Logger.Infow("created catalog service", "service_id", svc.ID, "price", svc.Price)

	return dto.NewServiceResponse(svc), nil
}

// GetService gets a catalog service by ID, served from cache when warm
func (s *catalogService) GetService(ctx context.Context, id string) (*dto.ServiceResponse, error) {
	key := cache.GenerateKey(cache.PrefixService, id)
	if cached, found := s.Cache.Get(ctx, key); found {
		if svc, ok := cached.(*catalog.Service); ok {
			return dto.NewServiceResponse(svc), nil
		}
	}

	svc, err := s.CatalogRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, svc, serviceCacheExpiry)
	return dto.NewServiceResponse(svc), nil
}

// ListServices lists catalog services matching the filter
func (s *catalogService) ListServices(ctx context.Context, filter *types.ServiceFilter) (*dto.ListServicesResponse, error) {
	if filter == nil {
		filter = &types.ServiceFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	services, err := s.CatalogRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.CatalogRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ServiceResponse, len(services))
	for i, svc := range services {
		items[i] = dto.NewServiceResponse(svc)
	}

	return &dto.ListServicesResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

// UpdateService updates a catalog service. Price changes apply to future
// purchases only; existing payments keep the price they were created with.
func (s *catalogService) UpdateService(ctx context.Context, id string, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := s.CatalogRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DurationLabel != nil {
		svc.DurationLabel = *req.DurationLabel
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	svc.UpdatedBy = types.GetActorID(ctx)

	if err := svc.Validate(); err != nil {
		return nil, err
	}

	if err := s.CatalogRepo.Update(ctx, svc); err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixService, id))

	return dto.NewServiceResponse(svc), nil
}

// DeleteService removes a catalog service
func (s *catalogService) DeleteService(ctx context.Context, id string) error {
	if err := s.CatalogRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixService, id))
	return nil
}
