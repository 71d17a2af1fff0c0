package service

import (
	"context"

	"github.com/digiserve/digiserve/internal/api/dto"
	"github.com/digiserve/digiserve/internal/types"
)

// BroadcastService defines the interface for broadcast operations
type BroadcastService interface {
	CreateBroadcast(ctx context.Context, req dto.CreateBroadcastRequest) (*dto.BroadcastResponse, error)
	GetBroadcast(ctx context.Context, id string) (*dto.BroadcastResponse, error)
	ListBroadcasts(ctx context.Context, filter *types.BroadcastFilter) (*dto.ListBroadcastsResponse, error)
	UpdateBroadcast(ctx context.Context, id string, req dto.UpdateBroadcastRequest) (*dto.BroadcastResponse, error)
	DeleteBroadcast(ctx context.Context, id string) error
}

type broadcastService struct {
	ServiceParams
}

// NewBroadcastService creates a new broadcast service
func NewBroadcastService(params ServiceParams) BroadcastService {
	return &broadcastService{ServiceParams: params}
}

// CreateBroadcast creates a new broadcast
func (s *broadcastService) CreateBroadcast(ctx context.Context, req dto.CreateBroadcastRequest) (*dto.BroadcastResponse, error) {
	b := req.ToBroadcast(ctx)
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.BroadcastRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	return dto.NewBroadcastResponse(b), nil
}

// GetBroadcast gets a broadcast by ID
func (s *broadcastService) GetBroadcast(ctx context.Context, id string) (*dto.BroadcastResponse, error) {
	b, err := s.BroadcastRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewBroadcastResponse(b), nil
}

// ListBroadcasts lists broadcasts matching the filter
func (s *broadcastService) ListBroadcasts(ctx context.Context, filter *types.BroadcastFilter) (*dto.ListBroadcastsResponse, error) {
	if filter == nil {
		filter = &types.BroadcastFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	broadcasts, err := s.BroadcastRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.BroadcastRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.BroadcastResponse, len(broadcasts))
	for i, b := range broadcasts {
		items[i] = dto.NewBroadcastResponse(b)
	}

	return &dto.ListBroadcastsResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

// UpdateBroadcast updates a broadcast
func (s *broadcastService) UpdateBroadcast(ctx context.Context, id string, req dto.UpdateBroadcastRequest) (*dto.BroadcastResponse, error) {
	b, err := s.BroadcastRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Message != nil {
		b.Message = *req.Message
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	b.UpdatedBy = types.GetActorID(ctx)

	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.BroadcastRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	return dto.NewBroadcastResponse(b), nil
}

// DeleteBroadcast removes a broadcast
func (s *broadcastService) DeleteBroadcast(ctx context.Context, id string) error {
	return s.BroadcastRepo.Delete(ctx, id)
}
