package memory

import (
	"context"
	"time"

	"github.com/digiserve/digiserve/internal/domain/catalog"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

// InMemoryCatalogStore implements catalog.Repository
type InMemoryCatalogStore struct {
	*InMemoryStore[*catalog.Service]
}

// NewInMemoryCatalogStore creates a new in-memory catalog repository
func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{
		InMemoryStore: NewInMemoryStore[*catalog.Service](),
	}
}

// Create stores a new catalog service
func (m *InMemoryCatalogStore) Create(ctx context.Context, s *catalog.Service) error {
	if s == nil {
		return ierr.NewError("service cannot be nil").
			WithHint("Service cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if s.ID == "" {
		return ierr.NewError("service ID cannot be empty").
			WithHint("Service ID cannot be empty").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Create(ctx, s.ID, s)
}

// Get retrieves a catalog service by ID
func (m *InMemoryCatalogStore) Get(ctx context.Context, id string) (*catalog.Service, error) {
	s, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("service not found").
			WithHintf("Service with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return s, nil
}

// Update updates an existing catalog service
func (m *InMemoryCatalogStore) Update(ctx context.Context, s *catalog.Service) error {
	if s == nil {
		return ierr.NewError("service cannot be nil").
			WithHint("Service cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.UpdatedAt = time.Now().UTC()
	return m.InMemoryStore.Update(ctx, s.ID, s)
}

// Delete removes a catalog service
func (m *InMemoryCatalogStore) Delete(ctx context.Context, id string) error {
	return m.InMemoryStore.Delete(ctx, id)
}

// serviceFilterFn implements filtering logic for catalog services
func serviceFilterFn(ctx context.Context, s *catalog.Service, filter interface{}) bool {
	if s == nil {
		return false
	}

	f, ok := filter.(*types.ServiceFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.ServiceIDs) > 0 {
		found := false
		for _, id := range f.ServiceIDs {
			if s.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.IsActive != nil && s.IsActive != *f.IsActive {
		return false
	}

	return true
}

// serviceSortFn sorts catalog services newest first
func serviceSortFn(i, j *catalog.Service) bool {
	if i == nil || j == nil {
		return false
	}
	return i.CreatedAt.After(j.CreatedAt)
}

// List returns a list of catalog services based on the filter
func (m *InMemoryCatalogStore) List(ctx context.Context, filter *types.ServiceFilter) ([]*catalog.Service, error) {
	return m.InMemoryStore.List(ctx, filter, serviceFilterFn, serviceSortFn)
}

// Count returns the number of catalog services matching the filter
func (m *InMemoryCatalogStore) Count(ctx context.Context, filter *types.ServiceFilter) (int, error) {
	return m.InMemoryStore.Count(ctx, filter, serviceFilterFn)
}
