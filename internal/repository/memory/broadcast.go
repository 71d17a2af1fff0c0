package memory

import (
	"context"
	"time"

	"github.com/digiserve/digiserve/internal/domain/broadcast"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

// InMemoryBroadcastStore implements broadcast.Repository
type InMemoryBroadcastStore struct {
	*InMemoryStore[*broadcast.Broadcast]
}

// NewInMemoryBroadcastStore creates a new in-memory broadcast repository
func NewInMemoryBroadcastStore() *InMemoryBroadcastStore {
	return &InMemoryBroadcastStore{
		InMemoryStore: NewInMemoryStore[*broadcast.Broadcast](),
	}
}

// Create stores a new broadcast
func (m *InMemoryBroadcastStore) Create(ctx context.Context, b *broadcast.Broadcast) error {
	if b == nil {
		return ierr.NewError("broadcast cannot be nil").
			WithHint("Broadcast cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if b.ID == "" {
		return ierr.NewError("broadcast ID cannot be empty").
			WithHint("Broadcast ID cannot be empty").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Create(ctx, b.ID, b)
}

// Get retrieves a broadcast by ID
func (m *InMemoryBroadcastStore) Get(ctx context.Context, id string) (*broadcast.Broadcast, error) {
	b, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("broadcast not found").
			WithHintf("Broadcast with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return b, nil
}

// Update updates an existing broadcast
func (m *InMemoryBroadcastStore) Update(ctx context.Context, b *broadcast.Broadcast) error {
	if b == nil {
		return ierr.NewError("broadcast cannot be nil").
			WithHint("Broadcast cannot be nil").
			Mark(ierr.ErrValidation)
	}

	b.UpdatedAt = time.Now().UTC()
	return m.InMemoryStore.Update(ctx, b.ID, b)
}

// Delete removes a broadcast
func (m *InMemoryBroadcastStore) Delete(ctx context.Context, id string) error {
	return m.InMemoryStore.Delete(ctx, id)
}

// broadcastFilterFn implements filtering logic for broadcasts
func broadcastFilterFn(ctx context.Context, b *broadcast.Broadcast, filter interface{}) bool {
	if b == nil {
		return false
	}

	f, ok := filter.(*types.BroadcastFilter)
	if !ok || f == nil {
		return true
	}

	if f.IsActive != nil && b.IsActive != *f.IsActive {
		return false
	}

	return true
}

// broadcastSortFn sorts broadcasts newest first
func broadcastSortFn(i, j *broadcast.Broadcast) bool {
	if i == nil || j == nil {
		return false
	}
	return i.CreatedAt.After(j.CreatedAt)
}

// List returns a list of broadcasts based on the filter
func (m *InMemoryBroadcastStore) List(ctx context.Context, filter *types.BroadcastFilter) ([]*broadcast.Broadcast, error) {
	return m.InMemoryStore.List(ctx, filter, broadcastFilterFn, broadcastSortFn)
}

// Count returns the number of broadcasts matching the filter
func (m *InMemoryBroadcastStore) Count(ctx context.Context, filter *types.BroadcastFilter) (int, error) {
	return m.InMemoryStore.Count(ctx, filter, broadcastFilterFn)
}
