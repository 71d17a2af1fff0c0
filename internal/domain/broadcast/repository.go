package broadcast

import (
	"context"

	"github.com/digiserve/digiserve/internal/types"
)

// Repository defines the interface for broadcast persistence
type Repository interface {
	Create(ctx context.Context, broadcast *Broadcast) error
	Get(ctx context.Context, id string) (*Broadcast, error)
	Update(ctx context.Context, broadcast *Broadcast) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.BroadcastFilter) ([]*Broadcast, error)
	Count(ctx context.Context, filter *types.BroadcastFilter) (int, error)
}
