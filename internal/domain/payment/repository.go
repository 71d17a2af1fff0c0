package payment

import (
	"context"

	"github.com/digiserve/digiserve/internal/types"
)

// Repository defines the interface for payment persistence.
//
// Update must apply optimistic versioning keyed by payment id: it fails
// with a version conflict when the caller's copy is stale, which gives
// tranche transitions per-payment mutual exclusion.
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	Update(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)
	Count(ctx context.Context, filter *types.PaymentFilter) (int, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Payment, error)

	// ListUnsettledInstallments returns installment payments that are not
	// yet fully settled, for the suspicion scan.
	ListUnsettledInstallments(ctx context.Context, limit int) ([]*Payment, error)
}
