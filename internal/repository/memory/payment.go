package memory

import (
	"context"
	"sync"
	"time"

	"github.com/digiserve/digiserve/internal/domain/payment"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

// InMemoryPaymentStore implements payment.Repository
//
// Get hands out deep copies and Update applies compare-and-swap on the
// payment version, so two concurrent tranche transitions on the same
// payment cannot both land: the second writer gets a version conflict
// and must re-read.
type InMemoryPaymentStore struct {
	mu       sync.RWMutex
	payments map[string]*payment.Payment
	// insertion order, used for deterministic listing in tests
	createdInOrder []string
}

// NewInMemoryPaymentStore creates a new in-memory payment repository
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		payments:       make(map[string]*payment.Payment),
		createdInOrder: make([]string, 0),
	}
}

// Clear resets all stored data
func (m *InMemoryPaymentStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = make(map[string]*payment.Payment)
	m.createdInOrder = make([]string, 0)
}

func clonePayment(p *payment.Payment) *payment.Payment {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Tranches = make([]*payment.Tranche, len(p.Tranches))
	for i, t := range p.Tranches {
		ct := *t
		cp.Tranches[i] = &ct
	}
	return &cp
}

// Create stores a new payment
func (m *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").
			WithHint("Payment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if p.ID == "" {
		return ierr.NewError("payment ID cannot be empty").
			WithHint("Payment ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.payments[p.ID]; exists {
		return ierr.NewError("payment already exists").
			WithHintf("A payment with id %s already exists", p.ID).
			Mark(ierr.ErrAlreadyExists)
	}

	m.payments[p.ID] = clonePayment(p)
	m.createdInOrder = append(m.createdInOrder, p.ID)
	return nil
}

// Get retrieves a payment by ID
func (m *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.payments[id]
	if !exists {
		return nil, ierr.NewError("payment not found").
			WithHintf("Payment with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return clonePayment(p), nil
}

// Update replaces a stored payment if the caller's version matches the
// stored version, then bumps the version on both copies.
func (m *InMemoryPaymentStore) Update(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").
			WithHint("Payment cannot be nil").
			Mark(ierr.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.payments[p.ID]
	if !exists {
		return ierr.NewError("payment not found").
			WithHintf("Payment with id %s was not found", p.ID).
			Mark(ierr.ErrNotFound)
	}

	if existing.Version != p.Version {
		return ierr.NewError("payment was modified concurrently").
			WithHint("The payment changed since it was read, retry the operation").
			WithReportableDetails(map[string]any{
				"payment_id":       p.ID,
				"expected_version": p.Version,
				"actual_version":   existing.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	p.Version++
	p.UpdatedAt = time.Now().UTC()
	m.payments[p.ID] = clonePayment(p)
	return nil
}

// Delete removes a payment
func (m *InMemoryPaymentStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.payments[id]; !exists {
		return ierr.NewError("payment not found").
			WithHintf("Payment with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	delete(m.payments, id)
	for i, pid := range m.createdInOrder {
		if pid == id {
			m.createdInOrder = append(m.createdInOrder[:i], m.createdInOrder[i+1:]...)
			break
		}
	}
	return nil
}

// GetByIdempotencyKey retrieves a payment by idempotency key
func (m *InMemoryPaymentStore) GetByIdempotencyKey(ctx context.Context, key string) (*payment.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.payments {
		if p.IdempotencyKey == key {
			return clonePayment(p), nil
		}
	}

	return nil, ierr.NewError("payment not found").
		WithHintf("Payment not found for idempotency key: %s", key).
		Mark(ierr.ErrNotFound)
}

// paymentFilterFn implements filtering logic for payments
func paymentFilterFn(ctx context.Context, p *payment.Payment, filter interface{}) bool {
	if p == nil {
		return false
	}

	f, ok := filter.(*types.PaymentFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.PaymentIDs) > 0 {
		found := false
		for _, id := range f.PaymentIDs {
			if p.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.AccountID != nil && p.AccountID != *f.AccountID {
		return false
	}

	if f.ServiceID != nil && p.ServiceID != *f.ServiceID {
		return false
	}

	if f.PaymentType != nil && string(p.PaymentType) != *f.PaymentType {
		return false
	}

	if f.PaymentStatus != nil && string(p.PaymentStatus) != *f.PaymentStatus {
		return false
	}

	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && p.CreatedAt.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && p.CreatedAt.After(*f.EndTime) {
			return false
		}
	}

	return true
}

// List returns a list of payments based on the filter, newest first
func (m *InMemoryPaymentStore) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*payment.Payment, 0)
	// walk in reverse insertion order for a stable newest-first listing
	for i := len(m.createdInOrder) - 1; i >= 0; i-- {
		p := m.payments[m.createdInOrder[i]]
		if paymentFilterFn(ctx, p, filter) {
			result = append(result, clonePayment(p))
		}
	}

	if filter != nil && !filter.IsUnlimited() {
		start := filter.GetOffset()
		if start >= len(result) {
			return []*payment.Payment{}, nil
		}
		end := start + filter.GetLimit()
		if end > len(result) {
			end = len(result)
		}
		result = result[start:end]
	}

	return result, nil
}

// Count returns the number of payments matching the filter
func (m *InMemoryPaymentStore) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, p := range m.payments {
		if paymentFilterFn(ctx, p, filter) {
			count++
		}
	}
	return count, nil
}

// ListUnsettledInstallments returns installment payments with at least one
// unsettled tranche, oldest first, capped at limit when limit is positive.
func (m *InMemoryPaymentStore) ListUnsettledInstallments(ctx context.Context, limit int) ([]*payment.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*payment.Payment, 0)
	for _, id := range m.createdInOrder {
		p := m.payments[id]
		if p.PaymentType != types.PaymentTypeInstallment {
			continue
		}
		if p.IsSettled() {
			continue
		}
		result = append(result, clonePayment(p))
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}
