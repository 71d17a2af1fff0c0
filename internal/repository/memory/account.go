package memory

import (
	"context"
	"time"

	"github.com/digiserve/digiserve/internal/domain/account"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

// InMemoryAccountStore implements account.Repository
type InMemoryAccountStore struct {
	*InMemoryStore[*account.Account]
}

// NewInMemoryAccountStore creates a new in-memory account repository
func NewInMemoryAccountStore() *InMemoryAccountStore {
	return &InMemoryAccountStore{
		InMemoryStore: NewInMemoryStore[*account.Account](),
	}
}

// Create stores a new account
func (m *InMemoryAccountStore) Create(ctx context.Context, a *account.Account) error {
	if a == nil {
		return ierr.NewError("account cannot be nil").
			WithHint("Account cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if a.ID == "" {
		return ierr.NewError("account ID cannot be empty").
			WithHint("Account ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	if _, err := m.GetByEmail(ctx, a.Email); err == nil {
		return ierr.NewError("account already exists").
			WithHintf("An account with email %s already exists", a.Email).
			Mark(ierr.ErrAlreadyExists)
	}

	return m.InMemoryStore.Create(ctx, a.ID, a)
}

// Get retrieves an account by ID
func (m *InMemoryAccountStore) Get(ctx context.Context, id string) (*account.Account, error) {
	a, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("account not found").
			WithHintf("Account with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return a, nil
}

// GetByEmail retrieves an account by email
func (m *InMemoryAccountStore) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	accounts, err := m.InMemoryStore.List(ctx, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.Email == email {
			return a, nil
		}
	}

	return nil, ierr.NewError("account not found").
		WithHintf("Account with email %s was not found", email).
		Mark(ierr.ErrNotFound)
}

// Update updates an existing account
func (m *InMemoryAccountStore) Update(ctx context.Context, a *account.Account) error {
	if a == nil {
		return ierr.NewError("account cannot be nil").
			WithHint("Account cannot be nil").
			Mark(ierr.ErrValidation)
	}

	a.UpdatedAt = time.Now().UTC()
	return m.InMemoryStore.Update(ctx, a.ID, a)
}

// Delete removes an account
func (m *InMemoryAccountStore) Delete(ctx context.Context, id string) error {
	return m.InMemoryStore.Delete(ctx, id)
}

// accountFilterFn implements filtering logic for accounts
func accountFilterFn(ctx context.Context, a *account.Account, filter interface{}) bool {
	if a == nil {
		return false
	}

	f, ok := filter.(*types.AccountFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.AccountIDs) > 0 {
		found := false
		for _, id := range f.AccountIDs {
			if a.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Role != nil && string(a.Role) != *f.Role {
		return false
	}

	if f.IsActive != nil && a.IsActive != *f.IsActive {
		return false
	}

	if f.IsSuspicious != nil && a.IsSuspicious != *f.IsSuspicious {
		return false
	}

	return true
}

// accountSortFn sorts accounts newest first
func accountSortFn(i, j *account.Account) bool {
	if i == nil || j == nil {
		return false
	}
	return i.CreatedAt.After(j.CreatedAt)
}

// List returns a list of accounts based on the filter
func (m *InMemoryAccountStore) List(ctx context.Context, filter *types.AccountFilter) ([]*account.Account, error) {
	return m.InMemoryStore.List(ctx, filter, accountFilterFn, accountSortFn)
}

// Count returns the number of accounts matching the filter
func (m *InMemoryAccountStore) Count(ctx context.Context, filter *types.AccountFilter) (int, error) {
	return m.InMemoryStore.Count(ctx, filter, accountFilterFn)
}
