package service

import (
	"context"
	"time"

	"github.com/digiserve/digiserve/internal/api/dto"
	"github.com/digiserve/digiserve/internal/domain/account"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

// AccountService defines the interface for account operations
type AccountService interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.AccountResponse, error)
	GetAccount(ctx context.Context, id string) (*dto.AccountResponse, error)
	ListAccounts(ctx context.Context, filter *types.AccountFilter) (*dto.ListAccountsResponse, error)
	UpdateAccount(ctx context.Context, id string, req dto.UpdateAccountRequest) (*dto.AccountResponse, error)

	SetInstallmentPolicy(ctx context.Context, id string, req dto.SetInstallmentPolicyRequest) (*dto.AccountResponse, error)
	SetSuspicion(ctx context.Context, id string, req dto.SetSuspicionRequest) (*dto.AccountResponse, error)
}

type accountService struct {
	ServiceParams
}

// NewAccountService creates a new account service
func NewAccountService(params ServiceParams) AccountService {
	return &accountService{ServiceParams: params}
}

// CreateAccount registers a new account
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a := req.ToAccount(ctx)
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := s.AccountRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.Logger.Infow("created account", "account_id", a.ID, "role", a.Role)

	return dto.NewAccountResponse(a), nil
}

// GetAccount gets an account by ID
func (s *accountService) GetAccount(ctx context.Context, id string) (*dto.AccountResponse, error) {
	a, err := s.AccountRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewAccountResponse(a), nil
}

// ListAccounts lists accounts matching the filter
func (s *accountService) ListAccounts(ctx context.Context, filter *types.AccountFilter) (*dto.ListAccountsResponse, error) {
	if filter == nil {
		filter = &types.AccountFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	accounts, err := s.AccountRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.AccountRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AccountResponse, len(accounts))
	for i, a := range accounts {
		items[i] = dto.NewAccountResponse(a)
	}

	return &dto.ListAccountsResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

// UpdateAccount updates an account's profile fields
func (s *accountService) UpdateAccount(ctx context.Context, id string, req dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	a, err := s.AccountRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	a.UpdatedBy = types.GetActorID(ctx)

	if err := s.AccountRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	return dto.NewAccountResponse(a), nil
}

// SetInstallmentPolicy replaces an account's installment policy. The
// change applies to future purchases only; in-flight payments keep the
// schedule they were created with.
func (s *accountService) SetInstallmentPolicy(ctx context.Context, id string, req dto.SetInstallmentPolicyRequest) (*dto.AccountResponse, error) {
	a, err := s.AccountRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	splits := req.ToSplits()
	if len(splits) == 1 {
		return nil, ierr.NewError("installment policy needs at least two splits").
			WithHint("An installment schedule must have at least two splits").
			Mark(ierr.ErrValidation)
	}
	if req.Enabled && len(splits) == 0 {
		return nil, ierr.NewError("enabled policy needs splits").
			WithHint("An enabled installment policy must configure its splits").
			Mark(ierr.ErrValidation)
	}

	policy := account.InstallmentPolicy{
		Enabled:   req.Enabled,
		Splits:    splits,
		UpdatedBy: types.GetActorID(ctx),
		UpdatedAt: types.ToNillableTime(time.Now().UTC()),
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	a.InstallmentPolicy = policy
	a.UpdatedBy = types.GetActorID(ctx)

	if err := s.AccountRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.Logger.Infow("installment policy updated",
		"account_id", a.ID,
		"enabled", policy.Enabled,
		"splits", len(policy.Splits),
	)

	return dto.NewAccountResponse(a), nil
}

// SetSuspicion manually flags or clears the suspicion flag on an account.
// Flagging disables the installment policy; clearing does not re-enable
// it, an administrator must restore the policy explicitly.
func (s *accountService) SetSuspicion(ctx context.Context, id string, req dto.SetSuspicionRequest) (*dto.AccountResponse, error) {
	a, err := s.AccountRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.IsSuspicious == req.Suspicious {
		return dto.NewAccountResponse(a), nil
	}

	a.IsSuspicious = req.Suspicious
	if req.Suspicious {
		a.InstallmentPolicy.Enabled = false
	}
	a.UpdatedBy = types.GetActorID(ctx)

	if err := s.AccountRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	eventName := types.NotificationEventAccountFlagged
	if !req.Suspicious {
		eventName = types.NotificationEventAccountUnflagged
	}

	s.Logger.Infow("suspicion flag changed",
		"account_id", a.ID,
		"suspicious", req.Suspicious,
		"reason", req.Reason,
	)

	s.notify(ctx, eventName, a.ID, dto.NewAccountResponse(a))

	return dto.NewAccountResponse(a), nil
}
