package dto

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/digiserve/digiserve/internal/domain/account"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
	"github.com/digiserve/digiserve/internal/validator"
)

// CreateAccountRequest represents a request to register an account
type CreateAccountRequest struct {
	Email string     `json:"email" binding:"required,email" validate:"required,email"`
	Name  string     `json:"name" binding:"required" validate:"required"`
	Role  types.Role `json:"role,omitempty"`
}

// Validate validates the create account request
func (r *CreateAccountRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Role == "" {
		r.Role = types.RoleCustomer
	}
	if err := r.Role.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Role must be CUSTOMER or ADMINISTRATOR").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToAccount converts the request to an account
func (r *CreateAccountRequest) ToAccount(ctx context.Context) *account.Account {
	return &account.Account{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACCOUNT),
		Email:     r.Email,
		Name:      r.Name,
		Role:      r.Role,
		IsActive:  true,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// UpdateAccountRequest represents a request to update account profile fields
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// InstallmentSplitRequest is one split of an installment policy
type InstallmentSplitRequest struct {
	Percentage    decimal.Decimal `json:"percentage" binding:"required"`
	DueOffsetDays int             `json:"due_offset_days"`
}

// SetInstallmentPolicyRequest represents a request to replace an account's
// installment policy
type SetInstallmentPolicyRequest struct {
	Enabled bool                      `json:"enabled"`
	Splits  []InstallmentSplitRequest `json:"splits"`
}

// ToSplits converts the request splits to domain splits
func (r *SetInstallmentPolicyRequest) ToSplits() []types.InstallmentSplit {
	splits := make([]types.InstallmentSplit, len(r.Splits))
	for i, s := range r.Splits {
		splits[i] = types.InstallmentSplit{
			Percentage:    s.Percentage,
			DueOffsetDays: s.DueOffsetDays,
		}
	}
	return splits
}

// SetSuspicionRequest represents a manual suspicion flag change
type SetSuspicionRequest struct {
	Suspicious bool   `json:"suspicious"`
	Reason     string `json:"reason,omitempty"`
}

// InstallmentPolicyResponse represents an account's installment policy
type InstallmentPolicyResponse struct {
	Enabled   bool                     `json:"enabled"`
	Splits    []types.InstallmentSplit `json:"splits,omitempty"`
	UpdatedBy string                   `json:"updated_by,omitempty"`
	UpdatedAt *time.Time               `json:"updated_at,omitempty"`
}

// AccountResponse represents an account response
type AccountResponse struct {
	ID                string                    `json:"id"`
	Email             string                    `json:"email"`
	Name              string                    `json:"name"`
	Role              types.Role                `json:"role"`
	IsActive          bool                      `json:"is_active"`
	IsVerified        bool                      `json:"is_verified"`
	IsSuspicious      bool                      `json:"is_suspicious"`
	InstallmentPolicy InstallmentPolicyResponse `json:"installment_policy"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

// ListAccountsResponse represents a paginated list of accounts
type ListAccountsResponse struct {
	Items      []*AccountResponse       `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// NewAccountResponse creates a new account response from an account
func NewAccountResponse(a *account.Account) *AccountResponse {
	return &AccountResponse{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		Role:         a.Role,
		IsActive:     a.IsActive,
		IsVerified:   a.IsVerified,
		IsSuspicious: a.IsSuspicious,
		InstallmentPolicy: InstallmentPolicyResponse{
			Enabled:   a.InstallmentPolicy.Enabled,
			Splits:    a.InstallmentPolicy.Splits,
			UpdatedBy: a.InstallmentPolicy.UpdatedBy,
			UpdatedAt: a.InstallmentPolicy.UpdatedAt,
		},
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
