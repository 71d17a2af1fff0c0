package types

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Role represents the role of an account
type Role string

const (
	RoleCustomer      Role = "CUSTOMER"
	RoleAdministrator Role = "ADMINISTRATOR"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Validate() error {
	allowed := []Role{
		RoleCustomer,
		RoleAdministrator,
	}
	if !lo.Contains(allowed, r) {
		return fmt.Errorf("invalid role: %s", r)
	}
	return nil
}

// InstallmentSplit is one scheduled fraction of an installment plan:
// the percentage of the price and the due-date offset from purchase.
type InstallmentSplit struct {
	Percentage    decimal.Decimal `json:"percentage"`
	DueOffsetDays int             `json:"due_offset_days"`
}

// AccountFilter represents the filter for listing accounts
type AccountFilter struct {
	*QueryFilter

	AccountIDs   []string `form:"account_ids"`
	Role         *string  `form:"role"`
	IsActive     *bool    `form:"is_active"`
	IsSuspicious *bool    `form:"is_suspicious"`
}

// Validate validates the account filter
func (f *AccountFilter) Validate() error {
	if f == nil {
		return nil
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	if f.Role != nil {
		if err := Role(*f.Role).Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *AccountFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *AccountFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// IsUnlimited returns true if the filter has no limit
func (f *AccountFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
