package account

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

// Account represents a registered customer or administrator
type Account struct {
	// Unique identifier for this account
	ID string `json:"id"`
	// Email, unique across accounts
	Email string `json:"email"`
	// Display name
	Name string `json:"name"`
	// Role of the account (customer or administrator)
	Role types.Role `json:"role"`
	// Whether the account may sign in and transact
	IsActive bool `json:"is_active"`
	// Whether the account's email has been verified
	IsVerified bool `json:"is_verified"`
	// Set only by the suspicion monitor or an administrator; cleared only
	// by an administrator
	IsSuspicious bool `json:"is_suspicious"`
	// Per-account installment configuration
	InstallmentPolicy InstallmentPolicy `json:"installment_policy"`

	types.BaseModel
}

// InstallmentPolicy configures whether an account may pay by installments
// and the default percentage/due-day schedule applied to new purchases.
type InstallmentPolicy struct {
	Enabled   bool                     `json:"enabled"`
	Splits    []types.InstallmentSplit `json:"splits,omitempty"`
	UpdatedBy string                   `json:"updated_by,omitempty"`
	UpdatedAt *time.Time               `json:"updated_at,omitempty"`
}

// Validate validates the account
func (a *Account) Validate() error {
	if a.Email == "" {
		return ierr.NewError("invalid email").
			WithHint("Email is required").
			Mark(ierr.ErrValidation)
	}
	if err := a.Role.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Role is invalid").
			Mark(ierr.ErrValidation)
	}
	return a.InstallmentPolicy.Validate()
}

// Validate validates the installment policy: percentages must be positive
// and sum to exactly 100 whenever splits are configured.
func (p InstallmentPolicy) Validate() error {
	if len(p.Splits) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, s := range p.Splits {
		if s.Percentage.IsZero() || s.Percentage.IsNegative() {
			return ierr.NewError("split percentage must be greater than 0").
				WithHint("Every split percentage must be greater than 0").
				Mark(ierr.ErrValidation)
		}
		if s.DueOffsetDays < 0 {
			return ierr.NewError("split due offset must be non-negative").
				WithHint("Due offsets must be zero or more days").
				Mark(ierr.ErrValidation)
		}
		total = total.Add(s.Percentage)
	}
	if !total.Equal(decimal.NewFromInt(100)) {
		return ierr.NewErrorf("split percentages sum to %s, want 100", total).
			WithHint("Split percentages must sum to exactly 100").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CanStartInstallmentPlan reports whether the account may begin a new
// installment purchase. In-flight tranches still resolve through the
// normal state machine even when this is false.
func (a *Account) CanStartInstallmentPlan() bool {
	return a.IsActive && !a.IsSuspicious && a.InstallmentPolicy.Enabled && len(a.InstallmentPolicy.Splits) > 0
}

// TableName returns the table name for the account
func (a *Account) TableName() string {
	return "accounts"
}
