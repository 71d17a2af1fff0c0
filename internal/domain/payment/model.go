package payment

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

// Payment represents one purchase of a catalog service and owns the
// ordered tranches it is settled through. PaymentStatus, AmountPaid and
// AmountDue are materialized views over tranche state: they are recomputed
// after every tranche transition and never accepted from a caller.
type Payment struct {
	// Unique identifier for this payment
	ID string `json:"id"`
	// Human-facing payment number, e.g. PAY-XYZ12A8Q
	PaymentNumber string `json:"payment_number"`
	// Unique key used to prevent duplicate payment creation
	IdempotencyKey string `json:"idempotency_key"`
	// The account this purchase belongs to
	AccountID string `json:"account_id"`
	// The catalog service being purchased
	ServiceID string `json:"service_id"`
	// Whether the purchase is settled in full or by installment plan
	PaymentType types.PaymentType `json:"payment_type"`
	// Derived purchase-level status, recomputed from tranche states
	PaymentStatus types.PaymentStatus `json:"payment_status"`
	// The service price at purchase time, immutable afterwards
	Amount decimal.Decimal `json:"amount"`
	// Sum of settled tranche amounts, derived
	AmountPaid decimal.Decimal `json:"amount_paid"`
	// Amount - AmountPaid, clamped at zero, derived
	AmountDue decimal.Decimal `json:"amount_due"`
	// Service window, set by an administrator once the purchase is verified.
	// Activation timing is an operational decision, so the window is never
	// derived from approval timestamps.
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	// One-way administrator override, independent of dates
	IsServiceCompleted bool `json:"is_service_completed"`
	// Ordered tranches; exactly one for full payments, two or more for installments
	Tranches []*Tranche `json:"tranches"`
	// Version guards concurrent tranche transitions on the same payment
	Version int `json:"version"`

	types.BaseModel
}

// Tranche is one scheduled fractional payment within a payment. Tranches
// are never deleted, only transitioned; a rejected tranche is resubmitted
// in place with its resubmission counter incremented.
type Tranche struct {
	// 1-based position, fixed at creation, defines submission order
	InstallmentNumber int `json:"installment_number"`
	// Fraction of the payment amount this tranche covers
	Percentage decimal.Decimal `json:"percentage"`
	// Monetary amount of this tranche
	Amount decimal.Decimal `json:"amount"`
	// Due date; nil for the first tranche, which is payable immediately
	DueDate *time.Time `json:"due_date,omitempty"`
	// Current status in the submit/adjudicate/pay lifecycle
	Status types.TrancheStatus `json:"status"`
	// Externally reported transaction identifier, retained across rejection for audit
	TransactionRef string `json:"transaction_ref,omitempty"`
	// Number of resubmissions after rejection
	ResubmissionCount int        `json:"resubmission_count"`
	SubmittedAt       *time.Time `json:"submitted_at,omitempty"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	AdminNotes        string     `json:"admin_notes,omitempty"`
}

// Validate validates the payment's structural invariants
func (p *Payment) Validate() error {
	if p.AccountID == "" {
		return ierr.NewError("invalid account id").
			WithHint("Account id is required").
			Mark(ierr.ErrValidation)
	}
	if p.ServiceID == "" {
		return ierr.NewError("invalid service id").
			WithHint("Service id is required").
			Mark(ierr.ErrValidation)
	}
	if err := p.PaymentType.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Payment type is invalid").
			Mark(ierr.ErrValidation)
	}
	if p.Amount.IsZero() || p.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}

	switch p.PaymentType {
	case types.PaymentTypeFull:
		if len(p.Tranches) != 1 {
			return ierr.NewError("full payment must have exactly one tranche").
				WithHint("Full payments are settled in a single tranche").
				Mark(ierr.ErrValidation)
		}
	case types.PaymentTypeInstallment:
		if len(p.Tranches) < 2 {
			return ierr.NewError("installment payment must have at least two tranches").
				WithHint("Installment payments require two or more tranches").
				Mark(ierr.ErrValidation)
		}
	}

	totalPct := decimal.Zero
	totalAmount := decimal.Zero
	for i, t := range p.Tranches {
		if t.InstallmentNumber != i+1 {
			return ierr.NewErrorf("tranche %d has installment number %d", i+1, t.InstallmentNumber).
				WithHint("Tranches must be numbered sequentially from 1").
				Mark(ierr.ErrValidation)
		}
		totalPct = totalPct.Add(t.Percentage)
		totalAmount = totalAmount.Add(t.Amount)
	}
	if !totalPct.Equal(decimal.NewFromInt(100)) {
		return ierr.NewError("tranche percentages must sum to 100").
			WithHint("Tranche percentages must sum to 100").
			Mark(ierr.ErrValidation)
	}
	if !totalAmount.Equal(p.Amount) {
		return ierr.NewError("tranche amounts must sum to payment amount").
			WithHint("Tranche amounts must sum to the payment amount").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Tranche returns the tranche with the given 1-based installment number
func (p *Payment) Tranche(number int) (*Tranche, error) {
	if number < 1 || number > len(p.Tranches) {
		return nil, ierr.NewErrorf("tranche %d not found on payment %s", number, p.ID).
			WithHintf("Payment has %d tranches", len(p.Tranches)).
			WithReportableDetails(map[string]any{
				"payment_id":         p.ID,
				"installment_number": number,
			}).
			Mark(ierr.ErrNotFound)
	}
	return p.Tranches[number-1], nil
}

// NextUnresolvedTranche returns the first tranche that is not yet settled,
// or nil when every tranche is approved or paid.
func (p *Payment) NextUnresolvedTranche() *Tranche {
	for _, t := range p.Tranches {
		if !t.Status.IsSettled() {
			return t
		}
	}
	return nil
}

// IsSettled returns true when every tranche is approved or paid
func (p *Payment) IsSettled() bool {
	return p.NextUnresolvedTranche() == nil
}

// TableName returns the table name for the payment
func (p *Payment) TableName() string {
	return "payments"
}
