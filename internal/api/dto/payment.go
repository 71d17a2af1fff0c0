package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/digiserve/digiserve/internal/domain/payment"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
	"github.com/digiserve/digiserve/internal/validator"
)

// CreatePaymentRequest represents a request to create a payment
type CreatePaymentRequest struct {
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	AccountID      string            `json:"account_id" binding:"required" validate:"required"`
	ServiceID      string            `json:"service_id" binding:"required" validate:"required"`
	PaymentType    types.PaymentType `json:"payment_type" binding:"required" validate:"required"`
	// Optional transaction reference submitted against tranche 1 in the
	// same call, for the common pay-at-checkout flow
	InitialTransactionRef string `json:"initial_transaction_ref,omitempty"`
}

// Validate validates the create payment request
func (r *CreatePaymentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.PaymentType.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Payment type must be FULL or INSTALLMENT").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SubmitTrancheRequest represents a customer's evidence of payment for a tranche
type SubmitTrancheRequest struct {
	TransactionRef string `json:"transaction_ref" binding:"required"`
}

// AdjudicateTrancheRequest represents an administrator's verdict on a
// submitted tranche
type AdjudicateTrancheRequest struct {
	Decision types.AdjudicationDecision `json:"decision" binding:"required" validate:"required"`
	Notes    string                     `json:"notes,omitempty"`
}

// Validate validates the adjudicate tranche request
func (r *AdjudicateTrancheRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Decision.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Decision must be APPROVED or REJECTED").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SetServiceWindowRequest represents a request to set the service window
type SetServiceWindowRequest struct {
	StartDate time.Time `json:"start_date" binding:"required" validate:"required"`
	EndDate   time.Time `json:"end_date" binding:"required" validate:"required"`
}

// Validate validates the set service window request
func (r *SetServiceWindowRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.EndDate.After(r.StartDate) {
		return ierr.NewError("end date must be after start date").
			WithHint("The service window end date must be after its start date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TrancheResponse represents a tranche response
type TrancheResponse struct {
	InstallmentNumber int                 `json:"installment_number"`
	Percentage        decimal.Decimal     `json:"percentage"`
	Amount            decimal.Decimal     `json:"amount"`
	DueDate           *time.Time          `json:"due_date,omitempty"`
	Status            types.TrancheStatus `json:"status"`
	TransactionRef    string              `json:"transaction_ref,omitempty"`
	ResubmissionCount int                 `json:"resubmission_count"`
	SubmittedAt       *time.Time          `json:"submitted_at,omitempty"`
	ApprovedAt        *time.Time          `json:"approved_at,omitempty"`
	PaidAt            *time.Time          `json:"paid_at,omitempty"`
	AdminNotes        string              `json:"admin_notes,omitempty"`
}

// PaymentResponse represents a payment response
type PaymentResponse struct {
	ID                 string              `json:"id"`
	PaymentNumber      string              `json:"payment_number"`
	IdempotencyKey     string              `json:"idempotency_key"`
	AccountID          string              `json:"account_id"`
	ServiceID          string              `json:"service_id"`
	PaymentType        types.PaymentType   `json:"payment_type"`
	PaymentStatus      types.PaymentStatus `json:"payment_status"`
	Amount             decimal.Decimal     `json:"amount"`
	AmountPaid         decimal.Decimal     `json:"amount_paid"`
	AmountDue          decimal.Decimal     `json:"amount_due"`
	StartDate          *time.Time          `json:"start_date,omitempty"`
	EndDate            *time.Time          `json:"end_date,omitempty"`
	IsServiceCompleted bool                `json:"is_service_completed"`
	Tranches           []*TrancheResponse  `json:"tranches"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// ListPaymentsResponse represents a paginated list of payments
type ListPaymentsResponse struct {
	Items      []*PaymentResponse       `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// EntitlementResponse reports the derived entitlement phase of a payment
type EntitlementResponse struct {
	PaymentID          string                 `json:"payment_id"`
	Phase              types.EntitlementPhase `json:"phase"`
	StartDate          *time.Time             `json:"start_date,omitempty"`
	EndDate            *time.Time             `json:"end_date,omitempty"`
	IsServiceCompleted bool                   `json:"is_service_completed"`
	EvaluatedAt        time.Time              `json:"evaluated_at"`
}

// NewPaymentResponse creates a new payment response from a payment
func NewPaymentResponse(p *payment.Payment) *PaymentResponse {
	resp := &PaymentResponse{
		ID:                 p.ID,
		PaymentNumber:      p.PaymentNumber,
		IdempotencyKey:     p.IdempotencyKey,
		AccountID:          p.AccountID,
		ServiceID:          p.ServiceID,
		PaymentType:        p.PaymentType,
		PaymentStatus:      p.PaymentStatus,
		Amount:             p.Amount,
		AmountPaid:         p.AmountPaid,
		AmountDue:          p.AmountDue,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		IsServiceCompleted: p.IsServiceCompleted,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}

	resp.Tranches = make([]*TrancheResponse, len(p.Tranches))
	for i, t := range p.Tranches {
		resp.Tranches[i] = NewTrancheResponse(t)
	}

	return resp
}

// NewTrancheResponse creates a new tranche response from a tranche
func NewTrancheResponse(t *payment.Tranche) *TrancheResponse {
	return &TrancheResponse{
		InstallmentNumber: t.InstallmentNumber,
		Percentage:        t.Percentage,
		Amount:            t.Amount,
		DueDate:           t.DueDate,
		Status:            t.Status,
		TransactionRef:    t.TransactionRef,
		ResubmissionCount: t.ResubmissionCount,
		SubmittedAt:       t.SubmittedAt,
		ApprovedAt:        t.ApprovedAt,
		PaidAt:            t.PaidAt,
		AdminNotes:        t.AdminNotes,
	}
}
