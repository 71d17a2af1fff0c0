package types

import (
	"fmt"

	"github.com/samber/lo"
)

// PaymentType represents how a purchase is settled
type PaymentType string

const (
	PaymentTypeFull        PaymentType = "FULL"
	PaymentTypeInstallment PaymentType = "INSTALLMENT"
)

func (t PaymentType) String() string {
	return string(t)
}

func (t PaymentType) Validate() error {
	allowed := []PaymentType{
		PaymentTypeFull,
		PaymentTypeInstallment,
	}
	if !lo.Contains(allowed, t) {
		return fmt.Errorf("invalid payment type: %s", t)
	}
	return nil
}

// PaymentStatus represents the derived status of a payment aggregate.
// It is recomputed from tranche states after every transition and is
// never accepted from an external caller.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPartial  PaymentStatus = "PARTIAL"
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusRejected PaymentStatus = "REJECTED"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) Validate() error {
	allowed := []PaymentStatus{
		PaymentStatusPending,
		PaymentStatusPartial,
		PaymentStatusApproved,
		PaymentStatusRejected,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid payment status: %s", s)
	}
	return nil
}

// TrancheStatus represents the status of a single installment tranche
type TrancheStatus string

const (
	TrancheStatusPending   TrancheStatus = "PENDING"
	TrancheStatusSubmitted TrancheStatus = "SUBMITTED"
	TrancheStatusApproved  TrancheStatus = "APPROVED"
	TrancheStatusRejected  TrancheStatus = "REJECTED"
	TrancheStatusPaid      TrancheStatus = "PAID"
)

func (s TrancheStatus) String() string {
	return string(s)
}

func (s TrancheStatus) Validate() error {
	allowed := []TrancheStatus{
		TrancheStatusPending,
		TrancheStatusSubmitted,
		TrancheStatusApproved,
		TrancheStatusRejected,
		TrancheStatusPaid,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid tranche status: %s", s)
	}
	return nil
}

// IsTerminal returns true once a tranche can no longer transition
func (s TrancheStatus) IsTerminal() bool {
	return s == TrancheStatusPaid
}

// IsSettled returns true when a tranche counts toward the paid amount.
// Approved counts as settled: funds are treated as received on
// verification, not on the separate ledger-closing step.
func (s TrancheStatus) IsSettled() bool {
	return s == TrancheStatusApproved || s == TrancheStatusPaid
}

// AdjudicationDecision is an administrator's verdict on submitted evidence
type AdjudicationDecision string

const (
	AdjudicationDecisionApproved AdjudicationDecision = "APPROVED"
	AdjudicationDecisionRejected AdjudicationDecision = "REJECTED"
)

func (d AdjudicationDecision) Validate() error {
	allowed := []AdjudicationDecision{
		AdjudicationDecisionApproved,
		AdjudicationDecisionRejected,
	}
	if !lo.Contains(allowed, d) {
		return fmt.Errorf("invalid adjudication decision: %s", d)
	}
	return nil
}

// EntitlementPhase is the customer-visible lifecycle state of a purchased
// service. It is derived at read time and never persisted.
type EntitlementPhase string

const (
	EntitlementPhasePending   EntitlementPhase = "PENDING"
	EntitlementPhaseActive    EntitlementPhase = "ACTIVE"
	EntitlementPhaseExpired   EntitlementPhase = "EXPIRED"
	EntitlementPhaseCompleted EntitlementPhase = "COMPLETED"
	EntitlementPhaseRejected  EntitlementPhase = "REJECTED"
)

func (p EntitlementPhase) String() string {
	return string(p)
}

// PaymentFilter represents the filter for listing payments
type PaymentFilter struct {
	*QueryFilter
	*TimeRangeFilter

	PaymentIDs    []string `form:"payment_ids"`
	AccountID     *string  `form:"account_id"`
	ServiceID     *string  `form:"service_id"`
	PaymentType   *string  `form:"payment_type"`
	PaymentStatus *string  `form:"payment_status"`
}

// NewNoLimitPaymentFilter creates a new payment filter with no limit
func NewNoLimitPaymentFilter() *PaymentFilter {
	return &PaymentFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the payment filter
func (f *PaymentFilter) Validate() error {
	if f == nil {
		return nil
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	if err := f.TimeRangeFilter.Validate(); err != nil {
		return err
	}
	if f.PaymentType != nil {
		if err := PaymentType(*f.PaymentType).Validate(); err != nil {
			return err
		}
	}
	if f.PaymentStatus != nil {
		if err := PaymentStatus(*f.PaymentStatus).Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *PaymentFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *PaymentFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// IsUnlimited returns true if the filter has no limit
func (f *PaymentFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
