package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminStatsResponse is the admin dashboard summary
type AdminStatsResponse struct {
	TotalAccounts      int `json:"total_accounts"`
	SuspiciousAccounts int `json:"suspicious_accounts"`
	ActiveServices     int `json:"active_services"`

	TotalPayments    int `json:"total_payments"`
	PendingPayments  int `json:"pending_payments"`
	PartialPayments  int `json:"partial_payments"`
	ApprovedPayments int `json:"approved_payments"`
	RejectedPayments int `json:"rejected_payments"`

	// Tranches submitted and awaiting adjudication
	AwaitingAdjudication int `json:"awaiting_adjudication"`
	// Installment payments whose next unresolved tranche is past due
	OverduePayments int `json:"overdue_payments"`

	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	OutstandingTotal decimal.Decimal `json:"outstanding_total"`

	GeneratedAt time.Time `json:"generated_at"`
}

// SuspicionScanResponse is the result of one suspicion monitor run
type SuspicionScanResponse struct {
	ScannedPayments   int       `json:"scanned_payments"`
	FlaggedAccountIDs []string  `json:"flagged_account_ids"`
	RanAt             time.Time `json:"ran_at"`
}
