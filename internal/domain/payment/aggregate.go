package payment

import (
	"github.com/shopspring/decimal"

	"github.com/digiserve/digiserve/internal/types"
)

// Recompute re-derives the purchase-level status and totals from tranche
// state. It runs after every accepted tranche transition, inside the same
// update as the transition itself, and must never be skipped: the stored
// status is a materialized view, not ground truth.
func (p *Payment) Recompute() {
	paid := decimal.Zero
	settled := 0
	progressed := 0
	for _, t := range p.Tranches {
		if t.Status.IsSettled() {
			paid = paid.Add(t.Amount)
			settled++
		}
		if t.Status != types.TrancheStatusPending {
			progressed++
		}
	}

	p.AmountPaid = paid
	p.AmountDue = p.Amount.Sub(paid)
	if p.AmountDue.IsNegative() {
		p.AmountDue = decimal.Zero
	}

	p.PaymentStatus = p.deriveStatus(settled)
}

func (p *Payment) deriveStatus(settled int) types.PaymentStatus {
	if settled == len(p.Tranches) {
		return types.PaymentStatusApproved
	}

	current := p.NextUnresolvedTranche()
	if current != nil && current.Status == types.TrancheStatusRejected && !p.progressedAfter(current) {
		return types.PaymentStatusRejected
	}

	if settled > 0 {
		return types.PaymentStatusPartial
	}

	return types.PaymentStatusPending
}

// progressedAfter reports whether any tranche after the given one has left
// pending. The submission sequence guard makes this impossible in normal
// operation; it keeps the rejected derivation honest against imported data.
func (p *Payment) progressedAfter(current *Tranche) bool {
	for _, t := range p.Tranches[current.InstallmentNumber:] {
		if t.Status != types.TrancheStatusPending {
			return true
		}
	}
	return false
}
