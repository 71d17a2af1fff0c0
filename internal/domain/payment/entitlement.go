package payment

import (
	"time"

	"github.com/digiserve/digiserve/internal/types"
)

// PhaseOf derives the customer-visible lifecycle phase of a purchased
// service from payment state and wall-clock time. Pure: no side effects,
// re-evaluated on every read, never persisted.
//
// The precedence is load-bearing. An administrator's completed or
// rejected override always dominates date math, and missing dates never
// produce an active phase.
func PhaseOf(p *Payment, now time.Time) types.EntitlementPhase {
	switch {
	case p.IsServiceCompleted:
		return types.EntitlementPhaseCompleted
	case p.PaymentStatus == types.PaymentStatusRejected:
		return types.EntitlementPhaseRejected
	case p.PaymentStatus == types.PaymentStatusPending:
		return types.EntitlementPhasePending
	case p.StartDate == nil || p.EndDate == nil:
		return types.EntitlementPhasePending
	case now.Before(*p.StartDate):
		return types.EntitlementPhasePending
	case !now.After(*p.EndDate):
		return types.EntitlementPhaseActive
	default:
		return types.EntitlementPhaseExpired
	}
}
