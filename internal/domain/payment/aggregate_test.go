package payment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digiserve/digiserve/internal/types"
)

// checkTotals asserts amountPaid + amountDue == amount, which must hold
// after every transition
func checkTotals(t *testing.T, p *Payment) {
	t.Helper()
	assert.True(t, p.AmountPaid.Add(p.AmountDue).Equal(p.Amount),
		"amountPaid %s + amountDue %s != amount %s", p.AmountPaid, p.AmountDue, p.Amount)
}

func TestRecompute_InstallmentLifecycle(t *testing.T) {
	now := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	p := newInstallmentPayment(t)

	// fresh payment
	assert.Equal(t, types.PaymentStatusPending, p.PaymentStatus)
	assert.True(t, p.AmountPaid.IsZero())
	assert.True(t, p.AmountDue.Equal(decimal.NewFromInt(1000)))
	checkTotals(t, p)

	// submitted evidence alone does not count as settled
	_, err := p.SubmitTranche(1, "txn-001", now)
	require.NoError(t, err)
	assert.Equal(t, types.PaymentStatusPending, p.PaymentStatus)
	assert.True(t, p.AmountPaid.IsZero())
	checkTotals(t, p)

	// approving tranche 1 of the 30/70 plan: partial, 300 paid, 700 due
	_, err = p.AdjudicateTranche(1, types.AdjudicationDecisionApproved, "", now)
	require.NoError(t, err)
	assert.Equal(t, types.PaymentStatusPartial, p.PaymentStatus)
	assert.True(t, p.AmountPaid.Equal(decimal.NewFromInt(300)), "got %s", p.AmountPaid)
	assert.True(t, p.AmountDue.Equal(decimal.NewFromInt(700)), "got %s", p.AmountDue)
	checkTotals(t, p)

	// approving tranche 2: fully approved, nothing due
	_, err = p.SubmitTranche(2, "txn-002", now)
	require.NoError(t, err)
	_, err = p.AdjudicateTranche(2, types.AdjudicationDecisionApproved, "", now)
	require.NoError(t, err)
	assert.Equal(t, types.PaymentStatusApproved, p.PaymentStatus)
	assert.True(t, p.AmountPaid.Equal(decimal.NewFromInt(1000)))
	assert.True(t, p.AmountDue.IsZero())
	assert.True(t, p.IsSettled())
	checkTotals(t, p)
}

func TestRecompute_RejectedStatus(t *testing.T) {
	now := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("first_tranche_rejected", func(t *testing.T) {
		p := newInstallmentPayment(t)

		_, err := p.SubmitTranche(1, "txn-001", now)
		require.NoError(t, err)
		_, err = p.AdjudicateTranche(1, types.AdjudicationDecisionRejected, "bad ref", now)
		require.NoError(t, err)

		assert.Equal(t, types.PaymentStatusRejected, p.PaymentStatus)
		checkTotals(t, p)
	})

	t.Run("resubmission_clears_rejected_status", func(t *testing.T) {
		p := newInstallmentPayment(t)

		_, err := p.SubmitTranche(1, "txn-001", now)
		require.NoError(t, err)
		_, err = p.AdjudicateTranche(1, types.AdjudicationDecisionRejected, "bad ref", now)
		require.NoError(t, err)
		_, err = p.SubmitTranche(1, "txn-001-retry", now)
		require.NoError(t, err)

		assert.Equal(t, types.PaymentStatusPending, p.PaymentStatus)
	})

	t.Run("later_rejection_after_partial", func(t *testing.T) {
		p := newInstallmentPayment(t)

		_, err := p.SubmitTranche(1, "txn-001", now)
		require.NoError(t, err)
		_, err = p.AdjudicateTranche(1, types.AdjudicationDecisionApproved, "", now)
		require.NoError(t, err)
		_, err = p.SubmitTranche(2, "txn-002", now)
		require.NoError(t, err)
		_, err = p.AdjudicateTranche(2, types.AdjudicationDecisionRejected, "partial transfer", now)
		require.NoError(t, err)

		// the rejected current tranche dominates the earlier approval
		assert.Equal(t, types.PaymentStatusRejected, p.PaymentStatus)
		assert.True(t, p.AmountPaid.Equal(decimal.NewFromInt(300)))
		checkTotals(t, p)
	})
}

func TestRecompute_MarkPaidKeepsTotals(t *testing.T) {
	now := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	p := newInstallmentPayment(t)

	_, err := p.SubmitTranche(1, "txn-001", now)
	require.NoError(t, err)
	_, err = p.AdjudicateTranche(1, types.AdjudicationDecisionApproved, "", now)
	require.NoError(t, err)
	paidBefore := p.AmountPaid

	// approved already counts as settled, mark-paid must not double count
	_, err = p.MarkTranchePaid(1, now)
	require.NoError(t, err)
	assert.True(t, p.AmountPaid.Equal(paidBefore))
	checkTotals(t, p)
}

func TestPaymentValidate(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid_installment", func(t *testing.T) {
		p := newInstallmentPayment(t)
		assert.NoError(t, p.Validate())
	})

	t.Run("full_payment_needs_one_tranche", func(t *testing.T) {
		p := newInstallmentPayment(t)
		p.PaymentType = types.PaymentTypeFull
		assert.Error(t, p.Validate())
	})

	t.Run("installment_needs_two_tranches", func(t *testing.T) {
		tranches, err := BuildTranches(decimal.NewFromInt(100), nil, now)
		require.NoError(t, err)

		p := &Payment{
			AccountID:   "acct_test",
			ServiceID:   "svc_test",
			PaymentType: types.PaymentTypeInstallment,
			Amount:      decimal.NewFromInt(100),
			Tranches:    tranches,
		}
		assert.Error(t, p.Validate())
	})

	t.Run("amounts_must_sum_to_payment_amount", func(t *testing.T) {
		p := newInstallmentPayment(t)
		p.Tranches[0].Amount = p.Tranches[0].Amount.Add(decimal.NewFromInt(1))
		assert.Error(t, p.Validate())
	})
}
