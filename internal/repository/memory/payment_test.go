package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digiserve/digiserve/internal/domain/payment"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

func newStoredPayment(t *testing.T, store *InMemoryPaymentStore, id string, paymentType types.PaymentType) *payment.Payment {
	t.Helper()

	splits := []types.InstallmentSplit{
		{Percentage: decimal.NewFromInt(100), DueOffsetDays: 0},
	}
	if paymentType == types.PaymentTypeInstallment {
		splits = []types.InstallmentSplit{
			{Percentage: decimal.NewFromInt(30), DueOffsetDays: 0},
			{Percentage: decimal.NewFromInt(70), DueOffsetDays: 15},
		}
	}

	tranches, err := payment.BuildTranches(decimal.NewFromInt(1000), splits, time.Now().UTC())
	require.NoError(t, err)

	p := &payment.Payment{
		ID:            id,
		PaymentNumber: "PAY-" + id,
		AccountID:     "acct_1",
		ServiceID:     "svc_1",
		PaymentType:   paymentType,
		Amount:        decimal.NewFromInt(1000),
		Tranches:      tranches,
		Version:       1,
		BaseModel:     types.GetDefaultBaseModel(context.Background()),
	}
	p.Recompute()
	require.NoError(t, store.Create(context.Background(), p))
	return p
}

func TestPaymentStoreVersionConflict(t *testing.T) {
	store := NewInMemoryPaymentStore()
	ctx := context.Background()
	created := newStoredPayment(t, store, "pay_1", types.PaymentTypeInstallment)

	first, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	second, err := store.Get(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, first))
	assert.Equal(t, 2, first.Version)

	// the stale copy still carries version 1 and must lose the race
	err = store.Update(ctx, second)
	require.Error(t, err)
	assert.True(t, ierr.IsVersionConflict(err))
}

func TestPaymentStoreGetReturnsCopies(t *testing.T) {
	store := NewInMemoryPaymentStore()
	ctx := context.Background()
	created := newStoredPayment(t, store, "pay_1", types.PaymentTypeInstallment)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)

	// mutating the returned copy must not leak into the store
	got.Tranches[0].Status = types.TrancheStatusPaid

	fresh, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, types.TrancheStatusPending, fresh.Tranches[0].Status)
}

func TestPaymentStoreGetByIdempotencyKey(t *testing.T) {
	store := NewInMemoryPaymentStore()
	ctx := context.Background()

	created := newStoredPayment(t, store, "pay_1", types.PaymentTypeFull)
	created.IdempotencyKey = "checkout-1"
	require.NoError(t, store.Update(ctx, created))

	found, err := store.GetByIdempotencyKey(ctx, "checkout-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = store.GetByIdempotencyKey(ctx, "missing")
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
}

func TestPaymentStoreListUnsettledInstallments(t *testing.T) {
	store := NewInMemoryPaymentStore()
	ctx := context.Background()

	newStoredPayment(t, store, "pay_full", types.PaymentTypeFull)
	unsettled := newStoredPayment(t, store, "pay_open", types.PaymentTypeInstallment)

	settled := newStoredPayment(t, store, "pay_done", types.PaymentTypeInstallment)
	for _, tr := range settled.Tranches {
		tr.Status = types.TrancheStatusApproved
	}
	settled.Recompute()
	require.NoError(t, store.Update(ctx, settled))

	payments, err := store.ListUnsettledInstallments(ctx, 10)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, unsettled.ID, payments[0].ID)
}

func TestPaymentStoreListUnsettledInstallmentsLimit(t *testing.T) {
	store := NewInMemoryPaymentStore()
	ctx := context.Background()

	newStoredPayment(t, store, "pay_1", types.PaymentTypeInstallment)
	newStoredPayment(t, store, "pay_2", types.PaymentTypeInstallment)
	newStoredPayment(t, store, "pay_3", types.PaymentTypeInstallment)

	payments, err := store.ListUnsettledInstallments(ctx, 2)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	// oldest first, so a bounded scan always reaches the longest-waiting payments
	assert.Equal(t, "pay_1", payments[0].ID)
	assert.Equal(t, "pay_2", payments[1].ID)
}

func TestPaymentStoreDuplicateCreate(t *testing.T) {
	store := NewInMemoryPaymentStore()
	ctx := context.Background()
	created := newStoredPayment(t, store, "pay_1", types.PaymentTypeFull)

	err := store.Create(ctx, created)
	require.Error(t, err)
	assert.True(t, ierr.IsAlreadyExists(err))
}
