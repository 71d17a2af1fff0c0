package payment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

func split(pct float64, offsetDays int) types.InstallmentSplit {
	return types.InstallmentSplit{
		Percentage:    decimal.NewFromFloat(pct),
		DueOffsetDays: offsetDays,
	}
}

func TestBuildTranches_FullPayment(t *testing.T) {
	purchasedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tranches, err := BuildTranches(decimal.NewFromInt(500), nil, purchasedAt)
	require.NoError(t, err)
	require.Len(t, tranches, 1)

	assert.Equal(t, 1, tranches[0].InstallmentNumber)
	assert.True(t, tranches[0].Percentage.Equal(decimal.NewFromInt(100)))
	assert.True(t, tranches[0].Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, types.TrancheStatusPending, tranches[0].Status)
	assert.Nil(t, tranches[0].DueDate)
}

func TestBuildTranches_InstallmentSchedule(t *testing.T) {
	purchasedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	splits := []types.InstallmentSplit{split(30, 0), split(70, 15)}

	tranches, err := BuildTranches(decimal.NewFromInt(1000), splits, purchasedAt)
	require.NoError(t, err)
	require.Len(t, tranches, 2)

	assert.True(t, tranches[0].Amount.Equal(decimal.NewFromInt(300)), "got %s", tranches[0].Amount)
	assert.True(t, tranches[1].Amount.Equal(decimal.NewFromInt(700)), "got %s", tranches[1].Amount)

	// tranche 1 is payable immediately, tranche 2 is due at offset
	assert.Nil(t, tranches[0].DueDate)
	require.NotNil(t, tranches[1].DueDate)
	assert.Equal(t, purchasedAt.AddDate(0, 0, 15), *tranches[1].DueDate)
}

func TestBuildTranches_RoundingFoldedIntoLastTranche(t *testing.T) {
	purchasedAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		price  decimal.Decimal
		splits []types.InstallmentSplit
	}{
		{
			name:   "thirds",
			price:  decimal.NewFromInt(100),
			splits: []types.InstallmentSplit{split(33.33, 0), split(33.33, 10), split(33.34, 20)},
		},
		{
			name:   "odd_price_halves",
			price:  decimal.NewFromFloat(99.99),
			splits: []types.InstallmentSplit{split(50, 0), split(50, 30)},
		},
		{
			name:   "tiny_amounts",
			price:  decimal.NewFromFloat(0.05),
			splits: []types.InstallmentSplit{split(33, 0), split(67, 7)},
		},
		{
			name:   "one_cent_per_tranche",
			price:  decimal.NewFromFloat(0.04),
			splits: []types.InstallmentSplit{split(25, 0), split(25, 10), split(25, 20), split(25, 30)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tranches, err := BuildTranches(tt.price, tt.splits, purchasedAt)
			require.NoError(t, err)

			total := decimal.Zero
			for _, tr := range tranches {
				assert.True(t, tr.Amount.IsPositive(), "tranche %d amount %s is not positive", tr.InstallmentNumber, tr.Amount)
				total = total.Add(tr.Amount)
			}
			assert.True(t, total.Equal(tt.price), "amounts sum to %s, want %s", total, tt.price)
		})
	}
}

func TestBuildTranches_RejectsScheduleTooFineForPrice(t *testing.T) {
	purchasedAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	// four quarters of two cents cannot all receive a positive amount; the
	// old per-tranche rounding handed out three cents and left the last
	// tranche owing -0.01
	splits := []types.InstallmentSplit{split(25, 0), split(25, 10), split(25, 20), split(25, 30)}
	_, err := BuildTranches(decimal.NewFromFloat(0.02), splits, purchasedAt)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestBuildTranches_InvalidInput(t *testing.T) {
	purchasedAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		price  decimal.Decimal
		splits []types.InstallmentSplit
	}{
		{
			name:   "percentages_do_not_sum_to_100",
			price:  decimal.NewFromInt(100),
			splits: []types.InstallmentSplit{split(30, 0), split(60, 10)},
		},
		{
			name:   "zero_percentage",
			price:  decimal.NewFromInt(100),
			splits: []types.InstallmentSplit{split(0, 0), split(100, 10)},
		},
		{
			name:   "negative_percentage",
			price:  decimal.NewFromInt(100),
			splits: []types.InstallmentSplit{split(-10, 0), split(110, 10)},
		},
		{
			name:   "negative_due_offset",
			price:  decimal.NewFromInt(100),
			splits: []types.InstallmentSplit{split(50, -1), split(50, 10)},
		},
		{
			name:  "zero_price",
			price: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTranches(tt.price, tt.splits, purchasedAt)
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}
