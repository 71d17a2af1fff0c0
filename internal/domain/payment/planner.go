package payment

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/types"
)

var hundred = decimal.NewFromInt(100)

// BuildTranches materializes the tranche schedule for a purchase.
//
// An empty split configuration yields a single 100% tranche payable
// immediately. Otherwise amounts are allocated cumulatively: tranche i
// receives round(price * cumPct_i / 100, 2) minus what earlier tranches
// already took, and the last tranche absorbs the remainder so the amounts
// sum to the price exactly. Cumulative rounding is monotone, so no tranche
// can go negative from rounding alone; a schedule too fine for the price
// (a tranche rounding down to zero or below) is rejected. The first
// tranche has no due date; tranche i>1 is due purchasedAt + dueOffsetDays_i.
func BuildTranches(price decimal.Decimal, splits []types.InstallmentSplit, purchasedAt time.Time) ([]*Tranche, error) {
	if price.IsZero() || price.IsNegative() {
		return nil, ierr.NewError("invalid price").
			WithHint("Price must be greater than 0").
			Mark(ierr.ErrValidation)
	}

	if len(splits) == 0 {
		return []*Tranche{
			{
				InstallmentNumber: 1,
				Percentage:        hundred,
				Amount:            price,
				Status:            types.TrancheStatusPending,
			},
		}, nil
	}

	totalPct := decimal.Zero
	for _, s := range splits {
		if s.Percentage.IsZero() || s.Percentage.IsNegative() {
			return nil, ierr.NewError("split percentage must be greater than 0").
				WithHint("Every split percentage must be greater than 0").
				Mark(ierr.ErrValidation)
		}
		if s.DueOffsetDays < 0 {
			return nil, ierr.NewError("split due offset must be non-negative").
				WithHint("Due offsets must be zero or more days").
				Mark(ierr.ErrValidation)
		}
		totalPct = totalPct.Add(s.Percentage)
	}
	if !totalPct.Equal(hundred) {
		return nil, ierr.NewErrorf("split percentages sum to %s, want 100", totalPct).
			WithHint("Split percentages must sum to exactly 100").
			WithReportableDetails(map[string]any{
				"total_percentage": totalPct.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	tranches := make([]*Tranche, len(splits))
	allocated := decimal.Zero
	cumPct := decimal.Zero
	for i, s := range splits {
		cumPct = cumPct.Add(s.Percentage)
		target := price.Mul(cumPct).Div(hundred).Round(2)
		if i == len(splits)-1 {
			// the last tranche absorbs the remainder
			target = price
		}
		amount := target.Sub(allocated)
		if !amount.IsPositive() {
			return nil, ierr.NewErrorf("tranche %d amount is %s", i+1, amount).
				WithHint("The schedule is too fine-grained for this price").
				WithReportableDetails(map[string]any{
					"installment_number": i + 1,
					"price":              price.String(),
				}).
				Mark(ierr.ErrValidation)
		}
		allocated = target

		t := &Tranche{
			InstallmentNumber: i + 1,
			Percentage:        s.Percentage,
			Amount:            amount,
			Status:            types.TrancheStatusPending,
		}
		if i > 0 {
			due := purchasedAt.AddDate(0, 0, s.DueOffsetDays)
			t.DueDate = &due
		}
		tranches[i] = t
	}

	return tranches, nil
}
