package accounting_test

import (
	"testing"
	"time"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/erayozt/hakedis-sub001/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(n int) time.Time {
	return time.Date(2024, 3, n, 0, 0, 0, 0, time.UTC)
}

// entries builds one entry per amount, on consecutive days starting at March 1st.
func entries(amounts ...string) []domain.DailyLedgerEntry {
	out := make([]domain.DailyLedgerEntry, len(amounts))
	for i, a := range amounts {
		out[i] = domain.DailyLedgerEntry{Date: day(i + 1), NetAmount: dec(a)}
	}
	return out
}

func TestComputeEligibility(t *testing.T) {
	tests := []struct {
		name         string
		opening      string
		amounts      []string
		wantStatus   domain.EligibilityStatus
		wantPayable  string
		wantCrossing int // day of month, 0 for none
		wantBalances []string
		wantFrozen   int
	}{
		{
			name:         "basic crossing",
			opening:      "-100",
			amounts:      []string{"30", "40", "50"},
			wantStatus:   domain.Eligible,
			wantPayable:  "20",
			wantCrossing: 3,
			wantBalances: []string{"-100", "-70", "-30", "20"},
		},
		{
			name:         "no crossing",
			opening:      "-100",
			amounts:      []string{"10", "10", "10"},
			wantStatus:   domain.NoSettlement,
			wantPayable:  "-70",
			wantBalances: []string{"-100", "-90", "-80", "-70"},
		},
		{
			name:         "freeze after crossing",
			opening:      "-10",
			amounts:      []string{"20", "-5", "100"},
			wantStatus:   domain.Eligible,
			wantPayable:  "10",
			wantCrossing: 1,
			wantBalances: []string{"-10", "10"},
			wantFrozen:   2,
		},
		{
			name:         "zero counts as not yet settled",
			opening:      "0",
			amounts:      []string{"5"},
			wantStatus:   domain.Eligible,
			wantPayable:  "5",
			wantCrossing: 1,
			wantBalances: []string{"0", "5"},
		},
		{
			name:         "positive to negative to positive crosses once",
			opening:      "-5",
			amounts:      []string{"10", "-20", "30"},
			wantStatus:   domain.Eligible,
			wantPayable:  "5",
			wantCrossing: 1,
			wantBalances: []string{"-5", "5"},
			wantFrozen:   2,
		},
		{
			name:         "positive opening balance never crosses",
			opening:      "50",
			amounts:      []string{"10", "-5"},
			wantStatus:   domain.NoSettlement,
			wantPayable:  "55",
			wantBalances: []string{"50", "60", "55"},
		},
		{
			name:         "landing exactly on zero is not a crossing",
			opening:      "-40",
			amounts:      []string{"40"},
			wantStatus:   domain.NoSettlement,
			wantPayable:  "0",
			wantBalances: []string{"-40", "0"},
		},
		{
			name:         "empty window",
			opening:      "-12.34",
			wantStatus:   domain.NoSettlement,
			wantPayable:  "-12.34",
			wantBalances: []string{"-12.34"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := accounting.ComputeEligibility(dec(tt.opening), entries(tt.amounts...))

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.True(t, dec(tt.wantPayable).Equal(res.PayableAmount), "payable: got %s, want %s", res.PayableAmount, tt.wantPayable)
			assert.Equal(t, tt.wantFrozen, res.FrozenEntries)

			if tt.wantCrossing == 0 {
				assert.Nil(t, res.CrossingDate)
			} else {
				require.NotNil(t, res.CrossingDate)
				assert.Equal(t, day(tt.wantCrossing), *res.CrossingDate)
			}

			require.Len(t, res.History, len(tt.wantBalances))
			assert.True(t, res.History[0].IsOpeningEntry)
			assert.True(t, res.History[0].NetAmount.IsZero())
			for i, want := range tt.wantBalances {
				assert.True(t, dec(want).Equal(res.History[i].BalanceAfter), "row %d: got %s, want %s", i, res.History[i].BalanceAfter, want)
				if i > 0 {
					assert.False(t, res.History[i].IsOpeningEntry)
				}
			}
		})
	}
}

func TestComputeEligibility_DoesNotMutateInput(t *testing.T) {
	in := entries("30", "40", "50")
	_ = accounting.ComputeEligibility(dec("-100"), in)

	for _, e := range in {
		assert.True(t, e.BalanceAfter.IsZero())
	}
}

func TestValidateEntryOrder(t *testing.T) {
	assert.NoError(t, accounting.ValidateEntryOrder(nil))
	assert.NoError(t, accounting.ValidateEntryOrder(entries("1", "2", "3")))

	unsorted := entries("1", "2")
	unsorted[0].Date, unsorted[1].Date = unsorted[1].Date, unsorted[0].Date
	assert.ErrorIs(t, accounting.ValidateEntryOrder(unsorted), apperrors.ErrValidation)

	sameDay := entries("1", "2")
	sameDay[1].Date = sameDay[0].Date
	assert.ErrorIs(t, accounting.ValidateEntryOrder(sameDay), apperrors.ErrValidation)

	opening := entries("1")
	opening[0].IsOpeningEntry = true
	assert.ErrorIs(t, accounting.ValidateEntryOrder(opening), apperrors.ErrValidation)

	undated := []domain.DailyLedgerEntry{{NetAmount: dec("1")}}
	assert.ErrorIs(t, accounting.ValidateEntryOrder(undated), apperrors.ErrValidation)
}

func TestValidateScale(t *testing.T) {
	assert.NoError(t, accounting.ValidateScale("amount", dec("12.3456"), accounting.AmountScale))
	assert.NoError(t, accounting.ValidateScale("amount", dec("12.30000"), accounting.AmountScale))
	assert.NoError(t, accounting.ValidateScale("amount", dec("-7"), accounting.AmountScale))
	assert.ErrorIs(t, accounting.ValidateScale("amount", dec("0.00001"), accounting.AmountScale), apperrors.ErrValidation)
	assert.ErrorIs(t, accounting.ValidateScale("rate", dec("0.0000001"), accounting.RateScale), apperrors.ErrValidation)
}

func TestValidateEntryScale(t *testing.T) {
	assert.NoError(t, accounting.ValidateEntryScale(entries("1.0001", "-2.5")))

	err := accounting.ValidateEntryScale(entries("1", "0.00005"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "entry 1")
}
