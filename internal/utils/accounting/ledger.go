package accounting

import (
	"fmt"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places stored for money amounts. RateScale is
// the same for commission rates. Inputs finer than this are rejected rather than
// rounded so a reloaded ledger replays to the same balance.
const (
	AmountScale int32 = 4
	RateScale   int32 = 6
)

// ValidateScale rejects an amount with more than places decimal places.
func ValidateScale(field string, amount decimal.Decimal, places int32) error {
	if !amount.Equal(amount.Truncate(places)) {
		return fmt.Errorf("%w: %s %s has more than %d decimal places", apperrors.ErrValidation, field, amount, places)
	}
	return nil
}

// ValidateEntryScale checks every entry amount against AmountScale.
func ValidateEntryScale(entries []domain.DailyLedgerEntry) error {
	for i, entry := range entries {
		if err := ValidateScale(fmt.Sprintf("entry %d net amount", i), entry.NetAmount, AmountScale); err != nil {
			return err
		}
	}
	return nil
}

// ComputeEligibility folds a cycle's daily entries into a running balance starting at
// openingBalance and detects the first day the balance moves from <= 0 to > 0.
//
// Entries must be sorted ascending by date; they are not sorted here. Once the crossing
// is found the walk freezes: later entries change neither the balance nor the payable
// amount and are not added to the history.
func ComputeEligibility(openingBalance decimal.Decimal, entries []domain.DailyLedgerEntry) domain.EligibilityResult {
	res := domain.EligibilityResult{
		Status:  domain.NoSettlement,
		History: make([]domain.DailyLedgerEntry, 0, len(entries)+1),
	}
	res.History = append(res.History, domain.DailyLedgerEntry{
		BalanceAfter:   openingBalance,
		IsOpeningEntry: true,
	})

	balance := openingBalance
	for _, entry := range entries {
		if res.Status == domain.Eligible {
			res.FrozenEntries++
			continue
		}

		before := balance
		balance = balance.Add(entry.NetAmount)

		if before.LessThanOrEqual(decimal.Zero) && balance.GreaterThan(decimal.Zero) {
			res.Status = domain.Eligible
			day := entry.Date
			res.CrossingDate = &day
		}

		res.History = append(res.History, domain.DailyLedgerEntry{
			Date:         entry.Date,
			NetAmount:    entry.NetAmount,
			BalanceAfter: balance,
		})
	}

	res.FinalBalance = balance
	res.PayableAmount = balance
	return res
}

// ValidateEntryOrder checks the accumulator precondition: strictly ascending dates,
// no opening rows mixed into the input.
func ValidateEntryOrder(entries []domain.DailyLedgerEntry) error {
	for i, entry := range entries {
		if entry.IsOpeningEntry {
			return fmt.Errorf("%w: entry %d is an opening entry", apperrors.ErrValidation, i)
		}
		if entry.Date.IsZero() {
			return fmt.Errorf("%w: entry %d has no date", apperrors.ErrValidation, i)
		}
		if i > 0 && !entry.Date.After(entries[i-1].Date) {
			return fmt.Errorf("%w: entry %d (%s) is not after %s", apperrors.ErrValidation, i,
				entry.Date.Format("2006-01-02"), entries[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}
