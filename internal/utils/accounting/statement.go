package accounting

import (
	"fmt"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultDisplayPlaces is the precision statements are shown with.
const DefaultDisplayPlaces int32 = 2

// BuildStatement derives the statement totals for a period. Every figure is a pure
// function of the period's raw inputs; a period with no activity gives all-zero rows.
func BuildStatement(period domain.StatementPeriod) domain.StatementTotals {
	commission := period.GrossCommission()
	net := ComputeNet(period.Volume, period.RefundVolume, commission, period.CommissionRate)

	totals := domain.StatementTotals{
		PeriodID:         period.PeriodID,
		MerchantID:       period.MerchantID,
		PeriodStart:      period.PeriodStart,
		PeriodEnd:        period.PeriodEnd,
		Volume:           period.Volume,
		RefundVolume:     period.RefundVolume,
		TransactionCount: period.TransactionCount,
		RefundCount:      period.RefundCount,
		CommissionRate:   period.CommissionRate,
		Commission:       commission,
		NetFigures:       net,
		PackageFee:       period.PackageFee,
		OtherFees:        period.OtherFees,
		TotalPayable:     net.NetCommission.Add(period.PackageFee).Add(period.OtherFees),

		AverageTicket: SafeDivCount(period.Volume, period.TransactionCount),
		AverageRefund: SafeDivCount(period.RefundVolume, period.RefundCount),
		RefundRatio:   SafeDiv(period.RefundVolume, period.Volume),
		EffectiveRate: SafeDiv(net.NetCommission, net.NetVolume),
	}

	totals.Rows = append(transactionRows(period, commission), domain.StatementRow{
		Category:   domain.CategoryRefunds,
		Count:      period.RefundCount,
		Volume:     period.RefundVolume.Neg(),
		Commission: net.RefundCommission.Neg(),
		NetAmount:  net.RefundCommission.Sub(period.RefundVolume),
	})

	return totals
}

// transactionRows splits the period volume into category rows. Volume not covered by
// the breakdown lands on an other-transactions row; the last row takes the commission
// remainder so the rows add up exactly.
func transactionRows(period domain.StatementPeriod, commission decimal.Decimal) []domain.StatementRow {
	if len(period.Categories) == 0 {
		return []domain.StatementRow{{
			Category:   domain.CategoryCardTransactions,
			Count:      period.TransactionCount,
			Volume:     period.Volume,
			Commission: commission,
			NetAmount:  period.Volume.Sub(commission),
		}}
	}

	rows := make([]domain.StatementRow, 0, len(period.Categories)+1)
	covered := decimal.Zero
	counted := 0
	for _, c := range period.Categories {
		rows = append(rows, domain.StatementRow{Category: c.Category, Count: c.TransactionCount, Volume: c.Volume})
		covered = covered.Add(c.Volume)
		counted += c.TransactionCount
	}
	if rest := period.Volume.Sub(covered); !rest.IsZero() {
		rows = append(rows, domain.StatementRow{
			Category: domain.CategoryOtherTransactions,
			Count:    max(period.TransactionCount-counted, 0),
			Volume:   rest,
		})
	}

	allocated := decimal.Zero
	for i := range rows {
		if i == len(rows)-1 {
			rows[i].Commission = commission.Sub(allocated)
		} else {
			rows[i].Commission = commission.Mul(SafeDiv(rows[i].Volume, period.Volume))
			allocated = allocated.Add(rows[i].Commission)
		}
		rows[i].NetAmount = rows[i].Volume.Sub(rows[i].Commission)
	}
	return rows
}

// ValidateStatement checks that the statement reconciles: the net identity holds, the
// category rows add up to the net settlement amount and the payable matches its parts.
func ValidateStatement(totals domain.StatementTotals) error {
	if !totals.NetFigures.Reconciles() {
		return fmt.Errorf("%w: net settlement %s != net volume %s - net commission %s", apperrors.ErrValidation,
			totals.NetSettlementAmount, totals.NetVolume, totals.NetCommission)
	}

	sum := decimal.Zero
	for _, row := range totals.Rows {
		sum = sum.Add(row.NetAmount)
	}
	if !sum.Equal(totals.NetSettlementAmount) {
		return fmt.Errorf("%w: category rows sum to %s, net settlement is %s", apperrors.ErrValidation,
			sum, totals.NetSettlementAmount)
	}

	payable := totals.NetCommission.Add(totals.PackageFee).Add(totals.OtherFees)
	if !payable.Equal(totals.TotalPayable) {
		return fmt.Errorf("%w: total payable %s != %s", apperrors.ErrValidation, totals.TotalPayable, payable)
	}
	return nil
}

// RoundForDisplay returns a copy of totals rounded half-up (away from zero) to places.
// Any residue between the rounded rows and the rounded net settlement amount is put on
// the row with the largest absolute net amount, so the displayed rows still add up.
func RoundForDisplay(totals domain.StatementTotals, places int32) domain.StatementTotals {
	r := totals
	r.Volume = totals.Volume.Round(places)
	r.RefundVolume = totals.RefundVolume.Round(places)
	r.Commission = totals.Commission.Round(places)
	r.RefundCommission = totals.RefundCommission.Round(places)
	r.NetVolume = totals.NetVolume.Round(places)
	r.NetCommission = totals.NetCommission.Round(places)
	r.PackageFee = totals.PackageFee.Round(places)
	r.OtherFees = totals.OtherFees.Round(places)
	// Derived from the rounded parts so the displayed statement still adds up.
	r.NetSettlementAmount = r.NetVolume.Sub(r.NetCommission)
	r.TotalPayable = r.NetCommission.Add(r.PackageFee).Add(r.OtherFees)
	r.AverageTicket = totals.AverageTicket.Round(places)
	r.AverageRefund = totals.AverageRefund.Round(places)
	r.RefundRatio = totals.RefundRatio.Round(places + 2)
	r.EffectiveRate = totals.EffectiveRate.Round(places + 2)

	r.Rows = make([]domain.StatementRow, len(totals.Rows))
	sum := decimal.Zero
	largest := -1
	for i, row := range totals.Rows {
		r.Rows[i] = domain.StatementRow{
			Category:   row.Category,
			Count:      row.Count,
			Volume:     row.Volume.Round(places),
			Commission: row.Commission.Round(places),
			NetAmount:  row.NetAmount.Round(places),
		}
		sum = sum.Add(r.Rows[i].NetAmount)
		if largest < 0 || row.NetAmount.Abs().GreaterThan(totals.Rows[largest].NetAmount.Abs()) {
			largest = i
		}
	}
	if diff := r.NetSettlementAmount.Sub(sum); largest >= 0 && !diff.IsZero() {
		r.Rows[largest].NetAmount = r.Rows[largest].NetAmount.Add(diff)
	}
	return r
}
