package accounting

import (
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeNet derives the net figures for a volume/refund/commission tuple.
// commissionRate is tax-inclusive (BSMV already folded in) and is applied once.
// Inputs are not clamped: a refund larger than the volume yields a negative net volume.
func ComputeNet(volume, refundVolume, commission, commissionRate decimal.Decimal) domain.NetFigures {
	refundCommission := refundVolume.Mul(commissionRate)
	netVolume := volume.Sub(refundVolume)
	netCommission := commission.Sub(refundCommission)

	return domain.NetFigures{
		RefundCommission:    refundCommission,
		NetVolume:           netVolume,
		NetCommission:       netCommission,
		NetSettlementAmount: netVolume.Sub(netCommission),
	}
}

// SafeDiv returns a / b, or zero when b is zero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// SafeDivCount is SafeDiv with an integer denominator.
func SafeDivCount(a decimal.Decimal, n int) decimal.Decimal {
	return SafeDiv(a, decimal.NewFromInt(int64(n)))
}
