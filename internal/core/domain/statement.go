package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementCategory names a row on a statement.
type StatementCategory string

const (
	CategoryCardTransactions  StatementCategory = "card-transactions"
	CategoryOtherTransactions StatementCategory = "other-transactions"
	CategoryRefunds           StatementCategory = "refunds"
)

// CategoryVolume is an optional breakdown of a period's volume (e.g. "stored-card").
type CategoryVolume struct {
	Category         StatementCategory `json:"category"`
	Volume           decimal.Decimal   `json:"volume"`
	TransactionCount int               `json:"transactionCount"`
}

// StatementPeriod holds the raw inputs for one merchant and one reporting period.
// Derived figures are never stored here; see StatementTotals.
type StatementPeriod struct {
	PeriodID         string           `json:"periodID"`
	MerchantID       string           `json:"merchantID"`
	PeriodStart      time.Time        `json:"periodStart"`
	PeriodEnd        time.Time        `json:"periodEnd"`
	Volume           decimal.Decimal  `json:"volume"`
	RefundVolume     decimal.Decimal  `json:"refundVolume"`
	TransactionCount int              `json:"transactionCount"`
	RefundCount      int              `json:"refundCount"`
	CommissionRate   decimal.Decimal  `json:"commissionRate"` // tax-inclusive fraction
	Commission       *decimal.Decimal `json:"commission,omitempty"`
	PackageFee       decimal.Decimal  `json:"packageFee"`
	OtherFees        decimal.Decimal  `json:"otherFees"`
	Categories       []CategoryVolume `json:"categories,omitempty"`
	AuditFields
}

// GrossCommission is the explicit commission if given, otherwise volume * rate.
func (p StatementPeriod) GrossCommission() decimal.Decimal {
	if p.Commission != nil {
		return *p.Commission
	}
	return p.Volume.Mul(p.CommissionRate)
}

// NetFigures is the commission calculator output.
type NetFigures struct {
	RefundCommission    decimal.Decimal `json:"refundCommission"`
	NetVolume           decimal.Decimal `json:"netVolume"`
	NetCommission       decimal.Decimal `json:"netCommission"`
	NetSettlementAmount decimal.Decimal `json:"netSettlementAmount"`
}

// Reconciles reports whether NetSettlementAmount == NetVolume - NetCommission.
func (n NetFigures) Reconciles() bool {
	return n.NetSettlementAmount.Equal(n.NetVolume.Sub(n.NetCommission))
}

// StatementRow is one category line on a statement.
type StatementRow struct {
	Category   StatementCategory `json:"category"`
	Count      int               `json:"count"`
	Volume     decimal.Decimal   `json:"volume"`
	Commission decimal.Decimal   `json:"commission"`
	NetAmount  decimal.Decimal   `json:"netAmount"`
}

// StatementTotals is the read-only statement consumed by renderers and exports.
type StatementTotals struct {
	PeriodID         string          `json:"periodID"`
	MerchantID       string          `json:"merchantID"`
	PeriodStart      time.Time       `json:"periodStart"`
	PeriodEnd        time.Time       `json:"periodEnd"`
	Volume           decimal.Decimal `json:"volume"`
	RefundVolume     decimal.Decimal `json:"refundVolume"`
	TransactionCount int             `json:"transactionCount"`
	RefundCount      int             `json:"refundCount"`
	CommissionRate   decimal.Decimal `json:"commissionRate"`
	Commission       decimal.Decimal `json:"commission"`
	NetFigures
	PackageFee   decimal.Decimal `json:"packageFee"`
	OtherFees    decimal.Decimal `json:"otherFees"`
	TotalPayable decimal.Decimal `json:"totalPayable"` // owed by the merchant to the platform

	AverageTicket decimal.Decimal `json:"averageTicket"`
	AverageRefund decimal.Decimal `json:"averageRefund"`
	RefundRatio   decimal.Decimal `json:"refundRatio"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`

	Rows []StatementRow `json:"rows"`
}
