package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementPeriod is a row of the statement_periods table. Categories is a JSON array.
type StatementPeriod struct {
	PeriodID         string           `db:"period_id"`
	MerchantID       string           `db:"merchant_id"`
	PeriodStart      time.Time        `db:"period_start"`
	PeriodEnd        time.Time        `db:"period_end"`
	Volume           decimal.Decimal  `db:"volume"`
	RefundVolume     decimal.Decimal  `db:"refund_volume"`
	TransactionCount int              `db:"transaction_count"`
	RefundCount      int              `db:"refund_count"`
	CommissionRate   decimal.Decimal  `db:"commission_rate"`
	Commission       *decimal.Decimal `db:"commission"` // Nullable, volume * rate when null
	PackageFee       decimal.Decimal  `db:"package_fee"`
	OtherFees        decimal.Decimal  `db:"other_fees"`
	Categories       []byte           `db:"categories"`
	AuditFields
}
