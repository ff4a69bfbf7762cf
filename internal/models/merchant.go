package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Merchant is a row of the merchants table.
type Merchant struct {
	MerchantID        string          `db:"merchant_id"`
	DisplayName       string          `db:"display_name"`
	IBAN              string          `db:"iban"`
	Cycle             int             `db:"cycle"`
	OpeningBalance    decimal.Decimal `db:"opening_balance"`
	RunningBalance    decimal.Decimal `db:"running_balance"`
	EligibilityStatus string          `db:"eligibility_status"`
	PayableAmount     decimal.Decimal `db:"payable_amount"`
	CrossingDate      *time.Time      `db:"crossing_date"` // Nullable
	AuditFields
}

// LedgerEntry is a row of the ledger_entries table. Seq keeps the append order.
type LedgerEntry struct {
	MerchantID string          `db:"merchant_id"`
	Cycle      int             `db:"cycle"`
	Seq        int64           `db:"seq"`
	EntryDate  time.Time       `db:"entry_date"`
	NetAmount  decimal.Decimal `db:"net_amount"`
}
