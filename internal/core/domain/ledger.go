package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyLedgerEntry is one day of net activity for a merchant.
// The opening row of a history carries the cycle's carry-over and no net amount.
type DailyLedgerEntry struct {
	Date           time.Time       `json:"date"`
	NetAmount      decimal.Decimal `json:"netAmount"` // positive = net inflow
	BalanceAfter   decimal.Decimal `json:"balanceAfter"`
	IsOpeningEntry bool            `json:"isOpeningEntry"`
}

// EligibilityResult is the outcome of walking a cycle's ledger entries.
type EligibilityResult struct {
	Status        EligibilityStatus  `json:"status"`
	PayableAmount decimal.Decimal    `json:"payableAmount"`
	FinalBalance  decimal.Decimal    `json:"finalBalance"`
	CrossingDate  *time.Time         `json:"crossingDate,omitempty"`
	History       []DailyLedgerEntry `json:"history"`
	FrozenEntries int                `json:"frozenEntries"` // entries ignored after the crossing
}
