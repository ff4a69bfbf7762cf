package dto

import (
	"time"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryRequest is one day of net activity.
type LedgerEntryRequest struct {
	Date      time.Time       `json:"date" binding:"required"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// RecordActivityRequest appends daily entries to a merchant's current cycle.
type RecordActivityRequest struct {
	Entries []LedgerEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// EligibilityPreviewRequest evaluates an ad-hoc ledger without touching any merchant.
type EligibilityPreviewRequest struct {
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	Entries        []LedgerEntryRequest `json:"entries" binding:"dive"`
}

// ToLedgerEntries converts request entries to domain entries.
func ToLedgerEntries(reqs []LedgerEntryRequest) []domain.DailyLedgerEntry {
	entries := make([]domain.DailyLedgerEntry, len(reqs))
	for i, r := range reqs {
		entries[i] = domain.DailyLedgerEntry{Date: r.Date, NetAmount: r.NetAmount}
	}
	return entries
}

// LedgerEntryResponse is one row of a ledger history. The opening row has no date
// and a null net amount.
type LedgerEntryResponse struct {
	Date           *time.Time       `json:"date,omitempty"`
	NetAmount      *decimal.Decimal `json:"netAmount"`
	BalanceAfter   decimal.Decimal  `json:"balanceAfter"`
	IsOpeningEntry bool             `json:"isOpeningEntry"`
}

// ToLedgerEntryResponse converts one history row.
func ToLedgerEntryResponse(e domain.DailyLedgerEntry) LedgerEntryResponse {
	res := LedgerEntryResponse{BalanceAfter: e.BalanceAfter, IsOpeningEntry: e.IsOpeningEntry}
	if !e.IsOpeningEntry {
		date, amount := e.Date, e.NetAmount
		res.Date = &date
		res.NetAmount = &amount
	}
	return res
}

// EligibilityResponse is the evaluated state of a ledger.
type EligibilityResponse struct {
	MerchantID    string                   `json:"merchantID,omitempty"`
	Cycle         int                      `json:"cycle,omitempty"`
	Status        domain.EligibilityStatus `json:"status"`
	PayableAmount decimal.Decimal          `json:"payableAmount"`
	FinalBalance  decimal.Decimal          `json:"finalBalance"`
	CrossingDate  *time.Time               `json:"crossingDate,omitempty"`
	FrozenEntries int                      `json:"frozenEntries"`
	History       []LedgerEntryResponse    `json:"history"`
}

// ToEligibilityResponse converts an evaluation to its DTO. merchant may be nil for previews.
func ToEligibilityResponse(merchant *domain.MerchantAccount, res domain.EligibilityResult) EligibilityResponse {
	out := EligibilityResponse{
		Status:        res.Status,
		PayableAmount: res.PayableAmount,
		FinalBalance:  res.FinalBalance,
		CrossingDate:  res.CrossingDate,
		FrozenEntries: res.FrozenEntries,
		History:       make([]LedgerEntryResponse, len(res.History)),
	}
	if merchant != nil {
		out.MerchantID = merchant.MerchantID
		out.Cycle = merchant.Cycle
	}
	for i, e := range res.History {
		out.History[i] = ToLedgerEntryResponse(e)
	}
	return out
}
