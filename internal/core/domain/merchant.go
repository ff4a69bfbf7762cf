package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EligibilityStatus is the settlement state of a merchant within its current cycle.
type EligibilityStatus string

const (
	NoSettlement EligibilityStatus = "NO_SETTLEMENT"
	Eligible     EligibilityStatus = "ELIGIBLE"
	Approved     EligibilityStatus = "APPROVED"
)

// MerchantAccount is a merchant's payout identity together with its settlement state.
// Consumers refer to merchants by MerchantID and re-read them through the registry.
type MerchantAccount struct {
	MerchantID        string            `json:"merchantID"`
	DisplayName       string            `json:"displayName"`
	IBAN              string            `json:"iban"`
	Cycle             int               `json:"cycle"`          // settlement cycle, starts at 1
	OpeningBalance    decimal.Decimal   `json:"openingBalance"` // carry-over seed of the current cycle
	RunningBalance    decimal.Decimal   `json:"runningBalance"`
	EligibilityStatus EligibilityStatus `json:"eligibilityStatus"`
	PayableAmount     decimal.Decimal   `json:"payableAmount"`
	CrossingDate      *time.Time        `json:"crossingDate,omitempty"`
	AuditFields
}

// IsEligible reports whether the merchant is waiting for payout approval.
func (m *MerchantAccount) IsEligible() bool {
	return m != nil && m.EligibilityStatus == Eligible
}

// ApplyEligibility copies the accumulator outcome onto the account.
// An approved account is terminal for its cycle and is left untouched.
func (m *MerchantAccount) ApplyEligibility(res EligibilityResult) bool {
	if m.EligibilityStatus == Approved {
		return false
	}
	m.RunningBalance = res.FinalBalance
	m.EligibilityStatus = res.Status
	m.PayableAmount = res.PayableAmount
	m.CrossingDate = res.CrossingDate
	return true
}

// Approve moves an eligible account to Approved and returns the approval record.
// The second return value is false when the account was not eligible; nothing changes then.
func (m *MerchantAccount) Approve(approvalID, approvedBy string, now time.Time) (SettlementApproval, bool) {
	if !m.IsEligible() {
		return SettlementApproval{}, false
	}
	m.EligibilityStatus = Approved
	m.LastUpdatedAt = now
	m.LastUpdatedBy = approvedBy
	return SettlementApproval{
		ApprovalID:     approvalID,
		MerchantID:     m.MerchantID,
		Cycle:          m.Cycle,
		ApprovedAmount: m.PayableAmount,
		ApprovedAt:     now,
		ApprovedBy:     approvedBy,
	}, true
}

// StartCycle resets the account for the next settlement cycle, seeded with openingBalance.
func (m *MerchantAccount) StartCycle(openingBalance decimal.Decimal, by string, now time.Time) {
	m.Cycle++
	m.OpeningBalance = openingBalance
	m.RunningBalance = openingBalance
	m.EligibilityStatus = NoSettlement
	m.PayableAmount = openingBalance
	m.CrossingDate = nil
	m.LastUpdatedAt = now
	m.LastUpdatedBy = by
}
