package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementApproval is a row of the settlement_approvals table.
// (merchant_id, cycle) is unique.
type SettlementApproval struct {
	ApprovalID     string          `db:"approval_id"`
	MerchantID     string          `db:"merchant_id"`
	Cycle          int             `db:"cycle"`
	ApprovedAmount decimal.Decimal `db:"approved_amount"`
	ApprovedAt     time.Time       `db:"approved_at"`
	ApprovedBy     string          `db:"approved_by"`
}
