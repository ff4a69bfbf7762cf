package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementApproval records a payout approval. There is at most one per merchant and cycle.
type SettlementApproval struct {
	ApprovalID     string          `json:"approvalID"`
	MerchantID     string          `json:"merchantID"`
	Cycle          int             `json:"cycle"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
	ApprovedAt     time.Time       `json:"approvedAt"`
	ApprovedBy     string          `json:"approvedBy"`
}

// ApprovalBatch is the outcome of a bulk approval: the approvals actually created and
// the requested ids that were skipped because they were unknown or not eligible.
type ApprovalBatch struct {
	Approvals []SettlementApproval `json:"approvals"`
	Skipped   []string             `json:"skipped"`
}
