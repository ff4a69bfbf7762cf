package dto

import (
	"time"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApproveSettlementsRequest selects the merchants to approve in bulk.
type ApproveSettlementsRequest struct {
	MerchantIDs []string `json:"merchantIDs" binding:"required,min=1,dive,required"`
}

// SettlementApprovalResponse defines the data returned for an approval.
type SettlementApprovalResponse struct {
	ApprovalID     string          `json:"approvalID"`
	MerchantID     string          `json:"merchantID"`
	Cycle          int             `json:"cycle"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
	ApprovedAt     time.Time       `json:"approvedAt"`
	ApprovedBy     string          `json:"approvedBy"`
}

// ApproveSettlementsResponse reports how many of the requested merchants were approved.
type ApproveSettlementsResponse struct {
	Approvals     []SettlementApprovalResponse `json:"approvals"`
	ApprovedCount int                          `json:"approvedCount"`
	SkippedCount  int                          `json:"skippedCount"`
	Skipped       []string                     `json:"skipped"`
}

// ListApprovalsParams defines query parameters for listing approvals.
type ListApprovalsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListApprovalsResponse is a page of approvals.
type ListApprovalsResponse struct {
	Approvals []SettlementApprovalResponse `json:"approvals"`
	NextToken *string                      `json:"nextToken,omitempty"`
}

// ToSettlementApprovalResponse converts a domain.SettlementApproval to its DTO.
func ToSettlementApprovalResponse(a domain.SettlementApproval) SettlementApprovalResponse {
	return SettlementApprovalResponse(a)
}

// ToSettlementApprovalResponses converts a slice of approvals.
func ToSettlementApprovalResponses(approvals []domain.SettlementApproval) []SettlementApprovalResponse {
	res := make([]SettlementApprovalResponse, len(approvals))
	for i, a := range approvals {
		res[i] = ToSettlementApprovalResponse(a)
	}
	return res
}

// ToApproveSettlementsResponse converts a bulk approval outcome.
func ToApproveSettlementsResponse(batch domain.ApprovalBatch) ApproveSettlementsResponse {
	skipped := batch.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	return ApproveSettlementsResponse{
		Approvals:     ToSettlementApprovalResponses(batch.Approvals),
		ApprovedCount: len(batch.Approvals),
		SkippedCount:  len(skipped),
		Skipped:       skipped,
	}
}
