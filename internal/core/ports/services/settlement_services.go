package services

import (
	"context"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/erayozt/hakedis-sub001/internal/dto"
)

// SettlementSvcFacade defines the approval workflow.
type SettlementSvcFacade interface {
	// ListEligible returns merchants waiting for approval, in registration order.
	ListEligible(ctx context.Context) ([]domain.MerchantAccount, error)

	// Approve approves every requested merchant that is currently eligible. Requested ids
	// that are unknown or not eligible are reported as skipped, never as an error.
	Approve(ctx context.Context, merchantIDs []string, operatorID string) (*domain.ApprovalBatch, error)

	// ListApprovals returns a page of approvals, oldest first.
	ListApprovals(ctx context.Context, params dto.ListApprovalsParams) (*dto.ListApprovalsResponse, error)

	// ExportApprovals renders every approval as CSV.
	ExportApprovals(ctx context.Context) ([]byte, error)
}

// PayoutHook is notified after an approval is stored. A hook error is logged and does
// not undo the approval.
type PayoutHook interface {
	OnSettlementApproved(ctx context.Context, merchant domain.MerchantAccount, approval domain.SettlementApproval) error
}
