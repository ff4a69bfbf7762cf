package repositories

import (
	"context"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
)

// ApprovalReader defines read operations for settlement approvals.
type ApprovalReader interface {
	// ListApprovals returns approvals ordered by approval time using token pagination.
	ListApprovals(ctx context.Context, limit int, nextToken *string) ([]domain.SettlementApproval, *string, error)

	// ListApprovalsByMerchant returns every approval of a merchant, oldest first.
	ListApprovalsByMerchant(ctx context.Context, merchantID string) ([]domain.SettlementApproval, error)
}

// ApprovalWriter defines write operations for settlement approvals.
type ApprovalWriter interface {
	// SaveApproval stores the approval and the approved merchant together.
	// Returns apperrors.ErrDuplicate if the merchant's cycle was already approved.
	SaveApproval(ctx context.Context, merchant domain.MerchantAccount, approval domain.SettlementApproval) error
}

// ApprovalRepositoryFacade combines the approval interfaces.
type ApprovalRepositoryFacade interface {
	ApprovalReader
	ApprovalWriter
}
