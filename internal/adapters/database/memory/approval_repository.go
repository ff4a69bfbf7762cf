package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portsrepo "github.com/erayozt/hakedis-sub001/internal/core/ports/repositories"
	"github.com/erayozt/hakedis-sub001/internal/utils/pagination"
)

// ApprovalRepository keeps settlement approvals in the registry.
type ApprovalRepository struct {
	reg *Registry
}

// NewApprovalRepository creates an approval repository backed by reg.
func NewApprovalRepository(reg *Registry) portsrepo.ApprovalRepositoryFacade {
	return &ApprovalRepository{reg: reg}
}

var _ portsrepo.ApprovalRepositoryFacade = (*ApprovalRepository)(nil)

// SaveApproval records the approval and marks the merchant approved. Only the
// eligibility status and audit fields of the stored merchant change.
func (r *ApprovalRepository) SaveApproval(ctx context.Context, merchant domain.MerchantAccount, approval domain.SettlementApproval) error {
	r.reg.mu.Lock()
	defer r.reg.mu.Unlock()

	current, exists := r.reg.merchants[approval.MerchantID]
	if !exists {
		return fmt.Errorf("merchant %s: %w", approval.MerchantID, apperrors.ErrNotFound)
	}
	key := cycleKey{approval.MerchantID, approval.Cycle}
	if _, done := r.reg.approvedCycles[key]; done || current.EligibilityStatus == domain.Approved {
		return fmt.Errorf("merchant %s cycle %d: %w", approval.MerchantID, approval.Cycle, apperrors.ErrDuplicate)
	}
	if current.Cycle != approval.Cycle || current.EligibilityStatus != domain.Eligible {
		return fmt.Errorf("%w: merchant %s is no longer eligible", apperrors.ErrConflict, approval.MerchantID)
	}

	current.EligibilityStatus = domain.Approved
	current.LastUpdatedAt = merchant.LastUpdatedAt
	current.LastUpdatedBy = merchant.LastUpdatedBy
	r.reg.approvedCycles[key] = struct{}{}

	i := sort.Search(len(r.reg.approvals), func(i int) bool {
		return pagination.Cursor{At: approval.ApprovedAt, ID: approval.ApprovalID}.After(r.reg.approvals[i].ApprovedAt, r.reg.approvals[i].ApprovalID)
	})
	r.reg.approvals = append(r.reg.approvals, domain.SettlementApproval{})
	copy(r.reg.approvals[i+1:], r.reg.approvals[i:])
	r.reg.approvals[i] = approval
	return nil
}

func (r *ApprovalRepository) ListApprovals(ctx context.Context, limit int, nextToken *string) ([]domain.SettlementApproval, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	r.reg.mu.RLock()
	defer r.reg.mu.RUnlock()

	start := 0
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		start = sort.Search(len(r.reg.approvals), func(i int) bool {
			return cursor.After(r.reg.approvals[i].ApprovedAt, r.reg.approvals[i].ApprovalID)
		})
	}

	end := min(start+limit, len(r.reg.approvals))
	page := append([]domain.SettlementApproval{}, r.reg.approvals[start:end]...)

	var next *string
	if end < len(r.reg.approvals) && len(page) > 0 {
		last := page[len(page)-1]
		token := pagination.EncodeToken(last.ApprovedAt, last.ApprovalID)
		next = &token
	}
	return page, next, nil
}

func (r *ApprovalRepository) ListApprovalsByMerchant(ctx context.Context, merchantID string) ([]domain.SettlementApproval, error) {
	r.reg.mu.RLock()
	defer r.reg.mu.RUnlock()

	approvals := []domain.SettlementApproval{}
	for _, a := range r.reg.approvals {
		if a.MerchantID == merchantID {
			approvals = append(approvals, a)
		}
	}
	return approvals, nil
}
