package accounting

import (
	"time"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
)

// ListEligible returns the accounts currently waiting for approval, in input order.
func ListEligible(accounts []domain.MerchantAccount) []domain.MerchantAccount {
	eligible := make([]domain.MerchantAccount, 0, len(accounts))
	for _, acc := range accounts {
		if acc.EligibilityStatus == domain.Eligible {
			eligible = append(eligible, acc)
		}
	}
	return eligible
}

// ApproveEligible approves every account in ids that is currently eligible and returns
// the approvals created, in account order. Ids that are unknown or not eligible are
// skipped without error, so approving the same id twice yields one approval.
// newID supplies approval ids.
func ApproveEligible(ids map[string]struct{}, accounts []*domain.MerchantAccount, approvedBy string, now time.Time, newID func() string) []domain.SettlementApproval {
	approvals := make([]domain.SettlementApproval, 0, len(ids))
	for _, acc := range accounts {
		if acc == nil {
			continue
		}
		if _, selected := ids[acc.MerchantID]; !selected || !acc.IsEligible() {
			continue
		}
		if approval, ok := acc.Approve(newID(), approvedBy, now); ok {
			approvals = append(approvals, approval)
		}
	}
	return approvals
}
