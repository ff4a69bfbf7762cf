package memory

import (
	"context"
	"fmt"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portsrepo "github.com/erayozt/hakedis-sub001/internal/core/ports/repositories"
)

// MerchantRepository keeps merchants and their ledger entries in the registry.
type MerchantRepository struct {
	reg *Registry
}

// NewMerchantRepository creates a merchant repository backed by reg.
func NewMerchantRepository(reg *Registry) portsrepo.MerchantRepositoryFacade {
	return &MerchantRepository{reg: reg}
}

var _ portsrepo.MerchantRepositoryFacade = (*MerchantRepository)(nil)

func (r *MerchantRepository) FindMerchantByID(ctx context.Context, merchantID string) (*domain.MerchantAccount, error) {
	r.reg.mu.RLock()
	defer r.reg.mu.RUnlock()

	m, ok := r.reg.merchants[merchantID]
	if !ok {
		return nil, fmt.Errorf("merchant %s: %w", merchantID, apperrors.ErrNotFound)
	}
	return cloneMerchant(m), nil
}

func (r *MerchantRepository) ListMerchants(ctx context.Context) ([]domain.MerchantAccount, error) {
	r.reg.mu.RLock()
	defer r.reg.mu.RUnlock()

	merchants := make([]domain.MerchantAccount, 0, len(r.reg.order))
	for _, id := range r.reg.order {
		merchants = append(merchants, *cloneMerchant(r.reg.merchants[id]))
	}
	return merchants, nil
}

func (r *MerchantRepository) SaveMerchant(ctx context.Context, merchant domain.MerchantAccount) error {
	if merchant.MerchantID == "" {
		return fmt.Errorf("%w: merchant id is required", apperrors.ErrValidation)
	}

	r.reg.mu.Lock()
	defer r.reg.mu.Unlock()

	if _, exists := r.reg.merchants[merchant.MerchantID]; exists {
		return fmt.Errorf("merchant %s: %w", merchant.MerchantID, apperrors.ErrDuplicate)
	}
	r.reg.merchants[merchant.MerchantID] = cloneMerchant(&merchant)
	r.reg.order = append(r.reg.order, merchant.MerchantID)
	return nil
}

func (r *MerchantRepository) UpdateMerchant(ctx context.Context, merchant domain.MerchantAccount) error {
	r.reg.mu.Lock()
	defer r.reg.mu.Unlock()

	if _, exists := r.reg.merchants[merchant.MerchantID]; !exists {
		return fmt.Errorf("merchant %s: %w", merchant.MerchantID, apperrors.ErrNotFound)
	}
	r.reg.merchants[merchant.MerchantID] = cloneMerchant(&merchant)
	return nil
}

func (r *MerchantRepository) ListEntries(ctx context.Context, merchantID string, cycle int) ([]domain.DailyLedgerEntry, error) {
	r.reg.mu.RLock()
	defer r.reg.mu.RUnlock()

	stored := r.reg.entries[cycleKey{merchantID, cycle}]
	return append([]domain.DailyLedgerEntry(nil), stored...), nil
}

func (r *MerchantRepository) AppendEntries(ctx context.Context, merchant domain.MerchantAccount, storedCount int, entries []domain.DailyLedgerEntry) error {
	r.reg.mu.Lock()
	defer r.reg.mu.Unlock()

	current, exists := r.reg.merchants[merchant.MerchantID]
	if !exists {
		return fmt.Errorf("merchant %s: %w", merchant.MerchantID, apperrors.ErrNotFound)
	}
	if current.Cycle != merchant.Cycle || current.EligibilityStatus == domain.Approved {
		return fmt.Errorf("%w: merchant %s moved on while recording activity", apperrors.ErrConflict, merchant.MerchantID)
	}

	key := cycleKey{merchant.MerchantID, merchant.Cycle}
	if n := len(r.reg.entries[key]); n != storedCount {
		return fmt.Errorf("%w: merchant %s has %d entries, expected %d", apperrors.ErrConflict, merchant.MerchantID, n, storedCount)
	}
	r.reg.entries[key] = append(r.reg.entries[key], entries...)
	r.reg.merchants[merchant.MerchantID] = cloneMerchant(&merchant)
	return nil
}
