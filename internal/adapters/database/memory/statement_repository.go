package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portsrepo "github.com/erayozt/hakedis-sub001/internal/core/ports/repositories"
)

// StatementRepository keeps the raw inputs of statement periods in the registry.
type StatementRepository struct {
	reg *Registry
}

// NewStatementRepository creates a statement repository backed by reg.
func NewStatementRepository(reg *Registry) portsrepo.StatementRepository {
	return &StatementRepository{reg: reg}
}

var _ portsrepo.StatementRepository = (*StatementRepository)(nil)

func (r *StatementRepository) SaveStatementPeriod(ctx context.Context, period domain.StatementPeriod) error {
	if period.MerchantID == "" || period.PeriodID == "" {
		return fmt.Errorf("%w: merchant id and period id are required", apperrors.ErrValidation)
	}

	r.reg.mu.Lock()
	defer r.reg.mu.Unlock()

	byID, ok := r.reg.periods[period.MerchantID]
	if !ok {
		byID = make(map[string]domain.StatementPeriod)
		r.reg.periods[period.MerchantID] = byID
	}
	if _, exists := byID[period.PeriodID]; exists {
		return fmt.Errorf("statement period %s: %w", period.PeriodID, apperrors.ErrDuplicate)
	}
	byID[period.PeriodID] = clonePeriod(period)
	r.reg.periodOrder[period.MerchantID] = append(r.reg.periodOrder[period.MerchantID], period.PeriodID)
	return nil
}

func (r *StatementRepository) FindStatementPeriod(ctx context.Context, merchantID, periodID string) (*domain.StatementPeriod, error) {
	r.reg.mu.RLock()
	defer r.reg.mu.RUnlock()

	p, ok := r.reg.periods[merchantID][periodID]
	if !ok {
		return nil, fmt.Errorf("statement period %s: %w", periodID, apperrors.ErrNotFound)
	}
	c := clonePeriod(p)
	return &c, nil
}

func (r *StatementRepository) ListStatementPeriods(ctx context.Context, merchantID string) ([]domain.StatementPeriod, error) {
	r.reg.mu.RLock()
	defer r.reg.mu.RUnlock()

	periods := make([]domain.StatementPeriod, 0, len(r.reg.periodOrder[merchantID]))
	for _, id := range r.reg.periodOrder[merchantID] {
		periods = append(periods, clonePeriod(r.reg.periods[merchantID][id]))
	}
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].PeriodStart.Before(periods[j].PeriodStart)
	})
	return periods, nil
}
