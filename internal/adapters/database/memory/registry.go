package memory

import (
	"sync"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portsrepo "github.com/erayozt/hakedis-sub001/internal/core/ports/repositories"
)

type cycleKey struct {
	merchantID string
	cycle      int
}

// Registry is the in-process merchant registry shared by the memory repositories.
// The lock only keeps the maps consistent; it does not serialize whole workflows.
type Registry struct {
	mu sync.RWMutex

	merchants map[string]*domain.MerchantAccount
	order     []string

	entries map[cycleKey][]domain.DailyLedgerEntry

	approvals      []domain.SettlementApproval
	approvedCycles map[cycleKey]struct{}

	periods     map[string]map[string]domain.StatementPeriod
	periodOrder map[string][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		merchants:      make(map[string]*domain.MerchantAccount),
		entries:        make(map[cycleKey][]domain.DailyLedgerEntry),
		approvedCycles: make(map[cycleKey]struct{}),
		periods:        make(map[string]map[string]domain.StatementPeriod),
		periodOrder:    make(map[string][]string),
	}
}

// NewRepositoryProvider wires all memory repositories to one registry.
func NewRepositoryProvider(reg *Registry) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MerchantRepo:  NewMerchantRepository(reg),
		ApprovalRepo:  NewApprovalRepository(reg),
		StatementRepo: NewStatementRepository(reg),
	}
}

func cloneMerchant(m *domain.MerchantAccount) *domain.MerchantAccount {
	c := *m
	if m.CrossingDate != nil {
		day := *m.CrossingDate
		c.CrossingDate = &day
	}
	return &c
}

func clonePeriod(p domain.StatementPeriod) domain.StatementPeriod {
	if p.Commission != nil {
		commission := *p.Commission
		p.Commission = &commission
	}
	p.Categories = append([]domain.CategoryVolume(nil), p.Categories...)
	return p
}
