package services

import (
	portsrepo "github.com/erayozt/hakedis-sub001/internal/core/ports/repositories"
	portssvc "github.com/erayozt/hakedis-sub001/internal/core/ports/services"
	"github.com/erayozt/hakedis-sub001/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// hook may be nil.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, renderer portssvc.StatementRenderer, hook portssvc.PayoutHook) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Merchant = NewMerchantService(repos.MerchantRepo, cfg.StrictLedgerValidation)
	container.Statement = NewStatementService(repos.StatementRepo, repos.MerchantRepo, renderer, cfg.DisplayPrecision)

	settlementOpts := []SettlementOption{}
	if hook != nil {
		settlementOpts = append(settlementOpts, WithPayoutHook(hook))
	}
	container.Settlement = NewSettlementService(repos.MerchantRepo, repos.ApprovalRepo, renderer, settlementOpts...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.MerchantSvcFacade   = (*merchantService)(nil)
	_ portssvc.StatementSvcFacade  = (*statementService)(nil)
	_ portssvc.SettlementSvcFacade = (*settlementService)(nil)
)
