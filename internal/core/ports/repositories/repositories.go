package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	MerchantRepo  MerchantRepositoryFacade
	ApprovalRepo  ApprovalRepositoryFacade
	StatementRepo StatementRepository
}
