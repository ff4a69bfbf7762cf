package pgsql

import (
	portsrepo "github.com/erayozt/hakedis-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MerchantRepo:  newPgxMerchantRepository(dbPool),
		ApprovalRepo:  newPgxApprovalRepository(dbPool),
		StatementRepo: newPgxStatementRepository(dbPool),
	}
}
