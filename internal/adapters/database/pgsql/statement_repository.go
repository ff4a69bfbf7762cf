package pgsql

import (
	"context"
	"fmt"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portsrepo "github.com/erayozt/hakedis-sub001/internal/core/ports/repositories"
	"github.com/erayozt/hakedis-sub001/internal/models"
	"github.com/erayozt/hakedis-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const statementColumns = `period_id, merchant_id, period_start, period_end, volume, refund_volume,
	transaction_count, refund_count, commission_rate, commission, package_fee, other_fees, categories,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxStatementRepository struct {
	BaseRepository
}

func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepository {
	return &PgxStatementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StatementRepository = (*PgxStatementRepository)(nil)

func (r *PgxStatementRepository) SaveStatementPeriod(ctx context.Context, period domain.StatementPeriod) error {
	p, err := mapping.ToModelStatementPeriod(period)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	query := `
		INSERT INTO statement_periods (` + statementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = r.Pool.Exec(ctx, query,
		p.PeriodID, p.MerchantID, p.PeriodStart, p.PeriodEnd, p.Volume, p.RefundVolume,
		p.TransactionCount, p.RefundCount, p.CommissionRate, p.Commission, p.PackageFee, p.OtherFees, p.Categories,
		p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("statement period %s: %w", p.PeriodID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert statement period "+p.PeriodID, err)
	}
	return nil
}

func (r *PgxStatementRepository) FindStatementPeriod(ctx context.Context, merchantID, periodID string) (*domain.StatementPeriod, error) {
	query := `SELECT ` + statementColumns + ` FROM statement_periods WHERE merchant_id = $1 AND period_id = $2;`

	rows, err := r.Pool.Query(ctx, query, merchantID, periodID)
	if err != nil {
		return nil, notFound(err, "statement period", periodID)
	}
	modelPeriod, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.StatementPeriod])
	if err != nil {
		return nil, notFound(err, "statement period", periodID)
	}
	period, err := mapping.ToDomainStatementPeriod(modelPeriod)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map statement period "+periodID, err)
	}
	return &period, nil
}

func (r *PgxStatementRepository) ListStatementPeriods(ctx context.Context, merchantID string) ([]domain.StatementPeriod, error) {
	query := `SELECT ` + statementColumns + ` FROM statement_periods
		WHERE merchant_id = $1 ORDER BY period_start, period_id;`

	rows, err := r.Pool.Query(ctx, query, merchantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list statement periods of "+merchantID, err)
	}
	modelPeriods, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.StatementPeriod])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan statement periods of "+merchantID, err)
	}

	periods := make([]domain.StatementPeriod, 0, len(modelPeriods))
	for _, m := range modelPeriods {
		p, err := mapping.ToDomainStatementPeriod(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to map statement period "+m.PeriodID, err)
		}
		periods = append(periods, p)
	}
	return periods, nil
}
