package pgsql

import (
	"context"
	"fmt"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portsrepo "github.com/erayozt/hakedis-sub001/internal/core/ports/repositories"
	"github.com/erayozt/hakedis-sub001/internal/models"
	"github.com/erayozt/hakedis-sub001/internal/utils/mapping"
	"github.com/erayozt/hakedis-sub001/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const approvalColumns = `approval_id, merchant_id, cycle, approved_amount, approved_at, approved_by`

type PgxApprovalRepository struct {
	BaseRepository
}

func newPgxApprovalRepository(pool *pgxpool.Pool) portsrepo.ApprovalRepositoryFacade {
	return &PgxApprovalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ApprovalRepositoryFacade = (*PgxApprovalRepository)(nil)

// SaveApproval inserts the approval and flips the merchant to APPROVED. The
// unique (merchant_id, cycle) constraint rejects a second approval of a cycle.
func (r *PgxApprovalRepository) SaveApproval(ctx context.Context, merchant domain.MerchantAccount, approval domain.SettlementApproval) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var cycle int
	var status string
	err = tx.QueryRow(ctx,
		`SELECT cycle, eligibility_status FROM merchants WHERE merchant_id = $1 FOR UPDATE;`,
		approval.MerchantID,
	).Scan(&cycle, &status)
	if err != nil {
		return notFound(err, "merchant", approval.MerchantID)
	}
	switch {
	case domain.EligibilityStatus(status) == domain.Approved && cycle == approval.Cycle:
		return fmt.Errorf("merchant %s cycle %d: %w", approval.MerchantID, approval.Cycle, apperrors.ErrDuplicate)
	case cycle != approval.Cycle || domain.EligibilityStatus(status) != domain.Eligible:
		return fmt.Errorf("%w: merchant %s is no longer eligible", apperrors.ErrConflict, approval.MerchantID)
	}

	a := mapping.ToModelSettlementApproval(approval)
	_, err = tx.Exec(ctx, `
		INSERT INTO settlement_approvals (`+approvalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		a.ApprovalID, a.MerchantID, a.Cycle, a.ApprovedAmount, a.ApprovedAt, a.ApprovedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("merchant %s cycle %d: %w", a.MerchantID, a.Cycle, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert approval "+a.ApprovalID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE merchants
		SET eligibility_status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE merchant_id = $1;`,
		merchant.MerchantID, string(domain.Approved), merchant.LastUpdatedAt, merchant.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark merchant "+merchant.MerchantID+" approved", err)
	}
	return r.Commit(ctx, tx)
}

// ListApprovals pages through approvals by (approved_at, approval_id).
func (r *PgxApprovalRepository) ListApprovals(ctx context.Context, limit int, nextToken *string) ([]domain.SettlementApproval, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	query := `SELECT ` + approvalColumns + ` FROM settlement_approvals`
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` WHERE (approved_at, approval_id) > ($1, $2)`
		args = append(args, cursor.At, cursor.ID)
	}
	query += fmt.Sprintf(` ORDER BY approved_at, approval_id LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list approvals", err)
	}
	modelApprovals, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SettlementApproval])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan approvals", err)
	}

	var next *string
	if len(modelApprovals) > limit {
		modelApprovals = modelApprovals[:limit]
		last := modelApprovals[limit-1]
		token := pagination.EncodeToken(last.ApprovedAt, last.ApprovalID)
		next = &token
	}
	return toDomainApprovals(modelApprovals), next, nil
}

func (r *PgxApprovalRepository) ListApprovalsByMerchant(ctx context.Context, merchantID string) ([]domain.SettlementApproval, error) {
	query := `SELECT ` + approvalColumns + ` FROM settlement_approvals
		WHERE merchant_id = $1 ORDER BY approved_at, approval_id;`

	rows, err := r.Pool.Query(ctx, query, merchantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list approvals of "+merchantID, err)
	}
	modelApprovals, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SettlementApproval])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan approvals of "+merchantID, err)
	}
	return toDomainApprovals(modelApprovals), nil
}

func toDomainApprovals(ms []models.SettlementApproval) []domain.SettlementApproval {
	approvals := make([]domain.SettlementApproval, len(ms))
	for i, m := range ms {
		approvals[i] = mapping.ToDomainSettlementApproval(m)
	}
	return approvals
}
