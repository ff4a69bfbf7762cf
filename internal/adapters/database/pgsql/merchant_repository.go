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

const merchantColumns = `merchant_id, display_name, iban, cycle, opening_balance, running_balance,
	eligibility_status, payable_amount, crossing_date,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxMerchantRepository struct {
	BaseRepository
}

func newPgxMerchantRepository(pool *pgxpool.Pool) portsrepo.MerchantRepositoryFacade {
	return &PgxMerchantRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MerchantRepositoryFacade = (*PgxMerchantRepository)(nil)

func (r *PgxMerchantRepository) FindMerchantByID(ctx context.Context, merchantID string) (*domain.MerchantAccount, error) {
	query := `SELECT ` + merchantColumns + ` FROM merchants WHERE merchant_id = $1;`

	rows, err := r.Pool.Query(ctx, query, merchantID)
	if err != nil {
		return nil, notFound(err, "merchant", merchantID)
	}
	modelMerchant, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Merchant])
	if err != nil {
		return nil, notFound(err, "merchant", merchantID)
	}
	merchant := mapping.ToDomainMerchant(modelMerchant)
	return &merchant, nil
}

func (r *PgxMerchantRepository) ListMerchants(ctx context.Context) ([]domain.MerchantAccount, error) {
	query := `SELECT ` + merchantColumns + ` FROM merchants ORDER BY created_at, merchant_id;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list merchants", err)
	}
	modelMerchants, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Merchant])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan merchants", err)
	}
	return mapping.ToDomainMerchantSlice(modelMerchants), nil
}

func (r *PgxMerchantRepository) SaveMerchant(ctx context.Context, merchant domain.MerchantAccount) error {
	m := mapping.ToModelMerchant(merchant)
	query := `
		INSERT INTO merchants (` + merchantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MerchantID, m.DisplayName, m.IBAN, m.Cycle, m.OpeningBalance, m.RunningBalance,
		m.EligibilityStatus, m.PayableAmount, m.CrossingDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("merchant %s: %w", m.MerchantID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert merchant "+m.MerchantID, err)
	}
	return nil
}

func (r *PgxMerchantRepository) UpdateMerchant(ctx context.Context, merchant domain.MerchantAccount) error {
	tag, err := r.Pool.Exec(ctx, updateMerchantQuery, updateMerchantArgs(mapping.ToModelMerchant(merchant))...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update merchant "+merchant.MerchantID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("merchant %s: %w", merchant.MerchantID, apperrors.ErrNotFound)
	}
	return nil
}

const updateMerchantQuery = `
	UPDATE merchants
	SET cycle = $2, opening_balance = $3, running_balance = $4, eligibility_status = $5,
	    payable_amount = $6, crossing_date = $7, last_updated_at = $8, last_updated_by = $9
	WHERE merchant_id = $1;
`

func updateMerchantArgs(m models.Merchant) []any {
	return []any{
		m.MerchantID, m.Cycle, m.OpeningBalance, m.RunningBalance, m.EligibilityStatus,
		m.PayableAmount, m.CrossingDate, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func (r *PgxMerchantRepository) ListEntries(ctx context.Context, merchantID string, cycle int) ([]domain.DailyLedgerEntry, error) {
	query := `
		SELECT merchant_id, cycle, seq, entry_date, net_amount
		FROM ledger_entries
		WHERE merchant_id = $1 AND cycle = $2
		ORDER BY seq;
	`
	rows, err := r.Pool.Query(ctx, query, merchantID, cycle)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list ledger entries of "+merchantID, err)
	}
	modelEntries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan ledger entries of "+merchantID, err)
	}

	entries := make([]domain.DailyLedgerEntry, len(modelEntries))
	for i, e := range modelEntries {
		entries[i] = mapping.ToDomainLedgerEntry(e)
	}
	return entries, nil
}

// AppendEntries locks the merchant row, appends the entries after the last stored
// sequence number and writes the re-evaluated merchant in one transaction. Sequence
// numbers start at 1 with no gaps, so the last one is also the stored entry count.
func (r *PgxMerchantRepository) AppendEntries(ctx context.Context, merchant domain.MerchantAccount, storedCount int, entries []domain.DailyLedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var cycle int
	var status string
	err = tx.QueryRow(ctx,
		`SELECT cycle, eligibility_status FROM merchants WHERE merchant_id = $1 FOR UPDATE;`,
		merchant.MerchantID,
	).Scan(&cycle, &status)
	if err != nil {
		return notFound(err, "merchant", merchant.MerchantID)
	}
	if cycle != merchant.Cycle || domain.EligibilityStatus(status) == domain.Approved {
		return fmt.Errorf("%w: merchant %s moved on while recording activity", apperrors.ErrConflict, merchant.MerchantID)
	}

	var lastSeq int64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM ledger_entries WHERE merchant_id = $1 AND cycle = $2;`,
		merchant.MerchantID, merchant.Cycle,
	).Scan(&lastSeq)
	if err != nil {
		return apperrors.NewAppError(500, "failed to read ledger sequence of "+merchant.MerchantID, err)
	}
	if lastSeq != int64(storedCount) {
		return fmt.Errorf("%w: merchant %s has %d entries, expected %d", apperrors.ErrConflict, merchant.MerchantID, lastSeq, storedCount)
	}

	batch := &pgx.Batch{}
	insert := `
		INSERT INTO ledger_entries (merchant_id, cycle, seq, entry_date, net_amount)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, e := range mapping.ToModelLedgerEntries(merchant.MerchantID, merchant.Cycle, lastSeq+1, entries) {
		batch.Queue(insert, e.MerchantID, e.Cycle, e.Seq, e.EntryDate, e.NetAmount)
	}
	batch.Queue(updateMerchantQuery, updateMerchantArgs(mapping.ToModelMerchant(merchant))...)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to append ledger entries of "+merchant.MerchantID, err)
	}
	return r.Commit(ctx, tx)
}
