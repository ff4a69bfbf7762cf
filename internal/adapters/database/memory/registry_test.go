package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func eligibleMerchant(id string) domain.MerchantAccount {
	return domain.MerchantAccount{
		MerchantID:        id,
		Cycle:             1,
		EligibilityStatus: domain.Eligible,
		PayableAmount:     decimal.NewFromInt(10),
	}
}

func approvalOf(m domain.MerchantAccount, id string, at time.Time) domain.SettlementApproval {
	return domain.SettlementApproval{
		ApprovalID:     id,
		MerchantID:     m.MerchantID,
		Cycle:          m.Cycle,
		ApprovedAmount: m.PayableAmount,
		ApprovedAt:     at,
		ApprovedBy:     "ops",
	}
}

func TestMerchantRepository_SaveFindList(t *testing.T) {
	ctx := context.Background()
	repo := NewMerchantRepository(NewRegistry())

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.SaveMerchant(ctx, domain.MerchantAccount{MerchantID: id, Cycle: 1}))
	}
	assert.ErrorIs(t, repo.SaveMerchant(ctx, domain.MerchantAccount{MerchantID: "a"}), apperrors.ErrDuplicate)
	assert.ErrorIs(t, repo.SaveMerchant(ctx, domain.MerchantAccount{}), apperrors.ErrValidation)

	merchants, err := repo.ListMerchants(ctx)
	require.NoError(t, err)
	require.Len(t, merchants, 3)
	assert.Equal(t, "c", merchants[0].MerchantID)
	assert.Equal(t, "a", merchants[1].MerchantID)

	_, err = repo.FindMerchantByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMerchantRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMerchantRepository(NewRegistry())
	crossing := baseTime
	require.NoError(t, repo.SaveMerchant(ctx, domain.MerchantAccount{MerchantID: "m", CrossingDate: &crossing}))

	got, err := repo.FindMerchantByID(ctx, "m")
	require.NoError(t, err)
	got.DisplayName = "changed"
	*got.CrossingDate = baseTime.AddDate(1, 0, 0)

	again, err := repo.FindMerchantByID(ctx, "m")
	require.NoError(t, err)
	assert.Empty(t, again.DisplayName)
	assert.Equal(t, baseTime, *again.CrossingDate)
}

func TestMerchantRepository_AppendEntries(t *testing.T) {
	ctx := context.Background()
	repo := NewMerchantRepository(NewRegistry())
	m := domain.MerchantAccount{MerchantID: "m", Cycle: 1, EligibilityStatus: domain.NoSettlement}
	require.NoError(t, repo.SaveMerchant(ctx, m))

	m.RunningBalance = decimal.NewFromInt(-5)
	require.NoError(t, repo.AppendEntries(ctx, m, 0, []domain.DailyLedgerEntry{{Date: baseTime, NetAmount: decimal.NewFromInt(-5)}}))
	require.NoError(t, repo.AppendEntries(ctx, m, 1, []domain.DailyLedgerEntry{{Date: baseTime.AddDate(0, 0, 1), NetAmount: decimal.NewFromInt(2)}}))

	entries, err := repo.ListEntries(ctx, "m", 1)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	other, err := repo.ListEntries(ctx, "m", 2)
	require.NoError(t, err)
	assert.Empty(t, other)

	stored, err := repo.FindMerchantByID(ctx, "m")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-5).Equal(stored.RunningBalance))

	stale := m
	stale.Cycle = 2
	assert.ErrorIs(t, repo.AppendEntries(ctx, stale, 2, nil), apperrors.ErrConflict)
}

func TestMerchantRepository_AppendEntriesStaleCount(t *testing.T) {
	ctx := context.Background()
	repo := NewMerchantRepository(NewRegistry())
	m := domain.MerchantAccount{MerchantID: "m", Cycle: 1, EligibilityStatus: domain.NoSettlement}
	require.NoError(t, repo.SaveMerchant(ctx, m))

	// two writers both evaluated an empty cycle
	first := []domain.DailyLedgerEntry{{Date: baseTime, NetAmount: decimal.NewFromInt(-5)}}
	second := []domain.DailyLedgerEntry{{Date: baseTime.AddDate(0, 0, 1), NetAmount: decimal.NewFromInt(7)}}
	require.NoError(t, repo.AppendEntries(ctx, m, 0, first))
	assert.ErrorIs(t, repo.AppendEntries(ctx, m, 0, second), apperrors.ErrConflict)

	entries, err := repo.ListEntries(ctx, "m", 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, decimal.NewFromInt(-5).Equal(entries[0].NetAmount))
}

func TestMerchantRepository_AppendEntriesConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	repo := NewMerchantRepository(NewRegistry())
	m := domain.MerchantAccount{MerchantID: "m", Cycle: 1, EligibilityStatus: domain.NoSettlement}
	require.NoError(t, repo.SaveMerchant(ctx, m))

	const writers = 8
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry := domain.DailyLedgerEntry{Date: baseTime, NetAmount: decimal.NewFromInt(int64(i + 1))}
			errs[i] = repo.AppendEntries(ctx, m, 0, []domain.DailyLedgerEntry{entry})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)

	entries, err := repo.ListEntries(ctx, "m", 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestApprovalRepository_OnePerCycle(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()
	merchants := NewMerchantRepository(reg)
	approvals := NewApprovalRepository(reg)
	m := eligibleMerchant("m")
	require.NoError(t, merchants.SaveMerchant(ctx, m))

	require.NoError(t, approvals.SaveApproval(ctx, m, approvalOf(m, "a1", baseTime)))
	err := approvals.SaveApproval(ctx, m, approvalOf(m, "a2", baseTime))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	stored, err := merchants.FindMerchantByID(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, domain.Approved, stored.EligibilityStatus)

	byMerchant, err := approvals.ListApprovalsByMerchant(ctx, "m")
	require.NoError(t, err)
	assert.Len(t, byMerchant, 1)
}

func TestApprovalRepository_RejectsNotEligible(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()
	merchants := NewMerchantRepository(reg)
	approvals := NewApprovalRepository(reg)
	m := domain.MerchantAccount{MerchantID: "m", Cycle: 1, EligibilityStatus: domain.NoSettlement}
	require.NoError(t, merchants.SaveMerchant(ctx, m))

	assert.ErrorIs(t, approvals.SaveApproval(ctx, m, approvalOf(m, "a1", baseTime)), apperrors.ErrConflict)
	assert.ErrorIs(t, approvals.SaveApproval(ctx, m, approvalOf(domain.MerchantAccount{MerchantID: "ghost"}, "a2", baseTime)), apperrors.ErrNotFound)
}

func TestApprovalRepository_Pagination(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()
	merchants := NewMerchantRepository(reg)
	approvals := NewApprovalRepository(reg)

	// Saved out of time order; listing is ordered by approval time then id.
	times := []int{3, 1, 2, 1, 5}
	for i, minute := range times {
		m := eligibleMerchant(fmt.Sprintf("m%d", i))
		require.NoError(t, merchants.SaveMerchant(ctx, m))
		require.NoError(t, approvals.SaveApproval(ctx, m, approvalOf(m, fmt.Sprintf("a%d", i), baseTime.Add(time.Duration(minute)*time.Minute))))
	}

	var ids []string
	var token *string
	pages := 0
	for {
		page, next, err := approvals.ListApprovals(ctx, 2, token)
		require.NoError(t, err)
		pages++
		for _, a := range page {
			ids = append(ids, a.ApprovalID)
		}
		if next == nil {
			break
		}
		token = next
	}

	assert.Equal(t, []string{"a1", "a3", "a2", "a0", "a4"}, ids)
	assert.Equal(t, 3, pages)

	bad := "%%%"
	_, _, err := approvals.ListApprovals(ctx, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStatementRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStatementRepository(NewRegistry())
	commission := decimal.NewFromInt(7)

	april := domain.StatementPeriod{PeriodID: "apr", MerchantID: "m", PeriodStart: baseTime.AddDate(0, 1, 0), Commission: &commission}
	march := domain.StatementPeriod{PeriodID: "mar", MerchantID: "m", PeriodStart: baseTime}
	require.NoError(t, repo.SaveStatementPeriod(ctx, april))
	require.NoError(t, repo.SaveStatementPeriod(ctx, march))
	assert.ErrorIs(t, repo.SaveStatementPeriod(ctx, march), apperrors.ErrDuplicate)
	assert.ErrorIs(t, repo.SaveStatementPeriod(ctx, domain.StatementPeriod{MerchantID: "m"}), apperrors.ErrValidation)

	periods, err := repo.ListStatementPeriods(ctx, "m")
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "mar", periods[0].PeriodID)

	found, err := repo.FindStatementPeriod(ctx, "m", "apr")
	require.NoError(t, err)
	*found.Commission = decimal.NewFromInt(99)
	again, err := repo.FindStatementPeriod(ctx, "m", "apr")
	require.NoError(t, err)
	assert.True(t, commission.Equal(*again.Commission))

	_, err = repo.FindStatementPeriod(ctx, "other", "apr")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRegistry_ConcurrentApprovalsYieldOne(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()
	merchants := NewMerchantRepository(reg)
	approvals := NewApprovalRepository(reg)
	m := eligibleMerchant("m")
	require.NoError(t, merchants.SaveMerchant(ctx, m))

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := approvals.SaveApproval(ctx, m, approvalOf(m, fmt.Sprintf("a%d", i), baseTime)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	all, err := approvals.ListApprovalsByMerchant(ctx, "m")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestNewRepositoryProvider(t *testing.T) {
	provider := NewRepositoryProvider(NewRegistry())
	assert.NotNil(t, provider.MerchantRepo)
	assert.NotNil(t, provider.ApprovalRepo)
	assert.NotNil(t, provider.StatementRepo)
}
