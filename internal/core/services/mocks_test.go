package services_test

import (
	"context"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock MerchantRepositoryFacade ---
type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) FindMerchantByID(ctx context.Context, merchantID string) (*domain.MerchantAccount, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Hand out a copy so the service cannot mutate the fixture.
	acc := *args.Get(0).(*domain.MerchantAccount)
	return &acc, args.Error(1)
}

func (m *MockMerchantRepository) ListMerchants(ctx context.Context) ([]domain.MerchantAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	src := args.Get(0).([]domain.MerchantAccount)
	return append([]domain.MerchantAccount(nil), src...), args.Error(1)
}

func (m *MockMerchantRepository) SaveMerchant(ctx context.Context, merchant domain.MerchantAccount) error {
	return m.Called(ctx, merchant).Error(0)
}

func (m *MockMerchantRepository) UpdateMerchant(ctx context.Context, merchant domain.MerchantAccount) error {
	return m.Called(ctx, merchant).Error(0)
}

func (m *MockMerchantRepository) ListEntries(ctx context.Context, merchantID string, cycle int) ([]domain.DailyLedgerEntry, error) {
	args := m.Called(ctx, merchantID, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyLedgerEntry), args.Error(1)
}

func (m *MockMerchantRepository) AppendEntries(ctx context.Context, merchant domain.MerchantAccount, storedCount int, entries []domain.DailyLedgerEntry) error {
	return m.Called(ctx, merchant, storedCount, entries).Error(0)
}

// --- Mock ApprovalRepositoryFacade ---
type MockApprovalRepository struct {
	mock.Mock
}

func (m *MockApprovalRepository) ListApprovals(ctx context.Context, limit int, nextToken *string) ([]domain.SettlementApproval, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var approvals []domain.SettlementApproval
	if args.Get(0) != nil {
		approvals = args.Get(0).([]domain.SettlementApproval)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return approvals, next, args.Error(2)
}

func (m *MockApprovalRepository) ListApprovalsByMerchant(ctx context.Context, merchantID string) ([]domain.SettlementApproval, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementApproval), args.Error(1)
}

func (m *MockApprovalRepository) SaveApproval(ctx context.Context, merchant domain.MerchantAccount, approval domain.SettlementApproval) error {
	return m.Called(ctx, merchant, approval).Error(0)
}

// --- Mock StatementRepository ---
type MockStatementRepository struct {
	mock.Mock
}

func (m *MockStatementRepository) SaveStatementPeriod(ctx context.Context, period domain.StatementPeriod) error {
	return m.Called(ctx, period).Error(0)
}

func (m *MockStatementRepository) FindStatementPeriod(ctx context.Context, merchantID, periodID string) (*domain.StatementPeriod, error) {
	args := m.Called(ctx, merchantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatementPeriod), args.Error(1)
}

func (m *MockStatementRepository) ListStatementPeriods(ctx context.Context, merchantID string) ([]domain.StatementPeriod, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatementPeriod), args.Error(1)
}

// --- Mock StatementRenderer ---
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderStatement(totals domain.StatementTotals, format domain.ExportFormat) ([]byte, error) {
	args := m.Called(totals, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) RenderApprovals(approvals []domain.SettlementApproval) ([]byte, error) {
	args := m.Called(approvals)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- Mock PayoutHook ---
type MockPayoutHook struct {
	mock.Mock
}

func (m *MockPayoutHook) OnSettlementApproved(ctx context.Context, merchant domain.MerchantAccount, approval domain.SettlementApproval) error {
	return m.Called(ctx, merchant, approval).Error(0)
}
