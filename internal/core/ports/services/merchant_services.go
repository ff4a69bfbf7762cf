package services

import (
	"context"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	"github.com/erayozt/hakedis-sub001/internal/dto"
	"github.com/shopspring/decimal"
)

// MerchantReaderSvc defines read operations for merchants.
type MerchantReaderSvc interface {
	// GetMerchant retrieves a merchant by id.
	GetMerchant(ctx context.Context, merchantID string) (*domain.MerchantAccount, error)

	// ListMerchants retrieves all merchants in registration order.
	ListMerchants(ctx context.Context) ([]domain.MerchantAccount, error)
}

// MerchantWriterSvc defines write operations for merchants.
type MerchantWriterSvc interface {
	// CreateMerchant registers a merchant in cycle 1.
	CreateMerchant(ctx context.Context, req dto.CreateMerchantRequest, operatorID string) (*domain.MerchantAccount, error)

	// OpenNextCycle starts a new settlement cycle seeded with openingBalance.
	// Only approved merchants can move to the next cycle.
	OpenNextCycle(ctx context.Context, merchantID string, openingBalance decimal.Decimal, operatorID string) (*domain.MerchantAccount, error)
}

// LedgerSvc defines the daily ledger operations of a merchant.
type LedgerSvc interface {
	// RecordDailyActivity appends entries to the current cycle and re-evaluates eligibility.
	RecordDailyActivity(ctx context.Context, merchantID string, entries []domain.DailyLedgerEntry, operatorID string) (*domain.MerchantAccount, *domain.EligibilityResult, error)

	// GetLedgerHistory evaluates the current cycle's entries and returns the running history.
	GetLedgerHistory(ctx context.Context, merchantID string) (*domain.MerchantAccount, *domain.EligibilityResult, error)

	// PreviewEligibility evaluates an ad-hoc ledger without touching any merchant.
	PreviewEligibility(ctx context.Context, openingBalance decimal.Decimal, entries []domain.DailyLedgerEntry) (*domain.EligibilityResult, error)
}

// MerchantSvcFacade combines all merchant-related service interfaces.
type MerchantSvcFacade interface {
	MerchantReaderSvc
	MerchantWriterSvc
	LedgerSvc
}
