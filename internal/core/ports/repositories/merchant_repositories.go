package repositories

import (
	"context"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
)

// MerchantReader defines read operations on the merchant registry.
type MerchantReader interface {
	// FindMerchantByID retrieves a merchant by id. Returns apperrors.ErrNotFound if absent.
	FindMerchantByID(ctx context.Context, merchantID string) (*domain.MerchantAccount, error)

	// ListMerchants returns all merchants in registration order.
	ListMerchants(ctx context.Context) ([]domain.MerchantAccount, error)
}

// MerchantWriter defines write operations on the merchant registry.
type MerchantWriter interface {
	// SaveMerchant registers a new merchant. Returns apperrors.ErrDuplicate if the id is taken.
	SaveMerchant(ctx context.Context, merchant domain.MerchantAccount) error

	// UpdateMerchant overwrites the settlement state of an existing merchant.
	UpdateMerchant(ctx context.Context, merchant domain.MerchantAccount) error
}

// LedgerStore holds the daily entries of each merchant's cycles.
type LedgerStore interface {
	// ListEntries returns the entries of one cycle in the order they were appended.
	ListEntries(ctx context.Context, merchantID string, cycle int) ([]domain.DailyLedgerEntry, error)

	// AppendEntries appends entries to the merchant's current cycle and stores the
	// re-evaluated merchant in one step. storedCount is the number of entries the
	// caller evaluated against; if the cycle holds a different number the append is
	// refused with ErrConflict.
	AppendEntries(ctx context.Context, merchant domain.MerchantAccount, storedCount int, entries []domain.DailyLedgerEntry) error
}

// MerchantRepositoryFacade combines the merchant registry interfaces.
type MerchantRepositoryFacade interface {
	MerchantReader
	MerchantWriter
	LedgerStore
}
