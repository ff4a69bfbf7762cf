package repositories

import (
	"context"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
)

// StatementRepository stores the raw inputs of statement periods. Totals are never stored.
type StatementRepository interface {
	// SaveStatementPeriod persists a new period. Returns apperrors.ErrDuplicate if the id is taken.
	SaveStatementPeriod(ctx context.Context, period domain.StatementPeriod) error

	// FindStatementPeriod retrieves one period of a merchant.
	FindStatementPeriod(ctx context.Context, merchantID, periodID string) (*domain.StatementPeriod, error)

	// ListStatementPeriods returns a merchant's periods ordered by period start.
	ListStatementPeriods(ctx context.Context, merchantID string) ([]domain.StatementPeriod, error)
}
