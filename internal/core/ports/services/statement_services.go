package services

import (
	"context"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
)

// StatementReaderSvc defines read operations for statements. Totals are derived on every read.
type StatementReaderSvc interface {
	// GetStatement builds the statement of one stored period.
	GetStatement(ctx context.Context, merchantID, periodID string) (*domain.StatementTotals, error)

	// ListStatements builds the statements of all stored periods of a merchant.
	ListStatements(ctx context.Context, merchantID string) ([]domain.StatementTotals, error)

	// PreviewStatement builds the statement of a period that is not stored.
	PreviewStatement(ctx context.Context, period domain.StatementPeriod) (*domain.StatementTotals, error)

	// ExportStatement renders the statement of a stored period in the given format.
	ExportStatement(ctx context.Context, merchantID, periodID string, format domain.ExportFormat) ([]byte, error)
}

// StatementWriterSvc defines write operations for statement periods.
type StatementWriterSvc interface {
	// CreateStatementPeriod stores the raw inputs of a period for a registered merchant.
	CreateStatementPeriod(ctx context.Context, period domain.StatementPeriod, operatorID string) (*domain.StatementPeriod, error)
}

// StatementSvcFacade combines all statement-related service interfaces.
type StatementSvcFacade interface {
	StatementReaderSvc
	StatementWriterSvc
}

// StatementRenderer turns display-rounded statements and approvals into documents.
type StatementRenderer interface {
	RenderStatement(totals domain.StatementTotals, format domain.ExportFormat) ([]byte, error)
	RenderApprovals(approvals []domain.SettlementApproval) ([]byte, error)
}
