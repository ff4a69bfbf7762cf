package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portsrepo "github.com/erayozt/hakedis-sub001/internal/core/ports/repositories"
	portssvc "github.com/erayozt/hakedis-sub001/internal/core/ports/services"
	"github.com/erayozt/hakedis-sub001/internal/observability/metrics"
	"github.com/erayozt/hakedis-sub001/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type statementService struct {
	BaseService
	statementRepo portsrepo.StatementRepository
	merchantRepo  portsrepo.MerchantReader
	renderer      portssvc.StatementRenderer
	displayPlaces int32
}

// NewStatementService creates the statement service. Exports are rounded to displayPlaces
// before they reach the renderer.
func NewStatementService(statementRepo portsrepo.StatementRepository, merchantRepo portsrepo.MerchantReader, renderer portssvc.StatementRenderer, displayPlaces int32, opts ...ServiceOption) portssvc.StatementSvcFacade {
	svc := &statementService{
		BaseService:   newBaseService(),
		statementRepo: statementRepo,
		merchantRepo:  merchantRepo,
		renderer:      renderer,
		displayPlaces: displayPlaces,
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

func (s *statementService) CreateStatementPeriod(ctx context.Context, period domain.StatementPeriod, operatorID string) (*domain.StatementPeriod, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if _, err := s.merchantRepo.FindMerchantByID(ctx, period.MerchantID); err != nil {
		return nil, err
	}

	if period.PeriodID == "" {
		period.PeriodID = s.newID()
	}
	now := s.now()
	period.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     operatorID,
		LastUpdatedAt: now,
		LastUpdatedBy: operatorID,
	}

	if _, err := s.build(ctx, period); err != nil {
		return nil, err
	}
	if err := s.statementRepo.SaveStatementPeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save statement period",
			slog.String("merchant_id", period.MerchantID),
			slog.String("period_id", period.PeriodID))
		return nil, fmt.Errorf("failed to save statement period: %w", err)
	}

	s.LogInfo(ctx, "Statement period saved",
		slog.String("merchant_id", period.MerchantID),
		slog.String("period_id", period.PeriodID))
	return &period, nil
}

func (s *statementService) GetStatement(ctx context.Context, merchantID, periodID string) (*domain.StatementTotals, error) {
	if err := requireID("merchant id", merchantID); err != nil {
		return nil, err
	}
	if err := requireID("period id", periodID); err != nil {
		return nil, err
	}
	period, err := s.statementRepo.FindStatementPeriod(ctx, merchantID, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find statement period",
				slog.String("merchant_id", merchantID),
				slog.String("period_id", periodID))
		}
		return nil, err
	}
	return s.build(ctx, *period)
}

func (s *statementService) ListStatements(ctx context.Context, merchantID string) ([]domain.StatementTotals, error) {
	if _, err := s.merchantRepo.FindMerchantByID(ctx, merchantID); err != nil {
		return nil, err
	}
	periods, err := s.statementRepo.ListStatementPeriods(ctx, merchantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list statement periods", slog.String("merchant_id", merchantID))
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}

	statements := make([]domain.StatementTotals, 0, len(periods))
	for _, p := range periods {
		totals, err := s.build(ctx, p)
		if err != nil {
			return nil, err
		}
		statements = append(statements, *totals)
	}
	return statements, nil
}

func (s *statementService) PreviewStatement(ctx context.Context, period domain.StatementPeriod) (*domain.StatementTotals, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	return s.build(ctx, period)
}

func (s *statementService) ExportStatement(ctx context.Context, merchantID, periodID string, format domain.ExportFormat) ([]byte, error) {
	start := time.Now()
	totals, err := s.GetStatement(ctx, merchantID, periodID)
	if err != nil {
		return nil, err
	}

	doc, err := s.renderer.RenderStatement(accounting.RoundForDisplay(*totals, s.displayPlaces), format)
	if err != nil {
		metrics.ObserveStatementExport(string(format), metrics.ResultError, time.Since(start))
		s.LogError(ctx, err, "Failed to render statement",
			slog.String("merchant_id", merchantID),
			slog.String("period_id", periodID),
			slog.String("format", string(format)))
		return nil, fmt.Errorf("failed to export statement: %w", err)
	}

	metrics.ObserveStatementExport(string(format), metrics.ResultSuccess, time.Since(start))
	s.LogDebug(ctx, "Statement exported",
		slog.String("period_id", periodID),
		slog.String("format", string(format)),
		slog.Int("bytes", len(doc)))
	return doc, nil
}

// build derives the totals and checks that they reconcile.
func (s *statementService) build(ctx context.Context, period domain.StatementPeriod) (*domain.StatementTotals, error) {
	totals := accounting.BuildStatement(period)
	if err := accounting.ValidateStatement(totals); err != nil {
		metrics.ObserveStatementBuild(metrics.ResultError)
		s.LogError(ctx, err, "Statement does not reconcile",
			slog.String("merchant_id", period.MerchantID),
			slog.String("period_id", period.PeriodID))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	metrics.ObserveStatementBuild(metrics.ResultSuccess)
	return &totals, nil
}

func validatePeriod(p domain.StatementPeriod) error {
	if err := requireID("merchant id", p.MerchantID); err != nil {
		return err
	}
	if p.PeriodStart.IsZero() || p.PeriodEnd.IsZero() {
		return fmt.Errorf("%w: period start and end are required", apperrors.ErrValidation)
	}
	if p.PeriodEnd.Before(p.PeriodStart) {
		return fmt.Errorf("%w: period ends before it starts", apperrors.ErrValidation)
	}
	if p.TransactionCount < 0 || p.RefundCount < 0 {
		return fmt.Errorf("%w: counts must not be negative", apperrors.ErrValidation)
	}
	for i, c := range p.Categories {
		if c.Category == "" || c.TransactionCount < 0 {
			return fmt.Errorf("%w: category %d is invalid", apperrors.ErrValidation, i)
		}
		if err := accounting.ValidateScale(fmt.Sprintf("category %d volume", i), c.Volume, accounting.AmountScale); err != nil {
			return err
		}
	}
	type stored struct {
		name   string
		amount decimal.Decimal
	}
	amounts := []stored{
		{"volume", p.Volume},
		{"refund volume", p.RefundVolume},
		{"package fee", p.PackageFee},
		{"other fees", p.OtherFees},
	}
	if p.Commission != nil {
		amounts = append(amounts, stored{"commission", *p.Commission})
	}
	for _, f := range amounts {
		if err := accounting.ValidateScale(f.name, f.amount, accounting.AmountScale); err != nil {
			return err
		}
	}
	return accounting.ValidateScale("commission rate", p.CommissionRate, accounting.RateScale)
}
