package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portsrepo "github.com/erayozt/hakedis-sub001/internal/core/ports/repositories"
	portssvc "github.com/erayozt/hakedis-sub001/internal/core/ports/services"
	"github.com/erayozt/hakedis-sub001/internal/dto"
	"github.com/erayozt/hakedis-sub001/internal/observability/metrics"
	"github.com/erayozt/hakedis-sub001/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type merchantService struct {
	BaseService
	merchantRepo portsrepo.MerchantRepositoryFacade
	strict       bool
}

// NewMerchantService creates the merchant registry service. With strict set, ledger
// entries that are not in strictly ascending date order are rejected.
func NewMerchantService(repo portsrepo.MerchantRepositoryFacade, strict bool, opts ...ServiceOption) portssvc.MerchantSvcFacade {
	svc := &merchantService{
		BaseService:  newBaseService(),
		merchantRepo: repo,
		strict:       strict,
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.MerchantSvcFacade = (*merchantService)(nil)

func (s *merchantService) CreateMerchant(ctx context.Context, req dto.CreateMerchantRequest, operatorID string) (*domain.MerchantAccount, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}
	if err := accounting.ValidateScale("opening balance", req.OpeningBalance, accounting.AmountScale); err != nil {
		return nil, err
	}

	now := s.now()
	merchantID := req.MerchantID
	if merchantID == "" {
		merchantID = s.newID()
	}

	merchant := domain.MerchantAccount{
		MerchantID:        merchantID,
		DisplayName:       strings.TrimSpace(req.DisplayName),
		IBAN:              strings.ToUpper(req.IBAN),
		Cycle:             1,
		OpeningBalance:    req.OpeningBalance,
		RunningBalance:    req.OpeningBalance,
		EligibilityStatus: domain.NoSettlement,
		PayableAmount:     req.OpeningBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}

	if err := s.merchantRepo.SaveMerchant(ctx, merchant); err != nil {
		s.LogError(ctx, err, "Failed to save merchant", slog.String("merchant_id", merchantID))
		return nil, fmt.Errorf("failed to create merchant: %w", err)
	}

	s.LogInfo(ctx, "Merchant created", slog.String("merchant_id", merchantID))
	return &merchant, nil
}

func (s *merchantService) GetMerchant(ctx context.Context, merchantID string) (*domain.MerchantAccount, error) {
	if err := requireID("merchant id", merchantID); err != nil {
		return nil, err
	}
	merchant, err := s.merchantRepo.FindMerchantByID(ctx, merchantID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find merchant", slog.String("merchant_id", merchantID))
		}
		return nil, err
	}
	return merchant, nil
}

func (s *merchantService) ListMerchants(ctx context.Context) ([]domain.MerchantAccount, error) {
	merchants, err := s.merchantRepo.ListMerchants(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list merchants")
		return nil, fmt.Errorf("failed to list merchants: %w", err)
	}
	if merchants == nil {
		return []domain.MerchantAccount{}, nil
	}
	return merchants, nil
}

func (s *merchantService) RecordDailyActivity(ctx context.Context, merchantID string, entries []domain.DailyLedgerEntry, operatorID string) (*domain.MerchantAccount, *domain.EligibilityResult, error) {
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one ledger entry is required", apperrors.ErrValidation)
	}
	if err := accounting.ValidateEntryScale(entries); err != nil {
		return nil, nil, err
	}
	merchant, err := s.GetMerchant(ctx, merchantID)
	if err != nil {
		return nil, nil, err
	}
	if merchant.EligibilityStatus == domain.Approved {
		return nil, nil, fmt.Errorf("%w: cycle %d of merchant %s is approved, open the next cycle first",
			apperrors.ErrConflict, merchant.Cycle, merchantID)
	}

	existing, err := s.merchantRepo.ListEntries(ctx, merchantID, merchant.Cycle)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger entries", slog.String("merchant_id", merchantID))
		return nil, nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}

	all := make([]domain.DailyLedgerEntry, 0, len(existing)+len(entries))
	all = append(all, existing...)
	all = append(all, entries...)
	if err := s.checkOrder(ctx, all); err != nil {
		return nil, nil, err
	}

	res := accounting.ComputeEligibility(merchant.OpeningBalance, all)
	wasEligible := merchant.IsEligible()
	merchant.ApplyEligibility(res)
	merchant.LastUpdatedAt = s.now()
	merchant.LastUpdatedBy = operatorID

	if err := s.merchantRepo.AppendEntries(ctx, *merchant, len(existing), entries); err != nil {
		s.LogError(ctx, err, "Failed to append ledger entries", slog.String("merchant_id", merchantID))
		return nil, nil, fmt.Errorf("failed to record daily activity: %w", err)
	}

	crossed := !wasEligible && res.Status == domain.Eligible
	metrics.ObserveLedgerEvaluation(string(res.Status), crossed, min(res.FrozenEntries, len(entries)))
	if crossed {
		s.LogInfo(ctx, "Merchant became eligible for settlement",
			slog.String("merchant_id", merchantID),
			slog.Int("cycle", merchant.Cycle),
			slog.String("payable_amount", res.PayableAmount.String()))
	} else {
		s.LogDebug(ctx, "Daily activity recorded",
			slog.String("merchant_id", merchantID),
			slog.Int("entries", len(entries)),
			slog.String("status", string(res.Status)))
	}
	return merchant, &res, nil
}

func (s *merchantService) GetLedgerHistory(ctx context.Context, merchantID string) (*domain.MerchantAccount, *domain.EligibilityResult, error) {
	merchant, err := s.GetMerchant(ctx, merchantID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.merchantRepo.ListEntries(ctx, merchantID, merchant.Cycle)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger entries", slog.String("merchant_id", merchantID))
		return nil, nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}

	res := accounting.ComputeEligibility(merchant.OpeningBalance, entries)
	if merchant.EligibilityStatus == domain.Approved {
		res.Status = domain.Approved
	}
	return merchant, &res, nil
}

func (s *merchantService) PreviewEligibility(ctx context.Context, openingBalance decimal.Decimal, entries []domain.DailyLedgerEntry) (*domain.EligibilityResult, error) {
	if err := accounting.ValidateScale("opening balance", openingBalance, accounting.AmountScale); err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntryScale(entries); err != nil {
		return nil, err
	}
	if err := s.checkOrder(ctx, entries); err != nil {
		return nil, err
	}
	res := accounting.ComputeEligibility(openingBalance, entries)
	return &res, nil
}

func (s *merchantService) OpenNextCycle(ctx context.Context, merchantID string, openingBalance decimal.Decimal, operatorID string) (*domain.MerchantAccount, error) {
	if err := accounting.ValidateScale("opening balance", openingBalance, accounting.AmountScale); err != nil {
		return nil, err
	}
	merchant, err := s.GetMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if merchant.EligibilityStatus != domain.Approved {
		return nil, fmt.Errorf("%w: merchant %s is %s, only approved cycles can be closed",
			apperrors.ErrConflict, merchantID, merchant.EligibilityStatus)
	}

	merchant.StartCycle(openingBalance, operatorID, s.now())
	if err := s.merchantRepo.UpdateMerchant(ctx, *merchant); err != nil {
		s.LogError(ctx, err, "Failed to open next cycle", slog.String("merchant_id", merchantID))
		return nil, fmt.Errorf("failed to open next cycle: %w", err)
	}

	s.LogInfo(ctx, "Settlement cycle opened",
		slog.String("merchant_id", merchantID),
		slog.Int("cycle", merchant.Cycle),
		slog.String("opening_balance", openingBalance.String()))
	return merchant, nil
}

// checkOrder enforces ascending dates in strict mode. Otherwise unsorted input is
// accepted and only logged.
func (s *merchantService) checkOrder(ctx context.Context, entries []domain.DailyLedgerEntry) error {
	err := accounting.ValidateEntryOrder(entries)
	if err == nil {
		return nil
	}
	if s.strict {
		return err
	}
	s.LogDebug(ctx, "Ledger entries out of order, result is undefined", slog.String("reason", err.Error()))
	return nil
}
