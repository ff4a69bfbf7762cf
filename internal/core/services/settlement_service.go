package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/erayozt/hakedis-sub001/internal/apperrors"
	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portsrepo "github.com/erayozt/hakedis-sub001/internal/core/ports/repositories"
	portssvc "github.com/erayozt/hakedis-sub001/internal/core/ports/services"
	"github.com/erayozt/hakedis-sub001/internal/dto"
	"github.com/erayozt/hakedis-sub001/internal/observability/metrics"
	"github.com/erayozt/hakedis-sub001/internal/utils/accounting"
	"github.com/erayozt/hakedis-sub001/internal/utils/pagination"
)

type settlementService struct {
	BaseService
	merchantRepo portsrepo.MerchantReader
	approvalRepo portsrepo.ApprovalRepositoryFacade
	renderer     portssvc.StatementRenderer
	payoutHook   portssvc.PayoutHook
}

// SettlementOption configures optional settlement service collaborators.
type SettlementOption func(*settlementService)

// WithPayoutHook registers a hook called once for every stored approval.
func WithPayoutHook(hook portssvc.PayoutHook) SettlementOption {
	return func(s *settlementService) {
		s.payoutHook = hook
	}
}

// WithSettlementBase applies shared service options.
func WithSettlementBase(opts ...ServiceOption) SettlementOption {
	return func(s *settlementService) {
		s.apply(opts)
	}
}

// NewSettlementService creates the approval workflow service.
func NewSettlementService(merchantRepo portsrepo.MerchantReader, approvalRepo portsrepo.ApprovalRepositoryFacade, renderer portssvc.StatementRenderer, options ...SettlementOption) portssvc.SettlementSvcFacade {
	svc := &settlementService{
		BaseService:  newBaseService(),
		merchantRepo: merchantRepo,
		approvalRepo: approvalRepo,
		renderer:     renderer,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

func (s *settlementService) ListEligible(ctx context.Context) ([]domain.MerchantAccount, error) {
	merchants, err := s.merchantRepo.ListMerchants(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list merchants")
		return nil, fmt.Errorf("failed to list eligible merchants: %w", err)
	}
	return accounting.ListEligible(merchants), nil
}

func (s *settlementService) Approve(ctx context.Context, merchantIDs []string, operatorID string) (*domain.ApprovalBatch, error) {
	if err := requireID("operator id", operatorID); err != nil {
		return nil, err
	}

	requested := make([]string, 0, len(merchantIDs))
	selected := make(map[string]struct{}, len(merchantIDs))
	for _, id := range merchantIDs {
		if _, seen := selected[id]; seen || id == "" {
			continue
		}
		selected[id] = struct{}{}
		requested = append(requested, id)
	}

	merchants, err := s.merchantRepo.ListMerchants(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list merchants for approval")
		return nil, fmt.Errorf("failed to approve settlements: %w", err)
	}
	accounts := make([]*domain.MerchantAccount, len(merchants))
	byID := make(map[string]*domain.MerchantAccount, len(merchants))
	for i := range merchants {
		accounts[i] = &merchants[i]
		byID[merchants[i].MerchantID] = &merchants[i]
	}

	batch := &domain.ApprovalBatch{Approvals: []domain.SettlementApproval{}}
	approvedIDs := make(map[string]struct{})
	for _, approval := range accounting.ApproveEligible(selected, accounts, operatorID, s.now(), s.newID) {
		merchant := byID[approval.MerchantID]
		if err := s.approvalRepo.SaveApproval(ctx, *merchant, approval); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				s.LogDebug(ctx, "Cycle already approved, skipping",
					slog.String("merchant_id", approval.MerchantID),
					slog.Int("cycle", approval.Cycle))
				continue
			}
			// the merchant stays eligible and is reported as skipped; the rest of the batch goes on
			s.LogError(ctx, err, "Failed to save approval, skipping",
				slog.String("merchant_id", approval.MerchantID),
				slog.Int("cycle", approval.Cycle))
			continue
		}
		approvedIDs[approval.MerchantID] = struct{}{}
		batch.Approvals = append(batch.Approvals, approval)
		s.notifyPayout(ctx, *merchant, approval)
	}

	for _, id := range requested {
		if _, ok := approvedIDs[id]; !ok {
			batch.Skipped = append(batch.Skipped, id)
		}
	}

	metrics.ObserveApprovals(len(batch.Approvals), len(batch.Skipped))
	s.LogInfo(ctx, "Settlements approved",
		slog.Int("requested", len(requested)),
		slog.Int("approved", len(batch.Approvals)),
		slog.Int("skipped", len(batch.Skipped)))
	return batch, nil
}

func (s *settlementService) notifyPayout(ctx context.Context, merchant domain.MerchantAccount, approval domain.SettlementApproval) {
	if s.payoutHook == nil {
		return
	}
	if err := s.payoutHook.OnSettlementApproved(ctx, merchant, approval); err != nil {
		metrics.IncPayoutHookError()
		s.LogError(ctx, err, "Payout hook failed",
			slog.String("merchant_id", approval.MerchantID),
			slog.String("approval_id", approval.ApprovalID))
	}
}

func (s *settlementService) ListApprovals(ctx context.Context, params dto.ListApprovalsParams) (*dto.ListApprovalsResponse, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	approvals, nextToken, err := s.approvalRepo.ListApprovals(ctx, limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list approvals", slog.Int("limit", limit))
		}
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	return &dto.ListApprovalsResponse{
		Approvals: dto.ToSettlementApprovalResponses(approvals),
		NextToken: nextToken,
	}, nil
}

func (s *settlementService) ExportApprovals(ctx context.Context) ([]byte, error) {
	var all []domain.SettlementApproval
	var token *string
	for {
		page, next, err := s.approvalRepo.ListApprovals(ctx, pagination.MaxLimit, token)
		if err != nil {
			s.LogError(ctx, err, "Failed to list approvals for export")
			return nil, fmt.Errorf("failed to export approvals: %w", err)
		}
		all = append(all, page...)
		if next == nil {
			break
		}
		token = next
	}

	doc, err := s.renderer.RenderApprovals(all)
	if err != nil {
		s.LogError(ctx, err, "Failed to render approvals")
		return nil, fmt.Errorf("failed to export approvals: %w", err)
	}
	return doc, nil
}
