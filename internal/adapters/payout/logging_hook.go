package payout

import (
	"context"
	"errors"
	"log/slog"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portssvc "github.com/erayozt/hakedis-sub001/internal/core/ports/services"
	"github.com/erayozt/hakedis-sub001/internal/middleware"
)

// LoggingHook logs every approved settlement. It stands in for a bank transfer integration.
type LoggingHook struct {
	logger *slog.Logger
}

// NewLoggingHook constructs a logging hook. A nil logger falls back to the request logger.
func NewLoggingHook(logger *slog.Logger) *LoggingHook {
	return &LoggingHook{logger: logger}
}

var _ portssvc.PayoutHook = (*LoggingHook)(nil)

// OnSettlementApproved logs the payout instruction for the approval.
func (h *LoggingHook) OnSettlementApproved(ctx context.Context, merchant domain.MerchantAccount, approval domain.SettlementApproval) error {
	if h == nil {
		return errors.New("payout hook: nil hook")
	}
	logger := h.logger
	if logger == nil {
		logger = middleware.GetLoggerFromCtx(ctx)
	}
	logger.InfoContext(ctx, "Payout instruction",
		slog.String("approval_id", approval.ApprovalID),
		slog.String("merchant_id", merchant.MerchantID),
		slog.String("iban", merchant.IBAN),
		slog.Int("cycle", approval.Cycle),
		slog.String("amount", approval.ApprovedAmount.String()))
	return nil
}
