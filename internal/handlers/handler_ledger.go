package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/erayozt/hakedis-sub001/internal/core/ports/services"
	"github.com/erayozt/hakedis-sub001/internal/dto"
	"github.com/erayozt/hakedis-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles daily ledger activity and eligibility evaluation.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
}

func newLedgerHandler(ls portssvc.LedgerSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the per-merchant ledger routes and the ad-hoc preview.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	h := newLedgerHandler(ledgerService)

	rg.POST("/merchants/:merchant_id/ledger", h.recordDailyActivity)
	rg.GET("/merchants/:merchant_id/ledger", h.getLedgerHistory)
	rg.POST("/ledger/eligibility", h.previewEligibility)
}

func (h *ledgerHandler) recordDailyActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	merchantID := c.Param("merchant_id")
	logger = logger.With(slog.String("merchant_id", merchantID))

	var req dto.RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordDailyActivity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	merchant, result, err := h.ledgerService.RecordDailyActivity(c.Request.Context(), merchantID, dto.ToLedgerEntries(req.Entries), operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record daily activity")
		return
	}

	logger.Info("Daily activity recorded",
		slog.Int("entries", len(req.Entries)),
		slog.String("status", string(result.Status)))
	c.JSON(http.StatusOK, dto.ToEligibilityResponse(merchant, *result))
}

func (h *ledgerHandler) getLedgerHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	merchantID := c.Param("merchant_id")

	merchant, result, err := h.ledgerService.GetLedgerHistory(c.Request.Context(), merchantID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("merchant_id", merchantID)), err, "Failed to retrieve ledger history")
		return
	}
	c.JSON(http.StatusOK, dto.ToEligibilityResponse(merchant, *result))
}

func (h *ledgerHandler) previewEligibility(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.EligibilityPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewEligibility", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.ledgerService.PreviewEligibility(c.Request.Context(), req.OpeningBalance, dto.ToLedgerEntries(req.Entries))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to evaluate eligibility")
		return
	}
	c.JSON(http.StatusOK, dto.ToEligibilityResponse(nil, *result))
}
