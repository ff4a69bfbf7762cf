package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portssvc "github.com/erayozt/hakedis-sub001/internal/core/ports/services"
	"github.com/erayozt/hakedis-sub001/internal/dto"
	"github.com/erayozt/hakedis-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// settlementHandler handles the payout approval workflow.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: ss}
}

// registerSettlementRoutes registers routes related to settlement approvals.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade, approveLimiter *limiter.Limiter) {
	h := newSettlementHandler(settlementService)

	approveChain := []gin.HandlerFunc{}
	if approveLimiter != nil {
		approveChain = append(approveChain, middleware.RateLimit(approveLimiter))
	}
	approveChain = append(approveChain, h.approveSettlements)

	settlements := rg.Group("/settlements")
	{
		settlements.GET("/eligible", h.listEligible)
		settlements.POST("/approve", approveChain...)
		settlements.GET("/approvals", h.listApprovals)
		settlements.GET("/approvals/export", h.exportApprovals)
	}
}

func (h *settlementHandler) listEligible(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	merchants, err := h.settlementService.ListEligible(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list eligible merchants")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMerchantResponse(merchants))
}

func (h *settlementHandler) approveSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApproveSettlementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApproveSettlements", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("operator_id", operatorID))

	batch, err := h.settlementService.Approve(c.Request.Context(), req.MerchantIDs, operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to approve settlements")
		return
	}

	logger.Info("Settlement approval processed",
		slog.Int("requested", len(req.MerchantIDs)),
		slog.Int("approved", len(batch.Approvals)),
		slog.Int("skipped", len(batch.Skipped)))
	c.JSON(http.StatusOK, dto.ToApproveSettlementsResponse(*batch))
}

func (h *settlementHandler) listApprovals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListApprovalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListApprovals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.settlementService.ListApprovals(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list approvals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *settlementHandler) exportApprovals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	body, err := h.settlementService.ExportApprovals(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export approvals")
		return
	}

	filename := fmt.Sprintf("approvals-%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, domain.FormatCSV.ContentType(), body)
}
