package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/erayozt/hakedis-sub001/internal/core/ports/services"
	"github.com/erayozt/hakedis-sub001/internal/dto"
	"github.com/erayozt/hakedis-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// merchantHandler handles HTTP requests related to merchants.
type merchantHandler struct {
	merchantService portssvc.MerchantSvcFacade
}

func newMerchantHandler(ms portssvc.MerchantSvcFacade) *merchantHandler {
	return &merchantHandler{merchantService: ms}
}

// registerMerchantRoutes registers routes related to merchants.
func registerMerchantRoutes(rg *gin.RouterGroup, merchantService portssvc.MerchantSvcFacade) {
	h := newMerchantHandler(merchantService)

	merchants := rg.Group("/merchants")
	{
		merchants.POST("", h.createMerchant)
		merchants.GET("", h.listMerchants)
		merchants.GET("/:merchant_id", h.getMerchant)
		merchants.POST("/:merchant_id/cycles", h.openNextCycle)
	}
}

func (h *merchantHandler) createMerchant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMerchant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("operator_id", operatorID))

	merchant, err := h.merchantService.CreateMerchant(c.Request.Context(), req, operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create merchant")
		return
	}

	logger.Info("Merchant created", slog.String("merchant_id", merchant.MerchantID))
	c.JSON(http.StatusCreated, dto.ToMerchantResponse(merchant))
}

func (h *merchantHandler) listMerchants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	merchants, err := h.merchantService.ListMerchants(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list merchants")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMerchantResponse(merchants))
}

func (h *merchantHandler) getMerchant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	merchantID := c.Param("merchant_id")

	merchant, err := h.merchantService.GetMerchant(c.Request.Context(), merchantID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("merchant_id", merchantID)), err, "Failed to retrieve merchant")
		return
	}
	c.JSON(http.StatusOK, dto.ToMerchantResponse(merchant))
}

func (h *merchantHandler) openNextCycle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	merchantID := c.Param("merchant_id")
	logger = logger.With(slog.String("merchant_id", merchantID))

	var req dto.OpenCycleRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for OpenNextCycle", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	opening := decimal.Zero
	if req.OpeningBalance != nil {
		opening = *req.OpeningBalance
	}

	merchant, err := h.merchantService.OpenNextCycle(c.Request.Context(), merchantID, opening, operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to open next cycle")
		return
	}

	logger.Info("Next settlement cycle opened", slog.Int("cycle", merchant.Cycle))
	c.JSON(http.StatusOK, dto.ToMerchantResponse(merchant))
}
