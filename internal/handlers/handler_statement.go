package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/erayozt/hakedis-sub001/internal/core/domain"
	portssvc "github.com/erayozt/hakedis-sub001/internal/core/ports/services"
	"github.com/erayozt/hakedis-sub001/internal/dto"
	"github.com/erayozt/hakedis-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statementHandler handles statement periods, statement totals and exports.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
	displayPlaces    int32
}

func newStatementHandler(ss portssvc.StatementSvcFacade, displayPlaces int32) *statementHandler {
	return &statementHandler{statementService: ss, displayPlaces: displayPlaces}
}

// registerStatementRoutes registers routes related to statements.
func registerStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade, displayPlaces int32) {
	h := newStatementHandler(statementService, displayPlaces)

	statements := rg.Group("/merchants/:merchant_id/statements")
	{
		statements.POST("", h.createStatementPeriod)
		statements.GET("", h.listStatements)
		statements.GET("/:period_id", h.getStatement)
		statements.GET("/:period_id/export", h.exportStatement)
	}
	rg.POST("/statements/preview", h.previewStatement)
}

func (h *statementHandler) createStatementPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	merchantID := c.Param("merchant_id")
	logger = logger.With(slog.String("merchant_id", merchantID))

	var req dto.StatementPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateStatementPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	period, err := h.statementService.CreateStatementPeriod(c.Request.Context(), req.ToDomain(merchantID), operatorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save statement period")
		return
	}

	totals, err := h.statementService.GetStatement(c.Request.Context(), merchantID, period.PeriodID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build statement")
		return
	}

	logger.Info("Statement period saved", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToStatementResponse(*totals, h.displayPlaces))
}

func (h *statementHandler) listStatements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	merchantID := c.Param("merchant_id")

	totals, err := h.statementService.ListStatements(c.Request.Context(), merchantID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("merchant_id", merchantID)), err, "Failed to list statements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListStatementResponse(totals, h.displayPlaces))
}

func (h *statementHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	merchantID, periodID := c.Param("merchant_id"), c.Param("period_id")

	totals, err := h.statementService.GetStatement(c.Request.Context(), merchantID, periodID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("merchant_id", merchantID), slog.String("period_id", periodID)), err, "Failed to build statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(*totals, h.displayPlaces))
}

func (h *statementHandler) exportStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	merchantID, periodID := c.Param("merchant_id"), c.Param("period_id")
	logger = logger.With(slog.String("merchant_id", merchantID), slog.String("period_id", periodID))

	format, err := domain.ParseExportFormat(c.DefaultQuery("format", string(domain.FormatPDF)))
	if err != nil {
		logger.Warn("Invalid export format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, err := h.statementService.ExportStatement(c.Request.Context(), merchantID, periodID, format)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export statement")
		return
	}

	filename := fmt.Sprintf("statement-%s-%s.%s", merchantID, periodID, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), body)
}

func (h *statementHandler) previewStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StatementPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	totals, err := h.statementService.PreviewStatement(c.Request.Context(), req.ToDomain(req.MerchantID))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build statement preview")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(*totals, h.displayPlaces))
}
