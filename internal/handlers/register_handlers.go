package handlers

import (
	"net/http"

	portssvc "github.com/erayozt/hakedis-sub001/internal/core/ports/services"
	"github.com/erayozt/hakedis-sub001/internal/middleware"
	"github.com/erayozt/hakedis-sub001/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes. approveLimiter may be nil, in which
// case bulk approval is not rate limited.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	approveLimiter *limiter.Limiter,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services, approveLimiter)
}

// setupAPIV1Routes configures the JWT protected /api/v1 group.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	approveLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerMerchantRoutes(v1, services.Merchant)
	registerLedgerRoutes(v1, services.Merchant)
	registerStatementRoutes(v1, services.Statement, cfg.DisplayPrecision)
	registerSettlementRoutes(v1, services.Settlement, approveLimiter)
}
