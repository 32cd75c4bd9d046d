package handlers

import (
	"net/http"

	"github.com/SscSPs/cashflow_app/cmd/docs"
	portsexport "github.com/SscSPs/cashflow_app/internal/core/ports/export"
	portssvc "github.com/SscSPs/cashflow_app/internal/core/ports/services"
	"github.com/SscSPs/cashflow_app/internal/core/reporting"
	"github.com/SscSPs/cashflow_app/internal/middleware"
	"github.com/SscSPs/cashflow_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// writeLimiter and renderer may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	writeLimiter *limiter.Limiter,
	renderer portsexport.ReportRenderer,
) {
	registerValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, writeLimiter, renderer)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	writeLimiter *limiter.Limiter,
	renderer portsexport.ReportRenderer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(middleware.AuthConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	}))

	var writeGuard []gin.HandlerFunc
	if writeLimiter != nil {
		writeGuard = append(writeGuard, middleware.RateLimit(writeLimiter))
	}

	registerCategoryRoutes(v1, services.Category, reporting.NewResolver(nil))
	registerTransactionRoutes(v1, services.Transaction, writeGuard...)
	registerReportingRoutes(v1, services.Reporting, renderer, cfg.TopSpendingLimit)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
